package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/brunolandim/back-jurix/internal/engine/organizations"
	"github.com/brunolandim/back-jurix/internal/platform/config"
	"github.com/brunolandim/back-jurix/internal/platform/database"
	"github.com/brunolandim/back-jurix/internal/platform/repositories"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	seedOrg := flag.String("seed-org", "", "Optionally create an organization: 'Name,document'")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	fmt.Println("Migration completed successfully")

	if *seedOrg != "" {
		name, document, ok := splitSeed(*seedOrg)
		if !ok {
			log.Fatal("--seed-org expects 'Name,document'")
		}

		svc := organizations.NewService(
			repositories.NewOrganizationRepository(db),
			repositories.NewColumnRepository(db),
		)
		org, err := svc.Create(&organizations.CreateRequest{Name: name, Document: document})
		if err != nil {
			log.Fatalf("Failed to seed organization: %v", err)
		}
		fmt.Printf("Created organization %s (%s)\n", org.Name, org.ID)
	}
}

func splitSeed(arg string) (name, document string, ok bool) {
	for i := len(arg) - 1; i >= 0; i-- {
		if arg[i] == ',' {
			return arg[:i], arg[i+1:], arg[:i] != "" && arg[i+1:] != ""
		}
	}
	return "", "", false
}
