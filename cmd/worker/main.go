package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/brunolandim/back-jurix/internal/engine/notifications"
	"github.com/brunolandim/back-jurix/internal/pkg/logger"
	"github.com/brunolandim/back-jurix/internal/platform/config"
	"github.com/brunolandim/back-jurix/internal/platform/database"
	"github.com/brunolandim/back-jurix/internal/platform/notify"
	"github.com/brunolandim/back-jurix/internal/platform/repositories"
	"github.com/brunolandim/back-jurix/internal/workers"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Logging)

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	notificationRepo := repositories.NewNotificationRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	cleanupRepo := repositories.NewCleanupRepository(db)

	emailSender, err := notify.NewPostmarkSender(cfg.Email.PostmarkServerToken, cfg.Email.PostmarkAccountToken, cfg.Email.FromAddress)
	if err != nil {
		log.Fatalf("Failed to configure email sender: %v", err)
	}

	// WhatsApp is optional; without credentials only email goes out
	var whatsapp notifications.WhatsAppSender
	if client := notify.NewWhatsAppSender(cfg.WhatsApp.PhoneNumberID, cfg.WhatsApp.AccessToken); client.Configured() {
		whatsapp = client
	}

	sender := notifications.NewSender(notificationRepo, subscriptionRepo, emailSender, whatsapp,
		cfg.Domains.AppURL, cfg.Worker.NotificationLookback)
	runner := workers.NewRunner(cleanupRepo, sender, cfg.Worker.RetentionMonths)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Worker starting, interval %s", cfg.Worker.Interval)
	runner.Start(ctx, cfg.Worker.Interval)
}
