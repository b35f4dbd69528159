package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/brunolandim/back-jurix/internal/api"
	"github.com/brunolandim/back-jurix/internal/api/handlers"
	"github.com/brunolandim/back-jurix/internal/api/middleware"
	"github.com/brunolandim/back-jurix/internal/engine/billing"
	"github.com/brunolandim/back-jurix/internal/engine/cases"
	"github.com/brunolandim/back-jurix/internal/engine/columns"
	"github.com/brunolandim/back-jurix/internal/engine/documents"
	"github.com/brunolandim/back-jurix/internal/engine/lawyers"
	"github.com/brunolandim/back-jurix/internal/engine/notifications"
	"github.com/brunolandim/back-jurix/internal/engine/organizations"
	"github.com/brunolandim/back-jurix/internal/engine/sharelinks"
	"github.com/brunolandim/back-jurix/internal/pkg/logger"
	"github.com/brunolandim/back-jurix/internal/platform/auth"
	"github.com/brunolandim/back-jurix/internal/platform/config"
	"github.com/brunolandim/back-jurix/internal/platform/database"
	"github.com/brunolandim/back-jurix/internal/platform/notify"
	"github.com/brunolandim/back-jurix/internal/platform/payments"
	"github.com/brunolandim/back-jurix/internal/platform/repositories"
	"github.com/brunolandim/back-jurix/internal/platform/storage"
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

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// Repositories
	orgRepo := repositories.NewOrganizationRepository(db)
	lawyerRepo := repositories.NewLawyerRepository(db)
	columnRepo := repositories.NewColumnRepository(db)
	caseRepo := repositories.NewCaseRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	shareLinkRepo := repositories.NewShareLinkRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)

	// Platform adapters
	tokenSvc := auth.NewTokenService(cfg.JWT)
	stripeClient := payments.NewStripeClient(cfg.Stripe.SecretKey)
	prices := billing.NewPriceTable(cfg.Stripe.ProPriceID, cfg.Stripe.BusinessPriceID, cfg.Stripe.EnterprisePriceID)

	emailSender, err := notify.NewPostmarkSender(cfg.Email.PostmarkServerToken, cfg.Email.PostmarkAccountToken, cfg.Email.FromAddress)
	if err != nil {
		log.Fatalf("Failed to configure email sender: %v", err)
	}

	s3Storage, err := storage.NewS3Storage(context.Background(), storage.Config{
		Bucket:  cfg.Storage.Bucket,
		Region:  cfg.Storage.Region,
		BaseURL: cfg.Storage.BaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to configure storage: %v", err)
	}

	// Engine services
	enforcer := billing.NewEnforcer(subscriptionRepo, lawyerRepo, caseRepo, shareLinkRepo)
	billingSvc := billing.NewService(subscriptionRepo, orgRepo, stripeClient, prices, cfg.Domains.AppURL,
		lawyerRepo, caseRepo, documentRepo, shareLinkRepo)
	reconciler := billing.NewReconciler(subscriptionRepo, orgRepo, prices)

	orgSvc := organizations.NewService(orgRepo, columnRepo)
	lawyerSvc := lawyers.NewService(lawyerRepo, enforcer)
	authSvc := lawyers.NewAuthService(lawyerRepo, tokenSvc, emailSender, cfg.Domains.AppURL)
	columnSvc := columns.NewService(columnRepo, caseRepo, enforcer)
	caseSvc := cases.NewService(caseRepo, columnRepo, lawyerRepo, notificationRepo, enforcer)
	documentSvc := documents.NewService(documentRepo, caseRepo, enforcer)
	shareLinkSvc := sharelinks.NewService(shareLinkRepo, documentRepo, caseRepo, enforcer)
	notificationSvc := notifications.NewService(notificationRepo, caseRepo, enforcer)

	// Handlers
	deps := &api.Dependencies{
		AuthHandler:         handlers.NewAuthHandler(authSvc, lawyerSvc),
		OrgHandler:          handlers.NewOrgHandler(orgSvc),
		LawyerHandler:       handlers.NewLawyerHandler(lawyerSvc),
		ColumnHandler:       handlers.NewColumnHandler(columnSvc),
		CaseHandler:         handlers.NewCaseHandler(caseSvc),
		DocumentHandler:     handlers.NewDocumentHandler(documentSvc, shareLinkSvc),
		NotificationHandler: handlers.NewNotificationHandler(notificationSvc),
		ShareLinkHandler:    handlers.NewShareLinkHandler(shareLinkSvc, s3Storage, cfg.Domains.AppURL),
		SubscriptionHandler: handlers.NewSubscriptionHandler(billingSvc),
		UploadHandler:       handlers.NewUploadHandler(s3Storage),
		WebhookHandler:      handlers.NewWebhookHandler(reconciler, cfg.Stripe.WebhookSecret),
		HealthHandler:       handlers.NewHealthHandler(db),
		AuthMiddleware:      middleware.NewAuthMiddleware(tokenSvc),
	}
	router := api.NewRouter(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Printf("Server starting on %s", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
