package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "github.com/brunolandim/back-jurix/internal/api/context"
	"github.com/brunolandim/back-jurix/internal/api/handlers"
	"github.com/brunolandim/back-jurix/internal/api/middleware"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/auth"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

type Dependencies struct {
	AuthHandler         *handlers.AuthHandler
	OrgHandler          *handlers.OrgHandler
	LawyerHandler       *handlers.LawyerHandler
	ColumnHandler       *handlers.ColumnHandler
	CaseHandler         *handlers.CaseHandler
	DocumentHandler     *handlers.DocumentHandler
	NotificationHandler *handlers.NotificationHandler
	ShareLinkHandler    *handlers.ShareLinkHandler
	SubscriptionHandler *handlers.SubscriptionHandler
	UploadHandler       *handlers.UploadHandler
	WebhookHandler      *handlers.WebhookHandler
	HealthHandler       *handlers.HealthHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	router.GET("/health", wrap(deps.HealthHandler.Handle))

	// Public routes
	router.POST("/api/v1/auth/login",
		chain(deps.AuthHandler.Login, middleware.Logging, middleware.RateLimit("auth")))
	router.POST("/api/v1/auth/forgot-password",
		chain(deps.AuthHandler.ForgotPassword, middleware.Logging, middleware.RateLimit("auth")))
	router.POST("/api/v1/auth/reset-password",
		chain(deps.AuthHandler.ResetPassword, middleware.Logging, middleware.RateLimit("auth")))

	// Public share-link upload flow, authenticated by token
	router.GET("/api/v1/share/:token",
		chain(deps.ShareLinkHandler.GetByToken, middleware.Logging, middleware.RateLimit("public")))
	router.POST("/api/v1/share/:token/upload-url",
		chain(deps.ShareLinkHandler.PresignUpload, middleware.Logging, middleware.RateLimit("public")))
	router.POST("/api/v1/share/:token/confirm",
		chain(deps.ShareLinkHandler.ConfirmUpload, middleware.Logging, middleware.RateLimit("public")))

	// Payment provider callbacks
	router.POST("/api/v1/webhooks/stripe",
		chain(deps.WebhookHandler.HandleStripe, middleware.Logging))

	authMid := deps.AuthMiddleware

	read := func(h http.HandlerFunc) httprouter.Handle {
		return chain(h, middleware.Logging, authMid.Handle, middleware.RateLimit("api_read"))
	}
	write := func(h http.HandlerFunc) httprouter.Handle {
		return chain(h, middleware.Logging, authMid.Handle, middleware.RateLimit("api_write"))
	}
	writeRole := func(h http.HandlerFunc, roles ...string) httprouter.Handle {
		mws := []func(http.HandlerFunc) http.HandlerFunc{
			middleware.Logging, authMid.Handle, middleware.RateLimit("api_write"), requireRole(roles...),
		}
		return chain(h, mws...)
	}

	// Current lawyer
	router.GET("/api/v1/me", read(deps.AuthHandler.GetMe))
	router.PUT("/api/v1/me", write(deps.AuthHandler.UpdateMe))

	// Organization
	router.GET("/api/v1/organization", read(deps.OrgHandler.Get))
	router.PUT("/api/v1/organization",
		writeRole(deps.OrgHandler.Update, models.RoleOwner, models.RoleAdmin))

	// Lawyers
	router.GET("/api/v1/lawyers", read(deps.LawyerHandler.List))
	router.GET("/api/v1/lawyers/:lawyer_id", read(deps.LawyerHandler.Get))
	router.POST("/api/v1/lawyers",
		writeRole(deps.LawyerHandler.Create, models.RoleOwner, models.RoleAdmin))
	router.PUT("/api/v1/lawyers/:lawyer_id",
		writeRole(deps.LawyerHandler.Update, models.RoleOwner, models.RoleAdmin))
	router.DELETE("/api/v1/lawyers/:lawyer_id",
		writeRole(deps.LawyerHandler.Delete, models.RoleOwner, models.RoleAdmin))

	// Board columns
	router.GET("/api/v1/columns", read(deps.ColumnHandler.List))
	router.POST("/api/v1/columns", write(deps.ColumnHandler.Create))
	router.PUT("/api/v1/columns/:column_id", write(deps.ColumnHandler.Update))
	router.DELETE("/api/v1/columns/:column_id", write(deps.ColumnHandler.Delete))

	// Cases
	router.GET("/api/v1/cases", read(deps.CaseHandler.List))
	router.GET("/api/v1/cases/:case_id", read(deps.CaseHandler.Get))
	router.POST("/api/v1/cases", write(deps.CaseHandler.Create))
	router.PUT("/api/v1/cases/:case_id", write(deps.CaseHandler.Update))
	router.PATCH("/api/v1/cases/:case_id/move", write(deps.CaseHandler.Move))
	router.PATCH("/api/v1/cases/:case_id/assign", write(deps.CaseHandler.Assign))
	router.DELETE("/api/v1/cases/:case_id", write(deps.CaseHandler.Delete))

	// Document requests
	router.GET("/api/v1/documents", read(deps.DocumentHandler.ListByCase))
	router.POST("/api/v1/documents", write(deps.DocumentHandler.Create))
	router.PUT("/api/v1/documents/:document_id", write(deps.DocumentHandler.Update))
	router.PATCH("/api/v1/documents/:document_id/approve", write(deps.DocumentHandler.Approve))
	router.PATCH("/api/v1/documents/:document_id/reject", write(deps.DocumentHandler.Reject))
	router.DELETE("/api/v1/documents/:document_id", write(deps.DocumentHandler.Delete))

	// Notifications
	router.GET("/api/v1/notifications", read(deps.NotificationHandler.List))
	router.POST("/api/v1/notifications", write(deps.NotificationHandler.Create))
	router.PUT("/api/v1/notifications/:notification_id", write(deps.NotificationHandler.Update))
	router.PATCH("/api/v1/notifications/:notification_id/read", write(deps.NotificationHandler.MarkAsRead))
	// POST instead of PATCH: the router cannot mix a static "read-all"
	// segment with the :notification_id wildcard in the same method tree.
	router.POST("/api/v1/notifications/read-all", write(deps.NotificationHandler.MarkAllAsRead))
	router.DELETE("/api/v1/notifications/:notification_id", write(deps.NotificationHandler.Delete))

	// Share links
	router.GET("/api/v1/share-links", read(deps.ShareLinkHandler.ListByCase))
	router.POST("/api/v1/share-links", write(deps.ShareLinkHandler.Create))
	router.DELETE("/api/v1/share-links/:link_id", write(deps.ShareLinkHandler.Expire))

	// Subscription
	router.GET("/api/v1/subscription", read(deps.SubscriptionHandler.Get))
	router.POST("/api/v1/subscription/checkout",
		writeRole(deps.SubscriptionHandler.CreateCheckout, models.RoleOwner))
	router.POST("/api/v1/subscription/portal",
		writeRole(deps.SubscriptionHandler.CreatePortal, models.RoleOwner))
	router.DELETE("/api/v1/subscription",
		writeRole(deps.SubscriptionHandler.Cancel, models.RoleOwner))
	router.POST("/api/v1/subscription/reactivate",
		writeRole(deps.SubscriptionHandler.Reactivate, models.RoleOwner))

	// Uploads
	router.POST("/api/v1/uploads/presigned-url", write(deps.UploadHandler.PresignUpload))
	router.POST("/api/v1/uploads", write(deps.UploadHandler.Upload))

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		// Inject params into context
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}

func requireRole(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims := r.Context().Value(apiContext.Claims).(*auth.Claims)

			allowed := false
			for _, role := range roles {
				if claims.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				errors.WriteError(w, http.StatusForbidden, errors.ErrCodeForbidden, "Insufficient permissions", nil)
				return
			}

			next(w, r)
		}
	}
}
