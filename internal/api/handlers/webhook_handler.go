package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brunolandim/back-jurix/internal/engine/billing"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/payments"
)

const maxWebhookBody = 1 << 20 // 1 MiB

type WebhookHandler struct {
	reconciler *billing.Reconciler
	secret     string
}

func NewWebhookHandler(reconciler *billing.Reconciler, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{reconciler: reconciler, secret: webhookSecret}
}

// HandleStripe verifies the event signature and folds subscription events
// into the local store. Store failures return 500 so the provider retries;
// anything else is acknowledged so it does not.
func (h *WebhookHandler) HandleStripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		errors.Write(w, errors.Validation("Failed to read request body"))
		return
	}

	sig := r.Header.Get("Stripe-Signature")
	if err := payments.VerifySignature(payload, sig, h.secret, time.Now()); err != nil {
		log.Warn().Err(err).Msg("webhook signature rejected")
		errors.Write(w, errors.Unauthorized("Invalid webhook signature"))
		return
	}

	event, err := payments.ParseEvent(payload)
	if err != nil {
		errors.Write(w, errors.Validation("Malformed event payload"))
		return
	}

	switch event.Type {
	case payments.EventSubscriptionCreated, payments.EventSubscriptionUpdated,
		payments.EventSubscriptionDeleted, payments.EventTrialWillEnd:
	default:
		// Not a subscription event, acknowledge and move on
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	subEvent, err := event.SubscriptionEvent()
	if err != nil {
		log.Error().Err(err).Str("eventId", event.ID).Str("type", event.Type).Msg("dropping undecodable subscription event")
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	switch event.Type {
	case payments.EventSubscriptionCreated:
		err = h.reconciler.HandleSubscriptionCreated(subEvent)
	case payments.EventSubscriptionUpdated:
		err = h.reconciler.HandleSubscriptionUpdated(subEvent)
	case payments.EventSubscriptionDeleted:
		err = h.reconciler.HandleSubscriptionDeleted(subEvent)
	case payments.EventTrialWillEnd:
		err = h.reconciler.HandleTrialWillEnd(subEvent)
	}
	if err != nil {
		log.Error().Err(err).Str("eventId", event.ID).Str("type", event.Type).Msg("webhook reconciliation failed")
		errors.Write(w, errors.Internal("Failed to process event"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
