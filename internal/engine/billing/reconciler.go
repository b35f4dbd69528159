package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/brunolandim/back-jurix/internal/platform/models"
)

// SubscriptionEvent is the provider's subscription snapshot carried by the
// lifecycle webhooks. Epoch fields are seconds, straight off the wire.
type SubscriptionEvent struct {
	ID                 string            `json:"id"`
	Customer           string            `json:"customer"`
	Status             string            `json:"status"`
	PriceID            string            `json:"price_id"`
	CurrentPeriodStart int64             `json:"current_period_start"`
	CurrentPeriodEnd   int64             `json:"current_period_end"`
	TrialEnd           *int64            `json:"trial_end"`
	CancelAtPeriodEnd  bool              `json:"cancel_at_period_end"`
	CanceledAt         *int64            `json:"canceled_at"`
	Metadata           map[string]string `json:"metadata"`
}

// OrganizationStore is the organization slice the reconciler needs to
// backfill payment-customer ids.
type OrganizationStore interface {
	FindByID(id string) (*models.Organization, error)
	UpdateStripeCustomerID(id, customerID string) error
}

// Reconciler folds payment-provider webhook events into the local
// subscription store. Handlers are idempotent on the external subscription
// id; malformed or unmappable events are logged and dropped so the provider
// never retries into a poison loop.
type Reconciler struct {
	subscriptions SubscriptionStore
	organizations OrganizationStore
	prices        *PriceTable
}

func NewReconciler(subscriptions SubscriptionStore, organizations OrganizationStore, prices *PriceTable) *Reconciler {
	return &Reconciler{
		subscriptions: subscriptions,
		organizations: organizations,
		prices:        prices,
	}
}

func (r *Reconciler) HandleSubscriptionCreated(event *SubscriptionEvent) error {
	existing, err := r.subscriptions.FindByStripeSubscriptionID(event.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		// Duplicate delivery.
		return nil
	}

	organizationID := event.Metadata["organizationId"]
	if organizationID == "" {
		log.Error().Str("subscription", event.ID).Msg("webhook: missing organizationId in subscription metadata")
		return nil
	}

	if event.PriceID == "" {
		log.Error().Str("subscription", event.ID).Msg("webhook: missing price id in subscription")
		return nil
	}

	plan, ok := r.prices.PlanByPriceID(event.PriceID)
	if !ok {
		log.Error().Str("price_id", event.PriceID).Msg("webhook: unknown price id")
		return nil
	}

	org, err := r.organizations.FindByID(organizationID)
	if err != nil {
		return err
	}
	if org != nil && org.StripeCustomerID == nil && event.Customer != "" {
		if err := r.organizations.UpdateStripeCustomerID(organizationID, event.Customer); err != nil {
			return err
		}
	}

	now := time.Now().Unix()

	// An organization holds at most one subscription row. A re-subscribe
	// arrives as a fresh external id; repoint the existing row instead of
	// inserting a second one.
	current, err := r.subscriptions.FindByOrganization(organizationID)
	if err != nil {
		return err
	}
	if current != nil {
		current.StripeSubscriptionID = event.ID
		current.StripePriceID = event.PriceID
		current.Plan = plan.Type
		current.Status = event.Status
		current.CurrentPeriodStart = event.CurrentPeriodStart
		current.CurrentPeriodEnd = event.CurrentPeriodEnd
		current.TrialEnd = event.TrialEnd
		current.CancelAtPeriodEnd = event.CancelAtPeriodEnd
		current.CanceledAt = nil
		current.UpdatedAt = now
		return r.subscriptions.Update(current)
	}

	return r.subscriptions.Create(&models.Subscription{
		ID:                   uuid.NewString(),
		OrganizationID:       organizationID,
		StripeSubscriptionID: event.ID,
		StripePriceID:        event.PriceID,
		Plan:                 plan.Type,
		Status:               event.Status,
		CurrentPeriodStart:   event.CurrentPeriodStart,
		CurrentPeriodEnd:     event.CurrentPeriodEnd,
		TrialEnd:             event.TrialEnd,
		CancelAtPeriodEnd:    event.CancelAtPeriodEnd,
		CreatedAt:            now,
		UpdatedAt:            now,
	})
}

// HandleSubscriptionUpdated patches the local record from the event; the
// provider is authoritative for every field. A missing local record is
// self-healed by treating the event as a creation (covers a lost created
// webhook or out-of-order delivery).
func (r *Reconciler) HandleSubscriptionUpdated(event *SubscriptionEvent) error {
	existing, err := r.subscriptions.FindByStripeSubscriptionID(event.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.HandleSubscriptionCreated(event)
	}

	if event.PriceID != "" {
		existing.StripePriceID = event.PriceID
	}
	if plan, ok := r.prices.PlanByPriceID(event.PriceID); ok {
		existing.Plan = plan.Type
	}
	existing.Status = event.Status
	existing.CurrentPeriodStart = event.CurrentPeriodStart
	existing.CurrentPeriodEnd = event.CurrentPeriodEnd
	existing.TrialEnd = event.TrialEnd
	existing.CancelAtPeriodEnd = event.CancelAtPeriodEnd
	existing.CanceledAt = event.CanceledAt
	existing.UpdatedAt = time.Now().Unix()

	return r.subscriptions.Update(existing)
}

func (r *Reconciler) HandleSubscriptionDeleted(event *SubscriptionEvent) error {
	existing, err := r.subscriptions.FindByStripeSubscriptionID(event.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	now := time.Now().Unix()
	existing.Status = models.StatusCanceled
	existing.CanceledAt = &now
	existing.UpdatedAt = now

	return r.subscriptions.Update(existing)
}

// HandleTrialWillEnd is an observability hook; downstream notification is
// handled outside this system.
func (r *Reconciler) HandleTrialWillEnd(event *SubscriptionEvent) error {
	log.Info().Str("subscription", event.ID).Msg("trial will end")
	return nil
}
