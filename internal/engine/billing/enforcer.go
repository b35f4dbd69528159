package billing

import (
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

// SubscriptionStore is the slice of the subscription repository the billing
// engine depends on.
type SubscriptionStore interface {
	FindByOrganization(organizationID string) (*models.Subscription, error)
	FindByStripeSubscriptionID(stripeSubscriptionID string) (*models.Subscription, error)
	Create(sub *models.Subscription) error
	Update(sub *models.Subscription) error
}

// UsageCounter reports the current count of a quota-limited resource for an
// organization (active lawyers, active cases, non-expired share links).
type UsageCounter interface {
	CountByOrganization(organizationID string) (int, error)
}

// Enforcer gates mutating operations on subscription health and plan quotas.
type Enforcer struct {
	subscriptions SubscriptionStore
	counters      map[Resource]UsageCounter
}

func NewEnforcer(subscriptions SubscriptionStore, lawyers, activeCases, shareLinks UsageCounter) *Enforcer {
	return &Enforcer{
		subscriptions: subscriptions,
		counters: map[Resource]UsageCounter{
			ResourceLawyers:     lawyers,
			ResourceActiveCases: activeCases,
			ResourceShareLinks:  shareLinks,
		},
	}
}

// CheckSubscription validates that the organization's subscription allows
// writes: trialing/active pass, past_due is read-only, anything else (or no
// subscription at all) requires a new subscription.
func CheckSubscription(sub *models.Subscription) error {
	if sub == nil {
		return errors.SubscriptionRequired()
	}

	switch sub.Status {
	case models.StatusTrialing, models.StatusActive:
		return nil
	case models.StatusPastDue:
		return errors.ReadOnlyMode()
	default:
		return errors.SubscriptionRequired()
	}
}

// CheckWrite gates a mutating operation that does not consume quota.
func (e *Enforcer) CheckWrite(organizationID string) error {
	sub, err := e.subscriptions.FindByOrganization(organizationID)
	if err != nil {
		return err
	}
	return CheckSubscription(sub)
}

// Enforce decides whether one more unit of resource may be created for the
// organization. It is a read-only check; callers must invoke it before the
// creating write. Concurrent creations at the boundary can overshoot by a
// small margin, which the design accepts.
func (e *Enforcer) Enforce(organizationID string, resource Resource) error {
	sub, err := e.subscriptions.FindByOrganization(organizationID)
	if err != nil {
		return err
	}

	if err := CheckSubscription(sub); err != nil {
		return err
	}

	// Unknown plan keys pass unlimited so a catalog/deploy mismatch never
	// locks tenants out.
	plan, ok := PlanByType(sub.Plan)
	if !ok {
		return nil
	}

	lim := plan.Limits.For(resource)
	if lim == nil {
		return nil
	}

	counter, ok := e.counters[resource]
	if !ok {
		return nil
	}

	current, err := counter.CountByOrganization(organizationID)
	if err != nil {
		return err
	}

	if current >= *lim {
		return errors.PlanLimitReached(string(resource), *lim)
	}

	return nil
}
