package billing

import (
	"context"
	"sync"

	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/auth"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

// PaymentProvider is the outbound payment port. The production adapter talks
// to Stripe; tests plug a fake.
type PaymentProvider interface {
	CreateCustomer(ctx context.Context, organizationID, name, email string) (string, error)
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error)
	CreateBillingPortalSession(ctx context.Context, customerID, returnURL string) (string, error)
	UpdateSubscription(ctx context.Context, subscriptionID string, cancelAtPeriodEnd bool) error
}

type CheckoutParams struct {
	CustomerID     string
	PriceID        string
	TrialDays      int
	OrganizationID string
	Plan           string
	SuccessURL     string
	CancelURL      string
}

// Usage pairs the current count of a resource with its plan limit
// (nil limit = unlimited).
type Usage struct {
	Current int  `json:"current"`
	Limit   *int `json:"limit"`
}

type SubscriptionInfo struct {
	Subscription      *models.Subscription `json:"subscription"`
	Plan              *string              `json:"plan"`
	Status            *string              `json:"status"`
	Usage             map[string]Usage     `json:"usage"`
	TrialEndsAt       *int64               `json:"trial_ends_at"`
	CancelAtPeriodEnd bool                 `json:"cancel_at_period_end"`
}

// Service implements the subscription-management operations of the private
// API on top of the subscription store and the payment port.
type Service struct {
	subscriptions SubscriptionStore
	organizations OrganizationStore
	provider      PaymentProvider
	prices        *PriceTable
	appURL        string

	lawyers     UsageCounter
	activeCases UsageCounter
	documents   UsageCounter
	shareLinks  UsageCounter
}

func NewService(
	subscriptions SubscriptionStore,
	organizations OrganizationStore,
	provider PaymentProvider,
	prices *PriceTable,
	appURL string,
	lawyers, activeCases, documents, shareLinks UsageCounter,
) *Service {
	return &Service{
		subscriptions: subscriptions,
		organizations: organizations,
		provider:      provider,
		prices:        prices,
		appURL:        appURL,
		lawyers:       lawyers,
		activeCases:   activeCases,
		documents:     documents,
		shareLinks:    shareLinks,
	}
}

// GetInfo aggregates the subscription, resolved plan, and the four usage
// counters. The counters are independent read-only aggregates, so they are
// read concurrently.
func (s *Service) GetInfo(authCtx auth.Context) (*SubscriptionInfo, error) {
	sub, err := s.subscriptions.FindByOrganization(authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}

	var plan *PlanDefinition
	if sub != nil {
		if p, ok := PlanByType(sub.Plan); ok {
			plan = &p
		}
	}

	counters := []struct {
		name    string
		counter UsageCounter
	}{
		{"lawyers", s.lawyers},
		{"activeCases", s.activeCases},
		{"documents", s.documents},
		{"shareLinks", s.shareLinks},
	}

	counts := make([]int, len(counters))
	countErrs := make([]error, len(counters))

	var wg sync.WaitGroup
	for i, c := range counters {
		wg.Add(1)
		go func(i int, counter UsageCounter) {
			defer wg.Done()
			counts[i], countErrs[i] = counter.CountByOrganization(authCtx.OrganizationID)
		}(i, c.counter)
	}
	wg.Wait()

	for _, err := range countErrs {
		if err != nil {
			return nil, err
		}
	}

	usage := make(map[string]Usage, len(counters))
	for i, c := range counters {
		var lim *int
		if plan != nil {
			lim = plan.Limits.For(Resource(c.name))
		}
		usage[c.name] = Usage{Current: counts[i], Limit: lim}
	}

	info := &SubscriptionInfo{Subscription: sub, Usage: usage}
	if sub != nil {
		info.Plan = &sub.Plan
		info.Status = &sub.Status
		info.TrialEndsAt = sub.TrialEnd
		info.CancelAtPeriodEnd = sub.CancelAtPeriodEnd
	}
	return info, nil
}

func (s *Service) CreateCheckout(ctx context.Context, plan string, authCtx auth.Context) (string, error) {
	if authCtx.Role != models.RoleOwner {
		return "", errors.Forbidden("Only the organization owner can manage subscriptions")
	}

	existing, err := s.subscriptions.FindByOrganization(authCtx.OrganizationID)
	if err != nil {
		return "", err
	}
	if existing != nil && (existing.Status == models.StatusActive || existing.Status == models.StatusTrialing) {
		return "", errors.Validation("Organization already has an active subscription")
	}

	priceID, ok := s.prices.PriceIDByPlan(plan)
	if !ok {
		return "", errors.Validation("Invalid plan")
	}

	org, err := s.organizations.FindByID(authCtx.OrganizationID)
	if err != nil {
		return "", err
	}
	if org == nil {
		return "", errors.NotFound("Organization", authCtx.OrganizationID)
	}

	customerID := ""
	if org.StripeCustomerID != nil {
		customerID = *org.StripeCustomerID
	}
	if customerID == "" {
		email := ""
		if org.Email != nil {
			email = *org.Email
		}
		customerID, err = s.provider.CreateCustomer(ctx, authCtx.OrganizationID, org.Name, email)
		if err != nil {
			return "", err
		}
		if err := s.organizations.UpdateStripeCustomerID(authCtx.OrganizationID, customerID); err != nil {
			return "", err
		}
	}

	return s.provider.CreateCheckoutSession(ctx, CheckoutParams{
		CustomerID:     customerID,
		PriceID:        priceID,
		TrialDays:      TrialDays,
		OrganizationID: authCtx.OrganizationID,
		Plan:           plan,
		SuccessURL:     s.appURL + "/dashboard?checkout=success",
		CancelURL:      s.appURL + "/pricing?checkout=cancel",
	})
}

func (s *Service) CreatePortal(ctx context.Context, authCtx auth.Context) (string, error) {
	if authCtx.Role != models.RoleOwner {
		return "", errors.Forbidden("Only the organization owner can manage subscriptions")
	}

	org, err := s.organizations.FindByID(authCtx.OrganizationID)
	if err != nil {
		return "", err
	}
	if org == nil || org.StripeCustomerID == nil {
		return "", errors.Validation("No billing account found")
	}

	return s.provider.CreateBillingPortalSession(ctx, *org.StripeCustomerID, s.appURL+"/dashboard")
}

// Cancel schedules cancellation at the end of the current period. The
// subscription row itself is never deleted; the provider's deletion webhook
// flips it to canceled once the period lapses.
func (s *Service) Cancel(ctx context.Context, authCtx auth.Context) error {
	if authCtx.Role != models.RoleOwner {
		return errors.Forbidden("Only the organization owner can manage subscriptions")
	}

	sub, err := s.subscriptions.FindByOrganization(authCtx.OrganizationID)
	if err != nil {
		return err
	}
	if sub == nil {
		return errors.Validation("No active subscription found")
	}
	if sub.Status != models.StatusActive && sub.Status != models.StatusTrialing {
		return errors.Validation("Subscription is not active")
	}

	if err := s.provider.UpdateSubscription(ctx, sub.StripeSubscriptionID, true); err != nil {
		return err
	}

	sub.CancelAtPeriodEnd = true
	return s.subscriptions.Update(sub)
}

func (s *Service) Reactivate(ctx context.Context, authCtx auth.Context) error {
	if authCtx.Role != models.RoleOwner {
		return errors.Forbidden("Only the organization owner can manage subscriptions")
	}

	sub, err := s.subscriptions.FindByOrganization(authCtx.OrganizationID)
	if err != nil {
		return err
	}
	if sub == nil {
		return errors.Validation("No subscription found")
	}
	if !sub.CancelAtPeriodEnd {
		return errors.Validation("Subscription is not set to cancel")
	}

	if err := s.provider.UpdateSubscription(ctx, sub.StripeSubscriptionID, false); err != nil {
		return err
	}

	sub.CancelAtPeriodEnd = false
	sub.CanceledAt = nil
	return s.subscriptions.Update(sub)
}
