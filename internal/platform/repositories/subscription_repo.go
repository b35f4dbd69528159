package repositories

import (
	"database/sql"
	"time"

	"github.com/brunolandim/back-jurix/internal/platform/models"
)

type SubscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(sub *models.Subscription) error {
	_, err := r.db.Exec(`
		INSERT INTO subscriptions (
			id, organization_id, stripe_subscription_id, stripe_price_id, plan, status,
			current_period_start, current_period_end, trial_end, cancel_at_period_end,
			canceled_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sub.ID, sub.OrganizationID, sub.StripeSubscriptionID, sub.StripePriceID, sub.Plan, sub.Status,
		sub.CurrentPeriodStart, sub.CurrentPeriodEnd, sub.TrialEnd, sub.CancelAtPeriodEnd,
		sub.CanceledAt, sub.CreatedAt, sub.UpdatedAt)
	return err
}

func (r *SubscriptionRepository) Update(sub *models.Subscription) error {
	_, err := r.db.Exec(`
		UPDATE subscriptions SET
			stripe_subscription_id = ?, stripe_price_id = ?, plan = ?, status = ?,
			current_period_start = ?, current_period_end = ?, trial_end = ?,
			cancel_at_period_end = ?, canceled_at = ?, updated_at = ?
		WHERE id = ?
	`, sub.StripeSubscriptionID, sub.StripePriceID, sub.Plan, sub.Status,
		sub.CurrentPeriodStart, sub.CurrentPeriodEnd, sub.TrialEnd,
		sub.CancelAtPeriodEnd, sub.CanceledAt, time.Now().Unix(), sub.ID)
	return err
}

func (r *SubscriptionRepository) FindByOrganization(organizationID string) (*models.Subscription, error) {
	row := r.db.QueryRow(`
		SELECT id, organization_id, stripe_subscription_id, stripe_price_id, plan, status,
		       current_period_start, current_period_end, trial_end, cancel_at_period_end,
		       canceled_at, created_at, updated_at
		FROM subscriptions WHERE organization_id = ?
		ORDER BY created_at DESC LIMIT 1
	`, organizationID)
	return scanSubscription(row)
}

func (r *SubscriptionRepository) FindByStripeSubscriptionID(stripeSubscriptionID string) (*models.Subscription, error) {
	row := r.db.QueryRow(`
		SELECT id, organization_id, stripe_subscription_id, stripe_price_id, plan, status,
		       current_period_start, current_period_end, trial_end, cancel_at_period_end,
		       canceled_at, created_at, updated_at
		FROM subscriptions WHERE stripe_subscription_id = ?
	`, stripeSubscriptionID)
	return scanSubscription(row)
}

func scanSubscription(row *sql.Row) (*models.Subscription, error) {
	sub := &models.Subscription{}
	err := row.Scan(
		&sub.ID,
		&sub.OrganizationID,
		&sub.StripeSubscriptionID,
		&sub.StripePriceID,
		&sub.Plan,
		&sub.Status,
		&sub.CurrentPeriodStart,
		&sub.CurrentPeriodEnd,
		&sub.TrialEnd,
		&sub.CancelAtPeriodEnd,
		&sub.CanceledAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}
