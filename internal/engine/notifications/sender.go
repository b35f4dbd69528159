package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brunolandim/back-jurix/internal/engine/billing"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

// EmailSender delivers a rendered notification email. Email delivery is
// mandatory; a failure fails the notification.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// WhatsAppSender delivers the case-notification template. WhatsApp is
// best-effort on top of email.
type WhatsAppSender interface {
	SendCaseNotification(ctx context.Context, phone, typeLabel, caseInfo, message string) error
}

// SubscriptionLookup resolves the organization's subscription for plan
// feature gating.
type SubscriptionLookup interface {
	FindByOrganization(organizationID string) (*models.Subscription, error)
}

type SendError struct {
	NotificationID string `json:"notificationId"`
	Error          string `json:"error"`
}

type ProcessResult struct {
	Total  int         `json:"total"`
	Sent   int         `json:"sent"`
	Failed int         `json:"failed"`
	Errors []SendError `json:"errors"`
}

// Sender delivers due notifications. Each run picks up notifications whose
// date fell inside the lookback window and is not in the future; anything
// older is considered missed and left for the cleanup sweep.
type Sender struct {
	store         Store
	subscriptions SubscriptionLookup
	email         EmailSender
	whatsapp      WhatsAppSender
	appURL        string
	lookback      time.Duration
}

func NewSender(store Store, subscriptions SubscriptionLookup, email EmailSender, whatsapp WhatsAppSender, appURL string, lookback time.Duration) *Sender {
	return &Sender{
		store:         store,
		subscriptions: subscriptions,
		email:         email,
		whatsapp:      whatsapp,
		appURL:        appURL,
		lookback:      lookback,
	}
}

// Run processes every due notification. Failures are isolated per
// notification: one bad row never blocks the rest of the batch.
func (s *Sender) Run(ctx context.Context) (*ProcessResult, error) {
	result := &ProcessResult{Errors: []SendError{}}

	now := time.Now().Unix()
	pending, err := s.store.FindPendingToSend(now, now-int64(s.lookback.Seconds()))
	if err != nil {
		return nil, err
	}
	result.Total = len(pending)
	if len(pending) == 0 {
		return result, nil
	}

	// Subscriptions are cached per organization for the run.
	subCache := make(map[string]*models.Subscription)

	for _, n := range pending {
		if err := s.send(ctx, n, subCache); err != nil {
			log.Error().Err(err).Str("notification", n.ID).Msg("notification send failed")
			result.Failed++
			result.Errors = append(result.Errors, SendError{NotificationID: n.ID, Error: err.Error()})
			continue
		}
		result.Sent++
	}

	return result, nil
}

func (s *Sender) send(ctx context.Context, n *PendingNotification, subCache map[string]*models.Subscription) error {
	if n.Lawyer == nil {
		return errors.New("No lawyer assigned")
	}

	orgID := n.Lawyer.OrganizationID
	sub, ok := subCache[orgID]
	if !ok {
		var err error
		sub, err = s.subscriptions.FindByOrganization(orgID)
		if err != nil {
			return err
		}
		subCache[orgID] = sub
	}

	if err := s.email.Send(ctx, n.Lawyer.Email, EmailSubject(n), BuildNotificationEmail(n, s.appURL)); err != nil {
		return err
	}

	if s.whatsappEnabled(sub) && n.Lawyer.Phone != nil && *n.Lawyer.Phone != "" {
		message := ""
		if n.Message != nil {
			message = *n.Message
		}
		caseInfo := fmt.Sprintf("%s - %s", n.CaseTitle, n.CaseNumber)
		err := s.whatsapp.SendCaseNotification(ctx, NormalizePhone(*n.Lawyer.Phone), TypeLabel(n.Type), caseInfo, message)
		if err != nil {
			// Best effort: the email already went out.
			log.Error().Err(err).Str("notification", n.ID).Msg("whatsapp send failed")
		}
	}

	return s.store.MarkAsSent(n.ID, time.Now().Unix())
}

func (s *Sender) whatsappEnabled(sub *models.Subscription) bool {
	if s.whatsapp == nil || sub == nil {
		return false
	}
	plan, ok := billing.PlanByType(sub.Plan)
	return ok && plan.Features.WhatsAppNotifications
}
