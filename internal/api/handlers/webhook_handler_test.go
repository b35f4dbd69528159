package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brunolandim/back-jurix/internal/engine/billing"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

const testWebhookSecret = "whsec_test"

func signPayload(payload, secret string, at time.Time) string {
	ts := fmt.Sprintf("%d", at.Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + "." + payload))
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

type fakeSubscriptionStore struct {
	byStripe map[string]*models.Subscription
	created  []*models.Subscription
}

func (f *fakeSubscriptionStore) FindByOrganization(orgID string) (*models.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptionStore) FindByStripeSubscriptionID(id string) (*models.Subscription, error) {
	return f.byStripe[id], nil
}

func (f *fakeSubscriptionStore) Create(sub *models.Subscription) error {
	f.created = append(f.created, sub)
	return nil
}

func (f *fakeSubscriptionStore) Update(sub *models.Subscription) error { return nil }

type fakeOrganizationStore struct {
	org *models.Organization
}

func (f *fakeOrganizationStore) FindByID(id string) (*models.Organization, error) {
	if f.org != nil && f.org.ID == id {
		return f.org, nil
	}
	return nil, nil
}

func (f *fakeOrganizationStore) UpdateStripeCustomerID(id, customerID string) error { return nil }

func newWebhookHandler(subs *fakeSubscriptionStore) *WebhookHandler {
	orgs := &fakeOrganizationStore{org: &models.Organization{ID: "org-1", Active: true}}
	prices := billing.NewPriceTable("price_pro", "price_biz", "price_ent")
	return NewWebhookHandler(billing.NewReconciler(subs, orgs, prices), testWebhookSecret)
}

func subscriptionCreatedPayload() string {
	return `{
		"id": "evt_1",
		"type": "customer.subscription.created",
		"data": {"object": {
			"id": "sub_ext",
			"customer": "cus_1",
			"status": "trialing",
			"current_period_start": 1700000000,
			"current_period_end": 1702592000,
			"trial_end": 1701209600,
			"cancel_at_period_end": false,
			"metadata": {"organizationId": "org-1", "plan": "pro"},
			"items": {"data": [{"price": {"id": "price_pro"}}]}
		}}
	}`
}

func TestWebhookHandler_SubscriptionCreated(t *testing.T) {
	subs := &fakeSubscriptionStore{byStripe: map[string]*models.Subscription{}}
	handler := newWebhookHandler(subs)

	payload := subscriptionCreatedPayload()
	req := httptest.NewRequest("POST", "/api/v1/webhooks/stripe", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", signPayload(payload, testWebhookSecret, time.Now()))
	rec := httptest.NewRecorder()

	handler.HandleStripe(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(subs.created) != 1 {
		t.Fatalf("Expected 1 subscription created, got %d", len(subs.created))
	}
	if subs.created[0].Plan != "pro" || subs.created[0].StripeSubscriptionID != "sub_ext" {
		t.Errorf("Unexpected subscription: %+v", subs.created[0])
	}
}

func TestWebhookHandler_RejectsBadSignature(t *testing.T) {
	subs := &fakeSubscriptionStore{byStripe: map[string]*models.Subscription{}}
	handler := newWebhookHandler(subs)

	payload := subscriptionCreatedPayload()

	tests := []struct {
		name   string
		header string
	}{
		{"missing signature", ""},
		{"wrong secret", signPayload(payload, "whsec_other", time.Now())},
		{"stale timestamp", signPayload(payload, testWebhookSecret, time.Now().Add(-10*time.Minute))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/webhooks/stripe", strings.NewReader(payload))
			if tt.header != "" {
				req.Header.Set("Stripe-Signature", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.HandleStripe(rec, req)

			if rec.Code != 401 {
				t.Errorf("Expected 401, got %d", rec.Code)
			}
			if len(subs.created) != 0 {
				t.Errorf("Expected no subscriptions created, got %d", len(subs.created))
			}
		})
	}
}

func TestWebhookHandler_IgnoresUnrelatedEvents(t *testing.T) {
	subs := &fakeSubscriptionStore{byStripe: map[string]*models.Subscription{}}
	handler := newWebhookHandler(subs)

	payload := `{"id": "evt_2", "type": "invoice.paid", "data": {"object": {}}}`
	req := httptest.NewRequest("POST", "/api/v1/webhooks/stripe", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", signPayload(payload, testWebhookSecret, time.Now()))
	rec := httptest.NewRecorder()

	handler.HandleStripe(rec, req)

	if rec.Code != 200 {
		t.Errorf("Expected 200 acknowledgement, got %d", rec.Code)
	}
	if len(subs.created) != 0 {
		t.Errorf("Expected no subscriptions created, got %d", len(subs.created))
	}
}
