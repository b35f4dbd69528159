package billing

import (
	"testing"

	"github.com/brunolandim/back-jurix/internal/platform/models"
)

func testPrices() *PriceTable {
	return NewPriceTable("price_pro", "price_biz", "price_ent")
}

func createdEvent() *SubscriptionEvent {
	trialEnd := int64(1700000000)
	return &SubscriptionEvent{
		ID:                 "sub_ext",
		Customer:           "cus_123",
		Status:             models.StatusTrialing,
		PriceID:            "price_pro",
		CurrentPeriodStart: 1699000000,
		CurrentPeriodEnd:   1701000000,
		TrialEnd:           &trialEnd,
		Metadata:           map[string]string{"organizationId": "org-1"},
	}
}

func TestReconciler_HandleSubscriptionCreated(t *testing.T) {
	subs := newFakeSubscriptionStore()
	orgs := newFakeOrganizationStore(&models.Organization{ID: "org-1", Name: "Acme"})
	rec := NewReconciler(subs, orgs, testPrices())

	if err := rec.HandleSubscriptionCreated(createdEvent()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(subs.created) != 1 {
		t.Fatalf("Expected 1 created subscription, got %d", len(subs.created))
	}
	got := subs.created[0]
	if got.OrganizationID != "org-1" || got.Plan != "pro" || got.Status != models.StatusTrialing {
		t.Errorf("Unexpected subscription row: %+v", got)
	}
	if got.StripeSubscriptionID != "sub_ext" || got.StripePriceID != "price_pro" {
		t.Errorf("External ids not carried over: %+v", got)
	}
	if got.TrialEnd == nil || *got.TrialEnd != 1700000000 {
		t.Errorf("Trial end not carried over: %v", got.TrialEnd)
	}
	if orgs.backfilled["org-1"] != "cus_123" {
		t.Errorf("Expected customer id backfill, got %v", orgs.backfilled)
	}
}

func TestReconciler_HandleSubscriptionCreated_Idempotent(t *testing.T) {
	subs := newFakeSubscriptionStore()
	orgs := newFakeOrganizationStore(&models.Organization{ID: "org-1", Name: "Acme"})
	rec := NewReconciler(subs, orgs, testPrices())

	event := createdEvent()
	if err := rec.HandleSubscriptionCreated(event); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := rec.HandleSubscriptionCreated(event); err != nil {
		t.Fatalf("Unexpected error on duplicate delivery: %v", err)
	}

	if len(subs.created) != 1 {
		t.Errorf("Duplicate webhook must not create a second row, got %d", len(subs.created))
	}
}

func TestReconciler_HandleSubscriptionCreated_Resubscribe(t *testing.T) {
	canceledAt := int64(1698000000)
	subs := newFakeSubscriptionStore(&models.Subscription{
		ID:                   "sub-1",
		OrganizationID:       "org-1",
		StripeSubscriptionID: "sub_old",
		StripePriceID:        "price_pro",
		Plan:                 "pro",
		Status:               models.StatusCanceled,
		CanceledAt:           &canceledAt,
	})
	orgs := newFakeOrganizationStore(&models.Organization{ID: "org-1", Name: "Acme"})
	rec := NewReconciler(subs, orgs, testPrices())

	event := createdEvent()
	event.PriceID = "price_biz"
	if err := rec.HandleSubscriptionCreated(event); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// One row per organization: the existing record is repointed at the new
	// external subscription, never joined by a second one.
	if len(subs.created) != 0 {
		t.Fatalf("Expected no new row, got %d", len(subs.created))
	}
	if len(subs.updated) != 1 {
		t.Fatalf("Expected existing row updated, got %d updates", len(subs.updated))
	}
	got := subs.updated[0]
	if got.ID != "sub-1" || got.StripeSubscriptionID != "sub_ext" {
		t.Errorf("Expected sub-1 repointed at sub_ext, got %+v", got)
	}
	if got.Plan != "business" || got.Status != models.StatusTrialing {
		t.Errorf("Plan and status not refreshed: %+v", got)
	}
	if got.CanceledAt != nil {
		t.Errorf("Expected cancellation cleared, got %v", got.CanceledAt)
	}
}

func TestReconciler_HandleSubscriptionCreated_Dropped(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubscriptionEvent)
	}{
		{name: "Missing Organization Metadata", mutate: func(e *SubscriptionEvent) { e.Metadata = nil }},
		{name: "Missing Price", mutate: func(e *SubscriptionEvent) { e.PriceID = "" }},
		{name: "Unknown Price", mutate: func(e *SubscriptionEvent) { e.PriceID = "price_unknown" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := newFakeSubscriptionStore()
			orgs := newFakeOrganizationStore(&models.Organization{ID: "org-1", Name: "Acme"})
			rec := NewReconciler(subs, orgs, testPrices())

			event := createdEvent()
			tt.mutate(event)

			// Unmappable events are dropped without error so the
			// provider does not retry forever.
			if err := rec.HandleSubscriptionCreated(event); err != nil {
				t.Fatalf("Expected drop without error, got %v", err)
			}
			if len(subs.created) != 0 {
				t.Errorf("Expected no subscription row, got %d", len(subs.created))
			}
		})
	}
}

func TestReconciler_HandleSubscriptionCreated_KeepsExistingCustomerID(t *testing.T) {
	existing := "cus_original"
	subs := newFakeSubscriptionStore()
	orgs := newFakeOrganizationStore(&models.Organization{ID: "org-1", Name: "Acme", StripeCustomerID: &existing})
	rec := NewReconciler(subs, orgs, testPrices())

	if err := rec.HandleSubscriptionCreated(createdEvent()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(orgs.backfilled) != 0 {
		t.Errorf("Existing customer id must not be overwritten: %v", orgs.backfilled)
	}
}

func TestReconciler_HandleSubscriptionUpdated(t *testing.T) {
	subs := newFakeSubscriptionStore(&models.Subscription{
		ID:                   "row-1",
		OrganizationID:       "org-1",
		StripeSubscriptionID: "sub_ext",
		StripePriceID:        "price_pro",
		Plan:                 "pro",
		Status:               models.StatusTrialing,
	})
	orgs := newFakeOrganizationStore()
	rec := NewReconciler(subs, orgs, testPrices())

	canceledAt := int64(1702000000)
	err := rec.HandleSubscriptionUpdated(&SubscriptionEvent{
		ID:                 "sub_ext",
		Status:             models.StatusActive,
		PriceID:            "price_biz",
		CurrentPeriodStart: 1701000000,
		CurrentPeriodEnd:   1703000000,
		CancelAtPeriodEnd:  true,
		CanceledAt:         &canceledAt,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(subs.updated) != 1 {
		t.Fatalf("Expected 1 update, got %d", len(subs.updated))
	}
	got := subs.updated[0]
	if got.ID != "row-1" {
		t.Errorf("Update must keep the local row id, got %s", got.ID)
	}
	if got.Plan != "business" || got.StripePriceID != "price_biz" {
		t.Errorf("Plan change not applied: %+v", got)
	}
	if got.Status != models.StatusActive || !got.CancelAtPeriodEnd {
		t.Errorf("Status fields not applied: %+v", got)
	}
	if got.TrialEnd != nil {
		t.Errorf("Trial end should be cleared when the event carries none, got %v", got.TrialEnd)
	}
	if got.CanceledAt == nil || *got.CanceledAt != canceledAt {
		t.Errorf("CanceledAt not applied: %v", got.CanceledAt)
	}
}

func TestReconciler_HandleSubscriptionUpdated_SelfHeals(t *testing.T) {
	subs := newFakeSubscriptionStore()
	orgs := newFakeOrganizationStore(&models.Organization{ID: "org-1", Name: "Acme"})
	rec := NewReconciler(subs, orgs, testPrices())

	// No local row: the update is replayed as a creation.
	if err := rec.HandleSubscriptionUpdated(createdEvent()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(subs.created) != 1 || len(subs.updated) != 0 {
		t.Errorf("Expected creation path, got created=%d updated=%d", len(subs.created), len(subs.updated))
	}
}

func TestReconciler_HandleSubscriptionDeleted(t *testing.T) {
	subs := newFakeSubscriptionStore(&models.Subscription{
		ID:                   "row-1",
		OrganizationID:       "org-1",
		StripeSubscriptionID: "sub_ext",
		Plan:                 "pro",
		Status:               models.StatusActive,
	})
	rec := NewReconciler(subs, newFakeOrganizationStore(), testPrices())

	if err := rec.HandleSubscriptionDeleted(&SubscriptionEvent{ID: "sub_ext"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got := subs.updated[0]
	if got.Status != models.StatusCanceled {
		t.Errorf("Expected canceled status, got %s", got.Status)
	}
	if got.CanceledAt == nil {
		t.Error("Expected CanceledAt to be set")
	}
}

func TestReconciler_HandleSubscriptionDeleted_Unknown(t *testing.T) {
	subs := newFakeSubscriptionStore()
	rec := NewReconciler(subs, newFakeOrganizationStore(), testPrices())

	if err := rec.HandleSubscriptionDeleted(&SubscriptionEvent{ID: "sub_ghost"}); err != nil {
		t.Fatalf("Expected no-op for unknown subscription, got %v", err)
	}
	if len(subs.updated) != 0 {
		t.Errorf("No update expected, got %d", len(subs.updated))
	}
}
