package billing

import (
	"testing"

	apperrors "github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

func sub(status, plan string) *models.Subscription {
	return &models.Subscription{
		ID:                   "sub-row",
		OrganizationID:       "org-1",
		StripeSubscriptionID: "sub_ext",
		Plan:                 plan,
		Status:               status,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if code == "" {
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		return
	}
	appErr, ok := err.(*apperrors.Error)
	if !ok {
		t.Fatalf("Expected app error %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("Expected code %s, got %s", code, appErr.Code)
	}
}

func TestCheckSubscription(t *testing.T) {
	tests := []struct {
		name     string
		sub      *models.Subscription
		wantCode string
	}{
		{name: "No Subscription", sub: nil, wantCode: apperrors.ErrCodeSubscriptionRequired},
		{name: "Trialing", sub: sub(models.StatusTrialing, "pro"), wantCode: ""},
		{name: "Active", sub: sub(models.StatusActive, "pro"), wantCode: ""},
		{name: "Past Due", sub: sub(models.StatusPastDue, "pro"), wantCode: apperrors.ErrCodeReadOnlyMode},
		{name: "Canceled", sub: sub(models.StatusCanceled, "pro"), wantCode: apperrors.ErrCodeSubscriptionRequired},
		{name: "Unpaid", sub: sub(models.StatusUnpaid, "pro"), wantCode: apperrors.ErrCodeSubscriptionRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCode(t, CheckSubscription(tt.sub), tt.wantCode)
		})
	}
}

func TestEnforcer_Enforce(t *testing.T) {
	tests := []struct {
		name     string
		sub      *models.Subscription
		resource Resource
		count    int
		wantCode string
	}{
		{
			name:     "Under Limit",
			sub:      sub(models.StatusActive, "pro"),
			resource: ResourceLawyers,
			count:    2,
			wantCode: "",
		},
		{
			name:     "At Limit",
			sub:      sub(models.StatusActive, "pro"),
			resource: ResourceLawyers,
			count:    3,
			wantCode: apperrors.ErrCodePlanLimitReached,
		},
		{
			name:     "Over Limit",
			sub:      sub(models.StatusActive, "pro"),
			resource: ResourceActiveCases,
			count:    31,
			wantCode: apperrors.ErrCodePlanLimitReached,
		},
		{
			name:     "Unlimited Plan",
			sub:      sub(models.StatusActive, "enterprise"),
			resource: ResourceLawyers,
			count:    10000,
			wantCode: "",
		},
		{
			name:     "Unknown Plan Passes",
			sub:      sub(models.StatusActive, "legacy-gold"),
			resource: ResourceLawyers,
			count:    10000,
			wantCode: "",
		},
		{
			name:     "Trialing Counts Against Quota",
			sub:      sub(models.StatusTrialing, "pro"),
			resource: ResourceShareLinks,
			count:    10,
			wantCode: apperrors.ErrCodePlanLimitReached,
		},
		{
			name:     "Past Due Blocks Before Counting",
			sub:      sub(models.StatusPastDue, "pro"),
			resource: ResourceLawyers,
			count:    0,
			wantCode: apperrors.ErrCodeReadOnlyMode,
		},
		{
			name:     "No Subscription",
			sub:      nil,
			resource: ResourceLawyers,
			count:    0,
			wantCode: apperrors.ErrCodeSubscriptionRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeSubscriptionStore()
			if tt.sub != nil {
				store.byOrg["org-1"] = tt.sub
			}
			counter := &fakeCounter{count: tt.count}
			enforcer := NewEnforcer(store, counter, counter, counter)

			assertCode(t, enforcer.Enforce("org-1", tt.resource), tt.wantCode)
		})
	}
}

func TestEnforcer_Enforce_CounterError(t *testing.T) {
	store := newFakeSubscriptionStore(sub(models.StatusActive, "pro"))
	counter := &fakeCounter{err: errStore}
	enforcer := NewEnforcer(store, counter, counter, counter)

	if err := enforcer.Enforce("org-1", ResourceLawyers); err != errStore {
		t.Fatalf("Expected counter error to propagate, got %v", err)
	}
}

func TestEnforcer_Enforce_LimitDetails(t *testing.T) {
	store := newFakeSubscriptionStore(sub(models.StatusActive, "pro"))
	counter := &fakeCounter{count: 30}
	enforcer := NewEnforcer(store, counter, counter, counter)

	err := enforcer.Enforce("org-1", ResourceActiveCases)
	appErr, ok := err.(*apperrors.Error)
	if !ok {
		t.Fatalf("Expected app error, got %v", err)
	}
	details, ok := appErr.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected details map, got %T", appErr.Details)
	}
	if details["resource"] != "activeCases" || details["limit"] != 30 {
		t.Errorf("Unexpected details: %v", details)
	}
}
