package billing

import "testing"

func TestPlanByType(t *testing.T) {
	tests := []struct {
		name       string
		planType   string
		wantOK     bool
		wantLawyer *int
	}{
		{name: "Pro", planType: "pro", wantOK: true, wantLawyer: limit(3)},
		{name: "Business", planType: "business", wantOK: true, wantLawyer: limit(10)},
		{name: "Enterprise Unlimited", planType: "enterprise", wantOK: true, wantLawyer: nil},
		{name: "Unknown", planType: "free", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, ok := PlanByType(tt.planType)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			got := plan.Limits.For(ResourceLawyers)
			if (got == nil) != (tt.wantLawyer == nil) {
				t.Fatalf("Expected lawyer limit %v, got %v", tt.wantLawyer, got)
			}
			if got != nil && *got != *tt.wantLawyer {
				t.Errorf("Expected lawyer limit %d, got %d", *tt.wantLawyer, *got)
			}
		})
	}
}

func TestPlanFeatures(t *testing.T) {
	for planType, wantWhatsApp := range map[string]bool{
		"pro": false, "business": true, "enterprise": true,
	} {
		plan, _ := PlanByType(planType)
		if !plan.Features.EmailNotifications {
			t.Errorf("%s: email notifications should be included in every plan", planType)
		}
		if plan.Features.WhatsAppNotifications != wantWhatsApp {
			t.Errorf("%s: expected whatsapp=%v, got %v", planType, wantWhatsApp, plan.Features.WhatsAppNotifications)
		}
	}
}

func TestPriceTable(t *testing.T) {
	table := NewPriceTable("price_pro", "price_biz", "price_ent")

	plan, ok := table.PlanByPriceID("price_biz")
	if !ok || plan.Type != "business" {
		t.Fatalf("Expected business plan, got %v ok=%v", plan.Type, ok)
	}

	if _, ok := table.PlanByPriceID("price_unknown"); ok {
		t.Error("Unknown price id should not resolve")
	}
	if _, ok := table.PlanByPriceID(""); ok {
		t.Error("Empty price id should not resolve")
	}

	id, ok := table.PriceIDByPlan("pro")
	if !ok || id != "price_pro" {
		t.Errorf("Expected price_pro, got %s ok=%v", id, ok)
	}
}
