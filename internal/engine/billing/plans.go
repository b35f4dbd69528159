package billing

// Resource is a quota-limited resource type.
type Resource string

const (
	ResourceLawyers     Resource = "lawyers"
	ResourceActiveCases Resource = "activeCases"
	ResourceShareLinks  Resource = "shareLinks"
	// ResourceDocuments exists in the catalog for display purposes but is
	// no longer enforced.
	ResourceDocuments Resource = "documents"
)

// EnforcedResources are the resources the enforcer gates on. Documents were
// dropped from enforcement when the catalog was last reshaped.
var EnforcedResources = []Resource{ResourceLawyers, ResourceActiveCases, ResourceShareLinks}

// PlanLimits holds per-resource quotas. nil means unlimited.
type PlanLimits struct {
	Lawyers     *int `json:"lawyers"`
	ActiveCases *int `json:"active_cases"`
	Documents   *int `json:"documents"`
	ShareLinks  *int `json:"share_links"`
}

func (l PlanLimits) For(resource Resource) *int {
	switch resource {
	case ResourceLawyers:
		return l.Lawyers
	case ResourceActiveCases:
		return l.ActiveCases
	case ResourceDocuments:
		return l.Documents
	case ResourceShareLinks:
		return l.ShareLinks
	}
	return nil
}

type PlanFeatures struct {
	EmailNotifications    bool `json:"email_notifications"`
	WhatsAppNotifications bool `json:"whatsapp_notifications"`
}

type PlanDefinition struct {
	Name     string       `json:"name"`
	Type     string       `json:"type"`
	Price    int          `json:"price"` // cents (BRL)
	Limits   PlanLimits   `json:"limits"`
	Features PlanFeatures `json:"features"`
}

// TrialDays is the checkout trial window for every plan.
const TrialDays = 14

func limit(n int) *int { return &n }

// Plans is the static plan catalog. Limits change only with a redeploy,
// never per tenant.
var Plans = map[string]PlanDefinition{
	"pro": {
		Name:  "Pro",
		Type:  "pro",
		Price: 9700,
		Limits: PlanLimits{
			Lawyers:     limit(3),
			ActiveCases: limit(30),
			Documents:   limit(100),
			ShareLinks:  limit(10),
		},
		Features: PlanFeatures{EmailNotifications: true},
	},
	"business": {
		Name:  "Business",
		Type:  "business",
		Price: 19700,
		Limits: PlanLimits{
			Lawyers:     limit(10),
			ActiveCases: limit(200),
			Documents:   limit(500),
			ShareLinks:  limit(50),
		},
		Features: PlanFeatures{EmailNotifications: true, WhatsAppNotifications: true},
	},
	"enterprise": {
		Name:     "Enterprise",
		Type:     "enterprise",
		Price:    39700,
		Limits:   PlanLimits{},
		Features: PlanFeatures{EmailNotifications: true, WhatsAppNotifications: true},
	},
}

// PlanByType resolves a catalog entry; ok is false for unknown keys.
func PlanByType(planType string) (PlanDefinition, bool) {
	p, ok := Plans[planType]
	return p, ok
}

// PriceTable maps provider price ids to plan types. The ids come from
// configuration since they differ per Stripe account.
type PriceTable struct {
	byPriceID map[string]string
	byPlan    map[string]string
}

func NewPriceTable(proPriceID, businessPriceID, enterprisePriceID string) *PriceTable {
	return &PriceTable{
		byPriceID: map[string]string{
			proPriceID:        "pro",
			businessPriceID:   "business",
			enterprisePriceID: "enterprise",
		},
		byPlan: map[string]string{
			"pro":        proPriceID,
			"business":   businessPriceID,
			"enterprise": enterprisePriceID,
		},
	}
}

// PlanByPriceID resolves a price id to its plan definition, or ok=false when
// the price is not part of the catalog.
func (t *PriceTable) PlanByPriceID(priceID string) (PlanDefinition, bool) {
	planType, ok := t.byPriceID[priceID]
	if !ok || priceID == "" {
		return PlanDefinition{}, false
	}
	return PlanByType(planType)
}

func (t *PriceTable) PriceIDByPlan(planType string) (string, bool) {
	id, ok := t.byPlan[planType]
	return id, ok && id != ""
}
