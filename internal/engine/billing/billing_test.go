package billing

import (
	"errors"

	"github.com/brunolandim/back-jurix/internal/platform/models"
)

// fakeSubscriptionStore keeps subscriptions in memory keyed by the external
// subscription id.
type fakeSubscriptionStore struct {
	byOrg    map[string]*models.Subscription
	byStripe map[string]*models.Subscription
	created  []*models.Subscription
	updated  []*models.Subscription
	err      error
}

func newFakeSubscriptionStore(subs ...*models.Subscription) *fakeSubscriptionStore {
	s := &fakeSubscriptionStore{
		byOrg:    make(map[string]*models.Subscription),
		byStripe: make(map[string]*models.Subscription),
	}
	for _, sub := range subs {
		s.byOrg[sub.OrganizationID] = sub
		s.byStripe[sub.StripeSubscriptionID] = sub
	}
	return s
}

func (s *fakeSubscriptionStore) FindByOrganization(organizationID string) (*models.Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byOrg[organizationID], nil
}

func (s *fakeSubscriptionStore) FindByStripeSubscriptionID(id string) (*models.Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byStripe[id], nil
}

func (s *fakeSubscriptionStore) Create(sub *models.Subscription) error {
	s.created = append(s.created, sub)
	s.byOrg[sub.OrganizationID] = sub
	s.byStripe[sub.StripeSubscriptionID] = sub
	return nil
}

func (s *fakeSubscriptionStore) Update(sub *models.Subscription) error {
	s.updated = append(s.updated, sub)
	s.byOrg[sub.OrganizationID] = sub
	s.byStripe[sub.StripeSubscriptionID] = sub
	return nil
}

type fakeCounter struct {
	count int
	err   error
}

func (c *fakeCounter) CountByOrganization(string) (int, error) {
	return c.count, c.err
}

type fakeOrganizationStore struct {
	orgs       map[string]*models.Organization
	backfilled map[string]string
}

func newFakeOrganizationStore(orgs ...*models.Organization) *fakeOrganizationStore {
	s := &fakeOrganizationStore{
		orgs:       make(map[string]*models.Organization),
		backfilled: make(map[string]string),
	}
	for _, org := range orgs {
		s.orgs[org.ID] = org
	}
	return s
}

func (s *fakeOrganizationStore) FindByID(id string) (*models.Organization, error) {
	return s.orgs[id], nil
}

func (s *fakeOrganizationStore) UpdateStripeCustomerID(id, customerID string) error {
	s.backfilled[id] = customerID
	if org, ok := s.orgs[id]; ok {
		org.StripeCustomerID = &customerID
	}
	return nil
}

var errStore = errors.New("store unavailable")
