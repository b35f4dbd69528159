package cases

import (
	"testing"

	"github.com/brunolandim/back-jurix/internal/engine/billing"
	apperrors "github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/auth"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

type fakeStore struct {
	cases map[string]*models.LegalCase
}

func newFakeStore(cs ...*models.LegalCase) *fakeStore {
	s := &fakeStore{cases: make(map[string]*models.LegalCase)}
	for _, c := range cs {
		s.cases[c.ID] = c
	}
	return s
}

func (s *fakeStore) FindByID(id string) (*models.LegalCase, error) {
	return s.cases[id], nil
}

func (s *fakeStore) FindByOrganization(orgID string, activeOnly bool) ([]*models.LegalCase, error) {
	var out []*models.LegalCase
	for _, c := range s.cases {
		if c.OrganizationID == orgID && (!activeOnly || c.Active) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeStore) GetMaxOrder(string) (int, error) { return 2, nil }

func (s *fakeStore) Create(c *models.LegalCase) error {
	s.cases[c.ID] = c
	return nil
}

func (s *fakeStore) Update(c *models.LegalCase) error {
	s.cases[c.ID] = c
	return nil
}

func (s *fakeStore) Delete(id string) error {
	delete(s.cases, id)
	return nil
}

type fakeColumnStore struct {
	columns map[string]*models.Column
}

func (s *fakeColumnStore) FindByID(id string) (*models.Column, error) {
	return s.columns[id], nil
}

type fakeLawyerStore struct {
	lawyers map[string]*models.Lawyer
}

func (s *fakeLawyerStore) FindByID(id string) (*models.Lawyer, error) {
	return s.lawyers[id], nil
}

type fakeReassigner struct {
	calls []struct {
		caseID   string
		lawyerID *string
	}
}

func (r *fakeReassigner) ReassignPending(caseID string, lawyerID *string) error {
	r.calls = append(r.calls, struct {
		caseID   string
		lawyerID *string
	}{caseID, lawyerID})
	return nil
}

type fakeGuard struct {
	writeErr   error
	enforceErr error
	enforced   []billing.Resource
}

func (g *fakeGuard) CheckWrite(string) error { return g.writeErr }

func (g *fakeGuard) Enforce(_ string, resource billing.Resource) error {
	g.enforced = append(g.enforced, resource)
	return g.enforceErr
}

type fixture struct {
	store      *fakeStore
	guard      *fakeGuard
	reassigner *fakeReassigner
	svc        *Service
}

func newFixture(cs ...*models.LegalCase) *fixture {
	store := newFakeStore(cs...)
	columns := &fakeColumnStore{columns: map[string]*models.Column{
		"col-1":     {ID: "col-1", OrganizationID: "org-1", Title: "Novo", IsDefault: true},
		"col-2":     {ID: "col-2", OrganizationID: "org-1", Title: "Em andamento"},
		"col-other": {ID: "col-other", OrganizationID: "org-2"},
	}}
	lawyers := &fakeLawyerStore{lawyers: map[string]*models.Lawyer{
		"law-1":     {ID: "law-1", OrganizationID: "org-1", Name: "Dra. Ana"},
		"law-2":     {ID: "law-2", OrganizationID: "org-1", Name: "Dr. Bruno"},
		"law-other": {ID: "law-other", OrganizationID: "org-2"},
	}}
	guard := &fakeGuard{}
	reassigner := &fakeReassigner{}
	return &fixture{
		store:      store,
		guard:      guard,
		reassigner: reassigner,
		svc:        NewService(store, columns, lawyers, reassigner, guard),
	}
}

func testCtx() auth.Context {
	return auth.Context{LawyerID: "law-1", OrganizationID: "org-1", Role: models.RoleLawyer}
}

func testCase() *models.LegalCase {
	return &models.LegalCase{
		ID:             "case-1",
		OrganizationID: "org-1",
		ColumnID:       "col-1",
		Number:         "0001234-56.2024",
		Title:          "Ação trabalhista",
		Client:         "João Silva",
		Priority:       "medium",
		Active:         true,
		CreatedBy:      "law-1",
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
	if !ok || appErr.Code != code {
		t.Fatalf("Expected code %s, got %v", code, err)
	}
}

func TestService_Create(t *testing.T) {
	f := newFixture()

	c, err := f.svc.Create(&CreateRequest{
		ColumnID: "col-1",
		Number:   "0001234-56.2024",
		Title:    "Ação trabalhista",
		Client:   "João Silva",
	}, testCtx())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !c.Active || c.Order != 3 || c.Priority != "medium" {
		t.Errorf("Unexpected case defaults: %+v", c)
	}
	if c.CreatedBy != "law-1" {
		t.Errorf("Expected creator from context, got %s", c.CreatedBy)
	}
	if len(f.guard.enforced) != 1 || f.guard.enforced[0] != billing.ResourceActiveCases {
		t.Errorf("Expected active-case quota check, got %v", f.guard.enforced)
	}
}

func TestService_Create_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		req      *CreateRequest
		wantCode string
	}{
		{name: "Missing Title", req: &CreateRequest{ColumnID: "col-1", Client: "X"}, wantCode: apperrors.ErrCodeInvalidInput},
		{name: "Invalid Priority", req: &CreateRequest{ColumnID: "col-1", Title: "T", Client: "X", Priority: "asap"}, wantCode: apperrors.ErrCodeInvalidInput},
		{name: "Cross Tenant Column", req: &CreateRequest{ColumnID: "col-other", Title: "T", Client: "X"}, wantCode: apperrors.ErrCodeNotFound},
		{name: "Cross Tenant Assignee", req: &CreateRequest{ColumnID: "col-1", Title: "T", Client: "X", AssignedTo: strptr("law-other")}, wantCode: apperrors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.Create(tt.req, testCtx())
			assertCode(t, err, tt.wantCode)
		})
	}
}

func strptr(s string) *string { return &s }

func TestService_Create_QuotaReached(t *testing.T) {
	f := newFixture()
	f.guard.enforceErr = apperrors.PlanLimitReached("activeCases", 30)

	_, err := f.svc.Create(&CreateRequest{ColumnID: "col-1", Title: "T", Client: "X"}, testCtx())
	assertCode(t, err, apperrors.ErrCodePlanLimitReached)
}

func TestService_Update_ReactivationConsumesQuota(t *testing.T) {
	archived := testCase()
	archived.Active = false
	f := newFixture(archived)

	active := true
	if _, err := f.svc.Update("case-1", &UpdateRequest{Active: &active}, testCtx()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(f.guard.enforced) != 1 || f.guard.enforced[0] != billing.ResourceActiveCases {
		t.Errorf("Expected quota check on reactivation, got %v", f.guard.enforced)
	}

	// Archiving an active case never hits quota.
	f2 := newFixture(testCase())
	inactive := false
	if _, err := f2.svc.Update("case-1", &UpdateRequest{Active: &inactive}, testCtx()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(f2.guard.enforced) != 0 {
		t.Errorf("Archiving must not check quota, got %v", f2.guard.enforced)
	}
}

func TestService_Move(t *testing.T) {
	f := newFixture(testCase())

	c, err := f.svc.Move("case-1", "col-2", 5, testCtx())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.ColumnID != "col-2" || c.Order != 5 {
		t.Errorf("Move not applied: %+v", c)
	}

	_, err = f.svc.Move("case-1", "col-other", 0, testCtx())
	assertCode(t, err, apperrors.ErrCodeNotFound)
}

func TestService_Assign_CascadesNotifications(t *testing.T) {
	f := newFixture(testCase())

	c, err := f.svc.Assign("case-1", strptr("law-2"), testCtx())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.AssignedTo == nil || *c.AssignedTo != "law-2" {
		t.Errorf("Assignment not applied: %v", c.AssignedTo)
	}
	if len(f.reassigner.calls) != 1 {
		t.Fatalf("Expected 1 cascade, got %d", len(f.reassigner.calls))
	}
	call := f.reassigner.calls[0]
	if call.caseID != "case-1" || call.lawyerID == nil || *call.lawyerID != "law-2" {
		t.Errorf("Unexpected cascade args: %+v", call)
	}
}

func TestService_Assign_Unassign(t *testing.T) {
	c := testCase()
	c.AssignedTo = strptr("law-2")
	f := newFixture(c)

	got, err := f.svc.Assign("case-1", nil, testCtx())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.AssignedTo != nil {
		t.Errorf("Expected unassigned, got %v", got.AssignedTo)
	}
	if len(f.reassigner.calls) != 1 || f.reassigner.calls[0].lawyerID != nil {
		t.Errorf("Expected cascade to nil lawyer, got %+v", f.reassigner.calls)
	}
}

func TestService_GetByID(t *testing.T) {
	c := testCase()
	c.AssignedTo = strptr("law-2")
	f := newFixture(c)

	got, err := f.svc.GetByID("case-1", testCtx())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.Assignee == nil || got.Assignee.Name != "Dr. Bruno" {
		t.Errorf("Expected assignee resolved, got %+v", got.Assignee)
	}
}

func TestService_CrossTenant(t *testing.T) {
	c := testCase()
	c.OrganizationID = "org-2"
	f := newFixture(c)

	_, err := f.svc.GetByID("case-1", testCtx())
	assertCode(t, err, apperrors.ErrCodeNotFound)

	_, err = f.svc.Assign("case-1", strptr("law-2"), testCtx())
	assertCode(t, err, apperrors.ErrCodeNotFound)

	err = f.svc.Delete("case-1", testCtx())
	assertCode(t, err, apperrors.ErrCodeNotFound)
}
