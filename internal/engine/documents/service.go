package documents

import (
	"time"

	"github.com/google/uuid"

	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/auth"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

// Store is the document-request repository slice the service depends on.
type Store interface {
	FindByID(id string) (*models.DocumentRequest, error)
	FindByCase(caseID string) ([]*models.DocumentRequest, error)
	Create(doc *models.DocumentRequest) error
	Update(doc *models.DocumentRequest) error
	Delete(id string) error
}

// CaseStore resolves the owning case for tenant checks.
type CaseStore interface {
	FindByID(id string) (*models.LegalCase, error)
}

// Guard gates writes on the tenant's subscription state.
type Guard interface {
	CheckWrite(organizationID string) error
}

type Service struct {
	store Store
	cases CaseStore
	guard Guard
}

func NewService(store Store, cases CaseStore, guard Guard) *Service {
	return &Service{store: store, cases: cases, guard: guard}
}

// caseForOrg loads a case and verifies it belongs to the caller's
// organization. Cross-tenant ids come back as not found, never forbidden.
func (s *Service) caseForOrg(caseID, organizationID string) (*models.LegalCase, error) {
	c, err := s.cases.FindByID(caseID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.OrganizationID != organizationID {
		return nil, errors.NotFound("Case", caseID)
	}
	return c, nil
}

func (s *Service) docForOrg(documentID, organizationID string) (*models.DocumentRequest, error) {
	doc, err := s.store.FindByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.NotFound("Document", documentID)
	}
	if _, err := s.caseForOrg(doc.CaseID, organizationID); err != nil {
		return nil, errors.NotFound("Document", documentID)
	}
	return doc, nil
}

type CreateRequest struct {
	CaseID      string  `json:"case_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (s *Service) Create(req *CreateRequest, authCtx auth.Context) (*models.DocumentRequest, error) {
	if req.Name == "" {
		return nil, errors.Validation("Document name is required")
	}
	if _, err := s.caseForOrg(req.CaseID, authCtx.OrganizationID); err != nil {
		return nil, err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return nil, err
	}

	doc := &models.DocumentRequest{
		ID:          uuid.New().String(),
		CaseID:      req.CaseID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.DocumentPending,
		RequestedAt: time.Now().Unix(),
	}
	if err := s.store.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) ListByCase(caseID string, authCtx auth.Context) ([]*models.DocumentRequest, error) {
	if _, err := s.caseForOrg(caseID, authCtx.OrganizationID); err != nil {
		return nil, err
	}
	return s.store.FindByCase(caseID)
}

type UpdateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (s *Service) Update(documentID string, req *UpdateRequest, authCtx auth.Context) (*models.DocumentRequest, error) {
	doc, err := s.docForOrg(documentID, authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return nil, err
	}

	if req.Name != "" {
		doc.Name = req.Name
	}
	if req.Description != nil {
		doc.Description = req.Description
	}
	if err := s.store.Update(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) Delete(documentID string, authCtx auth.Context) error {
	if _, err := s.docForOrg(documentID, authCtx.OrganizationID); err != nil {
		return err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return err
	}
	return s.store.Delete(documentID)
}

// RecordUpload attaches an uploaded file to a document request and moves it
// into review. Re-uploads after a rejection clear the rejection fields so
// the reviewer sees a clean slate.
func RecordUpload(doc *models.DocumentRequest, fileURL string) error {
	if doc.Status == models.DocumentReceived {
		return errors.Validation("Document has already been approved")
	}

	now := time.Now().Unix()
	doc.FileURL = &fileURL
	doc.UploadedAt = &now
	doc.Status = models.DocumentPendingApproval
	doc.RejectedAt = nil
	doc.RejectionReason = nil
	doc.RejectionNote = nil
	return nil
}

// Approve moves a document under review into its terminal received state.
func (s *Service) Approve(documentID string, authCtx auth.Context) (*models.DocumentRequest, error) {
	doc, err := s.docForOrg(documentID, authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return nil, err
	}

	if doc.Status != models.DocumentPendingApproval {
		return nil, errors.Validation("Only documents pending approval can be approved")
	}

	now := time.Now().Unix()
	doc.Status = models.DocumentReceived
	doc.ReceivedAt = &now
	if err := s.store.Update(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

type RejectRequest struct {
	Reason string  `json:"reason"`
	Note   *string `json:"note,omitempty"`
}

func validRejectionReason(reason string) bool {
	for _, r := range models.RejectionReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Reject sends a document under review back to the client with a reason.
// The uploaded file reference is kept so the reviewer can still open it.
func (s *Service) Reject(documentID string, req *RejectRequest, authCtx auth.Context) (*models.DocumentRequest, error) {
	doc, err := s.docForOrg(documentID, authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return nil, err
	}

	if doc.Status != models.DocumentPendingApproval {
		return nil, errors.Validation("Only documents pending approval can be rejected")
	}
	if !validRejectionReason(req.Reason) {
		return nil, errors.Validation("Invalid rejection reason")
	}

	now := time.Now().Unix()
	doc.Status = models.DocumentRejected
	doc.RejectedAt = &now
	doc.RejectionReason = &req.Reason
	doc.RejectionNote = req.Note
	if err := s.store.Update(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
