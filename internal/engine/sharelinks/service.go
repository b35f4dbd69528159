package sharelinks

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/brunolandim/back-jurix/internal/engine/billing"
	"github.com/brunolandim/back-jurix/internal/engine/documents"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/auth"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

// Store is the share-link repository slice the service depends on. Links
// carry their document set through the link_documents join.
type Store interface {
	FindActiveByCase(caseID string) (*models.ShareableLink, error)
	FindDocumentIDs(linkID string) ([]string, error)
	FindByToken(token string) (*models.ShareableLinkWithDocuments, error)
	FindByCase(caseID string) ([]*models.ShareableLink, error)
	Create(link *models.ShareableLink, documentIDs []string) error
	Expire(linkID string) error
}

type DocumentStore interface {
	FindByID(id string) (*models.DocumentRequest, error)
	Update(doc *models.DocumentRequest) error
}

type CaseStore interface {
	FindByID(id string) (*models.LegalCase, error)
}

// Guard gates writes and the share-link quota.
type Guard interface {
	CheckWrite(organizationID string) error
	Enforce(organizationID string, resource billing.Resource) error
}

type Service struct {
	store     Store
	documents DocumentStore
	cases     CaseStore
	guard     Guard
}

func NewService(store Store, documents DocumentStore, cases CaseStore, guard Guard) *Service {
	return &Service{store: store, documents: documents, cases: cases, guard: guard}
}

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

func sameIDSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

type CreateRequest struct {
	CaseID      string   `json:"case_id"`
	DocumentIDs []string `json:"document_ids"`
}

// Create mints a share link for a case's document set. If an active link
// already covers the exact same set it is returned unchanged, so repeated
// shares keep a stable URL. A different set supersedes the old link: the old
// one is expired and a fresh token minted. Quota is only charged when a new
// link is actually created.
func (s *Service) Create(req *CreateRequest, authCtx auth.Context) (*models.ShareableLink, error) {
	if len(req.DocumentIDs) == 0 {
		return nil, errors.Validation("At least one document is required")
	}
	if _, err := s.caseForOrg(req.CaseID, authCtx.OrganizationID); err != nil {
		return nil, err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return nil, err
	}

	for _, docID := range req.DocumentIDs {
		doc, err := s.documents.FindByID(docID)
		if err != nil {
			return nil, err
		}
		if doc == nil || doc.CaseID != req.CaseID {
			return nil, errors.Validation("Document does not belong to this case")
		}
	}

	active, err := s.store.FindActiveByCase(req.CaseID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		existingIDs, err := s.store.FindDocumentIDs(active.ID)
		if err != nil {
			return nil, err
		}
		if sameIDSet(existingIDs, req.DocumentIDs) {
			return active, nil
		}
		if err := s.store.Expire(active.ID); err != nil {
			return nil, err
		}
	}

	if err := s.guard.Enforce(authCtx.OrganizationID, billing.ResourceShareLinks); err != nil {
		return nil, err
	}

	token, err := GenerateToken()
	if err != nil {
		return nil, err
	}

	link := &models.ShareableLink{
		ID:        uuid.New().String(),
		Token:     token,
		CaseID:    req.CaseID,
		CreatedBy: authCtx.LawyerID,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.store.Create(link, req.DocumentIDs); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *Service) ListByCase(caseID string, authCtx auth.Context) ([]*models.ShareableLink, error) {
	if _, err := s.caseForOrg(caseID, authCtx.OrganizationID); err != nil {
		return nil, err
	}
	return s.store.FindByCase(caseID)
}

func (s *Service) Expire(linkID, caseID string, authCtx auth.Context) error {
	if _, err := s.caseForOrg(caseID, authCtx.OrganizationID); err != nil {
		return err
	}
	links, err := s.store.FindByCase(caseID)
	if err != nil {
		return err
	}
	for _, l := range links {
		if l.ID == linkID {
			return s.store.Expire(linkID)
		}
	}
	return errors.NotFound("Share link", linkID)
}

// GetByToken resolves a public share token. Unknown tokens are not found;
// expired links are reported as gone so the upload page can say so.
func (s *Service) GetByToken(token string) (*models.ShareableLinkWithDocuments, error) {
	link, err := s.store.FindByToken(token)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, errors.NotFound("Share link", token)
	}
	if link.IsExpired {
		return nil, errors.Forbidden("This share link has expired")
	}
	return link, nil
}

// documentInLink reports whether the document id is part of the link's set.
func documentInLink(link *models.ShareableLinkWithDocuments, documentID string) *models.DocumentRequest {
	for _, d := range link.Documents {
		if d.ID == documentID {
			return d
		}
	}
	return nil
}

// RecordUpload attaches an uploaded file to a document through a public
// share token, then expires the link if every document it covers has been
// received.
func (s *Service) RecordUpload(token, documentID, fileURL string) (*models.DocumentRequest, error) {
	link, err := s.GetByToken(token)
	if err != nil {
		return nil, err
	}

	doc := documentInLink(link, documentID)
	if doc == nil {
		return nil, errors.NotFound("Document", documentID)
	}

	if err := documents.RecordUpload(doc, fileURL); err != nil {
		return nil, err
	}
	if err := s.documents.Update(doc); err != nil {
		return nil, err
	}

	// The upload is already persisted; a failed expiry check is retried on
	// the next upload or approval.
	if err := s.CheckAndExpire(link.CaseID); err != nil {
		log.Error().Err(err).Str("case", link.CaseID).Msg("share link expiry check failed")
	}
	return doc, nil
}

// CheckAndExpire expires the case's active link once every document it
// covers is received. Runs after document approvals and public uploads.
// Expiry is one-way; a later change does not resurrect the link.
func (s *Service) CheckAndExpire(caseID string) error {
	link, err := s.store.FindActiveByCase(caseID)
	if err != nil {
		return err
	}
	if link == nil {
		return nil
	}

	ids, err := s.store.FindDocumentIDs(link.ID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	for _, id := range ids {
		doc, err := s.documents.FindByID(id)
		if err != nil {
			return err
		}
		if doc == nil || doc.Status != models.DocumentReceived {
			return nil
		}
	}

	if err := s.store.Expire(link.ID); err != nil {
		return err
	}
	log.Info().Str("link", link.ID).Str("case", caseID).Msg("share link expired: all documents received")
	return nil
}
