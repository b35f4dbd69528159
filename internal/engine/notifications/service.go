package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/auth"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

// PendingNotification is a notification joined with the rows the sender
// needs: the assigned lawyer and the case labels.
type PendingNotification struct {
	models.CaseNotification
	Lawyer     *models.Lawyer `json:"lawyer,omitempty"`
	CaseTitle  string         `json:"case_title"`
	CaseNumber string         `json:"case_number"`
}

// Store is the notification repository slice the service and sender depend
// on.
type Store interface {
	FindByID(id string) (*models.CaseNotification, error)
	FindByCase(caseID string) ([]*models.CaseNotification, error)
	FindByLawyer(lawyerID string) ([]*models.CaseNotification, error)
	FindPendingToSend(now, lookback int64) ([]*PendingNotification, error)
	Create(n *models.CaseNotification) error
	Update(n *models.CaseNotification) error
	Delete(id string) error
	MarkAsRead(id string, readAt int64) error
	MarkAllAsRead(lawyerID string, readAt int64) (int, error)
	MarkAsSent(id string, sentAt int64) error
}

type CaseStore interface {
	FindByID(id string) (*models.LegalCase, error)
}

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

func (s *Service) notificationForOrg(id, organizationID string) (*models.CaseNotification, error) {
	n, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, errors.NotFound("Notification", id)
	}
	if _, err := s.caseForOrg(n.CaseID, organizationID); err != nil {
		return nil, errors.NotFound("Notification", id)
	}
	return n, nil
}

func validType(notificationType string) bool {
	_, ok := TypeLabels[notificationType]
	return ok
}

type CreateRequest struct {
	CaseID  string  `json:"case_id"`
	Type    string  `json:"type"`
	Message *string `json:"message,omitempty"`
	Date    int64   `json:"date"`
}

// Create schedules a notification for a case. It is delivered to whoever is
// assigned to the case when the send date arrives, so the lawyer is resolved
// at creation and re-pointed if the case is reassigned before sending.
func (s *Service) Create(req *CreateRequest, authCtx auth.Context) (*models.CaseNotification, error) {
	if !validType(req.Type) {
		return nil, errors.Validation("Invalid notification type")
	}
	if req.Date == 0 {
		return nil, errors.Validation("Notification date is required")
	}

	c, err := s.caseForOrg(req.CaseID, authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return nil, err
	}

	n := &models.CaseNotification{
		ID:        uuid.New().String(),
		CaseID:    req.CaseID,
		LawyerID:  c.AssignedTo,
		Type:      req.Type,
		Message:   req.Message,
		Date:      req.Date,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.store.Create(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) ListByCase(caseID string, authCtx auth.Context) ([]*models.CaseNotification, error) {
	if _, err := s.caseForOrg(caseID, authCtx.OrganizationID); err != nil {
		return nil, err
	}
	return s.store.FindByCase(caseID)
}

func (s *Service) ListByLawyer(authCtx auth.Context) ([]*models.CaseNotification, error) {
	return s.store.FindByLawyer(authCtx.LawyerID)
}

type UpdateRequest struct {
	Type    *string `json:"type,omitempty"`
	Message *string `json:"message,omitempty"`
	Date    *int64  `json:"date,omitempty"`
}

func (s *Service) Update(id string, req *UpdateRequest, authCtx auth.Context) (*models.CaseNotification, error) {
	n, err := s.notificationForOrg(id, authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !validType(*req.Type) {
			return nil, errors.Validation("Invalid notification type")
		}
		n.Type = *req.Type
	}
	if req.Message != nil {
		n.Message = req.Message
	}
	if req.Date != nil {
		n.Date = *req.Date
	}
	if err := s.store.Update(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) Delete(id string, authCtx auth.Context) error {
	if _, err := s.notificationForOrg(id, authCtx.OrganizationID); err != nil {
		return err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return err
	}
	return s.store.Delete(id)
}

// MarkAsRead is idempotent; reading twice keeps the first read_at.
func (s *Service) MarkAsRead(id string, authCtx auth.Context) (*models.CaseNotification, error) {
	n, err := s.notificationForOrg(id, authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}
	if n.LawyerID != nil && *n.LawyerID != authCtx.LawyerID {
		return nil, errors.Forbidden("Cannot mark other lawyer notifications as read")
	}
	if n.IsRead {
		return n, nil
	}

	now := time.Now().Unix()
	if err := s.store.MarkAsRead(id, now); err != nil {
		return nil, err
	}
	n.IsRead = true
	n.ReadAt = &now
	return n, nil
}

func (s *Service) MarkAllAsRead(authCtx auth.Context) (int, error) {
	return s.store.MarkAllAsRead(authCtx.LawyerID, time.Now().Unix())
}
