package cases

import (
	"time"

	"github.com/google/uuid"

	"github.com/brunolandim/back-jurix/internal/engine/billing"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/auth"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

// Case priorities.
var priorities = map[string]bool{"low": true, "medium": true, "high": true, "urgent": true}

type Store interface {
	FindByID(id string) (*models.LegalCase, error)
	FindByOrganization(organizationID string, activeOnly bool) ([]*models.LegalCase, error)
	GetMaxOrder(columnID string) (int, error)
	Create(c *models.LegalCase) error
	Update(c *models.LegalCase) error
	Delete(id string) error
}

type ColumnStore interface {
	FindByID(id string) (*models.Column, error)
}

type LawyerStore interface {
	FindByID(id string) (*models.Lawyer, error)
}

// NotificationReassigner re-points a case's unsent notifications when the
// case changes hands. Already-sent notifications keep their history.
type NotificationReassigner interface {
	ReassignPending(caseID string, lawyerID *string) error
}

type Guard interface {
	CheckWrite(organizationID string) error
	Enforce(organizationID string, resource billing.Resource) error
}

type Service struct {
	store         Store
	columns       ColumnStore
	lawyers       LawyerStore
	notifications NotificationReassigner
	guard         Guard
}

func NewService(store Store, columns ColumnStore, lawyers LawyerStore, notifications NotificationReassigner, guard Guard) *Service {
	return &Service{
		store:         store,
		columns:       columns,
		lawyers:       lawyers,
		notifications: notifications,
		guard:         guard,
	}
}

func (s *Service) caseForOrg(id, organizationID string) (*models.LegalCase, error) {
	c, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.OrganizationID != organizationID {
		return nil, errors.NotFound("Case", id)
	}
	return c, nil
}

func (s *Service) columnForOrg(id, organizationID string) (*models.Column, error) {
	column, err := s.columns.FindByID(id)
	if err != nil {
		return nil, err
	}
	if column == nil || column.OrganizationID != organizationID {
		return nil, errors.NotFound("Column", id)
	}
	return column, nil
}

func (s *Service) lawyerForOrg(id, organizationID string) (*models.Lawyer, error) {
	lawyer, err := s.lawyers.FindByID(id)
	if err != nil {
		return nil, err
	}
	if lawyer == nil || lawyer.OrganizationID != organizationID {
		return nil, errors.NotFound("Lawyer", id)
	}
	return lawyer, nil
}

func (s *Service) List(authCtx auth.Context, activeOnly bool) ([]*models.LegalCase, error) {
	return s.store.FindByOrganization(authCtx.OrganizationID, activeOnly)
}

// CaseWithAssignee carries the assigned lawyer's public record for detail
// views.
type CaseWithAssignee struct {
	*models.LegalCase
	Assignee *models.PublicLawyer `json:"assignee"`
}

func (s *Service) GetByID(id string, authCtx auth.Context) (*CaseWithAssignee, error) {
	c, err := s.caseForOrg(id, authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}

	out := &CaseWithAssignee{LegalCase: c}
	if c.AssignedTo != nil {
		lawyer, err := s.lawyers.FindByID(*c.AssignedTo)
		if err != nil {
			return nil, err
		}
		out.Assignee = models.ToPublicLawyer(lawyer)
	}
	return out, nil
}

type CreateRequest struct {
	ColumnID    string  `json:"column_id"`
	Number      string  `json:"number"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Client      string  `json:"client"`
	ClientPhone *string `json:"client_phone,omitempty"`
	Priority    string  `json:"priority"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
}

func (s *Service) Create(req *CreateRequest, authCtx auth.Context) (*models.LegalCase, error) {
	if req.Title == "" || req.Client == "" {
		return nil, errors.Validation("Case title and client are required")
	}
	if req.Priority != "" && !priorities[req.Priority] {
		return nil, errors.Validation("Invalid priority")
	}
	if _, err := s.columnForOrg(req.ColumnID, authCtx.OrganizationID); err != nil {
		return nil, err
	}
	if req.AssignedTo != nil {
		if _, err := s.lawyerForOrg(*req.AssignedTo, authCtx.OrganizationID); err != nil {
			return nil, err
		}
	}

	if err := s.guard.Enforce(authCtx.OrganizationID, billing.ResourceActiveCases); err != nil {
		return nil, err
	}

	maxOrder, err := s.store.GetMaxOrder(req.ColumnID)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	now := time.Now().Unix()
	c := &models.LegalCase{
		ID:             uuid.New().String(),
		OrganizationID: authCtx.OrganizationID,
		ColumnID:       req.ColumnID,
		Number:         req.Number,
		Title:          req.Title,
		Description:    req.Description,
		Client:         req.Client,
		ClientPhone:    req.ClientPhone,
		Priority:       priority,
		Order:          maxOrder + 1,
		Active:         true,
		AssignedTo:     req.AssignedTo,
		CreatedBy:      authCtx.LawyerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

type UpdateRequest struct {
	ColumnID    *string `json:"column_id,omitempty"`
	Number      *string `json:"number,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Client      *string `json:"client,omitempty"`
	ClientPhone *string `json:"client_phone,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

func (s *Service) Update(id string, req *UpdateRequest, authCtx auth.Context) (*models.LegalCase, error) {
	c, err := s.caseForOrg(id, authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return nil, err
	}

	if req.ColumnID != nil && *req.ColumnID != c.ColumnID {
		if _, err := s.columnForOrg(*req.ColumnID, authCtx.OrganizationID); err != nil {
			return nil, err
		}
		c.ColumnID = *req.ColumnID
	}
	if req.Priority != nil {
		if !priorities[*req.Priority] {
			return nil, errors.Validation("Invalid priority")
		}
		c.Priority = *req.Priority
	}
	// Reactivating an archived case consumes quota again.
	if req.Active != nil && *req.Active && !c.Active {
		if err := s.guard.Enforce(authCtx.OrganizationID, billing.ResourceActiveCases); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if req.Number != nil {
		c.Number = *req.Number
	}
	if req.Title != nil && *req.Title != "" {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Client != nil && *req.Client != "" {
		c.Client = *req.Client
	}
	if req.ClientPhone != nil {
		c.ClientPhone = req.ClientPhone
	}
	c.UpdatedAt = time.Now().Unix()

	if err := s.store.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Move drags a case to a column position on the board.
func (s *Service) Move(id, columnID string, order int, authCtx auth.Context) (*models.LegalCase, error) {
	c, err := s.caseForOrg(id, authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return nil, err
	}
	if _, err := s.columnForOrg(columnID, authCtx.OrganizationID); err != nil {
		return nil, err
	}

	c.ColumnID = columnID
	c.Order = order
	c.UpdatedAt = time.Now().Unix()
	if err := s.store.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Assign hands a case to a lawyer (nil unassigns) and cascades the case's
// unsent notifications to the new assignee so reminders reach whoever now
// owns the case.
func (s *Service) Assign(id string, assignedTo *string, authCtx auth.Context) (*models.LegalCase, error) {
	c, err := s.caseForOrg(id, authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return nil, err
	}
	if assignedTo != nil {
		if _, err := s.lawyerForOrg(*assignedTo, authCtx.OrganizationID); err != nil {
			return nil, err
		}
	}

	c.AssignedTo = assignedTo
	c.UpdatedAt = time.Now().Unix()
	if err := s.store.Update(c); err != nil {
		return nil, err
	}

	if err := s.notifications.ReassignPending(c.ID, assignedTo); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(id string, authCtx auth.Context) error {
	if _, err := s.caseForOrg(id, authCtx.OrganizationID); err != nil {
		return err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return err
	}
	return s.store.Delete(id)
}
