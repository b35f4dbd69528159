package columns

import (
	"time"

	"github.com/google/uuid"

	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/auth"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

// DefaultColumns seeds a new organization's board.
var DefaultColumns = []models.Column{
	{Title: "Novo", Order: 0, IsDefault: true},
}

type Store interface {
	FindByID(id string) (*models.Column, error)
	FindByOrganization(organizationID string) ([]*models.Column, error)
	GetMaxOrder(organizationID string) (int, error)
	HasCases(columnID string) (bool, error)
	Create(column *models.Column) error
	Update(column *models.Column) error
	Delete(id string) error
}

type CaseStore interface {
	FindByColumn(columnID string) ([]*models.LegalCase, error)
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

func (s *Service) columnForOrg(id, organizationID string) (*models.Column, error) {
	column, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if column == nil || column.OrganizationID != organizationID {
		return nil, errors.NotFound("Column", id)
	}
	return column, nil
}

func (s *Service) List(authCtx auth.Context) ([]*models.Column, error) {
	return s.store.FindByOrganization(authCtx.OrganizationID)
}

// ColumnWithCases is a board column bundled with its cases, ordered for the
// kanban view.
type ColumnWithCases struct {
	*models.Column
	Cases []*models.LegalCase `json:"cases"`
}

func (s *Service) ListWithCases(authCtx auth.Context) ([]*ColumnWithCases, error) {
	columns, err := s.store.FindByOrganization(authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}

	out := make([]*ColumnWithCases, 0, len(columns))
	for _, column := range columns {
		cases, err := s.cases.FindByColumn(column.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &ColumnWithCases{Column: column, Cases: cases})
	}
	return out, nil
}

func (s *Service) Create(title string, authCtx auth.Context) (*models.Column, error) {
	if title == "" {
		return nil, errors.Validation("Column title is required")
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return nil, err
	}

	maxOrder, err := s.store.GetMaxOrder(authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}

	column := &models.Column{
		ID:             uuid.New().String(),
		OrganizationID: authCtx.OrganizationID,
		Title:          title,
		Order:          maxOrder + 1,
		CreatedAt:      time.Now().Unix(),
	}
	if err := s.store.Create(column); err != nil {
		return nil, err
	}
	return column, nil
}

type UpdateRequest struct {
	Title *string `json:"title,omitempty"`
	Order *int    `json:"order,omitempty"`
}

func (s *Service) Update(id string, req *UpdateRequest, authCtx auth.Context) (*models.Column, error) {
	column, err := s.columnForOrg(id, authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		column.Title = *req.Title
	}
	if req.Order != nil {
		column.Order = *req.Order
	}
	if err := s.store.Update(column); err != nil {
		return nil, err
	}
	return column, nil
}

// Delete refuses to remove the default column or any column that still
// holds cases.
func (s *Service) Delete(id string, authCtx auth.Context) error {
	column, err := s.columnForOrg(id, authCtx.OrganizationID)
	if err != nil {
		return err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return err
	}

	if column.IsDefault {
		return errors.Forbidden("Cannot delete default column")
	}

	hasCases, err := s.store.HasCases(id)
	if err != nil {
		return err
	}
	if hasCases {
		return errors.Validation("Cannot delete column with cases. Move cases first.")
	}

	return s.store.Delete(id)
}
