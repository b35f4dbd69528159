package organizations

import (
	"time"

	"github.com/google/uuid"

	"github.com/brunolandim/back-jurix/internal/engine/columns"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/auth"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

type Store interface {
	FindByID(id string) (*models.Organization, error)
	Create(org *models.Organization) error
	Update(org *models.Organization) error
}

// ColumnStore seeds the default board when an organization is created.
type ColumnStore interface {
	Create(column *models.Column) error
}

type Service struct {
	store   Store
	columns ColumnStore
}

func NewService(store Store, columnStore ColumnStore) *Service {
	return &Service{store: store, columns: columnStore}
}

func (s *Service) Get(authCtx auth.Context) (*models.Organization, error) {
	org, err := s.store.FindByID(authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, errors.NotFound("Organization", authCtx.OrganizationID)
	}
	return org, nil
}

type CreateRequest struct {
	Name     string  `json:"name"`
	Document string  `json:"document"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// Create registers an organization and seeds its default board columns.
func (s *Service) Create(req *CreateRequest) (*models.Organization, error) {
	if req.Name == "" || req.Document == "" {
		return nil, errors.Validation("Organization name and document are required")
	}

	now := time.Now().Unix()
	org := &models.Organization{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Document:  req.Document,
		Email:     req.Email,
		Phone:     req.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(org); err != nil {
		return nil, err
	}

	for _, col := range columns.DefaultColumns {
		seeded := col
		seeded.ID = uuid.New().String()
		seeded.OrganizationID = org.ID
		seeded.CreatedAt = now
		if err := s.columns.Create(&seeded); err != nil {
			return nil, err
		}
	}

	return org, nil
}

type UpdateRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Logo  *string `json:"logo,omitempty"`
}

func (s *Service) Update(req *UpdateRequest, authCtx auth.Context) (*models.Organization, error) {
	org, err := s.Get(authCtx)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		org.Name = *req.Name
	}
	if req.Email != nil {
		org.Email = req.Email
	}
	if req.Phone != nil {
		org.Phone = req.Phone
	}
	if req.Logo != nil {
		org.Logo = req.Logo
	}
	org.UpdatedAt = time.Now().Unix()

	if err := s.store.Update(org); err != nil {
		return nil, err
	}
	return org, nil
}
