package lawyers

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brunolandim/back-jurix/internal/engine/billing"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/auth"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

const PasswordMinLength = 8

type Store interface {
	FindByID(id string) (*models.Lawyer, error)
	FindByEmail(email string) (*models.Lawyer, error)
	FindByOAB(oab string) (*models.Lawyer, error)
	FindByEmailAndResetCode(email, code string, now int64) (*models.Lawyer, error)
	FindByOrganization(organizationID string, activeOnly bool) ([]*models.Lawyer, error)
	Create(lawyer *models.Lawyer) error
	Update(lawyer *models.Lawyer) error
	SetResetCode(id string, code *string, expires *int64) error
	Delete(id string) error
}

type Guard interface {
	CheckWrite(organizationID string) error
	Enforce(organizationID string, resource billing.Resource) error
}

type Service struct {
	store Store
	guard Guard
}

func NewService(store Store, guard Guard) *Service {
	return &Service{store: store, guard: guard}
}

func (s *Service) lawyerForOrg(id, organizationID string) (*models.Lawyer, error) {
	lawyer, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if lawyer == nil || lawyer.OrganizationID != organizationID {
		return nil, errors.NotFound("Lawyer", id)
	}
	return lawyer, nil
}

func (s *Service) List(authCtx auth.Context, activeOnly bool) ([]*models.PublicLawyer, error) {
	lawyers, err := s.store.FindByOrganization(authCtx.OrganizationID, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]*models.PublicLawyer, 0, len(lawyers))
	for _, l := range lawyers {
		out = append(out, models.ToPublicLawyer(l))
	}
	return out, nil
}

func (s *Service) GetByID(id string, authCtx auth.Context) (*models.PublicLawyer, error) {
	lawyer, err := s.lawyerForOrg(id, authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}
	return models.ToPublicLawyer(lawyer), nil
}

type CreateRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Phone       *string `json:"phone,omitempty"`
	OAB         string  `json:"oab"`
	Specialty   *string `json:"specialty,omitempty"`
	Role        string  `json:"role"`
	AvatarColor *string `json:"avatar_color,omitempty"`
}

func (s *Service) Create(req *CreateRequest, authCtx auth.Context) (*models.PublicLawyer, error) {
	if req.Name == "" || req.Email == "" || req.OAB == "" {
		return nil, errors.Validation("Name, email and OAB are required")
	}
	if len(req.Password) < PasswordMinLength {
		return nil, errors.Validation("Password must be at least 8 characters")
	}
	if req.Role == models.RoleOwner {
		return nil, errors.Forbidden("Cannot create another owner")
	}

	if err := s.guard.Enforce(authCtx.OrganizationID, billing.ResourceLawyers); err != nil {
		return nil, err
	}

	if existing, err := s.store.FindByEmail(req.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, errors.Conflict("Email already in use", "email")
	}

	if existing, err := s.store.FindByOAB(req.OAB); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, errors.Conflict("OAB number already registered", "oab")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleLawyer
	}

	now := time.Now().Unix()
	lawyer := &models.Lawyer{
		ID:             uuid.New().String(),
		OrganizationID: authCtx.OrganizationID,
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   string(hash),
		Phone:          req.Phone,
		OAB:            req.OAB,
		Specialty:      req.Specialty,
		Role:           role,
		Active:         true,
		AvatarColor:    req.AvatarColor,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Create(lawyer); err != nil {
		return nil, err
	}
	return models.ToPublicLawyer(lawyer), nil
}

type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Photo       *string `json:"photo,omitempty"`
	Specialty   *string `json:"specialty,omitempty"`
	Role        *string `json:"role,omitempty"`
	Active      *bool   `json:"active,omitempty"`
	AvatarColor *string `json:"avatar_color,omitempty"`
}

func (s *Service) Update(id string, req *UpdateRequest, authCtx auth.Context) (*models.PublicLawyer, error) {
	lawyer, err := s.lawyerForOrg(id, authCtx.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return nil, err
	}

	if req.Role != nil {
		if authCtx.Role != models.RoleOwner {
			return nil, errors.Forbidden("Only owner can change roles")
		}
		if lawyer.Role == models.RoleOwner && *req.Role != models.RoleOwner {
			return nil, errors.Forbidden("Cannot change owner role")
		}
		lawyer.Role = *req.Role
	}

	if req.Email != nil && *req.Email != lawyer.Email {
		existing, err := s.store.FindByEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, errors.Conflict("Email already in use", "email")
		}
		lawyer.Email = *req.Email
	}

	if req.Password != nil {
		if len(*req.Password) < PasswordMinLength {
			return nil, errors.Validation("Password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		lawyer.PasswordHash = string(hash)
	}

	// Reactivating a lawyer consumes quota again.
	if req.Active != nil && *req.Active && !lawyer.Active {
		if err := s.guard.Enforce(authCtx.OrganizationID, billing.ResourceLawyers); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		lawyer.Active = *req.Active
	}
	if req.Name != nil && *req.Name != "" {
		lawyer.Name = *req.Name
	}
	if req.Phone != nil {
		lawyer.Phone = req.Phone
	}
	if req.Photo != nil {
		lawyer.Photo = req.Photo
	}
	if req.Specialty != nil {
		lawyer.Specialty = req.Specialty
	}
	if req.AvatarColor != nil {
		lawyer.AvatarColor = req.AvatarColor
	}
	lawyer.UpdatedAt = time.Now().Unix()

	if err := s.store.Update(lawyer); err != nil {
		return nil, err
	}
	return models.ToPublicLawyer(lawyer), nil
}

func (s *Service) Delete(id string, authCtx auth.Context) error {
	lawyer, err := s.lawyerForOrg(id, authCtx.OrganizationID)
	if err != nil {
		return err
	}
	if err := s.guard.CheckWrite(authCtx.OrganizationID); err != nil {
		return err
	}

	if lawyer.Role == models.RoleOwner {
		return errors.Forbidden("Cannot delete organization owner")
	}
	if lawyer.ID == authCtx.LawyerID {
		return errors.Forbidden("Cannot delete yourself")
	}

	return s.store.Delete(id)
}
