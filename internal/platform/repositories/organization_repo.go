package repositories

import (
	"database/sql"
	"time"

	"github.com/brunolandim/back-jurix/internal/platform/models"
)

type OrganizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(org *models.Organization) error {
	_, err := r.db.Exec(`
		INSERT INTO organizations (id, name, document, email, phone, logo, stripe_customer_id, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, org.ID, org.Name, org.Document, org.Email, org.Phone, org.Logo, org.StripeCustomerID, org.Active, org.CreatedAt, org.UpdatedAt)
	return err
}

func (r *OrganizationRepository) FindByID(id string) (*models.Organization, error) {
	org := &models.Organization{}
	err := r.db.QueryRow(`
		SELECT id, name, document, email, phone, logo, stripe_customer_id, active, created_at, updated_at
		FROM organizations WHERE id = ?
	`, id).Scan(&org.ID, &org.Name, &org.Document, &org.Email, &org.Phone, &org.Logo, &org.StripeCustomerID, &org.Active, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return org, nil
}

func (r *OrganizationRepository) Update(org *models.Organization) error {
	_, err := r.db.Exec(`
		UPDATE organizations SET name = ?, email = ?, phone = ?, logo = ?, updated_at = ?
		WHERE id = ?
	`, org.Name, org.Email, org.Phone, org.Logo, time.Now().Unix(), org.ID)
	return err
}

func (r *OrganizationRepository) UpdateStripeCustomerID(id, customerID string) error {
	_, err := r.db.Exec(`UPDATE organizations SET stripe_customer_id = ?, updated_at = ? WHERE id = ?`,
		customerID, time.Now().Unix(), id)
	return err
}
