package repositories

import (
	"database/sql"
	"time"

	"github.com/brunolandim/back-jurix/internal/platform/models"
)

type CaseRepository struct {
	db *sql.DB
}

func NewCaseRepository(db *sql.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

const caseColumns = `id, organization_id, column_id, number, title, description, client,
	client_phone, priority, sort_order, active, assigned_to, created_by, created_at, updated_at`

func (r *CaseRepository) Create(c *models.LegalCase) error {
	_, err := r.db.Exec(`
		INSERT INTO legal_cases (`+caseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.OrganizationID, c.ColumnID, c.Number, c.Title, c.Description, c.Client,
		c.ClientPhone, c.Priority, c.Order, c.Active, c.AssignedTo, c.CreatedBy, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *CaseRepository) Update(c *models.LegalCase) error {
	_, err := r.db.Exec(`
		UPDATE legal_cases SET
			column_id = ?, number = ?, title = ?, description = ?, client = ?,
			client_phone = ?, priority = ?, sort_order = ?, active = ?, assigned_to = ?, updated_at = ?
		WHERE id = ?
	`, c.ColumnID, c.Number, c.Title, c.Description, c.Client,
		c.ClientPhone, c.Priority, c.Order, c.Active, c.AssignedTo, time.Now().Unix(), c.ID)
	return err
}

func (r *CaseRepository) FindByID(id string) (*models.LegalCase, error) {
	row := r.db.QueryRow(`SELECT `+caseColumns+` FROM legal_cases WHERE id = ?`, id)
	return scanCase(row)
}

func (r *CaseRepository) FindByOrganization(organizationID string, activeOnly bool) ([]*models.LegalCase, error) {
	query := `SELECT ` + caseColumns + ` FROM legal_cases WHERE organization_id = ?`
	if activeOnly {
		query += ` AND active = 1`
	}
	query += ` ORDER BY sort_order`
	return r.queryCases(query, organizationID)
}

func (r *CaseRepository) FindByColumn(columnID string) ([]*models.LegalCase, error) {
	query := `SELECT ` + caseColumns + ` FROM legal_cases WHERE column_id = ? AND active = 1 ORDER BY sort_order`
	return r.queryCases(query, columnID)
}

func (r *CaseRepository) GetMaxOrder(columnID string) (int, error) {
	var max int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(sort_order), -1) FROM legal_cases WHERE column_id = ?
	`, columnID).Scan(&max)
	return max, err
}

func (r *CaseRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM legal_cases WHERE id = ?`, id)
	return err
}

// CountByOrganization counts active cases for plan enforcement. Archived
// cases do not hold quota.
func (r *CaseRepository) CountByOrganization(organizationID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM legal_cases WHERE organization_id = ? AND active = 1`,
		organizationID).Scan(&count)
	return count, err
}

func (r *CaseRepository) queryCases(query string, args ...interface{}) ([]*models.LegalCase, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []*models.LegalCase
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

func scanCase(s interface {
	Scan(dest ...interface{}) error
}) (*models.LegalCase, error) {
	c := &models.LegalCase{}
	err := s.Scan(
		&c.ID,
		&c.OrganizationID,
		&c.ColumnID,
		&c.Number,
		&c.Title,
		&c.Description,
		&c.Client,
		&c.ClientPhone,
		&c.Priority,
		&c.Order,
		&c.Active,
		&c.AssignedTo,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}
