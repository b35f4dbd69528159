package repositories

import (
	"database/sql"

	"github.com/brunolandim/back-jurix/internal/platform/models"
)

type ColumnRepository struct {
	db *sql.DB
}

func NewColumnRepository(db *sql.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

func (r *ColumnRepository) Create(column *models.Column) error {
	_, err := r.db.Exec(`
		INSERT INTO board_columns (id, organization_id, title, is_default, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, column.ID, column.OrganizationID, column.Title, column.IsDefault, column.Order, column.CreatedAt)
	return err
}

func (r *ColumnRepository) Update(column *models.Column) error {
	_, err := r.db.Exec(`UPDATE board_columns SET title = ?, sort_order = ? WHERE id = ?`,
		column.Title, column.Order, column.ID)
	return err
}

func (r *ColumnRepository) FindByID(id string) (*models.Column, error) {
	column := &models.Column{}
	err := r.db.QueryRow(`
		SELECT id, organization_id, title, is_default, sort_order, created_at
		FROM board_columns WHERE id = ?
	`, id).Scan(&column.ID, &column.OrganizationID, &column.Title, &column.IsDefault, &column.Order, &column.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return column, nil
}

func (r *ColumnRepository) FindByOrganization(organizationID string) ([]*models.Column, error) {
	rows, err := r.db.Query(`
		SELECT id, organization_id, title, is_default, sort_order, created_at
		FROM board_columns WHERE organization_id = ?
		ORDER BY sort_order
	`, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []*models.Column
	for rows.Next() {
		column := &models.Column{}
		if err := rows.Scan(&column.ID, &column.OrganizationID, &column.Title, &column.IsDefault, &column.Order, &column.CreatedAt); err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	return columns, rows.Err()
}

func (r *ColumnRepository) GetMaxOrder(organizationID string) (int, error) {
	var max int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(sort_order), -1) FROM board_columns WHERE organization_id = ?
	`, organizationID).Scan(&max)
	return max, err
}

func (r *ColumnRepository) HasCases(columnID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM legal_cases WHERE column_id = ?)`, columnID).Scan(&exists)
	return exists, err
}

func (r *ColumnRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM board_columns WHERE id = ?`, id)
	return err
}
