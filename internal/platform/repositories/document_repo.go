package repositories

import (
	"database/sql"

	"github.com/brunolandim/back-jurix/internal/platform/models"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `id, case_id, name, description, status, file_url, requested_at,
	uploaded_at, received_at, rejected_at, rejection_reason, rejection_note`

func (r *DocumentRepository) Create(doc *models.DocumentRequest) error {
	_, err := r.db.Exec(`
		INSERT INTO document_requests (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.CaseID, doc.Name, doc.Description, doc.Status, doc.FileURL, doc.RequestedAt,
		doc.UploadedAt, doc.ReceivedAt, doc.RejectedAt, doc.RejectionReason, doc.RejectionNote)
	return err
}

func (r *DocumentRepository) Update(doc *models.DocumentRequest) error {
	_, err := r.db.Exec(`
		UPDATE document_requests SET
			name = ?, description = ?, status = ?, file_url = ?, uploaded_at = ?,
			received_at = ?, rejected_at = ?, rejection_reason = ?, rejection_note = ?
		WHERE id = ?
	`, doc.Name, doc.Description, doc.Status, doc.FileURL, doc.UploadedAt,
		doc.ReceivedAt, doc.RejectedAt, doc.RejectionReason, doc.RejectionNote, doc.ID)
	return err
}

func (r *DocumentRepository) FindByID(id string) (*models.DocumentRequest, error) {
	row := r.db.QueryRow(`SELECT `+documentColumns+` FROM document_requests WHERE id = ?`, id)
	return scanDocument(row)
}

func (r *DocumentRepository) FindByCase(caseID string) ([]*models.DocumentRequest, error) {
	rows, err := r.db.Query(`
		SELECT `+documentColumns+` FROM document_requests
		WHERE case_id = ? ORDER BY requested_at
	`, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.DocumentRequest
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *DocumentRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM document_requests WHERE id = ?`, id)
	return err
}

// CountByOrganization reports document volume across the organization's
// cases. The count feeds usage display only.
func (r *DocumentRepository) CountByOrganization(organizationID string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM document_requests d
		JOIN legal_cases c ON c.id = d.case_id
		WHERE c.organization_id = ?
	`, organizationID).Scan(&count)
	return count, err
}

func scanDocument(s interface {
	Scan(dest ...interface{}) error
}) (*models.DocumentRequest, error) {
	doc := &models.DocumentRequest{}
	err := s.Scan(
		&doc.ID,
		&doc.CaseID,
		&doc.Name,
		&doc.Description,
		&doc.Status,
		&doc.FileURL,
		&doc.RequestedAt,
		&doc.UploadedAt,
		&doc.ReceivedAt,
		&doc.RejectedAt,
		&doc.RejectionReason,
		&doc.RejectionNote,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}
