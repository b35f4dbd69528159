package repositories

import (
	"database/sql"

	"github.com/brunolandim/back-jurix/internal/platform/models"
)

type ShareLinkRepository struct {
	db *sql.DB
}

func NewShareLinkRepository(db *sql.DB) *ShareLinkRepository {
	return &ShareLinkRepository{db: db}
}

// Create inserts the link and its document set atomically.
func (r *ShareLinkRepository) Create(link *models.ShareableLink, documentIDs []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO shareable_links (id, token, case_id, is_expired, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, link.ID, link.Token, link.CaseID, link.IsExpired, link.CreatedBy, link.CreatedAt)
	if err != nil {
		return err
	}

	for _, docID := range documentIDs {
		if _, err := tx.Exec(`INSERT INTO link_documents (link_id, document_id) VALUES (?, ?)`, link.ID, docID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ShareLinkRepository) FindActiveByCase(caseID string) (*models.ShareableLink, error) {
	link := &models.ShareableLink{}
	err := r.db.QueryRow(`
		SELECT id, token, case_id, is_expired, created_by, created_at
		FROM shareable_links WHERE case_id = ? AND is_expired = 0
		ORDER BY created_at DESC LIMIT 1
	`, caseID).Scan(&link.ID, &link.Token, &link.CaseID, &link.IsExpired, &link.CreatedBy, &link.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return link, nil
}

func (r *ShareLinkRepository) FindByCase(caseID string) ([]*models.ShareableLink, error) {
	rows, err := r.db.Query(`
		SELECT id, token, case_id, is_expired, created_by, created_at
		FROM shareable_links WHERE case_id = ?
		ORDER BY created_at DESC
	`, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*models.ShareableLink
	for rows.Next() {
		link := &models.ShareableLink{}
		if err := rows.Scan(&link.ID, &link.Token, &link.CaseID, &link.IsExpired, &link.CreatedBy, &link.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (r *ShareLinkRepository) FindDocumentIDs(linkID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT document_id FROM link_documents WHERE link_id = ?`, linkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindByToken loads the link with the case labels, the creator's name and the
// full document set shown on the public upload page.
func (r *ShareLinkRepository) FindByToken(token string) (*models.ShareableLinkWithDocuments, error) {
	link := &models.ShareableLinkWithDocuments{}
	err := r.db.QueryRow(`
		SELECT sl.id, sl.token, sl.case_id, sl.is_expired, sl.created_by, sl.created_at,
		       c.title, c.number, l.name
		FROM shareable_links sl
		JOIN legal_cases c ON c.id = sl.case_id
		JOIN lawyers l ON l.id = sl.created_by
		WHERE sl.token = ?
	`, token).Scan(&link.ID, &link.Token, &link.CaseID, &link.IsExpired, &link.CreatedBy, &link.CreatedAt,
		&link.CaseTitle, &link.CaseNumber, &link.LawyerName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT `+documentColumns+` FROM document_requests
		WHERE id IN (SELECT document_id FROM link_documents WHERE link_id = ?)
		ORDER BY requested_at
	`, link.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		link.Documents = append(link.Documents, doc)
	}
	return link, rows.Err()
}

func (r *ShareLinkRepository) Expire(linkID string) error {
	_, err := r.db.Exec(`UPDATE shareable_links SET is_expired = 1 WHERE id = ?`, linkID)
	return err
}

// CountByOrganization counts non-expired links for plan enforcement.
func (r *ShareLinkRepository) CountByOrganization(organizationID string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM shareable_links sl
		JOIN legal_cases c ON c.id = sl.case_id
		WHERE c.organization_id = ? AND sl.is_expired = 0
	`, organizationID).Scan(&count)
	return count, err
}
