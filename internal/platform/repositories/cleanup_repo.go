package repositories

import (
	"database/sql"
)

// CleanupResult reports how many rows a retention sweep removed.
type CleanupResult struct {
	Notifications int `json:"notifications"`
	ShareLinks    int `json:"shareLinks"`
}

// CleanupRepository removes rows past their retention window. Only
// notifications that were both delivered and read, and links that already
// expired, are eligible.
type CleanupRepository struct {
	db *sql.DB
}

func NewCleanupRepository(db *sql.DB) *CleanupRepository {
	return &CleanupRepository{db: db}
}

// Sweep deletes eligible rows past the cutoff in one transaction.
// Notifications age by their scheduled date, links by creation time.
func (r *CleanupRepository) Sweep(cutoff int64) (*CleanupResult, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		DELETE FROM case_notifications
		WHERE is_read = 1 AND is_sent = 1 AND date < ?
	`, cutoff)
	if err != nil {
		return nil, err
	}
	notifications, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(`
		DELETE FROM link_documents
		WHERE link_id IN (SELECT id FROM shareable_links WHERE is_expired = 1 AND created_at < ?)
	`, cutoff)
	if err != nil {
		return nil, err
	}

	res, err = tx.Exec(`
		DELETE FROM shareable_links
		WHERE is_expired = 1 AND created_at < ?
	`, cutoff)
	if err != nil {
		return nil, err
	}
	links, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &CleanupResult{
		Notifications: int(notifications),
		ShareLinks:    int(links),
	}, nil
}
