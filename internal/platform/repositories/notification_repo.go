package repositories

import (
	"database/sql"

	"github.com/brunolandim/back-jurix/internal/engine/notifications"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, case_id, lawyer_id, type, message, date, is_read, read_at,
	is_sent, sent_at, created_at`

func (r *NotificationRepository) Create(n *models.CaseNotification) error {
	_, err := r.db.Exec(`
		INSERT INTO case_notifications (`+notificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.CaseID, n.LawyerID, n.Type, n.Message, n.Date, n.IsRead, n.ReadAt,
		n.IsSent, n.SentAt, n.CreatedAt)
	return err
}

func (r *NotificationRepository) Update(n *models.CaseNotification) error {
	_, err := r.db.Exec(`
		UPDATE case_notifications SET
			lawyer_id = ?, type = ?, message = ?, date = ?, is_read = ?, read_at = ?,
			is_sent = ?, sent_at = ?
		WHERE id = ?
	`, n.LawyerID, n.Type, n.Message, n.Date, n.IsRead, n.ReadAt, n.IsSent, n.SentAt, n.ID)
	return err
}

func (r *NotificationRepository) FindByID(id string) (*models.CaseNotification, error) {
	row := r.db.QueryRow(`SELECT `+notificationColumns+` FROM case_notifications WHERE id = ?`, id)
	return scanNotification(row)
}

func (r *NotificationRepository) FindByCase(caseID string) ([]*models.CaseNotification, error) {
	return r.queryNotifications(`
		SELECT `+notificationColumns+` FROM case_notifications
		WHERE case_id = ? ORDER BY date
	`, caseID)
}

func (r *NotificationRepository) FindByLawyer(lawyerID string) ([]*models.CaseNotification, error) {
	return r.queryNotifications(`
		SELECT `+notificationColumns+` FROM case_notifications
		WHERE lawyer_id = ? ORDER BY date DESC
	`, lawyerID)
}

// FindPendingToSend selects unsent notifications whose date falls inside the
// send window, joined with the assigned lawyer and the case labels.
func (r *NotificationRepository) FindPendingToSend(now, lookback int64) ([]*notifications.PendingNotification, error) {
	rows, err := r.db.Query(`
		SELECT n.id, n.case_id, n.lawyer_id, n.type, n.message, n.date, n.is_read, n.read_at,
		       n.is_sent, n.sent_at, n.created_at,
		       c.title, c.number,
		       l.id, l.organization_id, l.name, l.email, l.password_hash, l.phone, l.photo, l.oab,
		       l.specialty, l.role, l.active, l.avatar_color, l.reset_code, l.reset_expires,
		       l.created_at, l.updated_at
		FROM case_notifications n
		JOIN legal_cases c ON c.id = n.case_id
		LEFT JOIN lawyers l ON l.id = n.lawyer_id
		WHERE n.is_sent = 0 AND n.date >= ? AND n.date <= ?
		ORDER BY n.date
	`, lookback, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []*notifications.PendingNotification
	for rows.Next() {
		p := &notifications.PendingNotification{}
		var (
			lawyerID     sql.NullString
			orgID        sql.NullString
			name         sql.NullString
			email        sql.NullString
			passwordHash sql.NullString
			phone        sql.NullString
			photo        sql.NullString
			oab          sql.NullString
			specialty    sql.NullString
			role         sql.NullString
			active       sql.NullBool
			avatarColor  sql.NullString
			resetCode    sql.NullString
			resetExpires sql.NullInt64
			createdAt    sql.NullInt64
			updatedAt    sql.NullInt64
		)
		err := rows.Scan(
			&p.ID, &p.CaseID, &p.LawyerID, &p.Type, &p.Message, &p.Date, &p.IsRead, &p.ReadAt,
			&p.IsSent, &p.SentAt, &p.CreatedAt,
			&p.CaseTitle, &p.CaseNumber,
			&lawyerID, &orgID, &name, &email, &passwordHash, &phone, &photo, &oab,
			&specialty, &role, &active, &avatarColor, &resetCode, &resetExpires,
			&createdAt, &updatedAt,
		)
		if err != nil {
			return nil, err
		}

		if lawyerID.Valid {
			lawyer := &models.Lawyer{
				ID:             lawyerID.String,
				OrganizationID: orgID.String,
				Name:           name.String,
				Email:          email.String,
				PasswordHash:   passwordHash.String,
				OAB:            oab.String,
				Role:           role.String,
				Active:         active.Bool,
				CreatedAt:      createdAt.Int64,
				UpdatedAt:      updatedAt.Int64,
			}
			if phone.Valid {
				lawyer.Phone = &phone.String
			}
			if photo.Valid {
				lawyer.Photo = &photo.String
			}
			if specialty.Valid {
				lawyer.Specialty = &specialty.String
			}
			if avatarColor.Valid {
				lawyer.AvatarColor = &avatarColor.String
			}
			if resetCode.Valid {
				lawyer.ResetCode = &resetCode.String
			}
			if resetExpires.Valid {
				lawyer.ResetExpires = &resetExpires.Int64
			}
			p.Lawyer = lawyer
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

func (r *NotificationRepository) MarkAsRead(id string, readAt int64) error {
	_, err := r.db.Exec(`UPDATE case_notifications SET is_read = 1, read_at = ? WHERE id = ?`, readAt, id)
	return err
}

func (r *NotificationRepository) MarkAllAsRead(lawyerID string, readAt int64) (int, error) {
	res, err := r.db.Exec(`
		UPDATE case_notifications SET is_read = 1, read_at = ?
		WHERE lawyer_id = ? AND is_read = 0
	`, readAt, lawyerID)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	return int(affected), err
}

func (r *NotificationRepository) MarkAsSent(id string, sentAt int64) error {
	_, err := r.db.Exec(`UPDATE case_notifications SET is_sent = 1, sent_at = ? WHERE id = ?`, sentAt, id)
	return err
}

// ReassignPending re-points a case's unsent notifications at the new
// assignee. Sent notifications keep the lawyer they were delivered to.
func (r *NotificationRepository) ReassignPending(caseID string, lawyerID *string) error {
	_, err := r.db.Exec(`UPDATE case_notifications SET lawyer_id = ? WHERE case_id = ? AND is_sent = 0`,
		lawyerID, caseID)
	return err
}

func (r *NotificationRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM case_notifications WHERE id = ?`, id)
	return err
}

func (r *NotificationRepository) queryNotifications(query string, args ...interface{}) ([]*models.CaseNotification, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.CaseNotification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func scanNotification(s interface {
	Scan(dest ...interface{}) error
}) (*models.CaseNotification, error) {
	n := &models.CaseNotification{}
	err := s.Scan(
		&n.ID,
		&n.CaseID,
		&n.LawyerID,
		&n.Type,
		&n.Message,
		&n.Date,
		&n.IsRead,
		&n.ReadAt,
		&n.IsSent,
		&n.SentAt,
		&n.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return n, nil
}
