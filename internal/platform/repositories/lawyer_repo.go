package repositories

import (
	"database/sql"
	"time"

	"github.com/brunolandim/back-jurix/internal/platform/models"
)

type LawyerRepository struct {
	db *sql.DB
}

func NewLawyerRepository(db *sql.DB) *LawyerRepository {
	return &LawyerRepository{db: db}
}

const lawyerColumns = `id, organization_id, name, email, password_hash, phone, photo, oab,
	specialty, role, active, avatar_color, reset_code, reset_expires, created_at, updated_at`

func (r *LawyerRepository) Create(lawyer *models.Lawyer) error {
	_, err := r.db.Exec(`
		INSERT INTO lawyers (`+lawyerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, lawyer.ID, lawyer.OrganizationID, lawyer.Name, lawyer.Email, lawyer.PasswordHash,
		lawyer.Phone, lawyer.Photo, lawyer.OAB, lawyer.Specialty, lawyer.Role, lawyer.Active,
		lawyer.AvatarColor, lawyer.ResetCode, lawyer.ResetExpires, lawyer.CreatedAt, lawyer.UpdatedAt)
	return err
}

func (r *LawyerRepository) Update(lawyer *models.Lawyer) error {
	_, err := r.db.Exec(`
		UPDATE lawyers SET
			name = ?, email = ?, password_hash = ?, phone = ?, photo = ?, oab = ?,
			specialty = ?, role = ?, active = ?, avatar_color = ?, updated_at = ?
		WHERE id = ?
	`, lawyer.Name, lawyer.Email, lawyer.PasswordHash, lawyer.Phone, lawyer.Photo, lawyer.OAB,
		lawyer.Specialty, lawyer.Role, lawyer.Active, lawyer.AvatarColor, time.Now().Unix(), lawyer.ID)
	return err
}

func (r *LawyerRepository) FindByID(id string) (*models.Lawyer, error) {
	row := r.db.QueryRow(`SELECT `+lawyerColumns+` FROM lawyers WHERE id = ?`, id)
	return scanLawyer(row)
}

func (r *LawyerRepository) FindByEmail(email string) (*models.Lawyer, error) {
	row := r.db.QueryRow(`SELECT `+lawyerColumns+` FROM lawyers WHERE email = ?`, email)
	return scanLawyer(row)
}

func (r *LawyerRepository) FindByOAB(oab string) (*models.Lawyer, error) {
	row := r.db.QueryRow(`SELECT `+lawyerColumns+` FROM lawyers WHERE oab = ?`, oab)
	return scanLawyer(row)
}

func (r *LawyerRepository) FindByEmailAndResetCode(email, code string, now int64) (*models.Lawyer, error) {
	row := r.db.QueryRow(`
		SELECT `+lawyerColumns+` FROM lawyers
		WHERE email = ? AND reset_code = ? AND reset_expires > ?
	`, email, code, now)
	return scanLawyer(row)
}

func (r *LawyerRepository) FindByOrganization(organizationID string, activeOnly bool) ([]*models.Lawyer, error) {
	query := `SELECT ` + lawyerColumns + ` FROM lawyers WHERE organization_id = ?`
	if activeOnly {
		query += ` AND active = 1`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lawyers []*models.Lawyer
	for rows.Next() {
		lawyer, err := scanLawyer(rows)
		if err != nil {
			return nil, err
		}
		lawyers = append(lawyers, lawyer)
	}
	return lawyers, rows.Err()
}

func (r *LawyerRepository) SetResetCode(id string, code *string, expires *int64) error {
	_, err := r.db.Exec(`UPDATE lawyers SET reset_code = ?, reset_expires = ?, updated_at = ? WHERE id = ?`,
		code, expires, time.Now().Unix(), id)
	return err
}

// Delete deactivates instead of removing the row so case assignments and
// notification history keep resolving.
func (r *LawyerRepository) Delete(id string) error {
	_, err := r.db.Exec(`UPDATE lawyers SET active = 0, updated_at = ? WHERE id = ?`,
		time.Now().Unix(), id)
	return err
}

// CountByOrganization counts active lawyers for plan enforcement.
func (r *LawyerRepository) CountByOrganization(organizationID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM lawyers WHERE organization_id = ? AND active = 1`,
		organizationID).Scan(&count)
	return count, err
}

func scanLawyer(s interface {
	Scan(dest ...interface{}) error
}) (*models.Lawyer, error) {
	lawyer := &models.Lawyer{}
	err := s.Scan(
		&lawyer.ID,
		&lawyer.OrganizationID,
		&lawyer.Name,
		&lawyer.Email,
		&lawyer.PasswordHash,
		&lawyer.Phone,
		&lawyer.Photo,
		&lawyer.OAB,
		&lawyer.Specialty,
		&lawyer.Role,
		&lawyer.Active,
		&lawyer.AvatarColor,
		&lawyer.ResetCode,
		&lawyer.ResetExpires,
		&lawyer.CreatedAt,
		&lawyer.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return lawyer, nil
}
