package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinicflow/clinic-api/internal/model"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
)

const doctorColumns = `
	d.id, d.user_id, d.first_name, d.last_name, d.specialty, d.phone,
	u.email, d.created_at
`

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctors d
		JOIN users u ON u.id = d.user_id
		WHERE d.id = $1
	`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if isNoRows(err) {
		return nil, apperrors.NotFound("doctor")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID int64) (*model.Doctor, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctors d
		JOIN users u ON u.id = d.user_id
		WHERE d.user_id = $1
	`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, userID)
	if isNoRows(err) {
		return nil, apperrors.NotFound("doctor")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor by user: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, limit, offset int) ([]*model.Doctor, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM doctors`); err != nil {
		return nil, 0, fmt.Errorf("failed to count doctors: %w", err)
	}

	query := `
		SELECT ` + doctorColumns + `
		FROM doctors d
		JOIN users u ON u.id = d.user_id
		ORDER BY d.id
		LIMIT $1 OFFSET $2
	`
	doctors := []*model.Doctor{}
	if err := r.db.SelectContext(ctx, &doctors, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, total, nil
}

func (r *doctorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM doctors WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check doctor: %w", err)
	}
	return exists, nil
}

func (r *doctorRepository) CreateWithUser(ctx context.Context, user *model.User, doctor *model.Doctor) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()
		user.CreatedAt = now
		doctor.CreatedAt = now

		userQuery := `
			INSERT INTO users (username, email, role, password_hash, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		err := tx.QueryRowxContext(ctx, userQuery,
			user.Username,
			user.Email,
			user.Role,
			user.PasswordHash,
			user.CreatedAt,
		).Scan(&user.ID)
		if err != nil {
			return translateError(err, "a user with this username or email already exists")
		}

		doctor.UserID = user.ID
		doctor.Email = user.Email
		doctorQuery := `
			INSERT INTO doctors (user_id, first_name, last_name, specialty, phone, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		err = tx.QueryRowxContext(ctx, doctorQuery,
			doctor.UserID,
			doctor.FirstName,
			doctor.LastName,
			doctor.Specialty,
			doctor.Phone,
			doctor.CreatedAt,
		).Scan(&doctor.ID)
		if err != nil {
			return translateError(err, "doctor profile already exists for this user")
		}
		return nil
	})
}
