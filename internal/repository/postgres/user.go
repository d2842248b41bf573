package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinicflow/clinic-api/internal/model"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
)

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, username, email, role, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	var user model.User
	err := r.db.GetContext(ctx, &user, query, id)
	if isNoRows(err) {
		return nil, apperrors.NotFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, email, role, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	var user model.User
	err := r.db.GetContext(ctx, &user, query, username)
	if isNoRows(err) {
		return nil, apperrors.NotFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

func (r *userRepository) CreateAdmin(ctx context.Context, user *model.User, afterInsert func() error) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		user.CreatedAt = time.Now()
		query := `
			INSERT INTO users (username, email, role, password_hash, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		err := tx.QueryRowxContext(ctx, query,
			user.Username,
			user.Email,
			user.Role,
			user.PasswordHash,
			user.CreatedAt,
		).Scan(&user.ID)
		if err != nil {
			return translateError(err, "a user with this username or email already exists")
		}

		if afterInsert != nil {
			if err := afterInsert(); err != nil {
				return err
			}
		}
		return nil
	})
}
