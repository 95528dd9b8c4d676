package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/repositories"
	"go.uber.org/zap"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// UserRepository implements the repositories.UserRepository interface
type UserRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB, logger *zap.Logger) repositories.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user. A concurrent insert for the same google_id loses
// against the unique constraint and surfaces as ErrDuplicateGoogleID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (uid, email, google_id, display_name, photo_url, last_login, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.UID,
		user.Email,
		user.GoogleID,
		user.DisplayName,
		user.PhotoURL,
		user.LastLogin,
		user.CreatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repositories.ErrDuplicateGoogleID
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug("user created",
		zap.String("uid", user.UID.String()),
		zap.String("email", user.Email))
	return nil
}

// GetByID retrieves a user by internal id
func (r *UserRepository) GetByID(ctx context.Context, uid uuid.UUID) (*models.User, error) {
	query := `
		SELECT uid, email, google_id, display_name, photo_url, last_login, created_at
		FROM users
		WHERE uid = $1
	`

	return r.scanUser(r.db.QueryRowContext(ctx, query, uid))
}

// GetByGoogleID retrieves a user by Google subject
func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	query := `
		SELECT uid, email, google_id, display_name, photo_url, last_login, created_at
		FROM users
		WHERE google_id = $1
	`

	return r.scanUser(r.db.QueryRowContext(ctx, query, googleID))
}

// TouchLastLogin advances last_login to now
func (r *UserRepository) TouchLastLogin(ctx context.Context, uid uuid.UUID) error {
	query := `UPDATE users SET last_login = $2 WHERE uid = $1`

	result, err := r.db.ExecContext(ctx, query, uid, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("user last login updated", zap.String("uid", uid.String()))
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.UID,
		&user.Email,
		&user.GoogleID,
		&user.DisplayName,
		&user.PhotoURL,
		&user.LastLogin,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
