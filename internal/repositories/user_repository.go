package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/restaurantapp/backend/internal/models"
	"go.uber.org/zap"
)

// userRepository implements user data access over the users table
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, confirmed, role)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Confirmed, user.Role)
	if err != nil {
		if isDuplicateEntry(err) {
			// The UNIQUE indexes cover both email and username; name the
			// offending field so the caller gets a descriptive conflict.
			if strings.Contains(err.Error(), "username") {
				return fmt.Errorf("%w: username already exists", errdefs.ErrConflict)
			}
			return fmt.Errorf("%w: email already exists", errdefs.ErrConflict)
		}
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, confirmed, role, created_at
		FROM users
		WHERE email = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Confirmed,
		&user.Role,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user not found", errdefs.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get user by email", zap.Error(err))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, confirmed, role, created_at
		FROM users
		WHERE id = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Confirmed,
		&user.Role,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user not found", errdefs.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get user by id", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// ConfirmByEmail marks the user with the given email as confirmed.
// Confirming an already confirmed account succeeds; the connection runs
// with clientFoundRows, so RowsAffected counts the matched row even when
// nothing changed and zero means no such email.
func (r *userRepository) ConfirmByEmail(ctx context.Context, email string) error {
	query := `UPDATE users SET confirmed = 1 WHERE email = ?`

	result, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		r.logger.Error("failed to confirm user", zap.Error(err))
		return fmt.Errorf("failed to confirm user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: user not found", errdefs.ErrNotFound)
	}

	return nil
}

// UpdatePassword replaces the password hash of the given user
func (r *userRepository) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	query := `UPDATE users SET password_hash = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		r.logger.Error("failed to update password", zap.Error(err), zap.Int("user_id", userID))
		return fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: user not found", errdefs.ErrNotFound)
	}

	return nil
}
