package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/containerd/errdefs"
	"github.com/go-sql-driver/mysql"
	"github.com/restaurantapp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupUserTestRepository creates a user repository with a mock database
func setupUserTestRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func duplicateEntryError(detail string) error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry " + detail}
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		user          *models.User
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
		expectedID    int
	}{
		{
			name: "success",
			user: &models.User{
				Username:     "testuser",
				Email:        "test@example.com",
				PasswordHash: "hashedpassword",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("testuser", "test@example.com", "hashedpassword", false, models.RoleUser).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedError: false,
			expectedID:    1,
		},
		{
			name: "database error on insert",
			user: &models.User{
				Username:     "testuser",
				Email:        "test@example.com",
				PasswordHash: "hashedpassword",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("testuser", "test@example.com", "hashedpassword", false, models.RoleUser).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "duplicate email",
			user: &models.User{
				Username:     "testuser",
				Email:        "duplicate@example.com",
				PasswordHash: "hashedpassword",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("testuser", "duplicate@example.com", "hashedpassword", false, models.RoleUser).
					WillReturnError(duplicateEntryError("'duplicate@example.com' for key 'users.idx_users_email'"))
			},
			expectedError: true,
			errorContains: "email already exists",
		},
		{
			name: "duplicate username",
			user: &models.User{
				Username:     "duplicateuser",
				Email:        "test@example.com",
				PasswordHash: "hashedpassword",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("duplicateuser", "test@example.com", "hashedpassword", false, models.RoleUser).
					WillReturnError(duplicateEntryError("'duplicateuser' for key 'users.idx_users_username'"))
			},
			expectedError: true,
			errorContains: "username already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.user)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
					assert.True(t, errdefs.IsConflict(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.user.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		email         string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		notFound      bool
	}{
		{
			name:  "success",
			email: "test@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "confirmed", "role", "created_at"}).
					AddRow(1, "testuser", "test@example.com", "hashedpassword", true, "user", now)
				mock.ExpectQuery(`SELECT id, username, email, password_hash, confirmed, role, created_at`).
					WithArgs("test@example.com").
					WillReturnRows(rows)
			},
			expectedError: false,
		},
		{
			name:  "not found",
			email: "missing@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, email, password_hash, confirmed, role, created_at`).
					WithArgs("missing@example.com").
					WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "confirmed", "role", "created_at"}))
			},
			expectedError: true,
			notFound:      true,
		},
		{
			name:  "database error",
			email: "test@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, email, password_hash, confirmed, role, created_at`).
					WithArgs("test@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user, err := repo.GetByEmail(context.Background(), tt.email)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, user)
				if tt.notFound {
					assert.True(t, errdefs.IsNotFound(err))
				}
			} else {
				assert.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_ConfirmByEmail(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		notFound      bool
	}{
		{
			name:  "success",
			email: "test@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users SET confirmed = 1`).
					WithArgs("test@example.com").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			// With clientFoundRows the driver reports the matched row even
			// when confirmed was already 1, so a repeated confirmation
			// link click succeeds.
			name:  "already confirmed account",
			email: "test@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users SET confirmed = 1`).
					WithArgs("test@example.com").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name:  "no matching user",
			email: "missing@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users SET confirmed = 1`).
					WithArgs("missing@example.com").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			notFound:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.ConfirmByEmail(context.Background(), tt.email)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.notFound {
					assert.True(t, errdefs.IsNotFound(err))
				}
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		notFound      bool
	}{
		{
			name:   "success",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users SET password_hash`).
					WithArgs("newhash", 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name:   "no matching user",
			userID: 99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users SET password_hash`).
					WithArgs("newhash", 99).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			notFound:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpdatePassword(context.Background(), tt.userID, "newhash")

			if tt.expectedError {
				assert.Error(t, err)
				if tt.notFound {
					assert.True(t, errdefs.IsNotFound(err))
				}
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
