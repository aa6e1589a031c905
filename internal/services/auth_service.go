package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/restaurantapp/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Basic email format check; real validation happens when the
// confirmation email is delivered.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 8

// UserRepository defines the user data access operations the auth service needs
type UserRepository interface {
	// Create inserts a new user and fills in its id
	Create(ctx context.Context, user *models.User) error
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID retrieves a user by id
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// ConfirmByEmail marks the user with the given email as confirmed
	ConfirmByEmail(ctx context.Context, email string) error
	// UpdatePassword replaces the password hash of the given user
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error
}

// TokenGenerator defines the token operations the auth service needs
type TokenGenerator interface {
	GenerateAccessToken(userID int, username, role string) (string, error)
	GenerateEmailToken(email string) (string, error)
	GeneratePasswordResetToken(userID int) (string, error)
	ValidateEmailToken(tokenString string) (string, error)
	ValidatePasswordResetToken(tokenString string) (int, error)
}

// Mailer defines the email operations the auth service needs
type Mailer interface {
	SendConfirmation(to, username, confirmURL string) error
	SendPasswordReset(to, resetURL string) error
}

// AuthService handles registration, email confirmation, login and
// password recovery
type AuthService struct {
	userRepo        UserRepository
	tokens          TokenGenerator
	mailer          Mailer
	appBaseURL      string
	frontendBaseURL string
	logger          *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokens TokenGenerator, mailer Mailer, appBaseURL, frontendBaseURL string, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		tokens:          tokens,
		mailer:          mailer,
		appBaseURL:      appBaseURL,
		frontendBaseURL: frontendBaseURL,
		logger:          logger,
	}
}

// Register creates an unconfirmed account and sends the confirmation email.
// The email is sent out-of-band; a delivery failure never fails registration.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" {
		return fmt.Errorf("%w: username is required", errdefs.ErrInvalidArgument)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", errdefs.ErrInvalidArgument)
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least 8 characters long", errdefs.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Confirmed:    false,
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	// Send the confirmation email in the background so a slow or broken
	// SMTP relay doesn't break the registration flow.
	go func() {
		token, err := s.tokens.GenerateEmailToken(email)
		if err != nil {
			s.logger.Warn("failed to generate confirmation token", zap.Error(err), zap.String("email", email))
			return
		}

		confirmURL := fmt.Sprintf("%s/api/v1/auth/confirm-email?token=%s", s.appBaseURL, token)
		if err := s.mailer.SendConfirmation(email, username, confirmURL); err != nil {
			s.logger.Warn("failed to send confirmation email", zap.Error(err), zap.String("email", email))
		}
	}()

	return nil
}

// ConfirmEmail validates the confirmation token and marks the account confirmed
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) error {
	email, err := s.tokens.ValidateEmailToken(token)
	if err != nil {
		return err
	}

	if err := s.userRepo.ConfirmByEmail(ctx, email); err != nil {
		if errdefs.IsNotFound(err) {
			return fmt.Errorf("%w: invalid or expired token", errdefs.ErrInvalidArgument)
		}
		return err
	}

	return nil
}

// Login verifies credentials and returns a session token. An unknown email
// and a wrong password produce the same error so the endpoint never leaks
// which accounts exist; an unconfirmed account is reported before the
// password is even checked.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return "", fmt.Errorf("%w: invalid email or password", errdefs.ErrUnauthenticated)
		}
		return "", err
	}

	if !user.Confirmed {
		return "", fmt.Errorf("%w: please confirm your email before logging in", errdefs.ErrPermissionDenied)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", fmt.Errorf("%w: invalid email or password", errdefs.ErrUnauthenticated)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return token, nil
}

// RequestPasswordReset sends a reset link to the given email if an account
// exists. The email goes out in the background like the confirmation email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	go func() {
		token, err := s.tokens.GeneratePasswordResetToken(user.ID)
		if err != nil {
			s.logger.Warn("failed to generate reset token", zap.Error(err), zap.Int("user_id", user.ID))
			return
		}

		resetURL := fmt.Sprintf("%s/password-reset?token=%s", s.frontendBaseURL, token)
		if err := s.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
			s.logger.Warn("failed to send password reset email", zap.Error(err), zap.Int("user_id", user.ID))
		}
	}()

	return nil
}

// ResetPassword validates the reset token and replaces the user's password
func (s *AuthService) ResetPassword(ctx context.Context, req *models.PasswordResetRequest) error {
	userID, err := s.tokens.ValidatePasswordResetToken(req.Token)
	if err != nil {
		return err
	}

	if len(req.NewPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least 8 characters long", errdefs.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if errdefs.IsNotFound(err) {
			return fmt.Errorf("%w: invalid or expired token", errdefs.ErrInvalidArgument)
		}
		return err
	}

	return nil
}

// CurrentUser re-reads the authenticated user's row so the response
// reflects the database, not just the token
func (s *AuthService) CurrentUser(ctx context.Context, userID int) (*models.CurrentUserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.CurrentUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
