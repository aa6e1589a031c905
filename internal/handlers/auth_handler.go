package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	authmw "github.com/restaurantapp/backend/internal/auth/middleware"
	"github.com/restaurantapp/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Register creates an unconfirmed account and sends the
	// confirmation email out-of-band.
	//
	// "req" parameter contains username, email and password.
	//
	// If the credentials are invalid or the email or username is already
	// taken, an error is returned.
	Register(ctx context.Context, req *models.RegisterRequest) error
	// Method ConfirmEmail validates a confirmation token and marks the
	// account confirmed.
	ConfirmEmail(ctx context.Context, token string) error
	// Method Login verifies credentials and returns a session token.
	//
	// An unknown email and a wrong password yield the same error. An
	// unconfirmed account is rejected before the password is checked.
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	// Method RequestPasswordReset sends a reset link to the given email
	// if an account exists.
	RequestPasswordReset(ctx context.Context, email string) error
	// Method ResetPassword validates a reset token and replaces the
	// user's password.
	ResetPassword(ctx context.Context, req *models.PasswordResetRequest) error
	// Method CurrentUser returns the identity of the authenticated user,
	// re-read from the database.
	CurrentUser(ctx context.Context, userID int) (*models.CurrentUserResponse, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *AuthHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Get("/confirm-email", h.ConfirmEmail)
		r.Post("/login", h.Login)
		r.Post("/password-recovery", h.PasswordRecovery)
		r.Post("/password-reset", h.PasswordReset)
		r.With(auth).Get("/me", h.Me)
	})
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Register a new user with username, email and password. A confirmation email is sent; the account cannot log in until confirmed.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} map[string]string "User registered successfully"
// @Failure 400 {object} map[string]string "Invalid request body or credentials"
// @Failure 409 {object} map[string]string "Email or username already exists"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.Register(r.Context(), &req); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "user registered successfully, please confirm your email",
	})
}

// ConfirmEmail handles GET /auth/confirm-email
// @Summary Confirm email address
// @Description Confirm the email address of a freshly registered account using the token from the confirmation email.
// @Tags auth
// @Produce json
// @Param token query string true "Confirmation token"
// @Success 200 {object} map[string]string "Email confirmed"
// @Failure 400 {object} map[string]string "Invalid or expired token"
// @Router /auth/confirm-email [get]
func (h *AuthHandler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.RespondError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.authService.ConfirmEmail(r.Context(), token); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "email confirmed successfully"})
}

// Login handles POST /auth/login
// @Summary Login user
// @Description Authenticate with email and password. Returns a bearer token; the account must be confirmed first.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} map[string]string "Session token"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 403 {object} map[string]string "Email not confirmed"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// PasswordRecovery handles POST /auth/password-recovery
// @Summary Request a password reset
// @Description Send a password reset link to the given email address.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.PasswordRecoveryRequest true "Recovery request"
// @Success 200 {object} map[string]string "Reset email sent"
// @Failure 404 {object} map[string]string "No account with this email"
// @Router /auth/password-recovery [post]
func (h *AuthHandler) PasswordRecovery(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordRecoveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "password reset email sent"})
}

// PasswordReset handles POST /auth/password-reset
// @Summary Reset password
// @Description Replace the account password using the token from the reset email.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.PasswordResetRequest true "Reset request"
// @Success 200 {object} map[string]string "Password updated"
// @Failure 400 {object} map[string]string "Invalid or expired token, or weak password"
// @Router /auth/password-reset [post]
func (h *AuthHandler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ResetPassword(r.Context(), &req); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "password updated successfully"})
}

// Me handles GET /auth/me
// @Summary Current user
// @Description Return the identity of the authenticated user.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CurrentUserResponse
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := authmw.GetClaims(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), claims.UserID)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}
