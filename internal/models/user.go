package models

import "time"

// Role is the user's privilege level
type Role string

// User roles
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Confirmed    bool      `json:"confirmed"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordRecoveryRequest is the payload for POST /auth/password-recovery
type PasswordRecoveryRequest struct {
	Email string `json:"email"`
}

// PasswordResetRequest is the payload for POST /auth/password-reset
type PasswordResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// CurrentUserResponse is the body of GET /auth/me
type CurrentUserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
