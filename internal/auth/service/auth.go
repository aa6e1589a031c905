package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/containerd/errdefs"
	"github.com/golang-jwt/jwt/v5"
)

// Token type claims. Every token carries one so a confirmation token can
// never be replayed as a session token and vice versa.
const (
	tokenTypeAccess  = "access"
	tokenTypeConfirm = "confirm"
	tokenTypeReset   = "reset"
)

// Claims holds the identity embedded in a validated access token
type Claims struct {
	UserID   int
	Username string
	Role     string
}

// TokenGenerator handles JWT token generation and validation
type TokenGenerator struct {
	secret            string
	accessTokenExpiry time.Duration
	emailTokenExpiry  time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, accessExpiry, emailExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:            secret,
		accessTokenExpiry: accessExpiry,
		emailTokenExpiry:  emailExpiry,
	}
}

// GenerateAccessToken creates a session token carrying user id, username and role
func (tg *TokenGenerator) GenerateAccessToken(userID int, username, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(tg.accessTokenExpiry).Unix(),
		"iat":      time.Now().Unix(),
		"type":     tokenTypeAccess,
	}

	return tg.sign(claims)
}

// GenerateEmailToken creates an email confirmation token carrying the email claim
func (tg *TokenGenerator) GenerateEmailToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(tg.emailTokenExpiry).Unix(),
		"iat":   time.Now().Unix(),
		"type":  tokenTypeConfirm,
	}

	return tg.sign(claims)
}

// GeneratePasswordResetToken creates a password reset token carrying the user id
func (tg *TokenGenerator) GeneratePasswordResetToken(userID int) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tg.emailTokenExpiry).Unix(),
		"iat":     time.Now().Unix(),
		"type":    tokenTypeReset,
	}

	return tg.sign(claims)
}

func (tg *TokenGenerator) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken validates a session token and returns the embedded claims.
// A missing, malformed or expired token yields an unauthenticated error,
// with expiry reported distinctly from other invalidity.
func (tg *TokenGenerator) ValidateAccessToken(tokenString string) (*Claims, error) {
	mapClaims, err := tg.parse(tokenString, tokenTypeAccess, errdefs.ErrUnauthenticated)
	if err != nil {
		return nil, err
	}

	// JWT claims decode numbers as float64
	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: user_id not found in token", errdefs.ErrUnauthenticated)
	}

	username, ok := mapClaims["username"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: username not found in token", errdefs.ErrUnauthenticated)
	}

	role, ok := mapClaims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: role not found in token", errdefs.ErrUnauthenticated)
	}

	return &Claims{UserID: int(userID), Username: username, Role: role}, nil
}

// ValidateEmailToken validates an email confirmation token and returns the embedded email
func (tg *TokenGenerator) ValidateEmailToken(tokenString string) (string, error) {
	mapClaims, err := tg.parse(tokenString, tokenTypeConfirm, errdefs.ErrInvalidArgument)
	if err != nil {
		return "", err
	}

	email, ok := mapClaims["email"].(string)
	if !ok {
		return "", fmt.Errorf("%w: email not found in token", errdefs.ErrInvalidArgument)
	}

	return email, nil
}

// ValidatePasswordResetToken validates a password reset token and returns the embedded user id
func (tg *TokenGenerator) ValidatePasswordResetToken(tokenString string) (int, error) {
	mapClaims, err := tg.parse(tokenString, tokenTypeReset, errdefs.ErrInvalidArgument)
	if err != nil {
		return 0, err
	}

	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("%w: user_id not found in token", errdefs.ErrInvalidArgument)
	}

	return int(userID), nil
}

// parse verifies signature, expiry and the type claim. Failures are wrapped
// in the given sentinel so session tokens map to 401 while one-shot email
// tokens map to 400, matching what each endpoint promises.
func (tg *TokenGenerator) parse(tokenString, wantType string, sentinel error) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", sentinel)
		}
		return nil, fmt.Errorf("%w: invalid token", sentinel)
	}

	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", sentinel)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", sentinel)
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != wantType {
		return nil, fmt.Errorf("%w: unexpected token type", sentinel)
	}

	return claims, nil
}
