package service

import (
	"testing"
	"time"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenGenerator() *TokenGenerator {
	return NewTokenGenerator("test-secret", time.Hour, time.Hour)
}

func TestTokenGenerator_AccessToken(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tg := newTestTokenGenerator()

		token, err := tg.GenerateAccessToken(42, "anna", "admin")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := tg.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, 42, claims.UserID)
		assert.Equal(t, "anna", claims.Username)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("expired token", func(t *testing.T) {
		tg := NewTokenGenerator("test-secret", -time.Hour, time.Hour)

		token, err := tg.GenerateAccessToken(42, "anna", "user")
		require.NoError(t, err)

		claims, err := tg.ValidateAccessToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
		assert.True(t, errdefs.IsUnauthorized(err))
		assert.Contains(t, err.Error(), "token expired")
	})

	t.Run("wrong secret", func(t *testing.T) {
		tg := newTestTokenGenerator()
		other := NewTokenGenerator("other-secret", time.Hour, time.Hour)

		token, err := other.GenerateAccessToken(42, "anna", "user")
		require.NoError(t, err)

		claims, err := tg.ValidateAccessToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
		assert.True(t, errdefs.IsUnauthorized(err))
		assert.Contains(t, err.Error(), "invalid token")
	})

	t.Run("garbage token", func(t *testing.T) {
		tg := newTestTokenGenerator()

		claims, err := tg.ValidateAccessToken("not-a-token")
		assert.Error(t, err)
		assert.Nil(t, claims)
		assert.True(t, errdefs.IsUnauthorized(err))
	})

	t.Run("email token rejected as session token", func(t *testing.T) {
		tg := newTestTokenGenerator()

		token, err := tg.GenerateEmailToken("anna@example.com")
		require.NoError(t, err)

		claims, err := tg.ValidateAccessToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
		assert.Contains(t, err.Error(), "unexpected token type")
	})
}

func TestTokenGenerator_EmailToken(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tg := newTestTokenGenerator()

		token, err := tg.GenerateEmailToken("anna@example.com")
		require.NoError(t, err)

		email, err := tg.ValidateEmailToken(token)
		require.NoError(t, err)
		assert.Equal(t, "anna@example.com", email)
	})

	t.Run("expired token is invalid argument", func(t *testing.T) {
		tg := NewTokenGenerator("test-secret", time.Hour, -time.Hour)

		token, err := tg.GenerateEmailToken("anna@example.com")
		require.NoError(t, err)

		email, err := tg.ValidateEmailToken(token)
		assert.Error(t, err)
		assert.Empty(t, email)
		assert.True(t, errdefs.IsInvalidArgument(err))
		assert.Contains(t, err.Error(), "token expired")
	})

	t.Run("access token rejected as email token", func(t *testing.T) {
		tg := newTestTokenGenerator()

		token, err := tg.GenerateAccessToken(42, "anna", "user")
		require.NoError(t, err)

		email, err := tg.ValidateEmailToken(token)
		assert.Error(t, err)
		assert.Empty(t, email)
		assert.True(t, errdefs.IsInvalidArgument(err))
	})
}

func TestTokenGenerator_PasswordResetToken(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tg := newTestTokenGenerator()

		token, err := tg.GeneratePasswordResetToken(42)
		require.NoError(t, err)

		userID, err := tg.ValidatePasswordResetToken(token)
		require.NoError(t, err)
		assert.Equal(t, 42, userID)
	})

	t.Run("reset token rejected as confirm token", func(t *testing.T) {
		tg := newTestTokenGenerator()

		token, err := tg.GeneratePasswordResetToken(42)
		require.NoError(t, err)

		email, err := tg.ValidateEmailToken(token)
		assert.Error(t, err)
		assert.Empty(t, email)
	})

	t.Run("expired token is invalid argument", func(t *testing.T) {
		tg := NewTokenGenerator("test-secret", time.Hour, -time.Hour)

		token, err := tg.GeneratePasswordResetToken(42)
		require.NoError(t, err)

		userID, err := tg.ValidatePasswordResetToken(token)
		assert.Error(t, err)
		assert.Zero(t, userID)
		assert.True(t, errdefs.IsInvalidArgument(err))
	})
}
