package middleware

import (
	"context"
	"net/http"

	"github.com/restaurantapp/backend/internal/auth/service"
)

// AdminMiddleware validates the bearer token and requires the admin role
func AdminMiddleware(tokenGenerator *service.TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)

			// If no token found, return 401
			if token == "" {
				respondUnauthorized(w, "authentication required")
				return
			}

			claims, err := tokenGenerator.ValidateAccessToken(token)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			if claims.Role != "admin" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"insufficient permissions"}`))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
