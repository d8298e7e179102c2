package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mmynk/finanzas/internal/auth"
	"github.com/mmynk/finanzas/internal/models"
	"github.com/mmynk/finanzas/internal/respond"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
)

// TokenHeader carries the session token issued by /login.
const TokenHeader = "x-access-token"

// Messages returned to clients when a token is rejected.
const (
	MsgMissingToken = "Token no proporcionado"
	MsgInvalidToken = "Token inválido"
)

// RejectFunc is told why a request was rejected ("missing_token" or "invalid_token").
type RejectFunc func(reason string)

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// WithEmail returns a copy of ctx carrying email.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, EmailKey, email)
}

// tokenFromRequest reads the x-access-token header, falling back to an
// "Authorization: Bearer" header.
func tokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token
	}
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// RequireAuth returns a middleware that validates the session token and
// requires authentication. The token subject is added to the request context.
// onReject may be nil.
func RequireAuth(jwtManager *auth.JWTManager, onReject RejectFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				if onReject != nil {
					onReject("missing_token")
				}
				respond.Error(w, http.StatusUnauthorized, MsgMissingToken)
				return
			}

			email, ok := jwtManager.Validate(token)
			if !ok {
				if onReject != nil {
					onReject("invalid_token")
				}
				respond.Error(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), email)))
		})
	}
}

// OptionalAuth returns a middleware that validates the session token if
// present, but allows requests without one. Requests without a valid token
// are attributed to models.AnonymousEmail.
func OptionalAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := models.AnonymousEmail
			if token := tokenFromRequest(r); token != "" {
				// Ignore errors - optional auth
				if subject, ok := jwtManager.Validate(token); ok {
					email = subject
				}
			}
			next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), email)))
		})
	}
}
