package middleware

import (
	"context"
	"net/http"
	"strings"

	"homeledger/internal/auth"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// NewAuth returns middleware that requires a valid bearer access token and
// stores its claims in the request context.
func NewAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondError(w, http.StatusUnauthorized, "missing bearer token", "")
				return
			}

			claims, err := tokens.VerifyAccess(token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "invalid or expired token", "")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims stores token claims in a context. Exposed so handler tests can
// build authenticated requests without minting real tokens.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom extracts the authenticated claims stored by NewAuth.
func ClaimsFrom(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(claimsKey).(*auth.Claims)
	return claims, ok
}
