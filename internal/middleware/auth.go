package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go-auth-api/internal/token"
)

type tokenVerifier interface {
	VerifyToken(tokenString string) (*token.Claims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

const bearerPrefix = "Bearer "

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth gates a route behind a valid Bearer token. Every request is
// re-verified from scratch; nothing is cached between requests. Expired,
// tampered and malformed tokens all get the same response body so the
// endpoint cannot be used as an oracle on token structure.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			writeUnauthorized(w, "Authorization header missing or invalid")
			return
		}

		claims, err := m.verifier.VerifyToken(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			writeUnauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*token.Claims)
	return claims, ok
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
