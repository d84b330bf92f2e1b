package http

import (
	"context"
	"net/http"
	"strings"

	"prestige-rentals-backend/internal/domain"
	"prestige-rentals-backend/internal/security"
)

type contextKey string

const principalKey contextKey = "principal"

// AuthMiddleware validates the bearer token and stores the resulting
// principal on the request context. Handlers pass it explicitly into the
// engine; nothing below this layer reads the context for identity.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, claims.Principal())
		next(w, r.WithContext(ctx))
	}
}

// RequireEmployee additionally rejects non-employee principals up front.
func (m *AuthMiddleware) RequireEmployee(next http.HandlerFunc) http.HandlerFunc {
	return m.Require(func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFrom(r)
		if !ok || !p.IsEmployee() {
			respondJSON(w, http.StatusForbidden, errorResponse{Error: "employee access required"})
			return
		}
		next(w, r)
	})
}

func principalFrom(r *http.Request) (domain.Principal, bool) {
	p, ok := r.Context().Value(principalKey).(domain.Principal)
	return p, ok
}
