package middleware

import (
	"context"
	"net/http"
	"strings"

	"dispatch-alerts-api/internal/auth"
)

type ctxKey string

const AccountIDKey ctxKey = "uid"

// RequireAuth demands a Bearer token on mutating methods. Reads stay open so
// dispatch queries never block on a missing login; the auth endpoints
// themselves are exempt.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || strings.HasPrefix(r.URL.Path, "/auth/") {
				next.ServeHTTP(w, r)
				return
			}

			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				http.Error(w, "no token", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				http.Error(w, "bad token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AccountIDKey, claims.AccountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
