package middleware

import (
	"context"
	"net/http"
	"strings"

	"roastery/auth"
	"roastery/utils"
)

// Key type for context
type contextKey string

// ClaimContextKey is where the verified identity claim is stored on the
// request context.
const ClaimContextKey = contextKey("claim")

// ClaimFrom extracts the verified claim attached by Authenticate.
func ClaimFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimContextKey).(*auth.Claims)
	return claims, ok
}

// Authenticate verifies the bearer token and attaches the claim to the
// request context. The wrapped handler never runs for an invalid credential.
func Authenticate(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteError(w, http.StatusUnauthorized, "Authorization header missing")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.WriteError(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin claims. It layers on top of Authenticate
// and never re-verifies the token itself.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimFrom(r.Context())
		if !ok || !claims.IsAdmin() {
			utils.WriteError(w, http.StatusForbidden, "Forbidden: Admins only")
			return
		}
		next.ServeHTTP(w, r)
	})
}
