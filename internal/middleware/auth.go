package middleware

import (
	"net/http"
	"strings"

	"github.com/mlindqvist/minauth/internal/auth"
	"github.com/mlindqvist/minauth/internal/http/respond"
	"github.com/mlindqvist/minauth/internal/logging"
)

// TokenVerifier verifies a raw bearer token into claims.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// RequireAuth is the single gate for protected routes. A missing or
// malformed Authorization header is rejected with 403 before any
// verification happens; a token that fails verification is rejected with
// 401. On success the authenticated identity is attached to the request
// context for downstream handlers. No database access happens here.
func RequireAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logging.FromRequest(r)

			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Warn().Msg("no bearer token supplied")
				respond.Error(w, http.StatusForbidden, "no token provided")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				log.Warn().Err(err).Msg("token verification failed")
				respond.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), claims)))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme keyword is case-insensitive and exactly one
// space separates it from the token.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
