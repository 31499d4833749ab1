package middleware

import (
	"context"
	"net/http"
	"strings"

	"notesapi/pkg/apperror"
	"notesapi/pkg/logger"
	"notesapi/pkg/response"
)

type contextKey string

const UserIDKey contextKey = "userID"

// TokenVerifier resolves an access token to the user id it was issued for.
type TokenVerifier interface {
	VerifyAccessToken(raw string) (string, error)
}

// Auth rejects requests without a valid access token and stores the caller's
// user id in the request context.
func Auth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Browsers cannot set headers on a WebSocket handshake, so the
			// token may also arrive in the query string.
			tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if tokenString == "" {
				tokenString = r.URL.Query().Get("token")
			}
			if tokenString == "" {
				response.Error(w, apperror.Unauthorized("missing authentication"))
				return
			}

			userID, err := tokens.VerifyAccessToken(tokenString)
			if err != nil {
				logger.Sugar.Debugf("Rejected token: %v", err)
				response.Error(w, apperror.Unauthorized("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFrom returns the id stored by Auth, or "" outside an authenticated route.
func UserIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// WithUserID is used by tests and internal callers that bypass Auth.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}
