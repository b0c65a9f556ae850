package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ydvSajal/Vibe-beats/internal/auth"
	svcErr "github.com/ydvSajal/Vibe-beats/internal/errors"
	"github.com/ydvSajal/Vibe-beats/internal/server"
)

type contextKey string

const userIDKey contextKey = "user_id"

// WithUserID adds an authenticated user id to the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID retrieves the authenticated user id from the context.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// RequireAuth verifies the bearer token and injects the caller's user
// id into the request context. Missing or invalid tokens get 401.
func RequireAuth(tokens *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			server.WriteError(w, svcErr.Unauthorized("missing bearer token"))
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			server.WriteError(w, svcErr.Unauthorized("invalid or expired token"))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
	})
}
