package middleware

import (
	"context"
	"net/http"

	apperrors "tasklist-project/backend/errors"
	"tasklist-project/backend/logging"
	"tasklist-project/backend/models"
)

// UserIDHeader carries the caller's opaque user identifier. The identifier is
// trusted as-is once it resolves to a real user; swapping in a signed-token
// scheme only requires replacing the resolver behind this middleware.
const UserIDHeader = "x-user-id"

type contextKey int

const userContextKey contextKey = iota

// UserResolver maps a caller-supplied identifier to a user record.
type UserResolver interface {
	ResolveUser(ctx context.Context, id string) (*models.User, error)
}

// UserAuth is the request authorization gate: it resolves the x-user-id
// header to a user record and attaches it to the request context, rejecting
// unauthenticated or unknown callers before any handler runs.
func UserAuth(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(UserIDHeader)
			if userID == "" {
				logging.Logger.Warnf("Event ID: AUTH_GATE_MISSING_HEADER, Description: %s header missing for request to %s %s", UserIDHeader, r.Method, r.URL.Path)
				apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
				return
			}

			user, err := resolver.ResolveUser(r.Context(), userID)
			if err != nil {
				logging.Logger.Warnf("Event ID: AUTH_GATE_REJECTED, Description: Could not resolve user %q for request to %s %s: %v", userID, r.Method, r.URL.Path, err)
				apperrors.WriteJSON(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user attached by UserAuth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
