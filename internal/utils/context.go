package utils

import (
	"context"
	"net/http"

	"schoolPortal/internal/models"
	"schoolPortal/internal/services"
)

type contextKey string

const (
	SessionManagerKey contextKey = "session_manager"
	CurrentUserKey    contextKey = "current_user"
	RequestIDKey      contextKey = "request_id"
)

// WithSessionManager attaches the per-request session manager.
func WithSessionManager(ctx context.Context, m *services.SessionManager) context.Context {
	return context.WithValue(ctx, SessionManagerKey, m)
}

// GetSessionManager returns the session manager set by the session
// middleware.
func GetSessionManager(r *http.Request) (*services.SessionManager, bool) {
	m, ok := r.Context().Value(SessionManagerKey).(*services.SessionManager)
	return m, ok && m != nil
}

func WithCurrentUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, CurrentUserKey, u)
}

// GetCurrentUser returns the user resolved by the role middleware.
func GetCurrentUser(r *http.Request) (models.User, bool) {
	u, ok := r.Context().Value(CurrentUserKey).(models.User)
	return u, ok
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(RequestIDKey).(string)
	return id
}
