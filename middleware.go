package main

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"schoolPortal/internal/models"
	"schoolPortal/internal/services"
	"schoolPortal/internal/storage"
	"schoolPortal/internal/utils"
)

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		r = r.WithContext(utils.WithRequestID(r.Context(), requestID))

		wrapper := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		AppLogger.WithFields(map[string]interface{}{
			"request_id":  requestID,
			"method":      r.Method,
			"path":        r.URL.Path,
			"duration_ms": time.Since(start).Milliseconds(),
			"status_code": wrapper.statusCode,
			"remote_addr": r.RemoteAddr,
			"user_agent":  r.UserAgent(),
		}).Info("HTTP request completed")
	})
}

// responseWriterWrapper records the status code written by the handler.
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				AppLogger.WithFields(map[string]interface{}{
					"request_id":  utils.GetRequestID(r),
					"method":      r.Method,
					"path":        r.URL.Path,
					"panic":       fmt.Sprintf("%v", err),
					"remote_addr": r.RemoteAddr,
				}).Error("Panic recovered in HTTP handler")
				utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// SerializeMiddleware runs one request at a time. Collections are
// read-modify-write over the whole value, so concurrent writers would lose
// updates.
func SerializeMiddleware(mu *sync.Mutex) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			defer mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionMiddleware gives every request a SessionManager bound to the
// caller's session cookie.
func SessionMiddleware(store sessions.Store, shared storage.KV, portal *services.Portal, timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			kv := newCookieSessionKV(store, shared, w, r)
			ctx := utils.WithSessionManager(r.Context(), portal.Sessions(kv, timeout))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through only when the logged in user's role
// satisfies required.
func RequireRole(required models.Role, next http.HandlerFunc) http.HandlerFunc {
	return requireRoleLocked(required, nil, next)
}

// requireRoleLocked is RequireRole for routes outside SerializeMiddleware:
// the user lookup runs under mu, the handler does not.
func requireRoleLocked(required models.Role, mu sync.Locker, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := utils.GetSessionManager(r)
		if !ok {
			utils.AuthenticationError(w)
			return
		}

		if mu != nil {
			mu.Lock()
		}
		user, found, err := m.CurrentUser()
		if mu != nil {
			mu.Unlock()
		}
		if err != nil {
			AppLogger.WithFields(map[string]interface{}{
				"request_id": utils.GetRequestID(r),
				"path":       r.URL.Path,
			}).WithError(err).Error("Could not resolve current user")
			utils.StorageError(w)
			return
		}
		if !found {
			utils.AuthenticationError(w)
			return
		}

		if !user.Role.Satisfies(required) {
			AppLogger.WithFields(map[string]interface{}{
				"user_id":  user.ID,
				"role":     user.Role,
				"required": required,
				"path":     r.URL.Path,
			}).Warn("Access denied")
			utils.AuthorizationError(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithCurrentUser(r.Context(), user)))
	}
}
