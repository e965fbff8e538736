package services

import (
	"encoding/json"
	"fmt"
	"time"

	"schoolPortal/internal/logging"
	"schoolPortal/internal/models"
	"schoolPortal/internal/storage"
)

const (
	// SessionKey holds the single session of a storage medium.
	SessionKey = "auth-session"
	// DefaultSessionTimeout is the session lifetime after login or renewal.
	DefaultSessionTimeout = 24 * time.Hour
)

// SessionManager tracks who is logged in on one storage medium. Expiry is
// lazy: it is only noticed when the session is next read.
type SessionManager struct {
	kv      storage.KV
	users   *UserDirectory
	timeout time.Duration
	now     Clock
	log     *logging.Logger
}

// NewSessionManager keeps the session in kv. users may live on a different
// medium. A non-positive timeout selects DefaultSessionTimeout.
func NewSessionManager(kv storage.KV, users *UserDirectory, timeout time.Duration, now Clock, log *logging.Logger) *SessionManager {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	if now == nil {
		now = time.Now
	}
	return &SessionManager{kv: kv, users: users, timeout: timeout, now: now, log: log}
}

func (m *SessionManager) Timeout() time.Duration { return m.timeout }

// Login starts a session when email and password match an account exactly.
// An unknown email and a wrong password are indistinguishable.
func (m *SessionManager) Login(email, password string) (bool, error) {
	user, ok, err := m.users.FindByCredentials(email, password)
	if err != nil || !ok {
		return false, err
	}

	now := m.now()
	if _, err := m.users.Update(user.ID, models.UserPatch{LastAccess: &now}); err != nil {
		return false, err
	}
	if err := m.write(models.NewSession(user.ID, now, m.timeout)); err != nil {
		return false, err
	}

	m.log.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User logged in")
	return true, nil
}

// Logout clears the session. It is safe to call when nobody is logged in.
func (m *SessionManager) Logout() error {
	if err := m.kv.Remove(SessionKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a live session exists. An expired or
// unreadable session is removed. A session older than half the timeout is
// renewed with a fresh window.
func (m *SessionManager) IsAuthenticated() (bool, error) {
	session, ok, err := m.read()
	if err != nil || !ok {
		return false, err
	}

	now := m.now()
	if session.IsExpired(now) {
		m.log.WithField("user_id", session.UserID).Info("Session expired")
		return false, m.Logout()
	}

	if session.NeedsRenewal(now, m.timeout) {
		if err := m.write(models.NewSession(session.UserID, now, m.timeout)); err != nil {
			return false, err
		}
		m.log.WithField("user_id", session.UserID).Debug("Session renewed")
	}
	return true, nil
}

// CurrentUser returns the logged in account. It reports false when nobody
// is logged in or the account has since been deleted.
func (m *SessionManager) CurrentUser() (models.User, bool, error) {
	authenticated, err := m.IsAuthenticated()
	if err != nil || !authenticated {
		return models.User{}, false, err
	}

	session, ok, err := m.read()
	if err != nil || !ok {
		return models.User{}, false, err
	}
	return m.users.Get(session.UserID)
}

// HasPermission reports whether the current user's role satisfies required.
// Admins satisfy everything.
func (m *SessionManager) HasPermission(required models.Role) (bool, error) {
	user, ok, err := m.CurrentUser()
	if err != nil || !ok {
		return false, err
	}
	return user.Role.Satisfies(required), nil
}

// Session returns the stored session without applying expiry.
func (m *SessionManager) Session() (models.Session, bool, error) {
	return m.read()
}

func (m *SessionManager) read() (models.Session, bool, error) {
	raw, ok, err := m.kv.Get(SessionKey)
	if err != nil {
		return models.Session{}, false, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return models.Session{}, false, nil
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		m.log.WithError(err).Warn("Discarding unreadable session")
		return models.Session{}, false, m.Logout()
	}
	return session, true, nil
}

func (m *SessionManager) write(session models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.kv.Set(SessionKey, string(data)); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
