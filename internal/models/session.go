package models

import "time"

// Session is the single login record of a storage medium. Times are epoch
// milliseconds.
type Session struct {
	UserID    int   `json:"userId"`
	LoginTime int64 `json:"loginTime"`
	ExpiresAt int64 `json:"expiresAt"`
}

// NewSession starts a session for userID at now.
func NewSession(userID int, now time.Time, timeout time.Duration) Session {
	return Session{
		UserID:    userID,
		LoginTime: now.UnixMilli(),
		ExpiresAt: now.Add(timeout).UnixMilli(),
	}
}

// IsExpired is true strictly after ExpiresAt.
func (s Session) IsExpired(now time.Time) bool {
	return now.UnixMilli() > s.ExpiresAt
}

// NeedsRenewal is true once more than half of timeout has passed since
// LoginTime.
func (s Session) NeedsRenewal(now time.Time, timeout time.Duration) bool {
	return now.UnixMilli()-s.LoginTime > timeout.Milliseconds()/2
}
