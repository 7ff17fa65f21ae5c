package entity

import "time"

// Session backs an issued bearer token. The token resolves only while its
// session exists and has not expired.
type Session struct {
	ID        string // token id (jti)
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
