package domain

import "time"

// Session binds an externally-issued opaque session token to a user, with
// expiry. Multiple concurrent sessions per user are allowed. Expiry is
// enforced at lookup time; expired rows are never swept.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session's expiry has elapsed at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
