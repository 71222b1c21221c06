package models

import "time"

// Session is a row in the user_sessions table. A session is never
// updated in place: it is created once and either deleted or left to
// expire. Liveness is derived from ExpiresAt at read time, never
// stored as a flag.
type Session struct {
	ID        string
	Token     string
	UserID    int64
	Category  Category
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Live reports whether the session has not yet expired at the given
// instant.
func (s Session) Live(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
