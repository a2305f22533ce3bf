package domain

import "time"

// Session is a server-side login session bound to a browser cookie.
//
// Sessions are process-local: they live in the in-memory store, expire after
// a fixed max-age and are lost on restart. A session carries only the user
// binding; authorization is re-checked against the user record on every
// gated request.
type Session struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// IsExpired reports whether the session has passed its max-age.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
