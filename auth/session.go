package auth

import "time"

// Session is the durable record of one chat user's authentication state.
// At most one of {authenticated, locked out} holds at a time: a successful
// login clears LockedUntil and a lockout clears ExpiresAt.
//
// Timestamps serialize as RFC 3339 so the persisted form stays parseable
// and sortable across process restarts.
type Session struct {
	ExpiresAt   *time.Time `json:"expires,omitempty"`
	Attempts    int        `json:"attempts"`
	LockedUntil *time.Time `json:"locked_until,omitempty"`
}

// Authenticated reports whether the session is valid at the given instant.
func (s Session) Authenticated(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.After(now)
}

// Locked reports whether the session is locked out at the given instant.
func (s Session) Locked(now time.Time) bool {
	return s.LockedUntil != nil && s.LockedUntil.After(now)
}
