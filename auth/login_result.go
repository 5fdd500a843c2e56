package auth

import "time"

// LoginStatus enumerates the outcomes of a login attempt.
type LoginStatus int

const (
	// LoginSuccess - the secret matched and a fresh session was created
	LoginSuccess LoginStatus = iota
	// LoginFailure - the secret did not match; attempts remain
	LoginFailure
	// LoginAlreadyAuthenticated - an unexpired session already exists
	LoginAlreadyAuthenticated
	// LoginLockedOut - a previous lockout is still in force
	LoginLockedOut
	// LoginLockedOutNow - this attempt crossed the threshold and locked the user
	LoginLockedOutNow
)

func (s LoginStatus) String() string {
	switch s {
	case LoginSuccess:
		return "success"
	case LoginFailure:
		return "failure"
	case LoginAlreadyAuthenticated:
		return "already_authenticated"
	case LoginLockedOut:
		return "locked_out"
	case LoginLockedOutNow:
		return "locked_out_now"
	}
	return "unknown"
}

// LoginResult carries the outcome of AttemptLogin.
// AttemptsRemaining is set for LoginFailure, LockedUntil for the two
// lockout statuses.
type LoginResult struct {
	Status            LoginStatus
	AttemptsRemaining int
	LockedUntil       time.Time
}
