package errors

import (
	"errors"
	"fmt"
)

// Common error types for the sensor bot
var (
	// Configuration errors
	ErrMissingBotToken      = errors.New("bot token is not configured")
	ErrMissingAuthSecret    = errors.New("authentication secret is not configured")
	ErrMissingSensorAddress = errors.New("sensor server address is not configured")
	ErrConfiguration        = errors.New("configuration error")

	// Sensor errors
	ErrConnectivity = errors.New("sensor unreachable")
	ErrCredentials  = errors.New("no suitable credentials for sensor")
	ErrBadPayload   = errors.New("sensor payload is not numeric")
	ErrNoData       = errors.New("sensor answered with no data")

	// Dispatch errors
	ErrTimeout = errors.New("dispatch deadline exceeded")

	// Classifier errors
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
