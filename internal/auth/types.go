// Package auth locates and validates the Google credentials used to call
// the Classroom API.
package auth

import "github.com/hxeb/hxebclass/internal/auth/adc"

// State represents the authentication state.
type State int

const (
	// StateConfigured means credentials were found and parsed.
	StateConfigured State = iota
	// StateMissing means no credentials were found.
	StateMissing
	// StateInvalid means credentials were found but are malformed.
	StateInvalid
	// StateVerified means a token was obtained with the credentials.
	StateVerified
)

// String returns a display label for the state.
func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateMissing:
		return "missing"
	case StateInvalid:
		return "invalid"
	case StateVerified:
		return "verified"
	default:
		return "unknown"
	}
}

// Status is the result of checking credentials.
type Status struct {
	State   State
	Summary string       // Brief one-line summary
	Details *adc.Details // Local file inspection
	Error   string       // Token error when verification failed
}
