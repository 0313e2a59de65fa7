package auth

import (
	"context"

	"github.com/hxeb/hxebclass/internal/auth/adc"
)

// Checker checks the credentials configured for the Classroom API.
type Checker struct {
	credentialsFile string
	detect          func(ctx context.Context, opts Options) (TokenProvider, error)
}

// NewChecker creates a checker for the given credentials file ("" means
// application default credentials).
func NewChecker(credentialsFile string) *Checker {
	return &Checker{
		credentialsFile: credentialsFile,
		detect: func(ctx context.Context, opts Options) (TokenProvider, error) {
			return Detect(ctx, opts)
		},
	}
}

// Check inspects the credentials file locally. No network calls are made.
func (c *Checker) Check() *Status {
	details := adc.BuildDetails(c.credentialsFile)

	var state State
	switch details.State {
	case adc.StateConfigured:
		state = StateConfigured
	case adc.StateMissing:
		state = StateMissing
	default:
		state = StateInvalid
	}

	return &Status{
		State:   state,
		Summary: adc.FormatBrief(details),
		Details: details,
	}
}

// Verify checks the credentials locally and then fetches a token with the
// Classroom scopes.
func (c *Checker) Verify(ctx context.Context) *Status {
	status := c.Check()
	if status.State != StateConfigured {
		return status
	}

	creds, err := c.detect(ctx, Options{CredentialsFile: status.Details.Path})
	if err == nil {
		_, err = creds.Token(ctx)
	}
	if err != nil {
		status.State = StateInvalid
		status.Error = err.Error()
		return status
	}
	status.State = StateVerified
	return status
}
