package auth

import (
	"context"
	"time"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"

	"github.com/hxeb/hxebclass/pkg/constants"
	"github.com/hxeb/hxebclass/pkg/errors"
)

// TokenProvider supplies OAuth tokens. *auth.Credentials implements it.
type TokenProvider = auth.TokenProvider

// Options controls credential detection.
type Options struct {
	// CredentialsFile is an authorized user or service account JSON file.
	// Empty means application default credentials.
	CredentialsFile string
	// Scopes defaults to constants.ClassroomScopes.
	Scopes []string
	// Subject is the user a service account impersonates through
	// domain-wide delegation.
	Subject string
	// Timeout bounds detection; defaults to constants.CredentialDetectTimeout.
	Timeout time.Duration
}

// Detect finds credentials for the Classroom API. The returned
// credentials cache and refresh their own tokens.
func Detect(ctx context.Context, opts Options) (*auth.Credentials, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(opts.Scopes) == 0 {
		opts.Scopes = constants.ClassroomScopes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = constants.CredentialDetectTimeout
	}

	// DetectDefault does not take a context, so it runs in a goroutine.
	type result struct {
		creds *auth.Credentials
		err   error
	}
	resultChan := make(chan result, 1)
	go func() {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes:          opts.Scopes,
			CredentialsFile: opts.CredentialsFile,
			Subject:         opts.Subject,
		})
		resultChan <- result{creds: creds, err: err}
	}()

	select {
	case res := <-resultChan:
		if res.err != nil {
			return nil, &errors.AuthenticationError{
				Service: constants.ClassroomService,
				Method:  "oauth",
				Message: "no valid credentials found - run 'hxebclass auth login' or set classroom.credentials_file",
				Err:     res.err,
			}
		}
		return res.creds, nil

	case <-time.After(opts.Timeout):
		return nil, &errors.AuthenticationError{
			Service: constants.ClassroomService,
			Method:  "oauth",
			Message: "credential detection timed out",
		}

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
