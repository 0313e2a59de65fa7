package transport

import (
	"context"
	"net/http"

	"cloud.google.com/go/auth"

	"github.com/hxeb/hxebclass/pkg/errors"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(ctx context.Context, req *http.Request) error
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ context.Context, _ *http.Request) error {
	return nil
}

// BearerAuth sends a fixed bearer token.
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(_ context.Context, req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+a.Token)
	return nil
}

// TokenAuth fetches an OAuth token from a token provider for every
// request. The provider is responsible for caching and refresh.
type TokenAuth struct {
	Provider auth.TokenProvider
}

// Apply implements the Authenticator interface for TokenAuth.
func (a *TokenAuth) Apply(ctx context.Context, req *http.Request) error {
	if a.Provider == nil {
		return &errors.AuthenticationError{Service: "classroom", Method: "oauth", Message: "no credentials configured"}
	}
	token, err := a.Provider.Token(ctx)
	if err != nil {
		return &errors.AuthenticationError{
			Service: "classroom",
			Method:  "oauth",
			Message: "failed to obtain access token",
			Err:     err,
		}
	}
	scheme := token.Type
	if scheme == "" {
		scheme = "Bearer"
	}
	req.Header.Set("Authorization", scheme+" "+token.Value)
	return nil
}
