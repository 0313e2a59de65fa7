package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cloud.google.com/go/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/hxeb/hxebclass/pkg/errors"
)

type staticToken struct {
	token *auth.Token
	err   error
}

func (s staticToken) Token(context.Context) (*auth.Token, error) {
	return s.token, s.err
}

// TestNoAuth tests that NoAuth applies no authentication.
func TestNoAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, (&NoAuth{}).Apply(context.Background(), req))
	assert.Empty(t, req.Header.Get("Authorization"))
}

// TestBearerAuth tests fixed bearer token authentication.
func TestBearerAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, (&BearerAuth{Token: "abc"}).Apply(context.Background(), req))
	assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))
}

func TestTokenAuth(t *testing.T) {
	t.Run("default scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		a := &TokenAuth{Provider: staticToken{token: &auth.Token{Value: "ya29", Expiry: time.Now().Add(time.Hour)}}}
		require.NoError(t, a.Apply(context.Background(), req))
		assert.Equal(t, "Bearer ya29", req.Header.Get("Authorization"))
	})

	t.Run("explicit scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		a := &TokenAuth{Provider: staticToken{token: &auth.Token{Value: "ya29", Type: "MAC"}}}
		require.NoError(t, a.Apply(context.Background(), req))
		assert.Equal(t, "MAC ya29", req.Header.Get("Authorization"))
	})

	t.Run("token failure", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		a := &TokenAuth{Provider: staticToken{err: errors.New("expired refresh token")}}
		err := a.Apply(context.Background(), req)
		assert.ErrorIs(t, err, pkgerrors.ErrUnauthenticated)
	})

	t.Run("no provider", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.ErrorIs(t, (&TokenAuth{}).Apply(context.Background(), req), pkgerrors.ErrUnauthenticated)
	})
}

func TestClientDoSetsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "hxebclass-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	c := New(&BearerAuth{Token: "tok"}, WithUserAgent("hxebclass-test"), WithTimeout(time.Second))
	req, err := NewJSONRequest(context.Background(), http.MethodPost, srv.URL, map[string]string{"name": "x"})
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), req)
	require.NoError(t, err)

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, DecodeResponse(resp, "classroom", &out))
	assert.Equal(t, "1", out.ID)
}

func get(t *testing.T, c *Client, url string) (*http.Response, error) {
	t.Helper()
	req, err := NewJSONRequest(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	return c.Do(context.Background(), req)
}

func TestClientDoTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := get(t, New(nil), url)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsTransport(err))
}

func TestDecodeResponseAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"Precondition check failed.","status":"FAILED_PRECONDITION"}}`))
	}))
	defer srv.Close()

	resp, err := get(t, New(nil), srv.URL+"/v1/courses/1")
	require.NoError(t, err)

	err = DecodeResponse(resp, "classroom", nil)
	var apiErr *pkgerrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, "FAILED_PRECONDITION", apiErr.Status)
	assert.Equal(t, "Precondition check failed.", apiErr.Message)
	assert.Equal(t, "/v1/courses/1", apiErr.Endpoint)
	assert.True(t, pkgerrors.IsPreconditionFailed(err))
}

func TestDecodeResponsePlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	resp, err := get(t, New(nil), srv.URL)
	require.NoError(t, err)

	err = DecodeResponse(resp, "classroom", nil)
	assert.ErrorIs(t, err, pkgerrors.ErrUnavailable)
	assert.Contains(t, err.Error(), "bad gateway")
}

func TestDecodeResponseEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := get(t, New(nil), srv.URL)
	require.NoError(t, err)

	var out map[string]any
	assert.NoError(t, DecodeResponse(resp, "classroom", &out))
}
