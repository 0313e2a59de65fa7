package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/hxeb/hxebclass/pkg/errors"
	"github.com/hxeb/hxebclass/pkg/logging"
)

// NewJSONRequest builds a request whose body is body encoded as JSON.
// A nil body sends no body.
func NewJSONRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WrapParse("json", "request body", err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+url, err)
	}
	return req, nil
}

// errorBody is the JSON error envelope returned by Google APIs.
type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// DecodeResponse decodes a JSON response into target. Non-2xx responses
// become *errors.APIError carrying the service's machine-readable status.
// A nil target discards the body.
func DecodeResponse(resp *http.Response, service string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapTransport("read", service, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errors.NewAPIError(service, resp.StatusCode, string(bytes.TrimSpace(body)))
		if resp.Request != nil && resp.Request.URL != nil {
			apiErr.Endpoint = resp.Request.URL.Path
		}
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error.Message != "" {
			apiErr.Message = eb.Error.Message
			apiErr.Status = eb.Error.Status
		}
		return apiErr
	}

	if target == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}
	return nil
}
