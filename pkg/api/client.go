package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Vidi0/scratch-io/pkg/encoding"
	"github.com/Vidi0/scratch-io/pkg/logging"
)

// RequestError indicates that the server replied to an API call with one or
// more application-level errors.
type RequestError struct {
	// Errors are the error strings returned by the server.
	Errors []string
}

// Error implements error.Error.
func (e *RequestError) Error() string {
	return "the server replied with an error: " + strings.Join(e.Errors, "; ")
}

// Client is an itch.io API client. Its zero value isn't usable; create
// clients with NewClient.
type Client struct {
	// httpClient is the underlying HTTP client.
	httpClient *http.Client
	// key is the API key used for authentication. It may be empty for
	// endpoints that don't require authentication.
	key string
	// logger is the client's logger.
	logger *logging.Logger
}

// NewClient creates an API client authenticated with the specified key. The
// key may be empty for endpoints that don't require authentication.
func NewClient(key string, logger *logging.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		key:        key,
		logger:     logger,
	}
}

// Key returns the client's API key.
func (c *Client) Key() string {
	return c.key
}

// Do issues a request against the specified address, applying the address's
// authentication scheme. The configure callback (if non-nil) runs just before
// the request is sent and may adjust anything about it, including adding a
// Range header or a form body. The caller is responsible for closing the
// response body.
func (c *Client) Do(
	ctx context.Context,
	method string,
	address URL,
	configure func(*http.Request),
) (*http.Response, error) {
	// Create the request.
	request, err := http.NewRequestWithContext(ctx, method, address.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %w", err)
	}

	// Add authentication based on the address's API version.
	switch address.version {
	case urlVersionV1:
		request.Header.Set("Authorization", "Bearer "+c.key)
	case urlVersionV2:
		request.Header.Set("Authorization", c.key)
		// This header pins the response format to the v2 API.
		request.Header.Set("Accept", "application/vnd.itch.v2")
	}

	// The callback is the final option before sending because it needs to be
	// able to modify anything.
	if configure != nil {
		configure(request)
	}

	// Perform the request.
	c.logger.Debugf("%s %s", method, address)
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("unable to perform request: %w", err)
	}

	// Success.
	return response, nil
}

// withFormBody returns a request configurator that attaches URL-encoded form
// values as the request body.
func withFormBody(form url.Values) func(*http.Request) {
	return func(request *http.Request) {
		encoded := form.Encode()
		request.Body = io.NopCloser(strings.NewReader(encoded))
		request.ContentLength = int64(len(encoded))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
}

// withQuery returns a request configurator that attaches URL query values.
func withQuery(values url.Values) func(*http.Request) {
	return func(request *http.Request) {
		request.URL.RawQuery = values.Encode()
	}
}

// callJSON performs an API request and decodes the JSON response body into
// the specified value. Application-level errors embedded in the response are
// surfaced as a RequestError.
func (c *Client) callJSON(
	ctx context.Context,
	method string,
	address URL,
	configure func(*http.Request),
	response interface{},
) error {
	// Perform the request and (if successful) ensure the response body is
	// closed.
	httpResponse, err := c.Do(ctx, method, address, configure)
	if err != nil {
		return err
	}
	defer httpResponse.Body.Close()

	// Read the full body. API responses are small, and having the raw bytes
	// allows decoding both the error envelope and the payload.
	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return fmt.Errorf("unable to read response body: %w", err)
	}

	// Check for an application-level error envelope. The server encodes
	// errors with any HTTP status, so the envelope is checked first.
	envelope := struct {
		Errors List[string] `json:"errors"`
	}{}
	if err := encoding.UnmarshalJSON(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		return &RequestError{Errors: envelope.Errors}
	}

	// Decode the payload.
	if err := encoding.UnmarshalJSON(body, response); err != nil {
		return fmt.Errorf("unable to decode response body: %w", err)
	}

	// Success.
	return nil
}
