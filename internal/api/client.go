package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/sprintdeck/internal/errors"
	"github.com/felixgeelhaar/sprintdeck/internal/log"
)

// Client is the sprintdeck platform API client.
//
// Error policy is asymmetric by design: read helpers degrade transport
// failures and unrecognized payloads to empty/absent results so views
// never crash on a transient failure, while writes always propagate so
// a mutation can never silently fail. Authentication failures propagate
// on both paths; redirecting to login is the caller's job.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string

	logger     *log.Logger
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = timeout }
}

// WithRetryDelay sets the fixed delay before the single read retry.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) { c.retryDelay = delay }
}

// NewClient creates a new platform API client.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:     log.DefaultLogger(),
		retryDelay: 500 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// SetToken sets the authentication token attached to every request.
func (c *Client) SetToken(token string) {
	c.Token = token
}

// ClearToken drops the authentication token.
func (c *Client) ClearToken() {
	c.Token = ""
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doRequest performs an HTTP request with authentication and a request
// ID. GET requests get one retry with a fixed delay on transport
// failure; the client applies no other backoff logic.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to marshal request body", err)
		}
	}

	requestID := uuid.NewString()

	resp, err := c.send(ctx, method, path, payload, requestID)
	if err != nil && method == http.MethodGet && ctx.Err() == nil {
		c.logger.Debug("retrying request", "method", method, "path", path, "request_id", requestID)

		select {
		case <-time.After(c.retryDelay):
		case <-ctx.Done():
			return nil, errors.Wrap(errors.ErrCodeAPIRequest, "request cancelled", ctx.Err())
		}

		resp, err = c.send(ctx, method, path, payload, requestID)
	}

	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIRequest, fmt.Sprintf("%s %s failed", method, path), err)
	}

	return resp, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, requestID string) (*http.Response, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	return c.HTTPClient.Do(req)
}

// readBody consumes the response, mapping status codes to errors:
// 401/403 become API-003, 404 becomes API-004, other non-2xx become
// API-002 with the backend's message when one is parseable.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIResponse, "failed to read response body", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.NewUnauthorizedError(resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeAPINotFound, "resource not found")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		// Try to surface the backend's own error message
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Error != "" {
				return nil, errors.New(errors.ErrCodeAPIResponse, errResp.Error)
			}
			if errResp.Message != "" {
				return nil, errors.New(errors.ErrCodeAPIResponse, errResp.Message)
			}
		}
		return nil, errors.New(errors.ErrCodeAPIResponse,
			fmt.Sprintf("request failed with status %d: %s", resp.StatusCode, string(body)))
	}

	return body, nil
}

// isAuthError reports whether the error is an authentication failure,
// which must propagate even on read paths.
func isAuthError(err error) bool {
	deckErr, ok := err.(*errors.SprintdeckError)
	if !ok {
		return false
	}
	return deckErr.Code == errors.ErrCodeAPIUnauthorized
}

// isNotFound reports whether the error is a 404 outcome.
func isNotFound(err error) bool {
	deckErr, ok := err.(*errors.SprintdeckError)
	if !ok {
		return false
	}
	return deckErr.Code == errors.ErrCodeAPINotFound
}
