package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/felixgeelhaar/sprintdeck/internal/errors"
)

// ErrNotFound is the absent outcome for single-item reads. Callers
// check it with errors.Is; it is not a crash-worthy failure.
var ErrNotFound = errors.New(errors.ErrCodeAPINotFound, "resource not found")

// envelope is the optional wrapping convention the backend may apply.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// unwrapList normalizes a list payload: a bare JSON array, an array
// wrapped under "data", or anything else, which decodes to empty. The
// shape check is shared here so every gateway behaves identically
// instead of sniffing per call.
func unwrapList[T any](body []byte) []T {
	var bare []T
	if err := json.Unmarshal(body, &bare); err == nil {
		if bare == nil {
			return []T{}
		}
		return bare
	}

	var wrapped envelope
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil {
		var inner []T
		if err := json.Unmarshal(wrapped.Data, &inner); err == nil && inner != nil {
			return inner
		}
	}

	// Unrecognized but parseable shapes are empty, never an error
	return []T{}
}

// unwrapItem normalizes a single-item payload: a bare object or an
// object wrapped under "data". Unrecognized shapes report absent.
func unwrapItem[T any](body []byte) (*T, bool) {
	var wrapped envelope
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil {
		var inner T
		if err := json.Unmarshal(wrapped.Data, &inner); err == nil {
			return &inner, true
		}
		return nil, false
	}

	var bare T
	if err := json.Unmarshal(body, &bare); err == nil {
		return &bare, true
	}

	return nil, false
}

// listResource fetches and normalizes a collection. Transport failures
// and unrecognized shapes degrade to an empty slice; authentication
// failures propagate.
func listResource[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	body, err := c.readJSON(ctx, path)
	if err != nil {
		if isAuthError(err) {
			return nil, err
		}
		c.logger.Debug("read degraded to empty list", "path", path, "error", err.Error())
		return []T{}, nil
	}

	return unwrapList[T](body), nil
}

// getResource fetches and normalizes a single item. Transport failures,
// 404s, and unrecognized shapes degrade to ErrNotFound; authentication
// failures propagate.
func getResource[T any](ctx context.Context, c *Client, path string) (*T, error) {
	body, err := c.readJSON(ctx, path)
	if err != nil {
		if isAuthError(err) {
			return nil, err
		}
		if !isNotFound(err) {
			c.logger.Debug("read degraded to absent", "path", path, "error", err.Error())
		}
		return nil, ErrNotFound
	}

	item, ok := unwrapItem[T](body)
	if !ok {
		return nil, ErrNotFound
	}
	return item, nil
}

// createResource POSTs a payload; failures propagate to the caller.
func createResource[T any](ctx context.Context, c *Client, path string, payload any) (*T, error) {
	return writeResource[T](ctx, c, http.MethodPost, path, payload)
}

// updateResource PUTs a payload; failures propagate to the caller.
func updateResource[T any](ctx context.Context, c *Client, path string, payload any) (*T, error) {
	return writeResource[T](ctx, c, http.MethodPut, path, payload)
}

func writeResource[T any](ctx context.Context, c *Client, method, path string, payload any) (*T, error) {
	resp, err := c.doRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	item, ok := unwrapItem[T](body)
	if !ok {
		return nil, errors.New(errors.ErrCodeAPIResponse, "unexpected response shape for "+path)
	}
	return item, nil
}

// deleteResource DELETEs a path; failures propagate to the caller.
func (c *Client) deleteResource(ctx context.Context, path string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	_, err = readBody(resp)
	return err
}

// readJSON performs a GET and returns the raw body.
func (c *Client) readJSON(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return readBody(resp)
}
