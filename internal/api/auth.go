package api

import (
	"context"
	"net/http"
	"time"

	"github.com/felixgeelhaar/sprintdeck/internal/errors"
	"github.com/felixgeelhaar/sprintdeck/internal/session"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        session.User `json:"user"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with the platform and returns a session.
// Authentication is a write-style operation: failures propagate.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", req)
	if err != nil {
		return nil, err
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	loginResp, ok := unwrapItem[LoginResponse](body)
	if !ok || loginResp.AccessToken == "" {
		return nil, errors.New(errors.ErrCodeAPIResponse, "login response missing token")
	}

	// Attach the token for all future requests
	c.SetToken(loginResp.AccessToken)

	return &session.Session{
		Token:     loginResp.AccessToken,
		User:      loginResp.User,
		CreatedAt: time.Now(),
		ExpiresAt: loginResp.ExpiresAt,
	}, nil
}

// Register creates a new account and automatically logs in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*session.Session, error) {
	req := RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", req)
	if err != nil {
		return nil, err
	}

	if _, err := readBody(resp); err != nil {
		return nil, err
	}

	sess, err := c.Login(ctx, email, password)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIRequest, "registration succeeded but login failed", err)
	}

	return sess, nil
}

// GetCurrentUser retrieves the currently authenticated user.
func (c *Client) GetCurrentUser(ctx context.Context) (*session.User, error) {
	return getResource[session.User](ctx, c, "/api/v1/users/me")
}
