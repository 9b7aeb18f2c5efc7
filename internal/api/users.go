package api

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/sprintdeck/internal/session"
)

// UserAccount represents an entry in the platform user roster,
// as listed by admin views.
type UserAccount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionUser converts a roster entry into the session user shape.
func (u UserAccount) SessionUser() session.User {
	return session.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// ListUsers retrieves the full user roster. The backend restricts this
// endpoint to admins; for everyone else it degrades to an empty list
// only on transport failure, while a 403 propagates.
func (c *Client) ListUsers(ctx context.Context) ([]UserAccount, error) {
	return listResource[UserAccount](ctx, c, "/api/v1/users")
}

// GetUser retrieves one user by ID.
func (c *Client) GetUser(ctx context.Context, userID string) (*UserAccount, error) {
	return getResource[UserAccount](ctx, c, fmt.Sprintf("/api/v1/users/%s", userID))
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.deleteResource(ctx, fmt.Sprintf("/api/v1/users/%s", userID))
}
