package api

import (
	"context"
	"fmt"
	"time"
)

// Notification represents an in-app notification for the current user
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ListMyNotifications retrieves the authenticated user's notifications.
func (c *Client) ListMyNotifications(ctx context.Context) ([]Notification, error) {
	return listResource[Notification](ctx, c, "/api/v1/my-notifications")
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) (*Notification, error) {
	return updateResource[Notification](ctx, c, fmt.Sprintf("/api/v1/notifications/%s/read", notificationID), nil)
}

// DeleteNotification dismisses a notification.
func (c *Client) DeleteNotification(ctx context.Context, notificationID string) error {
	return c.deleteResource(ctx, fmt.Sprintf("/api/v1/notifications/%s", notificationID))
}

// CountUnread folds a notification list into the unread total.
func CountUnread(notifications []Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count
}
