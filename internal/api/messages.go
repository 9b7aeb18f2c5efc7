package api

import (
	"context"
	"fmt"
	"time"
)

// Message represents a chat message in a project channel
type Message struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// SendMessageRequest represents a request to post a chat message
type SendMessageRequest struct {
	Content string `json:"content"`
}

// ListMessages retrieves the chat messages of a project channel.
func (c *Client) ListMessages(ctx context.Context, projectID string) ([]Message, error) {
	return listResource[Message](ctx, c, fmt.Sprintf("/api/v1/projects/%s/messages", projectID))
}

// SendMessage posts a chat message to a project channel.
func (c *Client) SendMessage(ctx context.Context, projectID, content string) (*Message, error) {
	req := SendMessageRequest{Content: content}
	return createResource[Message](ctx, c, fmt.Sprintf("/api/v1/projects/%s/messages", projectID), req)
}
