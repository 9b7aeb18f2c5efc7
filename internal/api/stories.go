package api

import (
	"context"
	"fmt"
	"time"
)

// UserStory represents a backlog item. Stories belong to a product
// backlog, which belongs to a project; tasks hang off stories.
type UserStory struct {
	ID          string    `json:"id"`
	BacklogID   string    `json:"backlog_id"`
	SprintID    string    `json:"sprint_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	StoryPoints int       `json:"story_points"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateStoryRequest represents a request to create or update a story
type CreateStoryRequest struct {
	BacklogID   string `json:"backlog_id"`
	SprintID    string `json:"sprint_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	StoryPoints int    `json:"story_points,omitempty"`
}

// ListStories retrieves every user story visible to the caller.
func (c *Client) ListStories(ctx context.Context) ([]UserStory, error) {
	return listResource[UserStory](ctx, c, "/api/v1/stories")
}

// ListStoriesByBacklog retrieves the stories of one product backlog.
func (c *Client) ListStoriesByBacklog(ctx context.Context, backlogID string) ([]UserStory, error) {
	return listResource[UserStory](ctx, c, fmt.Sprintf("/api/v1/backlogs/%s/stories", backlogID))
}

// GetStory retrieves a user story by ID.
func (c *Client) GetStory(ctx context.Context, storyID string) (*UserStory, error) {
	return getResource[UserStory](ctx, c, fmt.Sprintf("/api/v1/stories/%s", storyID))
}

// CreateStory creates a new user story.
func (c *Client) CreateStory(ctx context.Context, req CreateStoryRequest) (*UserStory, error) {
	return createResource[UserStory](ctx, c, "/api/v1/stories", req)
}

// UpdateStory updates an existing user story.
func (c *Client) UpdateStory(ctx context.Context, storyID string, req CreateStoryRequest) (*UserStory, error) {
	return updateResource[UserStory](ctx, c, fmt.Sprintf("/api/v1/stories/%s", storyID), req)
}

// DeleteStory deletes a user story.
func (c *Client) DeleteStory(ctx context.Context, storyID string) error {
	return c.deleteResource(ctx, fmt.Sprintf("/api/v1/stories/%s", storyID))
}
