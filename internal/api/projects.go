package api

import (
	"context"
	"fmt"
	"time"
)

// Entity kinds used as cache key prefixes. A mutation on a kind
// invalidates every scoped cache entry of that kind.
const (
	KindProjects      = "projects"
	KindSprints       = "sprints"
	KindStories       = "stories"
	KindTasks         = "tasks"
	KindMeetings      = "meetings"
	KindMessages      = "messages"
	KindNotifications = "notifications"
	KindUsers         = "users"
	KindStats         = "stats"
)

// Project represents a platform project
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProjectRequest represents a request to create or update a project
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
}

// ListProjects retrieves every project visible to the caller.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	return listResource[Project](ctx, c, "/api/v1/projects")
}

// ListMyProjects retrieves projects the authenticated user belongs to.
func (c *Client) ListMyProjects(ctx context.Context) ([]Project, error) {
	return listResource[Project](ctx, c, "/api/v1/my-projects")
}

// GetProject retrieves a project by ID.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	return getResource[Project](ctx, c, fmt.Sprintf("/api/v1/projects/%s", projectID))
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, name, description string) (*Project, error) {
	req := CreateProjectRequest{
		Name:        name,
		Description: description,
	}
	return createResource[Project](ctx, c, "/api/v1/projects", req)
}

// UpdateProject updates an existing project.
func (c *Client) UpdateProject(ctx context.Context, projectID string, req CreateProjectRequest) (*Project, error) {
	return updateResource[Project](ctx, c, fmt.Sprintf("/api/v1/projects/%s", projectID), req)
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.deleteResource(ctx, fmt.Sprintf("/api/v1/projects/%s", projectID))
}
