package api

import (
	"context"
	"fmt"
	"time"
)

// Sprint represents a time-boxed iteration within a project
type Sprint struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Goal      string    `json:"goal"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sprint status values
const (
	SprintStatusPlanned = "planned"
	SprintStatusActive  = "active"
	SprintStatusClosed  = "closed"
)

// CreateSprintRequest represents a request to create or update a sprint
type CreateSprintRequest struct {
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Goal      string    `json:"goal,omitempty"`
	StartDate time.Time `json:"start_date,omitempty"`
	EndDate   time.Time `json:"end_date,omitempty"`
}

// ListSprints retrieves every sprint visible to the caller.
func (c *Client) ListSprints(ctx context.Context) ([]Sprint, error) {
	return listResource[Sprint](ctx, c, "/api/v1/sprints")
}

// ListSprintsByProject retrieves the sprints of one project.
func (c *Client) ListSprintsByProject(ctx context.Context, projectID string) ([]Sprint, error) {
	return listResource[Sprint](ctx, c, fmt.Sprintf("/api/v1/projects/%s/sprints", projectID))
}

// GetSprint retrieves a sprint by ID.
func (c *Client) GetSprint(ctx context.Context, sprintID string) (*Sprint, error) {
	return getResource[Sprint](ctx, c, fmt.Sprintf("/api/v1/sprints/%s", sprintID))
}

// CreateSprint creates a new sprint.
func (c *Client) CreateSprint(ctx context.Context, req CreateSprintRequest) (*Sprint, error) {
	return createResource[Sprint](ctx, c, "/api/v1/sprints", req)
}

// UpdateSprint updates an existing sprint.
func (c *Client) UpdateSprint(ctx context.Context, sprintID string, req CreateSprintRequest) (*Sprint, error) {
	return updateResource[Sprint](ctx, c, fmt.Sprintf("/api/v1/sprints/%s", sprintID), req)
}

// StartSprint transitions a sprint to active.
func (c *Client) StartSprint(ctx context.Context, sprintID string) (*Sprint, error) {
	return createResource[Sprint](ctx, c, fmt.Sprintf("/api/v1/sprints/%s/start", sprintID), nil)
}

// CloseSprint transitions a sprint to closed.
func (c *Client) CloseSprint(ctx context.Context, sprintID string) (*Sprint, error) {
	return createResource[Sprint](ctx, c, fmt.Sprintf("/api/v1/sprints/%s/close", sprintID), nil)
}

// DeleteSprint deletes a sprint.
func (c *Client) DeleteSprint(ctx context.Context, sprintID string) error {
	return c.deleteResource(ctx, fmt.Sprintf("/api/v1/sprints/%s", sprintID))
}
