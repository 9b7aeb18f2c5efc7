package api

import (
	"context"
	"fmt"
	"time"
)

// Task represents a unit of work belonging to a user story
type Task struct {
	ID          string    `json:"id"`
	StoryID     string    `json:"story_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	AssigneeID  string    `json:"assignee_id,omitempty"`
	DueDate     time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Task status values partitioning the kanban board
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "inProgress"
	TaskStatusReview     = "review"
	TaskStatusDone       = "done"
)

// TaskStatuses lists the board columns in display order.
func TaskStatuses() []string {
	return []string{TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone}
}

// CreateTaskRequest represents a request to create or update a task
type CreateTaskRequest struct {
	StoryID     string `json:"story_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	AssigneeID  string `json:"assignee_id,omitempty"`
}

// ListTasks retrieves every task visible to the caller.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	return listResource[Task](ctx, c, "/api/v1/tasks")
}

// ListMyTasks retrieves tasks assigned to the authenticated user.
func (c *Client) ListMyTasks(ctx context.Context) ([]Task, error) {
	return listResource[Task](ctx, c, "/api/v1/my-tasks")
}

// ListTasksByStory retrieves the tasks of one user story.
func (c *Client) ListTasksByStory(ctx context.Context, storyID string) ([]Task, error) {
	return listResource[Task](ctx, c, fmt.Sprintf("/api/v1/stories/%s/tasks", storyID))
}

// GetTask retrieves a task by ID.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	return getResource[Task](ctx, c, fmt.Sprintf("/api/v1/tasks/%s", taskID))
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	return createResource[Task](ctx, c, "/api/v1/tasks", req)
}

// UpdateTask updates an existing task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req CreateTaskRequest) (*Task, error) {
	return updateResource[Task](ctx, c, fmt.Sprintf("/api/v1/tasks/%s", taskID), req)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.deleteResource(ctx, fmt.Sprintf("/api/v1/tasks/%s", taskID))
}

// CountTasksByStatus folds a task list into per-status counts.
// The backend exposes no such aggregate; the partition matches what it
// would compute for the same data. Every known status appears in the
// result, zero or not, so views can render fixed columns.
func CountTasksByStatus(tasks []Task) map[string]int {
	counts := make(map[string]int, len(TaskStatuses()))
	for _, status := range TaskStatuses() {
		counts[status] = 0
	}
	for _, task := range tasks {
		counts[task.Status]++
	}
	return counts
}
