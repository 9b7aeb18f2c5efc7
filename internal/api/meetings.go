package api

import (
	"context"
	"fmt"
	"time"
)

// Meeting represents a scheduled project meeting
type Meeting struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	ScheduledAt time.Time `json:"scheduled_at"`
	DurationMin int       `json:"duration_min"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Meeting type values
const (
	MeetingTypeStandup       = "standup"
	MeetingTypePlanning      = "planning"
	MeetingTypeReview        = "review"
	MeetingTypeRetrospective = "retrospective"
)

// CreateMeetingRequest represents a request to schedule a meeting
type CreateMeetingRequest struct {
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Type        string    `json:"type,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
	DurationMin int       `json:"duration_min,omitempty"`
	Location    string    `json:"location,omitempty"`
}

// ListMeetings retrieves every meeting visible to the caller.
func (c *Client) ListMeetings(ctx context.Context) ([]Meeting, error) {
	return listResource[Meeting](ctx, c, "/api/v1/meetings")
}

// ListMyMeetings retrieves meetings the authenticated user attends.
func (c *Client) ListMyMeetings(ctx context.Context) ([]Meeting, error) {
	return listResource[Meeting](ctx, c, "/api/v1/my-meetings")
}

// GetMeeting retrieves a meeting by ID.
func (c *Client) GetMeeting(ctx context.Context, meetingID string) (*Meeting, error) {
	return getResource[Meeting](ctx, c, fmt.Sprintf("/api/v1/meetings/%s", meetingID))
}

// CreateMeeting schedules a new meeting.
func (c *Client) CreateMeeting(ctx context.Context, req CreateMeetingRequest) (*Meeting, error) {
	return createResource[Meeting](ctx, c, "/api/v1/meetings", req)
}

// DeleteMeeting cancels a meeting.
func (c *Client) DeleteMeeting(ctx context.Context, meetingID string) error {
	return c.deleteResource(ctx, fmt.Sprintf("/api/v1/meetings/%s", meetingID))
}
