package api

import (
	"context"
)

// DashboardStats represents the aggregate counters shown on the
// admin dashboard.
type DashboardStats struct {
	Projects      int `json:"projects"`
	Users         int `json:"users"`
	ActiveSprints int `json:"active_sprints"`
	OpenTasks     int `json:"open_tasks"`
	Meetings      int `json:"meetings"`
}

// GetDashboardStats retrieves the dashboard aggregates. Like any other
// single-item read it degrades to absent on transport failure.
func (c *Client) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	return getResource[DashboardStats](ctx, c, "/api/v1/dashboard/stats")
}
