package ux

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/sprintdeck/internal/access"
	"github.com/felixgeelhaar/sprintdeck/internal/api"
)

// Styles contains lipgloss styles for terminal rendering
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Status  lipgloss.Style
	Border  lipgloss.Style
	Badge   lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")), // Yellow
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")), // Cyan
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")). // Purple
			Padding(0, 1),
		Badge: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1),
	}
}

// Renderer produces human-readable views of platform resources.
type Renderer struct {
	styles  Styles
	noColor bool
}

// NewRenderer creates a renderer. With noColor set, all output is
// plain text for pipes and dumb terminals.
func NewRenderer(noColor bool) *Renderer {
	return &Renderer{styles: DefaultStyles(), noColor: noColor}
}

func (r *Renderer) render(style lipgloss.Style, text string) string {
	if r.noColor {
		return text
	}
	return style.Render(text)
}

// StatusBadge renders a task status with its column color.
func (r *Renderer) StatusBadge(status string) string {
	var style lipgloss.Style
	switch status {
	case api.TaskStatusTodo:
		style = r.styles.Muted
	case api.TaskStatusInProgress:
		style = r.styles.Status
	case api.TaskStatusReview:
		style = r.styles.Warning
	case api.TaskStatusDone:
		style = r.styles.Success
	default:
		style = r.styles.Muted
	}
	return r.render(style, status)
}

// ProjectTable renders projects as an aligned table.
func (r *Renderer) ProjectTable(projects []api.Project) string {
	if len(projects) == 0 {
		return r.render(r.styles.Muted, "No projects")
	}

	var b strings.Builder
	b.WriteString(r.render(r.styles.Header, fmt.Sprintf("%-24s %-30s %s", "ID", "NAME", "CREATED")))
	b.WriteString("\n")
	for _, p := range projects {
		b.WriteString(fmt.Sprintf("%-24s %-30s %s\n", p.ID, p.Name, relativeTime(p.CreatedAt)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// TaskTable renders tasks as an aligned table with status badges.
func (r *Renderer) TaskTable(tasks []api.Task) string {
	if len(tasks) == 0 {
		return r.render(r.styles.Muted, "No tasks")
	}

	var b strings.Builder
	b.WriteString(r.render(r.styles.Header, fmt.Sprintf("%-24s %-36s %s", "ID", "TITLE", "STATUS")))
	b.WriteString("\n")
	for _, t := range tasks {
		b.WriteString(fmt.Sprintf("%-24s %-36s %s\n", t.ID, truncate(t.Title, 36), r.StatusBadge(t.Status)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// TaskSummary renders per-status counts on one line, every column
// present even at zero.
func (r *Renderer) TaskSummary(tasks []api.Task) string {
	counts := api.CountTasksByStatus(tasks)
	parts := make([]string, 0, len(api.TaskStatuses()))
	for _, status := range api.TaskStatuses() {
		parts = append(parts, fmt.Sprintf("%s %d", r.StatusBadge(status), counts[status]))
	}
	return strings.Join(parts, "  ")
}

// NotificationList renders notifications with unread markers.
func (r *Renderer) NotificationList(notifications []api.Notification) string {
	if len(notifications) == 0 {
		return r.render(r.styles.Muted, "No notifications")
	}

	var b strings.Builder
	for _, n := range notifications {
		marker := r.render(r.styles.Success, "●")
		if n.Read {
			marker = r.render(r.styles.Muted, "○")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", marker, n.Title, r.render(r.styles.Muted, relativeTime(n.CreatedAt))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Navigation renders the entries a role may see.
func (r *Renderer) Navigation(profile access.Profile) string {
	var b strings.Builder
	b.WriteString(r.render(r.styles.Title, fmt.Sprintf("Navigation (%s)", profile.Role)))
	b.WriteString("\n")
	for _, entry := range profile.Navigation {
		b.WriteString(fmt.Sprintf("  %-16s %s\n", entry.Label, r.render(r.styles.Muted, entry.Path)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// StatsPanel renders the dashboard aggregates in a bordered box.
func (r *Renderer) StatsPanel(stats api.DashboardStats) string {
	lines := []string{
		fmt.Sprintf("Projects:       %d", stats.Projects),
		fmt.Sprintf("Users:          %d", stats.Users),
		fmt.Sprintf("Active sprints: %d", stats.ActiveSprints),
		fmt.Sprintf("Open tasks:     %d", stats.OpenTasks),
		fmt.Sprintf("Meetings:       %d", stats.Meetings),
	}
	body := strings.Join(lines, "\n")
	if r.noColor {
		return body
	}
	return r.styles.Border.Render(body)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// relativeTime formats a timestamp relative to now for list views.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
