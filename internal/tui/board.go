package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/sprintdeck/internal/api"
)

// BoardModel represents the kanban board TUI state. Tasks are
// partitioned into one column per status, in board order.
type BoardModel struct {
	title   string
	columns []boardColumn

	// Cursor position
	activeColumn int
	activeRow    int

	// UI state
	width    int
	height   int
	ready    bool
	quitting bool
	showHelp bool

	// Selection handed back to the caller after quit
	selected *api.Task

	styles Styles
}

type boardColumn struct {
	status string
	tasks  []api.Task
}

// boardKeyMap defines the keyboard shortcuts
type boardKeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var boardKeys = boardKeyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous column"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next column"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous task"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next task"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select task"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// NewBoardModel creates a board from a task list. Column order and
// presence are fixed; a status with no tasks still gets its column.
func NewBoardModel(title string, tasks []api.Task) BoardModel {
	columns := make([]boardColumn, 0, len(api.TaskStatuses()))
	for _, status := range api.TaskStatuses() {
		col := boardColumn{status: status}
		for _, task := range tasks {
			if task.Status == status {
				col.tasks = append(col.tasks, task)
			}
		}
		columns = append(columns, col)
	}

	return BoardModel{
		title:   title,
		columns: columns,
		styles:  DefaultStyles(),
	}
}

// Selected returns the task chosen with enter, if any.
func (m BoardModel) Selected() *api.Task {
	return m.selected
}

// Init initializes the board model (required by Bubble Tea)
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil
	}

	return m, nil
}

func (m BoardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, boardKeys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, boardKeys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, boardKeys.Left):
		if m.activeColumn > 0 {
			m.activeColumn--
			m.clampRow()
		}

	case key.Matches(msg, boardKeys.Right):
		if m.activeColumn < len(m.columns)-1 {
			m.activeColumn++
			m.clampRow()
		}

	case key.Matches(msg, boardKeys.Up):
		if m.activeRow > 0 {
			m.activeRow--
		}

	case key.Matches(msg, boardKeys.Down):
		if m.activeRow < len(m.columns[m.activeColumn].tasks)-1 {
			m.activeRow++
		}

	case key.Matches(msg, boardKeys.Select):
		col := m.columns[m.activeColumn]
		if m.activeRow < len(col.tasks) {
			task := col.tasks[m.activeRow]
			m.selected = &task
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *BoardModel) clampRow() {
	max := len(m.columns[m.activeColumn].tasks) - 1
	if max < 0 {
		max = 0
	}
	if m.activeRow > max {
		m.activeRow = max
	}
}

// View renders the board (required by Bubble Tea)
func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n\n")

	rendered := make([]string, 0, len(m.columns))
	for i, col := range m.columns {
		rendered = append(rendered, m.renderColumn(i, col))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.styles.Muted.Render("? help • q quit"))
	}

	return b.String()
}

func (m BoardModel) renderColumn(index int, col boardColumn) string {
	var b strings.Builder

	header := fmt.Sprintf("%s (%d)", col.status, len(col.tasks))
	if index == m.activeColumn {
		b.WriteString(m.styles.Header.Render(header))
	} else {
		b.WriteString(m.styles.Muted.Render(header))
	}
	b.WriteString("\n")

	if len(col.tasks) == 0 {
		b.WriteString(m.styles.Muted.Render("  -"))
		b.WriteString("\n")
	}

	for row, task := range col.tasks {
		line := truncateTitle(task.Title, 20)
		if index == m.activeColumn && row == m.activeRow {
			line = m.styles.Header.Bold(true).Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return m.styles.Border.Render(b.String())
}

func (m BoardModel) renderHelp() string {
	bindings := []key.Binding{
		boardKeys.Left, boardKeys.Right, boardKeys.Up, boardKeys.Down,
		boardKeys.Select, boardKeys.Quit,
	}

	items := make([]string, 0, len(bindings))
	for _, b := range bindings {
		items = append(items, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return m.styles.Muted.Render(strings.Join(items, " • "))
}

func truncateTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
