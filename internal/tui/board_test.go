package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/sprintdeck/internal/api"
)

func boardTasks() []api.Task {
	return []api.Task{
		{ID: "t1", Title: "Write login form", Status: api.TaskStatusTodo},
		{ID: "t2", Title: "Wire session store", Status: api.TaskStatusTodo},
		{ID: "t3", Title: "Review cache keys", Status: api.TaskStatusReview},
		{ID: "t4", Title: "Ship dashboard", Status: api.TaskStatusDone},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// TestNewBoardModel tests column partitioning
func TestNewBoardModel(t *testing.T) {
	model := NewBoardModel("Sprint 1", boardTasks())

	if len(model.columns) != 4 {
		t.Fatalf("Expected 4 columns, got %d", len(model.columns))
	}

	if len(model.columns[0].tasks) != 2 {
		t.Errorf("Expected 2 todo tasks, got %d", len(model.columns[0].tasks))
	}

	if len(model.columns[1].tasks) != 0 {
		t.Errorf("Expected empty inProgress column, got %d tasks", len(model.columns[1].tasks))
	}

	if model.columns[3].tasks[0].ID != "t4" {
		t.Errorf("Expected t4 in done column, got %s", model.columns[3].tasks[0].ID)
	}
}

// TestBoardNavigation tests cursor movement across columns and rows
func TestBoardNavigation(t *testing.T) {
	model := NewBoardModel("Sprint 1", boardTasks())

	updated, _ := model.Update(keyMsg("down"))
	m := updated.(BoardModel)
	if m.activeRow != 1 {
		t.Errorf("Expected row 1 after down, got %d", m.activeRow)
	}

	updated, _ = m.Update(keyMsg("right"))
	m = updated.(BoardModel)
	if m.activeColumn != 1 {
		t.Errorf("Expected column 1 after right, got %d", m.activeColumn)
	}
	if m.activeRow != 0 {
		t.Errorf("Expected row clamped to 0 in empty column, got %d", m.activeRow)
	}

	updated, _ = m.Update(keyMsg("left"))
	m = updated.(BoardModel)
	if m.activeColumn != 0 {
		t.Errorf("Expected column 0 after left, got %d", m.activeColumn)
	}
}

// TestBoardSelection tests selecting a task with enter
func TestBoardSelection(t *testing.T) {
	model := NewBoardModel("Sprint 1", boardTasks())

	updated, _ := model.Update(keyMsg("down"))
	updated, cmd := updated.(BoardModel).Update(keyMsg("enter"))
	m := updated.(BoardModel)

	if m.Selected() == nil {
		t.Fatal("Expected a selected task")
	}
	if m.Selected().ID != "t2" {
		t.Errorf("Expected t2 selected, got %s", m.Selected().ID)
	}
	if cmd == nil {
		t.Error("Expected quit command after selection")
	}
}

// TestBoardQuit tests quitting without a selection
func TestBoardQuit(t *testing.T) {
	model := NewBoardModel("Sprint 1", boardTasks())

	updated, cmd := model.Update(keyMsg("q"))
	m := updated.(BoardModel)

	if !m.quitting {
		t.Error("Expected quitting after q")
	}
	if m.Selected() != nil {
		t.Error("Expected no selection on plain quit")
	}
	if cmd == nil {
		t.Error("Expected quit command")
	}
}

// TestBoardView tests rendering of columns and counts
func TestBoardView(t *testing.T) {
	model := NewBoardModel("Sprint 1", boardTasks())

	view := model.View()

	if !strings.Contains(view, "Sprint 1") {
		t.Error("Expected title in view")
	}
	for _, want := range []string{"todo (2)", "inProgress (0)", "review (1)", "done (1)"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in view", want)
		}
	}
}
