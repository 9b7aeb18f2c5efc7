package cmd

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintdeck/internal/api"
	"github.com/felixgeelhaar/sprintdeck/internal/cache"
	"github.com/felixgeelhaar/sprintdeck/internal/tui"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

// taskListCmd lists tasks, served from the warmed cache for --mine
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks.

Examples:
  sprintdeck task list --mine
  sprintdeck task list --story s1
  sprintdeck task list --mine --summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}
		cfg, err := getConfig()
		if err != nil {
			return err
		}

		mine, _ := cmd.Flags().GetBool("mine")
		storyID, _ := cmd.Flags().GetString("story")

		var tasks []api.Task
		switch {
		case storyID != "":
			tasks, err = client.ListTasksByStory(cmd.Context(), storyID)
		case mine:
			tasks, err = cachedList(cmd, cache.Key(api.KindTasks, "mine"), cfg.Freshness.Tasks,
				func(ctx context.Context) ([]api.Task, error) { return client.ListMyTasks(ctx) })
		default:
			tasks, err = client.ListTasks(cmd.Context())
		}
		if err != nil {
			return err
		}

		if summary, _ := cmd.Flags().GetBool("summary"); summary {
			fmt.Fprintln(cmd.OutOrStdout(), newRenderer(cmd).TaskSummary(tasks))
			return nil
		}

		if textOutput(cmd) {
			fmt.Fprintln(cmd.OutOrStdout(), newRenderer(cmd).TaskTable(tasks))
			return nil
		}

		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(tasks)
	},
}

// taskCreateCmd creates a task under a story
var taskCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		storyID, _ := cmd.Flags().GetString("story")
		if storyID == "" {
			return fmt.Errorf("--story is required")
		}
		description, _ := cmd.Flags().GetString("description")
		assignee, _ := cmd.Flags().GetString("assignee")

		task, err := client.CreateTask(cmd.Context(), api.CreateTaskRequest{
			StoryID:     storyID,
			Title:       args[0],
			Description: description,
			AssigneeID:  assignee,
		})
		if err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindTasks)

		fmt.Fprintf(cmd.OutOrStdout(), "Created task %s (%s)\n", task.Title, task.ID)
		return nil
	},
}

// taskMoveCmd moves a task to another board column
var taskMoveCmd = &cobra.Command{
	Use:   "move <task-id> <status>",
	Short: "Move a task to another status",
	Long: `Move a task to another kanban column.

Valid statuses: ` + strings.Join(api.TaskStatuses(), ", "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		status := args[1]
		valid := false
		for _, s := range api.TaskStatuses() {
			if s == status {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown status %q (valid: %s)", status, strings.Join(api.TaskStatuses(), ", "))
		}

		task, err := client.GetTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		updated, err := client.UpdateTask(cmd.Context(), args[0], api.CreateTaskRequest{
			StoryID:     task.StoryID,
			Title:       task.Title,
			Description: task.Description,
			Status:      status,
			AssigneeID:  task.AssigneeID,
		})
		if err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindTasks)
		getCacheStore().InvalidateKind(api.KindStats)

		fmt.Fprintf(cmd.OutOrStdout(), "Task %s moved to %s\n", updated.ID, updated.Status)
		return nil
	},
}

// taskDeleteCmd deletes a task
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		if err := client.DeleteTask(cmd.Context(), args[0]); err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindTasks)

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
		return nil
	},
}

// boardCmd opens the interactive kanban board
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive kanban board",
	Long: `Open an interactive kanban board of your tasks.

Navigate with arrow keys or hjkl, press enter to inspect a task,
q to quit.

Examples:
  sprintdeck board
  sprintdeck board --story s1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		storyID, _ := cmd.Flags().GetString("story")

		var tasks []api.Task
		title := "My Tasks"
		if storyID != "" {
			tasks, err = client.ListTasksByStory(cmd.Context(), storyID)
			title = "Story " + storyID
		} else {
			tasks, err = client.ListMyTasks(cmd.Context())
		}
		if err != nil {
			return err
		}

		if !tui.IsInteractive() {
			fmt.Fprintln(cmd.OutOrStdout(), newRenderer(cmd).TaskTable(tasks))
			return nil
		}

		model := tui.NewBoardModel(title, tasks)
		program := tea.NewProgram(model)
		final, err := program.Run()
		if err != nil {
			return fmt.Errorf("board failed: %w", err)
		}

		if board, ok := final.(tui.BoardModel); ok {
			if selected := board.Selected(); selected != nil {
				formatter, err := newFormatter(cmd)
				if err != nil {
					return err
				}
				return formatter.Format(selected)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(boardCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskDeleteCmd)

	taskListCmd.Flags().Bool("mine", false, "Only tasks assigned to you")
	taskListCmd.Flags().String("story", "", "Limit to one story")
	taskListCmd.Flags().Bool("summary", false, "Per-status counts only")
	taskCreateCmd.Flags().String("story", "", "Story the task belongs to (required)")
	taskCreateCmd.Flags().String("description", "", "Task description")
	taskCreateCmd.Flags().String("assignee", "", "Assignee user ID")
	boardCmd.Flags().String("story", "", "Board for one story's tasks")
}
