package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintdeck/internal/access"
	"github.com/felixgeelhaar/sprintdeck/internal/api"
)

var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Manage sprints",
}

// sprintListCmd lists sprints for a project
var sprintListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sprints",
	Long: `List sprints, optionally for one project.

Examples:
  sprintdeck sprint list
  sprintdeck sprint list --project p1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		projectID, _ := cmd.Flags().GetString("project")

		var sprints []api.Sprint
		if projectID != "" {
			sprints, err = client.ListSprintsByProject(cmd.Context(), projectID)
		} else {
			sprints, err = client.ListSprints(cmd.Context())
		}
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(sprints)
	},
}

// sprintCreateCmd creates a sprint in the planned state
var sprintCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		if !access.CanManageSprint(currentRole(sess)) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Note: your role does not normally manage sprints; the server has the final say.")
		}

		projectID, _ := cmd.Flags().GetString("project")
		if projectID == "" {
			return fmt.Errorf("--project is required")
		}
		goal, _ := cmd.Flags().GetString("goal")
		days, _ := cmd.Flags().GetInt("days")

		req := api.CreateSprintRequest{
			ProjectID: projectID,
			Name:      args[0],
			Goal:      goal,
		}
		if days > 0 {
			req.StartDate = time.Now()
			req.EndDate = time.Now().AddDate(0, 0, days)
		}

		sprint, err := client.CreateSprint(cmd.Context(), req)
		if err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindSprints)

		fmt.Fprintf(cmd.OutOrStdout(), "Created sprint %s (%s)\n", sprint.Name, sprint.ID)
		return nil
	},
}

// sprintStartCmd moves a sprint to active
var sprintStartCmd = &cobra.Command{
	Use:   "start <sprint-id>",
	Short: "Start a sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		sprint, err := client.StartSprint(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindSprints)
		getCacheStore().InvalidateKind(api.KindStats)

		fmt.Fprintf(cmd.OutOrStdout(), "Sprint %s is now %s\n", sprint.ID, sprint.Status)
		return nil
	},
}

// sprintCloseCmd closes a sprint
var sprintCloseCmd = &cobra.Command{
	Use:   "close <sprint-id>",
	Short: "Close a sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		sprint, err := client.CloseSprint(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindSprints)
		getCacheStore().InvalidateKind(api.KindStats)

		fmt.Fprintf(cmd.OutOrStdout(), "Sprint %s is now %s\n", sprint.ID, sprint.Status)
		return nil
	},
}

// sprintDeleteCmd deletes a sprint
var sprintDeleteCmd = &cobra.Command{
	Use:   "delete <sprint-id>",
	Short: "Delete a sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		if err := client.DeleteSprint(cmd.Context(), args[0]); err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindSprints)

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted sprint %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sprintCmd)
	sprintCmd.AddCommand(sprintListCmd)
	sprintCmd.AddCommand(sprintCreateCmd)
	sprintCmd.AddCommand(sprintStartCmd)
	sprintCmd.AddCommand(sprintCloseCmd)
	sprintCmd.AddCommand(sprintDeleteCmd)

	sprintListCmd.Flags().String("project", "", "Limit to one project")
	sprintCreateCmd.Flags().String("project", "", "Project the sprint belongs to (required)")
	sprintCreateCmd.Flags().String("goal", "", "Sprint goal")
	sprintCreateCmd.Flags().Int("days", 14, "Sprint length in days")
}
