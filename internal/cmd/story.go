package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintdeck/internal/access"
	"github.com/felixgeelhaar/sprintdeck/internal/api"
)

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Manage user stories",
}

// storyListCmd lists stories, optionally for one backlog
var storyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user stories",
	Long: `List user stories, optionally for one backlog.

Examples:
  sprintdeck story list
  sprintdeck story list --backlog b1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		backlogID, _ := cmd.Flags().GetString("backlog")

		var stories []api.UserStory
		if backlogID != "" {
			stories, err = client.ListStoriesByBacklog(cmd.Context(), backlogID)
		} else {
			stories, err = client.ListStories(cmd.Context())
		}
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(stories)
	},
}

// storyCreateCmd adds a story to a backlog
var storyCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a user story",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		if !access.CanManageBacklog(currentRole(sess)) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Note: your role does not normally groom the backlog; the server has the final say.")
		}

		backlogID, _ := cmd.Flags().GetString("backlog")
		if backlogID == "" {
			return fmt.Errorf("--backlog is required")
		}
		description, _ := cmd.Flags().GetString("description")
		priority, _ := cmd.Flags().GetString("priority")
		points, _ := cmd.Flags().GetInt("points")

		story, err := client.CreateStory(cmd.Context(), api.CreateStoryRequest{
			BacklogID:   backlogID,
			Title:       args[0],
			Description: description,
			Priority:    priority,
			StoryPoints: points,
		})
		if err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindStories)

		fmt.Fprintf(cmd.OutOrStdout(), "Created story %s (%s)\n", story.Title, story.ID)
		return nil
	},
}

// storyAssignCmd moves a story into a sprint
var storyAssignCmd = &cobra.Command{
	Use:   "assign <story-id>",
	Short: "Assign a story to a sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		sprintID, _ := cmd.Flags().GetString("sprint")
		if sprintID == "" {
			return fmt.Errorf("--sprint is required")
		}

		story, err := client.GetStory(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		updated, err := client.UpdateStory(cmd.Context(), args[0], api.CreateStoryRequest{
			BacklogID:   story.BacklogID,
			SprintID:    sprintID,
			Title:       story.Title,
			Description: story.Description,
			Priority:    story.Priority,
			StoryPoints: story.StoryPoints,
		})
		if err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindStories)

		fmt.Fprintf(cmd.OutOrStdout(), "Story %s assigned to sprint %s\n", updated.ID, sprintID)
		return nil
	},
}

// storyDeleteCmd removes a story
var storyDeleteCmd = &cobra.Command{
	Use:   "delete <story-id>",
	Short: "Delete a user story",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		if err := client.DeleteStory(cmd.Context(), args[0]); err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindStories)

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted story %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storyCmd)
	storyCmd.AddCommand(storyListCmd)
	storyCmd.AddCommand(storyCreateCmd)
	storyCmd.AddCommand(storyAssignCmd)
	storyCmd.AddCommand(storyDeleteCmd)

	storyListCmd.Flags().String("backlog", "", "Limit to one backlog")
	storyCreateCmd.Flags().String("backlog", "", "Backlog the story belongs to (required)")
	storyCreateCmd.Flags().String("description", "", "Story description")
	storyCreateCmd.Flags().String("priority", "", "Story priority")
	storyCreateCmd.Flags().Int("points", 0, "Story points estimate")
	storyAssignCmd.Flags().String("sprint", "", "Sprint to assign the story to (required)")
}
