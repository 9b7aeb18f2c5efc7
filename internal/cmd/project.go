package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintdeck/internal/access"
	"github.com/felixgeelhaar/sprintdeck/internal/api"
	"github.com/felixgeelhaar/sprintdeck/internal/cache"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

// projectListCmd lists projects, served from the warmed cache when fresh
var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Long: `List projects visible to you.

Examples:
  sprintdeck project list
  sprintdeck project list --mine
  sprintdeck project list -o json`,
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
		scope := "all"
		fetch := client.ListProjects
		if mine {
			scope = "mine"
			fetch = client.ListMyProjects
		}

		projects, err := cachedList(cmd, cache.Key(api.KindProjects, scope), cfg.Freshness.Projects,
			func(ctx context.Context) ([]api.Project, error) { return fetch(ctx) })
		if err != nil {
			return err
		}

		if textOutput(cmd) {
			fmt.Fprintln(cmd.OutOrStdout(), newRenderer(cmd).ProjectTable(projects))
			return nil
		}

		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(projects)
	},
}

// projectGetCmd shows one project
var projectGetCmd = &cobra.Command{
	Use:   "get <project-id>",
	Short: "Show a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		project, err := client.GetProject(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(project)
	},
}

// projectCreateCmd creates a project
var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		if !access.CanCreateProject(currentRole(sess)) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Note: your role does not normally create projects; the server has the final say.")
		}

		description, _ := cmd.Flags().GetString("description")

		project, err := client.CreateProject(cmd.Context(), args[0], description)
		if err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindProjects)

		fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", project.Name, project.ID)
		return nil
	},
}

// projectUpdateCmd updates a project
var projectUpdateCmd = &cobra.Command{
	Use:   "update <project-id>",
	Short: "Update a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		status, _ := cmd.Flags().GetString("status")

		project, err := client.UpdateProject(cmd.Context(), args[0], api.CreateProjectRequest{
			Name:        name,
			Description: description,
			Status:      status,
		})
		if err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindProjects)

		fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", project.ID)
		return nil
	},
}

// projectDeleteCmd deletes a project
var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to delete without --yes")
		}

		if err := client.DeleteProject(cmd.Context(), args[0]); err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindProjects)

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectGetCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	projectListCmd.Flags().Bool("mine", false, "Only projects you belong to")
	projectCreateCmd.Flags().String("description", "", "Project description")
	projectUpdateCmd.Flags().String("name", "", "New project name")
	projectUpdateCmd.Flags().String("description", "", "New project description")
	projectUpdateCmd.Flags().String("status", "", "New project status")
	projectDeleteCmd.Flags().Bool("yes", false, "Confirm deletion")
}
