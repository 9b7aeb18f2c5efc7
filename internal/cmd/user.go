package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintdeck/internal/access"
	"github.com/felixgeelhaar/sprintdeck/internal/api"
	"github.com/felixgeelhaar/sprintdeck/internal/cache"
	"github.com/felixgeelhaar/sprintdeck/internal/tui"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

// userListCmd lists the user roster, served from the warmed cache
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, client, err := requireSession(cmd)
		if err != nil {
			return err
		}
		cfg, err := getConfig()
		if err != nil {
			return err
		}

		if !access.CanManageUsers(currentRole(sess)) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Note: the user roster is an admin view; the server has the final say.")
		}

		users, err := cachedList(cmd, cache.Key(api.KindUsers, "all"), cfg.Freshness.Users,
			func(ctx context.Context) ([]api.UserAccount, error) { return client.ListUsers(ctx) })
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(users)
	},
}

// userGetCmd shows one account
var userGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		user, err := client.GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(user)
	},
}

// userDeleteCmd removes an account, confirming interactively
var userDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("refusing to delete without --yes")
			}
			confirmed, err := tui.PromptForConfirmation(fmt.Sprintf("Delete user %s?", args[0]), false)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		if err := client.DeleteUser(cmd.Context(), args[0]); err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindUsers)
		getCacheStore().InvalidateKind(api.KindStats)

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userGetCmd)
	userCmd.AddCommand(userDeleteCmd)

	userDeleteCmd.Flags().Bool("yes", false, "Confirm deletion")
}
