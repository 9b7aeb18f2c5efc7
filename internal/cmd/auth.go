package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintdeck/internal/access"
	"github.com/felixgeelhaar/sprintdeck/internal/session"
	"github.com/felixgeelhaar/sprintdeck/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with the sprintdeck platform",
}

// authLoginCmd logs in and starts a background cache warming pass
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the platform",
	Long: `Log in to the sprintdeck platform.

With no flags, an interactive prompt collects the credentials.

Examples:
  sprintdeck auth login
  sprintdeck auth login --email user@example.com --password mypass`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if password == "" {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("--email and --password are required in non-interactive mode")
			}
			creds, err := tui.PromptForLogin(email)
			if err != nil {
				return err
			}
			email, password = creds.Email, creds.Password
		}
		if email == "" {
			return fmt.Errorf("--email is required")
		}

		client, err := getClient(cmd)
		if err != nil {
			return err
		}

		sess, err := client.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		if err := getSessionStore().Save(sess); err != nil {
			return err
		}

		// Start warming in the background. The login result never
		// depends on it; the grace period only gives fast backends a
		// chance to finish before the process exits.
		if scheduler, err := getScheduler(cmd); err == nil {
			pass := scheduler.Warm(cmd.Context(), sess)
			graceCtx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
			defer cancel()
			pass.WaitContext(graceCtx)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", sess.User.Name, sess.User.Role)

		renderer := newRenderer(cmd)
		profile := access.Resolve(access.ParseRole(sess.User.Role))
		fmt.Fprintln(cmd.OutOrStdout(), renderer.Navigation(profile))

		return nil
	},
}

// authRegisterCmd registers a new account and logs in
var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user account",
	Long: `Register a new user account with the sprintdeck platform.

After registration, you are automatically logged in.

Examples:
  sprintdeck auth register --name "Dana Doe" --email dana@example.com --password mypass`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			return fmt.Errorf("--password is required")
		}
		if name == "" {
			name = email
		}

		client, err := getClient(cmd)
		if err != nil {
			return err
		}

		sess, err := client.Register(cmd.Context(), name, email, password)
		if err != nil {
			return err
		}

		if err := getSessionStore().Save(sess); err != nil {
			return err
		}

		// Registration is an authentication event like login: the same
		// background warming pass runs, with the same exit grace.
		if scheduler, err := getScheduler(cmd); err == nil {
			pass := scheduler.Warm(cmd.Context(), sess)
			graceCtx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
			defer cancel()
			pass.WaitContext(graceCtx)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Registration successful!")
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", sess.User.Name, sess.User.Role)

		renderer := newRenderer(cmd)
		profile := access.Resolve(access.ParseRole(sess.User.Role))
		fmt.Fprintln(cmd.OutOrStdout(), renderer.Navigation(profile))

		return nil
	},
}

// authLogoutCmd clears the session and every cached query
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear cached data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getSessionStore().Clear(); err != nil {
			return err
		}
		getCacheStore().Clear()
		if apiClient != nil {
			apiClient.ClearToken()
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

// authStatusCmd shows current auth status
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, client, err := requireSession(cmd)
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			fmt.Fprintln(cmd.OutOrStdout(), "Use 'sprintdeck auth login' to authenticate.")
			return nil
		}

		user, err := client.GetCurrentUser(cmd.Context())
		if err != nil || user == nil {
			// Fall back to the stored identity when the backend is
			// unreachable; the token may still be fine.
			user = &sess.User
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
		fmt.Fprintf(cmd.OutOrStdout(), "User ID: %s\n", user.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Name:    %s\n", user.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "Email:   %s\n", user.Email)
		fmt.Fprintf(cmd.OutOrStdout(), "Role:    %s\n", user.Role)
		if !sess.ExpiresAt.IsZero() {
			fmt.Fprintf(cmd.OutOrStdout(), "Expires: %s\n", sess.ExpiresAt.Format(time.RFC3339))
		}

		return nil
	},
}

// currentRole resolves the role of the stored session without hitting
// the backend. Unknown roles resolve to the baseline profile.
func currentRole(sess *session.Session) access.Role {
	return access.ParseRole(sess.User.Role)
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	authLoginCmd.Flags().String("email", "", "Email address")
	authLoginCmd.Flags().String("password", "", "Password")

	authRegisterCmd.Flags().String("name", "", "Display name")
	authRegisterCmd.Flags().String("email", "", "Email address (required)")
	authRegisterCmd.Flags().String("password", "", "Password (required)")
}
