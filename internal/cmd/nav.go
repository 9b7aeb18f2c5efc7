package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintdeck/internal/access"
)

// navCmd prints the navigation the current role may see
var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Show your navigation",
	Long: `Show the navigation entries available to your role.

What this lists is a UI affordance, not an enforcement boundary: the
backend authorizes every request independently.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, err := requireSession(cmd)
		if err != nil {
			return err
		}

		profile := access.Resolve(currentRole(sess))

		if textOutput(cmd) {
			fmt.Fprintln(cmd.OutOrStdout(), newRenderer(cmd).Navigation(profile))
			return nil
		}

		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(struct {
			Role        access.Role         `json:"role" yaml:"role"`
			Navigation  []access.NavEntry   `json:"navigation" yaml:"navigation"`
			Permissions []access.Permission `json:"permissions" yaml:"permissions"`
		}{
			Role:        profile.Role,
			Navigation:  profile.Navigation,
			Permissions: profile.Permissions(),
		})
	},
}

func init() {
	rootCmd.AddCommand(navCmd)
}
