package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintdeck/internal/access"
	"github.com/felixgeelhaar/sprintdeck/internal/api"
	"github.com/felixgeelhaar/sprintdeck/internal/cache"
)

// dashboardCmd shows the aggregate counters
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show dashboard statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, client, err := requireSession(cmd)
		if err != nil {
			return err
		}
		cfg, err := getConfig()
		if err != nil {
			return err
		}

		if !access.CanViewDashboard(currentRole(sess)) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Note: dashboard stats are an elevated view; the server has the final say.")
		}

		var stats api.DashboardStats
		key := cache.Key(api.KindStats, "dashboard")
		store := getCacheStore()

		if data, ok := store.Read(key); ok {
			if cached, ok := data.(api.DashboardStats); ok {
				stats = cached
			}
		} else {
			fetched, err := client.GetDashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			if fetched == nil {
				return fmt.Errorf("dashboard stats unavailable")
			}
			stats = *fetched
			_, _ = store.Prefetch(cmd.Context(), key, cfg.Freshness.Stats, func(ctx context.Context) (any, error) {
				return stats, nil
			})
		}

		if textOutput(cmd) {
			fmt.Fprintln(cmd.OutOrStdout(), newRenderer(cmd).StatsPanel(stats))
			return nil
		}

		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(stats)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
