package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintdeck/internal/api"
	"github.com/felixgeelhaar/sprintdeck/internal/cache"
)

var notificationCmd = &cobra.Command{
	Use:     "notification",
	Aliases: []string{"notifications"},
	Short:   "Manage notifications",
}

// notificationListCmd lists notifications, served from the warmed cache
var notificationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}
		cfg, err := getConfig()
		if err != nil {
			return err
		}

		notifications, err := cachedList(cmd, cache.Key(api.KindNotifications, "mine"), cfg.Freshness.Notifications,
			func(ctx context.Context) ([]api.Notification, error) { return client.ListMyNotifications(ctx) })
		if err != nil {
			return err
		}

		if unread, _ := cmd.Flags().GetBool("unread"); unread {
			filtered := notifications[:0:0]
			for _, n := range notifications {
				if !n.Read {
					filtered = append(filtered, n)
				}
			}
			notifications = filtered
		}

		if textOutput(cmd) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d unread\n", api.CountUnread(notifications))
			fmt.Fprintln(out, newRenderer(cmd).NotificationList(notifications))
			return nil
		}

		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(notifications)
	},
}

// notificationReadCmd marks a notification as read
var notificationReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		if _, err := client.MarkNotificationRead(cmd.Context(), args[0]); err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindNotifications)

		fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as read\n", args[0])
		return nil
	},
}

// notificationDismissCmd deletes a notification
var notificationDismissCmd = &cobra.Command{
	Use:   "dismiss <notification-id>",
	Short: "Dismiss a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		if err := client.DeleteNotification(cmd.Context(), args[0]); err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindNotifications)

		fmt.Fprintf(cmd.OutOrStdout(), "Dismissed %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notificationCmd)
	notificationCmd.AddCommand(notificationListCmd)
	notificationCmd.AddCommand(notificationReadCmd)
	notificationCmd.AddCommand(notificationDismissCmd)

	notificationListCmd.Flags().Bool("unread", false, "Only unread notifications")
}
