package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintdeck/internal/api"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Project chat",
}

// chatListCmd shows the messages of a project channel
var chatListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show project chat messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		projectID, _ := cmd.Flags().GetString("project")
		if projectID == "" {
			return fmt.Errorf("--project is required")
		}

		messages, err := client.ListMessages(cmd.Context(), projectID)
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(messages)
	},
}

// chatSendCmd posts a message to a project channel
var chatSendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send a chat message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		projectID, _ := cmd.Flags().GetString("project")
		if projectID == "" {
			return fmt.Errorf("--project is required")
		}

		message, err := client.SendMessage(cmd.Context(), projectID, args[0])
		if err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindMessages)

		fmt.Fprintf(cmd.OutOrStdout(), "Sent message %s\n", message.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.AddCommand(chatListCmd)
	chatCmd.AddCommand(chatSendCmd)

	chatListCmd.Flags().String("project", "", "Project channel (required)")
	chatSendCmd.Flags().String("project", "", "Project channel (required)")
}
