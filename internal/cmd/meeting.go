package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintdeck/internal/access"
	"github.com/felixgeelhaar/sprintdeck/internal/api"
)

var meetingCmd = &cobra.Command{
	Use:   "meeting",
	Short: "Manage meetings",
}

// meetingListCmd lists meetings
var meetingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meetings",
	Long: `List meetings.

Examples:
  sprintdeck meeting list
  sprintdeck meeting list --mine`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		mine, _ := cmd.Flags().GetBool("mine")

		var meetings []api.Meeting
		if mine {
			meetings, err = client.ListMyMeetings(cmd.Context())
		} else {
			meetings, err = client.ListMeetings(cmd.Context())
		}
		if err != nil {
			return err
		}

		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(meetings)
	},
}

// meetingScheduleCmd schedules a meeting
var meetingScheduleCmd = &cobra.Command{
	Use:   "schedule <title>",
	Short: "Schedule a meeting",
	Long: `Schedule a project meeting.

Examples:
  sprintdeck meeting schedule "Sprint planning" --project p1 --at 2026-09-01T10:00:00Z --type planning`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		if !access.CanScheduleMeeting(currentRole(sess)) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Note: your role does not normally schedule meetings; the server has the final say.")
		}

		projectID, _ := cmd.Flags().GetString("project")
		if projectID == "" {
			return fmt.Errorf("--project is required")
		}
		at, _ := cmd.Flags().GetString("at")
		if at == "" {
			return fmt.Errorf("--at is required")
		}
		scheduledAt, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("--at must be RFC3339, e.g. 2026-09-01T10:00:00Z: %w", err)
		}
		meetingType, _ := cmd.Flags().GetString("type")
		duration, _ := cmd.Flags().GetInt("duration")
		location, _ := cmd.Flags().GetString("location")

		meeting, err := client.CreateMeeting(cmd.Context(), api.CreateMeetingRequest{
			ProjectID:   projectID,
			Title:       args[0],
			Type:        meetingType,
			ScheduledAt: scheduledAt,
			DurationMin: duration,
			Location:    location,
		})
		if err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindMeetings)

		fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s (%s) at %s\n", meeting.Title, meeting.ID, meeting.ScheduledAt.Format(time.RFC3339))
		return nil
	},
}

// meetingCancelCmd cancels a meeting
var meetingCancelCmd = &cobra.Command{
	Use:   "cancel <meeting-id>",
	Short: "Cancel a meeting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireSession(cmd)
		if err != nil {
			return err
		}

		if err := client.DeleteMeeting(cmd.Context(), args[0]); err != nil {
			return err
		}
		getCacheStore().InvalidateKind(api.KindMeetings)

		fmt.Fprintf(cmd.OutOrStdout(), "Cancelled meeting %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(meetingCmd)
	meetingCmd.AddCommand(meetingListCmd)
	meetingCmd.AddCommand(meetingScheduleCmd)
	meetingCmd.AddCommand(meetingCancelCmd)

	meetingListCmd.Flags().Bool("mine", false, "Only meetings you are invited to")
	meetingScheduleCmd.Flags().String("project", "", "Project the meeting belongs to (required)")
	meetingScheduleCmd.Flags().String("at", "", "Meeting time, RFC3339 (required)")
	meetingScheduleCmd.Flags().String("type", api.MeetingTypeStandup, "Meeting type (standup, planning, review, retrospective)")
	meetingScheduleCmd.Flags().Int("duration", 30, "Duration in minutes")
	meetingScheduleCmd.Flags().String("location", "", "Location or call link")
}
