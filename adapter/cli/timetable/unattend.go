package timetable

import (
	"fmt"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/timetable/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var unattendCmd = &cobra.Command{
	Use:   "unattend [record-id]",
	Short: "Delete an attendance record",
	Long: `Delete an attendance record by its ID. IDs are shown by the
attendance command.

Examples:
  studora timetable unattend 550e8400-e29b-41d4-a716-446655440000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeleteAttendanceHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		recordID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid record ID: %w", err)
		}

		ctx := cmd.Context()
		err = app.DeleteAttendanceHandler.Handle(ctx, commands.DeleteAttendanceCommand{
			RecordID: recordID,
			UserID:   app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to delete attendance record: %w", err)
		}

		fmt.Printf("Attendance record deleted: %s\n", recordID)
		return nil
	},
}
