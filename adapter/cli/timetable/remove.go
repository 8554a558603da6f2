package timetable

import (
	"fmt"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/timetable/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [entry-id]",
	Short: "Remove a timetable entry",
	Long: `Remove a recurring entry from your timetable.

Examples:
  studora timetable remove 550e8400-e29b-41d4-a716-446655440000`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeleteEntryHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		entryID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		ctx := cmd.Context()
		err = app.DeleteEntryHandler.Handle(ctx, commands.DeleteEntryCommand{
			EntryID: entryID,
			UserID:  app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to remove timetable entry: %w", err)
		}

		fmt.Printf("Timetable entry removed: %s\n", entryID)
		return nil
	},
}
