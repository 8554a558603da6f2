package item

import (
	"fmt"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/agenda/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete [item-id]",
	Short: "Mark an agenda item as complete",
	Long: `Mark an agenda item as complete by its ID.

Examples:
  studora item complete 550e8400-e29b-41d4-a716-446655440000`,
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteItemHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		itemID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid item ID: %w", err)
		}

		ctx := cmd.Context()
		err = app.CompleteItemHandler.Handle(ctx, commands.CompleteItemCommand{
			ItemID: itemID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to complete item: %w", err)
		}

		fmt.Printf("Item completed: %s\n", itemID)
		return nil
	},
}
