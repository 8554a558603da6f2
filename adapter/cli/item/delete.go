package item

import (
	"fmt"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/agenda/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [item-id]",
	Short: "Delete an agenda item",
	Long: `Delete an agenda item and its planned study sessions.

Examples:
  studora item delete 550e8400-e29b-41d4-a716-446655440000`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeleteItemHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		itemID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid item ID: %w", err)
		}

		ctx := cmd.Context()
		err = app.DeleteItemHandler.Handle(ctx, commands.DeleteItemCommand{
			ItemID: itemID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}

		fmt.Printf("Item deleted: %s\n", itemID)
		return nil
	},
}
