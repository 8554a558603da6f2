package item

import (
	"fmt"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/agenda/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [item-id]",
	Short: "Show one agenda item",
	Long: `Show all details of a single agenda item.

Examples:
  studora item show 550e8400-e29b-41d4-a716-446655440000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetItemHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		itemID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid item ID: %w", err)
		}

		ctx := cmd.Context()
		item, err := app.GetItemHandler.Handle(ctx, queries.GetItemQuery{
			ItemID: itemID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to get item: %w", err)
		}

		fmt.Printf("%s\n", item.Title)
		fmt.Printf("  ID: %s\n", item.ID)
		fmt.Printf("  Type: %s\n", item.Classification)
		fmt.Printf("  Priority: %s\n", item.Priority)
		if item.Category != "" {
			fmt.Printf("  Category: %s\n", item.Category)
		}
		if item.Description != "" {
			fmt.Printf("  Description: %s\n", item.Description)
		}
		if item.Important {
			fmt.Println("  Important: yes")
		}
		if item.DurationMinutes > 0 {
			fmt.Printf("  Duration: %d min\n", item.DurationMinutes)
		}
		if item.Deadline != nil {
			fmt.Printf("  Due: %s\n", item.Deadline.Format("2006-01-02 15:04"))
		}
		if item.StartTime != nil && item.EndTime != nil {
			fmt.Printf("  Fixed: %s - %s\n",
				item.StartTime.Format("2006-01-02 15:04"),
				item.EndTime.Format("15:04"),
			)
		}
		if item.Completed {
			fmt.Println("  Status: completed")
		} else {
			fmt.Println("  Status: open")
		}

		return nil
	},
}
