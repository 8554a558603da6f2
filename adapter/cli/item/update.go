package item

import (
	"fmt"
	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/agenda/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	updateTitle       string
	updateDescription string
	updateCategory    string
	updatePriority    string
	updateDuration    int
	updateDeadline    string
	clearDeadline     bool
)

var updateCmd = &cobra.Command{
	Use:   "update [item-id]",
	Short: "Update an agenda item",
	Long: `Update fields of an existing agenda item. Only the flags you set
are changed.

Examples:
  studora item update abc123 --title "Revised problem set"
  studora item update abc123 --due 2026-03-15 -p high
  studora item update abc123 --clear-due`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateItemHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		itemID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid item ID: %w", err)
		}

		updateCmd := commands.UpdateItemCommand{
			ItemID:        itemID,
			UserID:        app.CurrentUserID,
			ClearDeadline: clearDeadline,
		}

		if cmd.Flags().Changed("title") {
			updateCmd.Title = &updateTitle
		}
		if cmd.Flags().Changed("description") {
			updateCmd.Description = &updateDescription
		}
		if cmd.Flags().Changed("category") {
			updateCmd.Category = &updateCategory
		}
		if cmd.Flags().Changed("priority") {
			updateCmd.Priority = &updatePriority
		}
		if cmd.Flags().Changed("duration") {
			updateCmd.DurationMinutes = &updateDuration
		}
		if updateDeadline != "" {
			parsed, err := parseDayOrInstant(updateDeadline)
			if err != nil {
				return fmt.Errorf("invalid due date format (use YYYY-MM-DD): %w", err)
			}
			updateCmd.Deadline = &parsed
		}

		ctx := cmd.Context()
		if err := app.UpdateItemHandler.Handle(ctx, updateCmd); err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}

		fmt.Printf("Item updated: %s\n", itemID)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	updateCmd.Flags().StringVar(&updateCategory, "category", "", "new category")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "new priority (low, medium, high)")
	updateCmd.Flags().IntVarP(&updateDuration, "duration", "d", 0, "new estimated duration in minutes")
	updateCmd.Flags().StringVar(&updateDeadline, "due", "", "new deadline (YYYY-MM-DD or \"YYYY-MM-DD HH:mm\")")
	updateCmd.Flags().BoolVar(&clearDeadline, "clear-due", false, "remove the deadline")
}
