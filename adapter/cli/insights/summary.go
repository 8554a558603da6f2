package insights

import (
	"fmt"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/insights/application/queries"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show overall progress",
	Long: `Show overall progress across all agenda items, and warn when
planned study sessions have slipped past without being done.

Examples:
  studora insights summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SummaryHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		dto, err := app.SummaryHandler.Handle(ctx, queries.SummaryQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to compute summary: %w", err)
		}

		fmt.Println("Progress summary:")
		fmt.Printf("  Items:      %d total, %d completed, %d open\n",
			dto.TotalItems, dto.CompletedItems, dto.OpenItems)
		fmt.Printf("  Completion: %.1f%%\n", dto.CompletionRate)
		if dto.Warning != "" {
			fmt.Printf("  WARNING: %s\n", dto.Warning)
		}

		return nil
	},
}
