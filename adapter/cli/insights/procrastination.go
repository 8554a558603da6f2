package insights

import (
	"fmt"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/insights/application/queries"
	"github.com/spf13/cobra"
)

var procrastinationCmd = &cobra.Command{
	Use:   "procrastination",
	Short: "Show your procrastination score",
	Long: `Score missed deadlines and last-moment work across all
deadline-bearing items.

Examples:
  studora insights procrastination`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ProcrastinationHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		dto, err := app.ProcrastinationHandler.Handle(ctx, queries.ProcrastinationQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to compute procrastination score: %w", err)
		}

		fmt.Printf("Procrastination: %.1f (%s)\n", dto.Score, dto.Level)
		fmt.Printf("  Tracked items:    %d\n", dto.Tracked)
		fmt.Printf("  Missed deadlines: %d\n", dto.MissedDeadlines)
		fmt.Printf("  Late-stage items: %d\n", dto.LateStage)

		return nil
	},
}
