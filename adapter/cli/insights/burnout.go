package insights

import (
	"fmt"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/insights/application/queries"
	"github.com/spf13/cobra"
)

var burnoutWindow int

var burnoutCmd = &cobra.Command{
	Use:   "burnout",
	Short: "Show burnout risk",
	Long: `Evaluate overload across a trailing window of days ending today.

Examples:
  studora insights burnout
  studora insights burnout --days 14`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.BurnoutHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		dto, err := app.BurnoutHandler.Handle(ctx, queries.BurnoutQuery{
			UserID:     app.CurrentUserID,
			WindowDays: burnoutWindow,
		})
		if err != nil {
			return fmt.Errorf("failed to compute burnout risk: %w", err)
		}

		fmt.Printf("Burnout over the last %d days:\n", dto.WindowDays)
		fmt.Printf("  Overloaded days: %d of %d\n", dto.OverloadedDays, dto.WindowDays)
		fmt.Printf("  Average load:    %.1f min/day\n", dto.AverageDailyMinutes)
		if dto.AtRisk {
			fmt.Println("  WARNING: burnout risk - consider spreading work out")
		} else {
			fmt.Println("  No burnout risk detected")
		}

		for _, day := range dto.Days {
			marker := " "
			if day.Overcommitted {
				marker = "!"
			}
			fmt.Printf("  %s %s  %4d min\n", marker, day.Date, day.FlexibleMinutes)
		}

		return nil
	},
}

func init() {
	burnoutCmd.Flags().IntVar(&burnoutWindow, "days", 0, "window size in days (default 7)")
}
