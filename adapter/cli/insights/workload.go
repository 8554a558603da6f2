package insights

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/insights/application/queries"
	"github.com/spf13/cobra"
)

var workloadDate string

var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Show a day's workload",
	Long: `Show how many minutes of flexible and fixed work fall on one day,
and whether the day is overcommitted.

Examples:
  studora insights workload
  studora insights workload --date 2026-03-10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DayWorkloadHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		date := time.Now()
		if workloadDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", workloadDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date format, use YYYY-MM-DD: %w", err)
			}
			date = parsed
		}

		ctx := cmd.Context()
		dto, err := app.DayWorkloadHandler.Handle(ctx, queries.DayWorkloadQuery{
			UserID: app.CurrentUserID,
			Date:   date,
		})
		if err != nil {
			return fmt.Errorf("failed to compute workload: %w", err)
		}

		fmt.Printf("Workload for %s:\n", dto.Date)
		fmt.Printf("  Flexible: %d min across %d items\n", dto.FlexibleMinutes, dto.FlexibleCount)
		fmt.Printf("  Fixed:    %d min across %d blocks\n", dto.FixedMinutes, dto.FixedCount)
		fmt.Printf("  Total:    %d min\n", dto.TotalMinutes)
		if dto.Overcommitted {
			fmt.Println("  WARNING: this day is overcommitted")
		}

		return nil
	},
}

func init() {
	workloadCmd.Flags().StringVar(&workloadDate, "date", "", "day to inspect (YYYY-MM-DD, default today)")
}
