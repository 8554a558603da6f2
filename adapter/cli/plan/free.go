package plan

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/planning/application/queries"
	"github.com/spf13/cobra"
)

var freeDate string

var freeCmd = &cobra.Command{
	Use:   "free",
	Short: "Show a day's free time",
	Long: `Show the unoccupied intervals of one day, outside your sleep
window and fixed commitments.

Examples:
  studora plan free
  studora plan free --date 2026-03-10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.FreeTimeHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		date := time.Now()
		if freeDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", freeDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date format, use YYYY-MM-DD: %w", err)
			}
			date = parsed
		}

		ctx := cmd.Context()
		result, err := app.FreeTimeHandler.Handle(ctx, queries.FreeTimeQuery{
			UserID: app.CurrentUserID,
			Date:   date,
		})
		if err != nil {
			return fmt.Errorf("failed to compute free time: %w", err)
		}

		fmt.Printf("Free time on %s:\n", date.Format("Mon 2006-01-02"))
		if len(result.Intervals) == 0 {
			fmt.Println("  none")
			return nil
		}
		for _, iv := range result.Intervals {
			fmt.Printf("  %s - %s  (%d min)\n",
				iv.Start.Format("15:04"),
				iv.End.Format("15:04"),
				iv.Minutes,
			)
		}
		fmt.Printf("Total: %d min\n", result.TotalMinutes)

		return nil
	},
}

func init() {
	freeCmd.Flags().StringVar(&freeDate, "date", "", "day to inspect (YYYY-MM-DD, default today)")
}
