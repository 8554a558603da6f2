package timetable

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/timetable/application/queries"
	"github.com/spf13/cobra"
)

var dayDate string

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show one day's classes",
	Long: `Expand your recurring entries into the concrete class blocks of
one day, honoring semester bounds and skipped dates.

Examples:
  studora timetable day
  studora timetable day --date 2026-03-09`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DayScheduleHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		date := time.Now()
		if dayDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", dayDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date format, use YYYY-MM-DD: %w", err)
			}
			date = parsed
		}

		ctx := cmd.Context()
		occurrences, err := app.DayScheduleHandler.Handle(ctx, queries.DayScheduleQuery{
			UserID: app.CurrentUserID,
			Date:   date,
		})
		if err != nil {
			return fmt.Errorf("failed to load day schedule: %w", err)
		}

		fmt.Printf("Classes on %s:\n", date.Format("Mon 2006-01-02"))
		if len(occurrences) == 0 {
			fmt.Println("  none")
			return nil
		}
		for _, o := range occurrences {
			fmt.Printf("  %s - %s  %s", o.StartTime.Format("15:04"), o.EndTime.Format("15:04"), o.CourseName)
			if o.Room != "" {
				fmt.Printf("  (%s)", o.Room)
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	dayCmd.Flags().StringVar(&dayDate, "date", "", "day to show (YYYY-MM-DD, default today)")
}
