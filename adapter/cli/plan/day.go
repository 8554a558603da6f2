package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/planning/application/commands"
	planningDomain "github.com/felixgeelhaar/studora/internal/planning/domain"
	"github.com/spf13/cobra"
)

var dayDate string

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Schedule a single day",
	Long: `Fill one day's free time with your open work. Lectures, fixed
appointments, and the part of the day already behind you stay
untouched; open items are packed into what remains.

Examples:
  studora plan day                  # today
  studora plan day --date 2026-03-10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ScheduleDayHandler == nil {
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
		result, err := app.ScheduleDayHandler.Handle(ctx, commands.ScheduleDayCommand{
			UserID: app.CurrentUserID,
			Date:   date,
		})
		if err != nil {
			return fmt.Errorf("failed to schedule day: %w", err)
		}

		fmt.Printf("Schedule for %s:\n", date.Format("Mon 2006-01-02"))
		fmt.Println(strings.Repeat("-", 60))

		scheduled := 0
		for _, s := range result.Sessions {
			if s.Status() == planningDomain.StatusUnscheduled {
				fmt.Printf("  unplaced: %d min did not fit today\n", s.UnmetMinutes())
				continue
			}
			scheduled++
			fmt.Printf("  %s - %s  (%d min)\n",
				s.StartTime().Format("15:04"),
				s.EndTime().Format("15:04"),
				s.Minutes(),
			)
			if s.Rationale() != "" {
				fmt.Printf("    %s\n", s.Rationale())
			}
		}
		if scheduled == 0 {
			fmt.Println("  no sessions scheduled")
		}

		if len(result.FreeTime) > 0 {
			total := 0
			for _, f := range result.FreeTime {
				total += f.Minutes()
			}
			fmt.Printf("\nFree time remaining: %d min\n", total)
		}

		return nil
	},
}

func init() {
	dayCmd.Flags().StringVar(&dayDate, "date", "", "day to schedule (YYYY-MM-DD, default today)")
}
