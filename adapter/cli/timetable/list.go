package timetable

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/timetable/application/queries"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List timetable entries",
	Long: `List your recurring timetable entries, ordered by earliest weekday.

Examples:
  studora timetable list`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListEntriesHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		entries, err := app.ListEntriesHandler.Handle(ctx, queries.ListEntriesQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to list timetable entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No timetable entries found.")
			return nil
		}

		fmt.Printf("Timetable (%d entries):\n", len(entries))
		fmt.Println(strings.Repeat("-", 60))

		for _, e := range entries {
			fmt.Printf("%s  %s - %s  %s\n", formatDays(e.DaysOfWeek), e.StartTime, e.EndTime, e.CourseName)
			fmt.Printf("   ID: %s\n", e.ID.String()[:8])
			if e.CourseCode != "" {
				fmt.Printf("   Code: %s\n", e.CourseCode)
			}
			if e.Instructor != "" {
				fmt.Printf("   Instructor: %s\n", e.Instructor)
			}
			if e.Room != "" {
				fmt.Printf("   Room: %s\n", e.Room)
			}
			if e.SemesterStart != nil && e.SemesterEnd != nil {
				fmt.Printf("   Semester: %s - %s\n",
					e.SemesterStart.Format("2006-01-02"),
					e.SemesterEnd.Format("2006-01-02"),
				)
			}
			if len(e.ExcludedDates) > 0 {
				fmt.Printf("   Skipped dates: %s\n", strings.Join(e.ExcludedDates, ", "))
			}
			fmt.Println()
		}

		return nil
	},
}
