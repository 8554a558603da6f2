package timetable

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/timetable/application/commands"
	"github.com/spf13/cobra"
)

var (
	addDays          string
	addStart         string
	addEnd           string
	addCode          string
	addInstructor    string
	addRoom          string
	addSemesterStart string
	addSemesterEnd   string
	addColor         string
	addCategory      string
)

var addCmd = &cobra.Command{
	Use:   "add [course-name]",
	Short: "Add a recurring timetable entry",
	Long: `Add a recurring class to your timetable. Days use ISO numbering:
1 is Monday, 7 is Sunday.

Examples:
  studora timetable add "Linear Algebra" --days 1,3 --start 10:00 --end 12:00
  studora timetable add "Statistics Lab" --days 5 --start 14:00 --end 16:00 --room "B 2.01" \
    --semester-start 2026-02-16 --semester-end 2026-06-05`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AddEntryHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		days, err := parseDays(addDays)
		if err != nil {
			return err
		}

		addCmd := commands.AddEntryCommand{
			UserID:     app.CurrentUserID,
			CourseName: args[0],
			CourseCode: addCode,
			Instructor: addInstructor,
			Room:       addRoom,
			DaysOfWeek: days,
			StartTime:  addStart,
			EndTime:    addEnd,
			Color:      addColor,
			Category:   addCategory,
		}

		if addSemesterStart != "" {
			parsed, err := time.ParseInLocation("2006-01-02", addSemesterStart, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --semester-start format, use YYYY-MM-DD: %w", err)
			}
			addCmd.SemesterStart = &parsed
		}
		if addSemesterEnd != "" {
			parsed, err := time.ParseInLocation("2006-01-02", addSemesterEnd, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --semester-end format, use YYYY-MM-DD: %w", err)
			}
			addCmd.SemesterEnd = &parsed
		}

		ctx := cmd.Context()
		entry, err := app.AddEntryHandler.Handle(ctx, addCmd)
		if err != nil {
			return fmt.Errorf("failed to add timetable entry: %w", err)
		}

		fmt.Printf("Timetable entry added: %s\n", entry.ID())
		fmt.Printf("  course: %s\n", entry.CourseName())
		fmt.Printf("  days:   %s\n", formatDays(entry.DaysOfWeek()))
		fmt.Printf("  time:   %s - %s\n", entry.StartTime(), entry.EndTime())

		return nil
	},
}

// parseDays parses a comma-separated list of ISO weekday numbers.
func parseDays(s string) ([]int, error) {
	if s == "" {
		return nil, fmt.Errorf("--days is required (1=Monday .. 7=Sunday, e.g. 1,3)")
	}
	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid day %q: %w", p, err)
		}
		days = append(days, d)
	}
	return days, nil
}

var dayNames = [8]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func formatDays(days []int) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 1 && d <= 7 {
			names = append(names, dayNames[d])
		}
	}
	return strings.Join(names, ", ")
}

func init() {
	addCmd.Flags().StringVar(&addDays, "days", "", "weekdays, comma separated (1=Monday .. 7=Sunday)")
	addCmd.Flags().StringVar(&addStart, "start", "", "start time (HH:mm)")
	addCmd.Flags().StringVar(&addEnd, "end", "", "end time (HH:mm)")
	addCmd.Flags().StringVar(&addCode, "code", "", "course code")
	addCmd.Flags().StringVar(&addInstructor, "instructor", "", "instructor name")
	addCmd.Flags().StringVar(&addRoom, "room", "", "room")
	addCmd.Flags().StringVar(&addSemesterStart, "semester-start", "", "first day of the semester (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addSemesterEnd, "semester-end", "", "last day of the semester (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addColor, "color", "", "display color")
	addCmd.Flags().StringVar(&addCategory, "category", "", "category, e.g. lecture or lab")
}
