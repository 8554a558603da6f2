package timetable

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/timetable/application/commands"
	"github.com/felixgeelhaar/studora/internal/timetable/application/queries"
	"github.com/spf13/cobra"
)

var (
	attendDate   string
	attendStatus string
	attendNote   string
)

var attendCmd = &cobra.Command{
	Use:   "attend [course-name]",
	Short: "Record attendance for a class",
	Long: `Record whether you attended a class. Status defaults to present.

Examples:
  studora timetable attend "Linear Algebra"
  studora timetable attend "Linear Algebra" --status absent --date 2026-03-02
  studora timetable attend "Statistics Lab" --status cancelled --note "instructor ill"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RecordAttendanceHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		date := time.Now()
		if attendDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", attendDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date format, use YYYY-MM-DD: %w", err)
			}
			date = parsed
		}

		ctx := cmd.Context()
		record, err := app.RecordAttendanceHandler.Handle(ctx, commands.RecordAttendanceCommand{
			UserID:     app.CurrentUserID,
			CourseName: args[0],
			Date:       date,
			Status:     attendStatus,
			Note:       attendNote,
		})
		if err != nil {
			return fmt.Errorf("failed to record attendance: %w", err)
		}

		fmt.Printf("Attendance recorded: %s\n", record.ID())
		fmt.Printf("  course: %s\n", record.CourseName())
		fmt.Printf("  date:   %s\n", record.Date().Format("2006-01-02"))
		fmt.Printf("  status: %s\n", record.Status())

		return nil
	},
}

var attendanceCourse string

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "List attendance records",
	Long: `List attendance records, newest first.

Examples:
  studora timetable attendance
  studora timetable attendance --course "Linear Algebra"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListAttendanceHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		records, err := app.ListAttendanceHandler.Handle(ctx, queries.ListAttendanceQuery{
			UserID:     app.CurrentUserID,
			CourseName: attendanceCourse,
		})
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No attendance records found.")
			return nil
		}

		fmt.Printf("Attendance (%d records):\n", len(records))
		fmt.Println(strings.Repeat("-", 60))
		for _, r := range records {
			fmt.Printf("%s  %-9s  %-30s %s\n", r.Date.Format("2006-01-02"), r.Status, r.CourseName, r.ID)
			if r.Note != "" {
				fmt.Printf("   note: %s\n", r.Note)
			}
		}

		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show attendance rates per course",
	Long: `Show per-course attendance rates. Excused and cancelled classes
do not count against you.

Examples:
  studora timetable stats`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AttendanceStatsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		stats, err := app.AttendanceStatsHandler.Handle(ctx, queries.AttendanceStatsQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to compute attendance stats: %w", err)
		}

		if len(stats) == 0 {
			fmt.Println("No attendance records found.")
			return nil
		}

		fmt.Println("Attendance by course:")
		fmt.Println(strings.Repeat("-", 60))
		for _, s := range stats {
			fmt.Printf("%s: %.1f%%\n", s.CourseName, s.Rate)
			fmt.Printf("   attended %d, absent %d, excused %d, cancelled %d\n",
				s.Attended, s.Absent, s.Excused, s.Cancelled)
		}

		return nil
	},
}

func init() {
	attendCmd.Flags().StringVar(&attendDate, "date", "", "class date (YYYY-MM-DD, default today)")
	attendCmd.Flags().StringVar(&attendStatus, "status", "", "attendance status (present, absent, late, excused, cancelled)")
	attendCmd.Flags().StringVar(&attendNote, "note", "", "optional note")

	attendanceCmd.Flags().StringVar(&attendanceCourse, "course", "", "filter by course name")
}
