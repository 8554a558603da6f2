package timetable

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/timetable/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	updateDays          string
	updateStart         string
	updateEnd           string
	updateCode          string
	updateInstructor    string
	updateRoom          string
	updateColor         string
	updateCategory      string
	updateSemesterStart string
	updateSemesterEnd   string
	skipDate            string
	unskipDate          string
)

var updateCmd = &cobra.Command{
	Use:   "update [entry-id]",
	Short: "Update a timetable entry",
	Long: `Update fields of an existing timetable entry. Only the flags you
set are changed. Use --skip to exclude a single date (a cancelled
lecture) and --unskip to restore it.

Examples:
  studora timetable update abc123 --room "C 0.12"
  studora timetable update abc123 --days 2,4 --start 08:00 --end 10:00
  studora timetable update abc123 --skip 2026-04-03`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateEntryHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		entryID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		updateCmd := commands.UpdateEntryCommand{
			EntryID: entryID,
			UserID:  app.CurrentUserID,
		}

		if cmd.Flags().Changed("code") {
			updateCmd.CourseCode = &updateCode
		}
		if cmd.Flags().Changed("instructor") {
			updateCmd.Instructor = &updateInstructor
		}
		if cmd.Flags().Changed("room") {
			updateCmd.Room = &updateRoom
		}
		if cmd.Flags().Changed("color") {
			updateCmd.Color = &updateColor
		}
		if cmd.Flags().Changed("category") {
			updateCmd.Category = &updateCategory
		}
		if updateDays != "" {
			days, err := parseDays(updateDays)
			if err != nil {
				return err
			}
			updateCmd.DaysOfWeek = days
		}
		if cmd.Flags().Changed("start") {
			updateCmd.StartTime = &updateStart
		}
		if cmd.Flags().Changed("end") {
			updateCmd.EndTime = &updateEnd
		}
		if updateSemesterStart != "" || updateSemesterEnd != "" {
			updateCmd.SetSemester = true
			if updateSemesterStart != "" {
				parsed, err := time.ParseInLocation("2006-01-02", updateSemesterStart, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --semester-start format, use YYYY-MM-DD: %w", err)
				}
				updateCmd.SemesterStart = &parsed
			}
			if updateSemesterEnd != "" {
				parsed, err := time.ParseInLocation("2006-01-02", updateSemesterEnd, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --semester-end format, use YYYY-MM-DD: %w", err)
				}
				updateCmd.SemesterEnd = &parsed
			}
		}
		if skipDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", skipDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --skip format, use YYYY-MM-DD: %w", err)
			}
			updateCmd.ExcludeDate = &parsed
		}
		if unskipDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", unskipDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --unskip format, use YYYY-MM-DD: %w", err)
			}
			updateCmd.IncludeDate = &parsed
		}

		ctx := cmd.Context()
		if err := app.UpdateEntryHandler.Handle(ctx, updateCmd); err != nil {
			return fmt.Errorf("failed to update timetable entry: %w", err)
		}

		fmt.Printf("Timetable entry updated: %s\n", entryID)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateDays, "days", "", "new weekdays, comma separated (1=Monday .. 7=Sunday)")
	updateCmd.Flags().StringVar(&updateStart, "start", "", "new start time (HH:mm)")
	updateCmd.Flags().StringVar(&updateEnd, "end", "", "new end time (HH:mm)")
	updateCmd.Flags().StringVar(&updateCode, "code", "", "new course code")
	updateCmd.Flags().StringVar(&updateInstructor, "instructor", "", "new instructor")
	updateCmd.Flags().StringVar(&updateRoom, "room", "", "new room")
	updateCmd.Flags().StringVar(&updateColor, "color", "", "new display color")
	updateCmd.Flags().StringVar(&updateCategory, "category", "", "new category")
	updateCmd.Flags().StringVar(&updateSemesterStart, "semester-start", "", "new semester start (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&updateSemesterEnd, "semester-end", "", "new semester end (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&skipDate, "skip", "", "exclude one date (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&unskipDate, "unskip", "", "restore an excluded date (YYYY-MM-DD)")
}
