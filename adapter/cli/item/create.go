package item

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/agenda/application/commands"
	"github.com/spf13/cobra"
)

var (
	classification string
	category       string
	priority       string
	important      bool
	description    string
	duration       int
	deadline       string
	startAt        string
	endAt          string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new agenda item",
	Long: `Create a new agenda item with a title and optional properties.

Examples:
  studora item create "Linear Algebra problem set" --due 2026-03-10 -d 90
  studora item create "Statistics midterm" -t exam --due 2026-03-20 -p high
  studora item create "Department colloquium" -t class --from "2026-03-05 14:00" --to "2026-03-05 16:00"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateItemHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		title := args[0]

		createCmd := commands.CreateItemCommand{
			UserID:          app.CurrentUserID,
			Title:           title,
			Description:     description,
			Classification:  classification,
			Category:        category,
			Priority:        priority,
			Important:       important,
			DurationMinutes: duration,
		}

		if deadline != "" {
			parsed, err := parseDayOrInstant(deadline)
			if err != nil {
				return fmt.Errorf("invalid due date format (use YYYY-MM-DD): %w", err)
			}
			createCmd.Deadline = &parsed
		}
		if startAt != "" {
			parsed, err := time.ParseInLocation("2006-01-02 15:04", startAt, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --from format (use \"YYYY-MM-DD HH:mm\"): %w", err)
			}
			createCmd.StartTime = &parsed
		}
		if endAt != "" {
			parsed, err := time.ParseInLocation("2006-01-02 15:04", endAt, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --to format (use \"YYYY-MM-DD HH:mm\"): %w", err)
			}
			createCmd.EndTime = &parsed
		}

		ctx := cmd.Context()
		result, err := app.CreateItemHandler.Handle(ctx, createCmd)
		if err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}

		fmt.Printf("Item created: %s\n", result.ItemID)
		fmt.Printf("  title: %s\n", title)
		if classification != "" {
			fmt.Printf("  type: %s\n", classification)
		}
		if priority != "" {
			fmt.Printf("  priority: %s\n", priority)
		}
		if duration > 0 {
			fmt.Printf("  duration: %d minutes\n", duration)
		}
		if deadline != "" {
			fmt.Printf("  due: %s\n", deadline)
		}

		return nil
	},
}

// parseDayOrInstant accepts a bare date or a date with a clock time.
func parseDayOrInstant(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	// A bare date means end of that day.
	return t.Add(24*time.Hour - time.Minute), nil
}

func init() {
	createCmd.Flags().StringVarP(&classification, "type", "t", "", "item type (assignment, exam, class, meeting, other)")
	createCmd.Flags().StringVar(&category, "category", "", "free-form category, e.g. a course name")
	createCmd.Flags().StringVarP(&priority, "priority", "p", "", "item priority (low, medium, high)")
	createCmd.Flags().BoolVar(&important, "important", false, "mark the item as important")
	createCmd.Flags().StringVar(&description, "description", "", "item description")
	createCmd.Flags().IntVarP(&duration, "duration", "d", 0, "estimated duration in minutes")
	createCmd.Flags().StringVar(&deadline, "due", "", "deadline (YYYY-MM-DD or \"YYYY-MM-DD HH:mm\")")
	createCmd.Flags().StringVar(&startAt, "from", "", "fixed start (\"YYYY-MM-DD HH:mm\")")
	createCmd.Flags().StringVar(&endAt, "to", "", "fixed end (\"YYYY-MM-DD HH:mm\")")
}
