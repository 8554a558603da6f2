package item

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/agenda/application/queries"
	"github.com/spf13/cobra"
)

var (
	showAll        bool
	showCompleted  bool
	filterType     string
	filterCategory string
	overdue        bool
	dueBefore      string
	sortBy         string
	limit          int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List agenda items",
	Long: `List agenda items with optional filtering and sorting.

Filter Options:
  --type        Filter by type (assignment, exam, class, meeting, other)
  --category    Filter by category
  --overdue     Show only items past their deadline
  --due-before  Show items due before date (YYYY-MM-DD)

Examples:
  studora item list                     # Open items
  studora item list --all               # All items including completed
  studora item list --type exam         # Only exams
  studora item list --overdue           # Items past their deadline
  studora item list --sort deadline -n 5`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListItemsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		query := queries.ListItemsQuery{
			UserID:         app.CurrentUserID,
			Classification: filterType,
			Category:       filterCategory,
			Overdue:        overdue,
			SortBy:         sortBy,
			Limit:          limit,
		}

		// Open items only, unless told otherwise.
		if showCompleted {
			completed := true
			query.Completed = &completed
		} else if !showAll {
			completed := false
			query.Completed = &completed
		}

		if dueBefore != "" {
			t, err := time.ParseInLocation("2006-01-02", dueBefore, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --due-before format, use YYYY-MM-DD: %w", err)
			}
			query.DueBefore = &t
		}

		ctx := cmd.Context()
		items, err := app.ListItemsHandler.Handle(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to list items: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("No items found.")
			return nil
		}

		fmt.Printf("Items (%d):\n", len(items))
		fmt.Println(strings.Repeat("-", 60))

		now := time.Now()
		for _, it := range items {
			statusIcon := "[ ]"
			if it.Completed {
				statusIcon = "[x]"
			}
			priorityBadge := getPriorityBadge(it.Priority)

			dueMarker := ""
			if it.Deadline != nil && !it.Completed {
				if it.Deadline.Before(now) {
					dueMarker = " [OVERDUE]"
				} else if sameDay(*it.Deadline, now) {
					dueMarker = " [TODAY]"
				}
			}

			fmt.Printf("%s %s %s%s\n", statusIcon, it.Title, priorityBadge, dueMarker)
			fmt.Printf("   ID: %s\n", it.ID.String()[:8])
			fmt.Printf("   Type: %s\n", it.Classification)

			if it.Category != "" {
				fmt.Printf("   Category: %s\n", it.Category)
			}
			if it.DurationMinutes > 0 {
				fmt.Printf("   Duration: %d min\n", it.DurationMinutes)
			}
			if it.Deadline != nil {
				fmt.Printf("   Due: %s\n", it.Deadline.Format("2006-01-02 15:04"))
			}
			if it.StartTime != nil && it.EndTime != nil {
				fmt.Printf("   Fixed: %s - %s\n",
					it.StartTime.Format("2006-01-02 15:04"),
					it.EndTime.Format("15:04"),
				)
			}
			fmt.Println()
		}

		return nil
	},
}

func getPriorityBadge(priority string) string {
	switch priority {
	case "high":
		return "(!)"
	case "medium":
		return "(~)"
	case "low":
		return "(.)"
	default:
		return ""
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func init() {
	// Status filters
	listCmd.Flags().BoolVarP(&showAll, "all", "a", false, "show all items including completed")
	listCmd.Flags().BoolVar(&showCompleted, "completed", false, "show only completed items")

	// Classification filters
	listCmd.Flags().StringVarP(&filterType, "type", "t", "", "filter by type (assignment, exam, class, meeting, other)")
	listCmd.Flags().StringVar(&filterCategory, "category", "", "filter by category")

	// Deadline filters
	listCmd.Flags().BoolVar(&overdue, "overdue", false, "show only items past their deadline")
	listCmd.Flags().StringVar(&dueBefore, "due-before", "", "show items due before date (YYYY-MM-DD)")

	// Sorting and limit
	listCmd.Flags().StringVar(&sortBy, "sort", "", "sort by field (deadline, priority, created_at)")
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "max number of items to show (0 = no limit)")
}
