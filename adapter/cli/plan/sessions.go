package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/planning/application/queries"
	"github.com/spf13/cobra"
)

var (
	sessionsFrom string
	sessionsTo   string
	sessionsDays int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List planned study sessions",
	Long: `List planned study sessions in a date range.

Examples:
  studora plan sessions                 # next 7 days
  studora plan sessions --days 14
  studora plan sessions --from 2026-03-09 --to 2026-03-13`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListSessionsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		now := time.Now()
		from := now
		to := now.AddDate(0, 0, sessionsDays)

		if sessionsFrom != "" {
			parsed, err := time.ParseInLocation("2006-01-02", sessionsFrom, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --from format, use YYYY-MM-DD: %w", err)
			}
			from = parsed
		}
		if sessionsTo != "" {
			parsed, err := time.ParseInLocation("2006-01-02", sessionsTo, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --to format, use YYYY-MM-DD: %w", err)
			}
			// Endpoint day counts in full.
			to = parsed.AddDate(0, 0, 1)
		}

		ctx := cmd.Context()
		sessions, err := app.ListSessionsHandler.Handle(ctx, queries.ListSessionsQuery{
			UserID: app.CurrentUserID,
			From:   from,
			To:     to,
		})
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No planned sessions in this range.")
			return nil
		}

		fmt.Printf("Sessions (%d):\n", len(sessions))
		fmt.Println(strings.Repeat("-", 60))

		lastDay := ""
		for _, s := range sessions {
			day := s.StartTime.Format("Mon 2006-01-02")
			if day != lastDay {
				fmt.Printf("\n%s\n", day)
				lastDay = day
			}
			fmt.Printf("  %s - %s  (%d min, %s)\n",
				s.StartTime.Format("15:04"),
				s.EndTime.Format("15:04"),
				s.Minutes,
				s.Status,
			)
			if s.Rationale != "" {
				fmt.Printf("    %s\n", s.Rationale)
			}
		}

		return nil
	},
}

func init() {
	sessionsCmd.Flags().StringVar(&sessionsFrom, "from", "", "range start (YYYY-MM-DD, default today)")
	sessionsCmd.Flags().StringVar(&sessionsTo, "to", "", "range end, inclusive (YYYY-MM-DD)")
	sessionsCmd.Flags().IntVar(&sessionsDays, "days", 7, "days ahead when --to is not set")
}
