package plan

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/internal/planning/application/commands"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a fresh study plan",
	Long: `Generate a fresh study plan for all open work. Existing future
planned sessions are cleared first, then every unfinished item is
chunked into dated study sessions around your sleep window.

Examples:
  studora plan generate`,
	Aliases: []string{"gen"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GeneratePlanHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		result, err := app.GeneratePlanHandler.Handle(ctx, commands.GeneratePlanCommand{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to generate plan: %w", err)
		}

		if result.Cleared > 0 {
			fmt.Printf("Cleared %d stale planned sessions.\n", result.Cleared)
		}
		if len(result.Sessions) == 0 {
			fmt.Println("Nothing to plan - no open items with remaining work.")
			return nil
		}

		fmt.Printf("Planned %d study sessions:\n", len(result.Sessions))
		fmt.Println(strings.Repeat("-", 60))

		lastDay := ""
		for _, s := range result.Sessions {
			day := s.StartTime().Format("Mon 2006-01-02")
			if day != lastDay {
				fmt.Printf("\n%s\n", day)
				lastDay = day
			}
			fmt.Printf("  %s - %s  (%d min)\n",
				s.StartTime().Format("15:04"),
				s.EndTime().Format("15:04"),
				s.Minutes(),
			)
			if s.Rationale() != "" {
				fmt.Printf("    %s\n", s.Rationale())
			}
		}

		return nil
	},
}
