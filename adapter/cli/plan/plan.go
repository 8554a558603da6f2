package plan

import (
	"github.com/spf13/cobra"
)

// Cmd is the plan command group
var Cmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and inspect study plans",
	Long:  `Generate a full study plan, fill a single day, and list planned sessions.`,
}

func init() {
	Cmd.AddCommand(generateCmd)
	Cmd.AddCommand(dayCmd)
	Cmd.AddCommand(sessionsCmd)
	Cmd.AddCommand(freeCmd)
}
