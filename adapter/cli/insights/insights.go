package insights

import (
	"github.com/spf13/cobra"
)

// Cmd is the insights command group
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Workload and study behavior analytics",
	Long:  `Inspect daily workload, procrastination, burnout risk, and overall progress.`,
}

func init() {
	Cmd.AddCommand(workloadCmd)
	Cmd.AddCommand(procrastinationCmd)
	Cmd.AddCommand(burnoutCmd)
	Cmd.AddCommand(summaryCmd)
}
