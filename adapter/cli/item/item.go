package item

import (
	"github.com/spf13/cobra"
)

// Cmd is the item command group
var Cmd = &cobra.Command{
	Use:   "item",
	Short: "Manage agenda items",
	Long:  `Create, list, complete, and manage your assignments, exams, and other work.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(completeCmd)
	Cmd.AddCommand(deleteCmd)
}
