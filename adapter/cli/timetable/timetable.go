package timetable

import (
	"github.com/spf13/cobra"
)

// Cmd is the timetable command group
var Cmd = &cobra.Command{
	Use:     "timetable",
	Short:   "Manage your recurring class schedule",
	Long:    `Add, list, and update recurring lectures, and track attendance.`,
	Aliases: []string{"tt"},
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(dayCmd)
	Cmd.AddCommand(attendCmd)
	Cmd.AddCommand(unattendCmd)
	Cmd.AddCommand(attendanceCmd)
	Cmd.AddCommand(statsCmd)
}
