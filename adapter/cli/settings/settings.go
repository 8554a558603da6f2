package settings

import (
	"fmt"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/spf13/cobra"
)

// Cmd is the settings command group
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage plan settings",
	Long:  `Show and change the sleep window and session length used for planning.`,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current plan settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SettingsService == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		s, err := app.SettingsService.Get(ctx, app.CurrentUserID)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		fmt.Println("Plan settings:")
		fmt.Printf("  Sleep window:   %s - %s\n", s.SleepStart, s.SleepEnd)
		fmt.Printf("  Session length: %d min\n", s.SessionLengthMin)

		return nil
	},
}

var (
	sleepStart    string
	sleepEnd      string
	sessionLength int
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change plan settings",
	Long: `Change the sleep window or default session length. Only the flags
you set are changed.

Examples:
  studora settings set --sleep-start 00:30 --sleep-end 08:00
  studora settings set --session-length 45`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SettingsService == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		s, err := app.SettingsService.Get(ctx, app.CurrentUserID)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		if cmd.Flags().Changed("sleep-start") {
			s.SleepStart = sleepStart
		}
		if cmd.Flags().Changed("sleep-end") {
			s.SleepEnd = sleepEnd
		}
		if cmd.Flags().Changed("session-length") {
			s.SessionLengthMin = sessionLength
		}

		if err := app.SettingsService.Update(ctx, app.CurrentUserID, s); err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}

		fmt.Println("Settings updated.")
		fmt.Printf("  Sleep window:   %s - %s\n", s.SleepStart, s.SleepEnd)
		fmt.Printf("  Session length: %d min\n", s.SessionLengthMin)

		return nil
	},
}

func init() {
	setCmd.Flags().StringVar(&sleepStart, "sleep-start", "", "sleep window start (HH:mm)")
	setCmd.Flags().StringVar(&sleepEnd, "sleep-end", "", "sleep window end (HH:mm)")
	setCmd.Flags().IntVar(&sessionLength, "session-length", 0, "default session length in minutes")

	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(setCmd)
}
