package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/studora/adapter/cli"
	"github.com/felixgeelhaar/studora/adapter/cli/insights"
	"github.com/felixgeelhaar/studora/adapter/cli/item"
	"github.com/felixgeelhaar/studora/adapter/cli/plan"
	cliSettings "github.com/felixgeelhaar/studora/adapter/cli/settings"
	"github.com/felixgeelhaar/studora/adapter/cli/timetable"
	"github.com/felixgeelhaar/studora/internal/app"
	"github.com/felixgeelhaar/studora/pkg/config"
	"github.com/google/uuid"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// In development without .env, use defaults
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{
			AppEnv:      "development",
			LocalMode:   true,
			LocalDBPath: ":memory:",
			UserID:      "00000000-0000-0000-0000-000000000001",
		}
	}

	// Update logger level based on config
	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	cli.SetLogger(logger)

	// Initialize the container: local mode runs against an embedded SQLite
	// database with no external services, otherwise the full stack is wired.
	var (
		container *app.Container
		cliApp    *cli.App
	)
	if cfg.LocalMode {
		container, err = app.NewLocalContainer(ctx, cfg, logger)
	} else {
		container, err = app.NewContainer(ctx, cfg, logger)
	}
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
			// In development, allow CLI to run without database
			cliApp = nil
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		// Start outbox processor in background (optional in CLI)
		if cfg.OutboxProcessorEnabled && container.OutboxProcessor != nil {
			go container.OutboxProcessor.Start(ctx)
		} else {
			logger.Info("outbox processor disabled in CLI")
		}

		// Create CLI app with handlers
		cliApp = cli.NewApp(
			container.CreateItemHandler,
			container.UpdateItemHandler,
			container.CompleteItemHandler,
			container.DeleteItemHandler,
			container.GetItemHandler,
			container.ListItemsHandler,
			container.GeneratePlanHandler,
			container.ScheduleDayHandler,
			container.ListSessionsHandler,
			container.FreeTimeHandler,
			container.AddEntryHandler,
			container.UpdateEntryHandler,
			container.DeleteEntryHandler,
			container.RecordAttendanceHandler,
			container.DeleteAttendanceHandler,
			container.ListEntriesHandler,
			container.DayScheduleHandler,
			container.ListAttendanceHandler,
			container.AttendanceStatsHandler,
			container.DayWorkloadHandler,
			container.ProcrastinationHandler,
			container.BurnoutHandler,
			container.SummaryHandler,
		)

		userID, err := uuid.Parse(cfg.UserID)
		if err != nil {
			logger.Error("invalid STUDORA_USER_ID", "error", err)
			os.Exit(1)
		}
		cliApp.SetCurrentUserID(userID)

		if container.SettingsService != nil {
			cliApp.SetSettingsService(container.SettingsService)
		}
	}

	// Set the CLI app
	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(item.Cmd)
	cli.AddCommand(plan.Cmd)
	cli.AddCommand(timetable.Cmd)
	cli.AddCommand(insights.Cmd)
	cli.AddCommand(cliSettings.Cmd)

	// Execute CLI
	cli.Execute()
}
