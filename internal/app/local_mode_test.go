package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	agendaCommands "github.com/felixgeelhaar/studora/internal/agenda/application/commands"
	agendaQueries "github.com/felixgeelhaar/studora/internal/agenda/application/queries"
	planCommands "github.com/felixgeelhaar/studora/internal/planning/application/commands"
	planQueries "github.com/felixgeelhaar/studora/internal/planning/application/queries"
	timetableCommands "github.com/felixgeelhaar/studora/internal/timetable/application/commands"
	timetableQueries "github.com/felixgeelhaar/studora/internal/timetable/application/queries"
	"github.com/felixgeelhaar/studora/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLocalModeContainer tests that a local mode container can be created and used.
func TestLocalModeContainer(t *testing.T) {
	container, _, _ := setupLocalModeContainer(t)
	defer container.Close()

	// Local mode runs on SQLite only
	assert.NotNil(t, container.LocalDB)
	assert.Nil(t, container.DB)

	// Verify repositories are created
	assert.NotNil(t, container.ItemRepo)
	assert.NotNil(t, container.SessionRepo)
	assert.NotNil(t, container.SettingsRepo)
	assert.NotNil(t, container.EntryRepo)
	assert.NotNil(t, container.AttendanceRepo)
	assert.NotNil(t, container.OutboxRepo)

	// Verify handlers are created
	assert.NotNil(t, container.CreateItemHandler)
	assert.NotNil(t, container.ListItemsHandler)
	assert.NotNil(t, container.GeneratePlanHandler)
	assert.NotNil(t, container.ScheduleDayHandler)
	assert.NotNil(t, container.DayWorkloadHandler)
	assert.NotNil(t, container.AddEntryHandler)
	assert.NotNil(t, container.SettingsService)
}

// TestLocalModeItemWorkflow tests creating, listing and completing items in local mode.
func TestLocalModeItemWorkflow(t *testing.T) {
	container, ctx, userID := setupLocalModeContainer(t)
	defer container.Close()

	deadline := time.Now().Add(72 * time.Hour).UTC()
	cmd := agendaCommands.CreateItemCommand{
		UserID:          userID,
		Title:           "Calculus problem set",
		Classification:  "assignment",
		Priority:        "high",
		Deadline:        &deadline,
		DurationMinutes: 90,
	}

	result, err := container.CreateItemHandler.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEqual(t, uuid.Nil, result.ItemID)

	items, err := container.ListItemsHandler.Handle(ctx, agendaQueries.ListItemsQuery{UserID: userID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Calculus problem set", items[0].Title)
	assert.Equal(t, "high", items[0].Priority)

	err = container.CompleteItemHandler.Handle(ctx, agendaCommands.CompleteItemCommand{
		ItemID: result.ItemID,
		UserID: userID,
	})
	require.NoError(t, err)

	completed := true
	after, err := container.ListItemsHandler.Handle(ctx, agendaQueries.ListItemsQuery{
		UserID:    userID,
		Completed: &completed,
	})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.True(t, after[0].Completed)
}

// TestLocalModePlanWorkflow generates a study plan end to end on SQLite.
func TestLocalModePlanWorkflow(t *testing.T) {
	container, ctx, userID := setupLocalModeContainer(t)
	defer container.Close()

	deadline := time.Now().Add(96 * time.Hour).UTC()
	_, err := container.CreateItemHandler.Handle(ctx, agendaCommands.CreateItemCommand{
		UserID:          userID,
		Title:           "Exam prep",
		Classification:  "exam",
		Deadline:        &deadline,
		DurationMinutes: 120,
	})
	require.NoError(t, err)

	plan, err := container.GeneratePlanHandler.Handle(ctx, planCommands.GeneratePlanCommand{UserID: userID})
	require.NoError(t, err)
	require.NotEmpty(t, plan.Sessions)

	sessions, err := container.ListSessionsHandler.Handle(ctx, planQueries.ListSessionsQuery{
		UserID: userID,
		From:   time.Now().Add(-time.Hour),
		To:     deadline.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Len(t, sessions, len(plan.Sessions))
}

// TestLocalModeTimetableWorkflow adds a recurring lecture and checks the day view.
func TestLocalModeTimetableWorkflow(t *testing.T) {
	container, ctx, userID := setupLocalModeContainer(t)
	defer container.Close()

	entry, err := container.AddEntryHandler.Handle(ctx, timetableCommands.AddEntryCommand{
		UserID:     userID,
		CourseName: "Linear Algebra",
		DaysOfWeek: []int{1, 3},
		StartTime:  "10:00",
		EndTime:    "12:00",
	})
	require.NoError(t, err)
	require.NotNil(t, entry)

	// Next Monday always carries the lecture.
	day := time.Now()
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	occurrences, err := container.DayScheduleHandler.Handle(ctx, timetableQueries.DayScheduleQuery{
		UserID: userID,
		Date:   day,
	})
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, "Linear Algebra", occurrences[0].CourseName)
}

// TestLocalModeOutboxWorkflow tests outbox persistence in local mode.
func TestLocalModeOutboxWorkflow(t *testing.T) {
	container, ctx, userID := setupLocalModeContainer(t)
	defer container.Close()

	require.NotNil(t, container.OutboxRepo)

	// Creating an item writes its event through the outbox.
	_, err := container.CreateItemHandler.Handle(ctx, agendaCommands.CreateItemCommand{
		UserID:         userID,
		Title:          "Read chapter 4",
		Classification: "assignment",
	})
	require.NoError(t, err)

	messages, err := container.OutboxRepo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, messages)
}

// setupLocalModeContainer creates a test local mode container.
func setupLocalModeContainer(t *testing.T) (*Container, context.Context, uuid.UUID) {
	t.Helper()

	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	userID := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	cfg := &config.Config{
		AppEnv:      "test",
		LocalMode:   true,
		LocalDBPath: dbPath,
		UserID:      userID.String(),
	}

	// Only log errors in tests
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	ctx := context.Background()

	container, err := NewLocalContainer(ctx, cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, container)

	return container, ctx, userID
}
