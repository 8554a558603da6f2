package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/felixgeelhaar/studora/internal/planning/domain"
)

func setupSQLiteTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, CreateSQLiteSessionSchema(context.Background(), sqlDB))

	return sqlDB
}

func sessionAt(t *testing.T, userID uuid.UUID, hour int, minutes int) *domain.StudySession {
	t.Helper()
	start := time.Date(2026, 3, 2, hour, 0, 0, 0, time.UTC)
	s, err := domain.NewStudySession(userID, uuid.New(), start,
		start.Add(time.Duration(minutes)*time.Minute), domain.StatusPlanned)
	require.NoError(t, err)
	return s
}

func TestSQLiteSessionRepository_SaveAndFind(t *testing.T) {
	repo := NewSQLiteSessionRepository(setupSQLiteTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	s := sessionAt(t, userID, 9, 60)
	s.SetRationale("Deadline is close, highly prioritized.")

	require.NoError(t, repo.Save(ctx, s))

	found, err := repo.FindByID(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, s.ID(), found.ID())
	assert.Equal(t, userID, found.UserID())
	assert.Equal(t, domain.StatusPlanned, found.Status())
	assert.Equal(t, 60, found.Minutes())
	assert.Equal(t, "Deadline is close, highly prioritized.", found.Rationale())
}

func TestSQLiteSessionRepository_FindByID_NotFound(t *testing.T) {
	repo := NewSQLiteSessionRepository(setupSQLiteTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSQLiteSessionRepository_UnscheduledRoundTrip(t *testing.T) {
	repo := NewSQLiteSessionRepository(setupSQLiteTestDB(t))
	ctx := context.Background()

	marker, err := domain.NewUnscheduledSession(uuid.New(), uuid.New(), 45)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, marker))

	found, err := repo.FindByID(ctx, marker.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnscheduled, found.Status())
	assert.Equal(t, 45, found.UnmetMinutes())
	assert.Equal(t, 0, found.Minutes())
}

func TestSQLiteSessionRepository_FindByUserAndRange(t *testing.T) {
	repo := NewSQLiteSessionRepository(setupSQLiteTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	inRange := sessionAt(t, userID, 9, 60)
	require.NoError(t, repo.Save(ctx, inRange))

	nextDay, err := domain.NewStudySession(userID, uuid.New(),
		day.Add(33*time.Hour), day.Add(34*time.Hour), domain.StatusPlanned)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, nextDay))

	foreign := sessionAt(t, uuid.New(), 10, 60)
	require.NoError(t, repo.Save(ctx, foreign))

	found, err := repo.FindByUserAndRange(ctx, userID, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, inRange.ID(), found[0].ID())
}

func TestSQLiteSessionRepository_DeleteFuturePlanned(t *testing.T) {
	repo := NewSQLiteSessionRepository(setupSQLiteTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	past := sessionAt(t, userID, 9, 60)
	require.NoError(t, repo.Save(ctx, past))

	future := sessionAt(t, userID, 15, 60)
	require.NoError(t, repo.Save(ctx, future))

	held := sessionAt(t, userID, 16, 60)
	held.MarkCompleted()
	require.NoError(t, repo.Save(ctx, held))

	deleted, err := repo.DeleteFuturePlanned(ctx, userID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.FindByID(ctx, future.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Past planned and completed sessions survive the clear.
	_, err = repo.FindByID(ctx, past.ID())
	assert.NoError(t, err)
	_, err = repo.FindByID(ctx, held.ID())
	assert.NoError(t, err)
}

func TestSQLiteSessionRepository_CountPlannedEndedBefore(t *testing.T) {
	repo := NewSQLiteSessionRepository(setupSQLiteTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	cutoff := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	ended := sessionAt(t, userID, 9, 60)
	require.NoError(t, repo.Save(ctx, ended))

	upcoming := sessionAt(t, userID, 14, 60)
	require.NoError(t, repo.Save(ctx, upcoming))

	count, err := repo.CountPlannedEndedBefore(ctx, userID, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
