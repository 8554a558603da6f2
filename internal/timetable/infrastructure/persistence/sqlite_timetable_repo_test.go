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

	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

// setupSQLiteTestDB creates an in-memory SQLite database with the schema applied.
func setupSQLiteTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, CreateSQLiteTimetableSchema(context.Background(), sqlDB))

	return sqlDB
}

func TestSQLiteEntryRepository_SaveAndFind(t *testing.T) {
	sqlDB := setupSQLiteTestDB(t)
	repo := NewSQLiteEntryRepository(sqlDB)
	ctx := context.Background()

	userID := uuid.New()
	entry, err := domain.NewTimetableEntry(userID, "Algorithms", []int{1, 3}, "10:00", "11:30")
	require.NoError(t, err)
	entry.SetDetails("CS301", "Dr. Okafor", "B2.101", "#ff8800", "core")
	semStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	semEnd := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	require.NoError(t, entry.SetSemester(&semStart, &semEnd))
	entry.ExcludeDate(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	require.NoError(t, repo.Save(ctx, entry))

	found, err := repo.FindByID(ctx, entry.ID())
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", found.CourseName())
	assert.Equal(t, "CS301", found.CourseCode())
	assert.Equal(t, "Dr. Okafor", found.Instructor())
	assert.Equal(t, []int{1, 3}, found.DaysOfWeek())
	assert.Equal(t, "10:00", found.StartTime())
	assert.Equal(t, "11:30", found.EndTime())
	require.NotNil(t, found.SemesterStart())
	assert.True(t, found.SemesterStart().Equal(semStart))
	assert.Equal(t, []string{"2026-03-02"}, found.ExcludedDates())

	// Rehydrated entries still expand occurrences.
	_, _, ok := found.OccurrencesOn(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok, "excluded date survives the roundtrip")
	start, _, ok := found.OccurrencesOn(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC), start)
}

func TestSQLiteEntryRepository_SaveUpdate(t *testing.T) {
	sqlDB := setupSQLiteTestDB(t)
	repo := NewSQLiteEntryRepository(sqlDB)
	ctx := context.Background()

	entry, err := domain.NewTimetableEntry(uuid.New(), "Statistics", []int{2}, "09:00", "10:00")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, entry))

	require.NoError(t, entry.SetSchedule([]int{2, 4}, "09:15", "10:15"))
	require.NoError(t, repo.Save(ctx, entry))

	found, err := repo.FindByID(ctx, entry.ID())
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, found.DaysOfWeek())
	assert.Equal(t, "09:15", found.StartTime())
}

func TestSQLiteEntryRepository_FindByUserID(t *testing.T) {
	sqlDB := setupSQLiteTestDB(t)
	repo := NewSQLiteEntryRepository(sqlDB)
	ctx := context.Background()

	userID := uuid.New()
	for _, course := range []string{"Statistics", "Algorithms"} {
		entry, err := domain.NewTimetableEntry(userID, course, []int{1}, "10:00", "11:00")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, entry))
	}
	other, err := domain.NewTimetableEntry(uuid.New(), "Botany", []int{1}, "10:00", "11:00")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	entries, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Algorithms", entries[0].CourseName(), "ordered by course name")
}

func TestSQLiteEntryRepository_Delete(t *testing.T) {
	sqlDB := setupSQLiteTestDB(t)
	repo := NewSQLiteEntryRepository(sqlDB)
	ctx := context.Background()

	entry, err := domain.NewTimetableEntry(uuid.New(), "Algorithms", []int{1}, "10:00", "11:00")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, entry))

	require.NoError(t, repo.Delete(ctx, entry.ID()))

	_, err = repo.FindByID(ctx, entry.ID())
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, entry.ID()), ErrEntryNotFound)
}

func TestSQLiteAttendanceRepository(t *testing.T) {
	sqlDB := setupSQLiteTestDB(t)
	repo := NewSQLiteAttendanceRepository(sqlDB)
	ctx := context.Background()

	userID := uuid.New()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	record := func(t *testing.T, course string, date time.Time, status domain.AttendanceStatus) *domain.AttendanceRecord {
		t.Helper()
		r, err := domain.NewAttendanceRecord(userID, course, date, status, "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, r))
		return r
	}

	first := record(t, "Algorithms", date, domain.StatusPresent)
	record(t, "Algorithms", date.AddDate(0, 0, 2), domain.StatusAbsent)
	record(t, "Statistics", date.AddDate(0, 0, 1), domain.StatusLate)

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, first.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPresent, found.Status())
		assert.True(t, found.Date().Equal(date))
	})

	t.Run("find by user newest first", func(t *testing.T) {
		records, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "Algorithms", records[0].CourseName())
		assert.True(t, records[0].Date().After(records[2].Date()))
	})

	t.Run("find by course", func(t *testing.T) {
		records, err := repo.FindByCourse(ctx, userID, "Statistics")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, domain.StatusLate, records[0].Status())
	})

	t.Run("find by date range", func(t *testing.T) {
		records, err := repo.FindByDateRange(ctx, userID, date, date.AddDate(0, 0, 2))
		require.NoError(t, err)
		assert.Len(t, records, 2, "end of range is exclusive")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, first.ID()))
		_, err := repo.FindByID(ctx, first.ID())
		assert.ErrorIs(t, err, ErrAttendanceNotFound)
	})
}
