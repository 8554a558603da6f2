package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

func TestNewTimetableEntry(t *testing.T) {
	userID := uuid.New()

	t.Run("creates a valid entry", func(t *testing.T) {
		entry, err := domain.NewTimetableEntry(userID, "Algorithms", []int{1, 3}, "10:00", "11:30")

		require.NoError(t, err)
		assert.Equal(t, "Algorithms", entry.CourseName())
		assert.Equal(t, []int{1, 3}, entry.DaysOfWeek())
		assert.NotEqual(t, uuid.Nil, entry.ID())
	})

	t.Run("rejects empty course name", func(t *testing.T) {
		_, err := domain.NewTimetableEntry(userID, "  ", []int{1}, "10:00", "11:00")
		assert.ErrorIs(t, err, domain.ErrEmptyCourseName)
	})

	t.Run("rejects out-of-range weekday", func(t *testing.T) {
		_, err := domain.NewTimetableEntry(userID, "Algorithms", []int{0}, "10:00", "11:00")
		assert.ErrorIs(t, err, domain.ErrInvalidDayOfWeek)

		_, err = domain.NewTimetableEntry(userID, "Algorithms", []int{8}, "10:00", "11:00")
		assert.ErrorIs(t, err, domain.ErrInvalidDayOfWeek)
	})

	t.Run("rejects malformed clock times", func(t *testing.T) {
		_, err := domain.NewTimetableEntry(userID, "Algorithms", []int{1}, "25:00", "26:00")
		assert.ErrorIs(t, err, domain.ErrInvalidClockTime)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := domain.NewTimetableEntry(userID, "Algorithms", []int{1}, "11:00", "10:00")
		assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
	})
}

func TestTimetableEntryOccurrencesOn(t *testing.T) {
	userID := uuid.New()
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	newEntry := func(t *testing.T, days []int) *domain.TimetableEntry {
		t.Helper()
		entry, err := domain.NewTimetableEntry(userID, "Algorithms", days, "10:00", "11:30")
		require.NoError(t, err)
		return entry
	}

	t.Run("expands a matching weekday to a dated block", func(t *testing.T) {
		entry := newEntry(t, []int{1})

		start, end, ok := entry.OccurrencesOn(monday)

		require.True(t, ok)
		assert.Equal(t, monday.Add(10*time.Hour), start)
		assert.Equal(t, monday.Add(11*time.Hour+30*time.Minute), end)
	})

	t.Run("sunday maps to ISO day seven", func(t *testing.T) {
		entry := newEntry(t, []int{7})

		_, _, ok := entry.OccurrencesOn(sunday)
		assert.True(t, ok)

		_, _, ok = entry.OccurrencesOn(monday)
		assert.False(t, ok)
	})

	t.Run("skips excluded dates", func(t *testing.T) {
		entry := newEntry(t, []int{1})
		entry.ExcludeDate(monday)

		_, _, ok := entry.OccurrencesOn(monday)
		assert.False(t, ok)

		entry.IncludeDate(monday)
		_, _, ok = entry.OccurrencesOn(monday)
		assert.True(t, ok)
	})

	t.Run("skips dates outside the semester", func(t *testing.T) {
		entry := newEntry(t, []int{1})
		semStart := monday.AddDate(0, 0, 7)
		semEnd := monday.AddDate(0, 0, 60)
		require.NoError(t, entry.SetSemester(&semStart, &semEnd))

		_, _, ok := entry.OccurrencesOn(monday)
		assert.False(t, ok, "before semester start")

		_, _, ok = entry.OccurrencesOn(monday.AddDate(0, 0, 7))
		assert.True(t, ok, "first Monday of the semester")

		_, _, ok = entry.OccurrencesOn(monday.AddDate(0, 0, 63))
		assert.False(t, ok, "after semester end")
	})

	t.Run("semester bounds are inclusive of their own day", func(t *testing.T) {
		entry := newEntry(t, []int{1})
		// Bound instants mid-day: the whole bounding day still counts.
		semStart := monday.Add(15 * time.Hour)
		semEnd := monday.Add(18 * time.Hour)
		require.NoError(t, entry.SetSemester(&semStart, &semEnd))

		_, _, ok := entry.OccurrencesOn(monday)
		assert.True(t, ok)
	})

	t.Run("any instant of the day matches", func(t *testing.T) {
		entry := newEntry(t, []int{1})

		start, _, ok := entry.OccurrencesOn(monday.Add(23 * time.Hour))

		require.True(t, ok)
		assert.Equal(t, monday.Add(10*time.Hour), start)
	})
}

func TestTimetableEntrySetSemester(t *testing.T) {
	entry, err := domain.NewTimetableEntry(uuid.New(), "Algorithms", []int{1}, "10:00", "11:00")
	require.NoError(t, err)

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	assert.ErrorIs(t, entry.SetSemester(&start, &end), domain.ErrInvalidSemester)
}
