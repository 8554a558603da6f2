package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

type stubEntryRepo struct {
	entries []*domain.TimetableEntry
}

func (s *stubEntryRepo) Save(context.Context, *domain.TimetableEntry) error { return nil }
func (s *stubEntryRepo) FindByID(context.Context, uuid.UUID) (*domain.TimetableEntry, error) {
	return nil, nil
}
func (s *stubEntryRepo) FindByUserID(context.Context, uuid.UUID) ([]*domain.TimetableEntry, error) {
	return s.entries, nil
}
func (s *stubEntryRepo) Delete(context.Context, uuid.UUID) error { return nil }

func TestTimetableBusySource_BusyIntervalsIn(t *testing.T) {
	userID := uuid.New()
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	entry, err := domain.NewTimetableEntry(userID, "Algorithms", []int{1}, "10:00", "11:30")
	require.NoError(t, err)
	source := NewTimetableBusySource(&stubEntryRepo{entries: []*domain.TimetableEntry{entry}})

	t.Run("expands the day's occurrence", func(t *testing.T) {
		busy, err := source.BusyIntervalsIn(context.Background(), userID, monday, monday.AddDate(0, 0, 1))

		require.NoError(t, err)
		require.Len(t, busy, 1)
		assert.Equal(t, monday.Add(10*time.Hour), busy[0].Start)
		assert.Equal(t, monday.Add(11*time.Hour+30*time.Minute), busy[0].End)
	})

	t.Run("clips to a mid-day window start", func(t *testing.T) {
		busy, err := source.BusyIntervalsIn(context.Background(), userID, monday.Add(11*time.Hour), monday.AddDate(0, 0, 1))

		require.NoError(t, err)
		require.Len(t, busy, 1)
		assert.Equal(t, monday.Add(11*time.Hour), busy[0].Start)
	})

	t.Run("no occurrence on other weekdays", func(t *testing.T) {
		tuesday := monday.AddDate(0, 0, 1)
		busy, err := source.BusyIntervalsIn(context.Background(), userID, tuesday, tuesday.AddDate(0, 0, 1))

		require.NoError(t, err)
		assert.Empty(t, busy)
	})
}
