package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
	"github.com/felixgeelhaar/studora/internal/insights/domain"
	shared "github.com/felixgeelhaar/studora/internal/shared/domain"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func flexibleItem(t *testing.T, userID uuid.UUID, minutes int, deadline time.Time) *agendaDomain.Item {
	t.Helper()
	it, err := agendaDomain.NewItem(userID, "item", agendaDomain.ClassAssignment)
	require.NoError(t, err)
	require.NoError(t, it.SetDuration(minutes))
	it.SetDeadline(&deadline)
	return it
}

func fixedItem(t *testing.T, userID uuid.UUID, start, end time.Time) *agendaDomain.Item {
	t.Helper()
	it, err := agendaDomain.NewFixedItem(userID, "block", agendaDomain.ClassClass, start, end)
	require.NoError(t, err)
	return it
}

func TestComputeDailyWorkload(t *testing.T) {
	userID := uuid.New()

	t.Run("partitions flexible and fixed minutes", func(t *testing.T) {
		items := []*agendaDomain.Item{
			flexibleItem(t, userID, 90, day.Add(17*time.Hour)),
			flexibleItem(t, userID, 60, day.Add(20*time.Hour)),
			fixedItem(t, userID, day.Add(10*time.Hour), day.Add(12*time.Hour)),
		}

		w := domain.ComputeDailyWorkload(items, day.Add(9*time.Hour))

		assert.Equal(t, 150, w.FlexibleMinutes)
		assert.Equal(t, 120, w.FixedMinutes)
		assert.Equal(t, 270, w.TotalMinutes())
		assert.Equal(t, 2, w.FlexibleCount)
		assert.Equal(t, 1, w.FixedCount)
	})

	t.Run("clips fixed commitments to the day window", func(t *testing.T) {
		// Overnight block: only the 00:00-02:00 portion falls on the day.
		overnight := fixedItem(t, userID, day.Add(-2*time.Hour), day.Add(2*time.Hour))

		w := domain.ComputeDailyWorkload([]*agendaDomain.Item{overnight}, day)

		assert.Equal(t, 120, w.FixedMinutes)
	})

	t.Run("ignores completed items and items due on other days", func(t *testing.T) {
		done := flexibleItem(t, userID, 120, day.Add(12*time.Hour))
		require.NoError(t, done.Complete())
		tomorrow := flexibleItem(t, userID, 45, day.Add(30*time.Hour))

		w := domain.ComputeDailyWorkload([]*agendaDomain.Item{done, tomorrow}, day)

		assert.Zero(t, w.TotalMinutes())
	})

	t.Run("zero duration contributes nothing", func(t *testing.T) {
		dl := day.Add(12 * time.Hour)
		it, err := agendaDomain.NewItem(userID, "no estimate", agendaDomain.ClassAssignment)
		require.NoError(t, err)
		it.SetDeadline(&dl)

		w := domain.ComputeDailyWorkload([]*agendaDomain.Item{it}, day)

		assert.Zero(t, w.FlexibleMinutes)
		assert.Zero(t, w.FlexibleCount)
	})

	t.Run("degenerate fixed block occupies no time", func(t *testing.T) {
		start := day.Add(10 * time.Hour)
		degenerate := agendaDomain.RehydrateItem(shared.NewBaseEntity(), userID, "glitch", "",
			agendaDomain.ClassMeeting, "", agendaDomain.PriorityMedium, false,
			&start, &start, nil, 0, false, nil)

		w := domain.ComputeDailyWorkload([]*agendaDomain.Item{degenerate}, day)

		assert.Zero(t, w.FixedMinutes)
	})
}

func TestDailyWorkloadOvercommitted(t *testing.T) {
	t.Run("exactly at threshold is not overcommitted", func(t *testing.T) {
		w := domain.DailyWorkload{FlexibleMinutes: 300, FixedMinutes: 180}
		assert.Equal(t, 480, w.TotalMinutes())
		assert.False(t, w.Overcommitted(domain.DefaultOvercommitThreshold))
	})

	t.Run("one minute above threshold is overcommitted", func(t *testing.T) {
		w := domain.DailyWorkload{FlexibleMinutes: 301, FixedMinutes: 180}
		assert.True(t, w.Overcommitted(domain.DefaultOvercommitThreshold))
	})
}
