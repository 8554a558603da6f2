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

// trackedItem builds an item with an explicit creation instant so the
// elapsed/allotted ratio is controllable.
func trackedItem(t *testing.T, userID uuid.UUID, createdAt, deadline time.Time, completed bool) *agendaDomain.Item {
	t.Helper()
	var completedAt *time.Time
	if completed {
		done := deadline.Add(-time.Hour)
		completedAt = &done
	}
	return agendaDomain.RehydrateItem(
		shared.RehydrateBaseEntity(uuid.New(), createdAt, createdAt),
		userID, "tracked", "", agendaDomain.ClassAssignment, "",
		agendaDomain.PriorityMedium, false, nil, nil, &deadline, 60, completed, completedAt,
	)
}

func TestProcrastinationFor(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("one missed of two tracked scores fifty percent moderate", func(t *testing.T) {
		missed := trackedItem(t, userID, now.Add(-72*time.Hour), now.Add(-24*time.Hour), false)
		onTime := trackedItem(t, userID, now.Add(-72*time.Hour), now.Add(-24*time.Hour), true)

		report := domain.ProcrastinationFor([]*agendaDomain.Item{missed, onTime}, now)

		assert.Equal(t, 2, report.Tracked)
		assert.Equal(t, 1, report.Missed)
		assert.Equal(t, 0, report.LateStage)
		assert.Equal(t, 50.0, report.Score)
		assert.Equal(t, domain.ProcrastinationModerate, report.Level)
	})

	t.Run("detects late-stage work past eighty percent of allotted time", func(t *testing.T) {
		// Created 9 days ago, due tomorrow: 90% of the window elapsed.
		lateStage := trackedItem(t, userID, now.Add(-9*24*time.Hour), now.Add(24*time.Hour), false)
		// Created yesterday, due in 9 days: barely started.
		fresh := trackedItem(t, userID, now.Add(-24*time.Hour), now.Add(9*24*time.Hour), false)

		report := domain.ProcrastinationFor([]*agendaDomain.Item{lateStage, fresh}, now)

		assert.Equal(t, 1, report.LateStage)
		assert.Equal(t, 0, report.Missed)
		assert.Equal(t, 50.0, report.Score)
	})

	t.Run("items without deadline are not tracked", func(t *testing.T) {
		noDeadline, err := agendaDomain.NewItem(userID, "someday", agendaDomain.ClassAssignment)
		require.NoError(t, err)

		report := domain.ProcrastinationFor([]*agendaDomain.Item{noDeadline}, now)

		assert.Zero(t, report.Tracked)
		assert.Zero(t, report.Score)
		assert.Equal(t, domain.ProcrastinationNone, report.Level)
	})

	t.Run("all missed scores one hundred high", func(t *testing.T) {
		items := []*agendaDomain.Item{
			trackedItem(t, userID, now.Add(-72*time.Hour), now.Add(-48*time.Hour), false),
			trackedItem(t, userID, now.Add(-72*time.Hour), now.Add(-24*time.Hour), false),
		}

		report := domain.ProcrastinationFor(items, now)

		assert.Equal(t, 100.0, report.Score)
		assert.Equal(t, domain.ProcrastinationHigh, report.Level)
	})

	t.Run("score is rounded to one decimal", func(t *testing.T) {
		items := []*agendaDomain.Item{
			trackedItem(t, userID, now.Add(-72*time.Hour), now.Add(-24*time.Hour), false),
			trackedItem(t, userID, now.Add(-72*time.Hour), now.Add(-24*time.Hour), true),
			trackedItem(t, userID, now.Add(-72*time.Hour), now.Add(-24*time.Hour), true),
		}

		report := domain.ProcrastinationFor(items, now)

		assert.Equal(t, 33.3, report.Score)
		assert.Equal(t, domain.ProcrastinationModerate, report.Level)
	})
}

func TestBurnoutFor(t *testing.T) {
	overloaded := domain.DailyWorkload{FlexibleMinutes: 500}
	calm := domain.DailyWorkload{FlexibleMinutes: 120}

	t.Run("majority of overloaded days raises risk", func(t *testing.T) {
		days := []domain.DailyWorkload{overloaded, overloaded, overloaded, overloaded, calm, calm, calm}

		report := domain.BurnoutFor(days, domain.DefaultOvercommitThreshold)

		assert.Equal(t, 7, report.WindowDays)
		assert.Equal(t, 4, report.OverloadedDays)
		assert.True(t, report.AtRisk)
	})

	t.Run("just below the majority is safe", func(t *testing.T) {
		days := []domain.DailyWorkload{overloaded, overloaded, overloaded, calm, calm, calm, calm}

		report := domain.BurnoutFor(days, domain.DefaultOvercommitThreshold)

		assert.Equal(t, 3, report.OverloadedDays)
		assert.False(t, report.AtRisk)
	})

	t.Run("threshold exactly met does not overload a day", func(t *testing.T) {
		days := []domain.DailyWorkload{{FlexibleMinutes: 480}}

		report := domain.BurnoutFor(days, domain.DefaultOvercommitThreshold)

		assert.Zero(t, report.OverloadedDays)
		assert.False(t, report.AtRisk)
	})

	t.Run("reports average daily workload", func(t *testing.T) {
		days := []domain.DailyWorkload{{FlexibleMinutes: 100}, {FlexibleMinutes: 101}, {FlexibleMinutes: 100}}

		report := domain.BurnoutFor(days, domain.DefaultOvercommitThreshold)

		assert.Equal(t, 100.3, report.AverageDailyMinutes)
	})

	t.Run("empty window carries no risk", func(t *testing.T) {
		report := domain.BurnoutFor(nil, domain.DefaultOvercommitThreshold)

		assert.False(t, report.AtRisk)
		assert.Zero(t, report.AverageDailyMinutes)
	})
}
