package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studora/internal/agenda/domain"
)

func TestNewItem(t *testing.T) {
	userID := uuid.New()

	it, err := domain.NewItem(userID, "Linear algebra problem set", domain.ClassAssignment)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, it.ID())
	assert.Equal(t, userID, it.UserID())
	assert.Equal(t, "Linear algebra problem set", it.Title())
	assert.Equal(t, domain.ClassAssignment, it.Classification())
	assert.Equal(t, domain.PriorityMedium, it.Priority())
	assert.False(t, it.IsCompleted())
	assert.False(t, it.IsFixed())
}

func TestNewItem_EmitsCreatedEvent(t *testing.T) {
	it, err := domain.NewItem(uuid.New(), "Revise chapter 3", domain.ClassExam)

	require.NoError(t, err)
	events := it.DomainEvents()
	require.Len(t, events, 1)

	created, ok := events[0].(domain.ItemCreated)
	require.True(t, ok)
	assert.Equal(t, it.ID(), created.AggregateID())
	assert.Equal(t, domain.RoutingKeyItemCreated, created.RoutingKey())
	assert.Equal(t, "exam", created.Classification)
}

func TestNewItem_EmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		t.Run(title, func(t *testing.T) {
			_, err := domain.NewItem(uuid.New(), title, domain.ClassAssignment)
			assert.ErrorIs(t, err, domain.ErrEmptyTitle)
		})
	}
}

func TestNewFixedItem(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	it, err := domain.NewFixedItem(uuid.New(), "Databases lecture", domain.ClassClass, start, end)

	require.NoError(t, err)
	assert.True(t, it.IsFixed())
	assert.Equal(t, start, *it.StartTime())
	assert.Equal(t, end, *it.EndTime())
}

func TestNewFixedItem_InvalidRange(t *testing.T) {
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := domain.NewFixedItem(uuid.New(), "Standup", domain.ClassMeeting, at, at)

	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestItem_IsPastDeadline(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	it, _ := domain.NewItem(uuid.New(), "Essay", domain.ClassAssignment)
	assert.False(t, it.IsPastDeadline(now), "no deadline is never past due")

	past := now.Add(-time.Hour)
	it.SetDeadline(&past)
	assert.True(t, it.IsPastDeadline(now))

	future := now.Add(time.Hour)
	it.SetDeadline(&future)
	assert.False(t, it.IsPastDeadline(now))
}

func TestItem_DurationOrDefault(t *testing.T) {
	it, _ := domain.NewItem(uuid.New(), "Essay", domain.ClassAssignment)
	assert.Equal(t, 60, it.DurationOrDefault(60))

	require.NoError(t, it.SetDuration(90))
	assert.Equal(t, 90, it.DurationOrDefault(60))
}

func TestItem_SetDuration_Negative(t *testing.T) {
	it, _ := domain.NewItem(uuid.New(), "Essay", domain.ClassAssignment)

	err := it.SetDuration(-5)

	assert.ErrorIs(t, err, domain.ErrNegativeDuration)
}

func TestItem_Complete(t *testing.T) {
	it, _ := domain.NewItem(uuid.New(), "Essay", domain.ClassAssignment)
	it.ClearDomainEvents()

	require.NoError(t, it.Complete())
	assert.True(t, it.IsCompleted())
	require.NotNil(t, it.CompletedAt())

	assert.ErrorIs(t, it.Complete(), domain.ErrAlreadyCompleted)

	events := it.DomainEvents()
	require.Len(t, events, 1)
	_, ok := events[0].(domain.ItemCompleted)
	assert.True(t, ok)
}

func TestItem_Reopen(t *testing.T) {
	it, _ := domain.NewItem(uuid.New(), "Essay", domain.ClassAssignment)
	require.NoError(t, it.Complete())

	it.Reopen()

	assert.False(t, it.IsCompleted())
	assert.Nil(t, it.CompletedAt())
}

func TestItem_Reschedule(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	it, _ := domain.NewFixedItem(uuid.New(), "Seminar", domain.ClassMeeting, start, start.Add(time.Hour))

	newStart := start.Add(24 * time.Hour)
	require.NoError(t, it.Reschedule(newStart, newStart.Add(time.Hour)))
	assert.Equal(t, newStart, *it.StartTime())

	assert.ErrorIs(t, it.Reschedule(newStart, newStart), domain.ErrInvalidTimeRange)
}

func TestItem_Reschedule_DeferrableRejected(t *testing.T) {
	it, _ := domain.NewItem(uuid.New(), "Essay", domain.ClassAssignment)
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	err := it.Reschedule(at, at.Add(time.Hour))

	assert.ErrorIs(t, err, domain.ErrFixedItemNoTimes)
}

func TestParseClassification(t *testing.T) {
	tests := map[string]domain.Classification{
		"assignment": domain.ClassAssignment,
		"task":       domain.ClassAssignment,
		"study":      domain.ClassAssignment,
		"Exam":       domain.ClassExam,
		"lecture":    domain.ClassClass,
		"class":      domain.ClassClass,
		"meeting":    domain.ClassMeeting,
		"":           domain.ClassOther,
		"banana":     domain.ClassOther,
	}
	for raw, want := range tests {
		assert.Equal(t, want, domain.ParseClassification(raw), "raw=%q", raw)
	}
}

func TestClassification_Fixedness(t *testing.T) {
	assert.True(t, domain.ClassClass.IsFixed())
	assert.True(t, domain.ClassMeeting.IsFixed())
	assert.False(t, domain.ClassAssignment.IsFixed())
	assert.True(t, domain.ClassAssignment.IsDeferrable())
	assert.False(t, domain.ClassMeeting.IsDeferrable())
}
