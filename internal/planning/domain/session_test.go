package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studora/internal/planning/domain"
)

func TestNewStudySession(t *testing.T) {
	userID, itemID := uuid.New(), uuid.New()
	start := hm(9, 0)
	end := hm(10, 0)

	s, err := domain.NewStudySession(userID, itemID, start, end, domain.StatusPlanned)

	require.NoError(t, err)
	assert.Equal(t, userID, s.UserID())
	assert.Equal(t, itemID, s.ItemID())
	assert.Equal(t, domain.StatusPlanned, s.Status())
	assert.Equal(t, 60, s.Minutes())
	assert.Empty(t, s.Rationale())

	events := s.DomainEvents()
	require.Len(t, events, 1)
	planned, ok := events[0].(domain.SessionPlanned)
	require.True(t, ok)
	assert.Equal(t, s.ID(), planned.AggregateID())
}

func TestNewStudySession_InvalidRange(t *testing.T) {
	at := hm(9, 0)

	_, err := domain.NewStudySession(uuid.New(), uuid.New(), at, at, domain.StatusPlanned)
	assert.ErrorIs(t, err, domain.ErrInvalidSessionRange)

	_, err = domain.NewStudySession(uuid.New(), uuid.New(), at, at.Add(-time.Minute), domain.StatusRescheduled)
	assert.ErrorIs(t, err, domain.ErrInvalidSessionRange)
}

func TestNewUnscheduledSession(t *testing.T) {
	s, err := domain.NewUnscheduledSession(uuid.New(), uuid.New(), 45)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnscheduled, s.Status())
	assert.Equal(t, 45, s.UnmetMinutes())
	assert.Equal(t, 0, s.Minutes(), "a marker carries no time span")
}

func TestNewUnscheduledSession_RequiresUnmetNeed(t *testing.T) {
	_, err := domain.NewUnscheduledSession(uuid.New(), uuid.New(), 0)
	assert.ErrorIs(t, err, domain.ErrNoUnmetNeed)

	_, err = domain.NewUnscheduledSession(uuid.New(), uuid.New(), -10)
	assert.ErrorIs(t, err, domain.ErrNoUnmetNeed)
}

func TestStudySession_Rationale(t *testing.T) {
	s, err := domain.NewStudySession(uuid.New(), uuid.New(), hm(9, 0), hm(10, 0), domain.StatusPlanned)
	require.NoError(t, err)

	s.SetRationale("Deadline is tomorrow, highly prioritized.")

	assert.Equal(t, "Deadline is tomorrow, highly prioritized.", s.Rationale())
}

func TestStudySession_Outcomes(t *testing.T) {
	s, err := domain.NewStudySession(uuid.New(), uuid.New(), hm(9, 0), hm(10, 0), domain.StatusPlanned)
	require.NoError(t, err)

	s.MarkCompleted()
	assert.Equal(t, domain.StatusCompleted, s.Status())

	s.MarkMissed()
	assert.Equal(t, domain.StatusMissed, s.Status())
}

func TestRehydrateStudySession(t *testing.T) {
	id, userID, itemID := uuid.New(), uuid.New(), uuid.New()
	created := hm(8, 0)

	s := domain.RehydrateStudySession(id, userID, itemID, hm(9, 0), hm(10, 30),
		domain.StatusRescheduled, 0, "catching up", created, created)

	assert.Equal(t, id, s.ID())
	assert.Equal(t, domain.StatusRescheduled, s.Status())
	assert.Equal(t, 90, s.Minutes())
	assert.Equal(t, "catching up", s.Rationale())
	assert.Empty(t, s.DomainEvents(), "rehydration raises no events")
}
