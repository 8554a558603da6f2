package domain

import (
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/studora/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrInvalidSessionRange = errors.New("session end must be after session start")
	ErrNoUnmetNeed         = errors.New("unscheduled session must carry unmet minutes")
)

// SessionStatus represents the lifecycle state of a study session.
type SessionStatus string

const (
	// StatusPlanned marks a session allocated before its item's deadline.
	StatusPlanned SessionStatus = "planned"
	// StatusRescheduled marks a session for an item whose deadline had
	// already passed at scheduling time.
	StatusRescheduled SessionStatus = "rescheduled"
	// StatusUnscheduled marks unmet need that no free capacity could absorb.
	// It signals missing time, not a time block.
	StatusUnscheduled SessionStatus = "unscheduled"
	// StatusCompleted and StatusMissed are caller-driven outcomes of a
	// previously planned session.
	StatusCompleted SessionStatus = "completed"
	StatusMissed    SessionStatus = "missed"
)

// StudySession is the scheduler's output unit: a concrete time-boxed
// allocation of free time to a work item, or a marker that allocation
// failed for part of its need.
type StudySession struct {
	sharedDomain.BaseAggregateRoot
	userID       uuid.UUID
	itemID       uuid.UUID // uuid.Nil for a generic block
	startTime    time.Time
	endTime      time.Time
	status       SessionStatus
	unmetMinutes int
	rationale    string
}

// NewStudySession creates a planned or rescheduled session covering
// [start, end).
func NewStudySession(userID, itemID uuid.UUID, start, end time.Time, status SessionStatus) (*StudySession, error) {
	if !end.After(start) {
		return nil, ErrInvalidSessionRange
	}

	s := &StudySession{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		itemID:            itemID,
		startTime:         start,
		endTime:           end,
		status:            status,
	}

	s.AddDomainEvent(NewSessionPlanned(s))

	return s, nil
}

// NewUnscheduledSession creates a marker for need that could not be placed.
// It carries no valid time span.
func NewUnscheduledSession(userID, itemID uuid.UUID, unmetMinutes int) (*StudySession, error) {
	if unmetMinutes <= 0 {
		return nil, ErrNoUnmetNeed
	}

	s := &StudySession{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		itemID:            itemID,
		status:            StatusUnscheduled,
		unmetMinutes:      unmetMinutes,
	}

	s.AddDomainEvent(NewSessionUnscheduled(s))

	return s, nil
}

// Getters
func (s *StudySession) UserID() uuid.UUID     { return s.userID }
func (s *StudySession) ItemID() uuid.UUID     { return s.itemID }
func (s *StudySession) StartTime() time.Time  { return s.startTime }
func (s *StudySession) EndTime() time.Time    { return s.endTime }
func (s *StudySession) Status() SessionStatus { return s.status }
func (s *StudySession) UnmetMinutes() int     { return s.unmetMinutes }
func (s *StudySession) Rationale() string     { return s.rationale }

// Minutes returns the allocated span in whole minutes. Unscheduled markers
// have no span and report zero.
func (s *StudySession) Minutes() int {
	if s.status == StatusUnscheduled {
		return 0
	}
	return int(s.endTime.Sub(s.startTime).Minutes())
}

// SetRationale attaches explanatory annotation to the session. The text is
// decoration for the user; scheduling correctness never depends on it.
func (s *StudySession) SetRationale(text string) {
	s.rationale = text
	s.Touch()
}

// MarkCompleted records that the session was actually held.
func (s *StudySession) MarkCompleted() {
	s.status = StatusCompleted
	s.Touch()
}

// MarkMissed records that the planned session was not held.
func (s *StudySession) MarkMissed() {
	s.status = StatusMissed
	s.Touch()
}

// RehydrateStudySession recreates a session from persisted state.
func RehydrateStudySession(
	id uuid.UUID,
	userID uuid.UUID,
	itemID uuid.UUID,
	start, end time.Time,
	status SessionStatus,
	unmetMinutes int,
	rationale string,
	createdAt, updatedAt time.Time,
) *StudySession {
	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &StudySession{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity),
		userID:            userID,
		itemID:            itemID,
		startTime:         start,
		endTime:           end,
		status:            status,
		unmetMinutes:      unmetMinutes,
		rationale:         rationale,
	}
}
