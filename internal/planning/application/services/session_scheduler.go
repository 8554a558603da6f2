package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
	"github.com/felixgeelhaar/studora/internal/planning/domain"
)

// SessionScheduler allocates free time to work items with a greedy
// priority-ordered first-fit. Packing is deliberately not optimal: soft
// deadlines and priorities want predictable, explainable placement (the
// most urgent item gets the earliest free time) over minimal idle time.
type SessionScheduler struct{}

// NewSessionScheduler creates a SessionScheduler.
func NewSessionScheduler() *SessionScheduler {
	return &SessionScheduler{}
}

// ScheduleResult is the outcome of one scheduling pass.
type ScheduleResult struct {
	Sessions  []*domain.StudySession
	Remaining []domain.FreeInterval
}

// Schedule walks items in scheduling order and carves sessions out of the
// free intervals. Intervals are a shared resource across the whole pass:
// the remainder one item leaves is where the next item starts. Items whose
// need cannot be fully placed get an unscheduled marker with the unmet
// minutes. Items without a duration estimate carry no remaining work and
// are skipped.
func (s *SessionScheduler) Schedule(userID uuid.UUID, items []*agendaDomain.Item, free []domain.FreeInterval, now time.Time) (*ScheduleResult, error) {
	ordered := OrderForScheduling(items, now)

	var sessions []*domain.StudySession
	for _, it := range ordered {
		need := it.DurationMinutes()
		if need <= 0 {
			continue
		}

		status := domain.StatusPlanned
		if it.IsPastDeadline(now) {
			status = domain.StatusRescheduled
		}

		var allocated []domain.FreeInterval
		allocated, free = takeMinutes(free, need)

		placed := 0
		for _, span := range allocated {
			session, err := domain.NewStudySession(userID, it.ID(), span.Start, span.End, status)
			if err != nil {
				return nil, err
			}
			sessions = append(sessions, session)
			placed += span.Minutes()
		}

		if placed < need {
			marker, err := domain.NewUnscheduledSession(userID, it.ID(), need-placed)
			if err != nil {
				return nil, err
			}
			sessions = append(sessions, marker)
		}
	}

	return &ScheduleResult{Sessions: sessions, Remaining: free}, nil
}

// OrderForScheduling sorts items into allocation order: items already past
// their deadline come strictly first (missed work is rescheduled before
// anything else); the rest order by importance flag, then priority, then
// ascending deadline with deadline-less items last.
func OrderForScheduling(items []*agendaDomain.Item, now time.Time) []*agendaDomain.Item {
	ordered := make([]*agendaDomain.Item, len(items))
	copy(ordered, items)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]

		aMissed, bMissed := a.IsPastDeadline(now), b.IsPastDeadline(now)
		if aMissed != bMissed {
			return aMissed
		}
		if a.Important() != b.Important() {
			return a.Important()
		}
		if a.Priority() != b.Priority() {
			return a.Priority().Weight() > b.Priority().Weight()
		}

		da, db := a.Deadline(), b.Deadline()
		if da == nil {
			return false
		}
		if db == nil {
			return true
		}
		return da.Before(*db)
	})

	return ordered
}

// takeMinutes carves up to need minutes off the front of the free-interval
// list, splitting an item's need across intervals when one is too small.
// It returns the allocated sub-spans and the updated free list; the input
// slice is never mutated, so a caller can safely reuse or discard it.
func takeMinutes(free []domain.FreeInterval, need int) (allocated, remaining []domain.FreeInterval) {
	remaining = make([]domain.FreeInterval, len(free))
	copy(remaining, free)

	for i := 0; i < len(remaining) && need > 0; i++ {
		width := remaining[i].Minutes()
		if width <= 0 {
			continue
		}

		take := width
		if need < take {
			take = need
		}

		start := remaining[i].Start
		end := start.Add(time.Duration(take) * time.Minute)
		allocated = append(allocated, domain.FreeInterval{Start: start, End: end})

		remaining[i].Start = end
		need -= take
	}

	// Drop exhausted intervals.
	compact := remaining[:0]
	for _, f := range remaining {
		if f.End.After(f.Start) {
			compact = append(compact, f)
		}
	}
	return allocated, compact
}
