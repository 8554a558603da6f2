package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
	"github.com/felixgeelhaar/studora/internal/planning/domain"
)

// planLeadTime is how far after "now" the first generated session may start.
const planLeadTime = 30 * time.Minute

// PlanGenerator emits a multi-day forward-walking sequence of study
// sessions for unfinished items, skipping the user's sleep window and
// separating sessions with a fixed break.
type PlanGenerator struct{}

// NewPlanGenerator creates a PlanGenerator.
func NewPlanGenerator() *PlanGenerator {
	return &PlanGenerator{}
}

// Generate produces sessions for the given items ordered by ascending
// deadline. Each item is chunked into blocks of at most the preferred
// session length until its estimated duration is exhausted; items without
// an estimate get the configured default so a real task is never silently
// dropped as zero-length.
func (g *PlanGenerator) Generate(userID uuid.UUID, items []*agendaDomain.Item, now time.Time, cfg PlanningDefaults) ([]*domain.StudySession, error) {
	ordered := make([]*agendaDomain.Item, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		da, db := ordered[i].Deadline(), ordered[j].Deadline()
		if da == nil {
			return false
		}
		if db == nil {
			return true
		}
		return da.Before(*db)
	})

	cursor := now.Add(planLeadTime)

	var sessions []*domain.StudySession
	for _, it := range ordered {
		if it.IsCompleted() {
			continue
		}

		need := it.DurationOrDefault(cfg.ItemDurationMinutes)
		for need > 0 {
			if hourAsleep(cursor.Hour(), cfg.SleepStartHour, cfg.SleepEndHour) {
				cursor = nextWake(cursor, cfg.SleepEndHour)
			}

			chunk := need
			if cfg.SessionLengthMin < chunk {
				chunk = cfg.SessionLengthMin
			}

			end := cursor.Add(time.Duration(chunk) * time.Minute)
			session, err := domain.NewStudySession(userID, it.ID(), cursor, end, domain.StatusPlanned)
			if err != nil {
				return nil, err
			}
			sessions = append(sessions, session)

			cursor = end.Add(time.Duration(cfg.BreakMinutes) * time.Minute)
			need -= chunk
		}
	}

	return sessions, nil
}

// hourAsleep reports whether clock hour h lies inside the sleep window.
// The window may span midnight (start > end, e.g. 23..07) or not
// (start <= end, e.g. 01..07); the two cases need different containment.
func hourAsleep(h, sleepStart, sleepEnd int) bool {
	if sleepStart <= sleepEnd {
		return h >= sleepStart && h < sleepEnd
	}
	return h >= sleepStart || h < sleepEnd
}

// nextWake fast-forwards to the wake hour on the same day, or the next day
// when that instant already passed. It never moves backward.
func nextWake(cur time.Time, wakeHour int) time.Time {
	wake := time.Date(cur.Year(), cur.Month(), cur.Day(), wakeHour, 0, 0, 0, cur.Location())
	if !wake.After(cur) {
		wake = wake.AddDate(0, 0, 1)
	}
	return wake
}
