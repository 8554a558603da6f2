// Package services bridges the timetable into the planning engine.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	planningDomain "github.com/felixgeelhaar/studora/internal/planning/domain"
	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

// TimetableBusySource expands the user's recurring timetable entries into
// busy intervals, so day scheduling plans around classes the user never
// entered as agenda items.
type TimetableBusySource struct {
	entryRepo domain.EntryRepository
}

// NewTimetableBusySource creates a TimetableBusySource.
func NewTimetableBusySource(entryRepo domain.EntryRepository) *TimetableBusySource {
	return &TimetableBusySource{entryRepo: entryRepo}
}

// BusyIntervalsIn returns every timetable occurrence overlapping the window,
// clipped to it.
func (s *TimetableBusySource) BusyIntervalsIn(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]planningDomain.BusyInterval, error) {
	entries, err := s.entryRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var busy []planningDomain.BusyInterval
	first := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for day := first; day.Before(to); day = day.AddDate(0, 0, 1) {
		for _, entry := range entries {
			start, end, ok := entry.OccurrencesOn(day)
			if !ok {
				continue
			}
			start, end, ok = planningDomain.ClipToWindow(start, end, from, to)
			if !ok {
				continue
			}
			busy = append(busy, planningDomain.BusyInterval{Start: start, End: end})
		}
	}
	return busy, nil
}
