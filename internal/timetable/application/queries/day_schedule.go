package queries

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

// OccurrenceDTO is one dated class block.
type OccurrenceDTO struct {
	EntryID    uuid.UUID `json:"entry_id"`
	CourseName string    `json:"course_name"`
	Room       string    `json:"room,omitempty"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

// DayScheduleQuery asks for the dated class blocks on one day.
type DayScheduleQuery struct {
	UserID uuid.UUID
	Date   time.Time
}

// DayScheduleHandler expands recurring entries into the day's occurrences.
type DayScheduleHandler struct {
	entryRepo domain.EntryRepository
}

// NewDayScheduleHandler creates a DayScheduleHandler.
func NewDayScheduleHandler(entryRepo domain.EntryRepository) *DayScheduleHandler {
	return &DayScheduleHandler{entryRepo: entryRepo}
}

// Handle executes the DayScheduleQuery.
func (h *DayScheduleHandler) Handle(ctx context.Context, query DayScheduleQuery) ([]OccurrenceDTO, error) {
	entries, err := h.entryRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	occurrences := make([]OccurrenceDTO, 0, len(entries))
	for _, entry := range entries {
		start, end, ok := entry.OccurrencesOn(query.Date)
		if !ok {
			continue
		}
		occurrences = append(occurrences, OccurrenceDTO{
			EntryID:    entry.ID(),
			CourseName: entry.CourseName(),
			Room:       entry.Room(),
			StartTime:  start,
			EndTime:    end,
		})
	}

	sort.Slice(occurrences, func(i, j int) bool {
		return occurrences[i].StartTime.Before(occurrences[j].StartTime)
	})
	return occurrences, nil
}
