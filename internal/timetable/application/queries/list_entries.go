package queries

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

// EntryDTO is the timetable entry read model.
type EntryDTO struct {
	ID            uuid.UUID  `json:"id"`
	CourseName    string     `json:"course_name"`
	CourseCode    string     `json:"course_code,omitempty"`
	Instructor    string     `json:"instructor,omitempty"`
	Room          string     `json:"room,omitempty"`
	DaysOfWeek    []int      `json:"days_of_week"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	SemesterStart *time.Time `json:"semester_start,omitempty"`
	SemesterEnd   *time.Time `json:"semester_end,omitempty"`
	Color         string     `json:"color,omitempty"`
	Category      string     `json:"category,omitempty"`
	ExcludedDates []string   `json:"excluded_dates,omitempty"`
}

func entryToDTO(entry *domain.TimetableEntry) EntryDTO {
	return EntryDTO{
		ID:            entry.ID(),
		CourseName:    entry.CourseName(),
		CourseCode:    entry.CourseCode(),
		Instructor:    entry.Instructor(),
		Room:          entry.Room(),
		DaysOfWeek:    entry.DaysOfWeek(),
		StartTime:     entry.StartTime(),
		EndTime:       entry.EndTime(),
		SemesterStart: entry.SemesterStart(),
		SemesterEnd:   entry.SemesterEnd(),
		Color:         entry.Color(),
		Category:      entry.Category(),
		ExcludedDates: entry.ExcludedDates(),
	}
}

// ListEntriesQuery asks for the user's timetable.
type ListEntriesQuery struct {
	UserID uuid.UUID
}

// ListEntriesHandler returns the user's recurring entries ordered by
// earliest weekday, then start time.
type ListEntriesHandler struct {
	entryRepo domain.EntryRepository
}

// NewListEntriesHandler creates a ListEntriesHandler.
func NewListEntriesHandler(entryRepo domain.EntryRepository) *ListEntriesHandler {
	return &ListEntriesHandler{entryRepo: entryRepo}
}

// Handle executes the ListEntriesQuery.
func (h *ListEntriesHandler) Handle(ctx context.Context, query ListEntriesQuery) ([]EntryDTO, error) {
	entries, err := h.entryRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := firstDay(entries[i]), firstDay(entries[j])
		if di != dj {
			return di < dj
		}
		return entries[i].StartTime() < entries[j].StartTime()
	})

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entryToDTO(entry))
	}
	return dtos, nil
}

func firstDay(entry *domain.TimetableEntry) int {
	first := 8
	for _, day := range entry.DaysOfWeek() {
		if day < first {
			first = day
		}
	}
	return first
}
