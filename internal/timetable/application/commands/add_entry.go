package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	sharedApplication "github.com/felixgeelhaar/studora/internal/shared/application"
	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

// AddEntryCommand contains the data needed to add a recurring timetable entry.
type AddEntryCommand struct {
	UserID        uuid.UUID
	CourseName    string
	CourseCode    string
	Instructor    string
	Room          string
	DaysOfWeek    []int
	StartTime     string // "HH:mm"
	EndTime       string // "HH:mm"
	SemesterStart *time.Time
	SemesterEnd   *time.Time
	Color         string
	Category      string
}

// AddEntryHandler handles the AddEntryCommand.
type AddEntryHandler struct {
	entryRepo domain.EntryRepository
	uow       sharedApplication.UnitOfWork
}

// NewAddEntryHandler creates a new AddEntryHandler.
func NewAddEntryHandler(entryRepo domain.EntryRepository, uow sharedApplication.UnitOfWork) *AddEntryHandler {
	return &AddEntryHandler{entryRepo: entryRepo, uow: uow}
}

// Handle executes the AddEntryCommand.
func (h *AddEntryHandler) Handle(ctx context.Context, cmd AddEntryCommand) (*domain.TimetableEntry, error) {
	entry, err := domain.NewTimetableEntry(cmd.UserID, cmd.CourseName, cmd.DaysOfWeek, cmd.StartTime, cmd.EndTime)
	if err != nil {
		return nil, err
	}
	entry.SetDetails(cmd.CourseCode, cmd.Instructor, cmd.Room, cmd.Color, cmd.Category)
	if err := entry.SetSemester(cmd.SemesterStart, cmd.SemesterEnd); err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.entryRepo.Save(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
