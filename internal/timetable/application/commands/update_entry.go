package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	sharedApplication "github.com/felixgeelhaar/studora/internal/shared/application"
	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

// UpdateEntryCommand contains the data needed to update a timetable entry.
// Nil pointer fields mean no change.
type UpdateEntryCommand struct {
	EntryID       uuid.UUID
	UserID        uuid.UUID
	CourseCode    *string
	Instructor    *string
	Room          *string
	Color         *string
	Category      *string
	DaysOfWeek    []int
	StartTime     *string
	EndTime       *string
	SemesterStart *time.Time
	SemesterEnd   *time.Time
	SetSemester   bool
	ExcludeDate   *time.Time
	IncludeDate   *time.Time
}

// UpdateEntryHandler handles the UpdateEntryCommand.
type UpdateEntryHandler struct {
	entryRepo domain.EntryRepository
	uow       sharedApplication.UnitOfWork
}

// NewUpdateEntryHandler creates a new UpdateEntryHandler.
func NewUpdateEntryHandler(entryRepo domain.EntryRepository, uow sharedApplication.UnitOfWork) *UpdateEntryHandler {
	return &UpdateEntryHandler{entryRepo: entryRepo, uow: uow}
}

// Handle executes the UpdateEntryCommand.
func (h *UpdateEntryHandler) Handle(ctx context.Context, cmd UpdateEntryCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		entry, err := h.entryRepo.FindByID(txCtx, cmd.EntryID)
		if err != nil {
			return err
		}
		if entry.UserID() != cmd.UserID {
			return domain.ErrNotOwner
		}

		entry.SetDetails(
			stringOr(cmd.CourseCode, entry.CourseCode()),
			stringOr(cmd.Instructor, entry.Instructor()),
			stringOr(cmd.Room, entry.Room()),
			stringOr(cmd.Color, entry.Color()),
			stringOr(cmd.Category, entry.Category()),
		)

		if cmd.DaysOfWeek != nil || cmd.StartTime != nil || cmd.EndTime != nil {
			days := cmd.DaysOfWeek
			if days == nil {
				days = entry.DaysOfWeek()
			}
			if err := entry.SetSchedule(days, stringOr(cmd.StartTime, entry.StartTime()), stringOr(cmd.EndTime, entry.EndTime())); err != nil {
				return err
			}
		}
		if cmd.SetSemester {
			if err := entry.SetSemester(cmd.SemesterStart, cmd.SemesterEnd); err != nil {
				return err
			}
		}
		if cmd.ExcludeDate != nil {
			entry.ExcludeDate(*cmd.ExcludeDate)
		}
		if cmd.IncludeDate != nil {
			entry.IncludeDate(*cmd.IncludeDate)
		}

		return h.entryRepo.Save(txCtx, entry)
	})
}

func stringOr(override *string, current string) string {
	if override != nil {
		return *override
	}
	return current
}
