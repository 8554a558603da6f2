package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	sharedApplication "github.com/felixgeelhaar/studora/internal/shared/application"
	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

// RecordAttendanceCommand marks one class occurrence.
type RecordAttendanceCommand struct {
	UserID     uuid.UUID
	CourseName string
	Date       time.Time
	Status     string // defaults to present
	Note       string
}

// RecordAttendanceHandler handles the RecordAttendanceCommand.
type RecordAttendanceHandler struct {
	attendanceRepo domain.AttendanceRepository
	uow            sharedApplication.UnitOfWork
}

// NewRecordAttendanceHandler creates a new RecordAttendanceHandler.
func NewRecordAttendanceHandler(attendanceRepo domain.AttendanceRepository, uow sharedApplication.UnitOfWork) *RecordAttendanceHandler {
	return &RecordAttendanceHandler{attendanceRepo: attendanceRepo, uow: uow}
}

// Handle executes the RecordAttendanceCommand.
func (h *RecordAttendanceHandler) Handle(ctx context.Context, cmd RecordAttendanceCommand) (*domain.AttendanceRecord, error) {
	status, err := domain.ParseAttendanceStatus(cmd.Status)
	if err != nil {
		return nil, err
	}
	record, err := domain.NewAttendanceRecord(cmd.UserID, cmd.CourseName, cmd.Date, status, cmd.Note)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.attendanceRepo.Save(txCtx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteAttendanceCommand removes an attendance record.
type DeleteAttendanceCommand struct {
	RecordID uuid.UUID
	UserID   uuid.UUID
}

// DeleteAttendanceHandler handles the DeleteAttendanceCommand.
type DeleteAttendanceHandler struct {
	attendanceRepo domain.AttendanceRepository
	uow            sharedApplication.UnitOfWork
}

// NewDeleteAttendanceHandler creates a new DeleteAttendanceHandler.
func NewDeleteAttendanceHandler(attendanceRepo domain.AttendanceRepository, uow sharedApplication.UnitOfWork) *DeleteAttendanceHandler {
	return &DeleteAttendanceHandler{attendanceRepo: attendanceRepo, uow: uow}
}

// Handle executes the DeleteAttendanceCommand.
func (h *DeleteAttendanceHandler) Handle(ctx context.Context, cmd DeleteAttendanceCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		record, err := h.attendanceRepo.FindByID(txCtx, cmd.RecordID)
		if err != nil {
			return err
		}
		if record.UserID() != cmd.UserID {
			return domain.ErrNotOwner
		}
		return h.attendanceRepo.Delete(txCtx, cmd.RecordID)
	})
}
