package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntryRepository defines persistence for timetable entries.
type EntryRepository interface {
	Save(ctx context.Context, entry *TimetableEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*TimetableEntry, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*TimetableEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttendanceRepository defines persistence for attendance records.
type AttendanceRepository interface {
	Save(ctx context.Context, record *AttendanceRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*AttendanceRecord, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*AttendanceRecord, error)
	FindByCourse(ctx context.Context, userID uuid.UUID, courseName string) ([]*AttendanceRecord, error)
	FindByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*AttendanceRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
