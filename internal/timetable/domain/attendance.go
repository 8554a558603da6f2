package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	shared "github.com/felixgeelhaar/studora/internal/shared/domain"
)

// AttendanceStatus is the recorded outcome of one class occurrence.
type AttendanceStatus string

const (
	StatusPresent   AttendanceStatus = "present"
	StatusAbsent    AttendanceStatus = "absent"
	StatusLate      AttendanceStatus = "late"
	StatusExcused   AttendanceStatus = "excused"
	StatusCancelled AttendanceStatus = "cancelled"
)

// ParseAttendanceStatus converts a raw string to an AttendanceStatus.
// Empty input defaults to present.
func ParseAttendanceStatus(raw string) (AttendanceStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return StatusPresent, nil
	case "present":
		return StatusPresent, nil
	case "absent":
		return StatusAbsent, nil
	case "late":
		return StatusLate, nil
	case "excused":
		return StatusExcused, nil
	case "cancelled":
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown attendance status %q", raw)
	}
}

// ErrInvalidStatus rejects rehydrated records carrying an unknown status.
var ErrInvalidStatus = errors.New("invalid attendance status")

// AttendanceRecord marks one dated class occurrence for a course.
type AttendanceRecord struct {
	shared.BaseAggregateRoot

	userID     uuid.UUID
	courseName string
	date       time.Time
	status     AttendanceStatus
	note       string
}

// NewAttendanceRecord creates an attendance record.
func NewAttendanceRecord(userID uuid.UUID, courseName string, date time.Time, status AttendanceStatus, note string) (*AttendanceRecord, error) {
	courseName = strings.TrimSpace(courseName)
	if courseName == "" {
		return nil, ErrEmptyCourseName
	}
	switch status {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused, StatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	return &AttendanceRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		userID:            userID,
		courseName:        courseName,
		date:              date,
		status:            status,
		note:              note,
	}, nil
}

// RehydrateAttendanceRecord recreates a record from persisted state.
func RehydrateAttendanceRecord(base shared.BaseEntity, userID uuid.UUID, courseName string, date time.Time, status AttendanceStatus, note string) *AttendanceRecord {
	return &AttendanceRecord{
		BaseAggregateRoot: shared.RehydrateBaseAggregateRoot(base),
		userID:            userID,
		courseName:        courseName,
		date:              date,
		status:            status,
		note:              note,
	}
}

func (r *AttendanceRecord) UserID() uuid.UUID        { return r.userID }
func (r *AttendanceRecord) CourseName() string       { return r.courseName }
func (r *AttendanceRecord) Date() time.Time          { return r.date }
func (r *AttendanceRecord) Status() AttendanceStatus { return r.status }
func (r *AttendanceRecord) Note() string             { return r.note }

// CourseAttendance summarizes attendance for one course.
type CourseAttendance struct {
	CourseName string
	Attended   int // present + late
	Absent     int
	Excused    int
	Cancelled  int
	// Rate is the attended percentage, one decimal. Excused and cancelled
	// occurrences stay out of the denominator.
	Rate float64
}

// AttendanceRateByCourse aggregates records per course.
func AttendanceRateByCourse(records []*AttendanceRecord) map[string]CourseAttendance {
	byCourse := make(map[string]CourseAttendance)

	for _, r := range records {
		course := byCourse[r.courseName]
		course.CourseName = r.courseName
		switch r.status {
		case StatusPresent, StatusLate:
			course.Attended++
		case StatusAbsent:
			course.Absent++
		case StatusExcused:
			course.Excused++
		case StatusCancelled:
			course.Cancelled++
		}
		byCourse[r.courseName] = course
	}

	for name, course := range byCourse {
		countable := course.Attended + course.Absent
		if countable > 0 {
			course.Rate = math.Round(100*float64(course.Attended)/float64(countable)*10) / 10
		}
		byCourse[name] = course
	}
	return byCourse
}
