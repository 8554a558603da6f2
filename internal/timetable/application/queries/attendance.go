package queries

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

// AttendanceDTO is the attendance record read model.
type AttendanceDTO struct {
	ID         uuid.UUID `json:"id"`
	CourseName string    `json:"course_name"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
}

// ListAttendanceQuery asks for attendance records, optionally per course.
type ListAttendanceQuery struct {
	UserID     uuid.UUID
	CourseName string // empty means all courses
}

// ListAttendanceHandler returns attendance records newest first.
type ListAttendanceHandler struct {
	attendanceRepo domain.AttendanceRepository
}

// NewListAttendanceHandler creates a ListAttendanceHandler.
func NewListAttendanceHandler(attendanceRepo domain.AttendanceRepository) *ListAttendanceHandler {
	return &ListAttendanceHandler{attendanceRepo: attendanceRepo}
}

// Handle executes the ListAttendanceQuery.
func (h *ListAttendanceHandler) Handle(ctx context.Context, query ListAttendanceQuery) ([]AttendanceDTO, error) {
	var (
		records []*domain.AttendanceRecord
		err     error
	)
	if query.CourseName != "" {
		records, err = h.attendanceRepo.FindByCourse(ctx, query.UserID, query.CourseName)
	} else {
		records, err = h.attendanceRepo.FindByUserID(ctx, query.UserID)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date().After(records[j].Date())
	})

	dtos := make([]AttendanceDTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, AttendanceDTO{
			ID:         r.ID(),
			CourseName: r.CourseName(),
			Date:       r.Date(),
			Status:     string(r.Status()),
			Note:       r.Note(),
		})
	}
	return dtos, nil
}

// AttendanceStatsQuery asks for per-course attendance rates.
type AttendanceStatsQuery struct {
	UserID uuid.UUID
}

// CourseAttendanceDTO is one course's attendance summary.
type CourseAttendanceDTO struct {
	CourseName string  `json:"course_name"`
	Attended   int     `json:"attended"`
	Absent     int     `json:"absent"`
	Excused    int     `json:"excused"`
	Cancelled  int     `json:"cancelled"`
	Rate       float64 `json:"rate"`
}

// AttendanceStatsHandler aggregates attendance per course.
type AttendanceStatsHandler struct {
	attendanceRepo domain.AttendanceRepository
}

// NewAttendanceStatsHandler creates an AttendanceStatsHandler.
func NewAttendanceStatsHandler(attendanceRepo domain.AttendanceRepository) *AttendanceStatsHandler {
	return &AttendanceStatsHandler{attendanceRepo: attendanceRepo}
}

// Handle executes the AttendanceStatsQuery.
func (h *AttendanceStatsHandler) Handle(ctx context.Context, query AttendanceStatsQuery) ([]CourseAttendanceDTO, error) {
	records, err := h.attendanceRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	byCourse := domain.AttendanceRateByCourse(records)
	dtos := make([]CourseAttendanceDTO, 0, len(byCourse))
	for _, course := range byCourse {
		dtos = append(dtos, CourseAttendanceDTO{
			CourseName: course.CourseName,
			Attended:   course.Attended,
			Absent:     course.Absent,
			Excused:    course.Excused,
			Cancelled:  course.Cancelled,
			Rate:       course.Rate,
		})
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].CourseName < dtos[j].CourseName })
	return dtos, nil
}
