package domain

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	shared "github.com/felixgeelhaar/studora/internal/shared/domain"
)

var (
	ErrEmptyCourseName  = errors.New("course name cannot be empty")
	ErrNoDaysOfWeek     = errors.New("entry needs at least one day of week")
	ErrInvalidDayOfWeek = errors.New("day of week must be 1 (Monday) through 7 (Sunday)")
	ErrInvalidClockTime = errors.New("clock time must be HH:mm")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidSemester  = errors.New("semester end must not precede semester start")
	ErrNotOwner         = errors.New("resource belongs to another user")
)

// TimetableEntry is a weekly recurring course slot. Days use ISO numbering:
// 1 is Monday, 7 is Sunday.
type TimetableEntry struct {
	shared.BaseAggregateRoot

	userID        uuid.UUID
	courseName    string
	courseCode    string
	instructor    string
	room          string
	daysOfWeek    []int
	startTime     string // "HH:mm"
	endTime       string // "HH:mm"
	semesterStart *time.Time
	semesterEnd   *time.Time
	color         string
	category      string
	excludedDates []string // "YYYY-MM-DD"
}

// NewTimetableEntry creates a recurring entry.
func NewTimetableEntry(userID uuid.UUID, courseName string, daysOfWeek []int, startTime, endTime string) (*TimetableEntry, error) {
	courseName = strings.TrimSpace(courseName)
	if courseName == "" {
		return nil, ErrEmptyCourseName
	}
	if len(daysOfWeek) == 0 {
		return nil, ErrNoDaysOfWeek
	}
	for _, day := range daysOfWeek {
		if day < 1 || day > 7 {
			return nil, ErrInvalidDayOfWeek
		}
	}
	startMin, err := parseClock(startTime)
	if err != nil {
		return nil, err
	}
	endMin, err := parseClock(endTime)
	if err != nil {
		return nil, err
	}
	if endMin <= startMin {
		return nil, ErrInvalidTimeRange
	}

	return &TimetableEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		userID:            userID,
		courseName:        courseName,
		daysOfWeek:        slices.Clone(daysOfWeek),
		startTime:         startTime,
		endTime:           endTime,
	}, nil
}

// RehydrateTimetableEntry recreates an entry from persisted state.
func RehydrateTimetableEntry(
	base shared.BaseEntity,
	userID uuid.UUID,
	courseName, courseCode, instructor, room string,
	daysOfWeek []int,
	startTime, endTime string,
	semesterStart, semesterEnd *time.Time,
	color, category string,
	excludedDates []string,
) *TimetableEntry {
	return &TimetableEntry{
		BaseAggregateRoot: shared.RehydrateBaseAggregateRoot(base),
		userID:            userID,
		courseName:        courseName,
		courseCode:        courseCode,
		instructor:        instructor,
		room:              room,
		daysOfWeek:        daysOfWeek,
		startTime:         startTime,
		endTime:           endTime,
		semesterStart:     semesterStart,
		semesterEnd:       semesterEnd,
		color:             color,
		category:          category,
		excludedDates:     excludedDates,
	}
}

func (e *TimetableEntry) UserID() uuid.UUID         { return e.userID }
func (e *TimetableEntry) CourseName() string        { return e.courseName }
func (e *TimetableEntry) CourseCode() string        { return e.courseCode }
func (e *TimetableEntry) Instructor() string        { return e.instructor }
func (e *TimetableEntry) Room() string              { return e.room }
func (e *TimetableEntry) DaysOfWeek() []int         { return e.daysOfWeek }
func (e *TimetableEntry) StartTime() string         { return e.startTime }
func (e *TimetableEntry) EndTime() string           { return e.endTime }
func (e *TimetableEntry) SemesterStart() *time.Time { return e.semesterStart }
func (e *TimetableEntry) SemesterEnd() *time.Time   { return e.semesterEnd }
func (e *TimetableEntry) Color() string             { return e.color }
func (e *TimetableEntry) Category() string          { return e.category }
func (e *TimetableEntry) ExcludedDates() []string   { return e.excludedDates }

// SetDetails updates the descriptive fields.
func (e *TimetableEntry) SetDetails(courseCode, instructor, room, color, category string) {
	e.courseCode = courseCode
	e.instructor = instructor
	e.room = room
	e.color = color
	e.category = category
	e.Touch()
}

// SetSemester bounds the entry to a semester. Nil bounds mean open-ended.
func (e *TimetableEntry) SetSemester(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return ErrInvalidSemester
	}
	e.semesterStart = start
	e.semesterEnd = end
	e.Touch()
	return nil
}

// SetSchedule replaces the recurring days and clock times.
func (e *TimetableEntry) SetSchedule(daysOfWeek []int, startTime, endTime string) error {
	if len(daysOfWeek) == 0 {
		return ErrNoDaysOfWeek
	}
	for _, day := range daysOfWeek {
		if day < 1 || day > 7 {
			return ErrInvalidDayOfWeek
		}
	}
	startMin, err := parseClock(startTime)
	if err != nil {
		return err
	}
	endMin, err := parseClock(endTime)
	if err != nil {
		return err
	}
	if endMin <= startMin {
		return ErrInvalidTimeRange
	}
	e.daysOfWeek = slices.Clone(daysOfWeek)
	e.startTime = startTime
	e.endTime = endTime
	e.Touch()
	return nil
}

// ExcludeDate skips one dated occurrence (holiday, cancelled class).
func (e *TimetableEntry) ExcludeDate(date time.Time) {
	key := date.Format("2006-01-02")
	if slices.Contains(e.excludedDates, key) {
		return
	}
	e.excludedDates = append(e.excludedDates, key)
	e.Touch()
}

// IncludeDate removes a previous exclusion.
func (e *TimetableEntry) IncludeDate(date time.Time) {
	key := date.Format("2006-01-02")
	e.excludedDates = slices.DeleteFunc(slices.Clone(e.excludedDates), func(d string) bool {
		return d == key
	})
	e.Touch()
}

// OccurrencesOn returns the dated occurrence on the given day, when one
// exists: the day must match a recurring weekday, fall inside the semester
// bounds, and not be excluded.
func (e *TimetableEntry) OccurrencesOn(date time.Time) (start, end time.Time, ok bool) {
	if !slices.Contains(e.daysOfWeek, isoWeekday(date)) {
		return time.Time{}, time.Time{}, false
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if e.semesterStart != nil && day.Before(startOfDay(*e.semesterStart)) {
		return time.Time{}, time.Time{}, false
	}
	if e.semesterEnd != nil && day.After(startOfDay(*e.semesterEnd)) {
		return time.Time{}, time.Time{}, false
	}
	if slices.Contains(e.excludedDates, day.Format("2006-01-02")) {
		return time.Time{}, time.Time{}, false
	}

	startMin, err := parseClock(e.startTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	endMin, err := parseClock(e.endTime)
	if err != nil || endMin <= startMin {
		return time.Time{}, time.Time{}, false
	}
	return day.Add(time.Duration(startMin) * time.Minute), day.Add(time.Duration(endMin) * time.Minute), true
}

// isoWeekday maps Go's Sunday-based weekday to ISO 1=Monday..7=Sunday.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// parseClock converts "HH:mm" to minutes since midnight.
func parseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, ErrInvalidClockTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidClockTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidClockTime
	}
	return h*60 + m, nil
}
