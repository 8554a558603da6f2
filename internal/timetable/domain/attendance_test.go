package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

func TestParseAttendanceStatus(t *testing.T) {
	cases := map[string]domain.AttendanceStatus{
		"present":   domain.StatusPresent,
		"ABSENT":    domain.StatusAbsent,
		" late ":    domain.StatusLate,
		"excused":   domain.StatusExcused,
		"cancelled": domain.StatusCancelled,
		"":          domain.StatusPresent,
	}
	for raw, want := range cases {
		got, err := domain.ParseAttendanceStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := domain.ParseAttendanceStatus("skipped")
	assert.Error(t, err)
}

func TestNewAttendanceRecord(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("creates a valid record", func(t *testing.T) {
		record, err := domain.NewAttendanceRecord(userID, "Algorithms", date, domain.StatusLate, "overslept")

		require.NoError(t, err)
		assert.Equal(t, domain.StatusLate, record.Status())
		assert.Equal(t, "overslept", record.Note())
	})

	t.Run("rejects empty course name", func(t *testing.T) {
		_, err := domain.NewAttendanceRecord(userID, "", date, domain.StatusPresent, "")
		assert.ErrorIs(t, err, domain.ErrEmptyCourseName)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := domain.NewAttendanceRecord(userID, "Algorithms", date, "vanished", "")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestAttendanceRateByCourse(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	record := func(t *testing.T, course string, status domain.AttendanceStatus) *domain.AttendanceRecord {
		t.Helper()
		r, err := domain.NewAttendanceRecord(userID, course, date, status, "")
		require.NoError(t, err)
		return r
	}

	records := []*domain.AttendanceRecord{
		record(t, "Algorithms", domain.StatusPresent),
		record(t, "Algorithms", domain.StatusLate),
		record(t, "Algorithms", domain.StatusAbsent),
		record(t, "Algorithms", domain.StatusExcused),
		record(t, "Algorithms", domain.StatusCancelled),
		record(t, "Statistics", domain.StatusAbsent),
	}

	rates := domain.AttendanceRateByCourse(records)

	algo := rates["Algorithms"]
	assert.Equal(t, 2, algo.Attended, "late counts as attended")
	assert.Equal(t, 1, algo.Absent)
	assert.Equal(t, 1, algo.Excused)
	assert.Equal(t, 1, algo.Cancelled)
	assert.Equal(t, 66.7, algo.Rate, "excused and cancelled are not in the denominator")

	stats := rates["Statistics"]
	assert.Zero(t, stats.Attended)
	assert.Zero(t, stats.Rate)
}
