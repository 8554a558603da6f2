package domain

import (
	"strconv"
	"strings"
	"time"
)

// ParseDurationMinutes converts a duration expression into whole minutes.
// Accepted forms: a bare number ("90", already minutes), an hour form
// ("2h", "2 hours"), or a minute form ("45m", "45 min"). Empty or
// unparseable input resolves to zero minutes; a missing duration is a
// valid "nothing to schedule", never an error.
func ParseDurationMinutes(expr string) int {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0
	}

	n := leadingInt(expr)
	switch {
	case strings.Contains(expr, "h"):
		return n * 60
	case strings.Contains(expr, "m"):
		return n
	default:
		return n
	}
}

// leadingInt extracts the leading non-negative integer of s, or 0.
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// DayWindow returns the calendar-day bounds of t in t's location:
// 00:00:00.000 and 23:59:59.999.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
	return start, end
}

// ClipToWindow intersects [start, end) with [winStart, winEnd). When the
// interval lies outside the window the result is zero-width (ok == false).
func ClipToWindow(start, end, winStart, winEnd time.Time) (time.Time, time.Time, bool) {
	if start.Before(winStart) {
		start = winStart
	}
	if end.After(winEnd) {
		end = winEnd
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
