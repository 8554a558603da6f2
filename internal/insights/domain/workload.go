package domain

import (
	"time"

	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
	planningDomain "github.com/felixgeelhaar/studora/internal/planning/domain"
)

// DefaultOvercommitThreshold is the daily workload ceiling in minutes
// (8 hours) above which a day counts as overcommitted.
const DefaultOvercommitThreshold = 480

// DailyWorkload is one day's workload split into flexible work (open
// deferrable items due that day) and fixed commitments (calendar blocks
// overlapping the day, clipped to it).
type DailyWorkload struct {
	Date            time.Time
	FlexibleMinutes int
	FixedMinutes    int
	FlexibleCount   int
	FixedCount      int
}

// TotalMinutes is the combined flexible and fixed workload.
func (w DailyWorkload) TotalMinutes() int {
	return w.FlexibleMinutes + w.FixedMinutes
}

// Overcommitted reports whether the day's total workload exceeds the
// threshold. Exactly at the threshold is not overcommitted.
func (w DailyWorkload) Overcommitted(threshold int) bool {
	return w.TotalMinutes() > threshold
}

// ComputeDailyWorkload partitions the user's items against one calendar
// day. Flexible work is any open deferrable item with a real duration
// whose deadline falls on the day; items without a duration contribute
// nothing, so aggregation never over-reports work that does not exist.
// Fixed commitments count the minutes they actually occupy inside the
// day window.
func ComputeDailyWorkload(items []*agendaDomain.Item, day time.Time) DailyWorkload {
	winStart, winEnd := planningDomain.DayWindow(day)
	workload := DailyWorkload{Date: winStart}

	for _, it := range items {
		if it.IsFixed() {
			start, end, ok := planningDomain.ClipToWindow(*it.StartTime(), *it.EndTime(), winStart, winEnd)
			if !ok {
				continue
			}
			minutes := int(end.Sub(start) / time.Minute)
			if minutes <= 0 {
				continue
			}
			workload.FixedMinutes += minutes
			workload.FixedCount++
			continue
		}

		if it.IsCompleted() || !it.Classification().IsDeferrable() {
			continue
		}
		deadline := it.Deadline()
		if deadline == nil || deadline.Before(winStart) || !deadline.Before(winEnd) {
			continue
		}
		minutes := it.DurationMinutes()
		if minutes <= 0 {
			continue
		}
		workload.FlexibleMinutes += minutes
		workload.FlexibleCount++
	}

	return workload
}
