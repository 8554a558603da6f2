package domain

import (
	"sort"
	"time"
)

// FreeInterval is a contiguous span of a scheduling window not covered by
// any fixed commitment. The set of intervals for a window is disjoint and
// sorted by start time; zero-width intervals are dropped.
type FreeInterval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the interval width.
func (f FreeInterval) Duration() time.Duration {
	return f.End.Sub(f.Start)
}

// Minutes returns the interval width in whole minutes.
func (f FreeInterval) Minutes() int {
	return int(f.End.Sub(f.Start).Minutes())
}

// BusyInterval is an occupied span subtracted from the free set. Spans with
// End before or equal to Start occupy no time and are ignored rather than
// rejected, so one malformed commitment cannot halt the computation.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// ComputeFreeIntervals subtracts each busy interval from the window and
// returns the remaining free intervals sorted by start time. Subtraction is
// commutative, so the busy list may arrive in any order; overlapping busy
// intervals are each subtracted against the current free state and their
// union is removed.
func ComputeFreeIntervals(winStart, winEnd time.Time, busy []BusyInterval) []FreeInterval {
	if !winEnd.After(winStart) {
		return nil
	}

	free := []FreeInterval{{Start: winStart, End: winEnd}}

	for _, b := range busy {
		if !b.End.After(b.Start) {
			continue
		}

		next := make([]FreeInterval, 0, len(free)+1)
		for _, f := range free {
			// No overlap: pass through unchanged.
			if !b.Start.Before(f.End) || !b.End.After(f.Start) {
				next = append(next, f)
				continue
			}
			// Portion before the busy span.
			if f.Start.Before(b.Start) {
				next = append(next, FreeInterval{Start: f.Start, End: b.Start})
			}
			// Portion after the busy span.
			if f.End.After(b.End) {
				next = append(next, FreeInterval{Start: b.End, End: f.End})
			}
		}
		free = next
	}

	sort.Slice(free, func(i, j int) bool {
		return free[i].Start.Before(free[j].Start)
	})

	return free
}
