package domain

import (
	"math"
	"time"

	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
)

const (
	// LateStageRatio is the fraction of the creation-to-deadline span
	// after which an unfinished item counts as last-moment work.
	LateStageRatio = 0.8

	// DefaultBurnoutWindowDays is the trailing window for burnout analysis.
	DefaultBurnoutWindowDays = 7
)

// ProcrastinationLevel bands the score into user-facing severities.
type ProcrastinationLevel string

const (
	ProcrastinationNone     ProcrastinationLevel = "none"
	ProcrastinationModerate ProcrastinationLevel = "moderate"
	ProcrastinationHigh     ProcrastinationLevel = "high"
)

// ProcrastinationReport summarizes missed-deadline and last-moment
// behavior over the user's deadline-bearing items.
type ProcrastinationReport struct {
	Tracked   int
	Missed    int
	LateStage int
	Score     float64 // percentage, one decimal
	Level     ProcrastinationLevel
}

// ProcrastinationFor scores the user's items. Only deadline-bearing items
// are tracked; an item is missed when its deadline has passed unfinished,
// and late-stage when unfinished with more than 80% of the time between
// creation and deadline already elapsed.
func ProcrastinationFor(items []*agendaDomain.Item, now time.Time) ProcrastinationReport {
	var report ProcrastinationReport

	for _, it := range items {
		deadline := it.Deadline()
		if deadline == nil {
			continue
		}
		report.Tracked++

		if it.IsCompleted() {
			continue
		}
		if it.IsPastDeadline(now) {
			report.Missed++
			continue
		}
		allotted := deadline.Sub(it.CreatedAt())
		if allotted <= 0 {
			continue
		}
		elapsed := now.Sub(it.CreatedAt())
		if float64(elapsed)/float64(allotted) > LateStageRatio {
			report.LateStage++
		}
	}

	if report.Tracked > 0 {
		score := 100 * float64(report.Missed+report.LateStage) / float64(report.Tracked)
		report.Score = math.Min(math.Round(score*10)/10, 100)
	}
	switch {
	case report.Score > 60:
		report.Level = ProcrastinationHigh
	case report.Score > 30:
		report.Level = ProcrastinationModerate
	default:
		report.Level = ProcrastinationNone
	}

	return report
}

// BurnoutReport summarizes overload across a trailing window of days.
type BurnoutReport struct {
	WindowDays          int
	OverloadedDays      int
	AverageDailyMinutes float64
	AtRisk              bool
}

// BurnoutFor evaluates the trailing window: a day is overloaded when its
// flexible workload exceeds the threshold, and risk is raised when at
// least half the window (rounded up) is overloaded.
func BurnoutFor(days []DailyWorkload, threshold int) BurnoutReport {
	report := BurnoutReport{WindowDays: len(days)}
	if len(days) == 0 {
		return report
	}

	total := 0
	for _, day := range days {
		total += day.FlexibleMinutes
		if day.FlexibleMinutes > threshold {
			report.OverloadedDays++
		}
	}

	report.AverageDailyMinutes = math.Round(float64(total)/float64(len(days))*10) / 10
	report.AtRisk = report.OverloadedDays >= (len(days)+1)/2

	return report
}
