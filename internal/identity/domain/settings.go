package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidClockTime = errors.New("clock time must be HH:mm")

// PlanSettings are the per-user knobs the planning engine reads: when the
// user sleeps and how long a single study block should be.
type PlanSettings struct {
	SleepStart       string // "HH:mm"
	SleepEnd         string // "HH:mm"
	SessionLengthMin int
}

// DefaultPlanSettings returns the stock settings used when a user has
// never configured anything.
func DefaultPlanSettings() PlanSettings {
	return PlanSettings{
		SleepStart:       "23:00",
		SleepEnd:         "07:00",
		SessionLengthMin: 60,
	}
}

// Validate checks the settings are well-formed.
func (s PlanSettings) Validate() error {
	if _, err := ParseClockHour(s.SleepStart); err != nil {
		return fmt.Errorf("sleep start: %w", err)
	}
	if _, err := ParseClockHour(s.SleepEnd); err != nil {
		return fmt.Errorf("sleep end: %w", err)
	}
	if s.SessionLengthMin <= 0 {
		return errors.New("session length must be positive")
	}
	return nil
}

// SleepStartHour returns the sleep window start hour (0-23).
func (s PlanSettings) SleepStartHour() int {
	h, err := ParseClockHour(s.SleepStart)
	if err != nil {
		return 23
	}
	return h
}

// SleepEndHour returns the sleep window end hour (0-23).
func (s PlanSettings) SleepEndHour() int {
	h, err := ParseClockHour(s.SleepEnd)
	if err != nil {
		return 7
	}
	return h
}

// ParseClockHour extracts the hour from an "HH:mm" clock time.
func ParseClockHour(clock string) (int, error) {
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
	return h, nil
}
