package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/studora/internal/planning/domain"
)

func TestParseDurationMinutes(t *testing.T) {
	tests := map[string]int{
		"2h":       120,
		"1h":       60,
		"2 hours":  120,
		"45m":      45,
		"45 min":   45,
		"90":       90,
		"0":        0,
		"":         0,
		"   ":      0,
		"soon":     0,
		"h":        0,
		"abc123":   0,
		"10x":      10,
		"3h30m":    180, // only the leading integer counts; hour marker wins
		"120 mins": 120,
	}
	for expr, want := range tests {
		assert.Equal(t, want, domain.ParseDurationMinutes(expr), "expr=%q", expr)
	}
}

func TestDayWindow(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	assert.NoError(t, err)

	instant := time.Date(2026, 3, 2, 15, 42, 7, 123, loc)
	start, end := domain.DayWindow(instant)

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 3, 2, 23, 59, 59, 999_000_000, loc), end)
	assert.Equal(t, loc, start.Location())
}

func TestClipToWindow(t *testing.T) {
	winStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	winEnd := time.Date(2026, 3, 2, 23, 59, 59, 999_000_000, time.UTC)

	t.Run("fully inside passes through", func(t *testing.T) {
		s := winStart.Add(9 * time.Hour)
		e := winStart.Add(10 * time.Hour)
		cs, ce, ok := domain.ClipToWindow(s, e, winStart, winEnd)
		assert.True(t, ok)
		assert.Equal(t, s, cs)
		assert.Equal(t, e, ce)
	})

	t.Run("straddling start is clipped", func(t *testing.T) {
		s := winStart.Add(-2 * time.Hour)
		e := winStart.Add(3 * time.Hour)
		cs, ce, ok := domain.ClipToWindow(s, e, winStart, winEnd)
		assert.True(t, ok)
		assert.Equal(t, winStart, cs)
		assert.Equal(t, e, ce)
	})

	t.Run("outside the window yields nothing", func(t *testing.T) {
		s := winStart.Add(-5 * time.Hour)
		e := winStart.Add(-2 * time.Hour)
		_, _, ok := domain.ClipToWindow(s, e, winStart, winEnd)
		assert.False(t, ok)
	})

	t.Run("inverted interval yields nothing", func(t *testing.T) {
		s := winStart.Add(10 * time.Hour)
		e := winStart.Add(9 * time.Hour)
		_, _, ok := domain.ClipToWindow(s, e, winStart, winEnd)
		assert.False(t, ok)
	})
}
