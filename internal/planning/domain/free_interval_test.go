package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studora/internal/planning/domain"
)

func hm(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestComputeFreeIntervals_Subtraction(t *testing.T) {
	// Day window 08:00-20:00 with commitments 09:00-10:00 and 14:00-15:30
	// leaves exactly [08:00-09:00, 10:00-14:00, 15:30-20:00].
	free := domain.ComputeFreeIntervals(hm(8, 0), hm(20, 0), []domain.BusyInterval{
		{Start: hm(9, 0), End: hm(10, 0)},
		{Start: hm(14, 0), End: hm(15, 30)},
	})

	require.Len(t, free, 3)
	assert.Equal(t, domain.FreeInterval{Start: hm(8, 0), End: hm(9, 0)}, free[0])
	assert.Equal(t, domain.FreeInterval{Start: hm(10, 0), End: hm(14, 0)}, free[1])
	assert.Equal(t, domain.FreeInterval{Start: hm(15, 30), End: hm(20, 0)}, free[2])
}

func TestComputeFreeIntervals_OrderIndependent(t *testing.T) {
	busy := []domain.BusyInterval{
		{Start: hm(9, 0), End: hm(10, 0)},
		{Start: hm(14, 0), End: hm(15, 30)},
	}
	reversed := []domain.BusyInterval{busy[1], busy[0]}

	a := domain.ComputeFreeIntervals(hm(8, 0), hm(20, 0), busy)
	b := domain.ComputeFreeIntervals(hm(8, 0), hm(20, 0), reversed)

	assert.Equal(t, a, b)
}

func TestComputeFreeIntervals_EmptyBusy(t *testing.T) {
	free := domain.ComputeFreeIntervals(hm(8, 0), hm(20, 0), nil)

	require.Len(t, free, 1)
	assert.Equal(t, hm(8, 0), free[0].Start)
	assert.Equal(t, hm(20, 0), free[0].End)
}

func TestComputeFreeIntervals_OverlappingBusy(t *testing.T) {
	// Two overlapping commitments remove the union of their spans.
	free := domain.ComputeFreeIntervals(hm(8, 0), hm(12, 0), []domain.BusyInterval{
		{Start: hm(9, 0), End: hm(10, 30)},
		{Start: hm(10, 0), End: hm(11, 0)},
	})

	require.Len(t, free, 2)
	assert.Equal(t, domain.FreeInterval{Start: hm(8, 0), End: hm(9, 0)}, free[0])
	assert.Equal(t, domain.FreeInterval{Start: hm(11, 0), End: hm(12, 0)}, free[1])
}

func TestComputeFreeIntervals_ZeroWidthBusyIgnored(t *testing.T) {
	// end <= start occupies nothing; one malformed record must not halt
	// the computation.
	free := domain.ComputeFreeIntervals(hm(8, 0), hm(12, 0), []domain.BusyInterval{
		{Start: hm(9, 0), End: hm(9, 0)},
		{Start: hm(11, 0), End: hm(10, 0)},
	})

	require.Len(t, free, 1)
	assert.Equal(t, hm(8, 0), free[0].Start)
	assert.Equal(t, hm(12, 0), free[0].End)
}

func TestComputeFreeIntervals_FullyOccupied(t *testing.T) {
	free := domain.ComputeFreeIntervals(hm(8, 0), hm(12, 0), []domain.BusyInterval{
		{Start: hm(7, 0), End: hm(13, 0)},
	})

	assert.Empty(t, free)
}

func TestComputeFreeIntervals_InvertedWindow(t *testing.T) {
	free := domain.ComputeFreeIntervals(hm(12, 0), hm(8, 0), nil)

	assert.Empty(t, free)
}

func TestFreeInterval_Minutes(t *testing.T) {
	f := domain.FreeInterval{Start: hm(8, 0), End: hm(9, 30)}

	assert.Equal(t, 90, f.Minutes())
	assert.Equal(t, 90*time.Minute, f.Duration())
}
