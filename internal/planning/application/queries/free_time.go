package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
	"github.com/felixgeelhaar/studora/internal/planning/domain"
)

// FreeIntervalDTO is one free span of the requested day.
type FreeIntervalDTO struct {
	Start   time.Time
	End     time.Time
	Minutes int
}

// FreeTimeQuery asks for the unoccupied time of one calendar day.
type FreeTimeQuery struct {
	UserID uuid.UUID
	Date   time.Time
}

// FreeTimeResult carries the free intervals and their total.
type FreeTimeResult struct {
	Intervals    []FreeIntervalDTO
	TotalMinutes int
}

// FreeTimeHandler computes a day's free intervals from fixed commitments.
type FreeTimeHandler struct {
	itemRepo agendaDomain.ItemRepository
}

// NewFreeTimeHandler creates a new FreeTimeHandler.
func NewFreeTimeHandler(itemRepo agendaDomain.ItemRepository) *FreeTimeHandler {
	return &FreeTimeHandler{itemRepo: itemRepo}
}

// Handle executes the FreeTimeQuery.
func (h *FreeTimeHandler) Handle(ctx context.Context, query FreeTimeQuery) (*FreeTimeResult, error) {
	winStart, winEnd := domain.DayWindow(query.Date)

	fixed, err := h.itemRepo.FindFixedInRange(ctx, query.UserID, winStart, winEnd)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.BusyInterval, 0, len(fixed))
	for _, f := range fixed {
		start, end, ok := domain.ClipToWindow(*f.StartTime(), *f.EndTime(), winStart, winEnd)
		if !ok {
			continue
		}
		busy = append(busy, domain.BusyInterval{Start: start, End: end})
	}

	free := domain.ComputeFreeIntervals(winStart, winEnd, busy)

	result := &FreeTimeResult{Intervals: make([]FreeIntervalDTO, len(free))}
	for i, f := range free {
		result.Intervals[i] = FreeIntervalDTO{Start: f.Start, End: f.End, Minutes: f.Minutes()}
		result.TotalMinutes += f.Minutes()
	}
	return result, nil
}
