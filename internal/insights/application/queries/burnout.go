package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
	"github.com/felixgeelhaar/studora/internal/insights/domain"
)

// BurnoutDTO is the burnout-risk read model.
type BurnoutDTO struct {
	WindowDays          int           `json:"window_days"`
	OverloadedDays      int           `json:"overloaded_days"`
	AverageDailyMinutes float64       `json:"average_daily_minutes"`
	AtRisk              bool          `json:"at_risk"`
	Days                []WorkloadDTO `json:"days"`
}

// BurnoutQuery asks for burnout risk over a trailing window ending today.
type BurnoutQuery struct {
	UserID     uuid.UUID
	WindowDays int // 0 means the default window
}

// BurnoutHandler evaluates overload across the trailing window.
type BurnoutHandler struct {
	itemRepo  agendaDomain.ItemRepository
	threshold int
	now       func() time.Time
}

// NewBurnoutHandler creates a BurnoutHandler.
func NewBurnoutHandler(itemRepo agendaDomain.ItemRepository) *BurnoutHandler {
	return &BurnoutHandler{
		itemRepo:  itemRepo,
		threshold: domain.DefaultOvercommitThreshold,
		now:       time.Now,
	}
}

// Handle executes the BurnoutQuery.
func (h *BurnoutHandler) Handle(ctx context.Context, query BurnoutQuery) (*BurnoutDTO, error) {
	window := query.WindowDays
	if window <= 0 {
		window = domain.DefaultBurnoutWindowDays
	}

	items, err := h.itemRepo.FindByUserID(ctx, query.UserID, agendaDomain.ItemFilter{})
	if err != nil {
		return nil, err
	}

	now := h.now()
	days := make([]domain.DailyWorkload, 0, window)
	for i := window - 1; i >= 0; i-- {
		days = append(days, domain.ComputeDailyWorkload(items, now.AddDate(0, 0, -i)))
	}

	report := domain.BurnoutFor(days, h.threshold)
	dto := &BurnoutDTO{
		WindowDays:          report.WindowDays,
		OverloadedDays:      report.OverloadedDays,
		AverageDailyMinutes: report.AverageDailyMinutes,
		AtRisk:              report.AtRisk,
		Days:                make([]WorkloadDTO, 0, len(days)),
	}
	for _, day := range days {
		dto.Days = append(dto.Days, WorkloadDTO{
			Date:            day.Date.Format("2006-01-02"),
			FlexibleMinutes: day.FlexibleMinutes,
			FixedMinutes:    day.FixedMinutes,
			TotalMinutes:    day.TotalMinutes(),
			FlexibleCount:   day.FlexibleCount,
			FixedCount:      day.FixedCount,
			Overcommitted:   day.Overcommitted(h.threshold),
		})
	}
	return dto, nil
}
