package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
	"github.com/felixgeelhaar/studora/internal/insights/domain"
)

// WorkloadDTO is the day-workload read model.
type WorkloadDTO struct {
	Date            string `json:"date"` // YYYY-MM-DD
	FlexibleMinutes int    `json:"flexible_minutes"`
	FixedMinutes    int    `json:"fixed_minutes"`
	TotalMinutes    int    `json:"total_minutes"`
	FlexibleCount   int    `json:"flexible_count"`
	FixedCount      int    `json:"fixed_count"`
	Overcommitted   bool   `json:"overcommitted"`
}

// WorkloadCache is a read-through cache for day-workload results. Both
// operations are best-effort; a miss or a cache failure just means the
// workload is computed from the item store.
type WorkloadCache interface {
	Get(ctx context.Context, userID uuid.UUID, day time.Time) (*WorkloadDTO, bool)
	Set(ctx context.Context, userID uuid.UUID, day time.Time, workload *WorkloadDTO)
}

// DayWorkloadQuery asks for one day's workload summary.
type DayWorkloadQuery struct {
	UserID uuid.UUID
	Date   time.Time
}

// DayWorkloadHandler computes a day's workload, serving from cache when
// a fresh entry exists.
type DayWorkloadHandler struct {
	itemRepo  agendaDomain.ItemRepository
	cache     WorkloadCache
	threshold int
}

// NewDayWorkloadHandler creates a DayWorkloadHandler. The cache may be nil.
func NewDayWorkloadHandler(itemRepo agendaDomain.ItemRepository, cache WorkloadCache) *DayWorkloadHandler {
	return &DayWorkloadHandler{
		itemRepo:  itemRepo,
		cache:     cache,
		threshold: domain.DefaultOvercommitThreshold,
	}
}

// Handle executes the DayWorkloadQuery.
func (h *DayWorkloadHandler) Handle(ctx context.Context, query DayWorkloadQuery) (*WorkloadDTO, error) {
	if h.cache != nil {
		if cached, ok := h.cache.Get(ctx, query.UserID, query.Date); ok {
			return cached, nil
		}
	}

	items, err := h.itemRepo.FindByUserID(ctx, query.UserID, agendaDomain.ItemFilter{})
	if err != nil {
		return nil, err
	}

	workload := domain.ComputeDailyWorkload(items, query.Date)
	dto := &WorkloadDTO{
		Date:            workload.Date.Format("2006-01-02"),
		FlexibleMinutes: workload.FlexibleMinutes,
		FixedMinutes:    workload.FixedMinutes,
		TotalMinutes:    workload.TotalMinutes(),
		FlexibleCount:   workload.FlexibleCount,
		FixedCount:      workload.FixedCount,
		Overcommitted:   workload.Overcommitted(h.threshold),
	}

	if h.cache != nil {
		h.cache.Set(ctx, query.UserID, query.Date, dto)
	}
	return dto, nil
}
