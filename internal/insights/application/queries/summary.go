package queries

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
	planningDomain "github.com/felixgeelhaar/studora/internal/planning/domain"
)

// SummaryDTO is the overall insights read model.
type SummaryDTO struct {
	TotalItems     int     `json:"total_items"`
	CompletedItems int     `json:"completed_items"`
	OpenItems      int     `json:"open_items"`
	CompletionRate float64 `json:"completion_rate"` // percentage, one decimal
	MissedSessions int     `json:"missed_sessions"`
	Warning        string  `json:"warning,omitempty"`
}

// SummaryQuery asks for the user's overall progress summary.
type SummaryQuery struct {
	UserID uuid.UUID
}

// SummaryHandler reports item completion alongside planned sessions whose
// time slot has already passed.
type SummaryHandler struct {
	itemRepo    agendaDomain.ItemRepository
	sessionRepo planningDomain.SessionRepository
	now         func() time.Time
}

// NewSummaryHandler creates a SummaryHandler.
func NewSummaryHandler(itemRepo agendaDomain.ItemRepository, sessionRepo planningDomain.SessionRepository) *SummaryHandler {
	return &SummaryHandler{itemRepo: itemRepo, sessionRepo: sessionRepo, now: time.Now}
}

// Handle executes the SummaryQuery.
func (h *SummaryHandler) Handle(ctx context.Context, query SummaryQuery) (*SummaryDTO, error) {
	items, err := h.itemRepo.FindByUserID(ctx, query.UserID, agendaDomain.ItemFilter{})
	if err != nil {
		return nil, err
	}
	missed, err := h.sessionRepo.CountPlannedEndedBefore(ctx, query.UserID, h.now())
	if err != nil {
		return nil, err
	}

	dto := &SummaryDTO{TotalItems: len(items), MissedSessions: missed}
	for _, it := range items {
		if it.IsCompleted() {
			dto.CompletedItems++
		}
	}
	dto.OpenItems = dto.TotalItems - dto.CompletedItems
	if dto.TotalItems > 0 {
		rate := 100 * float64(dto.CompletedItems) / float64(dto.TotalItems)
		dto.CompletionRate = math.Round(rate*10) / 10
	}
	if missed > 0 {
		dto.Warning = fmt.Sprintf("%d planned study sessions have already passed; regenerate your plan", missed)
	}
	return dto, nil
}
