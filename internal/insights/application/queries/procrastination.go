package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	agendaDomain "github.com/felixgeelhaar/studora/internal/agenda/domain"
	"github.com/felixgeelhaar/studora/internal/insights/domain"
)

// ProcrastinationDTO is the procrastination read model.
type ProcrastinationDTO struct {
	Tracked         int     `json:"tracked"`
	MissedDeadlines int     `json:"missed_deadlines"`
	LateStage       int     `json:"late_stage"`
	Score           float64 `json:"score"`
	Level           string  `json:"level"`
}

// ProcrastinationQuery asks for the user's procrastination score.
type ProcrastinationQuery struct {
	UserID uuid.UUID
}

// ProcrastinationHandler scores missed-deadline and last-moment behavior
// over all of the user's deadline-bearing items.
type ProcrastinationHandler struct {
	itemRepo agendaDomain.ItemRepository
	now      func() time.Time
}

// NewProcrastinationHandler creates a ProcrastinationHandler.
func NewProcrastinationHandler(itemRepo agendaDomain.ItemRepository) *ProcrastinationHandler {
	return &ProcrastinationHandler{itemRepo: itemRepo, now: time.Now}
}

// Handle executes the ProcrastinationQuery.
func (h *ProcrastinationHandler) Handle(ctx context.Context, query ProcrastinationQuery) (*ProcrastinationDTO, error) {
	items, err := h.itemRepo.FindByUserID(ctx, query.UserID, agendaDomain.ItemFilter{})
	if err != nil {
		return nil, err
	}

	report := domain.ProcrastinationFor(items, h.now())
	return &ProcrastinationDTO{
		Tracked:         report.Tracked,
		MissedDeadlines: report.Missed,
		LateStage:       report.LateStage,
		Score:           report.Score,
		Level:           string(report.Level),
	}, nil
}
