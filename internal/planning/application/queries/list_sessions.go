package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/planning/domain"
)

// SessionDTO is a data transfer object for study sessions.
type SessionDTO struct {
	ID           uuid.UUID
	ItemID       uuid.UUID
	StartTime    time.Time
	EndTime      time.Time
	Status       string
	Minutes      int
	UnmetMinutes int
	Rationale    string
}

// ListSessionsQuery contains the parameters for listing sessions.
type ListSessionsQuery struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
}

// ListSessionsHandler handles the ListSessionsQuery.
type ListSessionsHandler struct {
	sessionRepo domain.SessionRepository
}

// NewListSessionsHandler creates a new ListSessionsHandler.
func NewListSessionsHandler(sessionRepo domain.SessionRepository) *ListSessionsHandler {
	return &ListSessionsHandler{sessionRepo: sessionRepo}
}

// Handle executes the ListSessionsQuery.
func (h *ListSessionsHandler) Handle(ctx context.Context, query ListSessionsQuery) ([]SessionDTO, error) {
	sessions, err := h.sessionRepo.FindByUserAndRange(ctx, query.UserID, query.From, query.To)
	if err != nil {
		return nil, err
	}

	dtos := make([]SessionDTO, len(sessions))
	for i, s := range sessions {
		dtos[i] = SessionDTO{
			ID:           s.ID(),
			ItemID:       s.ItemID(),
			StartTime:    s.StartTime(),
			EndTime:      s.EndTime(),
			Status:       string(s.Status()),
			Minutes:      s.Minutes(),
			UnmetMinutes: s.UnmetMinutes(),
			Rationale:    s.Rationale(),
		}
	}
	return dtos, nil
}
