package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/studora/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "StudySession"

	RoutingKeySessionPlanned     = "planning.session.planned"
	RoutingKeySessionUnscheduled = "planning.session.unscheduled"
	RoutingKeyPlanRegenerated    = "planning.plan.regenerated"
)

// SessionPlanned is emitted when a session is allocated to a work item.
type SessionPlanned struct {
	sharedDomain.BaseEvent
	ItemID    uuid.UUID `json:"item_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

// NewSessionPlanned creates a SessionPlanned event.
func NewSessionPlanned(s *StudySession) SessionPlanned {
	return SessionPlanned{
		BaseEvent: sharedDomain.NewBaseEvent(s.ID(), AggregateType, RoutingKeySessionPlanned),
		ItemID:    s.ItemID(),
		StartTime: s.StartTime(),
		EndTime:   s.EndTime(),
		Status:    string(s.Status()),
	}
}

// SessionUnscheduled is emitted when part of an item's need found no capacity.
type SessionUnscheduled struct {
	sharedDomain.BaseEvent
	ItemID       uuid.UUID `json:"item_id"`
	UnmetMinutes int       `json:"unmet_minutes"`
}

// NewSessionUnscheduled creates a SessionUnscheduled event.
func NewSessionUnscheduled(s *StudySession) SessionUnscheduled {
	return SessionUnscheduled{
		BaseEvent:    sharedDomain.NewBaseEvent(s.ID(), AggregateType, RoutingKeySessionUnscheduled),
		ItemID:       s.ItemID(),
		UnmetMinutes: s.UnmetMinutes(),
	}
}

// PlanRegenerated is emitted after a clear-then-regenerate plan pass.
type PlanRegenerated struct {
	sharedDomain.BaseEvent
	UserID       uuid.UUID `json:"user_id"`
	SessionCount int       `json:"session_count"`
}

// NewPlanRegenerated creates a PlanRegenerated event.
func NewPlanRegenerated(userID uuid.UUID, sessionCount int) PlanRegenerated {
	return PlanRegenerated{
		BaseEvent:    sharedDomain.NewBaseEvent(userID, AggregateType, RoutingKeyPlanRegenerated),
		UserID:       userID,
		SessionCount: sessionCount,
	}
}
