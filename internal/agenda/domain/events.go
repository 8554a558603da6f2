package domain

import (
	"github.com/google/uuid"

	shared "github.com/felixgeelhaar/studora/internal/shared/domain"
)

const (
	AggregateType = "Item"

	RoutingKeyItemCreated   = "agenda.item.created"
	RoutingKeyItemCompleted = "agenda.item.completed"
)

// ItemCreated is emitted when a new agenda item is created.
type ItemCreated struct {
	shared.BaseEvent
	Title          string `json:"title"`
	Classification string `json:"classification"`
}

// NewItemCreated creates an ItemCreated event.
func NewItemCreated(itemID uuid.UUID, title, classification string) ItemCreated {
	return ItemCreated{
		BaseEvent:      shared.NewBaseEvent(itemID, AggregateType, RoutingKeyItemCreated),
		Title:          title,
		Classification: classification,
	}
}

// ItemCompleted is emitted when an item is marked done.
type ItemCompleted struct {
	shared.BaseEvent
}

// NewItemCompleted creates an ItemCompleted event.
func NewItemCompleted(itemID uuid.UUID) ItemCompleted {
	return ItemCompleted{
		BaseEvent: shared.NewBaseEvent(itemID, AggregateType, RoutingKeyItemCompleted),
	}
}
