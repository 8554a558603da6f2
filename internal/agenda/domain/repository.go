package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ItemFilter narrows listing queries.
type ItemFilter struct {
	Classification *Classification
	Category       string
	Completed      *bool
}

// ItemRepository defines the interface for item persistence.
type ItemRepository interface {
	Save(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, filter ItemFilter) ([]*Item, error)
	// FindOpenDeferrable returns incomplete items the scheduler may place:
	// assignments, exam prep and uncategorized work, fixed commitments excluded.
	FindOpenDeferrable(ctx context.Context, userID uuid.UUID) ([]*Item, error)
	// FindFixedInRange returns fixed commitments overlapping [from, to).
	FindFixedInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
