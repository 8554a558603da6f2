package commands

import (
	"context"

	"github.com/google/uuid"
)

// PlanLocker serializes concurrent clear-then-regenerate passes for the
// same user. Postgres backs it with a transaction-scoped advisory lock;
// local mode uses the no-op since SQLite serializes writers itself.
type PlanLocker interface {
	AcquireUserPlanLock(ctx context.Context, userID uuid.UUID) error
}

// NoopPlanLocker is a PlanLocker for stores with a single writer.
type NoopPlanLocker struct{}

// AcquireUserPlanLock does nothing.
func (NoopPlanLocker) AcquireUserPlanLock(context.Context, uuid.UUID) error { return nil }
