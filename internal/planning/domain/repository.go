package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRepository defines persistence for study sessions.
type SessionRepository interface {
	Save(ctx context.Context, session *StudySession) error
	SaveBatch(ctx context.Context, sessions []*StudySession) error
	FindByID(ctx context.Context, id uuid.UUID) (*StudySession, error)
	FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*StudySession, error)
	// DeleteFuturePlanned removes the user's planned sessions starting after
	// the given instant. Callers run it before a regeneration pass so stale
	// sessions do not accumulate across repeated plan requests.
	DeleteFuturePlanned(ctx context.Context, userID uuid.UUID, after time.Time) (int64, error)
	CountPlannedEndedBefore(ctx context.Context, userID uuid.UUID, before time.Time) (int, error)
}
