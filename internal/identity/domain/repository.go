package domain

import (
	"context"

	"github.com/google/uuid"
)

// SettingsRepository defines the interface for user plan settings persistence.
type SettingsRepository interface {
	// GetPlanSettings returns the user's settings, or the defaults when the
	// user never configured anything.
	GetPlanSettings(ctx context.Context, userID uuid.UUID) (PlanSettings, error)
	// SetPlanSettings upserts the user's settings.
	SetPlanSettings(ctx context.Context, userID uuid.UUID, settings PlanSettings) error
}
