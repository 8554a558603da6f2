package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/identity/domain"
)

// Service manages user plan settings.
type Service struct {
	repo domain.SettingsRepository
}

// NewService creates a settings service.
func NewService(repo domain.SettingsRepository) *Service {
	return &Service{repo: repo}
}

// Get returns the user's plan settings, falling back to defaults.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (domain.PlanSettings, error) {
	return s.repo.GetPlanSettings(ctx, userID)
}

// Update validates and stores the user's plan settings.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, settings domain.PlanSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.repo.SetPlanSettings(ctx, userID, settings)
}
