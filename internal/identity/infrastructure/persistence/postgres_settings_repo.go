package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felixgeelhaar/studora/internal/identity/domain"
)

// PostgresSettingsRepository handles persistence for user plan settings.
type PostgresSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSettingsRepository creates a new PostgresSettingsRepository.
func NewPostgresSettingsRepository(pool *pgxpool.Pool) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{pool: pool}
}

// GetPlanSettings returns the user's settings, defaulting when unset.
func (r *PostgresSettingsRepository) GetPlanSettings(ctx context.Context, userID uuid.UUID) (domain.PlanSettings, error) {
	query := `
		SELECT sleep_start, sleep_end, session_length_min
		FROM user_settings
		WHERE user_id = $1
	`

	var s domain.PlanSettings
	err := r.pool.QueryRow(ctx, query, userID).Scan(&s.SleepStart, &s.SleepEnd, &s.SessionLengthMin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DefaultPlanSettings(), nil
		}
		return domain.PlanSettings{}, err
	}
	return s, nil
}

// SetPlanSettings upserts the user's settings.
func (r *PostgresSettingsRepository) SetPlanSettings(ctx context.Context, userID uuid.UUID, settings domain.PlanSettings) error {
	query := `
		INSERT INTO user_settings (user_id, sleep_start, sleep_end, session_length_min, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			sleep_start = EXCLUDED.sleep_start,
			sleep_end = EXCLUDED.sleep_end,
			session_length_min = EXCLUDED.session_length_min,
			updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, userID, settings.SleepStart, settings.SleepEnd, settings.SessionLengthMin)
	return err
}
