package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/identity/domain"
)

// SQLiteSettingsRepository handles user plan settings in local mode.
type SQLiteSettingsRepository struct {
	db *sql.DB
}

// NewSQLiteSettingsRepository creates a new SQLiteSettingsRepository.
func NewSQLiteSettingsRepository(db *sql.DB) *SQLiteSettingsRepository {
	return &SQLiteSettingsRepository{db: db}
}

// CreateSQLiteSettingsSchema creates the user_settings table for local mode.
func CreateSQLiteSettingsSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS user_settings (
			user_id TEXT PRIMARY KEY,
			sleep_start TEXT NOT NULL DEFAULT '23:00',
			sleep_end TEXT NOT NULL DEFAULT '07:00',
			session_length_min INTEGER NOT NULL DEFAULT 60,
			updated_at TEXT NOT NULL
		)
	`)
	return err
}

// GetPlanSettings returns the user's settings, defaulting when unset.
func (r *SQLiteSettingsRepository) GetPlanSettings(ctx context.Context, userID uuid.UUID) (domain.PlanSettings, error) {
	query := `
		SELECT sleep_start, sleep_end, session_length_min
		FROM user_settings
		WHERE user_id = ?
	`

	var s domain.PlanSettings
	err := r.db.QueryRowContext(ctx, query, userID.String()).Scan(&s.SleepStart, &s.SleepEnd, &s.SessionLengthMin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DefaultPlanSettings(), nil
		}
		return domain.PlanSettings{}, err
	}
	return s, nil
}

// SetPlanSettings upserts the user's settings.
func (r *SQLiteSettingsRepository) SetPlanSettings(ctx context.Context, userID uuid.UUID, settings domain.PlanSettings) error {
	query := `
		INSERT INTO user_settings (user_id, sleep_start, sleep_end, session_length_min, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			sleep_start = excluded.sleep_start,
			sleep_end = excluded.sleep_end,
			session_length_min = excluded.session_length_min,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, userID.String(),
		settings.SleepStart, settings.SleepEnd, settings.SessionLengthMin,
		time.Now().UTC().Format(time.RFC3339Nano))
	return err
}
