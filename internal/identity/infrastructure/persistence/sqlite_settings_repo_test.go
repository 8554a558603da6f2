package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/felixgeelhaar/studora/internal/identity/domain"
)

func setupSettingsDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, CreateSQLiteSettingsSchema(context.Background(), sqlDB))
	return sqlDB
}

func TestSQLiteSettingsRepository_DefaultsWhenUnset(t *testing.T) {
	repo := NewSQLiteSettingsRepository(setupSettingsDB(t))

	s, err := repo.GetPlanSettings(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPlanSettings(), s)
	assert.Equal(t, 23, s.SleepStartHour())
	assert.Equal(t, 7, s.SleepEndHour())
}

func TestSQLiteSettingsRepository_RoundTrip(t *testing.T) {
	repo := NewSQLiteSettingsRepository(setupSettingsDB(t))
	ctx := context.Background()
	userID := uuid.New()

	want := domain.PlanSettings{SleepStart: "22:30", SleepEnd: "06:00", SessionLengthMin: 45}
	require.NoError(t, repo.SetPlanSettings(ctx, userID, want))

	got, err := repo.GetPlanSettings(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 22, got.SleepStartHour())

	// Upsert overwrites.
	want.SessionLengthMin = 90
	require.NoError(t, repo.SetPlanSettings(ctx, userID, want))
	got, err = repo.GetPlanSettings(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 90, got.SessionLengthMin)
}

func TestPlanSettings_Validate(t *testing.T) {
	valid := domain.PlanSettings{SleepStart: "23:00", SleepEnd: "07:00", SessionLengthMin: 60}
	assert.NoError(t, valid.Validate())

	bad := domain.PlanSettings{SleepStart: "25:00", SleepEnd: "07:00", SessionLengthMin: 60}
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidClockTime)

	bad = domain.PlanSettings{SleepStart: "23:00", SleepEnd: "7", SessionLengthMin: 60}
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidClockTime)

	bad = domain.PlanSettings{SleepStart: "23:00", SleepEnd: "07:00", SessionLengthMin: 0}
	assert.Error(t, bad.Validate())
}
