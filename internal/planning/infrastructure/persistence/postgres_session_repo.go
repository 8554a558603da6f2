package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felixgeelhaar/studora/internal/planning/domain"
	sharedPersistence "github.com/felixgeelhaar/studora/internal/shared/infrastructure/persistence"
)

var ErrSessionNotFound = errors.New("study session not found")

const sessionColumns = `id, user_id, item_id, start_time, end_time, status,
       unmet_minutes, rationale, created_at, updated_at`

// PostgresSessionRepository implements domain.SessionRepository using PostgreSQL.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSessionRepository creates a new PostgreSQL session repository.
func NewPostgresSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// AcquireUserPlanLock takes a transaction-scoped advisory lock keyed on the
// user, serializing concurrent clear-then-regenerate passes for the same
// user. It must run inside a transaction; the lock releases on commit or
// rollback.
func (r *PostgresSessionRepository) AcquireUserPlanLock(ctx context.Context, userID uuid.UUID) error {
	info, ok := sharedPersistence.TxInfoFromContext(ctx)
	if !ok {
		return errors.New("plan lock requires an open transaction")
	}
	// hashtextextended gives a stable 64-bit key from the UUID text.
	_, err := info.Tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, userID)
	return err
}

// Save persists a session to the database.
func (r *PostgresSessionRepository) Save(ctx context.Context, s *domain.StudySession) error {
	query := `
		INSERT INTO study_sessions (
			id, user_id, item_id, start_time, end_time, status,
			unmet_minutes, rationale, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			status = EXCLUDED.status,
			unmet_minutes = EXCLUDED.unmet_minutes,
			rationale = EXCLUDED.rationale,
			updated_at = EXCLUDED.updated_at
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, query, sessionArgs(s)...)
	return err
}

// SaveBatch persists several sessions inside the ambient transaction.
func (r *PostgresSessionRepository) SaveBatch(ctx context.Context, sessions []*domain.StudySession) error {
	for _, s := range sessions {
		if err := r.Save(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// FindByID retrieves a session by its ID.
func (r *PostgresSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = $1`

	exec := sharedPersistence.Executor(ctx, r.pool)
	s, err := scanSession(exec.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

// FindByUserAndRange retrieves a user's sessions overlapping [start, end),
// plus any unscheduled markers created in the range.
func (r *PostgresSessionRepository) FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.StudySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE user_id = $1
		  AND (
		    (status <> 'unscheduled' AND start_time < $3 AND end_time > $2)
		    OR (status = 'unscheduled' AND created_at >= $2 AND created_at < $3)
		  )
		ORDER BY start_time, created_at
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.StudySession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// DeleteFuturePlanned removes planned sessions starting after the instant.
func (r *PostgresSessionRepository) DeleteFuturePlanned(ctx context.Context, userID uuid.UUID, after time.Time) (int64, error) {
	query := `
		DELETE FROM study_sessions
		WHERE user_id = $1 AND status = 'planned' AND start_time > $2
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	tag, err := exec.Exec(ctx, query, userID, after)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountPlannedEndedBefore counts planned sessions whose end already passed.
func (r *PostgresSessionRepository) CountPlannedEndedBefore(ctx context.Context, userID uuid.UUID, before time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM study_sessions
		WHERE user_id = $1 AND status = 'planned' AND end_time < $2
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	var count int
	if err := exec.QueryRow(ctx, query, userID, before).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func sessionArgs(s *domain.StudySession) []any {
	var itemID *uuid.UUID
	if s.ItemID() != uuid.Nil {
		id := s.ItemID()
		itemID = &id
	}

	var start, end *time.Time
	if s.Status() != domain.StatusUnscheduled {
		st, en := s.StartTime(), s.EndTime()
		start, end = &st, &en
	}

	var rationale *string
	if s.Rationale() != "" {
		text := s.Rationale()
		rationale = &text
	}

	return []any{
		s.ID(),
		s.UserID(),
		itemID,
		start,
		end,
		string(s.Status()),
		s.UnmetMinutes(),
		rationale,
		s.CreatedAt(),
		s.UpdatedAt(),
	}
}

func scanSession(row pgx.Row) (*domain.StudySession, error) {
	var (
		id, userID   uuid.UUID
		itemID       *uuid.UUID
		start, end   *time.Time
		status       string
		unmetMinutes int
		rationale    *string
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := row.Scan(&id, &userID, &itemID, &start, &end, &status,
		&unmetMinutes, &rationale, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	item := uuid.Nil
	if itemID != nil {
		item = *itemID
	}
	var startAt, endAt time.Time
	if start != nil {
		startAt = *start
	}
	if end != nil {
		endAt = *end
	}
	text := ""
	if rationale != nil {
		text = *rationale
	}

	return domain.RehydrateStudySession(id, userID, item, startAt, endAt,
		domain.SessionStatus(status), unmetMinutes, text, createdAt, updatedAt), nil
}
