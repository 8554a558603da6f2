package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/planning/domain"
	sharedPersistence "github.com/felixgeelhaar/studora/internal/shared/infrastructure/persistence"
)

// SQLiteSessionRepository implements domain.SessionRepository using SQLite
// (local mode). SQLite serializes writers on its own, so no advisory lock
// equivalent is needed for clear-then-regenerate.
type SQLiteSessionRepository struct {
	db *sql.DB
}

// NewSQLiteSessionRepository creates a new SQLite session repository.
func NewSQLiteSessionRepository(db *sql.DB) *SQLiteSessionRepository {
	return &SQLiteSessionRepository{db: db}
}

// CreateSQLiteSessionSchema creates the study_sessions table for local mode.
func CreateSQLiteSessionSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS study_sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			item_id TEXT,
			start_time TEXT,
			end_time TEXT,
			status TEXT NOT NULL,
			unmet_minutes INTEGER NOT NULL DEFAULT 0,
			rationale TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_user_start ON study_sessions(user_id, start_time);
	`)
	return err
}

const sqliteSessionColumns = `id, user_id, item_id, start_time, end_time, status,
       unmet_minutes, rationale, created_at, updated_at`

// Save persists a session to the database.
func (r *SQLiteSessionRepository) Save(ctx context.Context, s *domain.StudySession) error {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)

	var itemID sql.NullString
	if s.ItemID() != uuid.Nil {
		itemID = sql.NullString{String: s.ItemID().String(), Valid: true}
	}

	var start, end sql.NullString
	if s.Status() != domain.StatusUnscheduled {
		start = sql.NullString{String: s.StartTime().Format(time.RFC3339Nano), Valid: true}
		end = sql.NullString{String: s.EndTime().Format(time.RFC3339Nano), Valid: true}
	}

	var rationale sql.NullString
	if s.Rationale() != "" {
		rationale = sql.NullString{String: s.Rationale(), Valid: true}
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO study_sessions (
			id, user_id, item_id, start_time, end_time, status,
			unmet_minutes, rationale, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			status = excluded.status,
			unmet_minutes = excluded.unmet_minutes,
			rationale = excluded.rationale,
			updated_at = excluded.updated_at
	`,
		s.ID().String(),
		s.UserID().String(),
		itemID,
		start,
		end,
		string(s.Status()),
		s.UnmetMinutes(),
		rationale,
		s.CreatedAt().Format(time.RFC3339Nano),
		s.UpdatedAt().Format(time.RFC3339Nano),
	)
	return err
}

// SaveBatch persists several sessions.
func (r *SQLiteSessionRepository) SaveBatch(ctx context.Context, sessions []*domain.StudySession) error {
	for _, s := range sessions {
		if err := r.Save(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// FindByID retrieves a session by its ID.
func (r *SQLiteSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	row := q.QueryRowContext(ctx, `SELECT `+sqliteSessionColumns+` FROM study_sessions WHERE id = ?`, id.String())

	s, err := scanSQLiteSession(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

// FindByUserAndRange retrieves a user's sessions overlapping [start, end),
// plus any unscheduled markers created in the range.
func (r *SQLiteSessionRepository) FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.StudySession, error) {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	rows, err := q.QueryContext(ctx, `
		SELECT `+sqliteSessionColumns+`
		FROM study_sessions
		WHERE user_id = ?
		  AND (
		    (status <> 'unscheduled' AND start_time < ? AND end_time > ?)
		    OR (status = 'unscheduled' AND created_at >= ? AND created_at < ?)
		  )
		ORDER BY start_time, created_at
	`,
		userID.String(),
		end.Format(time.RFC3339Nano),
		start.Format(time.RFC3339Nano),
		start.Format(time.RFC3339Nano),
		end.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.StudySession
	for rows.Next() {
		s, err := scanSQLiteSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// DeleteFuturePlanned removes planned sessions starting after the instant.
func (r *SQLiteSessionRepository) DeleteFuturePlanned(ctx context.Context, userID uuid.UUID, after time.Time) (int64, error) {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	result, err := q.ExecContext(ctx, `
		DELETE FROM study_sessions
		WHERE user_id = ? AND status = 'planned' AND start_time > ?
	`, userID.String(), after.Format(time.RFC3339Nano))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// CountPlannedEndedBefore counts planned sessions whose end already passed.
func (r *SQLiteSessionRepository) CountPlannedEndedBefore(ctx context.Context, userID uuid.UUID, before time.Time) (int, error) {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM study_sessions
		WHERE user_id = ? AND status = 'planned' AND end_time < ?
	`, userID.String(), before.Format(time.RFC3339Nano)).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanSQLiteSession(scan func(dest ...any) error) (*domain.StudySession, error) {
	var (
		idStr, userStr         string
		itemStr                sql.NullString
		startStr, endStr       sql.NullString
		status                 string
		unmetMinutes           int
		rationale              sql.NullString
		createdStr, updatedStr string
	)

	err := scan(&idStr, &userStr, &itemStr, &startStr, &endStr, &status,
		&unmetMinutes, &rationale, &createdStr, &updatedStr)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(userStr)
	if err != nil {
		return nil, err
	}
	itemID := uuid.Nil
	if itemStr.Valid {
		itemID, err = uuid.Parse(itemStr.String)
		if err != nil {
			return nil, err
		}
	}

	var start, end time.Time
	if startStr.Valid {
		if start, err = time.Parse(time.RFC3339Nano, startStr.String); err != nil {
			return nil, err
		}
	}
	if endStr.Valid {
		if end, err = time.Parse(time.RFC3339Nano, endStr.String); err != nil {
			return nil, err
		}
	}

	createdAt, err := time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, updatedStr)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateStudySession(id, userID, itemID, start, end,
		domain.SessionStatus(status), unmetMinutes, rationale.String, createdAt, updatedAt), nil
}
