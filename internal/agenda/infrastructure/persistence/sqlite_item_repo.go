package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studora/internal/agenda/domain"
	sharedDomain "github.com/felixgeelhaar/studora/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/studora/internal/shared/infrastructure/persistence"
)

// SQLiteItemRepository implements domain.ItemRepository using SQLite (local mode).
type SQLiteItemRepository struct {
	db *sql.DB
}

// NewSQLiteItemRepository creates a new SQLite item repository.
func NewSQLiteItemRepository(db *sql.DB) *SQLiteItemRepository {
	return &SQLiteItemRepository{db: db}
}

// CreateSQLiteItemSchema creates the items table for local mode.
func CreateSQLiteItemSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			classification TEXT NOT NULL,
			category TEXT,
			priority TEXT NOT NULL DEFAULT 'medium',
			important INTEGER NOT NULL DEFAULT 0,
			start_time TEXT,
			end_time TEXT,
			deadline TEXT,
			duration_minutes INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			completed_at TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_items_user ON items(user_id);
		CREATE INDEX IF NOT EXISTS idx_items_user_deadline ON items(user_id, deadline);
	`)
	return err
}

type sqliteItemRow struct {
	ID              string
	UserID          string
	Title           string
	Description     sql.NullString
	Classification  string
	Category        sql.NullString
	Priority        string
	Important       bool
	StartTime       sql.NullString
	EndTime         sql.NullString
	Deadline        sql.NullString
	DurationMinutes int
	Completed       bool
	CompletedAt     sql.NullString
	CreatedAt       string
	UpdatedAt       string
}

const sqliteItemColumns = `id, user_id, title, description, classification, category,
       priority, important, start_time, end_time, deadline,
       duration_minutes, completed, completed_at, created_at, updated_at`

// Save persists an item to the database.
func (r *SQLiteItemRepository) Save(ctx context.Context, it *domain.Item) error {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)

	_, err := q.ExecContext(ctx, `
		INSERT INTO items (
			id, user_id, title, description, classification, category,
			priority, important, start_time, end_time, deadline,
			duration_minutes, completed, completed_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			category = excluded.category,
			priority = excluded.priority,
			important = excluded.important,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			deadline = excluded.deadline,
			duration_minutes = excluded.duration_minutes,
			completed = excluded.completed,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at
	`,
		it.ID().String(),
		it.UserID().String(),
		it.Title(),
		nullString(it.Description()),
		string(it.Classification()),
		nullString(it.Category()),
		it.Priority().String(),
		it.Important(),
		nullTime(it.StartTime()),
		nullTime(it.EndTime()),
		nullTime(it.Deadline()),
		it.DurationMinutes(),
		it.IsCompleted(),
		nullTime(it.CompletedAt()),
		it.CreatedAt().Format(time.RFC3339Nano),
		it.UpdatedAt().Format(time.RFC3339Nano),
	)
	return err
}

// FindByID retrieves an item by its ID.
func (r *SQLiteItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	row := q.QueryRowContext(ctx, `SELECT `+sqliteItemColumns+` FROM items WHERE id = ?`, id.String())

	sr, err := scanSQLiteItemRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return sqliteRowToItem(sr)
}

// FindByUserID retrieves items for a user, applying the given filter.
func (r *SQLiteItemRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter domain.ItemFilter) ([]*domain.Item, error) {
	query := `SELECT ` + sqliteItemColumns + ` FROM items WHERE user_id = ?`
	args := []any{userID.String()}

	if filter.Classification != nil {
		query += ` AND classification = ?`
		args = append(args, string(*filter.Classification))
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.Completed != nil {
		query += ` AND completed = ?`
		args = append(args, *filter.Completed)
	}
	query += ` ORDER BY deadline IS NULL, deadline, created_at`

	return r.queryItems(ctx, query, args...)
}

// FindOpenDeferrable retrieves incomplete deferrable items for scheduling.
func (r *SQLiteItemRepository) FindOpenDeferrable(ctx context.Context, userID uuid.UUID) ([]*domain.Item, error) {
	query := `
		SELECT ` + sqliteItemColumns + `
		FROM items
		WHERE user_id = ?
		  AND completed = 0
		  AND classification NOT IN ('class', 'meeting')
		ORDER BY deadline IS NULL, deadline, created_at
	`
	return r.queryItems(ctx, query, userID.String())
}

// FindFixedInRange retrieves fixed commitments overlapping [from, to).
func (r *SQLiteItemRepository) FindFixedInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Item, error) {
	query := `
		SELECT ` + sqliteItemColumns + `
		FROM items
		WHERE user_id = ?
		  AND classification IN ('class', 'meeting')
		  AND start_time < ?
		  AND end_time > ?
		ORDER BY start_time
	`
	return r.queryItems(ctx, query, userID.String(), to.Format(time.RFC3339Nano), from.Format(time.RFC3339Nano))
}

// Delete removes an item from the database.
func (r *SQLiteItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	result, err := q.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *SQLiteItemRepository) queryItems(ctx context.Context, query string, args ...any) ([]*domain.Item, error) {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		sr, err := scanSQLiteItemRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		it, err := sqliteRowToItem(sr)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanSQLiteItemRow(scan func(dest ...any) error) (sqliteItemRow, error) {
	var r sqliteItemRow
	err := scan(
		&r.ID,
		&r.UserID,
		&r.Title,
		&r.Description,
		&r.Classification,
		&r.Category,
		&r.Priority,
		&r.Important,
		&r.StartTime,
		&r.EndTime,
		&r.Deadline,
		&r.DurationMinutes,
		&r.Completed,
		&r.CompletedAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func sqliteRowToItem(row sqliteItemRow) (*domain.Item, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(row.UserID)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, row.UpdatedAt)
	if err != nil {
		return nil, err
	}

	startTime, err := parseNullTime(row.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := parseNullTime(row.EndTime)
	if err != nil {
		return nil, err
	}
	deadline, err := parseNullTime(row.Deadline)
	if err != nil {
		return nil, err
	}
	completedAt, err := parseNullTime(row.CompletedAt)
	if err != nil {
		return nil, err
	}

	priority, err := domain.ParsePriority(row.Priority)
	if err != nil {
		priority = domain.PriorityMedium
	}

	return domain.RehydrateItem(
		sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		userID,
		row.Title,
		row.Description.String,
		domain.Classification(row.Classification),
		row.Category.String,
		priority,
		row.Important,
		startTime,
		endTime,
		deadline,
		row.DurationMinutes,
		row.Completed,
		completedAt,
	), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339Nano), Valid: true}
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
