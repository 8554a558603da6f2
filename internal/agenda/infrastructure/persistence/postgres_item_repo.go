package persistence

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felixgeelhaar/studora/internal/agenda/domain"
	sharedDomain "github.com/felixgeelhaar/studora/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/studora/internal/shared/infrastructure/persistence"
)

var ErrItemNotFound = errors.New("item not found")

const itemColumns = `id, user_id, title, description, classification, category,
       priority, important, start_time, end_time, deadline,
       duration_minutes, completed, completed_at, created_at, updated_at`

// PostgresItemRepository implements domain.ItemRepository using PostgreSQL.
type PostgresItemRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresItemRepository creates a new PostgreSQL item repository.
func NewPostgresItemRepository(pool *pgxpool.Pool) *PostgresItemRepository {
	return &PostgresItemRepository{pool: pool}
}

// itemRow represents a database row for items.
type itemRow struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Title           string
	Description     *string
	Classification  string
	Category        *string
	Priority        string
	Important       bool
	StartTime       *time.Time
	EndTime         *time.Time
	Deadline        *time.Time
	DurationMinutes int
	Completed       bool
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Save persists an item to the database.
func (r *PostgresItemRepository) Save(ctx context.Context, it *domain.Item) error {
	query := `
		INSERT INTO items (
			id, user_id, title, description, classification, category,
			priority, important, start_time, end_time, deadline,
			duration_minutes, completed, completed_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			priority = EXCLUDED.priority,
			important = EXCLUDED.important,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			deadline = EXCLUDED.deadline,
			duration_minutes = EXCLUDED.duration_minutes,
			completed = EXCLUDED.completed,
			completed_at = EXCLUDED.completed_at,
			updated_at = EXCLUDED.updated_at
	`

	var description, category *string
	if it.Description() != "" {
		d := it.Description()
		description = &d
	}
	if it.Category() != "" {
		c := it.Category()
		category = &c
	}

	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		it.ID(),
		it.UserID(),
		it.Title(),
		description,
		string(it.Classification()),
		category,
		it.Priority().String(),
		it.Important(),
		it.StartTime(),
		it.EndTime(),
		it.Deadline(),
		it.DurationMinutes(),
		it.IsCompleted(),
		it.CompletedAt(),
		it.CreatedAt(),
		it.UpdatedAt(),
	)
	return err
}

// FindByID retrieves an item by its ID.
func (r *PostgresItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	exec := sharedPersistence.Executor(ctx, r.pool)
	row, err := scanItemRow(exec.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return rowToItem(row), nil
}

// FindByUserID retrieves items for a user, applying the given filter.
func (r *PostgresItemRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter domain.ItemFilter) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE user_id = $1`
	args := []any{userID}

	if filter.Classification != nil {
		args = append(args, string(*filter.Classification))
		query += ` AND classification = $2`
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += ` AND category = $` + strconv.Itoa(len(args))
	}
	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		query += ` AND completed = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY deadline NULLS LAST, created_at`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

// FindOpenDeferrable retrieves incomplete deferrable items for scheduling.
func (r *PostgresItemRepository) FindOpenDeferrable(ctx context.Context, userID uuid.UUID) ([]*domain.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE user_id = $1
		  AND completed = FALSE
		  AND classification NOT IN ('class', 'meeting')
		ORDER BY deadline NULLS LAST, created_at
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

// FindFixedInRange retrieves fixed commitments overlapping [from, to).
func (r *PostgresItemRepository) FindFixedInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE user_id = $1
		  AND classification IN ('class', 'meeting')
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

// Delete removes an item from the database.
func (r *PostgresItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func scanItemRow(row pgx.Row) (itemRow, error) {
	var r itemRow
	err := row.Scan(
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

func scanItems(rows pgx.Rows) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		row, err := scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rowToItem(row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func rowToItem(row itemRow) *domain.Item {
	var description, category string
	if row.Description != nil {
		description = *row.Description
	}
	if row.Category != nil {
		category = *row.Category
	}

	priority, err := domain.ParsePriority(row.Priority)
	if err != nil {
		priority = domain.PriorityMedium
	}

	return domain.RehydrateItem(
		sharedDomain.RehydrateBaseEntity(row.ID, row.CreatedAt, row.UpdatedAt),
		row.UserID,
		row.Title,
		description,
		domain.Classification(row.Classification),
		category,
		priority,
		row.Important,
		row.StartTime,
		row.EndTime,
		row.Deadline,
		row.DurationMinutes,
		row.Completed,
		row.CompletedAt,
	)
}
