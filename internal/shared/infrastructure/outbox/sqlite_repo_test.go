package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupSQLiteOutboxDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, CreateSQLiteOutboxSchema(context.Background(), db))
	return db
}

func testMessage(t *testing.T) *Message {
	t.Helper()

	return &Message{
		EventID:       uuid.New(),
		AggregateType: "item",
		AggregateID:   uuid.New(),
		EventType:     "item.created",
		RoutingKey:    "item.created",
		Payload:       json.RawMessage(`{"title":"Linear Algebra problem set"}`),
		CreatedAt:     time.Now().UTC(),
	}
}

func TestSQLiteRepository_SaveAndGetUnpublished(t *testing.T) {
	db := setupSQLiteOutboxDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	msg := testMessage(t)
	require.NoError(t, repo.Save(ctx, msg))
	assert.NotZero(t, msg.ID)

	unpublished, err := repo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, unpublished, 1)
	assert.Equal(t, msg.EventID, unpublished[0].EventID)
	assert.Equal(t, msg.AggregateID, unpublished[0].AggregateID)
	assert.Equal(t, "item.created", unpublished[0].EventType)
	assert.JSONEq(t, string(msg.Payload), string(unpublished[0].Payload))
	assert.False(t, unpublished[0].IsPublished())
}

func TestSQLiteRepository_SaveBatch(t *testing.T) {
	db := setupSQLiteOutboxDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	msgs := []*Message{testMessage(t), testMessage(t), testMessage(t)}
	require.NoError(t, repo.SaveBatch(ctx, msgs))

	for _, msg := range msgs {
		assert.NotZero(t, msg.ID)
	}

	unpublished, err := repo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, unpublished, 3)
}

func TestSQLiteRepository_MarkPublished(t *testing.T) {
	db := setupSQLiteOutboxDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	msg := testMessage(t)
	require.NoError(t, repo.Save(ctx, msg))
	require.NoError(t, repo.MarkPublished(ctx, msg.ID))

	unpublished, err := repo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, unpublished)
}

func TestSQLiteRepository_MarkFailed(t *testing.T) {
	db := setupSQLiteOutboxDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	msg := testMessage(t)
	require.NoError(t, repo.Save(ctx, msg))

	// Failure with a future retry time keeps the message out of the queue.
	future := time.Now().UTC().Add(time.Hour)
	require.NoError(t, repo.MarkFailed(ctx, msg.ID, "broker unavailable", future))

	unpublished, err := repo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, unpublished)

	// Once the retry time passes the message becomes eligible again.
	past := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, repo.MarkFailed(ctx, msg.ID, "broker unavailable", past))

	unpublished, err = repo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, unpublished, 1)
	assert.Equal(t, 2, unpublished[0].RetryCount)
	require.NotNil(t, unpublished[0].LastError)
	assert.Equal(t, "broker unavailable", *unpublished[0].LastError)
}

func TestSQLiteRepository_DeleteOld(t *testing.T) {
	db := setupSQLiteOutboxDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	old := testMessage(t)
	require.NoError(t, repo.Save(ctx, old))

	stale := time.Now().UTC().AddDate(0, 0, -10).Format(time.RFC3339Nano)
	_, err := db.ExecContext(ctx, `UPDATE outbox SET published_at = ? WHERE id = ?`, stale, old.ID)
	require.NoError(t, err)

	recent := testMessage(t)
	require.NoError(t, repo.Save(ctx, recent))
	require.NoError(t, repo.MarkPublished(ctx, recent.ID))

	deleted, err := repo.DeleteOld(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM outbox`).Scan(&remaining))
	assert.Equal(t, 1, remaining)
}
