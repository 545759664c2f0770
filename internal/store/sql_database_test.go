package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/models"
)

func TestDialectFromDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want Dialect
	}{
		{dsn: "reqsync.db", want: DialectSQLite},
		{dsn: "file:data/reqsync.db?cache=shared", want: DialectSQLite},
		{dsn: "postgres://user:pw@localhost:5432/reqsync", want: DialectPostgres},
		{dsn: "POSTGRESQL://localhost/reqsync", want: DialectPostgres},
		{dsn: "host=localhost user=reqsync dbname=reqsync", want: DialectPostgres},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, DialectFromDSN(tt.dsn))
		})
	}
}

func TestRebind(t *testing.T) {
	sqlite := newDB(nil, DialectSQLite, logger.Nop())
	postgres := newDB(nil, DialectPostgres, logger.Nop())

	q := `UPDATE collections SET is_dirty = ? WHERE id = ? AND sync_enabled = ?`
	assert.Equal(t, q, sqlite.rebind(q))
	assert.Equal(t, `UPDATE collections SET is_dirty = $1 WHERE id = $2 AND sync_enabled = $3`, postgres.rebind(q))
}

func TestBuilderPlaceholders(t *testing.T) {
	postgres := newDB(nil, DialectPostgres, logger.Nop())

	query, _, err := postgres.builder.Select("id").From("collections").Where("id = ?", "c1").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM collections WHERE id = $1", query)
}

func TestSQLiteFileHelpers(t *testing.T) {
	assert.Equal(t, "data/reqsync.db", sqliteFilePath("file:data/reqsync.db?cache=shared"))
	assert.Equal(t, "reqsync.db", sqliteFilePath("reqsync.db"))
	assert.Equal(t, "reqsync.db?"+sqliteParams, sqliteDSN("reqsync.db"))
	assert.Equal(t, "file:x.db?cache=shared&"+sqliteParams, sqliteDSN("file:x.db?cache=shared"))
}

func TestErrorClassifiers(t *testing.T) {
	sqliteClassifier := NewSQLiteErrorClassifier()
	assert.Equal(t, Retryable, sqliteClassifier.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, sqliteClassifier.Classify(wrapErr(ErrExecutingStatement, sqlite3.Error{Code: sqlite3.ErrLocked})))
	assert.Equal(t, NonRetryable, sqliteClassifier.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, sqliteClassifier.Classify(nil))

	pgClassifier := NewPostgresErrorClassifier()
	assert.Equal(t, Retryable, pgClassifier.Classify(&pgconn.PgError{Code: pgerrcode.SerializationFailure}))
	assert.Equal(t, NonRetryable, pgClassifier.Classify(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.Equal(t, NonRetryable, pgClassifier.Classify(errors.New("plain")))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.True(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}))
	assert.False(t, isUniqueViolation(errors.New("plain")))
}

func TestWithRetry(t *testing.T) {
	db := newDB(nil, DialectSQLite, logger.Nop())

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := db.withRetry(context.Background(), func() error {
			calls++
			return sqlite3.Error{Code: sqlite3.ErrBusy}
		})
		require.Error(t, err)
		assert.Equal(t, maxRetries, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		calls := 0
		err := db.withRetry(context.Background(), func() error {
			calls++
			return errors.New("syntax")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := db.withRetry(ctx, func() error { return sqlite3.Error{Code: sqlite3.ErrBusy} })
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFlattenAndAssembleTree(t *testing.T) {
	folders, requests := flattenTree(sampleTree())

	require.Len(t, folders, 2)
	assert.Equal(t, "f1", folders[0].ID)
	assert.Equal(t, "", folders[0].ParentID)
	assert.Equal(t, "f1", folders[1].ParentID)
	assert.Nil(t, folders[0].Folders)

	require.Len(t, requests, 2)
	assert.Equal(t, "", requests[0].FolderID)
	assert.Equal(t, "f2", requests[1].FolderID)
	for _, r := range requests {
		assert.Equal(t, "c1", r.CollectionID)
	}

	var rebuilt models.Collection
	assembleTree(&rebuilt, folders, requests)
	require.Len(t, rebuilt.Folders, 1)
	require.Len(t, rebuilt.Folders[0].Folders, 1)
	assert.Equal(t, "r2", rebuilt.Folders[0].Folders[0].Requests[0].ID)
	assert.Equal(t, "r1", rebuilt.Requests[0].ID)
}

func TestAssembleTree_OrphansGoToRoot(t *testing.T) {
	var c models.Collection
	assembleTree(&c,
		[]models.Folder{{ID: "f1", ParentID: "gone"}},
		[]models.Request{{ID: "r1", FolderID: "gone"}},
	)

	require.Len(t, c.Folders, 1)
	assert.Empty(t, c.Folders[0].ParentID)
	require.Len(t, c.Requests, 1)
	assert.Empty(t, c.Requests[0].FolderID)
}

func TestSubtreeIDs(t *testing.T) {
	folders := []models.Folder{
		{ID: "a"}, {ID: "b", ParentID: "a"}, {ID: "c", ParentID: "b"}, {ID: "d"},
	}
	assert.Equal(t, []string{"a", "b", "c"}, subtreeIDs(folders, "a"))
	assert.Equal(t, []string{"d"}, subtreeIDs(folders, "d"))
}
