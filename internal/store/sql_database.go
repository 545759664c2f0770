package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-req-sync/internal/config"
	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/migrations"
)

// Dialect identifies the SQL engine behind a [DB].
type Dialect string

const (
	DialectSQLite   Dialect = migrations.DialectSQLite
	DialectPostgres Dialect = migrations.DialectPostgres
)

const (
	maxRetries    = 3
	retryBaseWait = 50 * time.Millisecond
)

// DB wraps a connection pool together with the dialect-specific pieces the
// repositories need: placeholder format and error classification.
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// DialectFromDSN picks the engine for dsn. PostgreSQL URLs and keyword DSNs
// select PostgreSQL, anything else is treated as a SQLite file path.
func DialectFromDSN(dsn string) Dialect {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=") {
		return DialectPostgres
	}
	return DialectSQLite
}

// NewConnect opens the store described by cfg.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if DialectFromDSN(cfg.DSN) == DialectPostgres {
		return NewConnectPostgres(ctx, cfg, log)
	}
	return NewConnectSQLite(ctx, cfg, log)
}

func newDB(conn *sql.DB, dialect Dialect, log *logger.Logger) *DB {
	db := &DB{
		DB:      conn,
		dialect: dialect,
		logger:  log,
	}

	switch dialect {
	case DialectPostgres:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	default:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		db.errorClassificator = NewSQLiteErrorClassifier()
	}

	return db
}

// Dialect returns the engine of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded schema migrations for the connection dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// rebind rewrites a query written with "?" placeholders for the dialect.
func (db *DB) rebind(query string) string {
	if db.dialect != DialectPostgres {
		return query
	}
	out, err := sq.Dollar.ReplacePlaceholders(query)
	if err != nil {
		return query
	}
	return out
}

// withRetry runs op again while the failure is classified as [Retryable].
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		if attempt == maxRetries-1 {
			break
		}

		logger.FromContext(ctx).Warn().
			Err(err).
			Int("attempt", attempt+1).
			Msg("retrying store operation")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBaseWait * time.Duration(attempt+1)):
		}
	}
	return err
}

// inTx runs fn in a transaction that is committed when fn succeeds and
// rolled back otherwise.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr(ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return wrapErr(ErrCommitingTransaction, err)
	}
	return nil
}
