package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrCollectionNotFound is returned when no collection row matches the
	// requested id.
	ErrCollectionNotFound = errors.New("collection was not found")

	// ErrCollectionAlreadyExists is returned when a collection is created
	// with an id that is already stored.
	ErrCollectionAlreadyExists = errors.New("collection already exists")

	// ErrFolderNotFound is returned when an update or delete targets a folder
	// that does not belong to the collection.
	ErrFolderNotFound = errors.New("folder was not found")

	// ErrRequestNotFound is returned when an update or delete targets a
	// request that does not belong to the collection.
	ErrRequestNotFound = errors.New("request was not found")

	// ErrEnvironmentNotFound is returned when no environment row matches the
	// requested id.
	ErrEnvironmentNotFound = errors.New("environment was not found")

	// ErrEncodingColumn is returned when a structured value cannot be
	// serialized into its JSON text column, or read back from it.
	ErrEncodingColumn = errors.New("failed to encode json column")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a prepared DML
	// statement (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)

func wrapErr(sentinel, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}
