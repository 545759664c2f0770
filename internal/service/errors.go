package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured is returned before any network call when no remote
	// provider, repository or credentials are configured.
	ErrNotConfigured = errors.New("remote sync is not configured")

	// ErrTransport wraps every failure reported by the remote host.
	ErrTransport = errors.New("remote host request failed")

	// ErrConflict matches every [*ConflictError].
	ErrConflict = errors.New("sync conflict")

	// ErrNotFound is returned when a collection, folder or request is
	// missing locally, or a collection is missing remotely.
	ErrNotFound = errors.New("not found")

	// ErrSyncDisabled is returned by push and resolve operations on a
	// collection that does not take part in sync.
	ErrSyncDisabled = errors.New("sync is disabled for the collection")

	ErrInvalidCollection = errors.New("invalid collection")
	ErrInvalidFolder     = errors.New("invalid folder")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInvalidEnv        = errors.New("invalid environment")
)

// ConflictError reports that both the local and the remote side changed.
// The caller resolves it with force-keep-local or force-keep-remote.
type ConflictError struct {
	CollectionID   string
	CollectionName string

	// Paths are the projection paths changed on both sides, sorted.
	Paths []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("sync conflict in collection %q (%s): %s",
		e.CollectionName, e.CollectionID, strings.Join(e.Paths, ", "))
}

// Is makes errors.Is(err, ErrConflict) true for every ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// AsConflict extracts the conflict from err.
func AsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}

func transportErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
}
