// Package workers runs background jobs alongside the control API, such as
// the periodic auto-push of dirty collections.
package workers

import (
	"context"

	"github.com/MKhiriev/go-req-sync/models"
)

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// Pusher is the part of the sync service the auto-push worker drives.
type Pusher interface {
	PushAll(ctx context.Context) (models.PushAllResult, error)
}
