package service

import (
	"context"

	"github.com/MKhiriev/go-req-sync/models"
)

// MergeService classifies files by comparing base, local and remote state.
type MergeService interface {
	// Classify builds the push plan of one collection. base is the recorded
	// file state, local the freshly serialized files and remote the version
	// ids of a fresh listing, all keyed by projection path.
	Classify(ctx context.Context, base models.FileStates, local map[string][]byte, remote map[string]string) (models.MergePlan, error)

	// RemoteChanged lists every path whose remote version moved away from
	// base: changed, added or removed remotely. The result is sorted.
	RemoteChanged(base models.FileStates, remote map[string]string) []string
}

// PushOptions tune a push.
type PushOptions struct {
	// Sanitize blanks sensitive values in the pushed copy.
	Sanitize bool
}

// SyncService is the orchestrator of remote synchronization.
type SyncService interface {
	Pull(ctx context.Context) (models.PullResult, error)
	PullCollection(ctx context.Context, collectionID string) (models.PullOutcome, error)

	PushCollection(ctx context.Context, collectionID string, opts PushOptions) (models.PushResult, error)
	PushAll(ctx context.Context) (models.PushAllResult, error)
	PushRequest(ctx context.Context, collectionID, requestID string, opts PushOptions) (models.PushRequestResult, error)

	ForceKeepLocal(ctx context.Context, collectionID string, opts PushOptions) (models.PushResult, error)
	ForceKeepRemote(ctx context.Context, collectionID string) error

	RemoveRemoteCollection(ctx context.Context, collectionID string) error
	SetSyncEnabled(ctx context.Context, collectionID string, enabled bool) error
	TestConnection(ctx context.Context) (bool, error)
	Status(ctx context.Context) ([]models.CollectionStatus, error)
}

// CollectionService edits the local entity tree. Every mutation of a
// sync-enabled collection marks it dirty.
type CollectionService interface {
	ListCollections(ctx context.Context) ([]models.Collection, error)
	GetCollection(ctx context.Context, id string) (models.Collection, error)
	CreateCollection(ctx context.Context, collection models.Collection) (models.Collection, error)
	UpdateCollection(ctx context.Context, collection models.Collection) error
	DeleteCollection(ctx context.Context, id string) error

	SaveFolder(ctx context.Context, folder models.Folder) (models.Folder, error)
	DeleteFolder(ctx context.Context, collectionID, folderID string) error
	SaveRequest(ctx context.Context, request models.Request) (models.Request, error)
	DeleteRequest(ctx context.Context, collectionID, requestID string) error

	ListEnvironments(ctx context.Context) ([]models.Environment, error)
	SaveEnvironment(ctx context.Context, environment models.Environment) (models.Environment, error)
}
