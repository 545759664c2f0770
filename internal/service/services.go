package service

import (
	"github.com/MKhiriev/go-req-sync/internal/adapter"
	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/store"
	"github.com/MKhiriev/go-req-sync/internal/tracing"
	"github.com/MKhiriev/go-req-sync/internal/validators"
)

// Services groups the application services sharing one store.
type Services struct {
	SyncService       SyncService
	CollectionService CollectionService
	MergeService      MergeService
}

// NewServices wires the services. host may be nil when no remote is
// configured. Sync and editing share one set of per-collection locks.
func NewServices(host adapter.RemoteHost, repos *store.Repositories, cfg SyncConfig, tracer *tracing.Tracer, logger *logger.Logger) *Services {
	locks := newCollectionLocks()

	return &Services{
		SyncService:       newSyncService(host, *repos, cfg, tracer, locks, logger),
		CollectionService: newCollectionService(*repos, validators.NewCollectionValidator(), locks, logger),
		MergeService:      NewMergeService(),
	}
}
