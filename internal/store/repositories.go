package store

import "github.com/MKhiriev/go-req-sync/internal/logger"

// Repositories groups every repository sharing one connection.
type Repositories struct {
	CollectionRepository  CollectionRepository
	SyncStateRepository   SyncStateRepository
	EnvironmentRepository EnvironmentRepository
}

func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		CollectionRepository:  NewCollectionRepository(db, log),
		SyncStateRepository:   NewSyncStateRepository(db, log),
		EnvironmentRepository: NewEnvironmentRepository(db, log),
	}
}
