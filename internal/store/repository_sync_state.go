package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/models"
)

// syncStateRepository keeps the sync columns of the collections table.
type syncStateRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateRepository {
	return &syncStateRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *syncStateRepository) GetSyncState(ctx context.Context, collectionID string) (models.SyncMetadata, error) {
	log := logger.FromContext(ctx)

	var (
		state        models.SyncMetadata
		lastSyncedAt sql.NullTime
	)
	err := s.DB.QueryRowContext(ctx, s.rebind(getSyncState), collectionID).
		Scan(&state.Enabled, &state.IsDirty, &state.RemoteVersionID, &lastSyncedAt, &state.FileState)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncMetadata{}, ErrCollectionNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.GetSyncState").
			Str("collection_id", collectionID).
			Msg("failed to scan sync state")
		return models.SyncMetadata{}, wrapErr(ErrScanningRow, err)
	}

	state.LastSyncedAt = timePtr(lastSyncedAt)
	return state, nil
}

// SaveSyncState writes the sync columns in one statement so that a partial
// update cannot be observed.
func (s *syncStateRepository) SaveSyncState(ctx context.Context, collectionID string, state models.SyncMetadata) error {
	log := logger.FromContext(ctx)

	fileState, err := state.FileState.Value()
	if err != nil {
		return wrapErr(ErrEncodingColumn, err)
	}

	var res sql.Result
	err = s.withRetry(ctx, func() error {
		var execErr error
		res, execErr = s.DB.ExecContext(ctx, s.rebind(saveSyncState),
			state.IsDirty, state.RemoteVersionID, nullTime(state.LastSyncedAt), fileState, collectionID)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.SaveSyncState").
			Str("collection_id", collectionID).
			Msg("failed to save sync state")
		return wrapErr(ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrCollectionNotFound)
}

func (s *syncStateRepository) MarkDirty(ctx context.Context, collectionID string) error {
	log := logger.FromContext(ctx)

	if _, err := s.DB.ExecContext(ctx, s.rebind(markDirty), true, collectionID, true); err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.MarkDirty").
			Str("collection_id", collectionID).
			Msg("failed to mark collection dirty")
		return wrapErr(ErrExecutingStatement, err)
	}

	return nil
}

func (s *syncStateRepository) SetSyncEnabled(ctx context.Context, collectionID string, enabled bool) error {
	log := logger.FromContext(ctx)

	var (
		res sql.Result
		err error
	)
	if enabled {
		res, err = s.DB.ExecContext(ctx, s.rebind(enableSync), true, true, collectionID)
	} else {
		res, err = s.DB.ExecContext(ctx, s.rebind(disableSync), false, collectionID)
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.SetSyncEnabled").
			Str("collection_id", collectionID).
			Bool("enabled", enabled).
			Msg("failed to toggle sync")
		return wrapErr(ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrCollectionNotFound)
}
