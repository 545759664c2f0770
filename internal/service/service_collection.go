package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/store"
	"github.com/MKhiriev/go-req-sync/internal/utils"
	"github.com/MKhiriev/go-req-sync/internal/validators"
	"github.com/MKhiriev/go-req-sync/models"
)

type collectionService struct {
	collections  store.CollectionRepository
	states       store.SyncStateRepository
	environments store.EnvironmentRepository

	validator validators.Validator
	ids       *utils.UUIDGenerator
	locks     *collectionLocks
	logger    *logger.Logger
}

func NewCollectionService(repos store.Repositories, validator validators.Validator, logger *logger.Logger) CollectionService {
	return newCollectionService(repos, validator, newCollectionLocks(), logger)
}

func newCollectionService(repos store.Repositories, validator validators.Validator, locks *collectionLocks, logger *logger.Logger) *collectionService {
	return &collectionService{
		collections:  repos.CollectionRepository,
		states:       repos.SyncStateRepository,
		environments: repos.EnvironmentRepository,
		validator:    validator,
		ids:          utils.NewUUIDGenerator(),
		locks:        locks,
		logger:       logger,
	}
}

func (s *collectionService) ListCollections(ctx context.Context) ([]models.Collection, error) {
	return s.collections.ListCollections(ctx, store.CollectionFilter{})
}

func (s *collectionService) GetCollection(ctx context.Context, id string) (models.Collection, error) {
	c, err := s.collections.GetCollection(ctx, id)
	if err != nil {
		return models.Collection{}, notFoundFromStore(err, id)
	}
	return c, nil
}

// CreateCollection assigns ids to every node that has none, links children
// to their parents and stores the tree. A sync-enabled collection starts
// dirty so the next push uploads it.
func (s *collectionService) CreateCollection(ctx context.Context, c models.Collection) (models.Collection, error) {
	if c.ID == "" {
		c.ID = s.ids.Generate()
	}
	c.Folders, c.Requests = s.link(c.ID, "", c.Folders, c.Requests)
	c.Sync = models.SyncMetadata{Enabled: c.Sync.Enabled, IsDirty: c.Sync.Enabled}

	if err := s.validator.Validate(ctx, c); err != nil {
		return models.Collection{}, fmt.Errorf("%w: %w", ErrInvalidCollection, err)
	}

	if err := s.collections.CreateCollection(ctx, c); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "collectionService.CreateCollection").
			Str("collection_id", c.ID).
			Msg("failed to create collection")
		return models.Collection{}, err
	}

	return c, nil
}

// UpdateCollection changes the collection's own fields; the tree is edited
// through the folder and request operations.
func (s *collectionService) UpdateCollection(ctx context.Context, c models.Collection) error {
	if err := s.validator.Validate(ctx, c, validators.FieldID, validators.FieldName, validators.FieldKeyValues); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCollection, err)
	}

	defer s.locks.lock(c.ID)()

	if err := s.collections.UpdateCollection(ctx, c); err != nil {
		return notFoundFromStore(err, c.ID)
	}
	return s.markDirty(ctx, c.ID)
}

// DeleteCollection removes the local collection only. The remote copy is
// removed separately by the sync service.
func (s *collectionService) DeleteCollection(ctx context.Context, id string) error {
	defer s.locks.lock(id)()

	if err := s.collections.DeleteCollection(ctx, id); err != nil {
		return notFoundFromStore(err, id)
	}
	return nil
}

func (s *collectionService) SaveFolder(ctx context.Context, f models.Folder) (models.Folder, error) {
	if f.ID == "" {
		f.ID = s.ids.Generate()
	}

	if err := s.validator.Validate(ctx, f); err != nil {
		return models.Folder{}, fmt.Errorf("%w: %w", ErrInvalidFolder, err)
	}

	defer s.locks.lock(f.CollectionID)()

	if err := s.collections.SaveFolder(ctx, f); err != nil {
		return models.Folder{}, s.entityErr(err, f.CollectionID)
	}
	if err := s.markDirty(ctx, f.CollectionID); err != nil {
		return models.Folder{}, err
	}
	return f, nil
}

func (s *collectionService) DeleteFolder(ctx context.Context, collectionID, folderID string) error {
	defer s.locks.lock(collectionID)()

	if err := s.collections.DeleteFolder(ctx, collectionID, folderID); err != nil {
		return s.entityErr(err, collectionID)
	}
	return s.markDirty(ctx, collectionID)
}

func (s *collectionService) SaveRequest(ctx context.Context, r models.Request) (models.Request, error) {
	if r.ID == "" {
		r.ID = s.ids.Generate()
	}

	if err := s.validator.Validate(ctx, r); err != nil {
		return models.Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	defer s.locks.lock(r.CollectionID)()

	if err := s.collections.SaveRequest(ctx, r); err != nil {
		return models.Request{}, s.entityErr(err, r.CollectionID)
	}
	if err := s.markDirty(ctx, r.CollectionID); err != nil {
		return models.Request{}, err
	}
	return r, nil
}

func (s *collectionService) DeleteRequest(ctx context.Context, collectionID, requestID string) error {
	defer s.locks.lock(collectionID)()

	if err := s.collections.DeleteRequest(ctx, collectionID, requestID); err != nil {
		return s.entityErr(err, collectionID)
	}
	return s.markDirty(ctx, collectionID)
}

func (s *collectionService) ListEnvironments(ctx context.Context) ([]models.Environment, error) {
	return s.environments.ListEnvironments(ctx)
}

func (s *collectionService) SaveEnvironment(ctx context.Context, env models.Environment) (models.Environment, error) {
	if env.ID == "" {
		env.ID = s.ids.Generate()
	}

	if err := s.validator.Validate(ctx, env); err != nil {
		return models.Environment{}, fmt.Errorf("%w: %w", ErrInvalidEnv, err)
	}

	if err := s.environments.SaveEnvironment(ctx, env); err != nil {
		return models.Environment{}, err
	}
	return env, nil
}

// markDirty flags the collection as changed. Collections with sync
// disabled are left alone by the store. Callers hold the collection lock.
func (s *collectionService) markDirty(ctx context.Context, collectionID string) error {
	if err := s.states.MarkDirty(ctx, collectionID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "collectionService.markDirty").
			Str("collection_id", collectionID).
			Msg("failed to mark collection dirty")
		return err
	}
	return nil
}

// link fills missing ids and the parent references of a new subtree.
func (s *collectionService) link(collectionID, parentID string, folders []models.Folder, requests []models.Request) ([]models.Folder, []models.Request) {
	for i := range requests {
		if requests[i].ID == "" {
			requests[i].ID = s.ids.Generate()
		}
		requests[i].CollectionID = collectionID
		requests[i].FolderID = parentID
	}
	for i := range folders {
		if folders[i].ID == "" {
			folders[i].ID = s.ids.Generate()
		}
		folders[i].CollectionID = collectionID
		folders[i].ParentID = parentID
		folders[i].Folders, folders[i].Requests = s.link(collectionID, folders[i].ID, folders[i].Folders, folders[i].Requests)
	}
	return folders, requests
}

func (s *collectionService) entityErr(err error, collectionID string) error {
	switch {
	case errors.Is(err, store.ErrFolderNotFound), errors.Is(err, store.ErrRequestNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return notFoundFromStore(err, collectionID)
	}
}
