// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-req-sync/internal/adapter"
	"github.com/MKhiriev/go-req-sync/internal/config"
	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/projection"
	"github.com/MKhiriev/go-req-sync/internal/store"
	"github.com/MKhiriev/go-req-sync/internal/tracing"
	"github.com/MKhiriev/go-req-sync/internal/utils"
	"github.com/MKhiriev/go-req-sync/models"
)

// SyncConfig is the explicit remote configuration of the orchestrator.
type SyncConfig struct {
	// Root is the repository directory holding one directory per collection.
	Root string

	// CommitAuthor prefixes every commit message.
	CommitAuthor string

	// PushConcurrency bounds the parallel pushes of PushAll.
	PushConcurrency int

	// SanitizeByDefault is used by PushAll, where no caller chooses.
	SanitizeByDefault bool

	// Sanitizer blanks sensitive values when a push asks for it.
	Sanitizer projection.Sanitizer
}

// SyncConfigFrom derives the orchestrator configuration.
func SyncConfigFrom(cfg config.StructuredConfig, sanitizer projection.Sanitizer) SyncConfig {
	return SyncConfig{
		Root:              cfg.App.SyncRoot,
		CommitAuthor:      cfg.App.CommitAuthor,
		PushConcurrency:   cfg.Workers.PushConcurrency,
		SanitizeByDefault: cfg.Sanitize.Enabled,
		Sanitizer:         sanitizer,
	}
}

// syncService sequences projection, the remote host and the merge engine,
// and is the only writer of the persisted file state.
type syncService struct {
	host         adapter.RemoteHost
	collections  store.CollectionRepository
	states       store.SyncStateRepository
	environments store.EnvironmentRepository
	merger       MergeService

	cfg    SyncConfig
	locks  *collectionLocks
	tracer *tracing.Tracer
	now    func() time.Time
	logger *logger.Logger
}

// NewSyncService constructs the orchestrator. host may be nil when no
// remote is configured; every remote operation then fails with
// [ErrNotConfigured].
func NewSyncService(host adapter.RemoteHost, repos store.Repositories, cfg SyncConfig, tracer *tracing.Tracer, logger *logger.Logger) SyncService {
	return newSyncService(host, repos, cfg, tracer, newCollectionLocks(), logger)
}

// newSyncService takes the lock set shared with the editing service, so a
// local edit cannot land between a push's snapshot and its state write.
func newSyncService(host adapter.RemoteHost, repos store.Repositories, cfg SyncConfig, tracer *tracing.Tracer, locks *collectionLocks, logger *logger.Logger) *syncService {
	if tracer == nil {
		tracer = tracing.Nop()
	}
	if cfg.PushConcurrency < 1 {
		cfg.PushConcurrency = 1
	}

	return &syncService{
		host:         host,
		collections:  repos.CollectionRepository,
		states:       repos.SyncStateRepository,
		environments: repos.EnvironmentRepository,
		merger:       NewMergeService(),
		cfg:          cfg,
		locks:        locks,
		tracer:       tracer,
		now:          time.Now,
		logger:       logger,
	}
}

// PushCollection merges local state against a fresh remote listing and
// writes the outcome in one atomic commit.
func (s *syncService) PushCollection(ctx context.Context, collectionID string, opts PushOptions) (result models.PushResult, err error) {
	ctx, span := s.tracer.StartSyncSpan(ctx, "push", collectionID)
	defer func() { span.Finish(err) }()

	if s.host == nil {
		return models.PushResult{}, ErrNotConfigured
	}

	unlock := s.locks.lock(collectionID)
	defer unlock()

	log := logger.FromContext(ctx).ForCollection(collectionID)

	c, err := s.loadSyncable(ctx, collectionID)
	if err != nil {
		return models.PushResult{}, err
	}

	local, err := s.serialize(ctx, c, opts)
	if err != nil {
		return models.PushResult{}, err
	}

	remote, err := s.listRemote(ctx, collectionID)
	if err != nil {
		log.Err(err).Str("func", "syncService.PushCollection").Msg("failed to list remote collection")
		return models.PushResult{}, err
	}

	plan, err := s.merger.Classify(ctx, c.Sync.FileState, local, remote)
	if err != nil {
		return models.PushResult{}, err
	}
	span.SetPlan(plan)

	if plan.HasConflicts() {
		log.Warn().
			Str("func", "syncService.PushCollection").
			Strs("paths", plan.Conflicts).
			Msg("push rejected: both sides changed")
		return models.PushResult{}, &ConflictError{
			CollectionID:   c.ID,
			CollectionName: c.Name,
			Paths:          plan.Conflicts,
		}
	}

	result = models.PushResult{
		CollectionID: c.ID,
		Pushed:       orEmpty(plan.Push),
		Deleted:      orEmpty(plan.Delete),
		Skipped:      orEmpty(plan.Skip),
	}

	var commitID string
	if !plan.IsNoop() {
		files := make(map[string][]byte, len(plan.Push))
		for _, p := range plan.Push {
			files[s.toRemote(p)] = local[p]
		}
		deletes := make([]string, 0, len(plan.Delete))
		for _, p := range plan.Delete {
			deletes = append(deletes, s.toRemote(p))
		}

		commitID, err = s.host.CommitMultipleFiles(ctx, files, s.commitMessage("push", c.Name), deletes)
		if err != nil {
			log.Err(err).Str("func", "syncService.PushCollection").Msg("failed to commit collection")
			return models.PushResult{}, transportErr("commit collection", err)
		}
		span.SetCommit(commitID)
		result.CommitID = commitID
	}

	next := make(models.FileStates, len(local))
	pushed := toSet(plan.Push)
	for p, content := range local {
		if _, ok := pushed[p]; ok {
			next[p] = s.predictState(content, commitID)
			continue
		}
		if prev, ok := c.Sync.FileState[p]; ok {
			next[p] = prev
		}
	}

	if err = s.saveSynced(ctx, c.ID, next); err != nil {
		return models.PushResult{}, err
	}

	log.Info().
		Str("func", "syncService.PushCollection").
		Int("pushed", len(plan.Push)).
		Int("deleted", len(plan.Delete)).
		Int("skipped", len(plan.Skip)).
		Msg("collection pushed")

	return result, nil
}

// PushAll pushes every sync-enabled collection that is dirty or was never
// synced. Failures and conflicts are collected per collection.
func (s *syncService) PushAll(ctx context.Context) (result models.PushAllResult, err error) {
	ctx, span := s.tracer.StartSyncSpan(ctx, "push_all", "")
	defer func() { span.Finish(err) }()

	if s.host == nil {
		return models.PushAllResult{}, ErrNotConfigured
	}

	candidates, err := s.collections.ListCollections(ctx, store.CollectionFilter{OnlySyncEnabled: true})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "syncService.PushAll").Msg("failed to list collections")
		return models.PushAllResult{}, err
	}

	result = models.PushAllResult{
		Pushed:    make(map[string]models.PushResult),
		Conflicts: make(map[string][]string),
		Failures:  make(map[string]string),
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(s.cfg.PushConcurrency)

	for _, c := range candidates {
		if !c.Sync.IsDirty && c.Sync.LastSyncedAt != nil {
			continue
		}

		g.Go(func() error {
			res, pushErr := s.PushCollection(ctx, c.ID, PushOptions{Sanitize: s.cfg.SanitizeByDefault})

			mu.Lock()
			defer mu.Unlock()

			if conflict, ok := AsConflict(pushErr); ok {
				result.Conflicts[c.ID] = conflict.Paths
				return nil
			}
			if pushErr != nil {
				result.Failures[c.ID] = pushErr.Error()
				return nil
			}
			result.Pushed[c.ID] = res
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

// Pull lists the remote root and imports or refreshes every remote
// collection.
func (s *syncService) Pull(ctx context.Context) (result models.PullResult, err error) {
	ctx, span := s.tracer.StartSyncSpan(ctx, "pull", "")
	defer func() { span.Finish(err) }()

	if s.host == nil {
		return models.PullResult{}, ErrNotConfigured
	}

	items, err := s.host.ListDirectoryRecursive(ctx, s.cfg.Root)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "syncService.Pull").Msg("failed to list remote root")
		return models.PullResult{}, transportErr("list remote root", err)
	}

	envs, err := s.environments.ListEnvironments(ctx)
	if err != nil {
		return models.PullResult{}, err
	}

	result = models.PullResult{
		Outcomes:  make(map[string]models.PullOutcome),
		Conflicts: make(map[string][]string),
		Failures:  make(map[string]string),
	}

	groups := s.groupByCollection(items)
	for _, id := range sortedKeys(groups) {
		outcome, pullErr := s.pullGroup(ctx, id, groups[id], envs)
		if conflict, ok := AsConflict(pullErr); ok {
			result.Conflicts[id] = conflict.Paths
			continue
		}
		if pullErr != nil {
			result.Failures[id] = pullErr.Error()
			continue
		}
		result.Outcomes[id] = outcome
	}

	return result, nil
}

// PullCollection is the single-collection analogue of Pull.
func (s *syncService) PullCollection(ctx context.Context, collectionID string) (outcome models.PullOutcome, err error) {
	ctx, span := s.tracer.StartSyncSpan(ctx, "pull_collection", collectionID)
	defer func() { span.Finish(err) }()

	if s.host == nil {
		return "", ErrNotConfigured
	}

	remote, err := s.listRemote(ctx, collectionID)
	if err != nil {
		return "", err
	}
	if _, ok := remote[projection.MetadataPath(collectionID)]; !ok {
		return "", fmt.Errorf("%w: remote collection %s", ErrNotFound, collectionID)
	}

	envs, err := s.environments.ListEnvironments(ctx)
	if err != nil {
		return "", err
	}

	return s.pullGroup(ctx, collectionID, remote, envs)
}

// ForceKeepLocal overwrites every remote file with the local projection and
// removes remote orphans, bypassing the merge check.
func (s *syncService) ForceKeepLocal(ctx context.Context, collectionID string, opts PushOptions) (result models.PushResult, err error) {
	ctx, span := s.tracer.StartSyncSpan(ctx, "force_keep_local", collectionID)
	defer func() { span.Finish(err) }()

	if s.host == nil {
		return models.PushResult{}, ErrNotConfigured
	}

	unlock := s.locks.lock(collectionID)
	defer unlock()

	c, err := s.loadSyncable(ctx, collectionID)
	if err != nil {
		return models.PushResult{}, err
	}

	local, err := s.serialize(ctx, c, opts)
	if err != nil {
		return models.PushResult{}, err
	}

	remote, err := s.listRemote(ctx, collectionID)
	if err != nil {
		return models.PushResult{}, err
	}

	files := make(map[string][]byte, len(local))
	for p, content := range local {
		files[s.toRemote(p)] = content
	}
	deleted := make([]string, 0)
	deletes := make([]string, 0)
	for _, p := range sortedKeys(remote) {
		if _, ok := local[p]; !ok {
			deleted = append(deleted, p)
			deletes = append(deletes, s.toRemote(p))
		}
	}

	commitID, err := s.host.CommitMultipleFiles(ctx, files, s.commitMessage("keep local", c.Name), deletes)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncService.ForceKeepLocal").
			Str("collection_id", collectionID).
			Msg("failed to overwrite remote collection")
		return models.PushResult{}, transportErr("commit collection", err)
	}
	span.SetCommit(commitID)

	next := make(models.FileStates, len(local))
	for p, content := range local {
		next[p] = s.predictState(content, commitID)
	}
	if err = s.saveSynced(ctx, c.ID, next); err != nil {
		return models.PushResult{}, err
	}

	return models.PushResult{
		CollectionID: c.ID,
		CommitID:     commitID,
		Pushed:       sortedKeys(local),
		Deleted:      deleted,
		Skipped:      []string{},
	}, nil
}

// ForceKeepRemote imports the remote tree over local, discarding local
// edits.
func (s *syncService) ForceKeepRemote(ctx context.Context, collectionID string) (err error) {
	ctx, span := s.tracer.StartSyncSpan(ctx, "force_keep_remote", collectionID)
	defer func() { span.Finish(err) }()

	if s.host == nil {
		return ErrNotConfigured
	}

	unlock := s.locks.lock(collectionID)
	defer unlock()

	var existing *models.Collection
	c, err := s.collections.GetCollection(ctx, collectionID)
	switch {
	case err == nil:
		if !c.Sync.Enabled {
			return ErrSyncDisabled
		}
		existing = &c
	case !errors.Is(err, store.ErrCollectionNotFound):
		return err
	}

	envs, err := s.environments.ListEnvironments(ctx)
	if err != nil {
		return err
	}

	return s.fetchAndImport(ctx, collectionID, existing, envs)
}

// PushRequest writes a single request file. A stale-version rejection is
// not retried; the collection is marked dirty for the next full push.
func (s *syncService) PushRequest(ctx context.Context, collectionID, requestID string, opts PushOptions) (result models.PushRequestResult, err error) {
	ctx, span := s.tracer.StartSyncSpan(ctx, "push_request", collectionID)
	defer func() { span.Finish(err) }()

	if s.host == nil {
		return models.PushRequestResult{}, ErrNotConfigured
	}

	unlock := s.locks.lock(collectionID)
	defer unlock()

	log := logger.FromContext(ctx).ForCollection(collectionID)

	c, err := s.loadSyncable(ctx, collectionID)
	if err != nil {
		return models.PushRequestResult{}, err
	}

	envs, err := s.environments.ListEnvironments(ctx)
	if err != nil {
		return models.PushRequestResult{}, err
	}

	p, content, err := projection.SerializeRequest(c, requestID, s.projectionOptions(opts, envs))
	if errors.Is(err, projection.ErrRequestNotFound) {
		return models.PushRequestResult{}, fmt.Errorf("%w: request %s", ErrNotFound, requestID)
	}
	if err != nil {
		return models.PushRequestResult{}, fmt.Errorf("serialize request: %w", err)
	}

	result = models.PushRequestResult{CollectionID: c.ID, Path: p}
	kind := s.host.VersionKind()
	msg := s.commitMessage("update request in", c.Name)

	var version models.FileVersion
	prev, known := c.Sync.FileState[p]
	token := prev.Token(kind)
	switch {
	case known && !token.IsZero():
		version, err = s.host.UpdateFile(ctx, s.toRemote(p), content, token, msg)
	case known && prev.RemoteVersionID != "":
		// tracked remotely, but without the token this host updates by
		err = fmt.Errorf("%w: no %s token for %s", adapter.ErrVersionConflict, kind, p)
	default:
		version, err = s.host.CreateFile(ctx, s.toRemote(p), content, msg)
	}

	if errors.Is(err, adapter.ErrVersionConflict) {
		log.Warn().
			Str("func", "syncService.PushRequest").
			Str("path", p).
			Msg("remote file moved on, deferring to a full push")
		if markErr := s.states.MarkDirty(ctx, c.ID); markErr != nil {
			return models.PushRequestResult{}, markErr
		}
		result.Deferred = true
		return result, nil
	}
	if err != nil {
		log.Err(err).Str("func", "syncService.PushRequest").Str("path", p).Msg("failed to write request file")
		return models.PushRequestResult{}, transportErr("write request file", err)
	}

	entry := models.FileState{
		ContentHash:     utils.ContentHash(content),
		RemoteVersionID: version.VersionID,
	}
	if entry.RemoteVersionID == "" {
		entry.RemoteVersionID = utils.BlobID(content)
	}
	if kind == models.VersionCommit {
		entry.CommitID = version.CommitID
	}

	state := c.Sync
	state.FileState = c.Sync.FileState.Clone()
	if state.FileState == nil {
		state.FileState = models.FileStates{}
	}
	state.FileState[p] = entry

	if err = s.states.SaveSyncState(ctx, c.ID, state); err != nil {
		return models.PushRequestResult{}, notFoundFromStore(err, c.ID)
	}

	result.VersionID = entry.RemoteVersionID
	return result, nil
}

// RemoveRemoteCollection deletes the collection directory remotely and
// forgets the recorded file state. A collection that was never pushed is
// not an error.
func (s *syncService) RemoveRemoteCollection(ctx context.Context, collectionID string) (err error) {
	ctx, span := s.tracer.StartSyncSpan(ctx, "remove_remote", collectionID)
	defer func() { span.Finish(err) }()

	if s.host == nil {
		return ErrNotConfigured
	}

	unlock := s.locks.lock(collectionID)
	defer unlock()

	err = s.host.DeleteDirectory(ctx, s.remoteDir(collectionID), s.commitMessage("remove", collectionID))
	switch {
	case errors.Is(err, adapter.ErrNotFound):
		logger.FromContext(ctx).Debug().
			Str("func", "syncService.RemoveRemoteCollection").
			Str("collection_id", collectionID).
			Msg("collection was never pushed")
	case err != nil:
		return transportErr("delete remote collection", err)
	}

	err = s.states.SaveSyncState(ctx, collectionID, models.SyncMetadata{FileState: models.FileStates{}})
	if errors.Is(err, store.ErrCollectionNotFound) {
		return nil
	}
	return err
}

func (s *syncService) SetSyncEnabled(ctx context.Context, collectionID string, enabled bool) error {
	if err := s.states.SetSyncEnabled(ctx, collectionID, enabled); err != nil {
		return notFoundFromStore(err, collectionID)
	}
	return nil
}

func (s *syncService) TestConnection(ctx context.Context) (bool, error) {
	if s.host == nil {
		return false, ErrNotConfigured
	}

	ok, err := s.host.TestConnection(ctx)
	if err != nil {
		return false, transportErr("test connection", err)
	}
	return ok, nil
}

// Status lists the sync indicator row of every collection.
func (s *syncService) Status(ctx context.Context) ([]models.CollectionStatus, error) {
	collections, err := s.collections.ListCollections(ctx, store.CollectionFilter{})
	if err != nil {
		return nil, err
	}

	statuses := make([]models.CollectionStatus, 0, len(collections))
	for _, c := range collections {
		statuses = append(statuses, models.StatusOf(c))
	}
	return statuses, nil
}

// pullGroup applies one remote collection listing to the local store.
func (s *syncService) pullGroup(ctx context.Context, collectionID string, remote map[string]string, envs []models.Environment) (models.PullOutcome, error) {
	unlock := s.locks.lock(collectionID)
	defer unlock()

	local, err := s.collections.GetCollection(ctx, collectionID)
	if errors.Is(err, store.ErrCollectionNotFound) {
		if err = s.fetchAndImport(ctx, collectionID, nil, envs); err != nil {
			return "", err
		}
		return models.PullImported, nil
	}
	if err != nil {
		return "", err
	}

	if !local.Sync.Enabled {
		return models.PullSkipped, nil
	}

	changed := s.merger.RemoteChanged(local.Sync.FileState, remote)
	if len(changed) == 0 {
		return models.PullUnchanged, nil
	}

	if local.Sync.IsDirty {
		logger.FromContext(ctx).Warn().
			Str("func", "syncService.pullGroup").
			Str("collection_id", collectionID).
			Strs("paths", changed).
			Msg("pull rejected: local collection has unpushed changes")
		return "", &ConflictError{CollectionID: local.ID, CollectionName: local.Name, Paths: changed}
	}

	if err = s.fetchAndImport(ctx, collectionID, &local, envs); err != nil {
		return "", err
	}
	return models.PullUpdated, nil
}

// fetchAndImport downloads the remote tree and replaces the local
// collection with it, recording the fetched versions as the new base.
func (s *syncService) fetchAndImport(ctx context.Context, collectionID string, existing *models.Collection, envs []models.Environment) error {
	tree, err := s.host.GetDirectoryTree(ctx, s.remoteDir(collectionID))
	if errors.Is(err, adapter.ErrNotFound) {
		return fmt.Errorf("%w: remote collection %s", ErrNotFound, collectionID)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncService.fetchAndImport").
			Str("collection_id", collectionID).
			Msg("failed to fetch remote collection")
		return transportErr("fetch remote collection", err)
	}

	kind := s.host.VersionKind()
	files := make(map[string][]byte, len(tree))
	state := make(models.FileStates, len(tree))
	for _, f := range tree {
		p := s.toLocal(f.Path)
		files[p] = f.Content

		entry := models.FileState{
			ContentHash:     utils.ContentHash(f.Content),
			RemoteVersionID: f.VersionID,
		}
		if entry.RemoteVersionID == "" {
			entry.RemoteVersionID = utils.BlobID(f.Content)
		}
		if kind == models.VersionCommit {
			entry.CommitID = f.CommitID
		}
		state[p] = entry
	}

	if _, ok := files[projection.MetadataPath(collectionID)]; !ok {
		return fmt.Errorf("%w: remote collection %s", ErrNotFound, collectionID)
	}

	c, err := projection.Deserialize(files, existing, envs)
	if err != nil {
		return fmt.Errorf("import remote collection: %w", err)
	}
	if c.ID != collectionID {
		return fmt.Errorf("import remote collection: %w", projection.ErrCollectionIDMismatch)
	}

	now := s.now().UTC()
	c.Sync = models.SyncMetadata{
		Enabled:         true,
		IsDirty:         false,
		RemoteVersionID: state[projection.MetadataPath(collectionID)].RemoteVersionID,
		LastSyncedAt:    &now,
		FileState:       state,
	}

	if err = s.collections.ReplaceCollectionTree(ctx, c); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().
		Str("func", "syncService.fetchAndImport").
		Str("collection_id", collectionID).
		Int("files", len(files)).
		Msg("collection imported from remote")
	return nil
}

// loadSyncable loads the full collection and rejects collections that do
// not take part in sync.
func (s *syncService) loadSyncable(ctx context.Context, collectionID string) (models.Collection, error) {
	c, err := s.collections.GetCollection(ctx, collectionID)
	if err != nil {
		return models.Collection{}, notFoundFromStore(err, collectionID)
	}
	if !c.Sync.Enabled {
		return models.Collection{}, ErrSyncDisabled
	}
	return c, nil
}

func (s *syncService) serialize(ctx context.Context, c models.Collection, opts PushOptions) (map[string][]byte, error) {
	envs, err := s.environments.ListEnvironments(ctx)
	if err != nil {
		return nil, err
	}

	files, err := projection.Serialize(c, s.projectionOptions(opts, envs))
	if err != nil {
		return nil, fmt.Errorf("serialize collection: %w", err)
	}
	return files, nil
}

func (s *syncService) projectionOptions(opts PushOptions, envs []models.Environment) projection.Options {
	po := projection.Options{Environments: envs}
	if opts.Sanitize && s.cfg.Sanitizer != nil {
		po.Sanitizer = s.cfg.Sanitizer
	}
	return po
}

// listRemote returns projection path to version id of every remote file
// of the collection.
func (s *syncService) listRemote(ctx context.Context, collectionID string) (map[string]string, error) {
	items, err := s.host.ListDirectoryRecursive(ctx, s.remoteDir(collectionID))
	if err != nil {
		return nil, transportErr("list remote collection", err)
	}

	remote := make(map[string]string, len(items))
	for _, item := range items {
		if item.Type != models.RemoteFile {
			continue
		}
		remote[s.toLocal(item.Path)] = item.VersionID
	}
	return remote, nil
}

// groupByCollection splits a root listing into per-collection listings.
// Directories without a root metadata file are not collections.
func (s *syncService) groupByCollection(items []models.RemoteItem) map[string]map[string]string {
	groups := make(map[string]map[string]string)
	for _, item := range items {
		if item.Type != models.RemoteFile {
			continue
		}
		p := s.toLocal(item.Path)
		id := projection.CollectionIDOf(p)
		if id == "" || id == p {
			continue
		}
		if groups[id] == nil {
			groups[id] = make(map[string]string)
		}
		groups[id][p] = item.VersionID
	}

	for id, files := range groups {
		if _, ok := files[projection.MetadataPath(id)]; !ok {
			delete(groups, id)
		}
	}
	return groups
}

// predictState computes the triad of a file just written, without asking
// the host.
func (s *syncService) predictState(content []byte, commitID string) models.FileState {
	st := models.FileState{
		ContentHash:     utils.ContentHash(content),
		RemoteVersionID: utils.BlobID(content),
	}
	if s.host.VersionKind() == models.VersionCommit {
		st.CommitID = commitID
	}
	return st
}

func (s *syncService) saveSynced(ctx context.Context, collectionID string, state models.FileStates) error {
	now := s.now().UTC()
	err := s.states.SaveSyncState(ctx, collectionID, models.SyncMetadata{
		IsDirty:         false,
		RemoteVersionID: state[projection.MetadataPath(collectionID)].RemoteVersionID,
		LastSyncedAt:    &now,
		FileState:       state,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncService.saveSynced").
			Str("collection_id", collectionID).
			Msg("remote written but sync state not saved")
		return notFoundFromStore(err, collectionID)
	}
	return nil
}

func (s *syncService) remoteDir(collectionID string) string {
	return path.Join(s.cfg.Root, collectionID)
}

func (s *syncService) toRemote(p string) string {
	return projection.Rebase(p, "", s.cfg.Root)
}

func (s *syncService) toLocal(p string) string {
	return projection.Rebase(p, s.cfg.Root, "")
}

func (s *syncService) commitMessage(action, subject string) string {
	msg := fmt.Sprintf("%s collection %q", action, subject)
	if s.cfg.CommitAuthor == "" {
		return msg
	}
	return s.cfg.CommitAuthor + ": " + msg
}

func notFoundFromStore(err error, collectionID string) error {
	if errors.Is(err, store.ErrCollectionNotFound) {
		return fmt.Errorf("%w: collection %s", ErrNotFound, collectionID)
	}
	return err
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
