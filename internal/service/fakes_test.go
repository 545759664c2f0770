package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/MKhiriev/go-req-sync/internal/adapter"
	"github.com/MKhiriev/go-req-sync/internal/store"
	"github.com/MKhiriev/go-req-sync/internal/utils"
	"github.com/MKhiriev/go-req-sync/models"
)

// ---------------------------------------------------------------------------
// memHost: in-memory RemoteHost keyed by full repository path
// ---------------------------------------------------------------------------

type memHost struct {
	mu sync.Mutex

	kind    models.VersionKind
	files   map[string][]byte
	commits map[string]string // path -> last commit touching it
	seq     int

	commitCalls int
	singleCalls int
	lastFiles   map[string][]byte
	lastDeletes []string

	// failCommit makes CommitMultipleFiles fail when any written or deleted
	// path starts with the key.
	failCommit map[string]error
}

func newMemHost(kind models.VersionKind) *memHost {
	return &memHost{
		kind:       kind,
		files:      make(map[string][]byte),
		commits:    make(map[string]string),
		failCommit: make(map[string]error),
	}
}

func (h *memHost) nextCommit() string {
	h.seq++
	return fmt.Sprintf("commit-%d", h.seq)
}

// put simulates another client writing a file.
func (h *memHost) put(p string, content []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.files[p] = content
	h.commits[p] = h.nextCommit()
}

func (h *memHost) get(p string) ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.files[p]
	return c, ok
}

func (h *memHost) paths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.files))
	for p := range h.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (h *memHost) TestConnection(ctx context.Context) (bool, error) {
	return true, nil
}

func (h *memHost) ListDirectoryRecursive(ctx context.Context, dir string) ([]models.RemoteItem, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	items := make([]models.RemoteItem, 0)
	for p, content := range h.files {
		if strings.HasPrefix(p, dir+"/") {
			items = append(items, models.RemoteItem{Type: models.RemoteFile, Path: p, VersionID: utils.BlobID(content)})
		}
	}
	return items, nil
}

func (h *memHost) GetDirectoryTree(ctx context.Context, dir string) ([]models.FileContent, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	tree := make([]models.FileContent, 0)
	for p, content := range h.files {
		if strings.HasPrefix(p, dir+"/") {
			tree = append(tree, models.FileContent{
				Path:      p,
				Content:   content,
				VersionID: utils.BlobID(content),
				CommitID:  h.commits[p],
			})
		}
	}
	if len(tree) == 0 {
		return nil, adapter.ErrNotFound
	}
	return tree, nil
}

func (h *memHost) GetFile(ctx context.Context, p string) (*models.FileContent, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	content, ok := h.files[p]
	if !ok {
		return nil, adapter.ErrNotFound
	}
	return &models.FileContent{Path: p, Content: content, VersionID: utils.BlobID(content), CommitID: h.commits[p]}, nil
}

func (h *memHost) CreateFile(ctx context.Context, p string, content []byte, message string) (models.FileVersion, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.singleCalls++
	if _, exists := h.files[p]; exists {
		return models.FileVersion{}, adapter.ErrVersionConflict
	}
	h.files[p] = content
	h.commits[p] = h.nextCommit()
	return models.FileVersion{VersionID: utils.BlobID(content), CommitID: h.commits[p]}, nil
}

func (h *memHost) UpdateFile(ctx context.Context, p string, content []byte, token models.VersionToken, message string) (models.FileVersion, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.singleCalls++
	current, exists := h.files[p]
	if !exists {
		return models.FileVersion{}, adapter.ErrNotFound
	}

	expected := utils.BlobID(current)
	if h.kind == models.VersionCommit {
		expected = h.commits[p]
	}
	if token.Value != expected {
		return models.FileVersion{}, adapter.ErrVersionConflict
	}

	h.files[p] = content
	h.commits[p] = h.nextCommit()
	return models.FileVersion{VersionID: utils.BlobID(content), CommitID: h.commits[p]}, nil
}

func (h *memHost) CommitMultipleFiles(ctx context.Context, files map[string][]byte, message string, deletePaths []string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for prefix, err := range h.failCommit {
		for p := range files {
			if strings.HasPrefix(p, prefix) {
				return "", err
			}
		}
		for _, p := range deletePaths {
			if strings.HasPrefix(p, prefix) {
				return "", err
			}
		}
	}

	h.commitCalls++
	h.lastFiles = files
	h.lastDeletes = deletePaths

	commit := h.nextCommit()
	for p, content := range files {
		h.files[p] = content
		h.commits[p] = commit
	}
	for _, p := range deletePaths {
		delete(h.files, p)
		delete(h.commits, p)
	}
	return commit, nil
}

func (h *memHost) DeleteDirectory(ctx context.Context, dir, message string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	found := false
	for p := range h.files {
		if strings.HasPrefix(p, dir+"/") {
			delete(h.files, p)
			delete(h.commits, p)
			found = true
		}
	}
	if !found {
		return adapter.ErrNotFound
	}
	return nil
}

func (h *memHost) VersionKind() models.VersionKind {
	return h.kind
}

// ---------------------------------------------------------------------------
// memStore: in-memory collection, sync state and environment repositories
// ---------------------------------------------------------------------------

type memStore struct {
	mu          sync.Mutex
	collections map[string]models.Collection
	envs        []models.Environment
}

func newMemStore(collections ...models.Collection) *memStore {
	s := &memStore{collections: make(map[string]models.Collection)}
	for _, c := range collections {
		s.collections[c.ID] = clone(c)
	}
	return s
}

func (s *memStore) repositories() store.Repositories {
	return store.Repositories{
		CollectionRepository:  s,
		SyncStateRepository:   s,
		EnvironmentRepository: s,
	}
}

// clone deep-copies a collection so callers never share slices or maps
// with the store.
func clone(c models.Collection) models.Collection {
	raw, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	var out models.Collection
	if err = json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return out
}

// edit mutates a stored collection the way the editing service would.
func (s *memStore) edit(id string, fn func(c *models.Collection)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collections[id]
	fn(&c)
	if c.Sync.Enabled {
		c.Sync.IsDirty = true
	}
	s.collections[id] = c
}

func (s *memStore) collection(id string) models.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.collections[id])
}

func (s *memStore) ListCollections(ctx context.Context, filter store.CollectionFilter) ([]models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		if filter.OnlySyncEnabled && !c.Sync.Enabled {
			continue
		}
		if filter.OnlyDirty && !c.Sync.IsDirty {
			continue
		}
		c = clone(c)
		c.Folders, c.Requests = nil, nil
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GetCollection(ctx context.Context, id string) (models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[id]
	if !ok {
		return models.Collection{}, store.ErrCollectionNotFound
	}
	return clone(c), nil
}

func (s *memStore) CreateCollection(ctx context.Context, c models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[c.ID]; ok {
		return store.ErrCollectionAlreadyExists
	}
	s.collections[c.ID] = clone(c)
	return nil
}

func (s *memStore) UpdateCollection(ctx context.Context, c models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.collections[c.ID]
	if !ok {
		return store.ErrCollectionNotFound
	}
	old.Name, old.Description, old.Variables = c.Name, c.Description, c.Variables
	s.collections[c.ID] = old
	return nil
}

func (s *memStore) DeleteCollection(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[id]; !ok {
		return store.ErrCollectionNotFound
	}
	delete(s.collections, id)
	return nil
}

func (s *memStore) ReplaceCollectionTree(ctx context.Context, c models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[c.ID] = clone(c)
	return nil
}

func (s *memStore) SaveFolder(ctx context.Context, f models.Folder) error {
	return nil
}

func (s *memStore) DeleteFolder(ctx context.Context, collectionID, folderID string) error {
	return nil
}

func (s *memStore) SaveRequest(ctx context.Context, r models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[r.CollectionID]
	if !ok {
		return store.ErrCollectionNotFound
	}
	c = clone(c)
	for fi := range c.Folders {
		for ri := range c.Folders[fi].Requests {
			if c.Folders[fi].Requests[ri].ID == r.ID {
				c.Folders[fi].Requests[ri] = r
				s.collections[c.ID] = c
				return nil
			}
		}
	}
	return store.ErrRequestNotFound
}

func (s *memStore) DeleteRequest(ctx context.Context, collectionID, requestID string) error {
	return nil
}

func (s *memStore) GetSyncState(ctx context.Context, id string) (models.SyncMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[id]
	if !ok {
		return models.SyncMetadata{}, store.ErrCollectionNotFound
	}
	return clone(c).Sync, nil
}

func (s *memStore) SaveSyncState(ctx context.Context, id string, state models.SyncMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[id]
	if !ok {
		return store.ErrCollectionNotFound
	}
	state.Enabled = c.Sync.Enabled
	state.FileState = state.FileState.Clone()
	c.Sync = state
	s.collections[id] = c
	return nil
}

func (s *memStore) MarkDirty(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[id]; ok && c.Sync.Enabled {
		c.Sync.IsDirty = true
		s.collections[id] = c
	}
	return nil
}

func (s *memStore) SetSyncEnabled(ctx context.Context, id string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[id]
	if !ok {
		return store.ErrCollectionNotFound
	}
	c.Sync.Enabled = enabled
	if enabled {
		c.Sync.IsDirty = true
	}
	s.collections[id] = c
	return nil
}

func (s *memStore) ListEnvironments(ctx context.Context) ([]models.Environment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Environment(nil), s.envs...), nil
}

func (s *memStore) GetEnvironment(ctx context.Context, id string) (models.Environment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.envs {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Environment{}, store.ErrEnvironmentNotFound
}

func (s *memStore) SaveEnvironment(ctx context.Context, env models.Environment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envs = append(s.envs, env)
	return nil
}

func (s *memStore) DeleteEnvironment(ctx context.Context, id string) error {
	return nil
}
