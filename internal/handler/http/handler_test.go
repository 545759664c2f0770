package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/service"
	"github.com/MKhiriev/go-req-sync/internal/store"
	"github.com/MKhiriev/go-req-sync/internal/utils"
	"github.com/MKhiriev/go-req-sync/models"
)

// stubSync is a hand-written SyncService; a generated mock would import
// the service package from internal/mock and cycle with its tests.
type stubSync struct {
	service.SyncService

	pushCollection func(id string, opts service.PushOptions) (models.PushResult, error)
	pushRequest    func(id, requestID string) (models.PushRequestResult, error)
	forceLocal     func(id string) (models.PushResult, error)
	forceRemote    func(id string) error
	setSync        func(id string, enabled bool) error
	status         func() ([]models.CollectionStatus, error)
	ping           func() (bool, error)
	pull           func() (models.PullResult, error)
}

func (s *stubSync) PushCollection(_ context.Context, id string, opts service.PushOptions) (models.PushResult, error) {
	return s.pushCollection(id, opts)
}

func (s *stubSync) PushRequest(_ context.Context, id, requestID string, _ service.PushOptions) (models.PushRequestResult, error) {
	return s.pushRequest(id, requestID)
}

func (s *stubSync) ForceKeepLocal(_ context.Context, id string, _ service.PushOptions) (models.PushResult, error) {
	return s.forceLocal(id)
}

func (s *stubSync) ForceKeepRemote(_ context.Context, id string) error {
	return s.forceRemote(id)
}

func (s *stubSync) SetSyncEnabled(_ context.Context, id string, enabled bool) error {
	return s.setSync(id, enabled)
}

func (s *stubSync) Status(context.Context) ([]models.CollectionStatus, error) {
	return s.status()
}

func (s *stubSync) TestConnection(context.Context) (bool, error) {
	return s.ping()
}

func (s *stubSync) Pull(context.Context) (models.PullResult, error) {
	return s.pull()
}

type stubCollections struct {
	service.CollectionService

	create     func(c models.Collection) (models.Collection, error)
	get        func(id string) (models.Collection, error)
	saveFolder func(f models.Folder) (models.Folder, error)
}

func (s *stubCollections) CreateCollection(_ context.Context, c models.Collection) (models.Collection, error) {
	return s.create(c)
}

func (s *stubCollections) GetCollection(_ context.Context, id string) (models.Collection, error) {
	return s.get(id)
}

func (s *stubCollections) SaveFolder(_ context.Context, f models.Folder) (models.Folder, error) {
	return s.saveFolder(f)
}

func newTestRouter(sync *stubSync, collections *stubCollections) http.Handler {
	h := NewHandler(&service.Services{
		SyncService:       sync,
		CollectionService: collections,
	}, models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"), 0, logger.Nop())
	return h.Init()
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ---------------------------------------------------------------------------
// Sync routes
// ---------------------------------------------------------------------------

func TestPushCollection(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		err          error
		wantStatus   int
		wantSanitize bool
		wantPaths    []string
	}{
		{
			name:       "pushed",
			target:     "/api/collections/c1/push",
			wantStatus: http.StatusOK,
		},
		{
			name:         "sanitized copy",
			target:       "/api/collections/c1/push?sanitize=true",
			wantStatus:   http.StatusOK,
			wantSanitize: true,
		},
		{
			name:       "bad sanitize flag",
			target:     "/api/collections/c1/push?sanitize=maybe",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "conflict",
			target:     "/api/collections/c1/push",
			err:        &service.ConflictError{CollectionID: "c1", CollectionName: "Users", Paths: []string{"c1/r1.yaml"}},
			wantStatus: http.StatusConflict,
			wantPaths:  []string{"c1/r1.yaml"},
		},
		{
			name:       "not configured",
			target:     "/api/collections/c1/push",
			err:        service.ErrNotConfigured,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "transport failure",
			target:     "/api/collections/c1/push",
			err:        fmt.Errorf("%w: commit: boom", service.ErrTransport),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "missing collection",
			target:     "/api/collections/c1/push",
			err:        service.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "sync disabled",
			target:     "/api/collections/c1/push",
			err:        service.ErrSyncDisabled,
			wantStatus: http.StatusPreconditionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOpts service.PushOptions
			sync := &stubSync{
				pushCollection: func(id string, opts service.PushOptions) (models.PushResult, error) {
					assert.Equal(t, "c1", id)
					gotOpts = opts
					if tt.err != nil {
						return models.PushResult{}, tt.err
					}
					return models.PushResult{CollectionID: id, Pushed: []string{"c1/collection.yaml"}}, nil
				},
			}

			rr := do(t, newTestRouter(sync, &stubCollections{}), http.MethodPost, tt.target, "")
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantSanitize, gotOpts.Sanitize)
			assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

			if tt.wantPaths != nil {
				var resp errorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantPaths, resp.Paths)
				assert.Equal(t, "c1", resp.CollectionID)
			}
		})
	}
}

func TestPushRequest_Deferred(t *testing.T) {
	sync := &stubSync{
		pushRequest: func(id, requestID string) (models.PushRequestResult, error) {
			assert.Equal(t, "c1", id)
			assert.Equal(t, "r1", requestID)
			return models.PushRequestResult{CollectionID: id, Path: "c1/r1.yaml", Deferred: true}, nil
		},
	}

	rr := do(t, newTestRouter(sync, &stubCollections{}), http.MethodPost, "/api/collections/c1/requests/r1/push", "")
	assert.Equal(t, http.StatusAccepted, rr.Code)

	var got models.PushRequestResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got.Deferred)
}

func TestResolveConflict(t *testing.T) {
	var kept string
	sync := &stubSync{
		forceLocal: func(id string) (models.PushResult, error) {
			kept = "local"
			return models.PushResult{CollectionID: id}, nil
		},
		forceRemote: func(id string) error {
			kept = "remote"
			return nil
		},
	}
	router := newTestRouter(sync, &stubCollections{})

	rr := do(t, router, http.MethodPost, "/api/collections/c1/resolve", `{"keep":"local"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "local", kept)

	rr = do(t, router, http.MethodPost, "/api/collections/c1/resolve", `{"keep":"remote"}`)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "remote", kept)

	rr = do(t, router, http.MethodPost, "/api/collections/c1/resolve", `{"keep":"both"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, router, http.MethodPost, "/api/collections/c1/resolve", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSetSyncEnabled(t *testing.T) {
	var got *bool
	sync := &stubSync{
		setSync: func(id string, enabled bool) error {
			if id == "missing" {
				return fmt.Errorf("%w: collection missing", service.ErrNotFound)
			}
			got = &enabled
			return nil
		},
	}
	router := newTestRouter(sync, &stubCollections{})

	rr := do(t, router, http.MethodPost, "/api/collections/c1/sync", `{"enabled":false}`)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, got)
	assert.False(t, *got)

	rr = do(t, router, http.MethodPost, "/api/collections/c1/sync", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, router, http.MethodPost, "/api/collections/missing/sync", `{"enabled":true}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatusPullAndPing(t *testing.T) {
	sync := &stubSync{
		status: func() ([]models.CollectionStatus, error) {
			return []models.CollectionStatus{{ID: "c1", State: models.StateDirty}}, nil
		},
		pull: func() (models.PullResult, error) {
			return models.PullResult{Outcomes: map[string]models.PullOutcome{"c1": models.PullImported}}, nil
		},
		ping: func() (bool, error) { return false, nil },
	}
	router := newTestRouter(sync, &stubCollections{})

	rr := do(t, router, http.MethodGet, "/api/collections/status", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"state":"dirty"`)

	rr = do(t, router, http.MethodPost, "/api/sync/pull", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"c1":"imported"`)

	rr = do(t, router, http.MethodGet, "/api/remote/ping", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"reachable":false}`, rr.Body.String())
}

// ---------------------------------------------------------------------------
// Collection routes
// ---------------------------------------------------------------------------

func TestCreateAndGetCollection(t *testing.T) {
	collections := &stubCollections{
		create: func(c models.Collection) (models.Collection, error) {
			if c.Name == "" {
				return models.Collection{}, fmt.Errorf("%w: name is required", service.ErrInvalidCollection)
			}
			c.ID = "generated"
			return c, nil
		},
		get: func(id string) (models.Collection, error) {
			return models.Collection{}, fmt.Errorf("%w: %w", service.ErrNotFound, store.ErrCollectionNotFound)
		},
	}
	router := newTestRouter(&stubSync{}, collections)

	rr := do(t, router, http.MethodPost, "/api/collections", `{"name":"Users API"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"generated"`)

	rr = do(t, router, http.MethodPost, "/api/collections", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, router, http.MethodGet, "/api/collections/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSaveFolder_TakesIDsFromPath(t *testing.T) {
	collections := &stubCollections{
		saveFolder: func(f models.Folder) (models.Folder, error) {
			return f, nil
		},
	}
	router := newTestRouter(&stubSync{}, collections)

	rr := do(t, router, http.MethodPut, "/api/collections/c1/folders/f9", `{"id":"ignored","name":"users"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var got models.Folder
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "f9", got.ID)
	assert.Equal(t, "c1", got.CollectionID)
}

// ---------------------------------------------------------------------------
// Middleware and router behaviour
// ---------------------------------------------------------------------------

func TestVersion(t *testing.T) {
	rr := do(t, newTestRouter(&stubSync{}, &stubCollections{}), http.MethodGet, "/api/version", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"1.2.3","date":"2026-10-01","commit":"abc123"}`, rr.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(&stubSync{}, &stubCollections{})

	rr := do(t, router, http.MethodGet, "/api/collections/c1/push", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "POST", rr.Header().Get("Allow"))

	rr = do(t, router, http.MethodPatch, "/api/collections/c1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, PUT, DELETE", rr.Header().Get("Allow"))

	rr = do(t, router, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "reuses caller trace id", incoming: "my-custom-trace-id"},
		{name: "generates uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}

			var seen *http.Request
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = r
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			got := rr.Header().Get(traceIDHeader)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}

			require.NotNil(t, seen)
			traceID, ok := utils.GetTraceIDFromContext(seen.Context())
			assert.True(t, ok)
			assert.Equal(t, got, traceID)
		})
	}
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sync/pull", nil)
	req.Header.Set(traceIDHeader, "trace-1")
	rr := httptest.NewRecorder()
	h.withTraceID(h.withLogging(next)).ServeHTTP(rr, req)

	line := buf.String()
	for _, want := range []string{`"method":"POST"`, `"status":418`, `"size":5`, `"trace_id":"trace-1"`, `"uri":"/api/sync/pull"`} {
		assert.Contains(t, line, want)
	}
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrNotConfigured, http.StatusServiceUnavailable},
		{&service.ConflictError{CollectionID: "c1"}, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", store.ErrCollectionAlreadyExists), http.StatusConflict},
		{fmt.Errorf("%w: bad", service.ErrInvalidRequest), http.StatusBadRequest},
		{store.ErrScanningRow, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
