package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-req-sync/internal/config"
	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/service"
	"github.com/MKhiriev/go-req-sync/models"
)

// stubSync implements only what a test sets; other calls panic through the
// nil embedded interface.
type stubSync struct {
	service.SyncService

	status         func() ([]models.CollectionStatus, error)
	pull           func() (models.PullResult, error)
	pullCollection func(id string) (models.PullOutcome, error)
	push           func(id string, opts service.PushOptions) (models.PushResult, error)
	pushAll        func() (models.PushAllResult, error)
	pushRequest    func(id, requestID string) (models.PushRequestResult, error)
	keepLocal      func(id string) (models.PushResult, error)
	keepRemote     func(id string) error
	setEnabled     func(id string, enabled bool) error
	removeRemote   func(id string) error
	ping           func() (bool, error)
}

func (s *stubSync) Status(context.Context) ([]models.CollectionStatus, error) { return s.status() }
func (s *stubSync) Pull(context.Context) (models.PullResult, error)           { return s.pull() }
func (s *stubSync) PullCollection(_ context.Context, id string) (models.PullOutcome, error) {
	return s.pullCollection(id)
}
func (s *stubSync) PushCollection(_ context.Context, id string, opts service.PushOptions) (models.PushResult, error) {
	return s.push(id, opts)
}
func (s *stubSync) PushAll(context.Context) (models.PushAllResult, error) { return s.pushAll() }
func (s *stubSync) PushRequest(_ context.Context, id, requestID string, _ service.PushOptions) (models.PushRequestResult, error) {
	return s.pushRequest(id, requestID)
}
func (s *stubSync) ForceKeepLocal(_ context.Context, id string, _ service.PushOptions) (models.PushResult, error) {
	return s.keepLocal(id)
}
func (s *stubSync) ForceKeepRemote(_ context.Context, id string) error { return s.keepRemote(id) }
func (s *stubSync) SetSyncEnabled(_ context.Context, id string, enabled bool) error {
	return s.setEnabled(id, enabled)
}
func (s *stubSync) RemoveRemoteCollection(_ context.Context, id string) error {
	return s.removeRemote(id)
}
func (s *stubSync) TestConnection(context.Context) (bool, error) { return s.ping() }

type runResult struct {
	out    string
	errOut string
	err    error
	built  int
	closed int
}

func run(t *testing.T, sync *stubSync, args ...string) runResult {
	t.Helper()

	var res runResult
	build := func(_ context.Context, cfg *config.StructuredConfig, _ *logger.Logger) (*Runtime, error) {
		res.built++
		rt := &Runtime{
			Config:   cfg,
			Services: &service.Services{SyncService: sync},
			Logger:   logger.Nop(),
		}
		rt.closers = append(rt.closers, func(context.Context) error {
			res.closed++
			return nil
		})
		return rt, nil
	}

	root := newRootCmd(models.NewAppBuildInfo("v1.2.3", "2026-10-15", "abc123"), build)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(&bytes.Buffer{})
	root.SetArgs(append([]string{"--log-file", filepath.Join(t.TempDir(), "reqsync.log")}, args...))

	res.err = root.ExecuteContext(context.Background())
	res.out = out.String()
	res.errOut = errOut.String()
	return res
}

func TestVersion_SkipsRuntime(t *testing.T) {
	res := run(t, &stubSync{}, "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "v1.2.3")
	assert.Contains(t, res.out, "abc123")
	assert.Zero(t, res.built)
}

func TestStatus(t *testing.T) {
	sync := &stubSync{status: func() ([]models.CollectionStatus, error) {
		return []models.CollectionStatus{{ID: "c1", Name: "Payments", State: models.StateDirty, SyncEnabled: true}}, nil
	}}

	res := run(t, sync, "status")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Payments")
	assert.Contains(t, res.out, "dirty")
	assert.Equal(t, 1, res.built)
	assert.Equal(t, 1, res.closed)

	res = run(t, sync, "status", "--json")
	require.NoError(t, res.err)
	var rows []models.CollectionStatus
	require.NoError(t, json.Unmarshal([]byte(res.out), &rows))
	assert.Equal(t, "c1", rows[0].ID)
}

func TestPull(t *testing.T) {
	sync := &stubSync{
		pull: func() (models.PullResult, error) {
			return models.PullResult{
				Outcomes:  map[string]models.PullOutcome{"c1": models.PullImported, "c2": models.PullUnchanged},
				Conflicts: map[string][]string{"c3": {"c3/r1.yaml"}},
			}, nil
		},
		pullCollection: func(id string) (models.PullOutcome, error) {
			return "", &service.ConflictError{CollectionID: id, Paths: []string{id + "/r1.yaml"}}
		},
	}

	res := run(t, sync, "pull")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "c1: imported")
	assert.Contains(t, res.out, "c2: unchanged")
	assert.Contains(t, res.out, "c3: conflict in c3/r1.yaml")

	res = run(t, sync, "pull", "c9")
	assert.ErrorIs(t, res.err, service.ErrConflict)
	assert.Contains(t, res.errOut, "c9/r1.yaml")
	assert.Contains(t, res.errOut, "reqsync resolve c9")
}

func TestPush(t *testing.T) {
	var gotOpts service.PushOptions
	sync := &stubSync{push: func(id string, opts service.PushOptions) (models.PushResult, error) {
		gotOpts = opts
		if id == "missing" {
			return models.PushResult{}, service.ErrNotFound
		}
		return models.PushResult{
			CollectionID: id,
			CommitID:     "0123456789abcdef",
			Pushed:       []string{id + "/collection.yaml"},
			Deleted:      []string{id + "/old.yaml"},
			Skipped:      []string{},
		}, nil
	}}

	res := run(t, sync, "push", "c1", "--sanitize")
	require.NoError(t, res.err)
	assert.True(t, gotOpts.Sanitize)
	assert.Contains(t, res.out, "c1: 1 written, 1 deleted, 0 unchanged (commit 0123456789)")
	assert.Contains(t, res.out, "+ c1/collection.yaml")
	assert.Contains(t, res.out, "- c1/old.yaml")

	res = run(t, sync, "push", "missing")
	assert.ErrorIs(t, res.err, service.ErrNotFound)
	assert.Equal(t, 1, res.closed)

	res = run(t, sync, "push")
	assert.Error(t, res.err)
}

func TestPushAll(t *testing.T) {
	sync := &stubSync{pushAll: func() (models.PushAllResult, error) {
		return models.PushAllResult{
			Pushed:   map[string]models.PushResult{"c1": {CollectionID: "c1"}},
			Failures: map[string]string{"c2": "bad gateway"},
		}, nil
	}}

	res := run(t, sync, "push-all")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "c1: up to date")
	assert.Contains(t, res.out, "c2: failed: bad gateway")
}

func TestPushRequest(t *testing.T) {
	sync := &stubSync{pushRequest: func(id, requestID string) (models.PushRequestResult, error) {
		return models.PushRequestResult{CollectionID: id, Path: id + "/" + requestID + ".yaml", Deferred: requestID == "stale"}, nil
	}}

	res := run(t, sync, "push-request", "c1", "r1")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "c1/r1.yaml: pushed")

	res = run(t, sync, "push-request", "c1", "stale")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "marked for a full push")
}

func TestResolve(t *testing.T) {
	var local, remote []string
	sync := &stubSync{
		keepLocal: func(id string) (models.PushResult, error) {
			local = append(local, id)
			return models.PushResult{}, nil
		},
		keepRemote: func(id string) error {
			remote = append(remote, id)
			return nil
		},
	}

	res := run(t, sync, "resolve", "c1", "--keep", "local")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "c1: kept local")

	res = run(t, sync, "resolve", "c2", "--keep", "REMOTE")
	require.NoError(t, res.err)

	res = run(t, sync, "resolve", "c3", "--keep", "both")
	assert.ErrorIs(t, res.err, errInvalidKeep)

	res = run(t, sync, "resolve", "c4")
	assert.Error(t, res.err)

	assert.Equal(t, []string{"c1"}, local)
	assert.Equal(t, []string{"c2"}, remote)
}

func TestEnableDisableRemoveRemote(t *testing.T) {
	toggles := map[string]bool{}
	var removed []string
	sync := &stubSync{
		setEnabled: func(id string, enabled bool) error {
			toggles[id] = enabled
			return nil
		},
		removeRemote: func(id string) error {
			removed = append(removed, id)
			return nil
		},
	}

	require.NoError(t, run(t, sync, "enable", "c1").err)
	require.NoError(t, run(t, sync, "disable", "c2").err)
	res := run(t, sync, "remove-remote", "c3")
	require.NoError(t, res.err)

	assert.Equal(t, map[string]bool{"c1": true, "c2": false}, toggles)
	assert.Equal(t, []string{"c3"}, removed)
	assert.Contains(t, res.out, "c3: remote copy removed")
}

func TestPing(t *testing.T) {
	ok := true
	sync := &stubSync{ping: func() (bool, error) { return ok, nil }}

	res := run(t, sync, "ping")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "remote reachable")

	ok = false
	res = run(t, sync, "ping")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "unreachable")

	sync.ping = func() (bool, error) { return false, service.ErrNotConfigured }
	res = run(t, sync, "ping")
	assert.ErrorIs(t, res.err, service.ErrNotConfigured)
}

func TestBuildError(t *testing.T) {
	boom := errors.New("open store: disk full")
	root := newRootCmd(models.AppBuildInfo{}, func(context.Context, *config.StructuredConfig, *logger.Logger) (*Runtime, error) {
		return nil, boom
	})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--log-file", filepath.Join(t.TempDir(), "reqsync.log"), "status"})

	assert.ErrorIs(t, root.ExecuteContext(context.Background()), boom)
}

func TestRuntimeClose_JoinsErrors(t *testing.T) {
	var order []int
	e1, e2 := errors.New("first"), errors.New("second")
	rt := &Runtime{closers: []func(context.Context) error{
		func(context.Context) error { order = append(order, 1); return e1 },
		func(context.Context) error { order = append(order, 2); return e2 },
	}}

	err := rt.Close(context.Background())
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
	assert.Equal(t, []int{2, 1}, order)
}

func TestNewServer(t *testing.T) {
	cfg := config.Defaults()
	st := &state{rt: &Runtime{
		Config:   cfg,
		Services: &service.Services{SyncService: &stubSync{}},
		Logger:   logger.Nop(),
	}}

	srv, err := st.newServer()
	require.NoError(t, err)
	assert.NotNil(t, srv)

	cfg.Server.HTTPAddress = ""
	_, err = st.newServer()
	assert.Error(t, err)
}

func TestDaemonCmd_Flags(t *testing.T) {
	cmd := NewDaemonCmd(models.AppBuildInfo{})
	assert.Equal(t, "reqsyncd", cmd.Use)
	for _, name := range []string{"address", "dsn", "auto-push", "provider", "log-file"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "", cmd.PersistentFlags().Lookup("log-file").DefValue)
}
