package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_DefaultsOnly(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "collections", cfg.App.SyncRoot)
	assert.Equal(t, "main", cfg.Remote.Branch)
	assert.Equal(t, 4, cfg.Workers.PushConcurrency)
	assert.False(t, cfg.Remote.IsConfigured())
}

func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	_, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{Remote: Remote{Provider: ProviderGitHub, Branch: "dev"}},
		&StructuredConfig{Remote: Remote{Branch: "release"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Remote.Branch)
	assert.Equal(t, ProviderGitHub, cfg.Remote.Provider)
	assert.Equal(t, "https://api.github.com", cfg.Remote.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Remote.RequestTimeout)
}

func TestWithJSON_LoadsFileNamedByEarlierSource(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"remote":  map[string]any{"provider": "gitlab", "repository": "42", "token": "glpat", "request_timeout": "5s"},
		"workers": map[string]any{"auto_push_interval": "1m", "push_concurrency": 2},
	})

	b := newConfigBuilder().withDefaults().withFlags(&StructuredConfig{JSONFilePath: path}).withJSON()
	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, ProviderGitLab, cfg.Remote.Provider)
	assert.Equal(t, "https://gitlab.com/api/v4", cfg.Remote.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Workers.AutoPushInterval)
	assert.Equal(t, 2, cfg.Workers.PushConcurrency)
	assert.True(t, cfg.Remote.IsConfigured())
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder().withFlags(&StructuredConfig{JSONFilePath: filepath.Join(t.TempDir(), "nope.json")}).withJSON()
	_, err := b.build()
	assert.Error(t, err)
}

func TestWithEnv(t *testing.T) {
	t.Setenv("REMOTE_PROVIDER", "github")
	t.Setenv("REMOTE_OWNER", "acme")
	t.Setenv("REMOTE_REPOSITORY", "api-collections")
	t.Setenv("REMOTE_TOKEN", "ghp_x")
	t.Setenv("APP_SYNC_ROOT", "/team/collections/")
	t.Setenv("SANITIZE_EXTRA_PATTERNS", "x-tenant,signature")

	cfg, err := newConfigBuilder().withDefaults().withEnv().build()
	require.NoError(t, err)

	assert.Equal(t, "team/collections", cfg.App.SyncRoot)
	assert.Equal(t, []string{"x-tenant", "signature"}, cfg.Sanitize.ExtraPatterns)
	assert.True(t, cfg.Remote.IsConfigured())
}

// ── validation ────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *StructuredConfig)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(c *StructuredConfig) {}},
		{name: "in-memory dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = ":memory:" }, wantErr: ErrInvalidStorageConfigs},
		{name: "unknown provider", mutate: func(c *StructuredConfig) { c.Remote.Provider = "bitbucket" }, wantErr: ErrInvalidRemoteConfigs},
		{name: "negative retries", mutate: func(c *StructuredConfig) { c.Remote.RetryCount = -1 }, wantErr: ErrInvalidRemoteConfigs},
		{name: "escaping root", mutate: func(c *StructuredConfig) { c.App.SyncRoot = "../x" }, wantErr: ErrInvalidAppConfigs},
		{name: "zero concurrency", mutate: func(c *StructuredConfig) { c.Workers.PushConcurrency = 0 }, wantErr: ErrInvalidWorkerConfigs},
		{name: "unknown exporter", mutate: func(c *StructuredConfig) { c.Tracing.Exporter = "jaeger" }, wantErr: ErrInvalidTracingConfigs},
		{name: "sample rate above one", mutate: func(c *StructuredConfig) { c.Tracing.SampleRate = 2 }, wantErr: ErrInvalidTracingConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRemote_IsConfigured(t *testing.T) {
	assert.False(t, Remote{}.IsConfigured())
	assert.False(t, Remote{Provider: ProviderGitHub, Repository: "r", Token: "t"}.IsConfigured(), "github needs owner")
	assert.True(t, Remote{Provider: ProviderGitHub, Owner: "o", Repository: "r", Token: "t"}.IsConfigured())
	assert.True(t, Remote{Provider: ProviderGitHub, Owner: "o", Repository: "r", AppID: "1", InstallationID: "2", PrivateKeyPath: "k.pem"}.IsConfigured())
	assert.False(t, Remote{Provider: ProviderGitLab, Repository: "1", AppID: "1", InstallationID: "2", PrivateKeyPath: "k.pem"}.IsConfigured())
}

// ── flags ─────────────────────────────────────────────────────────────────────

func TestBindFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)

	require.NoError(t, fs.Parse([]string{
		"-a", "127.0.0.1:9000",
		"--provider", "github",
		"--repo", "collections",
		"--request-timeout", "10s",
		"--trace", "stdout",
	}))

	cfg := flags.Config()
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, ProviderGitHub, cfg.Remote.Provider)
	assert.Equal(t, "collections", cfg.Remote.Repository)
	assert.Equal(t, 10*time.Second, cfg.Remote.RequestTimeout)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "localhost:8080"},
		{in: "10.0.0.1:1"},
		{in: "localhost", wantErr: true},
		{in: "host:80", wantErr: true},
		{in: "127.0.0.1:0", wantErr: true},
		{in: "127.0.0.1:port", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, a.String())
		})
	}
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	require.NoError(t, json.Unmarshal([]byte(`1000`), &d))
	assert.Equal(t, time.Microsecond, time.Duration(d))

	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
}
