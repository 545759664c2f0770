package config

import "time"

// Defaults returns the baseline configuration every other source is merged
// on top of.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SyncRoot:     "collections",
			CommitAuthor: "go-req-sync",
		},
		Remote: Remote{
			Branch:         "main",
			RequestTimeout: 30 * time.Second,
			RetryCount:     3,
		},
		Storage: Storage{
			DB: DB{DSN: "reqsync.db"},
		},
		Server: Server{
			HTTPAddress:    "127.0.0.1:7410",
			RequestTimeout: 2 * time.Minute,
		},
		Workers: Workers{
			PushConcurrency: 4,
		},
		Tracing: Tracing{
			Exporter:   ExporterNone,
			SampleRate: 1,
		},
	}
}

// DefaultBaseURL returns the public API root of a provider.
func DefaultBaseURL(provider string) string {
	switch provider {
	case ProviderGitHub:
		return "https://api.github.com"
	case ProviderGitLab:
		return "https://gitlab.com/api/v4"
	}
	return ""
}
