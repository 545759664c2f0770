package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidRemoteConfigs indicates invalid hosting provider settings
	// (for example, an unknown provider or a negative retry count).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an empty or absolute sync root).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero push concurrency).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidTracingConfigs indicates an unknown exporter or a sample
	// rate outside 0..1.
	ErrInvalidTracingConfigs = errors.New("invalid tracing configuration")
)
