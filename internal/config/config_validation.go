// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// An empty remote provider is accepted: sync operations then fail with a
// configuration error instead of the process refusing to start.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") {
		return ErrInvalidStorageConfigs
	}

	root := strings.Trim(cfg.App.SyncRoot, "/")
	if root == "" || strings.Contains(root, "..") {
		return fmt.Errorf("%w: sync root %q", ErrInvalidAppConfigs, cfg.App.SyncRoot)
	}
	cfg.App.SyncRoot = root

	switch cfg.Remote.Provider {
	case "", ProviderGitHub, ProviderGitLab:
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidRemoteConfigs, cfg.Remote.Provider)
	}
	if cfg.Remote.RetryCount < 0 || cfg.Remote.RequestTimeout < 0 {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Workers.PushConcurrency < 1 || cfg.Workers.AutoPushInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	switch cfg.Tracing.Exporter {
	case "", ExporterNone, ExporterStdout, ExporterOTLP:
	default:
		return fmt.Errorf("%w: unknown exporter %q", ErrInvalidTracingConfigs, cfg.Tracing.Exporter)
	}
	if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
		return ErrInvalidTracingConfigs
	}

	return nil
}
