// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-req-sync/internal/adapter"
	"github.com/MKhiriev/go-req-sync/internal/config"
	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/projection"
	"github.com/MKhiriev/go-req-sync/internal/service"
	"github.com/MKhiriev/go-req-sync/internal/store"
	"github.com/MKhiriev/go-req-sync/internal/tracing"
)

// Runtime is everything a command needs once configuration is loaded.
type Runtime struct {
	Config   *config.StructuredConfig
	Services *service.Services
	Logger   *logger.Logger

	closers []func(context.Context) error
}

// Close releases the store connection and flushes pending spans.
func (r *Runtime) Close(ctx context.Context) error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Builder creates a Runtime from the loaded configuration.
type Builder func(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*Runtime, error)

// Build opens and migrates the store, selects the remote host and wires the
// services. A missing remote configuration is not an error: sync commands
// then fail with a not-configured error.
func Build(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Logger: log}

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.closers = append(rt.closers, func(context.Context) error { return db.Close() })

	if err = db.Migrate(); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	var host adapter.RemoteHost
	if cfg.Remote.IsConfigured() {
		host, err = adapter.NewRemoteHost(cfg.Remote, log)
		if err != nil {
			_ = rt.Close(ctx)
			return nil, fmt.Errorf("remote host: %w", err)
		}
	} else {
		log.Debug().Msg("remote is not configured, sync commands are disabled")
	}

	tracer, err := tracing.New(ctx, tracing.ConfigFrom(cfg.Tracing, cfg.App))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("tracing: %w", err)
	}
	rt.closers = append(rt.closers, tracer.Shutdown)

	sanitizer, err := projection.NewKeySanitizer(cfg.Sanitize.ExtraPatterns...)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("sanitizer: %w", err)
	}

	rt.Services = service.NewServices(
		host,
		store.NewRepositories(db, log),
		service.SyncConfigFrom(*cfg, sanitizer),
		tracer,
		log,
	)
	return rt, nil
}
