// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists collections, their folder/request trees, the
// per-collection sync state and environments in a SQL database (SQLite by
// default, PostgreSQL when the DSN is a postgres URL).
package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-req-sync/models"
)

// CollectionRepository stores collections together with their trees.
type CollectionRepository interface {
	// ListCollections returns every collection with metadata and sync state
	// but without folders and requests.
	ListCollections(ctx context.Context, filter CollectionFilter) ([]models.Collection, error)
	// GetCollection returns the full collection tree.
	GetCollection(ctx context.Context, id string) (models.Collection, error)
	CreateCollection(ctx context.Context, collection models.Collection) error
	// UpdateCollection updates name, description, variables and
	// environment associations.
	UpdateCollection(ctx context.Context, collection models.Collection) error
	DeleteCollection(ctx context.Context, id string) error
	// ReplaceCollectionTree atomically replaces the collection row, its
	// folders, its requests and its sync state. The collection is created
	// when it does not exist yet.
	ReplaceCollectionTree(ctx context.Context, collection models.Collection) error

	SaveFolder(ctx context.Context, folder models.Folder) error
	DeleteFolder(ctx context.Context, collectionID, folderID string) error
	SaveRequest(ctx context.Context, request models.Request) error
	DeleteRequest(ctx context.Context, collectionID, requestID string) error
}

// SyncStateRepository persists the per-collection sync metadata.
type SyncStateRepository interface {
	GetSyncState(ctx context.Context, collectionID string) (models.SyncMetadata, error)
	// SaveSyncState overwrites isDirty, remoteVersionId, lastSyncedAt and
	// fileState. The enabled flag is left untouched.
	SaveSyncState(ctx context.Context, collectionID string, state models.SyncMetadata) error
	// MarkDirty flags a sync-enabled collection as changed since the last
	// push. It is a no-op for collections with sync disabled.
	MarkDirty(ctx context.Context, collectionID string) error
	// SetSyncEnabled toggles sync. Enabling also marks the collection dirty.
	SetSyncEnabled(ctx context.Context, collectionID string, enabled bool) error
}

// EnvironmentRepository stores environments.
type EnvironmentRepository interface {
	ListEnvironments(ctx context.Context) ([]models.Environment, error)
	GetEnvironment(ctx context.Context, id string) (models.Environment, error)
	SaveEnvironment(ctx context.Context, environment models.Environment) error
	DeleteEnvironment(ctx context.Context, id string) error
}

// CollectionFilter narrows [CollectionRepository.ListCollections]. The zero
// value matches every collection.
type CollectionFilter struct {
	IDs             []string
	OnlySyncEnabled bool
	OnlyDirty       bool
}
