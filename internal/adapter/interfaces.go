// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the Remote Host abstraction over Git hosting
// providers.
//
// The primary abstraction is [RemoteHost], which decouples the sync service
// from provider specifics. The package ships two REST implementations over
// resty: GitHub ([NewGitHubHost]) and GitLab ([NewGitLabHost]), selected by
// [NewRemoteHost].
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for provider-agnostic error
// handling (e.g. [ErrVersionConflict] for a stale optimistic-lock token,
// [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-req-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_host_mock.go -package=mock

// RemoteHost defines provider-agnostic access to one branch of one
// repository. All paths are repository paths without a leading slash.
// Implementations map transport-level errors to the sentinel values defined
// in this package.
type RemoteHost interface {
	// TestConnection reports whether the repository is reachable with the
	// configured credentials. Authentication and not-found responses yield
	// false with a nil error; transport failures yield an error.
	TestConnection(ctx context.Context) (bool, error)

	// ListDirectoryRecursive returns every file and directory below path,
	// each with its version id. A missing path yields an empty listing.
	ListDirectoryRecursive(ctx context.Context, path string) ([]models.RemoteItem, error)

	// GetDirectoryTree is like ListDirectoryRecursive but returns the full
	// content of every file.
	GetDirectoryTree(ctx context.Context, path string) ([]models.FileContent, error)

	// GetFile returns one file, or nil when it does not exist.
	GetFile(ctx context.Context, path string) (*models.FileContent, error)

	// CreateFile writes a new file. It fails with [ErrVersionConflict] if
	// the file already exists.
	CreateFile(ctx context.Context, path string, content []byte, message string) (models.FileVersion, error)

	// UpdateFile replaces an existing file. token must be of the kind
	// returned by VersionKind; a stale token fails with [ErrVersionConflict].
	UpdateFile(ctx context.Context, path string, content []byte, token models.VersionToken, message string) (models.FileVersion, error)

	// CommitMultipleFiles writes files and removes deletePaths in exactly one
	// revision, or changes nothing. It returns the new commit id.
	CommitMultipleFiles(ctx context.Context, files map[string][]byte, message string, deletePaths []string) (string, error)

	// DeleteDirectory removes every file below path in one revision. A
	// missing directory fails with [ErrNotFound].
	DeleteDirectory(ctx context.Context, path, message string) error

	// VersionKind declares which identifier UpdateFile expects.
	VersionKind() models.VersionKind
}
