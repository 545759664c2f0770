// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// SyncMetadata is the persisted per-collection sync record.
type SyncMetadata struct {
	// Enabled reports whether the collection takes part in remote sync.
	Enabled bool `json:"sync_enabled"`

	// IsDirty is set whenever local content changes after the last
	// successful push.
	IsDirty bool `json:"is_dirty"`

	// RemoteVersionID is the last known version id of the root metadata file.
	RemoteVersionID string `json:"remote_version_id,omitempty"`

	// LastSyncedAt is nil until the first successful push or pull.
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`

	// FileState maps a projection path to the last known triad.
	FileState FileStates `json:"file_state,omitempty"`
}

// FileState is the last-known version triad of one synchronized file.
type FileState struct {
	// ContentHash is the hash of the content last pushed or pulled. Empty
	// only for legacy records.
	ContentHash string `json:"content_hash,omitempty"`

	// RemoteVersionID is the blob id reported by the host.
	RemoteVersionID string `json:"remote_version_id,omitempty"`

	// CommitID is recorded only for hosts whose update API expects it.
	CommitID string `json:"commit_id,omitempty"`
}

// Token returns the version token an update of this file must carry for a
// host expecting kind. The token is zero when the state lacks that kind.
func (s FileState) Token(kind VersionKind) VersionToken {
	if kind == VersionCommit {
		if s.CommitID == "" {
			return VersionToken{}
		}
		return VersionToken{Kind: VersionCommit, Value: s.CommitID}
	}
	if s.RemoteVersionID == "" {
		return VersionToken{}
	}
	return VersionToken{Kind: VersionBlob, Value: s.RemoteVersionID}
}

// FileStates maps projection paths to their triads. It is stored as a JSON
// document column.
type FileStates map[string]FileState

// Clone returns an independent copy.
func (f FileStates) Clone() FileStates {
	if f == nil {
		return nil
	}
	out := make(FileStates, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Value implements [driver.Valuer].
func (f FileStates) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements [sql.Scanner].
func (f *FileStates) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*f = FileStates{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return errors.New("unsupported file state column type")
	}
	if len(raw) == 0 {
		*f = FileStates{}
		return nil
	}
	out := FileStates{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*f = out
	return nil
}
