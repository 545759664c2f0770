// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PushResult summarises a successful collection push.
type PushResult struct {
	CollectionID string   `json:"collection_id"`
	CommitID     string   `json:"commit_id,omitempty"`
	Pushed       []string `json:"pushed"`
	Deleted      []string `json:"deleted"`
	Skipped      []string `json:"skipped"`
}

// PushRequestResult summarises a granular single-request push.
type PushRequestResult struct {
	CollectionID string `json:"collection_id"`
	Path         string `json:"path"`
	VersionID    string `json:"version_id,omitempty"`

	// Deferred is true when the host rejected the write as stale and the
	// collection was marked dirty for a later full push.
	Deferred bool `json:"deferred"`
}

// PullOutcome is the per-collection result of a pull.
type PullOutcome string

const (
	PullImported  PullOutcome = "imported"
	PullUpdated   PullOutcome = "updated"
	PullUnchanged PullOutcome = "unchanged"
	PullSkipped   PullOutcome = "skipped"
)

// PullResult summarises a pull over every remote collection.
type PullResult struct {
	Outcomes  map[string]PullOutcome `json:"outcomes"`
	Conflicts map[string][]string    `json:"conflicts,omitempty"`
	Failures  map[string]string      `json:"failures,omitempty"`
}

// PushAllResult summarises a batch push.
type PushAllResult struct {
	Pushed    map[string]PushResult `json:"pushed"`
	Conflicts map[string][]string   `json:"conflicts,omitempty"`
	Failures  map[string]string     `json:"failures,omitempty"`
}

// SyncState is the conceptual per-collection state shown by the UI.
type SyncState string

const (
	StateDisabled    SyncState = "disabled"
	StateNeverSynced SyncState = "never_synced"
	StateSynced      SyncState = "synced"
	StateDirty       SyncState = "dirty"
)

// CollectionStatus is a read-only sync indicator row.
type CollectionStatus struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	SyncEnabled  bool       `json:"sync_enabled"`
	IsDirty      bool       `json:"is_dirty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	TrackedFiles int        `json:"tracked_files"`
	State        SyncState  `json:"state"`
}

// StatusOf derives the indicator row from a collection.
func StatusOf(c Collection) CollectionStatus {
	st := CollectionStatus{
		ID:           c.ID,
		Name:         c.Name,
		SyncEnabled:  c.Sync.Enabled,
		IsDirty:      c.Sync.IsDirty,
		LastSyncedAt: c.Sync.LastSyncedAt,
		TrackedFiles: len(c.Sync.FileState),
	}
	switch {
	case !c.Sync.Enabled:
		st.State = StateDisabled
	case c.Sync.LastSyncedAt == nil:
		st.State = StateNeverSynced
	case c.Sync.IsDirty:
		st.State = StateDirty
	default:
		st.State = StateSynced
	}
	return st
}
