// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RemoteItemType distinguishes files from directories in a remote listing.
type RemoteItemType string

const (
	RemoteFile      RemoteItemType = "file"
	RemoteDirectory RemoteItemType = "directory"
)

// RemoteItem is one entry of a recursive remote listing.
type RemoteItem struct {
	Type      RemoteItemType `json:"type"`
	Path      string         `json:"path"`
	VersionID string         `json:"version_id"`
}

// FileContent is one file of a full remote tree fetch.
type FileContent struct {
	Path      string `json:"path"`
	Content   []byte `json:"content"`
	VersionID string `json:"version_id"`
	CommitID  string `json:"commit_id,omitempty"`
}

// VersionKind tells which identifier a host's update call expects.
type VersionKind int

const (
	// VersionBlob hosts expect the blob id of the file being replaced
	// (GitHub contents API "sha").
	VersionBlob VersionKind = iota
	// VersionCommit hosts expect the last commit id touching the file
	// (GitLab "last_commit_id").
	VersionCommit
)

func (k VersionKind) String() string {
	if k == VersionCommit {
		return "commit"
	}
	return "blob"
}

// VersionToken is the optimistic-lock token passed to an update call.
type VersionToken struct {
	Kind  VersionKind
	Value string
}

// IsZero reports whether the token carries no value.
func (t VersionToken) IsZero() bool {
	return t.Value == ""
}

// FileVersion is what a host reports back after a single-file write.
type FileVersion struct {
	VersionID string `json:"version_id"`
	CommitID  string `json:"commit_id,omitempty"`
}
