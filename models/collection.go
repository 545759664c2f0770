// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Collection is the root synchronization unit. It owns a tree of folders and
// requests plus the sync metadata that tracks what was last exchanged with
// the remote repository.
type Collection struct {
	// ID is chosen client-side (uuid) so that local and remote ids agree.
	ID string `json:"id"`

	// Name is the human-readable display name of the collection.
	Name string `json:"name"`

	// Description is an optional free-form text.
	Description string `json:"description,omitempty"`

	// Variables are collection-scoped key/value pairs.
	Variables []KeyValue `json:"variables,omitempty"`

	// EnvironmentIDs associates local environments with the collection.
	EnvironmentIDs []string `json:"environment_ids,omitempty"`

	// Folders are the top-level folders, ordered by Order.
	Folders []Folder `json:"folders,omitempty"`

	// Requests are the requests placed directly under the collection root.
	Requests []Request `json:"requests,omitempty"`

	// Sync holds the persisted sync state of the collection.
	Sync SyncMetadata `json:"sync"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Folder is a nested container under a Collection or another Folder.
type Folder struct {
	ID           string `json:"id"`
	CollectionID string `json:"collection_id"`

	// ParentID is empty for top-level folders.
	ParentID string `json:"parent_id,omitempty"`

	Name string `json:"name"`

	// Order is the position of the folder among its siblings (folders and
	// requests share one ordering sequence per parent).
	Order int `json:"order"`

	EnvironmentIDs []string `json:"environment_ids,omitempty"`

	Folders  []Folder  `json:"folders,omitempty"`
	Requests []Request `json:"requests,omitempty"`
}

// Request is a leaf node; it is projected to exactly one file.
type Request struct {
	ID           string `json:"id"`
	CollectionID string `json:"collection_id"`

	// FolderID is empty for requests placed at the collection root.
	FolderID string `json:"folder_id,omitempty"`

	Name  string `json:"name"`
	Order int    `json:"order"`

	Method      string     `json:"method"`
	URL         string     `json:"url"`
	Headers     []KeyValue `json:"headers,omitempty"`
	QueryParams []KeyValue `json:"query_params,omitempty"`
	Body        string     `json:"body,omitempty"`
	BodyType    string     `json:"body_type,omitempty"`

	PreRequestScript string `json:"pre_request_script,omitempty"`
	TestScript       string `json:"test_script,omitempty"`

	Auth *Auth `json:"auth,omitempty"`
}

// KeyValue is a generic enabled/disabled pair used for variables, headers
// and query parameters.
type KeyValue struct {
	Key      string `json:"key" yaml:"key"`
	Value    string `json:"value" yaml:"value"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Auth describes a request authorization block, e.g. bearer or basic.
type Auth struct {
	Type   string     `json:"type" yaml:"type"`
	Params []KeyValue `json:"params,omitempty" yaml:"params,omitempty"`
}

// FindRequest looks up a request anywhere in the collection tree.
func (c *Collection) FindRequest(requestID string) (*Request, bool) {
	for i := range c.Requests {
		if c.Requests[i].ID == requestID {
			return &c.Requests[i], true
		}
	}
	for i := range c.Folders {
		if r, ok := c.Folders[i].findRequest(requestID); ok {
			return r, true
		}
	}
	return nil, false
}

// FolderPath returns the chain of folder ids from the collection root down
// to folderID (inclusive). ok is false if the folder does not exist.
func (c *Collection) FolderPath(folderID string) ([]string, bool) {
	for i := range c.Folders {
		if chain, ok := c.Folders[i].pathTo(folderID); ok {
			return chain, true
		}
	}
	return nil, false
}

func (f *Folder) findRequest(requestID string) (*Request, bool) {
	for i := range f.Requests {
		if f.Requests[i].ID == requestID {
			return &f.Requests[i], true
		}
	}
	for i := range f.Folders {
		if r, ok := f.Folders[i].findRequest(requestID); ok {
			return r, true
		}
	}
	return nil, false
}

func (f *Folder) pathTo(folderID string) ([]string, bool) {
	if f.ID == folderID {
		return []string{f.ID}, true
	}
	for i := range f.Folders {
		if chain, ok := f.Folders[i].pathTo(folderID); ok {
			return append([]string{f.ID}, chain...), true
		}
	}
	return nil, false
}
