// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package projection

import "github.com/MKhiriev/go-req-sync/models"

const (
	// MetadataFile is the root metadata file of a collection directory.
	MetadataFile = "collection.yaml"
	// FolderFile is the metadata file of a folder directory.
	FolderFile = "folder.yaml"
	// OrderFile is the ordering manifest present at every directory level.
	OrderFile = "_order.yaml"
	// FileExt is the extension of request files.
	FileExt = ".yaml"

	// MaxDepth is the deepest folder nesting accepted in either direction.
	// Top-level folders have depth 1.
	MaxDepth = 20
)

const (
	entryFolder  = "folder"
	entryRequest = "request"
)

type collectionRecord struct {
	ID               string            `yaml:"id"`
	Name             string            `yaml:"name"`
	Description      string            `yaml:"description,omitempty"`
	Variables        []models.KeyValue `yaml:"variables,omitempty"`
	EnvironmentIDs   []string          `yaml:"environment_ids,omitempty"`
	EnvironmentHints map[string]string `yaml:"environment_hints,omitempty"`
}

type folderRecord struct {
	ID               string            `yaml:"id"`
	Name             string            `yaml:"name"`
	EnvironmentIDs   []string          `yaml:"environment_ids,omitempty"`
	EnvironmentHints map[string]string `yaml:"environment_hints,omitempty"`
}

type requestRecord struct {
	ID               string            `yaml:"id"`
	Name             string            `yaml:"name"`
	Method           string            `yaml:"method"`
	URL              string            `yaml:"url"`
	Headers          []models.KeyValue `yaml:"headers,omitempty"`
	QueryParams      []models.KeyValue `yaml:"query_params,omitempty"`
	Body             string            `yaml:"body,omitempty"`
	BodyType         string            `yaml:"body_type,omitempty"`
	PreRequestScript string            `yaml:"pre_request_script,omitempty"`
	TestScript       string            `yaml:"test_script,omitempty"`
	Auth             *models.Auth      `yaml:"auth,omitempty"`
}

type orderEntry struct {
	Type string `yaml:"type"`
	ID   string `yaml:"id"`
}

type orderManifest struct {
	Items []orderEntry `yaml:"items"`
}

func newRequestRecord(r models.Request) requestRecord {
	return requestRecord{
		ID:               r.ID,
		Name:             r.Name,
		Method:           r.Method,
		URL:              r.URL,
		Headers:          r.Headers,
		QueryParams:      r.QueryParams,
		Body:             r.Body,
		BodyType:         r.BodyType,
		PreRequestScript: r.PreRequestScript,
		TestScript:       r.TestScript,
		Auth:             r.Auth,
	}
}

func (r requestRecord) toModel(collectionID, folderID string, order int) models.Request {
	return models.Request{
		ID:               r.ID,
		CollectionID:     collectionID,
		FolderID:         folderID,
		Name:             r.Name,
		Order:            order,
		Method:           r.Method,
		URL:              r.URL,
		Headers:          r.Headers,
		QueryParams:      r.QueryParams,
		Body:             r.Body,
		BodyType:         r.BodyType,
		PreRequestScript: r.PreRequestScript,
		TestScript:       r.TestScript,
		Auth:             r.Auth,
	}
}
