// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package projection

import (
	"path"
	"strings"

	"github.com/MKhiriev/go-req-sync/models"
)

// MetadataPath returns the projection path of a collection's root metadata
// file.
func MetadataPath(collectionID string) string {
	return path.Join(collectionID, MetadataFile)
}

// CollectionIDOf returns the collection id a projection path belongs to,
// i.e. its first segment.
func CollectionIDOf(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}

// IsMetadataPath reports whether p is the root metadata file of a collection
// directory (exactly "<id>/collection.yaml").
func IsMetadataPath(p string) bool {
	dir, file := path.Split(strings.TrimPrefix(p, "/"))
	return file == MetadataFile && dir != "" && strings.Count(dir, "/") == 1
}

// RequestPath returns the projection path of a request inside c. The path
// follows the request's position in the tree.
func RequestPath(c models.Collection, requestID string) (string, error) {
	for _, r := range c.Requests {
		if r.ID == requestID {
			return path.Join(c.ID, r.ID+FileExt), nil
		}
	}
	if chain, ok := findRequestChain(c.Folders, requestID, nil); ok {
		if len(chain) > MaxDepth {
			return "", ErrTreeTooDeep
		}
		segments := append([]string{c.ID}, chain...)
		segments = append(segments, requestID+FileExt)
		return path.Join(segments...), nil
	}
	return "", ErrRequestNotFound
}

func findRequestChain(folders []models.Folder, requestID string, chain []string) ([]string, bool) {
	for _, f := range folders {
		next := append(append([]string(nil), chain...), f.ID)
		for _, r := range f.Requests {
			if r.ID == requestID {
				return next, true
			}
		}
		if found, ok := findRequestChain(f.Folders, requestID, next); ok {
			return found, true
		}
	}
	return nil, false
}

// Rebase maps paths from one directory prefix to another. It is used to turn
// host paths ("<root>/<id>/...") into projection paths ("<id>/...") and back.
func Rebase(p, from, to string) string {
	rel := strings.TrimPrefix(p, "/")
	if from = strings.Trim(from, "/"); from != "" {
		rel = strings.TrimPrefix(rel, from+"/")
	}
	if to == "" {
		return rel
	}
	return path.Join(to, rel)
}
