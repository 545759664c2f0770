// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package projection

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/MKhiriev/go-req-sync/models"
)

// Deserialize rebuilds a collection tree from projection files.
//
// Keys may share any common prefix: the collection directory is located by
// the root metadata file suffix. Children are imported in manifest order and
// receive sequential Order values; manifest entries pointing at missing files
// are skipped, files the manifest does not mention are appended after the
// listed ones.
//
// When existing is non-nil its identity and sync metadata are kept and every
// other field is replaced by remote content. Environment associations are
// revalidated against envs.
func Deserialize(files map[string][]byte, existing *models.Collection, envs []models.Environment) (models.Collection, error) {
	metaPath, err := findMetadata(files)
	if err != nil {
		return models.Collection{}, err
	}

	var rec collectionRecord
	if err = decode(metaPath, files[metaPath], &rec); err != nil {
		return models.Collection{}, err
	}

	base := path.Dir(metaPath)
	if rec.ID == "" {
		rec.ID = path.Base(base)
	}

	var out models.Collection
	if existing != nil {
		if existing.ID != rec.ID {
			return models.Collection{}, fmt.Errorf("%w: local %s, remote %s", ErrCollectionIDMismatch, existing.ID, rec.ID)
		}
		out.Sync = existing.Sync
		out.CreatedAt = existing.CreatedAt
	}

	res := newEnvResolver(envs)
	out.ID = rec.ID
	out.Name = rec.Name
	out.Description = rec.Description
	out.Variables = rec.Variables
	out.EnvironmentIDs = res.resolve(rec.EnvironmentIDs, rec.EnvironmentHints)

	r := &reader{
		files:        files,
		listing:      indexDirectories(files, base),
		res:          res,
		collectionID: out.ID,
	}
	out.Folders, out.Requests, err = r.level(base, "", 0)
	if err != nil {
		return models.Collection{}, err
	}
	return out, nil
}

func findMetadata(files map[string][]byte) (string, error) {
	found := ""
	for p := range files {
		if path.Base(p) != MetadataFile {
			continue
		}
		if found != "" {
			return "", ErrMultipleMetadata
		}
		found = p
	}
	if found == "" {
		return "", ErrMetadataNotFound
	}
	return found, nil
}

// dirListing holds the request file ids and folder ids found directly in
// one directory, both sorted.
type dirListing struct {
	requests []string
	folders  []string
}

func indexDirectories(files map[string][]byte, base string) map[string]*dirListing {
	idx := make(map[string]*dirListing)
	get := func(dir string) *dirListing {
		l, ok := idx[dir]
		if !ok {
			l = &dirListing{}
			idx[dir] = l
		}
		return l
	}

	for p := range files {
		if !strings.HasPrefix(p, base+"/") {
			continue
		}
		dir, name := path.Split(p)
		dir = strings.TrimSuffix(dir, "/")
		switch {
		case name == FolderFile:
			if dir != base {
				parent := path.Dir(dir)
				get(parent).folders = append(get(parent).folders, path.Base(dir))
			}
		case name == MetadataFile, name == OrderFile:
		case strings.HasSuffix(name, FileExt):
			get(dir).requests = append(get(dir).requests, strings.TrimSuffix(name, FileExt))
		}
	}

	for _, l := range idx {
		sort.Strings(l.requests)
		sort.Strings(l.folders)
	}
	return idx
}

type reader struct {
	files        map[string][]byte
	listing      map[string]*dirListing
	res          *envResolver
	collectionID string
}

func (r *reader) level(dir, parentID string, depth int) ([]models.Folder, []models.Request, error) {
	listing := r.listing[dir]
	if listing == nil {
		listing = &dirListing{}
	}

	entries, err := r.sequence(dir, listing)
	if err != nil {
		return nil, nil, err
	}

	var (
		folders  []models.Folder
		requests []models.Request
	)
	for order, e := range entries {
		switch e.Type {
		case entryRequest:
			p := path.Join(dir, e.ID+FileExt)
			var rec requestRecord
			if err = decode(p, r.files[p], &rec); err != nil {
				return nil, nil, err
			}
			rec.ID = e.ID
			requests = append(requests, rec.toModel(r.collectionID, parentID, order))
		case entryFolder:
			if depth+1 > MaxDepth {
				return nil, nil, fmt.Errorf("%w: folder %s", ErrTreeTooDeep, e.ID)
			}
			sub := path.Join(dir, e.ID)
			p := path.Join(sub, FolderFile)
			var rec folderRecord
			if err = decode(p, r.files[p], &rec); err != nil {
				return nil, nil, err
			}
			f := models.Folder{
				ID:             e.ID,
				CollectionID:   r.collectionID,
				ParentID:       parentID,
				Name:           rec.Name,
				Order:          order,
				EnvironmentIDs: r.res.resolve(rec.EnvironmentIDs, rec.EnvironmentHints),
			}
			f.Folders, f.Requests, err = r.level(sub, f.ID, depth+1)
			if err != nil {
				return nil, nil, err
			}
			folders = append(folders, f)
		}
	}
	return folders, requests, nil
}

// sequence returns the children of dir in import order: manifest entries that
// resolve to an existing file first, then unlisted folders and requests.
func (r *reader) sequence(dir string, listing *dirListing) ([]orderEntry, error) {
	present := make(map[orderEntry]bool, len(listing.folders)+len(listing.requests))
	for _, id := range listing.folders {
		present[orderEntry{Type: entryFolder, ID: id}] = true
	}
	for _, id := range listing.requests {
		present[orderEntry{Type: entryRequest, ID: id}] = true
	}

	var manifest orderManifest
	if content, ok := r.files[path.Join(dir, OrderFile)]; ok {
		if err := decode(path.Join(dir, OrderFile), content, &manifest); err != nil {
			return nil, err
		}
	}

	out := make([]orderEntry, 0, len(present))
	seen := make(map[orderEntry]bool, len(present))
	for _, e := range manifest.Items {
		if !present[e] || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	for _, id := range listing.folders {
		if e := (orderEntry{Type: entryFolder, ID: id}); !seen[e] {
			out = append(out, e)
		}
	}
	for _, id := range listing.requests {
		if e := (orderEntry{Type: entryRequest, ID: id}); !seen[e] {
			out = append(out, e)
		}
	}
	return out, nil
}

// envResolver re-links environment associations to local environments, by
// id first and by external path hint second.
type envResolver struct {
	byID   map[string]bool
	byPath map[string]string
}

func newEnvResolver(envs []models.Environment) *envResolver {
	r := &envResolver{
		byID:   make(map[string]bool, len(envs)),
		byPath: make(map[string]string, len(envs)),
	}
	for _, e := range envs {
		r.byID[e.ID] = true
		if e.ExternalPath != "" {
			r.byPath[e.ExternalPath] = e.ID
		}
	}
	return r
}

func (r *envResolver) resolve(ids []string, hints map[string]string) []string {
	var out []string
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		resolved := ""
		switch {
		case r.byID[id]:
			resolved = id
		case hints[id] != "":
			resolved = r.byPath[hints[id]]
		}
		if resolved == "" || seen[resolved] {
			continue
		}
		seen[resolved] = true
		out = append(out, resolved)
	}
	return out
}
