// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package projection

import (
	"fmt"
	"path"
	"sort"

	"github.com/MKhiriev/go-req-sync/models"
)

// Options tune serialization.
type Options struct {
	// Sanitizer, when set, blanks sensitive values of every record.
	Sanitizer Sanitizer

	// Environments are used to write environment hints (external paths)
	// next to environment ids.
	Environments []models.Environment
}

// Serialize projects c to a flat map of projection path to file content.
// Output is byte-stable: serializing an unchanged collection twice yields
// identical content.
func Serialize(c models.Collection, opts Options) (map[string][]byte, error) {
	if c.ID == "" {
		return nil, ErrEmptyID
	}

	w := &writer{
		files:  make(map[string][]byte),
		opts:   opts,
		envIdx: indexEnvironments(opts.Environments),
	}

	root := sanitizeCollection(opts.Sanitizer, collectionRecord{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		Variables:        c.Variables,
		EnvironmentIDs:   c.EnvironmentIDs,
		EnvironmentHints: w.hints(c.EnvironmentIDs),
	})
	if err := w.put(path.Join(c.ID, MetadataFile), root); err != nil {
		return nil, err
	}
	if err := w.level(c.ID, c.Folders, c.Requests, 0); err != nil {
		return nil, err
	}
	return w.files, nil
}

// SerializeRequest projects a single request of c. The returned content is
// identical to what [Serialize] writes for the same path.
func SerializeRequest(c models.Collection, requestID string, opts Options) (string, []byte, error) {
	p, err := RequestPath(c, requestID)
	if err != nil {
		return "", nil, err
	}
	r, _ := c.FindRequest(requestID)

	content, err := encode(sanitizeRequest(opts.Sanitizer, newRequestRecord(*r)))
	if err != nil {
		return "", nil, err
	}
	return p, content, nil
}

type writer struct {
	files  map[string][]byte
	opts   Options
	envIdx map[string]models.Environment
}

func (w *writer) put(p string, v any) error {
	content, err := encode(v)
	if err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}
	w.files[p] = content
	return nil
}

// level writes the manifest, request files and folder subtrees of one
// directory. depth is the nesting depth of dir (0 for the collection root).
func (w *writer) level(dir string, folders []models.Folder, requests []models.Request, depth int) error {
	manifest := orderManifest{Items: orderedEntries(folders, requests)}
	if err := w.put(path.Join(dir, OrderFile), manifest); err != nil {
		return err
	}

	for _, r := range requests {
		if r.ID == "" {
			return ErrEmptyID
		}
		rec := sanitizeRequest(w.opts.Sanitizer, newRequestRecord(r))
		if err := w.put(path.Join(dir, r.ID+FileExt), rec); err != nil {
			return err
		}
	}

	for _, f := range folders {
		if f.ID == "" {
			return ErrEmptyID
		}
		if depth+1 > MaxDepth {
			return fmt.Errorf("%w: folder %s", ErrTreeTooDeep, f.ID)
		}
		sub := path.Join(dir, f.ID)
		rec := folderRecord{
			ID:               f.ID,
			Name:             f.Name,
			EnvironmentIDs:   f.EnvironmentIDs,
			EnvironmentHints: w.hints(f.EnvironmentIDs),
		}
		if err := w.put(path.Join(sub, FolderFile), rec); err != nil {
			return err
		}
		if err := w.level(sub, f.Folders, f.Requests, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) hints(envIDs []string) map[string]string {
	var out map[string]string
	for _, id := range envIDs {
		env, ok := w.envIdx[id]
		if !ok || env.ExternalPath == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[id] = env.ExternalPath
	}
	return out
}

// orderedEntries merges folders and requests into one sequence sorted by
// their Order value. Ties keep folders before requests, then input order.
func orderedEntries(folders []models.Folder, requests []models.Request) []orderEntry {
	type ranked struct {
		entry orderEntry
		order int
	}
	all := make([]ranked, 0, len(folders)+len(requests))
	for _, f := range folders {
		all = append(all, ranked{entry: orderEntry{Type: entryFolder, ID: f.ID}, order: f.Order})
	}
	for _, r := range requests {
		all = append(all, ranked{entry: orderEntry{Type: entryRequest, ID: r.ID}, order: r.Order})
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].order < all[j].order
	})

	out := make([]orderEntry, len(all))
	for i, r := range all {
		out[i] = r.entry
	}
	return out
}

func indexEnvironments(envs []models.Environment) map[string]models.Environment {
	idx := make(map[string]models.Environment, len(envs))
	for _, e := range envs {
		idx[e.ID] = e
	}
	return idx
}
