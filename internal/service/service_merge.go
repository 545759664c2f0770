// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sort"

	"github.com/MKhiriev/go-req-sync/internal/utils"
	"github.com/MKhiriev/go-req-sync/models"
)

// mergeService is the concrete implementation of MergeService.
// It is a pure in-memory three-way comparison; no storage or network
// access is involved.
type mergeService struct{}

// NewMergeService constructs a MergeService ready for use.
func NewMergeService() MergeService {
	return &mergeService{}
}

// Classify implements MergeService.
//
// Pass 1 walks the local files:
//
//   - local changed: no base entry, or the base content hash differs;
//   - remote changed: the base recorded a remote version and the listing
//     reports another one (or none);
//   - both changed is a conflict, local only is a push, anything else is a
//     skip.
//
// Pass 2 walks the remote listing for paths that no longer exist locally.
// They are deleted, unless the remote copy moved away from a recorded base
// version, which makes them conflicts as well.
func (m *mergeService) Classify(
	ctx context.Context,
	base models.FileStates,
	local map[string][]byte,
	remote map[string]string,
) (models.MergePlan, error) {
	var plan models.MergePlan

	// ── Pass 1: local files ─────────────────────────────────────────────────
	for _, p := range sortedKeys(local) {
		if err := ctx.Err(); err != nil {
			return models.MergePlan{}, err
		}

		state, known := base[p]
		localChanged := !known || state.ContentHash != utils.ContentHash(local[p])
		remoteChanged := known && state.RemoteVersionID != "" && remote[p] != state.RemoteVersionID

		switch {
		case localChanged && remoteChanged:
			plan.Conflicts = append(plan.Conflicts, p)
		case localChanged:
			plan.Push = append(plan.Push, p)
		default:
			// remote only, or nothing: the remote copy is accepted
			plan.Skip = append(plan.Skip, p)
		}
	}

	// ── Pass 2: remote files gone locally ───────────────────────────────────
	for _, p := range sortedKeys(remote) {
		if err := ctx.Err(); err != nil {
			return models.MergePlan{}, err
		}
		if _, stillLocal := local[p]; stillLocal {
			continue
		}

		state, known := base[p]
		if known && state.RemoteVersionID != "" && remote[p] != state.RemoteVersionID {
			// deleted here, edited there
			plan.Conflicts = append(plan.Conflicts, p)
			continue
		}
		plan.Delete = append(plan.Delete, p)
	}

	sort.Strings(plan.Conflicts)
	return plan, nil
}

// RemoteChanged implements MergeService. Base entries without a recorded
// remote version are never reported, as in Classify.
func (m *mergeService) RemoteChanged(base models.FileStates, remote map[string]string) []string {
	changed := make([]string, 0)

	for p, version := range remote {
		state, known := base[p]
		if known && state.RemoteVersionID == "" {
			continue
		}
		if !known || state.RemoteVersionID != version {
			changed = append(changed, p)
		}
	}
	for p, state := range base {
		if state.RemoteVersionID == "" {
			continue
		}
		if _, ok := remote[p]; !ok {
			changed = append(changed, p)
		}
	}

	sort.Strings(changed)
	return changed
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
