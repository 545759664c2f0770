// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// FileAction is the merge classification of a single path.
type FileAction int

const (
	// ActionSkip means the remote copy is accepted as is.
	ActionSkip FileAction = iota
	// ActionPush means only the local side changed.
	ActionPush
	// ActionDelete means the path is gone locally and must be removed remotely.
	ActionDelete
	// ActionConflict means both sides changed.
	ActionConflict
)

func (a FileAction) String() string {
	switch a {
	case ActionPush:
		return "push"
	case ActionDelete:
		return "delete"
	case ActionConflict:
		return "conflict"
	default:
		return "skip"
	}
}

// MergePlan is the output of a three-way merge. All slices are sorted.
type MergePlan struct {
	Push      []string `json:"push"`
	Skip      []string `json:"skip"`
	Delete    []string `json:"delete"`
	Conflicts []string `json:"conflicts"`
}

// HasConflicts reports whether the plan must be rejected.
func (p MergePlan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// IsNoop reports whether applying the plan writes nothing remotely.
func (p MergePlan) IsNoop() bool {
	return len(p.Push) == 0 && len(p.Delete) == 0
}
