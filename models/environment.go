// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Environment is a named set of variables that collections and folders can
// be associated with.
type Environment struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// ExternalPath is a stable identifier of the environment that survives
	// local re-creation (e.g. the vault path it was imported from). It is
	// written next to environment ids as a re-link hint.
	ExternalPath string `json:"external_path,omitempty"`

	Variables []KeyValue `json:"variables,omitempty"`
}
