// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks collection trees and control-API input before
// they reach the store.
//
// A [Validator] receives a Collection, Folder, Request or Environment (value
// or pointer) and optionally the names of the fields to check, so that a
// partial update such as a rename validates only what it touches.
package validators

import "context"

// Validator validates one entity. With no fields given every rule applies.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
