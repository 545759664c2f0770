// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package projection

import "errors"

var (
	ErrTreeTooDeep          = errors.New("folder nesting exceeds the maximum depth")
	ErrEmptyID              = errors.New("entity id is empty")
	ErrMetadataNotFound     = errors.New("collection metadata file not found")
	ErrMultipleMetadata     = errors.New("more than one collection metadata file found")
	ErrMalformedFile        = errors.New("malformed projection file")
	ErrRequestNotFound      = errors.New("request not found in collection")
	ErrCollectionIDMismatch = errors.New("remote collection id does not match local collection")
)
