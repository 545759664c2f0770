// Package projection maps a collection tree to a flat set of versioned text
// files and back.
//
// Layout, relative to the sync root:
//
//	<collectionID>/collection.yaml        root metadata
//	<collectionID>/_order.yaml            ordering manifest of the root level
//	<collectionID>/<requestID>.yaml       one file per root request
//	<collectionID>/<folderID>/folder.yaml folder metadata
//	<collectionID>/<folderID>/_order.yaml folder ordering manifest
//	...                                   nested folders repeat the pattern
//
// Every node owns exactly one file, which makes per-path version comparison
// meaningful. Nesting is capped at [MaxDepth].
package projection
