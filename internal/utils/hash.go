// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strconv"
	"sync"
)

// contentHasherPool is a package-level pool of reusable SHA-256 instances
// used by ContentHash on hot paths (every file of every collection is
// hashed on each push).
var contentHasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// ContentHash computes the hex-encoded SHA-256 digest of data.
//
// The digest is used purely for local change detection: it is compared with
// the hash recorded in a collection's file state and is never sent to the
// remote host.
//
// Example usage:
//
//	h := utils.ContentHash([]byte("name: Users API\n"))
func ContentHash(data []byte) string {
	h := contentHasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	contentHasherPool.Put(h)

	return hex.EncodeToString(sum)
}

// BlobID computes the Git blob object id of data: the hex SHA-1 of
// "blob <len>\x00<data>".
//
// Git-compatible hosts report exactly this value as the version id of a
// stored file, so the client can predict the post-write remote version id
// without an extra round trip.
func BlobID(data []byte) string {
	h := sha1.New()
	h.Write([]byte("blob " + strconv.Itoa(len(data)) + "\x00"))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
