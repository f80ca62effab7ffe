// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package integrity - decide whether two bytecode buffers are identical
package integrity

import (
	"crypto/sha256"
)

// NewDigest - hash a buffer
func NewDigest(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// Compare - hash the claimed and candidate bytecode
//
// the result is true iff both digests are equal; the returned digest is
// the candidate's and is the value stored in a verification record
func Compare(claimed []byte, candidate []byte) (bool, Digest) {
	claimedDigest := NewDigest(claimed)
	candidateDigest := NewDigest(candidate)
	return claimedDigest == candidateDigest, candidateDigest
}
