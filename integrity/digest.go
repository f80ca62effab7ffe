// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package integrity

import (
	"encoding/hex"
	"fmt"

	"github.com/bitmark-inc/verifierd/fault"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - SHA-256 of a bytecode buffer
//
// unlike block digests this is shown in natural byte order, the same
// as common sha256sum tools
type Digest [Length]byte

// String - hex for the fmt package (%s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - for the fmt package (%#v)
func (digest Digest) GoString() string {
	return "<SHA256:" + hex.EncodeToString(digest[:]) + ">"
}

// IsZero - true if no digest has been stored
func (digest Digest) IsZero() bool {
	return digest == Digest{}
}

// Scan - hex representation to digest for the fmt scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
	})
	if nil != err {
		return err
	}
	return digest.UnmarshalText(token)
}

// MarshalText - digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(Length))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - hex text to digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if hex.EncodedLen(Length) != len(s) {
		return fault.ErrInvalidDigestLength
	}
	_, err := hex.Decode(digest[:], s)
	return err
}

// DigestFromBytes - convert and validate a byte slice
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if Length != len(buffer) {
		return fault.ErrInvalidDigestLength
	}
	copy(digest[:], buffer)
	return nil
}
