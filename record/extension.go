// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"

	"github.com/bitmark-inc/verifierd/fault"
)

// extension region sizes
const (
	ExtensionSize       = 512
	extensionHeaderSize = 3
	MaxExtensionPayload = ExtensionSize - extensionHeaderSize
)

// Extension - versioned reserved space at the end of a verification record
//
// all zero is version 0 with no payload
type Extension [ExtensionSize]byte

// Version - schema version of the payload
func (e *Extension) Version() uint8 {
	return e[0]
}

// Payload - the stored payload bytes
func (e *Extension) Payload() ([]byte, error) {
	if err := e.check(); nil != err {
		return nil, err
	}
	n := int(binary.LittleEndian.Uint16(e[1:]))
	payload := make([]byte, n)
	copy(payload, e[extensionHeaderSize:])
	return payload, nil
}

// Set - replace the version and payload, clearing any previous content
func (e *Extension) Set(version uint8, payload []byte) error {
	if len(payload) > MaxExtensionPayload {
		return fault.ErrExtensionTooLong
	}
	zero(e[:])
	e[0] = version
	binary.LittleEndian.PutUint16(e[1:], uint16(len(payload)))
	copy(e[extensionHeaderSize:], payload)
	return nil
}

func (e *Extension) check() error {
	n := int(binary.LittleEndian.Uint16(e[1:]))
	if n > MaxExtensionPayload {
		return fault.ErrCorruptRecord
	}
	return nil
}
