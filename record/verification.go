// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/integrity"
)

// Code - the verification state of a subject
type Code uint8

// verification states, values are stored on disk
const (
	Unset             Code = 0
	Failed            Code = 1
	VerifiedMutable   Code = 2
	VerifiedImmutable Code = 3
	codeLimit         Code = 4
)

var codeNames = [...]string{
	Unset:             "unset",
	Failed:            "failed",
	VerifiedMutable:   "verified-mutable",
	VerifiedImmutable: "verified-immutable",
}

// String - name of the code
func (code Code) String() string {
	if code >= codeLimit {
		return "invalid"
	}
	return codeNames[code]
}

// field offsets
const (
	testAddressOffset = 0
	slotOffset        = testAddressOffset + account.Size
	codeOffset        = slotOffset + 8
	hashOffset        = codeOffset + 1
	extensionOffset   = hashOffset + integrity.Length

	// VerificationSize - bytes occupied by a packed verification record
	VerificationSize = extensionOffset + ExtensionSize
)

// Verification - the durable result for one subject on one network
type Verification struct {
	TestAddress      account.Account  `json:"testAddress"`
	LastVerifiedSlot uint64           `json:"lastVerifiedSlot"`
	VerifiedCode     Code             `json:"verifiedCode"`
	DataHash         integrity.Digest `json:"dataHash"`
	Extension        Extension        `json:"-"`
}

// Size - packed size
func (v *Verification) Size() int {
	return VerificationSize
}

// Pack - produce exactly VerificationSize bytes
func (v *Verification) Pack() []byte {
	buffer := make([]byte, VerificationSize)
	// cannot fail: buffer is the exact size
	v.PackInto(buffer)
	return buffer
}

// PackInto - write the record to the start of buffer
func (v *Verification) PackInto(buffer []byte) error {
	if len(buffer) < VerificationSize {
		return fault.ErrBufferTooSmall
	}
	copy(buffer[testAddressOffset:], v.TestAddress[:])
	binary.LittleEndian.PutUint64(buffer[slotOffset:], v.LastVerifiedSlot)
	buffer[codeOffset] = uint8(v.VerifiedCode)
	copy(buffer[hashOffset:], v.DataHash[:])
	copy(buffer[extensionOffset:], v.Extension[:])
	return nil
}

// Unpack - decode a record from buffer
//
// the record is only modified if the whole buffer is valid
func (v *Verification) Unpack(buffer []byte) error {
	if len(buffer) < VerificationSize {
		return fault.ErrCorruptRecord
	}
	code := Code(buffer[codeOffset])
	if code >= codeLimit {
		return fault.ErrCorruptRecord
	}
	var extension Extension
	copy(extension[:], buffer[extensionOffset:VerificationSize])
	if err := extension.check(); nil != err {
		return err
	}

	copy(v.TestAddress[:], buffer[testAddressOffset:slotOffset])
	v.LastVerifiedSlot = binary.LittleEndian.Uint64(buffer[slotOffset:])
	v.VerifiedCode = code
	copy(v.DataHash[:], buffer[hashOffset:extensionOffset])
	v.Extension = extension
	return nil
}
