// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package programdata - split an upgradeable loader program data
// account into its header and the deployed bytecode
package programdata

import (
	"encoding/binary"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/fault"
)

// loader state tag of a program data account
const programDataTag = 3

// header layout
const (
	tagOffset       = 0
	slotOffset      = tagOffset + 4
	optionOffset    = slotOffset + 8
	authorityOffset = optionOffset + 1

	// HeaderSize - bytes before the bytecode
	HeaderSize = authorityOffset + account.Size
)

// Header - deployment facts of a program
type Header struct {
	Slot      uint64           // slot of the most recent deployment
	Authority *account.Account // nil once the program is immutable
}

// Mutable - true while an upgrade authority exists
func (h Header) Mutable() bool {
	return nil != h.Authority
}

// Parse - decode the header and return the bytecode that follows
func Parse(data []byte) (Header, []byte, error) {
	header := Header{}
	if len(data) < optionOffset+1 {
		return header, nil, fault.ErrProgramDataTooShort
	}
	if programDataTag != binary.LittleEndian.Uint32(data[tagOffset:]) {
		return header, nil, fault.ErrNotProgramData
	}
	header.Slot = binary.LittleEndian.Uint64(data[slotOffset:])

	switch data[optionOffset] {
	case 0:
	case 1:
		if len(data) < HeaderSize {
			return Header{}, nil, fault.ErrProgramDataTooShort
		}
		authority, err := account.FromBytes(data[authorityOffset:HeaderSize])
		if nil != err {
			return Header{}, nil, err
		}
		header.Authority = &authority
	default:
		return Header{}, nil, fault.ErrNotProgramData
	}

	if len(data) < HeaderSize {
		return header, []byte{}, nil
	}
	return header, data[HeaderSize:], nil
}
