// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/fault"
)

const (
	balanceSize    = 8
	slotHeaderSize = balanceSize + account.Size
)

// Slot - a stored location: rent balance, owning namespace and record bytes
type Slot struct {
	Balance uint64
	Owner   account.Account
	Data    []byte
}

// Pack - balance ++ owner ++ data
func (s *Slot) Pack() []byte {
	buffer := make([]byte, slotHeaderSize+len(s.Data))
	binary.BigEndian.PutUint64(buffer, s.Balance)
	copy(buffer[balanceSize:], s.Owner[:])
	copy(buffer[slotHeaderSize:], s.Data)
	return buffer
}

// unpackSlot - decode a stored value, data is copied
func unpackSlot(buffer []byte) (*Slot, error) {
	if len(buffer) < slotHeaderSize {
		return nil, fault.ErrCorruptRecord
	}
	s := &Slot{
		Balance: binary.BigEndian.Uint64(buffer),
		Data:    make([]byte, len(buffer)-slotHeaderSize),
	}
	copy(s.Owner[:], buffer[balanceSize:slotHeaderSize])
	copy(s.Data, buffer[slotHeaderSize:])
	return s, nil
}
