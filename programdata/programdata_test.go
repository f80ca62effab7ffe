// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package programdata_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/programdata"
)

func build(tag uint32, slot uint64, authority []byte, code []byte) []byte {
	buffer := make([]byte, programdata.HeaderSize)
	binary.LittleEndian.PutUint32(buffer[0:], tag)
	binary.LittleEndian.PutUint64(buffer[4:], slot)
	if nil != authority {
		buffer[12] = 1
		copy(buffer[13:], authority)
	}
	return append(buffer, code...)
}

func TestParseMutable(t *testing.T) {
	authority := make([]byte, 32)
	authority[0] = 0x42
	data := build(3, 150, authority, []byte{0x7f, 'E', 'L', 'F'})

	header, code, err := programdata.Parse(data)
	assert.Nil(t, err, "error")
	assert.Equal(t, 45, programdata.HeaderSize, "header size")
	assert.Equal(t, uint64(150), header.Slot, "slot")
	assert.True(t, header.Mutable(), "mutable")
	assert.Equal(t, authority, header.Authority.Bytes(), "authority")
	assert.Equal(t, []byte{0x7f, 'E', 'L', 'F'}, code, "code")
}

func TestParseImmutable(t *testing.T) {
	data := build(3, 7, nil, []byte{1, 2, 3})

	header, code, err := programdata.Parse(data)
	assert.Nil(t, err, "error")
	assert.Equal(t, uint64(7), header.Slot, "slot")
	assert.False(t, header.Mutable(), "immutable")
	assert.Equal(t, []byte{1, 2, 3}, code, "code")
}

func TestParseErrors(t *testing.T) {
	_, _, err := programdata.Parse([]byte{3, 0, 0})
	assert.Equal(t, fault.ErrProgramDataTooShort, err, "short")

	_, _, err = programdata.Parse(build(2, 1, nil, nil))
	assert.Equal(t, fault.ErrNotProgramData, err, "program account tag")

	data := build(3, 1, nil, nil)
	data[12] = 2
	_, _, err = programdata.Parse(data)
	assert.Equal(t, fault.ErrNotProgramData, err, "bad option")

	data = build(3, 1, make([]byte, 32), nil)
	_, _, err = programdata.Parse(data[:20])
	assert.Equal(t, fault.ErrProgramDataTooShort, err, "truncated authority")
}
