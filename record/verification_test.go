// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/integrity"
	"github.com/bitmark-inc/verifierd/record"
)

func sampleVerification() record.Verification {
	v := record.Verification{
		LastVerifiedSlot: 0x0102030405060708,
		VerifiedCode:     record.VerifiedImmutable,
		DataHash:         integrity.NewDigest([]byte("abc")),
	}
	for i := range v.TestAddress {
		v.TestAddress[i] = uint8(i + 1)
	}
	return v
}

func TestVerificationLayout(t *testing.T) {
	assert.Equal(t, 585, record.VerificationSize, "record size")

	v := sampleVerification()
	buffer := v.Pack()
	assert.Equal(t, record.VerificationSize, len(buffer), "packed length")

	assert.Equal(t, v.TestAddress[:], buffer[0:32], "test address")
	assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, buffer[32:40], "slot is little endian")
	assert.Equal(t, uint8(3), buffer[40], "code")
	assert.Equal(t, v.DataHash[:], buffer[41:73], "hash")
	assert.Equal(t, make([]byte, 512), buffer[73:], "extension")
}

func TestVerificationRoundTrip(t *testing.T) {
	v := sampleVerification()
	assert.Nil(t, v.Extension.Set(1, []byte("reproducible")), "extension")

	var r record.Verification
	assert.Nil(t, r.Unpack(v.Pack()), "unpack error")
	assert.Equal(t, v, r, "round trip")

	payload, err := r.Extension.Payload()
	assert.Nil(t, err, "payload error")
	assert.Equal(t, uint8(1), r.Extension.Version(), "version")
	assert.Equal(t, []byte("reproducible"), payload, "payload")
}

func TestVerificationZero(t *testing.T) {
	var r record.Verification
	assert.Nil(t, r.Unpack(make([]byte, record.VerificationSize)), "zeroed slot must decode")
	assert.Equal(t, record.Unset, r.VerifiedCode, "code")
	assert.Equal(t, account.Account{}, r.TestAddress, "test address")
}

func TestVerificationCorrupt(t *testing.T) {
	v := sampleVerification()
	buffer := v.Pack()

	var r record.Verification
	assert.Equal(t, fault.ErrCorruptRecord, r.Unpack(buffer[:584]), "short buffer")

	bad := append([]byte{}, buffer...)
	bad[40] = 4
	assert.Equal(t, fault.ErrCorruptRecord, r.Unpack(bad), "bad code")

	bad = append([]byte{}, buffer...)
	bad[74] = 0xff
	bad[75] = 0x01
	assert.Equal(t, fault.ErrCorruptRecord, r.Unpack(bad), "bad extension length")

	assert.Equal(t, record.Verification{}, r, "record modified on error")

	assert.Equal(t, fault.ErrBufferTooSmall, v.PackInto(make([]byte, 100)), "small buffer")
}

func TestExtensionLimits(t *testing.T) {
	var e record.Extension
	assert.Equal(t, fault.ErrExtensionTooLong, e.Set(1, make([]byte, 510)), "oversize payload")
	assert.Nil(t, e.Set(2, bytes.Repeat([]byte{0xaa}, 509)), "maximum payload")

	assert.Nil(t, e.Set(3, []byte{1}), "shrink")
	payload, err := e.Payload()
	assert.Nil(t, err, "payload error")
	assert.Equal(t, []byte{1}, payload, "payload")
	assert.Equal(t, make([]byte, 508), e[4:], "tail not cleared")
}

func TestCodeNames(t *testing.T) {
	assert.Equal(t, "unset", record.Unset.String())
	assert.Equal(t, "failed", record.Failed.String())
	assert.Equal(t, "verified-mutable", record.VerifiedMutable.String())
	assert.Equal(t, "verified-immutable", record.VerifiedImmutable.String())
	assert.Equal(t, "invalid", record.Code(9).String())
}
