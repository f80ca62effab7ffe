// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package request_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/chain"
	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/integrity"
	"github.com/bitmark-inc/verifierd/request"
	"github.com/bitmark-inc/verifierd/util"
)

func makeKey(t *testing.T, b byte) *account.PrivateKey {
	key, err := account.PrivateKeyFromSeed(bytes.Repeat([]byte{b}, 32))
	assert.Nil(t, err, "key")
	return key
}

func TestRegisterSubjectRoundTrip(t *testing.T) {
	key := makeKey(t, 1)
	envelope := &request.Envelope{
		Accounts: []account.Account{{1}, {2}},
		Instruction: &request.RegisterSubject{
			Subject: account.Account{3},
			Network: chain.MainNet,
			Provenance: request.Provenance{
				GitRepo:       "https://example.com/program.git",
				GitCommit:     "0123abcd",
				Directory:     "programs/vault",
				DockerVersion: "20.10",
				RustVersion:   "1.60.0",
				SolanaVersion: "1.10.8",
				AnchorVersion: "0.24.2",
			},
		},
	}

	packed, err := envelope.Sign(key)
	assert.Nil(t, err, "sign")
	assert.Equal(t, key.Account(), envelope.Signer, "signer not set")

	// signer ++ count ++ accounts ++ tag
	assert.Equal(t, key.Account().Bytes(), []byte(packed[:32]), "signer bytes")
	assert.Equal(t, byte(2), packed[32], "account count")
	assert.Equal(t, byte(request.RegisterSubjectTag), packed[32+1+64], "tag")

	unpacked, err := packed.Unpack()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, envelope, unpacked, "round trip")

	repacked, err := unpacked.Pack()
	assert.Nil(t, err, "repack")
	assert.Equal(t, packed, repacked, "repack differs")
}

func TestRecordVerificationRoundTrip(t *testing.T) {
	key := makeKey(t, 2)
	envelope := &request.Envelope{
		Accounts: []account.Account{{1}, {2}, {3}, {4}},
		Instruction: &request.RecordVerification{
			Subject:      account.Account{2},
			Network:      chain.DevNet,
			TestAddress:  account.Account{3},
			User:         account.Account{5},
			Verified:     true,
			Mutable:      true,
			DataHash:     integrity.NewDigest([]byte("code")),
			RedeploySlot: 150,
			ObservedSlot: 1 << 40,
		},
	}
	packed, err := envelope.Sign(key)
	assert.Nil(t, err, "sign")

	unpacked, err := packed.Unpack()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, envelope, unpacked, "round trip")
}

func TestPostStatusRoundTrip(t *testing.T) {
	key := makeKey(t, 3)
	envelope := &request.Envelope{
		Accounts: []account.Account{{9}},
		Instruction: &request.PostStatus{
			User:       account.Account{7},
			StatusCode: 200,
			Message:    "Program x : running verification",
		},
	}
	packed, err := envelope.Sign(key)
	assert.Nil(t, err, "sign")

	unpacked, err := packed.Unpack()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, envelope, unpacked, "round trip")
}

func TestTamperedRequest(t *testing.T) {
	key := makeKey(t, 4)
	envelope := &request.Envelope{
		Accounts:    []account.Account{{9}},
		Instruction: &request.PostStatus{User: account.Account{7}, Message: "ok"},
	}
	packed, _ := envelope.Sign(key)

	tampered := append(request.Packed{}, packed...)
	tampered[40] ^= 0x01
	_, err := tampered.Unpack()
	assert.Equal(t, fault.ErrInvalidSignature, err, "tampered account accepted")

	// claim another signer
	other := makeKey(t, 5).Account()
	forged := append(request.Packed{}, packed...)
	copy(forged, other[:])
	_, err = forged.Unpack()
	assert.Equal(t, fault.ErrInvalidSignature, err, "forged signer accepted")
}

func TestTruncatedRequest(t *testing.T) {
	key := makeKey(t, 6)
	envelope := &request.Envelope{
		Accounts:    []account.Account{{9}},
		Instruction: &request.PostStatus{User: account.Account{7}, Message: "ok"},
	}
	packed, _ := envelope.Sign(key)

	for _, n := range []int{0, 10, 32, 33, 60, len(packed) - 1} {
		_, err := packed[:n].Unpack()
		assert.Equal(t, fault.ErrTruncatedRequest, err, "%d bytes accepted", n)
	}

	_, err := append(append(request.Packed{}, packed...), 0x00).Unpack()
	assert.Equal(t, fault.ErrInvalidInstruction, err, "trailing bytes accepted")
}

func TestInvalidEnvelope(t *testing.T) {
	key := makeKey(t, 7)

	_, err := (&request.Envelope{Instruction: &request.PostStatus{}}).Sign(key)
	assert.Equal(t, fault.ErrInvalidAccountCount, err, "no accounts")

	_, err = (&request.Envelope{Accounts: make([]account.Account, 17), Instruction: &request.PostStatus{}}).Sign(key)
	assert.Equal(t, fault.ErrInvalidAccountCount, err, "too many accounts")

	_, err = (&request.Envelope{Accounts: []account.Account{{}}}).Sign(key)
	assert.Equal(t, fault.ErrInvalidInstruction, err, "no instruction")

	_, err = (&request.Envelope{
		Accounts:    []account.Account{{}},
		Instruction: &request.RegisterSubject{Network: chain.Invalid},
	}).Sign(key)
	assert.Equal(t, fault.ErrInvalidNetwork, err, "invalid network")

	_, err = (&request.Envelope{
		Accounts:    []account.Account{{}},
		Instruction: &request.PostStatus{Message: "\xff"},
	}).Sign(key)
	assert.Equal(t, fault.ErrInvalidUTF8, err, "invalid utf8")
}

func TestUnknownTag(t *testing.T) {
	key := makeKey(t, 8)
	signer := key.Account()

	message := append([]byte{}, signer[:]...)
	message = append(message, 1)
	message = append(message, make([]byte, 32)...)
	message = append(message, byte(request.InvalidTag))
	packed := request.Packed(append(message, key.Sign(message)...))

	_, err := packed.Unpack()
	assert.Equal(t, fault.ErrInvalidInstruction, err, "unknown tag accepted")
}

func TestOutOfRangeNetwork(t *testing.T) {
	key := makeKey(t, 9)
	signer := key.Account()

	for _, network := range []uint64{uint64(chain.Invalid), 256, 258, 1 << 40} {
		message := append([]byte{}, signer[:]...)
		message = append(message, 1)
		message = append(message, make([]byte, 32)...)
		message = append(message, byte(request.RegisterSubjectTag))
		message = append(message, make([]byte, 32)...)
		message = append(message, util.ToVarint64(network)...)
		message = append(message, make([]byte, 7)...) // empty provenance strings
		packed := request.Packed(append(message, key.Sign(message)...))

		_, err := packed.Unpack()
		assert.Equal(t, fault.ErrInvalidNetwork, err, "network %d accepted", network)
	}
}

func TestPackedText(t *testing.T) {
	p := request.Packed{0x01, 0xfe}
	buffer, err := json.Marshal(p)
	assert.Nil(t, err, "marshal")
	assert.Equal(t, `"01fe"`, string(buffer), "json")

	var r request.Packed
	assert.Nil(t, json.Unmarshal(buffer, &r), "unmarshal")
	assert.Equal(t, p, r, "round trip")
}
