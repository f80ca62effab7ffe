// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package request

import (
	"unicode/utf8"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/chain"
	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/integrity"
	"github.com/bitmark-inc/verifierd/util"
)

// Unpack - decode a packed request and authenticate its signer
//
// the whole buffer must be consumed; a request that does not carry a
// valid signature by its signer is rejected
func (record Packed) Unpack() (*Envelope, error) {
	d := &decoder{buffer: record}

	envelope := &Envelope{}
	envelope.Signer = d.account()
	if nil != d.err {
		return nil, d.err
	}

	count, n := util.ClippedVarint64(d.rest(), 1, MaxAccounts)
	if 0 == n {
		if d.remaining() > 0 {
			return nil, fault.ErrInvalidAccountCount
		}
		return nil, fault.ErrTruncatedRequest
	}
	d.skip(n)

	envelope.Accounts = make([]account.Account, count)
	for i := range envelope.Accounts {
		envelope.Accounts[i] = d.account()
	}

	tag := TagType(d.uint64())
	if nil != d.err {
		return nil, d.err
	}

	switch tag {
	case RegisterSubjectTag:
		tx := &RegisterSubject{}
		tx.Subject = d.account()
		tx.Network = d.network()
		tx.Provenance.GitRepo = d.string()
		tx.Provenance.GitCommit = d.string()
		tx.Provenance.Directory = d.string()
		tx.Provenance.DockerVersion = d.string()
		tx.Provenance.RustVersion = d.string()
		tx.Provenance.SolanaVersion = d.string()
		tx.Provenance.AnchorVersion = d.string()
		envelope.Instruction = tx

	case RecordVerificationTag:
		tx := &RecordVerification{}
		tx.Subject = d.account()
		tx.Network = d.network()
		tx.TestAddress = d.account()
		tx.User = d.account()
		tx.Verified = d.bool()
		tx.Mutable = d.bool()
		tx.DataHash = d.digest()
		tx.RedeploySlot = d.uint64()
		tx.ObservedSlot = d.uint64()
		envelope.Instruction = tx

	case PostStatusTag:
		tx := &PostStatus{}
		tx.User = d.account()
		code := d.uint64()
		if code > 255 {
			d.fail(fault.ErrInvalidInstruction)
		}
		tx.StatusCode = uint8(code)
		tx.Message = d.string()
		envelope.Instruction = tx

	default:
		return nil, fault.ErrInvalidInstruction
	}

	if nil != d.err {
		return nil, d.err
	}

	message := record[:d.offset]
	switch {
	case d.remaining() < account.SignatureSize:
		return nil, fault.ErrTruncatedRequest
	case d.remaining() > account.SignatureSize:
		return nil, fault.ErrInvalidInstruction
	}
	envelope.Signature = make(account.Signature, account.SignatureSize)
	copy(envelope.Signature, d.rest())

	err := envelope.Signer.CheckSignature(message, envelope.Signature)
	if nil != err {
		return nil, err
	}
	return envelope, nil
}

// decoder - sequential field reader, the first error sticks
type decoder struct {
	buffer []byte
	offset int
	err    error
}

func (d *decoder) rest() []byte {
	return d.buffer[d.offset:]
}

func (d *decoder) remaining() int {
	return len(d.buffer) - d.offset
}

func (d *decoder) skip(n int) {
	d.offset += n
}

func (d *decoder) fail(err error) {
	if nil == d.err {
		d.err = err
	}
}

func (d *decoder) take(n int) []byte {
	if nil != d.err {
		return nil
	}
	if d.remaining() < n {
		d.fail(fault.ErrTruncatedRequest)
		return nil
	}
	b := d.buffer[d.offset : d.offset+n]
	d.offset += n
	return b
}

func (d *decoder) account() account.Account {
	a := account.Account{}
	if b := d.take(account.Size); nil != b {
		copy(a[:], b)
	}
	return a
}

func (d *decoder) digest() integrity.Digest {
	digest := integrity.Digest{}
	if b := d.take(integrity.Length); nil != b {
		copy(digest[:], b)
	}
	return digest
}

func (d *decoder) uint64() uint64 {
	if nil != d.err {
		return 0
	}
	value, n := util.FromVarint64(d.rest())
	if 0 == n {
		d.fail(fault.ErrTruncatedRequest)
		return 0
	}
	d.offset += n
	return value
}

func (d *decoder) bool() bool {
	switch d.uint64() {
	case 0:
		return false
	case 1:
		return true
	default:
		d.fail(fault.ErrInvalidInstruction)
		return false
	}
}

func (d *decoder) network() chain.Network {
	value := d.uint64()
	if nil != d.err {
		return chain.Invalid
	}
	if value >= uint64(chain.Invalid) {
		d.fail(fault.ErrInvalidNetwork)
		return chain.Invalid
	}
	return chain.Network(value)
}

func (d *decoder) string() string {
	if nil != d.err {
		return ""
	}
	length, n := util.ClippedVarint64(d.rest(), 0, maxStringLength)
	if 0 == n {
		if d.remaining() > 0 {
			d.fail(fault.ErrMessageTooLong)
		} else {
			d.fail(fault.ErrTruncatedRequest)
		}
		return ""
	}
	d.offset += n
	b := d.take(length)
	if nil != d.err {
		return ""
	}
	if !utf8.Valid(b) {
		d.fail(fault.ErrInvalidUTF8)
		return ""
	}
	return string(b)
}
