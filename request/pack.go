// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package request

import (
	"unicode/utf8"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/util"
)

// Sign - set the signer from key, pack and sign
//
// the envelope's Signer and Signature are updated
func (envelope *Envelope) Sign(key *account.PrivateKey) (Packed, error) {
	envelope.Signer = key.Account()
	message, err := envelope.message()
	if nil != err {
		return nil, err
	}
	envelope.Signature = key.Sign(message)
	return append(message, envelope.Signature...), nil
}

// Pack - concatenate the signed message and existing signature
//
// the signature is checked, on failure the unsigned message is
// returned with the error for debugging
func (envelope *Envelope) Pack() (Packed, error) {
	message, err := envelope.message()
	if nil != err {
		return nil, err
	}
	err = envelope.Signer.CheckSignature(message, envelope.Signature)
	if nil != err {
		return message, err
	}
	return append(message, envelope.Signature...), nil
}

// the bytes covered by the signature
func (envelope *Envelope) message() (Packed, error) {
	if 0 == len(envelope.Accounts) || len(envelope.Accounts) > MaxAccounts {
		return nil, fault.ErrInvalidAccountCount
	}
	if nil == envelope.Instruction {
		return nil, fault.ErrInvalidInstruction
	}
	if err := validate(envelope.Instruction); nil != err {
		return nil, err
	}

	message := make(Packed, 0, 256)
	message = append(message, envelope.Signer[:]...)
	message = appendUint64(message, uint64(len(envelope.Accounts)))
	for _, a := range envelope.Accounts {
		message = append(message, a[:]...)
	}
	message = appendUint64(message, uint64(envelope.Instruction.Tag()))
	return envelope.Instruction.pack(message), nil
}

func validate(instruction Instruction) error {
	switch tx := instruction.(type) {
	case *RegisterSubject:
		if !tx.Network.Valid() {
			return fault.ErrInvalidNetwork
		}
		p := tx.Provenance
		for _, s := range []string{p.GitRepo, p.GitCommit, p.Directory, p.DockerVersion, p.RustVersion, p.SolanaVersion, p.AnchorVersion} {
			if len(s) > maxStringLength {
				return fault.ErrMessageTooLong
			}
			if !utf8.ValidString(s) {
				return fault.ErrInvalidUTF8
			}
		}
	case *RecordVerification:
		if !tx.Network.Valid() {
			return fault.ErrInvalidNetwork
		}
	case *PostStatus:
		if len(tx.Message) > maxStringLength {
			return fault.ErrMessageTooLong
		}
		if !utf8.ValidString(tx.Message) {
			return fault.ErrInvalidUTF8
		}
	default:
		return fault.ErrInvalidInstruction
	}
	return nil
}

func (tx *RegisterSubject) pack(buffer Packed) Packed {
	buffer = append(buffer, tx.Subject[:]...)
	buffer = appendUint64(buffer, uint64(tx.Network))
	buffer = appendString(buffer, tx.Provenance.GitRepo)
	buffer = appendString(buffer, tx.Provenance.GitCommit)
	buffer = appendString(buffer, tx.Provenance.Directory)
	buffer = appendString(buffer, tx.Provenance.DockerVersion)
	buffer = appendString(buffer, tx.Provenance.RustVersion)
	buffer = appendString(buffer, tx.Provenance.SolanaVersion)
	buffer = appendString(buffer, tx.Provenance.AnchorVersion)
	return buffer
}

func (tx *RecordVerification) pack(buffer Packed) Packed {
	buffer = append(buffer, tx.Subject[:]...)
	buffer = appendUint64(buffer, uint64(tx.Network))
	buffer = append(buffer, tx.TestAddress[:]...)
	buffer = append(buffer, tx.User[:]...)
	buffer = appendBool(buffer, tx.Verified)
	buffer = appendBool(buffer, tx.Mutable)
	buffer = append(buffer, tx.DataHash[:]...)
	buffer = appendUint64(buffer, tx.RedeploySlot)
	buffer = appendUint64(buffer, tx.ObservedSlot)
	return buffer
}

func (tx *PostStatus) pack(buffer Packed) Packed {
	buffer = append(buffer, tx.User[:]...)
	buffer = appendUint64(buffer, uint64(tx.StatusCode))
	buffer = appendString(buffer, tx.Message)
	return buffer
}

// append a string to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	buffer = util.AppendVarint64(buffer, uint64(len(s)))
	return append(buffer, s...)
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	return util.AppendVarint64(buffer, value)
}

// append a flag as Varint64 0 or 1
func appendBool(buffer Packed, flag bool) Packed {
	if flag {
		return util.AppendVarint64(buffer, 1)
	}
	return util.AppendVarint64(buffer, 0)
}
