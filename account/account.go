// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - 32 byte public identities
//
// an identity is either an ed25519 public key (a user or the
// verifier authority) or a derived location that lies off the curve
// and so has no private key
package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/verifierd/fault"
)

// Size - number of bytes in an identity
const Size = 32

// Account - a public identity
type Account [Size]byte

// FromBase58 - decode the text form of an identity
func FromBase58(s string) (Account, error) {
	a := Account{}
	decoded, err := base58.Decode(s)
	if nil != err {
		return a, fault.ErrInvalidAccount
	}
	if Size != len(decoded) {
		return a, fault.ErrInvalidKeyLength
	}
	copy(a[:], decoded)
	return a, nil
}

// FromBytes - copy an identity from a byte slice
func FromBytes(b []byte) (Account, error) {
	a := Account{}
	if Size != len(b) {
		return a, fault.ErrInvalidKeyLength
	}
	copy(a[:], b)
	return a, nil
}

// Bytes - the raw identity
func (a Account) Bytes() []byte {
	return a[:]
}

// IsZero - true for the unset identity
func (a Account) IsZero() bool {
	return a == Account{}
}

// Equal - compare two identities
func (a Account) Equal(b Account) bool {
	return bytes.Equal(a[:], b[:])
}

// String - base58 text for the fmt package (%s)
func (a Account) String() string {
	return base58.Encode(a[:])
}

// GoString - for the fmt package (%#v)
func (a Account) GoString() string {
	return "<account:" + base58.Encode(a[:]) + ">"
}

// MarshalText - convert to base58 for JSON
func (a Account) MarshalText() ([]byte, error) {
	return []byte(base58.Encode(a[:])), nil
}

// UnmarshalText - convert from base58 text
func (a *Account) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}

// CheckSignature - verify an ed25519 signature made by this identity
func (a Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(a[:]), message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}
