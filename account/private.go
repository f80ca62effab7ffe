// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"io"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/verifierd/fault"
)

// PrivateKey - an ed25519 signing key
//
// text form is the base58 encoding of the 64 byte seed‖public key
// pair as produced by most wallet key files
type PrivateKey struct {
	key ed25519.PrivateKey
}

// NewPrivateKey - generate a fresh key, nil reader means crypto/rand
func NewPrivateKey(random io.Reader) (*PrivateKey, error) {
	if nil == random {
		random = rand.Reader
	}
	_, key, err := ed25519.GenerateKey(random)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromSeed - deterministic key from a 32 byte seed
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// PrivateKeyFromBytes - accept either a seed or a full 64 byte key
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	switch len(b) {
	case ed25519.SeedSize:
		return PrivateKeyFromSeed(b)
	case ed25519.PrivateKeySize:
		key, err := PrivateKeyFromSeed(b[:ed25519.SeedSize])
		if nil != err {
			return nil, err
		}
		// the embedded public half must agree with the seed
		if string(key.key[ed25519.SeedSize:]) != string(b[ed25519.SeedSize:]) {
			return nil, fault.ErrInvalidKeyLength
		}
		return key, nil
	default:
		return nil, fault.ErrInvalidKeyLength
	}
}

// PrivateKeyFromBase58 - decode the text form
func PrivateKeyFromBase58(s string) (*PrivateKey, error) {
	b, err := base58.Decode(s)
	if nil != err {
		return nil, fault.ErrInvalidKeyLength
	}
	return PrivateKeyFromBytes(b)
}

// Account - the public identity of this key
func (key *PrivateKey) Account() Account {
	a := Account{}
	copy(a[:], key.key[ed25519.SeedSize:])
	return a
}

// Sign - produce a detached signature
func (key *PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(key.key, message))
}

// Bytes - the 64 byte key
func (key *PrivateKey) Bytes() []byte {
	return []byte(key.key)
}

// String - base58 of the full key
func (key *PrivateKey) String() string {
	return base58.Encode(key.key)
}

// MarshalText - base58 of the full key
func (key *PrivateKey) MarshalText() ([]byte, error) {
	return []byte(base58.Encode(key.key)), nil
}

// UnmarshalText - from base58 text
func (key *PrivateKey) UnmarshalText(s []byte) error {
	k, err := PrivateKeyFromBase58(string(s))
	if nil != err {
		return err
	}
	key.key = k.key
	return nil
}
