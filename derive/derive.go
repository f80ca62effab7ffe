// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package derive - deterministic record locations
//
// a location is SHA-256(seeds ‖ namespace ‖ marker) chosen so that it
// is not a valid ed25519 point, therefore no private key exists for it
// and only the owning namespace can write there
package derive

import (
	"crypto/sha256"

	"filippo.io/edwards25519"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/chain"
	"github.com/bitmark-inc/verifierd/fault"
)

// limits on the seed list
const (
	MaxSeeds      = 16
	MaxSeedLength = 32
)

// appended to every derivation hash
const marker = "ProgramDerivedAddress"

// seed for user status locations
const userSeed = "user_account"

// FindAddress - search bump values 255 down to 1 for an off-curve location
//
// the bump is appended as a final one byte seed, so at most
// MaxSeeds-1 seeds may be supplied
func FindAddress(seeds [][]byte, namespace account.Account) (account.Account, uint8, error) {
	candidate := make([][]byte, len(seeds)+1)
	copy(candidate, seeds)

	bump := []byte{0}
	candidate[len(seeds)] = bump

	for b := 255; b > 0; b -= 1 {
		bump[0] = uint8(b)
		location, err := CreateAddress(candidate, namespace)
		if nil == err {
			return location, uint8(b), nil
		}
		if fault.ErrInvalidSeeds != err {
			return account.Account{}, 0, err
		}
	}
	return account.Account{}, 0, fault.ErrAddressDerivationExhausted
}

// CreateAddress - compute a single candidate location
//
// the seeds must already include any bump byte
func CreateAddress(seeds [][]byte, namespace account.Account) (account.Account, error) {
	location := account.Account{}

	if len(seeds) > MaxSeeds {
		return location, fault.ErrTooManySeeds
	}

	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return location, fault.ErrSeedTooLong
		}
		h.Write(seed)
	}
	h.Write(namespace[:])
	h.Write([]byte(marker))
	copy(location[:], h.Sum(nil))

	if onCurve(location[:]) {
		return account.Account{}, fault.ErrInvalidSeeds
	}
	return location, nil
}

// onCurve - true if the bytes decode to an ed25519 point
//
// non-canonical encodings are accepted, as any compressed point
// decoder would
func onCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return nil == err
}

// VerificationSeeds - seeds for the record of a subject on a network
func VerificationSeeds(subject account.Account, network chain.Network) ([][]byte, error) {
	s, err := network.SeedString()
	if nil != err {
		return nil, err
	}
	return [][]byte{subject.Bytes(), []byte(s)}, nil
}

// UserSeeds - seeds for the status location of a user
func UserSeeds(user account.Account) [][]byte {
	return [][]byte{user.Bytes(), []byte(userSeed)}
}

// VerificationAddress - record location and bump for a subject on a network
func VerificationAddress(subject account.Account, network chain.Network, namespace account.Account) (account.Account, uint8, error) {
	seeds, err := VerificationSeeds(subject, network)
	if nil != err {
		return account.Account{}, 0, err
	}
	return FindAddress(seeds, namespace)
}

// UserAddress - status location and bump for a user
func UserAddress(user account.Account, namespace account.Account) (account.Account, uint8, error) {
	return FindAddress(UserSeeds(user), namespace)
}
