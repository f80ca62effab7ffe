// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package request - signed request envelopes submitted to the ledger
//
// Packed layout:
//
//	signer(32) ++ Varint64(n) ++ n × account(32) ++ instruction ++ signature(64)
//
// instruction is Varint64(tag) followed by the fields of that
// instruction in struct order; strings are Varint64(length) ++ bytes,
// accounts and digests are raw 32 bytes, integers and flags Varint64.
// The ed25519 signature of the signer covers every preceding byte.
package request

import (
	"encoding/hex"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/chain"
	"github.com/bitmark-inc/verifierd/integrity"
)

// TagType - type code of an instruction
type TagType uint64

// enumerate the instruction types
// this is encoded as Varint64 at the start of the instruction
const (
	RegisterSubjectTag    = TagType(iota) // create record and user status slots
	RecordVerificationTag = TagType(iota) // store a verification result
	PostStatusTag         = TagType(iota) // overwrite a user status

	// this item must be last
	InvalidTag = TagType(iota)
)

// limits
const (
	MaxAccounts     = 16
	maxStringLength = 8192
)

// Packed - a packed request is just a byte slice
type Packed []byte

// Instruction - generic instruction interface
type Instruction interface {
	Tag() TagType
	pack(buffer Packed) Packed
}

// Envelope - the unpacked request
type Envelope struct {
	Signer      account.Account   `json:"signer"`      // base58
	Accounts    []account.Account `json:"accounts"`    // base58, positional
	Instruction Instruction       `json:"instruction"` // one of the types below
	Signature   account.Signature `json:"signature"`   // hex
}

// Provenance - how the claimed build was produced
type Provenance struct {
	GitRepo       string `json:"gitRepo"`
	GitCommit     string `json:"gitCommit"`
	Directory     string `json:"directory"`
	DockerVersion string `json:"dockerVersion"`
	RustVersion   string `json:"rustVersion"`
	SolanaVersion string `json:"solanaVersion"`
	AnchorVersion string `json:"anchorVersion"`
}

// RegisterSubject - ensure slots exist for a subject and the submitting user
type RegisterSubject struct {
	Subject    account.Account `json:"subject"`
	Network    chain.Network   `json:"network"`
	Provenance Provenance      `json:"provenance"`
}

// RecordVerification - the result of comparing deployed and built bytecode
type RecordVerification struct {
	Subject      account.Account  `json:"subject"`
	Network      chain.Network    `json:"network"`
	TestAddress  account.Account  `json:"testAddress"`
	User         account.Account  `json:"user"`
	Verified     bool             `json:"verified"`
	Mutable      bool             `json:"mutable"`
	DataHash     integrity.Digest `json:"dataHash"`
	RedeploySlot uint64           `json:"redeploySlot"`
	ObservedSlot uint64           `json:"observedSlot"`
}

// PostStatus - overwrite the status of a user
type PostStatus struct {
	User       account.Account `json:"user"`
	StatusCode uint8           `json:"statusCode"`
	Message    string          `json:"message"`
}

// Tag - instruction type
func (*RegisterSubject) Tag() TagType { return RegisterSubjectTag }

// Tag - instruction type
func (*RecordVerification) Tag() TagType { return RecordVerificationTag }

// Tag - instruction type
func (*PostStatus) Tag() TagType { return PostStatusTag }

// String - hex for the fmt package
func (p Packed) String() string {
	return hex.EncodeToString(p)
}

// MarshalText - packed bytes as hex
func (p Packed) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(p)))
	hex.Encode(buffer, p)
	return buffer, nil
}

// UnmarshalText - hex to packed bytes
func (p *Packed) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	*p = buffer[:n]
	return nil
}
