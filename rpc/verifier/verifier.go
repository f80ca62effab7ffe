// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verifier

import (
	"encoding/hex"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/chain"
	"github.com/bitmark-inc/verifierd/derive"
	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/ledger"
	"github.com/bitmark-inc/verifierd/processor"
	"github.com/bitmark-inc/verifierd/record"
	"github.com/bitmark-inc/verifierd/request"
	"github.com/bitmark-inc/verifierd/rpc/ratelimit"
)

const (
	rateLimitVerifier = 200
	rateBurstVerifier = 100

	maximumListCount = 100
)

// Submitter - runs packed requests
type Submitter interface {
	Submit(request.Packed) (*processor.Result, error)
}

// Reader - committed view of the ledger
type Reader interface {
	Committed(account.Account) (*ledger.Slot, error)
	List(account.Account, int) ([]ledger.Listing, account.Account, error)
	Owner() account.Account
}

// Verifier - type for RPC calls
type Verifier struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Submitter Submitter
	Reader    Reader
}

// New - create the verifier RPC service
func New(log *logger.L, submitter Submitter, reader Reader) *Verifier {
	return &Verifier{
		Log:       log,
		Limiter:   rate.NewLimiter(rateLimitVerifier, rateBurstVerifier),
		Submitter: submitter,
		Reader:    reader,
	}
}

// ---

// SubmitArguments - a packed, signed request as hex
type SubmitArguments struct {
	Request request.Packed `json:"request"`
}

// SubmitReply - what the request did
type SubmitReply struct {
	Result *processor.Result `json:"result"`
}

// Submit - authenticate and run a request
func (verifier *Verifier) Submit(arguments *SubmitArguments, reply *SubmitReply) error {
	if err := ratelimit.Limit(verifier.Limiter); nil != err {
		return err
	}

	if nil == arguments || 0 == len(arguments.Request) {
		return fault.ErrMissingParameters
	}

	verifier.Log.Debugf("submit: %d bytes", len(arguments.Request))

	result, err := verifier.Submitter.Submit(arguments.Request)
	if nil != err {
		return err
	}
	reply.Result = result
	return nil
}

// ---

// RecordArguments - the subject of a verification record
type RecordArguments struct {
	Subject account.Account `json:"subject"`
	Network chain.Network   `json:"network"`
}

// RecordReply - the committed verification record
type RecordReply struct {
	Location account.Account     `json:"location"`
	Balance  uint64              `json:"balance"`
	Code     string              `json:"code"`
	Record   record.Verification `json:"record"`
}

// Record - read the verification record of a subject
func (verifier *Verifier) Record(arguments *RecordArguments, reply *RecordReply) error {
	if err := ratelimit.Limit(verifier.Limiter); nil != err {
		return err
	}

	if nil == arguments || arguments.Subject.IsZero() {
		return fault.ErrMissingParameters
	}

	location, _, err := derive.VerificationAddress(arguments.Subject, arguments.Network, verifier.Reader.Owner())
	if nil != err {
		return err
	}

	s, err := verifier.Reader.Committed(location)
	if nil != err {
		return err
	}

	err = reply.Record.Unpack(s.Data)
	if nil != err {
		return err
	}
	reply.Location = location
	reply.Balance = s.Balance
	reply.Code = reply.Record.VerifiedCode.String()
	return nil
}

// ---

// StatusArguments - the user whose status is read
type StatusArguments struct {
	User account.Account `json:"user"`
}

// StatusReply - the committed status slot
type StatusReply struct {
	Location account.Account   `json:"location"`
	Balance  uint64            `json:"balance"`
	Status   record.UserStatus `json:"status"`
}

// Status - read the last status posted to a user
func (verifier *Verifier) Status(arguments *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(verifier.Limiter); nil != err {
		return err
	}

	if nil == arguments || arguments.User.IsZero() {
		return fault.ErrMissingParameters
	}

	location, _, err := derive.UserAddress(arguments.User, verifier.Reader.Owner())
	if nil != err {
		return err
	}

	s, err := verifier.Reader.Committed(location)
	if nil != err {
		return err
	}

	err = reply.Status.Unpack(s.Data)
	if nil != err {
		return err
	}
	reply.Location = location
	reply.Balance = s.Balance
	return nil
}

// ---

// Seed - hex encoded derivation seed
type Seed []byte

// MarshalText - seed to hex
func (seed Seed) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(seed)))
	hex.Encode(buffer, seed)
	return buffer, nil
}

// UnmarshalText - seed from hex
func (seed *Seed) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	*seed = buffer[:n]
	return nil
}

// DeriveArguments - seeds without bump
type DeriveArguments struct {
	Seeds []Seed `json:"seeds"`
}

// DeriveReply - the canonical location under the ledger namespace
type DeriveReply struct {
	Namespace account.Account `json:"namespace"`
	Address   account.Account `json:"address"`
	Bump      uint8           `json:"bump"`
}

// Derive - find the canonical location for a set of seeds
func (verifier *Verifier) Derive(arguments *DeriveArguments, reply *DeriveReply) error {
	if err := ratelimit.Limit(verifier.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	seeds := make([][]byte, len(arguments.Seeds))
	for i, s := range arguments.Seeds {
		seeds[i] = s
	}

	namespace := verifier.Reader.Owner()
	address, bump, err := derive.FindAddress(seeds, namespace)
	if nil != err {
		return err
	}
	reply.Namespace = namespace
	reply.Address = address
	reply.Bump = bump
	return nil
}

// ---

// ListArguments - page through committed slots
type ListArguments struct {
	Start account.Account `json:"start"`
	Count int             `json:"count"`
}

// SlotInfo - summary of one slot
type SlotInfo struct {
	Location account.Account `json:"location"`
	Balance  uint64          `json:"balance"`
	Size     int             `json:"size"`
	Kind     string          `json:"kind"`
}

// ListReply - one page of slots
type ListReply struct {
	Slots []SlotInfo      `json:"slots"`
	Next  account.Account `json:"next"`
}

// List - committed slots in location order
func (verifier *Verifier) List(arguments *ListArguments, reply *ListReply) error {
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	if err := ratelimit.LimitN(verifier.Limiter, arguments.Count, maximumListCount); nil != err {
		return err
	}

	listings, next, err := verifier.Reader.List(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Slots = make([]SlotInfo, len(listings))
	for i, l := range listings {
		reply.Slots[i] = SlotInfo{
			Location: l.Location,
			Balance:  l.Slot.Balance,
			Size:     len(l.Slot.Data),
			Kind:     kindOf(len(l.Slot.Data)),
		}
	}
	reply.Next = next
	return nil
}

func kindOf(size int) string {
	switch size {
	case record.VerificationSize:
		return "verification"
	case record.UserStatusSize:
		return "status"
	default:
		return "unknown"
	}
}
