// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/derive"
	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/record"
	"github.com/bitmark-inc/verifierd/request"
	"github.com/bitmark-inc/verifierd/status"
	"github.com/bitmark-inc/verifierd/storage"
)

// positional accounts of each instruction
const (
	registerRecordIndex = 0
	registerStatusIndex = 1
	registerAccounts    = 2

	verifyRecordIndex  = 0
	verifySubjectIndex = 1
	verifyTestIndex    = 2
	verifyStatusIndex  = 3
	verifyAccounts     = 4

	postStatusIndex = 0
	postAccounts    = 1
)

// signals a rejected attempt from inside the record update
type rejected struct{}

func (rejected) Error() string { return "rejected" }

// register - ensure the subject's record and the signer's status slot exist
func (p *Processor) register(trx storage.Transaction, envelope *request.Envelope, tx *request.RegisterSubject) (*Result, error) {
	if registerAccounts != len(envelope.Accounts) {
		return nil, fault.ErrInvalidAccountCount
	}
	if envelope.Signer.IsZero() {
		return nil, fault.ErrMissingAuthorization
	}

	namespace := p.ledger.Owner()

	recordSeeds, err := derive.VerificationSeeds(tx.Subject, tx.Network)
	if nil != err {
		return nil, err
	}
	recordLocation, recordBump, err := bind(envelope.Accounts[registerRecordIndex], recordSeeds, namespace)
	if nil != err {
		return nil, err
	}

	userSeeds := derive.UserSeeds(envelope.Signer)
	userLocation, userBump, err := bind(envelope.Accounts[registerStatusIndex], userSeeds, namespace)
	if nil != err {
		return nil, err
	}

	result := &Result{
		Kind: tx.Tag(),
	}

	created, err := p.ledger.EnsureAllocated(trx, recordLocation, record.VerificationSize, envelope.Signer, recordSeeds, recordBump)
	if nil != err {
		return nil, err
	}
	if created {
		result.Allocated = append(result.Allocated, recordLocation)
	}

	created, err = p.ledger.EnsureAllocated(trx, userLocation, record.UserStatusSize, envelope.Signer, userSeeds, userBump)
	if nil != err {
		return nil, err
	}
	if created {
		result.Allocated = append(result.Allocated, userLocation)
	}

	pv := tx.Provenance
	p.log.Infof("register: subject: %s  network: %s  user: %s", tx.Subject, tx.Network, envelope.Signer)
	p.log.Debugf("provenance: repo: %q  commit: %q  directory: %q", pv.GitRepo, pv.GitCommit, pv.Directory)
	p.log.Debugf("provenance: docker: %q  rust: %q  solana: %q  anchor: %q", pv.DockerVersion, pv.RustVersion, pv.SolanaVersion, pv.AnchorVersion)

	return result, nil
}

// recordVerification - apply the anti-regression rules and notify the user
func (p *Processor) recordVerification(trx storage.Transaction, envelope *request.Envelope, tx *request.RecordVerification) (*Result, error) {
	if envelope.Signer != p.verifier {
		return nil, fault.ErrMissingAuthorization
	}
	if verifyAccounts != len(envelope.Accounts) {
		return nil, fault.ErrInvalidAccountCount
	}
	if envelope.Accounts[verifySubjectIndex] != tx.Subject || envelope.Accounts[verifyTestIndex] != tx.TestAddress {
		return nil, fault.ErrInvalidAccountBinding
	}

	namespace := p.ledger.Owner()

	recordSeeds, err := derive.VerificationSeeds(tx.Subject, tx.Network)
	if nil != err {
		return nil, err
	}
	recordLocation, _, err := bind(envelope.Accounts[verifyRecordIndex], recordSeeds, namespace)
	if nil != err {
		return nil, err
	}
	userLocation, _, err := bind(envelope.Accounts[verifyStatusIndex], derive.UserSeeds(tx.User), namespace)
	if nil != err {
		return nil, err
	}

	// the user must be reachable before anything is decided
	if !p.ledger.Exists(trx, userLocation) {
		return nil, fault.ErrUninitializedTarget
	}

	attempt := status.Attempt{
		Verified:     tx.Verified,
		Mutable:      tx.Mutable,
		RedeploySlot: tx.RedeploySlot,
		ObservedSlot: tx.ObservedSlot,
	}

	var outcome status.Outcome
	var rec record.Verification
	err = p.ledger.ReadModifyWrite(trx, recordLocation, &rec, func() error {
		outcome = status.Decide(rec, attempt)
		if !outcome.Apply(&rec, tx.TestAddress, tx.DataHash, attempt) {
			return rejected{}
		}
		return nil
	})
	if _, ok := err.(rejected); ok {
		err = nil
	}
	if nil != err {
		return nil, err
	}

	userStatus := record.UserStatus{}
	err = p.ledger.ReadModifyWrite(trx, userLocation, &userStatus, func() error {
		userStatus.StatusCode = outcome.Reason
		userStatus.Message = outcome.Message(tx.Subject)
		return nil
	})
	if nil != err {
		return nil, err
	}

	p.log.Infof("verify: subject: %s  network: %s  outcome: %s  code: %s  reason: %d", tx.Subject, tx.Network, outcome.Kind, rec.VerifiedCode, outcome.Reason)

	return &Result{
		Kind:       tx.Tag(),
		Outcome:    outcome.Kind.String(),
		ReasonCode: outcome.Reason,
		Record:     &rec,
		Status:     &userStatus,
	}, nil
}

// postStatus - overwrite a user's status slot
func (p *Processor) postStatus(trx storage.Transaction, envelope *request.Envelope, tx *request.PostStatus) (*Result, error) {
	if envelope.Signer != p.verifier {
		return nil, fault.ErrMissingAuthorization
	}
	if postAccounts != len(envelope.Accounts) {
		return nil, fault.ErrInvalidAccountCount
	}
	if len(tx.Message) > record.MaxMessageLength {
		return nil, fault.ErrMessageTooLong
	}

	userLocation, _, err := bind(envelope.Accounts[postStatusIndex], derive.UserSeeds(tx.User), p.ledger.Owner())
	if nil != err {
		return nil, err
	}

	userStatus := record.UserStatus{}
	err = p.ledger.ReadModifyWrite(trx, userLocation, &userStatus, func() error {
		userStatus.StatusCode = tx.StatusCode
		userStatus.Message = tx.Message
		return nil
	})
	if nil != err {
		return nil, err
	}

	p.log.Infof("status: user: %s  code: %d", tx.User, tx.StatusCode)

	return &Result{
		Kind:       tx.Tag(),
		ReasonCode: tx.StatusCode,
		Status:     &userStatus,
	}, nil
}

// bind - check a supplied account is the location derived from seeds
func bind(supplied account.Account, seeds [][]byte, namespace account.Account) (account.Account, uint8, error) {
	location, bump, err := derive.FindAddress(seeds, namespace)
	if nil != err {
		return account.Account{}, 0, err
	}
	if supplied != location {
		return account.Account{}, 0, fault.ErrInvalidAccountBinding
	}
	return location, bump, nil
}
