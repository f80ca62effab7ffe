// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package processor - apply authenticated requests to the ledger
//
// every request runs in a single storage transaction: it either
// commits completely or leaves the ledger unchanged
package processor

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/ledger"
	"github.com/bitmark-inc/verifierd/record"
	"github.com/bitmark-inc/verifierd/request"
	"github.com/bitmark-inc/verifierd/storage"
)

// TransactionFactory - start a storage transaction
type TransactionFactory func() (storage.Transaction, error)

// Processor - request dispatcher for one namespace
type Processor struct {
	log      *logger.L
	verifier account.Account
	ledger   *ledger.Ledger
	begin    TransactionFactory
}

// Result - what a successful request did
type Result struct {
	Kind       request.TagType      `json:"kind"`
	Allocated  []account.Account    `json:"allocated,omitempty"`
	Outcome    string               `json:"outcome,omitempty"`
	ReasonCode uint8                `json:"reasonCode,omitempty"`
	Record     *record.Verification `json:"record,omitempty"`
	Status     *record.UserStatus   `json:"status,omitempty"`
}

// New - create a processor
//
// verifier is the only identity allowed to record results and post
// status updates
func New(verifier account.Account, l *ledger.Ledger, begin TransactionFactory) *Processor {
	return &Processor{
		log:      logger.New("processor"),
		verifier: verifier,
		ledger:   l,
		begin:    begin,
	}
}

// Verifier - the authorised verifier identity
func (p *Processor) Verifier() account.Account {
	return p.verifier
}

// Namespace - the owner of all slots
func (p *Processor) Namespace() account.Account {
	return p.ledger.Owner()
}

// Process - run one request whose signer is already authenticated
func (p *Processor) Process(envelope *request.Envelope) (*Result, error) {
	trx, err := p.begin()
	if nil != err {
		return nil, err
	}

	var result *Result
	switch tx := envelope.Instruction.(type) {
	case *request.RegisterSubject:
		result, err = p.register(trx, envelope, tx)
	case *request.RecordVerification:
		result, err = p.recordVerification(trx, envelope, tx)
	case *request.PostStatus:
		result, err = p.postStatus(trx, envelope, tx)
	default:
		err = fault.ErrInvalidInstruction
	}

	if nil != err {
		trx.Abort()
		p.log.Warnf("signer: %s  instruction: %T  error: %s", envelope.Signer, envelope.Instruction, err)
		return nil, err
	}

	err = trx.Commit()
	if nil != err {
		p.log.Errorf("commit error: %s", err)
		return nil, err
	}
	return result, nil
}

// Submit - authenticate a packed request and run it
func (p *Processor) Submit(packed request.Packed) (*Result, error) {
	envelope, err := packed.Unpack()
	if nil != err {
		return nil, err
	}
	return p.Process(envelope)
}
