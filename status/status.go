// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package status - decide whether a new verification result may
// replace the stored one
//
// a confirmed immutable result is never downgraded by a failing check,
// and a confirmed mutable result is only downgraded if the program was
// redeployed at or after the slot of the last verification
package status

import (
	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/integrity"
	"github.com/bitmark-inc/verifierd/record"
)

// Kind - the decision for one attempt
type Kind int

// decisions
const (
	Accept Kind = iota
	RejectStale
	RejectImmutable
)

// reason codes posted to the user status slot
const (
	ReasonFailed            uint8 = 1
	ReasonVerifiedMutable   uint8 = 2
	ReasonVerifiedImmutable uint8 = 3
	ReasonImmutable         uint8 = 109
	ReasonStale             uint8 = 110
)

// Attempt - the facts of one verification run
type Attempt struct {
	Verified     bool   // bytecode digests matched
	Mutable      bool   // program still has an upgrade authority
	RedeploySlot uint64 // slot of the most recent deployment
	ObservedSlot uint64 // chain slot when the comparison was made
}

// Outcome - result of Decide
type Outcome struct {
	Kind   Kind
	Code   record.Code // code to store, only meaningful on Accept
	Reason uint8
}

// Decide - apply the anti-regression rules to an attempt
func Decide(current record.Verification, attempt Attempt) Outcome {
	if record.VerifiedImmutable == current.VerifiedCode && !attempt.Verified {
		return Outcome{
			Kind:   RejectImmutable,
			Code:   current.VerifiedCode,
			Reason: ReasonImmutable,
		}
	}

	if record.VerifiedMutable == current.VerifiedCode &&
		attempt.RedeploySlot < current.LastVerifiedSlot &&
		!attempt.Verified {
		return Outcome{
			Kind:   RejectStale,
			Code:   current.VerifiedCode,
			Reason: ReasonStale,
		}
	}

	code := record.Failed
	switch {
	case !attempt.Verified:
	case attempt.Mutable:
		code = record.VerifiedMutable
	default:
		code = record.VerifiedImmutable
	}
	return Outcome{
		Kind:   Accept,
		Code:   code,
		Reason: uint8(code),
	}
}

// Accepted - true if the record is to be rewritten
func (o Outcome) Accepted() bool {
	return Accept == o.Kind
}

// Apply - write an accepted result into the record
//
// returns false and leaves the record untouched for a rejection
func (o Outcome) Apply(rec *record.Verification, test account.Account, hash integrity.Digest, attempt Attempt) bool {
	if !o.Accepted() {
		return false
	}
	rec.TestAddress = test
	rec.LastVerifiedSlot = attempt.ObservedSlot
	rec.VerifiedCode = o.Code
	rec.DataHash = hash
	return true
}

// Message - user facing status text for the subject
func (o Outcome) Message(subject account.Account) string {
	prefix := "Program " + subject.String() + " : "
	text := ""
	switch o.Kind {
	case RejectImmutable:
		text = "program already verified and immutable but new verification fails.  Not updating state."
	case RejectStale:
		text = "program already verified and not updated since last verification but new verification fails.  Not updating state."
	default:
		switch o.Code {
		case record.VerifiedMutable:
			text = "Verification was successful, however the program is upgradable"
		case record.VerifiedImmutable:
			text = "Verification was successful, and program is immutable"
		default:
			text = "Verification process has not produced a match"
		}
	}
	return record.BoundMessage(prefix + text)
}

// String - name of the decision
func (k Kind) String() string {
	switch k {
	case Accept:
		return "accept"
	case RejectStale:
		return "reject-stale"
	case RejectImmutable:
		return "reject-immutable"
	default:
		return "unknown"
	}
}
