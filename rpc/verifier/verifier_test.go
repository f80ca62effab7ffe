// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verifier_test

import (
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/chain"
	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/ledger"
	"github.com/bitmark-inc/verifierd/processor"
	"github.com/bitmark-inc/verifierd/record"
	"github.com/bitmark-inc/verifierd/request"
	"github.com/bitmark-inc/verifierd/rpc/fixtures"
	"github.com/bitmark-inc/verifierd/rpc/mocks"
	"github.com/bitmark-inc/verifierd/rpc/verifier"
	"github.com/bitmark-inc/verifierd/status"
)

func mustAccount(s string) account.Account {
	a, err := account.FromBase58(s)
	if nil != err {
		panic(err)
	}
	return a
}

var (
	namespace = account.Account{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
		0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
		0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f,
	}
	subject        = mustAccount("FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z")
	recordLocation = mustAccount("7YdnMTi7bHRS3bNqBfN9huhmprEcQaxyXjYTK2a7Ybwp")
	userLocation   = mustAccount("83fTdNo5GnExkFomJZHe6AfovaSQRXWayDSZZ8HZkhey")
)

func newVerifier(t *testing.T) (*verifier.Verifier, *mocks.MockSubmitter, *mocks.MockReader, *gomock.Controller) {
	ctl := gomock.NewController(t)
	s := mocks.NewMockSubmitter(ctl)
	r := mocks.NewMockReader(ctl)
	return verifier.New(logger.New(fixtures.LogCategory), s, r), s, r, ctl
}

func TestSubmit(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, s, _, ctl := newVerifier(t)
	defer ctl.Finish()

	packed := request.Packed{1, 2, 3}
	expected := &processor.Result{
		Kind:       request.RecordVerificationTag,
		Outcome:    status.RejectImmutable.String(),
		ReasonCode: status.ReasonImmutable,
	}
	s.EXPECT().Submit(packed).Return(expected, nil).Times(1)

	var reply verifier.SubmitReply
	err := v.Submit(&verifier.SubmitArguments{Request: packed}, &reply)
	assert.Nil(t, err, "wrong Submit")
	assert.Equal(t, expected, reply.Result, "wrong result")
}

func TestSubmitError(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, s, _, ctl := newVerifier(t)
	defer ctl.Finish()

	s.EXPECT().Submit(gomock.Any()).Return(nil, fault.ErrInvalidSignature).Times(1)

	var reply verifier.SubmitReply
	err := v.Submit(&verifier.SubmitArguments{Request: request.Packed{9}}, &reply)
	assert.Equal(t, fault.ErrInvalidSignature, err, "wrong error")
	assert.Nil(t, reply.Result, "result on error")

	err = v.Submit(&verifier.SubmitArguments{}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "empty request")
}

func TestSubmitArgumentsJSON(t *testing.T) {
	var arguments verifier.SubmitArguments
	err := json.Unmarshal([]byte(`{"request":"0a0b0c"}`), &arguments)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, request.Packed{0x0a, 0x0b, 0x0c}, arguments.Request, "wrong request bytes")
}

func TestRecord(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _, r, ctl := newVerifier(t)
	defer ctl.Finish()

	rec := record.Verification{
		TestAddress:      account.Account{7},
		LastVerifiedSlot: 1234,
		VerifiedCode:     record.VerifiedImmutable,
	}
	slot := &ledger.Slot{
		Balance: 99,
		Owner:   namespace,
		Data:    rec.Pack(),
	}

	r.EXPECT().Owner().Return(namespace).Times(1)
	r.EXPECT().Committed(recordLocation).Return(slot, nil).Times(1)

	var reply verifier.RecordReply
	err := v.Record(&verifier.RecordArguments{Subject: subject, Network: chain.DevNet}, &reply)
	assert.Nil(t, err, "wrong Record")
	assert.Equal(t, recordLocation, reply.Location, "wrong location")
	assert.Equal(t, uint64(99), reply.Balance, "wrong balance")
	assert.Equal(t, "verified-immutable", reply.Code, "wrong code")
	assert.Equal(t, rec.LastVerifiedSlot, reply.Record.LastVerifiedSlot, "wrong slot")
	assert.Equal(t, rec.TestAddress, reply.Record.TestAddress, "wrong test address")
}

func TestRecordMissing(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _, r, ctl := newVerifier(t)
	defer ctl.Finish()

	r.EXPECT().Owner().Return(namespace).Times(1)
	r.EXPECT().Committed(gomock.Any()).Return(nil, fault.ErrUninitializedTarget).Times(1)

	var reply verifier.RecordReply
	err := v.Record(&verifier.RecordArguments{Subject: subject, Network: chain.MainNet}, &reply)
	assert.Equal(t, fault.ErrUninitializedTarget, err, "wrong error")

	err = v.Record(&verifier.RecordArguments{}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "zero subject")
}

func TestStatus(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _, r, ctl := newVerifier(t)
	defer ctl.Finish()

	data := make([]byte, record.UserStatusSize)
	u := record.UserStatus{StatusCode: status.ReasonStale, Message: "not updating"}
	assert.Nil(t, u.PackInto(data), "pack")

	r.EXPECT().Owner().Return(namespace).Times(1)
	r.EXPECT().Committed(userLocation).Return(&ledger.Slot{Balance: 1, Owner: namespace, Data: data}, nil).Times(1)

	var reply verifier.StatusReply
	err := v.Status(&verifier.StatusArguments{User: subject}, &reply)
	assert.Nil(t, err, "wrong Status")
	assert.Equal(t, userLocation, reply.Location, "wrong location")
	assert.Equal(t, u, reply.Status, "wrong status")
}

func TestDerive(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _, r, ctl := newVerifier(t)
	defer ctl.Finish()

	loader := mustAccount("BPFLoader1111111111111111111111111111111111")
	r.EXPECT().Owner().Return(loader).Times(1)

	var arguments verifier.DeriveArguments
	err := json.Unmarshal([]byte(`{"seeds":[""]}`), &arguments)
	assert.Nil(t, err, "unmarshal")

	var reply verifier.DeriveReply
	err = v.Derive(&arguments, &reply)
	assert.Nil(t, err, "wrong Derive")
	assert.Equal(t, "EXWkUCz3YJU9TDVk39ogA4TwoVsUi75ZDhH6yT7acPgQ", reply.Address.String(), "wrong address")
	assert.Equal(t, uint8(255), reply.Bump, "wrong bump")
	assert.Equal(t, loader, reply.Namespace, "wrong namespace")
}

func TestDeriveTooManySeeds(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _, r, ctl := newVerifier(t)
	defer ctl.Finish()

	r.EXPECT().Owner().Return(namespace).Times(1)

	arguments := verifier.DeriveArguments{
		Seeds: make([]verifier.Seed, 16),
	}
	var reply verifier.DeriveReply
	err := v.Derive(&arguments, &reply)
	assert.Equal(t, fault.ErrTooManySeeds, err, "wrong error")
}

func TestList(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _, r, ctl := newVerifier(t)
	defer ctl.Finish()

	last := account.Account{0x10, 0xff}
	listings := []ledger.Listing{
		{
			Location: account.Account{0x01},
			Slot:     &ledger.Slot{Balance: 5, Owner: namespace, Data: make([]byte, record.VerificationSize)},
		},
		{
			Location: last,
			Slot:     &ledger.Slot{Balance: 6, Owner: namespace, Data: make([]byte, record.UserStatusSize)},
		},
	}
	next := last
	next[31] = 1
	r.EXPECT().List(account.Account{}, 2).Return(listings, next, nil).Times(1)

	var reply verifier.ListReply
	err := v.List(&verifier.ListArguments{Count: 2}, &reply)
	assert.Nil(t, err, "wrong List")
	assert.Len(t, reply.Slots, 2, "wrong slot count")
	assert.Equal(t, "verification", reply.Slots[0].Kind, "wrong first kind")
	assert.Equal(t, "status", reply.Slots[1].Kind, "wrong second kind")
	assert.Equal(t, uint64(6), reply.Slots[1].Balance, "wrong balance")

	assert.Equal(t, next, reply.Next, "wrong next")

	err = v.List(&verifier.ListArguments{Count: 0}, &reply)
	assert.Equal(t, fault.ErrInvalidCount, err, "zero count")
}

func TestListForeignPage(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	v, _, r, ctl := newVerifier(t)
	defer ctl.Finish()

	start := account.Account{0x01}
	next := account.Account{0x20, 0x01}
	r.EXPECT().List(start, 5).Return([]ledger.Listing{}, next, nil).Times(1)

	var reply verifier.ListReply
	err := v.List(&verifier.ListArguments{Start: start, Count: 5}, &reply)
	assert.Nil(t, err, "wrong List")
	assert.Empty(t, reply.Slots, "wrong slot count")
	assert.Equal(t, next, reply.Next, "page of foreign slots ended the listing")
}
