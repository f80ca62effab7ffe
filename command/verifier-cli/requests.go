// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strings"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/chain"
	"github.com/bitmark-inc/verifierd/derive"
	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/integrity"
	"github.com/bitmark-inc/verifierd/programdata"
	"github.com/bitmark-inc/verifierd/request"
)

// registerData - what a register request needs
type registerData struct {
	subject    account.Account
	network    chain.Network
	user       account.Account // the signer
	provenance request.Provenance
}

// verificationData - what a verify request needs
type verificationData struct {
	subject      account.Account
	network      chain.Network
	testAddress  account.Account
	user         account.Account
	deployed     []byte // program data dump of the subject
	built        []byte // program data dump of the rebuilt program
	observedSlot uint64
}

// build an unsigned register request
func makeRegister(namespace account.Account, data registerData) (*request.Envelope, error) {

	recordLocation, _, err := derive.VerificationAddress(data.subject, data.network, namespace)
	if nil != err {
		return nil, err
	}
	userLocation, _, err := derive.UserAddress(data.user, namespace)
	if nil != err {
		return nil, err
	}

	envelope := &request.Envelope{
		Accounts: []account.Account{recordLocation, userLocation},
		Instruction: &request.RegisterSubject{
			Subject:    data.subject,
			Network:    data.network,
			Provenance: data.provenance,
		},
	}
	return envelope, nil
}

// compare the two dumps and build an unsigned verification request
//
// mutability and redeploy slot come from the subject's header
func makeVerification(namespace account.Account, data verificationData) (*request.Envelope, error) {

	if 0 == data.observedSlot {
		return nil, ErrMissingObservation
	}

	header, deployedCode, err := programdata.Parse(data.deployed)
	if nil != err {
		return nil, err
	}
	_, builtCode, err := programdata.Parse(data.built)
	if nil != err {
		return nil, err
	}

	verified, digest := integrity.Compare(deployedCode, builtCode)

	recordLocation, _, err := derive.VerificationAddress(data.subject, data.network, namespace)
	if nil != err {
		return nil, err
	}
	userLocation, _, err := derive.UserAddress(data.user, namespace)
	if nil != err {
		return nil, err
	}

	envelope := &request.Envelope{
		Accounts: []account.Account{recordLocation, data.subject, data.testAddress, userLocation},
		Instruction: &request.RecordVerification{
			Subject:      data.subject,
			Network:      data.network,
			TestAddress:  data.testAddress,
			User:         data.user,
			Verified:     verified,
			Mutable:      header.Mutable(),
			DataHash:     digest,
			RedeploySlot: header.Slot,
			ObservedSlot: data.observedSlot,
		},
	}
	return envelope, nil
}

// build an unsigned status update
func makePostStatus(namespace account.Account, user account.Account, code uint, message string) (*request.Envelope, error) {

	if code > 255 {
		return nil, ErrStatusCode
	}

	userLocation, _, err := derive.UserAddress(user, namespace)
	if nil != err {
		return nil, err
	}

	envelope := &request.Envelope{
		Accounts: []account.Account{userLocation},
		Instruction: &request.PostStatus{
			User:       user,
			StatusCode: uint8(code),
			Message:    message,
		},
	}
	return envelope, nil
}

// decode a required base58 identity flag
func accountFromFlag(name string, value string) (account.Account, error) {
	if "" == value {
		return account.Account{}, fault.InvalidError("missing --" + name)
	}
	return account.FromBase58(value)
}

func networkFromFlag(value string) (chain.Network, error) {
	network := chain.FromName(value)
	if !network.Valid() {
		return chain.Invalid, fault.ErrInvalidNetwork
	}
	return network, nil
}

// the signing key from --key or the first line of --key-file
func (m *metadata) signingKey() (*account.PrivateKey, error) {
	text := m.keyText
	if "" != m.keyFile {
		b, err := os.ReadFile(m.keyFile)
		if nil != err {
			return nil, err
		}
		text = strings.TrimSpace(string(b))
	}
	if "" == text {
		return nil, ErrMissingKey
	}
	return account.PrivateKeyFromBase58(text)
}
