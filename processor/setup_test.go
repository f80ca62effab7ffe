// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/chain"
	"github.com/bitmark-inc/verifierd/derive"
	"github.com/bitmark-inc/verifierd/ledger"
	"github.com/bitmark-inc/verifierd/processor"
	"github.com/bitmark-inc/verifierd/storage"
)

const (
	testingDirName = "testing"
)

var (
	namespace = account.Account{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
		0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
		0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f,
	}
	subject     = account.Account{0x51, 0x52, 0x53}
	testAddress = account.Account{0x71, 0x72}
)

type fixture struct {
	processor *processor.Processor
	verifier  *account.PrivateKey
	user      *account.PrivateKey
	record    account.Account
	status    account.Account
}

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func key(t *testing.T, fill byte) *account.PrivateKey {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = fill
	}
	k, err := account.PrivateKeyFromSeed(seed)
	if nil != err {
		t.Fatalf("key error: %s", err)
	}
	return k
}

func setup(t *testing.T) *fixture {
	setupTestLogger()
	err := storage.Initialise(filepath.Join(testingDirName, "processor.leveldb"), storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	verifier := key(t, 0x01)
	user := key(t, 0x02)

	recordLocation, _, err := derive.VerificationAddress(subject, chain.DevNet, namespace)
	if nil != err {
		t.Fatalf("derive record error: %s", err)
	}
	statusLocation, _, err := derive.UserAddress(user.Account(), namespace)
	if nil != err {
		t.Fatalf("derive status error: %s", err)
	}

	l := ledger.New(namespace, ledger.DefaultRent, storage.Pool.Slots)
	return &fixture{
		processor: processor.New(verifier.Account(), l, storage.NewDBTransaction),
		verifier:  verifier,
		user:      user,
		record:    recordLocation,
		status:    statusLocation,
	}
}

func teardown() {
	storage.Finalise()
	removeFiles()
}
