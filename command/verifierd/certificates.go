// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"time"

	"github.com/bitmark-inc/certgen"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/util"
)

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) error {

	if util.EnsureFileExists(certificateFileName) {
		return fault.ErrCertificateFileExists
	}

	if util.EnsureFileExists(privateKeyFileName) {
		return fault.ErrKeyFileExists
	}

	org := "verifierd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if err != nil {
		return err
	}

	if err = os.WriteFile(certificateFileName, cert, 0666); err != nil {
		return err
	}

	if err = os.WriteFile(privateKeyFileName, key, 0600); err != nil {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

// create an identity key, returns the public identity
func makeIdentityKey(privateKeyFileName string) (account.Account, error) {

	if util.EnsureFileExists(privateKeyFileName) {
		return account.Account{}, fault.ErrKeyFileExists
	}

	key, err := account.NewPrivateKey(nil)
	if nil != err {
		return account.Account{}, err
	}

	if err = os.WriteFile(privateKeyFileName, []byte(key.String()+"\n"), 0600); err != nil {
		os.Remove(privateKeyFileName)
		return account.Account{}, err
	}

	return key.Account(), nil
}
