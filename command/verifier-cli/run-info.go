// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/command/verifier-cli/rpccalls"
)

// connect and fetch the owning namespace from the daemon
func (m *metadata) client() (*rpccalls.Client, account.Account, error) {

	client, err := rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
	if nil != err {
		return nil, account.Account{}, err
	}

	info, err := client.GetInfo()
	if nil != err {
		client.Close()
		return nil, account.Account{}, err
	}
	return client, info.Namespace, nil
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetInfo()
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
