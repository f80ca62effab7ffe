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

func runRecord(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	subject, err := accountFromFlag("subject", c.String("subject"))
	if nil != err {
		return err
	}
	network, err := networkFromFlag(c.String("network"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetRecord(subject, network)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	user, err := accountFromFlag("user", c.String("user"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetStatus(user)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	start, err := account.FromBase58(c.String("start"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.List(start, c.Int("count"))
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
