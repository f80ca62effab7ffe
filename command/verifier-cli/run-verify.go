// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func runVerify(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	subject, err := accountFromFlag("subject", c.String("subject"))
	if nil != err {
		return err
	}
	network, err := networkFromFlag(c.String("network"))
	if nil != err {
		return err
	}
	testAddress, err := accountFromFlag("test-address", c.String("test-address"))
	if nil != err {
		return err
	}
	user, err := accountFromFlag("user", c.String("user"))
	if nil != err {
		return err
	}

	deployed, err := readDump("deployed", c.String("deployed"))
	if nil != err {
		return err
	}
	built, err := readDump("built", c.String("built"))
	if nil != err {
		return err
	}

	key, err := m.signingKey()
	if nil != err {
		return err
	}

	client, namespace, err := m.client()
	if nil != err {
		return err
	}
	defer client.Close()

	envelope, err := makeVerification(namespace, verificationData{
		subject:      subject,
		network:      network,
		testAddress:  testAddress,
		user:         user,
		deployed:     deployed,
		built:        built,
		observedSlot: c.Uint64("observed-slot"),
	})
	if nil != err {
		return err
	}

	result, err := client.Submit(envelope, key)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "Result:\n")
	}
	printJson(m.w, result)
	return nil
}

func readDump(name string, fileName string) ([]byte, error) {
	if "" == fileName {
		return nil, fmt.Errorf("missing --%s", name)
	}
	return os.ReadFile(fileName)
}
