// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runUpdateStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	user, err := accountFromFlag("user", c.String("user"))
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

	envelope, err := makePostStatus(namespace, user, c.Uint("code"), c.String("message"))
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
