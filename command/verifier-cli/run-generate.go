// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/verifierd/account"
)

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := account.NewPrivateKey(nil)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "generated: %s\n", key.Account())
	}

	output := struct {
		Account    account.Account     `json:"account"`
		PrivateKey *account.PrivateKey `json:"private_key"`
	}{
		Account:    key.Account(),
		PrivateKey: key,
	}
	printJson(m.w, output)
	return nil
}
