// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/verifierd/request"
)

func runRegister(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	subject, err := accountFromFlag("subject", c.String("subject"))
	if nil != err {
		return err
	}
	network, err := networkFromFlag(c.String("network"))
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

	envelope, err := makeRegister(namespace, registerData{
		subject: subject,
		network: network,
		user:    key.Account(),
		provenance: request.Provenance{
			GitRepo:       c.String("repo"),
			GitCommit:     c.String("commit"),
			Directory:     c.String("directory"),
			DockerVersion: c.String("docker-version"),
			RustVersion:   c.String("rust-version"),
			SolanaVersion: c.String("solana-version"),
			AnchorVersion: c.String("anchor-version"),
		},
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
