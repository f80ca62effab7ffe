// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/derive"
)

type location struct {
	Address account.Account `json:"address"`
	Bump    uint8           `json:"bump"`
}

type addressReply struct {
	Namespace account.Account `json:"namespace"`
	Record    *location       `json:"record,omitempty"`
	Status    *location       `json:"status,omitempty"`
}

func runAddress(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	subject := c.String("subject")
	user := c.String("user")
	if "" == subject && "" == user {
		return ErrMissingSubject
	}

	var namespace account.Account
	if s := c.String("namespace"); "" != s {
		n, err := account.FromBase58(s)
		if nil != err {
			return err
		}
		namespace = n
	} else {
		client, n, err := m.client()
		if nil != err {
			return err
		}
		client.Close()
		namespace = n
	}

	reply := addressReply{
		Namespace: namespace,
	}

	if "" != subject {
		s, err := account.FromBase58(subject)
		if nil != err {
			return err
		}
		network, err := networkFromFlag(c.String("network"))
		if nil != err {
			return err
		}
		a, bump, err := derive.VerificationAddress(s, network, namespace)
		if nil != err {
			return err
		}
		reply.Record = &location{Address: a, Bump: bump}
	}

	if "" != user {
		u, err := account.FromBase58(user)
		if nil != err {
			return err
		}
		a, bump, err := derive.UserAddress(u, namespace)
		if nil != err {
			return err
		}
		reply.Status = &location{Address: a, Bump: bump}
	}

	printJson(m.w, reply)
	return nil
}
