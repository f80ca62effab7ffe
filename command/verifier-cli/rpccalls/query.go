// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/chain"
	"github.com/bitmark-inc/verifierd/rpc/verifier"
)

// GetRecord - fetch the verification record of a subject
func (client *Client) GetRecord(subject account.Account, network chain.Network) (*verifier.RecordReply, error) {

	args := verifier.RecordArguments{
		Subject: subject,
		Network: network,
	}

	client.printJson("Record Request", args)

	var reply verifier.RecordReply
	if err := client.client.Call("Verifier.Record", &args, &reply); err != nil {
		return nil, err
	}

	client.printJson("Record Reply", reply)

	return &reply, nil
}

// GetStatus - fetch the status slot of a user
func (client *Client) GetStatus(user account.Account) (*verifier.StatusReply, error) {

	args := verifier.StatusArguments{
		User: user,
	}

	client.printJson("Status Request", args)

	var reply verifier.StatusReply
	if err := client.client.Call("Verifier.Status", &args, &reply); err != nil {
		return nil, err
	}

	client.printJson("Status Reply", reply)

	return &reply, nil
}

// Derive - ask the daemon for the location of a set of seeds
func (client *Client) Derive(seeds [][]byte) (*verifier.DeriveReply, error) {

	args := verifier.DeriveArguments{
		Seeds: make([]verifier.Seed, len(seeds)),
	}
	for i, s := range seeds {
		args.Seeds[i] = verifier.Seed(s)
	}

	client.printJson("Derive Request", args)

	var reply verifier.DeriveReply
	if err := client.client.Call("Verifier.Derive", &args, &reply); err != nil {
		return nil, err
	}

	client.printJson("Derive Reply", reply)

	return &reply, nil
}

// List - page through the slots owned by the daemon's namespace
func (client *Client) List(start account.Account, count int) (*verifier.ListReply, error) {

	args := verifier.ListArguments{
		Start: start,
		Count: count,
	}

	client.printJson("List Request", args)

	var reply verifier.ListReply
	if err := client.client.Call("Verifier.List", &args, &reply); err != nil {
		return nil, err
	}

	client.printJson("List Reply", reply)

	return &reply, nil
}
