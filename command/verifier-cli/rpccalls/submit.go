// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/processor"
	"github.com/bitmark-inc/verifierd/request"
	"github.com/bitmark-inc/verifierd/rpc/verifier"
)

// Submit - sign an envelope with key and send it
func (client *Client) Submit(envelope *request.Envelope, key *account.PrivateKey) (*processor.Result, error) {

	packed, err := envelope.Sign(key)
	if nil != err {
		return nil, err
	}

	client.printJson("Submit Request", envelope)

	args := verifier.SubmitArguments{
		Request: packed,
	}

	var reply verifier.SubmitReply
	if err := client.client.Call("Verifier.Submit", &args, &reply); err != nil {
		return nil, err
	}

	client.printJson("Submit Reply", reply)

	return reply.Result, nil
}
