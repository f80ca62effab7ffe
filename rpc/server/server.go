// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/counter"
	"github.com/bitmark-inc/verifierd/rpc/node"
	"github.com/bitmark-inc/verifierd/rpc/verifier"
)

// Services - what the RPC methods operate on
type Services struct {
	Submitter verifier.Submitter
	Reader    verifier.Reader
	Namespace account.Account
	Verifier  account.Account
}

// Create - an RPC server with all services registered
func Create(log *logger.L, version string, chain string, rpcCount *counter.Counter, services Services) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(verifier.New(log, services.Submitter, services.Reader))
	_ = server.Register(node.New(log, start, version, chain, services.Namespace, services.Verifier, rpcCount))

	return server
}
