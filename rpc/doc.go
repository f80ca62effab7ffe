// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - setup and handle all of the incoming JSON RPC requests
// from clients of the verification ledger
//
// standard golang RPC services can be used on the client side to
// access these services:
//
//	Verifier.Submit  run a signed request
//	Verifier.Record  read the verification record of a subject
//	Verifier.Status  read the status slot of a user
//	Verifier.Derive  find a canonical location
//	Verifier.List    page through committed slots
//	Node.Info        daemon details
package rpc
