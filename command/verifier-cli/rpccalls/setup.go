// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"encoding/hex"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/rpc/certificate"
)

// ErrFingerprintMismatch - server certificate is not the expected one
var ErrFingerprintMismatch = fault.AuthorisationError("certificate fingerprint mismatch")

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a verifierd
//
// the daemon uses a self-signed certificate so the chain is not
// verified, if fingerprint is not empty the SHA3-256 of the server
// certificate must match it
func NewClient(connect string, fingerprint string, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	if "" != fingerprint {
		if err := checkFingerprint(conn, fingerprint); nil != err {
			conn.Close()
			return nil, err
		}
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - shutdown the verifierd connection
func (client *Client) Close() {
	client.client.Close()
	client.conn.Close()
}

func checkFingerprint(conn *tls.Conn, fingerprint string) error {
	expected, err := hex.DecodeString(fingerprint)
	if nil != err {
		return err
	}
	certificates := conn.ConnectionState().PeerCertificates
	if 0 == len(certificates) {
		return ErrFingerprintMismatch
	}
	actual := certificate.Fingerprint(certificates[0].Raw)
	if string(actual[:]) != string(expected) {
		return ErrFingerprintMismatch
	}
	return nil
}
