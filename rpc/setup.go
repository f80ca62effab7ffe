// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net"
	"os"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/verifierd/background"
	"github.com/bitmark-inc/verifierd/counter"
	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/rpc/certificate"
	"github.com/bitmark-inc/verifierd/rpc/listeners"
	"github.com/bitmark-inc/verifierd/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listener   *listeners.RPCListener
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// connections currently served
var connectionCountRPC counter.Counter

// Initialise - start the RPC listeners
//
// certificate and private key in the configuration are PEM file names
func Initialise(configuration *listeners.RPCConfiguration, version string, chain string, services server.Services) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	certificatePEM, err := os.ReadFile(configuration.Certificate)
	if nil != err {
		log.Errorf("read certificate: %q  error: %s", configuration.Certificate, err)
		return err
	}
	keyPEM, err := os.ReadFile(configuration.PrivateKey)
	if nil != err {
		log.Errorf("read private key: %q  error: %s", configuration.PrivateKey, err)
		return err
	}

	tlsConfig, fingerprint, err := certificate.Get(log, tlsName, string(certificatePEM), string(keyPEM))
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		configuration,
		log,
		&connectionCountRPC,
		server.Create(log, version, chain, &connectionCountRPC, services),
		tlsConfig,
		fingerprint,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		return err
	}

	globalData.listener = rpcListener
	globalData.background = background.Start(background.Processes{rpcListener}, nil)

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all listeners
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.background.Stop()
	globalData.listener = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Addresses - the bound RPC addresses
func Addresses() []net.Addr {
	globalData.RLock()
	defer globalData.RUnlock()

	if nil == globalData.listener {
		return nil
	}
	return globalData.listener.Addresses()
}
