// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - the target networks a program can be verified on
package chain

import (
	"strings"

	"github.com/bitmark-inc/verifierd/fault"
)

// Network - target network of a verification record
type Network uint8

// known networks, the numeric values are the wire encoding
const (
	TestNet Network = iota
	DevNet
	MainNet
	Invalid
)

// names of all networks
const (
	TestNetName = "testnet"
	DevNetName  = "devnet"
	MainNetName = "mainnet"
)

// derivation seed for each network
var seedStrings = [...]string{
	TestNet: "test_net",
	DevNet:  "dev_net",
	MainNet: "main_net",
}

var names = [...]string{
	TestNet: TestNetName,
	DevNet:  DevNetName,
	MainNet: MainNetName,
}

// Valid - validate a network value
func (n Network) Valid() bool {
	return n < Invalid
}

// SeedString - the text used in record location derivation
//
// returns fault.ErrInvalidNetwork for the sentinel or any unknown value
func (n Network) SeedString() (string, error) {
	if !n.Valid() {
		return "", fault.ErrInvalidNetwork
	}
	return seedStrings[n], nil
}

// String - network name for the fmt package
func (n Network) String() string {
	if !n.Valid() {
		return "invalid"
	}
	return names[n]
}

// MarshalText - network name for JSON
func (n Network) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fault.ErrInvalidNetwork
	}
	return []byte(names[n]), nil
}

// UnmarshalText - network from its name
func (n *Network) UnmarshalText(s []byte) error {
	network := FromName(string(s))
	if !network.Valid() {
		return fault.ErrInvalidNetwork
	}
	*n = network
	return nil
}

// FromName - convert a name or seed string to a network
//
// unrecognised names give Invalid
func FromName(name string) Network {
	switch strings.ToLower(name) {
	case TestNetName, "test", seedStrings[TestNet]:
		return TestNet
	case DevNetName, "dev", seedStrings[DevNet]:
		return DevNet
	case MainNetName, "main", seedStrings[MainNet]:
		return MainNet
	default:
		return Invalid
	}
}
