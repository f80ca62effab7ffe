// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/verifierd/chain"
	"github.com/bitmark-inc/verifierd/fault"
)

func TestSeedStrings(t *testing.T) {
	tests := []struct {
		network chain.Network
		seed    string
	}{
		{chain.TestNet, "test_net"},
		{chain.DevNet, "dev_net"},
		{chain.MainNet, "main_net"},
	}
	for i, item := range tests {
		s, err := item.network.SeedString()
		assert.Nil(t, err, "%d: error", i)
		assert.Equal(t, item.seed, s, "%d: seed string", i)
	}

	_, err := chain.Invalid.SeedString()
	assert.Equal(t, fault.ErrInvalidNetwork, err, "sentinel accepted")

	_, err = chain.Network(200).SeedString()
	assert.Equal(t, fault.ErrInvalidNetwork, err, "out of range accepted")
}

func TestFromName(t *testing.T) {
	assert.Equal(t, chain.TestNet, chain.FromName("testnet"))
	assert.Equal(t, chain.DevNet, chain.FromName("DevNet"))
	assert.Equal(t, chain.MainNet, chain.FromName("main_net"))
	assert.Equal(t, chain.Invalid, chain.FromName("bitmark"))
}

func TestText(t *testing.T) {
	text, err := chain.DevNet.MarshalText()
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, "devnet", string(text), "text")

	var n chain.Network
	assert.Nil(t, n.UnmarshalText([]byte("mainnet")), "unmarshal error")
	assert.Equal(t, chain.MainNet, n, "round trip")

	assert.Equal(t, fault.ErrInvalidNetwork, n.UnmarshalText([]byte("local")), "unknown accepted")
	_, err = chain.Invalid.MarshalText()
	assert.Equal(t, fault.ErrInvalidNetwork, err, "sentinel marshalled")
}
