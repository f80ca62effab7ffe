// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/verifierd/ledger"
)

const (
	testingDirName = "testing"
)

func writeConfiguration(t *testing.T, text string) string {
	_ = os.Mkdir(testingDirName, 0700)
	fileName := filepath.Join(testingDirName, "verifierd.conf")
	err := os.WriteFile(fileName, []byte(text), 0600)
	if nil != err {
		t.Fatalf("write configuration error: %s", err)
	}
	return fileName
}

func TestSampleConfiguration(t *testing.T) {
	defer os.RemoveAll(testingDirName)

	sample, err := os.ReadFile("verifierd.conf.sample")
	if nil != err {
		t.Fatalf("read sample error: %s", err)
	}
	fileName := writeConfiguration(t, string(sample))

	options, err := getConfiguration(fileName, map[string]string{"chain": "testnet"})
	assert.Nil(t, err, "sample configuration")

	directory, _ := filepath.Abs(testingDirName)
	assert.Equal(t, "testnet", options.Chain, "chain from variables")
	assert.Equal(t, filepath.Join(directory, "data", "testnet.leveldb"), options.Database.Name, "database")
	assert.Equal(t, filepath.Join(directory, "rpc.crt"), options.ClientRPC.Certificate, "certificate")
	assert.Equal(t, uint64(50), options.ClientRPC.MaximumConnections, "connections")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, options.ClientRPC.Listen, "listen")
	assert.Equal(t, ledger.DefaultRent, options.Rent, "rent")
	assert.Equal(t, "info", options.Logging.Levels["rpc"], "log level")

	namespace, err := options.NamespaceAccount()
	assert.Nil(t, err, "namespace")
	assert.Equal(t, "BPFLoader1111111111111111111111111111111111", namespace.String(), "namespace value")

	info, err := os.Stat(filepath.Join(directory, "data"))
	assert.Nil(t, err, "database directory")
	assert.True(t, info.IsDir(), "database directory type")
}

func TestConfigurationDefaults(t *testing.T) {
	defer os.RemoveAll(testingDirName)

	fileName := writeConfiguration(t, `
return {
    data_directory = ".",
    namespace = "BPFLoader1111111111111111111111111111111111",
    verifier = "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z",
}
`)
	options, err := getConfiguration(fileName, nil)
	assert.Nil(t, err, "minimal configuration")
	assert.Equal(t, "devnet", options.Chain, "default chain")
	assert.Equal(t, uint64(defaultRPCClients), options.ClientRPC.MaximumConnections, "default connections")
	assert.Equal(t, "", options.PidFile, "default pidfile")
	assert.Equal(t, defaultLogFile, filepath.Base(options.Logging.File), "default log file")
}

func TestConfigurationErrors(t *testing.T) {
	defer os.RemoveAll(testingDirName)

	cases := []struct {
		text   string
		reason string
	}{
		{`return { data_directory = ".", chain = "moon", namespace = "BPFLoader1111111111111111111111111111111111", verifier = "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z" }`, "unknown chain"},
		{`return { data_directory = ".", namespace = "0OIl", verifier = "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z" }`, "bad namespace"},
		{`return { data_directory = ".", namespace = "BPFLoader1111111111111111111111111111111111" }`, "missing verifier"},
		{`return { namespace = "BPFLoader1111111111111111111111111111111111", verifier = "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z" }`, "missing data directory"},
		{`return { data_directory = "/no/such/directory", namespace = "BPFLoader1111111111111111111111111111111111", verifier = "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z" }`, "absent data directory"},
		{`return { data_directory = ".", database = { name = "a/b" }, namespace = "BPFLoader1111111111111111111111111111111111", verifier = "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z" }`, "database path"},
		{`return { data_directory = ".", rent = { overhead = 0 }, namespace = "BPFLoader1111111111111111111111111111111111", verifier = "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z" }`, "zero rent overhead"},
		{`return { data_directory = ".", rent = { lamports_per_byte_year = 0 }, namespace = "BPFLoader1111111111111111111111111111111111", verifier = "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z" }`, "zero rent rate"},
		{`return { data_directory = ".", rent = { exemption_threshold = 0 }, namespace = "BPFLoader1111111111111111111111111111111111", verifier = "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z" }`, "zero rent threshold"},
	}
	for _, c := range cases {
		fileName := writeConfiguration(t, c.text)
		_, err := getConfiguration(fileName, nil)
		assert.NotNil(t, err, c.reason)
	}
}

func TestDefines(t *testing.T) {
	variables, err := defines([]string{"chain=testnet", "key = a=b"})
	assert.Nil(t, err, "defines")
	assert.Equal(t, map[string]string{"chain": "testnet", "key": " a=b"}, variables, "values")

	_, err = defines([]string{"novalue"})
	assert.NotNil(t, err, "missing value")
}
