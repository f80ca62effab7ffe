// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/verifierd/configuration"
	"github.com/bitmark-inc/verifierd/fault"
)

const (
	testingDirName = "testing"
)

type limits struct {
	Maximum uint64   `gluamapper:"maximum_connections"`
	Listen  []string `gluamapper:"listen"`
}

type sample struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Namespace     string            `gluamapper:"namespace"`
	Untouched     string            `gluamapper:"untouched"`
	Limits        limits            `gluamapper:"client_rpc"`
	Levels        map[string]string `gluamapper:"levels"`
}

func writeConfiguration(t *testing.T, text string) string {
	_ = os.Mkdir(testingDirName, 0700)
	fileName := filepath.Join(testingDirName, "test.conf")
	err := os.WriteFile(fileName, []byte(text), 0600)
	if nil != err {
		t.Fatalf("write configuration error: %s", err)
	}
	return fileName
}

func TestParseConfigurationFile(t *testing.T) {
	defer os.RemoveAll(testingDirName)

	fileName := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.namespace = var.namespace or "unset"
M.client_rpc = {
    maximum_connections = 5,
    listen = { "127.0.0.1:2130", "[::1]:2130" },
}
M.levels = { main = "info", rpc = "debug" }
M.file = arg[0]
return M
`)

	config := sample{
		Untouched: "default",
	}
	err := configuration.ParseConfigurationFile(fileName, &config, map[string]string{
		"namespace": "BPFLoader1111111111111111111111111111111111",
	})
	assert.Nil(t, err, "parse error")
	assert.Equal(t, ".", config.DataDirectory, "data directory")
	assert.Equal(t, "BPFLoader1111111111111111111111111111111111", config.Namespace, "namespace from variables")
	assert.Equal(t, "default", config.Untouched, "default overwritten")
	assert.Equal(t, uint64(5), config.Limits.Maximum, "maximum connections")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, config.Limits.Listen, "listen")
	assert.Equal(t, "debug", config.Levels["rpc"], "levels")
}

func TestParseConfigurationFileErrors(t *testing.T) {
	defer os.RemoveAll(testingDirName)

	config := sample{}

	err := configuration.ParseConfigurationFile("no-such-file.conf", &config, nil)
	assert.NotNil(t, err, "missing file")

	fileName := writeConfiguration(t, `return 42`)
	err = configuration.ParseConfigurationFile(fileName, &config, nil)
	assert.Equal(t, fault.ErrInvalidConfiguration, err, "non table result")

	fileName = writeConfiguration(t, `this is not lua`)
	err = configuration.ParseConfigurationFile(fileName, &config, nil)
	assert.NotNil(t, err, "syntax error")

	err = configuration.ParseConfigurationFile(fileName, config, nil)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "non pointer")
}
