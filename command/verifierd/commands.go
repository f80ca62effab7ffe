// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/ledger"
	"github.com/bitmark-inc/verifierd/record"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"

	identityPrivateKeyFilename = "verifier.private"

	defaultDumpCount = 100
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "gen-identity", "identity":
		privateKeyFilename := getFilenameWithDirectory(arguments, identityPrivateKeyFilename)

		identity, err := makeIdentityKey(privateKeyFilename)
		if nil != err {
			fmt.Printf("generate identity key: %q error: %s\n", privateKeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated identity key: %q\n", privateKeyFilename)
		fmt.Printf("identity: %s\n", identity)

	case "start", "run":
		return false // continue processing

	case "dump", "d":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [--define=KEY=VALUE...] [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)        - display this message\n\n")
		fmt.Printf("  version                    (v)        - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)      - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                          and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]           - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                          and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-identity [DIR]         (identity) - create an identity private key in: %q\n", "DIR/"+identityPrivateKeyFilename)
		fmt.Printf("                                          and display the identity\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)      - just run the program, same as no arguments\n")
		fmt.Printf("                                          for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)      - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  dump [COUNT]               (d)        - list stored slots as JSON to stdout\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the slot pool is open so these commands can read the database
func processDataCommand(log *logger.L, arguments []string, l *ledger.Ledger) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "dump", "d":
		count := defaultDumpCount
		if len(arguments) > 0 {
			n, err := strconv.Atoi(arguments[0])
			if nil != err || n <= 0 {
				exitwithstatus.Message("error: invalid count: %q", arguments[0])
			}
			count = n
		}

		log.Infof("dump: count: %d", count)

		fmt.Printf("[\n")
		start := account.Account{}
		for count > 0 {
			n := count
			if n > defaultDumpCount {
				n = defaultDumpCount
			}
			listings, next, err := l.List(start, n)
			if nil != err {
				exitwithstatus.Message("dump error: %s", err)
			}
			for _, entry := range listings {
				s, err := json.MarshalIndent(describe(entry), "  ", "  ")
				if nil != err {
					exitwithstatus.Message("dump JSON error: %s", err)
				}
				fmt.Printf("  %s,\n", s)
			}
			count -= len(listings)
			if next.IsZero() {
				break // end of the pool
			}
			start = next
		}
		fmt.Printf("{}]\n")

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

type dumpEntry struct {
	Location account.Account      `json:"location"`
	Balance  uint64               `json:"balance"`
	Record   *record.Verification `json:"record,omitempty"`
	Status   *record.UserStatus   `json:"status,omitempty"`
	Size     int                  `json:"size"`
}

func describe(entry ledger.Listing) dumpEntry {
	d := dumpEntry{
		Location: entry.Location,
		Balance:  entry.Slot.Balance,
		Size:     len(entry.Slot.Data),
	}
	switch d.Size {
	case record.VerificationSize:
		rec := &record.Verification{}
		if nil == rec.Unpack(entry.Slot.Data) {
			d.Record = rec
		}
	case record.UserStatusSize:
		u := &record.UserStatus{}
		if nil == u.Unpack(entry.Slot.Data) {
			d.Status = u
		}
	}
	return d
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	directory := "."
	if len(arguments) >= 1 {
		directory = arguments[0]
	}

	return filepath.Join(directory, name)
}
