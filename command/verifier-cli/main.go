// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"
)

type metadata struct {
	connect     string
	fingerprint string
	keyText     string
	keyFile     string
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	if err := app.Run(os.Args); nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "verifier-cli"
	app.Usage = "register and verify program bytecode with verifierd"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " verifierd RPC `HOST:PORT`",
			EnvVar: "VERIFIER_CONNECT",
		},
		cli.StringFlag{
			Name:   "fingerprint, f",
			Value:  "",
			Usage:  " expected SHA3-256 of the server certificate `HEX`",
			EnvVar: "VERIFIER_FINGERPRINT",
		},
		cli.StringFlag{
			Name:   "key, k",
			Value:  "",
			Usage:  " signing private key `BASE58`",
			EnvVar: "VERIFIER_KEY",
		},
		cli.StringFlag{
			Name:  "key-file, K",
			Value: "",
			Usage: " read the signing private key from `FILE`",
		},
	}

	networkFlag := cli.StringFlag{
		Name:  "network, n",
		Value: "devnet",
		Usage: " network of the subject `NAME` [testnet|devnet|mainnet]",
	}
	subjectFlag := cli.StringFlag{
		Name:  "subject, s",
		Value: "",
		Usage: "*program identity `BASE58`",
	}
	userFlag := cli.StringFlag{
		Name:  "user, u",
		Value: "",
		Usage: "*user identity `BASE58`",
	}

	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a new signing key",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "address",
			Usage:     "show the slot locations of a subject and a user",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "namespace, N",
					Value: "",
					Usage: " owning namespace `BASE58` [default from verifierd]",
				},
				networkFlag,
				cli.StringFlag{
					Name:  "subject, s",
					Value: "",
					Usage: "+program identity `BASE58`",
				},
				cli.StringFlag{
					Name:  "user, u",
					Value: "",
					Usage: "+user identity `BASE58`",
				},
			},
			Action: runAddress,
		},
		{
			Name:      "register",
			Usage:     "create the record and status slots for a subject",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				subjectFlag,
				networkFlag,
				cli.StringFlag{
					Name:  "repo, r",
					Value: "",
					Usage: " source git `URL`",
				},
				cli.StringFlag{
					Name:  "commit, C",
					Value: "",
					Usage: " source git `COMMIT`",
				},
				cli.StringFlag{
					Name:  "directory, d",
					Value: "",
					Usage: " build `DIRECTORY` within the repository",
				},
				cli.StringFlag{
					Name:  "docker-version",
					Value: "",
					Usage: " `VERSION` of the build image",
				},
				cli.StringFlag{
					Name:  "rust-version",
					Value: "",
					Usage: " `VERSION` of the compiler",
				},
				cli.StringFlag{
					Name:  "solana-version",
					Value: "",
					Usage: " `VERSION` of the platform tools",
				},
				cli.StringFlag{
					Name:  "anchor-version",
					Value: "",
					Usage: " `VERSION` of the framework",
				},
			},
			Action: runRegister,
		},
		{
			Name:      "verify",
			Usage:     "compare two program data dumps and record the result",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				subjectFlag,
				networkFlag,
				userFlag,
				cli.StringFlag{
					Name:  "test-address, t",
					Value: "",
					Usage: "*identity of the rebuilt program `BASE58`",
				},
				cli.StringFlag{
					Name:  "deployed, D",
					Value: "",
					Usage: "*program data dump of the subject `FILE`",
				},
				cli.StringFlag{
					Name:  "built, B",
					Value: "",
					Usage: "*program data dump of the rebuilt program `FILE`",
				},
				cli.Uint64Flag{
					Name:  "observed-slot, o",
					Value: 0,
					Usage: "*chain slot when the dumps were taken `SLOT`",
				},
			},
			Action: runVerify,
		},
		{
			Name:      "update-status",
			Usage:     "overwrite the status message of a user",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				userFlag,
				cli.UintFlag{
					Name:  "code, x",
					Value: 0,
					Usage: " status `CODE`",
				},
				cli.StringFlag{
					Name:  "message, m",
					Value: "",
					Usage: " status `TEXT`",
				},
			},
			Action: runUpdateStatus,
		},
		{
			Name:      "record",
			Usage:     "show the verification record of a subject",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				subjectFlag,
				networkFlag,
			},
			Action: runRecord,
		},
		{
			Name:      "status",
			Usage:     "show the status slot of a user",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				userFlag,
			},
			Action: runStatus,
		},
		{
			Name:      "list",
			Usage:     "list slots in location order",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "start, s",
					Value: "11111111111111111111111111111111",
					Usage: " first location `BASE58`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum slots to return `COUNT`",
				},
			},
			Action: runList,
		},
		{
			Name:   "info",
			Usage:  "display verifierd information",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display verifier-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		m := &metadata{
			connect:     c.GlobalString("connect"),
			fingerprint: c.GlobalString("fingerprint"),
			keyText:     c.GlobalString("key"),
			keyFile:     c.GlobalString("key-file"),
			verbose:     c.GlobalBool("verbose"),
			e:           c.App.ErrWriter,
			w:           c.App.Writer,
		}
		if "" != m.keyText && "" != m.keyFile {
			return fmt.Errorf("only one of --key and --key-file may be given")
		}

		c.App.Metadata = map[string]interface{}{
			"config": m,
		}
		return nil
	}

	return app
}
