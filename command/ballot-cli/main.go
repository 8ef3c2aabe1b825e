// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect     string
	certificate string
	key         string
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "ballot-cli"
	app.Usage = "issue, cast and audit ballots on a ballotd ledger"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " ballotd host/IP and port, `HOST:PORT`",
			EnvVar: "BALLOT_CLI_CONNECT",
		},
		cli.StringFlag{
			Name:   "certificate, C",
			Value:  "",
			Usage:  "*client certificate `FILE`",
			EnvVar: "BALLOT_CLI_CERTIFICATE",
		},
		cli.StringFlag{
			Name:   "key, k",
			Value:  "",
			Usage:  "*client private key `FILE`",
			EnvVar: "BALLOT_CLI_KEY",
		},
	}

	voterFlag := cli.StringFlag{
		Name:  "voter, V",
		Value: "",
		Usage: "*voter `NAME`",
	}
	ballotFlag := cli.StringFlag{
		Name:  "ballot, b",
		Value: "",
		Usage: "*ballot `NUMBER`",
	}
	electionFlag := cli.StringFlag{
		Name:  "election, e",
		Value: "",
		Usage: "*election `NUMBER`",
	}
	issueDateFlag := cli.StringFlag{
		Name:  "issue-date, i",
		Value: "",
		Usage: " ballot issue `DATETIME`",
	}
	candidateFlag := cli.StringFlag{
		Name:  "candidate, s",
		Value: "",
		Usage: "*selected candidate `NAME`",
	}

	app.Commands = []cli.Command{
		{
			Name:      "issue",
			Usage:     "issue a ballot to a voter",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				voterFlag,
				ballotFlag,
				electionFlag,
				issueDateFlag,
				cli.StringFlag{
					Name:  "election-date, d",
					Value: "",
					Usage: " election `DATETIME`",
				},
			},
			Action: runIssue,
		},
		{
			Name:      "cast",
			Usage:     "cast a vote, counted immediately",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				voterFlag,
				ballotFlag,
				electionFlag,
				issueDateFlag,
				candidateFlag,
				cli.StringFlag{
					Name:  "cast-date, t",
					Value: "",
					Usage: " vote cast `DATETIME`",
				},
			},
			Action: runCast,
		},
		{
			Name:      "cast-request",
			Usage:     "cast a vote awaiting confirmation",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				voterFlag,
				ballotFlag,
				electionFlag,
				issueDateFlag,
				candidateFlag,
				cli.StringFlag{
					Name:  "cast-date, t",
					Value: "",
					Usage: " vote cast `DATETIME`",
				},
			},
			Action: runCastRequest,
		},
		{
			Name:      "tallied",
			Usage:     "confirm a pending vote",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				voterFlag,
				ballotFlag,
				electionFlag,
				candidateFlag,
				cli.StringFlag{
					Name:  "confirm-date, t",
					Value: "",
					Usage: " confirmation `DATETIME`",
				},
			},
			Action: runTallied,
		},
		{
			Name:      "audit",
			Usage:     "verify a counted vote",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				voterFlag,
				ballotFlag,
				electionFlag,
				cli.StringFlag{
					Name:  "verifier, a",
					Value: "",
					Usage: "*verifier `NAME`",
				},
				cli.StringFlag{
					Name:  "verifier-msp, m",
					Value: "",
					Usage: " verifier organisation `MSP`",
				},
				cli.StringFlag{
					Name:  "verify-date, t",
					Value: "",
					Usage: " verification `DATETIME`",
				},
			},
			Action: runAudit,
		},
		{
			Name:      "history",
			Usage:     "list every version of a ballot",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				electionFlag,
				ballotFlag,
			},
			Action: runHistory,
		},
		{
			Name:      "election",
			Usage:     "list the ballots of an election",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				electionFlag,
			},
			Action: runElection,
		},
		{
			Name:      "partial",
			Usage:     "list ballots whose key starts with a prefix",
			ArgsUsage: "PREFIX",
			Action:    runPartial,
		},
		{
			Name:      "adhoc",
			Usage:     "list ballots matching a selector document",
			ArgsUsage: "'{\"selector\":{...}}'",
			Action:    runAdhoc,
		},
		{
			Name:      "named",
			Usage:     "list ballots matching a named query: verified|tally",
			ArgsUsage: "NAME",
			Action:    runNamed,
		},
		{
			Name:   "info",
			Usage:  "display ballotd status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display ballot-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// set up the connection parameters
	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect:     c.GlobalString("connect"),
			certificate: c.GlobalString("certificate"),
			key:         c.GlobalString("key"),
			verbose:     c.GlobalBool("verbose"),
			e:           c.App.ErrWriter,
			w:           c.App.Writer,
		}
		return nil
	}

	return app
}
