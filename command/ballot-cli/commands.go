// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/ballotd/command/ballot-cli/rpccalls"
	"github.com/bitmark-inc/ballotd/fault"
	rpcballot "github.com/bitmark-inc/ballotd/rpc/ballot"
)

func runIssue(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	voter, err := checkRequired(c, "voter")
	if nil != err {
		return err
	}
	ballotNumber, err := checkNumber(c, "ballot")
	if nil != err {
		return err
	}
	electionNumber, err := checkNumber(c, "election")
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	b, err := client.Issue(&rpcballot.IssueArguments{
		Voter:            voter,
		BallotNumber:     ballotNumber,
		IssueDateTime:    c.String("issue-date"),
		ElectionNumber:   electionNumber,
		ElectionDateTime: c.String("election-date"),
	})
	if nil != err {
		return err
	}

	printJson(m.w, b)
	return nil
}

func runCast(c *cli.Context) error {
	return cast(c, false)
}

func runCastRequest(c *cli.Context) error {
	return cast(c, true)
}

func cast(c *cli.Context, request bool) error {
	m := c.App.Metadata["config"].(*metadata)

	voter, err := checkRequired(c, "voter")
	if nil != err {
		return err
	}
	ballotNumber, err := checkNumber(c, "ballot")
	if nil != err {
		return err
	}
	electionNumber, err := checkNumber(c, "election")
	if nil != err {
		return err
	}
	candidate, err := checkRequired(c, "candidate")
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	arguments := &rpcballot.CastArguments{
		Voter:          voter,
		BallotNumber:   ballotNumber,
		IssueDateTime:  c.String("issue-date"),
		ElectionNumber: electionNumber,
		SelCandidate:   candidate,
		CastedDateTime: c.String("cast-date"),
	}

	call := client.Cast
	if request {
		call = client.CastRequest
	}
	b, err := call(arguments)
	if nil != err {
		return err
	}

	printJson(m.w, b)
	return nil
}

func runTallied(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	voter, err := checkRequired(c, "voter")
	if nil != err {
		return err
	}
	ballotNumber, err := checkNumber(c, "ballot")
	if nil != err {
		return err
	}
	electionNumber, err := checkNumber(c, "election")
	if nil != err {
		return err
	}
	candidate, err := checkRequired(c, "candidate")
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	b, err := client.Tallied(&rpcballot.TalliedArguments{
		Voter:           voter,
		BallotNumber:    ballotNumber,
		SelCandidate:    candidate,
		ElectionNumber:  electionNumber,
		ConfirmDateTime: c.String("confirm-date"),
	})
	if nil != err {
		return err
	}

	printJson(m.w, b)
	return nil
}

func runAudit(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	voter, err := checkRequired(c, "voter")
	if nil != err {
		return err
	}
	ballotNumber, err := checkNumber(c, "ballot")
	if nil != err {
		return err
	}
	electionNumber, err := checkNumber(c, "election")
	if nil != err {
		return err
	}
	verifier, err := checkRequired(c, "verifier")
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	b, err := client.Audit(&rpcballot.AuditArguments{
		Voter:          voter,
		BallotNumber:   ballotNumber,
		ElectionNumber: electionNumber,
		Verifier:       verifier,
		VerifierMSP:    c.String("verifier-msp"),
		VerifyDateTime: c.String("verify-date"),
	})
	if nil != err {
		return err
	}

	printJson(m.w, b)
	return nil
}

func runHistory(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	electionNumber, err := checkNumber(c, "election")
	if nil != err {
		return err
	}
	ballotNumber, err := checkNumber(c, "ballot")
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	history, err := client.History(electionNumber, ballotNumber)
	if nil != err {
		return err
	}

	printJson(m.w, history)
	return nil
}

func runElection(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	electionNumber, err := checkNumber(c, "election")
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	ballots, err := client.Election(electionNumber)
	if nil != err {
		return err
	}

	printJson(m.w, ballots)
	return nil
}

func runPartial(c *cli.Context) error {
	return runQuery(c, "prefix", (*rpccalls.Client).Partial)
}

func runAdhoc(c *cli.Context) error {
	return runQuery(c, "selector document", (*rpccalls.Client).Adhoc)
}

func runNamed(c *cli.Context) error {
	return runQuery(c, "query name", (*rpccalls.Client).Named)
}

// queries taking a single string argument
func runQuery[T any](c *cli.Context, what string, call func(*rpccalls.Client, string) (T, error)) error {
	m := c.App.Metadata["config"].(*metadata)

	if 1 != c.NArg() {
		return errors.Wrapf(fault.WrongArgumentCount, "expected one argument: %s", what)
	}
	argument := strings.TrimSpace(c.Args().First())

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	result, err := call(client, argument)
	if nil != err {
		return err
	}

	printJson(m.w, result)
	return nil
}

func runInfo(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	info, err := client.GetInfo()
	if nil != err {
		return err
	}

	printJson(m.w, info)
	return nil
}

// ---

func connect(m *metadata) (*rpccalls.Client, error) {
	if "" == m.certificate || "" == m.key {
		return nil, errors.Wrap(fault.MissingCertificate, "use --certificate and --key")
	}
	certificate, err := tls.LoadX509KeyPair(m.certificate, m.key)
	if nil != err {
		return nil, err
	}
	return rpccalls.NewClient(m.connect, certificate, m.verbose, m.e)
}

func checkRequired(c *cli.Context, name string) (string, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return "", errors.Wrapf(fault.MissingParameters, "--%s", name)
	}
	return s, nil
}

func checkNumber(c *cli.Context, name string) (uint64, error) {
	s, err := checkRequired(c, name)
	if nil != err {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		return 0, errors.Wrapf(fault.InvalidArgument, "--%s: %q is not a number", name, s)
	}
	return n, nil
}
