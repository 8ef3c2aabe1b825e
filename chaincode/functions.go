// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincode

import (
	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/ballotd/query"
)

// function names in the order they are listed
var functionOrder = []string{
	"instantiate",
	"issue",
	"cast",
	"cast_request",
	"tallied",
	"audit",
	"queryHistory",
	"queryElection",
	"queryPartial",
	"queryAdhoc",
	"queryNamed",
}

var functions = map[string]function{
	"instantiate": {
		parameters: []string{},
		run: func(c *Chaincode, ctx ledger.Context, args []string) (interface{}, error) {
			return nil, c.ballots.Instantiate(ctx)
		},
	},

	"issue": {
		parameters: []string{"voter", "ballotNumber", "issueDateTime", "electionNumber", "electionDateTime"},
		run: func(c *Chaincode, ctx ledger.Context, args []string) (interface{}, error) {
			ballotNumber, err := parseNumber("ballotNumber", args[1])
			if nil != err {
				return nil, err
			}
			electionNumber, err := parseNumber("electionNumber", args[3])
			if nil != err {
				return nil, err
			}
			return c.ballots.Issue(ctx, args[0], ballotNumber, args[2], electionNumber, args[4])
		},
	},

	"cast": {
		parameters: []string{"voter", "ballotNumber", "issueDateTime", "electionNumber", "selCandidate", "castedDateTime"},
		run: func(c *Chaincode, ctx ledger.Context, args []string) (interface{}, error) {
			ballotNumber, err := parseNumber("ballotNumber", args[1])
			if nil != err {
				return nil, err
			}
			electionNumber, err := parseNumber("electionNumber", args[3])
			if nil != err {
				return nil, err
			}
			return c.ballots.Cast(ctx, args[0], ballotNumber, args[2], electionNumber, args[4], args[5])
		},
	},

	"cast_request": {
		parameters: []string{"voter", "ballotNumber", "issueDateTime", "electionNumber", "selCandidate", "castedDateTime"},
		run: func(c *Chaincode, ctx ledger.Context, args []string) (interface{}, error) {
			ballotNumber, err := parseNumber("ballotNumber", args[1])
			if nil != err {
				return nil, err
			}
			electionNumber, err := parseNumber("electionNumber", args[3])
			if nil != err {
				return nil, err
			}
			return c.ballots.CastRequest(ctx, args[0], ballotNumber, args[2], electionNumber, args[4], args[5])
		},
	},

	"tallied": {
		parameters: []string{"voter", "ballotNumber", "selCandidate", "electionNumber", "confirmDateTime"},
		run: func(c *Chaincode, ctx ledger.Context, args []string) (interface{}, error) {
			ballotNumber, err := parseNumber("ballotNumber", args[1])
			if nil != err {
				return nil, err
			}
			electionNumber, err := parseNumber("electionNumber", args[3])
			if nil != err {
				return nil, err
			}
			return c.ballots.Tallied(ctx, args[0], ballotNumber, args[2], electionNumber, args[4])
		},
	},

	"audit": {
		parameters: []string{"voter", "ballotNumber", "electionNumber", "verifier", "verifierMSP", "verifyDateTime"},
		run: func(c *Chaincode, ctx ledger.Context, args []string) (interface{}, error) {
			ballotNumber, err := parseNumber("ballotNumber", args[1])
			if nil != err {
				return nil, err
			}
			electionNumber, err := parseNumber("electionNumber", args[2])
			if nil != err {
				return nil, err
			}
			return c.ballots.Audit(ctx, args[0], ballotNumber, electionNumber, args[3], args[4], args[5])
		},
	},

	"queryHistory": {
		parameters: []string{"electionNumber", "ballotNumber"},
		readOnly:   true,
		run: func(c *Chaincode, ctx ledger.Context, args []string) (interface{}, error) {
			electionNumber, err := parseNumber("electionNumber", args[0])
			if nil != err {
				return nil, err
			}
			ballotNumber, err := parseNumber("ballotNumber", args[1])
			if nil != err {
				return nil, err
			}
			results, err := c.queries.History(ctx, electionNumber, ballotNumber)
			if nil != err {
				return nil, err
			}
			return query.Collect[query.Snapshot](results)
		},
	},

	"queryElection": {
		parameters: []string{"electionNumber"},
		readOnly:   true,
		run: func(c *Chaincode, ctx ledger.Context, args []string) (interface{}, error) {
			electionNumber, err := parseNumber("electionNumber", args[0])
			if nil != err {
				return nil, err
			}
			return collect(c.queries.Election(ctx, electionNumber))
		},
	},

	"queryPartial": {
		parameters: []string{"prefix"},
		readOnly:   true,
		run: func(c *Chaincode, ctx ledger.Context, args []string) (interface{}, error) {
			return collect(c.queries.Partial(ctx, args[0]))
		},
	},

	"queryAdhoc": {
		parameters: []string{"queryString"},
		readOnly:   true,
		run: func(c *Chaincode, ctx ledger.Context, args []string) (interface{}, error) {
			return collect(c.queries.Adhoc(ctx, args[0]))
		},
	},

	"queryNamed": {
		parameters: []string{"queryName"},
		readOnly:   true,
		run: func(c *Chaincode, ctx ledger.Context, args []string) (interface{}, error) {
			return collect(c.queries.Named(ctx, args[0]))
		},
	},
}

func collect(results *query.BallotResults, err error) (interface{}, error) {
	if nil != err {
		return nil, err
	}
	return query.Collect[query.Record](results)
}
