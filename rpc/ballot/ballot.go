// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ballot

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ballotd/ballot"
	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/ballotd/query"
	"github.com/bitmark-inc/ballotd/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// number of attempts for a transition that lost an optimistic race
const maximumAttempts = 3

// Invoker - the chaincode entry point
type Invoker interface {
	Invoke(identity ledger.ClientIdentity, name string, args []string) ([]byte, error)
}

// Ballot - type for RPC calls, one per connection
type Ballot struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Invoker  Invoker
	Identity ledger.ClientIdentity
}

// New - receiver bound to the identity of a connection
func New(log *logger.L, limiter *rate.Limiter, invoker Invoker, identity ledger.ClientIdentity) *Ballot {
	return &Ballot{
		Log:      log,
		Limiter:  limiter,
		Invoker:  invoker,
		Identity: identity,
	}
}

// ---

// IssueArguments - arguments for RPC
type IssueArguments struct {
	Voter            string `json:"voter"`
	BallotNumber     uint64 `json:"ballotNumber"`
	IssueDateTime    string `json:"issueDateTime"`
	ElectionNumber   uint64 `json:"electionNumber"`
	ElectionDateTime string `json:"electionDateTime"`
}

// CastArguments - arguments for Cast and CastRequest
type CastArguments struct {
	Voter          string `json:"voter"`
	BallotNumber   uint64 `json:"ballotNumber"`
	IssueDateTime  string `json:"issueDateTime"`
	ElectionNumber uint64 `json:"electionNumber"`
	SelCandidate   string `json:"selCandidate"`
	CastedDateTime string `json:"castedDateTime"`
}

// TalliedArguments - arguments for RPC
type TalliedArguments struct {
	Voter           string `json:"voter"`
	BallotNumber    uint64 `json:"ballotNumber"`
	SelCandidate    string `json:"selCandidate"`
	ElectionNumber  uint64 `json:"electionNumber"`
	ConfirmDateTime string `json:"confirmDateTime"`
}

// AuditArguments - arguments for RPC
type AuditArguments struct {
	Voter          string `json:"voter"`
	BallotNumber   uint64 `json:"ballotNumber"`
	ElectionNumber uint64 `json:"electionNumber"`
	Verifier       string `json:"verifier"`
	VerifierMSP    string `json:"verifierMSP"`
	VerifyDateTime string `json:"verifyDateTime"`
}

// Reply - the ballot after a transition
type Reply struct {
	Ballot *ballot.Ballot `json:"ballot"`
}

// Issue - create a ballot for a voter
func (b *Ballot) Issue(arguments *IssueArguments, reply *Reply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	b.Log.Infof("issue: voter: %q  election: %d  ballot: %d", arguments.Voter, arguments.ElectionNumber, arguments.BallotNumber)

	return b.transition(reply, "issue",
		arguments.Voter,
		number(arguments.BallotNumber),
		arguments.IssueDateTime,
		number(arguments.ElectionNumber),
		arguments.ElectionDateTime,
	)
}

// Cast - the voter's organisation records a vote
func (b *Ballot) Cast(arguments *CastArguments, reply *Reply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	b.Log.Infof("cast: voter: %q  election: %d  ballot: %d", arguments.Voter, arguments.ElectionNumber, arguments.BallotNumber)

	return b.transition(reply, "cast", castArgs(arguments)...)
}

// CastRequest - record a vote awaiting confirmation
func (b *Ballot) CastRequest(arguments *CastArguments, reply *Reply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	b.Log.Infof("cast request: voter: %q  election: %d  ballot: %d", arguments.Voter, arguments.ElectionNumber, arguments.BallotNumber)

	return b.transition(reply, "cast_request", castArgs(arguments)...)
}

// Tallied - confirm a pending vote
func (b *Ballot) Tallied(arguments *TalliedArguments, reply *Reply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	b.Log.Infof("tallied: voter: %q  election: %d  ballot: %d", arguments.Voter, arguments.ElectionNumber, arguments.BallotNumber)

	return b.transition(reply, "tallied",
		arguments.Voter,
		number(arguments.BallotNumber),
		arguments.SelCandidate,
		number(arguments.ElectionNumber),
		arguments.ConfirmDateTime,
	)
}

// Audit - verify a tallied vote
func (b *Ballot) Audit(arguments *AuditArguments, reply *Reply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	b.Log.Infof("audit: voter: %q  election: %d  ballot: %d", arguments.Voter, arguments.ElectionNumber, arguments.BallotNumber)

	return b.transition(reply, "audit",
		arguments.Voter,
		number(arguments.BallotNumber),
		number(arguments.ElectionNumber),
		arguments.Verifier,
		arguments.VerifierMSP,
		arguments.VerifyDateTime,
	)
}

// ---

// HistoryArguments - arguments for RPC
type HistoryArguments struct {
	ElectionNumber uint64 `json:"electionNumber"`
	BallotNumber   uint64 `json:"ballotNumber"`
}

// HistoryReply - all committed versions oldest first
type HistoryReply struct {
	History []*query.Snapshot `json:"history"`
}

// History - every committed version of one ballot
func (b *Ballot) History(arguments *HistoryArguments, reply *HistoryReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	return b.query(&reply.History, "queryHistory", number(arguments.ElectionNumber), number(arguments.BallotNumber))
}

// ElectionArguments - arguments for RPC
type ElectionArguments struct {
	ElectionNumber uint64 `json:"electionNumber"`
}

// QueryReply - ballots matched by a query
type QueryReply struct {
	Ballots []*query.Record `json:"ballots"`
}

// Election - all ballots of one election
func (b *Ballot) Election(arguments *ElectionArguments, reply *QueryReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	return b.query(&reply.Ballots, "queryElection", number(arguments.ElectionNumber))
}

// PartialArguments - arguments for RPC
type PartialArguments struct {
	Prefix string `json:"prefix"`
}

// Partial - ballots whose key begins with the prefix
func (b *Ballot) Partial(arguments *PartialArguments, reply *QueryReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	return b.query(&reply.Ballots, "queryPartial", arguments.Prefix)
}

// AdhocArguments - arguments for RPC
type AdhocArguments struct {
	Query string `json:"query"`
}

// Adhoc - ballots matched by a selector document
func (b *Ballot) Adhoc(arguments *AdhocArguments, reply *QueryReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	return b.query(&reply.Ballots, "queryAdhoc", arguments.Query)
}

// NamedArguments - arguments for RPC
type NamedArguments struct {
	Name string `json:"name"`
}

// Named - ballots matched by a predefined query
func (b *Ballot) Named(arguments *NamedArguments, reply *QueryReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	return b.query(&reply.Ballots, "queryNamed", arguments.Name)
}

// ---

func (b *Ballot) transition(reply *Reply, name string, args ...string) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	var result []byte
	var err error
	for attempt := 1; attempt <= maximumAttempts; attempt += 1 {
		result, err = b.Invoker.Invoke(b.Identity, name, args)
		if !fault.IsRetryable(err) {
			break
		}
		b.Log.Debugf("%s: attempt: %d  error: %s", name, attempt, err)
	}
	if nil != err {
		b.Log.Warnf("%s: error: %s", name, err)
		return err
	}

	reply.Ballot = &ballot.Ballot{}
	return json.Unmarshal(result, reply.Ballot)
}

func (b *Ballot) query(reply interface{}, name string, args ...string) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	result, err := b.Invoker.Invoke(b.Identity, name, args)
	if nil != err {
		b.Log.Warnf("%s: error: %s", name, err)
		return err
	}
	return json.Unmarshal(result, reply)
}

func castArgs(arguments *CastArguments) []string {
	return []string{
		arguments.Voter,
		number(arguments.BallotNumber),
		arguments.IssueDateTime,
		number(arguments.ElectionNumber),
		arguments.SelCandidate,
		arguments.CastedDateTime,
	}
}

func number(n uint64) string {
	return strconv.FormatUint(n, 10)
}
