// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ballot

import (
	"strconv"

	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/ballotd/state"
)

// Namespace - list name and class of every stored ballot
const Namespace = "org.evote.ballot"

// State - lifecycle position of a ballot
type State uint8

// possible states
const (
	Issued   State = 1
	Pending  State = 2
	Tally    State = 3
	Verified State = 4
)

// String - printable state name
func (s State) String() string {
	switch s {
	case Issued:
		return "ISSUED"
	case Pending:
		return "PENDING"
	case Tally:
		return "TALLY"
	case Verified:
		return "VERIFIED"
	default:
		return "UNKNOWN(" + strconv.Itoa(int(s)) + ")"
	}
}

// Ballot - the stored record
type Ballot struct {
	state.Header
	ElectionNumber   uint64  `json:"electionNumber"`
	BallotNumber     uint64  `json:"ballotNumber"`
	Voter            string  `json:"voter"`
	VoterMSP         string  `json:"voterMSP"`
	SelCandidate     *string `json:"selCandidate,omitempty"`
	CurrentState     State   `json:"currentState"`
	Owner            *string `json:"owner,omitempty"`
	IssueDateTime    string  `json:"issueDateTime"`
	ElectionDateTime string  `json:"electionDateTime"`
	ConfirmDateTime  string  `json:"confirmDateTime,omitempty"`
	VerifyDateTime   string  `json:"verifyDateTime,omitempty"`
}

// New - a freshly issued ballot
func New(voter string, ballotNumber uint64, issueDateTime string, electionNumber uint64, electionDateTime string) *Ballot {
	return &Ballot{
		ElectionNumber:   electionNumber,
		BallotNumber:     ballotNumber,
		Voter:            voter,
		CurrentState:     Issued,
		IssueDateTime:    issueDateTime,
		ElectionDateTime: electionDateTime,
	}
}

// MakeKey - record key of a ballot
func MakeKey(electionNumber uint64, ballotNumber uint64) string {
	key, _ := state.MakeKey(electionNumber, ballotNumber) // integers always succeed
	return key
}

// Class - see state.Entity
func (b *Ballot) Class() string {
	return Namespace
}

// KeyParts - see state.Entity
func (b *Ballot) KeyParts() []interface{} {
	return []interface{}{b.ElectionNumber, b.BallotNumber}
}

// Envelope - see state.Entity
func (b *Ballot) Envelope() *state.Header {
	return &b.Header
}

func (b *Ballot) IsIssued() bool {
	return Issued == b.CurrentState
}

func (b *Ballot) IsPending() bool {
	return Pending == b.CurrentState
}

func (b *Ballot) IsTally() bool {
	return Tally == b.CurrentState
}

func (b *Ballot) IsVerified() bool {
	return Verified == b.CurrentState
}

// IsCast - true once a candidate has been recorded
func (b *Ballot) IsCast() bool {
	return nil != b.SelCandidate
}

// Candidate - the selected candidate or the empty string
func (b *Ballot) Candidate() string {
	if nil == b.SelCandidate {
		return ""
	}
	return *b.SelCandidate
}

// Deserialize - decode a stored ballot
func Deserialize(data []byte) (*Ballot, error) {
	return state.Deserialize[Ballot](data, Namespace)
}

// NewList - ballots in the ledger of one invocation
func NewList(stub ledger.Stub) *state.List[Ballot, *Ballot] {
	return state.NewList[Ballot](stub, Namespace, Namespace)
}
