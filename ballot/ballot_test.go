// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ballot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ballotd/ballot"
	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/state"
)

func TestStateNames(t *testing.T) {
	assert.Equal(t, "ISSUED", ballot.Issued.String(), "issued")
	assert.Equal(t, "PENDING", ballot.Pending.String(), "pending")
	assert.Equal(t, "TALLY", ballot.Tally.String(), "tally")
	assert.Equal(t, "VERIFIED", ballot.Verified.String(), "verified")
	assert.Equal(t, "UNKNOWN(9)", ballot.State(9).String(), "unknown")
	assert.Equal(t, ballot.State(4), ballot.Verified, "verified value")
}

func TestMakeKey(t *testing.T) {
	assert.Equal(t, "100:1", ballot.MakeKey(100, 1), "wrong key")
}

func TestEncoding(t *testing.T) {
	b := ballot.New("alice", 1, "2024-01-01", 100, "2024-06-01")
	b.VoterMSP = "Org1MSP"

	data, err := state.Serialize(b)
	require.NoError(t, err, "serialize")

	expected := `{"class":"org.evote.ballot","key":"100:1","electionNumber":100,"ballotNumber":1,` +
		`"voter":"alice","voterMSP":"Org1MSP","currentState":1,` +
		`"issueDateTime":"2024-01-01","electionDateTime":"2024-06-01"}`
	assert.Equal(t, expected, string(data), "wrong encoding")
}

func TestRoundTrip(t *testing.T) {
	candidate := "X"
	owner := "org1Verifier"

	tests := []*ballot.Ballot{
		ballot.New("alice", 1, "2024-01-01", 100, "2024-06-01"),
		{
			ElectionNumber:   7,
			BallotNumber:     99,
			Voter:            "bob",
			VoterMSP:         "Org2MSP",
			SelCandidate:     &candidate,
			CurrentState:     ballot.Verified,
			Owner:            &owner,
			IssueDateTime:    "a",
			ElectionDateTime: "b",
			ConfirmDateTime:  "c",
			VerifyDateTime:   "d",
		},
		{
			ElectionNumber: 0,
			BallotNumber:   18446744073709551615,
			Voter:          "",
			CurrentState:   ballot.Pending,
		},
	}

	for i, b := range tests {
		data, err := state.Serialize(b)
		require.NoError(t, err, "%d: serialize", i)

		decoded, err := ballot.Deserialize(data)
		require.NoError(t, err, "%d: deserialize", i)
		assert.Equal(t, b, decoded, "%d: decoded differs", i)

		again, err := state.Serialize(decoded)
		require.NoError(t, err, "%d: serialize again", i)
		assert.Equal(t, data, again, "%d: encoding differs", i)
	}
}

func TestDeserializeWrongClass(t *testing.T) {
	_, err := ballot.Deserialize([]byte(`{"class":"org.evote.paper","key":"1:1"}`))
	assert.ErrorIs(t, err, fault.MalformedRecord, "wrong class")
}

func TestPredicates(t *testing.T) {
	b := ballot.New("alice", 1, "", 100, "")
	assert.True(t, b.IsIssued(), "new ballot not issued")
	assert.False(t, b.IsCast(), "new ballot cast")
	assert.Equal(t, "", b.Candidate(), "new ballot has candidate")

	candidate := "X"
	b.SelCandidate = &candidate
	b.CurrentState = ballot.Tally
	assert.True(t, b.IsTally(), "not tally")
	assert.True(t, b.IsCast(), "not cast")
	assert.Equal(t, "X", b.Candidate(), "wrong candidate")
	assert.False(t, b.IsPending(), "pending")
	assert.False(t, b.IsVerified(), "verified")
}
