// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincode_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ballotd/ballot"
	"github.com/bitmark-inc/ballotd/chaincode"
	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/fixtures"
	"github.com/bitmark-inc/ballotd/ledger/mocks"
	"github.com/bitmark-inc/ballotd/query"
	"github.com/bitmark-inc/ballotd/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func setup(t *testing.T) (*gomock.Controller, *storage.Ledger, *chaincode.Chaincode) {
	fixtures.SetupTestLogger()

	l, err := storage.OpenMemory()
	require.NoError(t, err, "open ledger")

	return gomock.NewController(t), l, chaincode.New(l)
}

func teardown(ctl *gomock.Controller, l *storage.Ledger) {
	ctl.Finish()
	l.Close()
	fixtures.TeardownTestLogger()
}

func member(ctl *gomock.Controller, mspID string, id string) *mocks.MockClientIdentity {
	identity := mocks.NewMockClientIdentity(ctl)
	identity.EXPECT().GetMSPID().Return(mspID, nil).AnyTimes()
	identity.EXPECT().GetID().Return(id, nil).AnyTimes()
	return identity
}

func TestScenario(t *testing.T) {
	ctl, l, cc := setup(t)
	defer teardown(ctl, l)

	org1 := member(ctl, fixtures.Org1MSP, fixtures.Voter1)

	_, err := cc.Invoke(org1, "instantiate", []string{})
	require.NoError(t, err, "instantiate")
	assert.Equal(t, uint64(0), height(t, l), "instantiate wrote to the ledger")

	result, err := cc.Invoke(org1, "issue", []string{"alice", "1", "2024-01-01", "100", "2024-06-01"})
	require.NoError(t, err, "issue")
	var b ballot.Ballot
	require.NoError(t, json.Unmarshal(result, &b), "decode issue result")
	assert.Equal(t, ballot.Issued, b.CurrentState, "issue state")
	assert.Equal(t, fixtures.Org1MSP, b.VoterMSP, "issue msp")

	result, err = cc.Invoke(org1, "cast", []string{"alice", "1", "2024-01-01", "100", "X", "2024-06-01"})
	require.NoError(t, err, "cast")
	require.NoError(t, json.Unmarshal(result, &b), "decode cast result")
	assert.Equal(t, ballot.Tally, b.CurrentState, "cast state")
	assert.Equal(t, "X", b.Candidate(), "cast candidate")

	result, err = cc.Invoke(org1, "audit", []string{"alice", "1", "100", "org1Verifier", fixtures.Org1MSP, "2024-06-02"})
	require.NoError(t, err, "audit")
	require.NoError(t, json.Unmarshal(result, &b), "decode audit result")
	assert.Equal(t, ballot.Verified, b.CurrentState, "audit state")
	require.NotNil(t, b.Owner, "owner")
	assert.Equal(t, "org1Verifier", *b.Owner, "audit owner")

	assert.Equal(t, uint64(3), height(t, l), "wrong number of commits")

	result, err = cc.Invoke(org1, "queryHistory", []string{"100", "1"})
	require.NoError(t, err, "history")
	var history []query.Snapshot
	require.NoError(t, json.Unmarshal(result, &history), "decode history")
	require.Equal(t, 3, len(history), "wrong history length")
	assert.NotEqual(t, history[0].TxID, history[1].TxID, "transaction ids not unique")
	assert.Equal(t, 64, len(history[0].TxID), "transaction id is not a hex digest")

	result, err = cc.Invoke(org1, "queryNamed", []string{"verified"})
	require.NoError(t, err, "named")
	var records []query.Record
	require.NoError(t, json.Unmarshal(result, &records), "decode named")
	require.Equal(t, 1, len(records), "wrong verified count")
	assert.Equal(t, "100:1", records[0].Key, "wrong verified key")

	for _, call := range [][]string{
		{"queryElection", "100"},
		{"queryPartial", "100"},
		{"queryAdhoc", `{"selector":{"voter":"alice"}}`},
	} {
		result, err = cc.Invoke(org1, call[0], call[1:])
		require.NoError(t, err, "%s", call[0])
		require.NoError(t, json.Unmarshal(result, &records), "decode %s", call[0])
		assert.Equal(t, 1, len(records), "%s: wrong count", call[0])
	}
	assert.Equal(t, uint64(3), height(t, l), "queries wrote to the ledger")
}

func TestArgumentErrors(t *testing.T) {
	ctl, l, cc := setup(t)
	defer teardown(ctl, l)

	org1 := member(ctl, fixtures.Org1MSP, fixtures.Voter1)

	tests := []struct {
		function string
		args     []string
		err      error
	}{
		{"issue", []string{"alice", "1"}, fault.WrongArgumentCount},
		{"issue", []string{"alice", "one", "2024-01-01", "100", "2024-06-01"}, fault.InvalidArgument},
		{"issue", []string{"alice", "1", "2024-01-01", "-100", "2024-06-01"}, fault.InvalidArgument},
		{"cast", []string{"alice", "1", "2024-01-01", "x", "X", "2024-06-01"}, fault.InvalidArgument},
		{"queryHistory", []string{"100"}, fault.WrongArgumentCount},
		{"queryHistory", []string{"100", "1.5"}, fault.InvalidArgument},
		{"queryNamed", []string{"everything"}, fault.InvalidNamedQuery},
		{"queryAdhoc", []string{"{"}, fault.InvalidQuery},
		{"delete", []string{"100", "1"}, fault.UnknownFunction},
		{"cast", []string{"alice", "1", "2024-01-01", "100", "X", "2024-06-01"}, fault.NotFound},
	}

	for i, item := range tests {
		_, err := cc.Invoke(org1, item.function, item.args)
		assert.ErrorIs(t, err, item.err, "%d: %s", i, item.function)
	}
	assert.Equal(t, uint64(0), height(t, l), "failed invocations wrote to the ledger")
}

func TestFailedInvocationWritesNothing(t *testing.T) {
	ctl, l, cc := setup(t)
	defer teardown(ctl, l)

	org1 := member(ctl, fixtures.Org1MSP, fixtures.Voter1)
	org2 := member(ctl, fixtures.Org2MSP, fixtures.Voter2)

	_, err := cc.Invoke(org1, "issue", []string{"alice", "1", "2024-01-01", "100", "2024-06-01"})
	require.NoError(t, err, "issue")
	_, err = cc.Invoke(org1, "cast_request", []string{"alice", "1", "2024-01-01", "100", "X", "2024-06-01"})
	require.NoError(t, err, "cast request")
	before := height(t, l)

	_, err = cc.Invoke(org2, "tallied", []string{"alice", "1", "X", "100", "2024-06-01"})
	assert.ErrorIs(t, err, fault.AuthorizationMismatch, "tallied by other organisation")
	assert.Equal(t, before, height(t, l), "rejected invocation committed")

	_, err = cc.Invoke(org1, "tallied", []string{"alice", "1", "X", "100", "2024-06-01"})
	assert.NoError(t, err, "tallied by voter organisation")
}

func TestMissingIdentity(t *testing.T) {
	ctl, l, cc := setup(t)
	defer teardown(ctl, l)

	_, err := cc.Invoke(nil, "instantiate", []string{})
	assert.ErrorIs(t, err, fault.UnknownCertificate, "invoke without identity")
}

func TestFunctions(t *testing.T) {
	names := chaincode.Functions()
	assert.Equal(t, 11, len(names), "wrong number of functions")
	assert.Equal(t, "instantiate", names[0], "first function")
	assert.Contains(t, names, "cast_request", "missing cast_request")
}

func height(t *testing.T, l *storage.Ledger) uint64 {
	h, err := l.Height()
	require.NoError(t, err, "height")
	return h
}
