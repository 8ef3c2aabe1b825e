// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ballot

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/logger"
)

// Contract - the ballot transactions
//
// holds no ledger state, everything comes from the context passed
// to each call
type Contract struct {
	log *logger.L
}

// NewContract - create the transaction handlers
func NewContract() *Contract {
	return &Contract{
		log: logger.New("ballot"),
	}
}

// Instantiate - ledger setup, nothing is required
func (c *Contract) Instantiate(ctx ledger.Context) error {
	c.log.Infof("instantiate: tx: %s", ctx.Stub.GetTxID())
	return nil
}

// Issue - create a ballot for a voter
func (c *Contract) Issue(ctx ledger.Context, voter string, ballotNumber uint64, issueDateTime string, electionNumber uint64, electionDateTime string) (*Ballot, error) {
	c.log.Infof("issue: election: %d  ballot: %d  voter: %q", electionNumber, ballotNumber, voter)

	mspID, err := ctx.Identity.GetMSPID()
	if nil != err {
		return nil, err
	}

	b := New(voter, ballotNumber, issueDateTime, electionNumber, electionDateTime)
	b.VoterMSP = mspID

	if err := NewList(ctx.Stub).Add(b); nil != err {
		c.log.Warnf("issue: key: %s  error: %s", MakeKey(electionNumber, ballotNumber), err)
		return nil, err
	}

	c.log.Debugf("issued: %s  msp: %s", b.Key, mspID)
	return b, nil
}

// Cast - record a selection directly, ISSUED -> TALLY
//
// castedDateTime is carried by the transaction only
func (c *Contract) Cast(ctx ledger.Context, voter string, ballotNumber uint64, issueDateTime string, electionNumber uint64, selCandidate string, castedDateTime string) (*Ballot, error) {
	c.log.Infof("cast: election: %d  ballot: %d  voter: %q  at: %q", electionNumber, ballotNumber, voter, castedDateTime)

	list := NewList(ctx.Stub)
	b, err := c.castable(list.Get, voter, electionNumber, ballotNumber)
	if nil != err {
		return nil, err
	}

	if !b.IsIssued() {
		return nil, c.reject("cast", errors.Wrapf(fault.InvalidStateTransition, "ballot: %s  voter: %q  state: %s  expected: %s", b.Key, voter, b.CurrentState, Issued))
	}

	mspID, err := ctx.Identity.GetMSPID()
	if nil != err {
		return nil, err
	}

	b.CurrentState = Tally
	b.SelCandidate = &selCandidate
	b.VoterMSP = mspID

	if err := list.Update(b); nil != err {
		return nil, err
	}
	return b, nil
}

// CastRequest - first half of the confirmed path, -> PENDING
//
// the selection is not stored until the voter's organisation confirms
// it with Tallied
func (c *Contract) CastRequest(ctx ledger.Context, voter string, ballotNumber uint64, issueDateTime string, electionNumber uint64, selCandidate string, castedDateTime string) (*Ballot, error) {
	c.log.Infof("cast request: election: %d  ballot: %d  voter: %q  at: %q", electionNumber, ballotNumber, voter, castedDateTime)

	list := NewList(ctx.Stub)
	b, err := c.castable(list.Get, voter, electionNumber, ballotNumber)
	if nil != err {
		return nil, err
	}

	if !b.IsIssued() && !b.IsPending() {
		return nil, c.reject("cast request", errors.Wrapf(fault.InvalidStateTransition, "ballot: %s  voter: %q  state: %s", b.Key, voter, b.CurrentState))
	}

	b.CurrentState = Pending

	if err := list.Update(b); nil != err {
		return nil, err
	}
	return b, nil
}

// Tallied - confirmation by the voter's organisation, PENDING -> TALLY
func (c *Contract) Tallied(ctx ledger.Context, voter string, ballotNumber uint64, selCandidate string, electionNumber uint64, confirmDateTime string) (*Ballot, error) {
	c.log.Infof("tallied: election: %d  ballot: %d  voter: %q", electionNumber, ballotNumber, voter)

	list := NewList(ctx.Stub)
	b, err := list.Get(MakeKey(electionNumber, ballotNumber))
	if nil != err {
		return nil, err
	}

	mspID, err := ctx.Identity.GetMSPID()
	if nil != err {
		return nil, err
	}
	if b.VoterMSP != mspID {
		return nil, c.reject("tallied", errors.Wrapf(fault.AuthorizationMismatch, "ballot: %s  voter: %q  msp: %q  caller msp: %q", b.Key, voter, b.VoterMSP, mspID))
	}

	if !b.IsPending() {
		return nil, c.reject("tallied", errors.Wrapf(fault.InvalidStateTransition, "ballot: %s  voter: %q  state: %s  expected: %s", b.Key, voter, b.CurrentState, Pending))
	}

	b.SelCandidate = &selCandidate
	b.CurrentState = Tally
	b.ConfirmDateTime = confirmDateTime

	if err := list.Update(b); nil != err {
		return nil, err
	}
	return b, nil
}

// Audit - verification of a tallied ballot, TALLY -> VERIFIED
//
// verifierMSP is recorded in the log only
func (c *Contract) Audit(ctx ledger.Context, voter string, ballotNumber uint64, electionNumber uint64, verifier string, verifierMSP string, verifyDateTime string) (*Ballot, error) {
	c.log.Infof("audit: election: %d  ballot: %d  voter: %q  verifier: %q  msp: %q", electionNumber, ballotNumber, voter, verifier, verifierMSP)

	list := NewList(ctx.Stub)
	b, err := list.Get(MakeKey(electionNumber, ballotNumber))
	if nil != err {
		return nil, err
	}

	if !b.IsTally() {
		return nil, c.reject("audit", errors.Wrapf(fault.InvalidStateTransition, "ballot: %s  cannot be verified by: %q  state: %s", b.Key, verifier, b.CurrentState))
	}

	if b.Voter != voter {
		return nil, c.reject("audit", errors.Wrapf(fault.ValidationMismatch, "ballot: %s  verifier: %q  voter: %q mismatch", b.Key, verifier, voter))
	}

	b.Owner = &verifier
	b.CurrentState = Verified
	b.VerifyDateTime = verifyDateTime

	if err := list.Update(b); nil != err {
		return nil, err
	}
	return b, nil
}

// common guards of the two casting transactions
func (c *Contract) castable(get func(string) (*Ballot, error), voter string, electionNumber uint64, ballotNumber uint64) (*Ballot, error) {
	b, err := get(MakeKey(electionNumber, ballotNumber))
	if nil != err {
		return nil, err
	}

	if b.Voter != voter {
		return nil, c.reject("cast", errors.Wrapf(fault.ValidationMismatch, "ballot: %s  voter: %q not matched", b.Key, voter))
	}

	if b.IsCast() {
		return nil, c.reject("cast", errors.Wrapf(fault.InvalidStateTransition, "ballot: %s  voter: %q already cast", b.Key, voter))
	}
	return b, nil
}

func (c *Contract) reject(operation string, err error) error {
	c.log.Warnf("%s: rejected: %s", operation, err)
	return err
}
