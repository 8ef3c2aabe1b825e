// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package query

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/ballotd/ballot"
	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/ballotd/selector"
	"github.com/bitmark-inc/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// pre-built selectors
var namedQueries = map[string]ballot.State{
	"verified": ballot.Verified,
	"tally":    ballot.Tally,
}

// Adapter - query transactions over the ballot list
type Adapter struct {
	log *logger.L
}

// NewAdapter - create the query handlers
func NewAdapter() *Adapter {
	return &Adapter{
		log: logger.New("query"),
	}
}

// History - every committed version of one ballot
func (a *Adapter) History(ctx ledger.Context, electionNumber uint64, ballotNumber uint64) (*HistoryResults, error) {
	a.log.Infof("history: election: %d  ballot: %d", electionNumber, ballotNumber)

	key, err := ballot.NewList(ctx.Stub).LedgerKey(ballot.MakeKey(electionNumber, ballotNumber))
	if nil != err {
		return nil, err
	}
	iter, err := ctx.Stub.GetHistoryForKey(key)
	if nil != err {
		return nil, err
	}
	return &HistoryResults{iter: iter}, nil
}

// Election - the ballots of one election
func (a *Adapter) Election(ctx ledger.Context, electionNumber uint64) (*BallotResults, error) {
	a.log.Infof("election: %d", electionNumber)

	return a.run(ctx, map[string]interface{}{
		"class":          ballot.Namespace,
		"electionNumber": electionNumber,
	})
}

// Partial - ballots whose key starts with the prefix attribute
func (a *Adapter) Partial(ctx ledger.Context, prefix string) (*BallotResults, error) {
	a.log.Infof("partial: %q", prefix)

	iter, err := ctx.Stub.GetStateByPartialCompositeKey(ballot.Namespace, []string{prefix})
	if nil != err {
		return nil, err
	}
	return &BallotResults{iter: iter}, nil
}

// Adhoc - a caller supplied selector document
func (a *Adapter) Adhoc(ctx ledger.Context, document string) (*BallotResults, error) {
	a.log.Infof("adhoc: %s", document)

	if _, err := selector.ParseString(document); nil != err {
		a.log.Warnf("adhoc: rejected: %s", err)
		return nil, err
	}
	iter, err := ctx.Stub.GetQueryResult(document)
	if nil != err {
		return nil, err
	}
	return &BallotResults{iter: iter}, nil
}

// Named - one of the pre-built queries
func (a *Adapter) Named(ctx ledger.Context, name string) (*BallotResults, error) {
	a.log.Infof("named: %q", name)

	s, ok := namedQueries[name]
	if !ok {
		a.log.Warnf("named: unknown query: %q", name)
		return nil, errors.Wrapf(fault.InvalidNamedQuery, "name: %q", name)
	}
	return a.run(ctx, map[string]interface{}{
		"class":        ballot.Namespace,
		"currentState": s,
	})
}

func (a *Adapter) run(ctx ledger.Context, s map[string]interface{}) (*BallotResults, error) {
	document, err := json.Marshal(map[string]interface{}{
		"selector": s,
	})
	if nil != err {
		return nil, err
	}
	a.log.Debugf("selector: %s", document)

	iter, err := ctx.Stub.GetQueryResult(string(document))
	if nil != err {
		return nil, err
	}
	return &BallotResults{iter: iter}, nil
}
