// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package query

import (
	"time"

	"github.com/bitmark-inc/ballotd/ballot"
	"github.com/bitmark-inc/ballotd/ledger"
)

// Snapshot - one committed version of a ballot
type Snapshot struct {
	TxID      string         `json:"txId"`
	Timestamp time.Time      `json:"timestamp"`
	Value     *ballot.Ballot `json:"value"`
}

// Record - a ballot found by a state query
type Record struct {
	Key   string         `json:"key"`
	Value *ballot.Ballot `json:"value"`
}

// Results - lazy sequence of query items
type Results[T any] interface {
	HasNext() bool
	Next() (*T, error)
	Close() error
}

// HistoryResults - versions of one ballot in commit order
type HistoryResults struct {
	iter ledger.HistoryIterator
}

func (r *HistoryResults) HasNext() bool {
	return r.iter.HasNext()
}

func (r *HistoryResults) Next() (*Snapshot, error) {
	m, err := r.iter.Next()
	if nil != err {
		return nil, err
	}
	b, err := ballot.Deserialize(m.Value)
	if nil != err {
		return nil, err
	}
	return &Snapshot{
		TxID:      m.TxID,
		Timestamp: m.Timestamp,
		Value:     b,
	}, nil
}

func (r *HistoryResults) Close() error {
	return r.iter.Close()
}

// BallotResults - ballots matched by a state query
type BallotResults struct {
	iter ledger.StateIterator
}

func (r *BallotResults) HasNext() bool {
	return r.iter.HasNext()
}

func (r *BallotResults) Next() (*Record, error) {
	kv, err := r.iter.Next()
	if nil != err {
		return nil, err
	}
	b, err := ballot.Deserialize(kv.Value)
	if nil != err {
		return nil, err
	}
	return &Record{
		Key:   b.Key,
		Value: b,
	}, nil
}

func (r *BallotResults) Close() error {
	return r.iter.Close()
}

// Collect - drain and close a result
func Collect[T any](r Results[T]) ([]*T, error) {
	items := make([]*T, 0)
	for r.HasNext() {
		item, err := r.Next()
		if nil != err {
			r.Close()
			return nil, err
		}
		items = append(items, item)
	}
	if err := r.Close(); nil != err {
		return nil, err
	}
	return items, nil
}
