// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/ballotd/selector"
)

// Transaction - the view of the ledger seen by one invocation
//
// implements ledger.Stub
type Transaction struct {
	sync.Mutex

	ledger    *Ledger
	txID      string
	timestamp time.Time
	readSet   map[string]uint64
	writes    Cache
	finished  bool
}

func newTransaction(l *Ledger, txID string, timestamp time.Time, writes Cache) *Transaction {
	return &Transaction{
		ledger:    l,
		txID:      txID,
		timestamp: timestamp,
		readSet:   make(map[string]uint64),
		writes:    writes,
	}
}

// GetTxID - identifier of this transaction
func (t *Transaction) GetTxID() string {
	return t.txID
}

// GetTxTimestamp - time this transaction was proposed
func (t *Transaction) GetTxTimestamp() time.Time {
	return t.timestamp
}

// CreateCompositeKey - see ledger.CreateCompositeKey
func (t *Transaction) CreateCompositeKey(objectType string, attributes []string) (string, error) {
	return ledger.CreateCompositeKey(objectType, attributes)
}

// SplitCompositeKey - see ledger.SplitCompositeKey
func (t *Transaction) SplitCompositeKey(compositeKey string) (string, []string, error) {
	return ledger.SplitCompositeKey(compositeKey)
}

// GetState - current value of a key, nil if absent
//
// writes made earlier in the same transaction are visible
func (t *Transaction) GetState(key string) ([]byte, error) {
	t.Lock()
	defer t.Unlock()

	if t.finished {
		return nil, fault.TransactionAborted
	}
	if "" == key {
		return nil, errors.Wrap(fault.InvalidKeyComponent, "empty key")
	}

	if value, found := t.writes.Get(key); found {
		return value, nil
	}

	data, err := t.ledger.db.Get(stateKey(key), nil)
	if leveldb.ErrNotFound == err {
		t.recordRead(key, 0)
		return nil, nil
	} else if nil != err {
		return nil, err
	}

	version, value, err := unpackState(data)
	if nil != err {
		return nil, err
	}
	t.recordRead(key, version)
	return value, nil
}

// only the first read of a key counts for conflict detection
func (t *Transaction) recordRead(key string, version uint64) {
	if _, ok := t.readSet[key]; !ok {
		t.readSet[key] = version
	}
}

// PutState - stage a write, visible to the ledger only after Commit
func (t *Transaction) PutState(key string, value []byte) error {
	t.Lock()
	defer t.Unlock()

	if t.finished {
		return fault.TransactionAborted
	}
	if t.ledger.readOnly {
		return fault.DatabaseIsReadOnly
	}
	if "" == key {
		return errors.Wrap(fault.InvalidKeyComponent, "empty key")
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	t.writes.Set(dbPut, key, stored)
	return nil
}

// GetHistoryForKey - every committed value of a key, oldest first
func (t *Transaction) GetHistoryForKey(key string) (ledger.HistoryIterator, error) {
	if err := t.checkOpen(); nil != err {
		return nil, err
	}
	if "" == key {
		return nil, errors.Wrap(fault.InvalidKeyComponent, "empty key")
	}
	return newHistoryIterator(t.ledger.db, key), nil
}

// GetStateByPartialCompositeKey - committed keys with a composite key prefix
//
// staged writes of this transaction are not included
func (t *Transaction) GetStateByPartialCompositeKey(objectType string, attributes []string) (ledger.StateIterator, error) {
	if err := t.checkOpen(); nil != err {
		return nil, err
	}
	prefix, err := ledger.CreateCompositeKey(objectType, attributes)
	if nil != err {
		return nil, err
	}
	return newStateIterator(t.ledger.db, prefix, nil), nil
}

// GetQueryResult - committed records satisfying a selector document
func (t *Transaction) GetQueryResult(query string) (ledger.StateIterator, error) {
	if err := t.checkOpen(); nil != err {
		return nil, err
	}
	q, err := selector.ParseString(query)
	if nil != err {
		return nil, err
	}
	return newStateIterator(t.ledger.db, "", q), nil
}

func (t *Transaction) checkOpen() error {
	t.Lock()
	defer t.Unlock()
	if t.finished {
		return fault.TransactionAborted
	}
	return nil
}

// Commit - apply staged writes as one new ledger version
//
// fails with fault.OptimisticConflict if any key read by this
// transaction was changed by another commit since it was read
func (t *Transaction) Commit() error {
	t.Lock()
	defer t.Unlock()

	if t.finished {
		return fault.TransactionAborted
	}
	t.finished = true
	defer t.writes.Clear()

	l := t.ledger
	l.Lock()
	defer l.Unlock()

	if nil == l.db {
		return fault.NotInitialised
	}

	for key, seen := range t.readSet {
		current, err := committedVersion(l.db, key)
		if nil != err {
			return err
		}
		if current != seen {
			l.log.Debugf("tx: %s  conflict on key: %q  read: %d  current: %d", t.txID, key, seen, current)
			return errors.Wrapf(fault.OptimisticConflict, "key: %q", key)
		}
	}

	if 0 == t.writes.Size() {
		return nil
	}

	version := l.height() + 1

	keys := t.writes.Keys()
	batch := new(leveldb.Batch)
	for _, key := range keys {
		value, _ := t.writes.Get(key)

		record, err := json.Marshal(historyRecord{
			TxID:      t.txID,
			Timestamp: t.timestamp,
			Value:     value,
		})
		if nil != err {
			return err
		}

		batch.Put(stateKey(key), packState(version, value))
		batch.Put(historyKey(key, version), record)
	}
	batch.Put([]byte{prefixSequence}, versionBytes(version))

	if err := l.db.Write(batch, nil); nil != err {
		l.log.Errorf("tx: %s  commit error: %s", t.txID, err)
		return err
	}

	l.log.Debugf("tx: %s  committed version: %d  keys: %d", t.txID, version, len(keys))
	return nil
}

// Abort - discard staged writes
func (t *Transaction) Abort() {
	t.Lock()
	defer t.Unlock()

	if t.finished {
		return
	}
	t.finished = true
	t.writes.Clear()
}

func committedVersion(db *leveldb.DB, key string) (uint64, error) {
	data, err := db.Get(stateKey(key), nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}
	version, _, err := unpackState(data)
	return version, err
}
