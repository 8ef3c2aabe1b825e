// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/fixtures"
	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/ballotd/storage"
)

var timestamp = time.Date(2020, 3, 1, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T) *storage.Ledger {
	fixtures.SetupTestLogger()
	l, err := storage.OpenMemory()
	require.NoError(t, err, "open memory ledger")
	return l
}

func teardown(l *storage.Ledger) {
	l.Close()
	fixtures.TeardownTestLogger()
}

func key(t *testing.T, attributes ...string) string {
	k, err := ledger.CreateCompositeKey("org.example.item", attributes)
	require.NoError(t, err, "composite key")
	return k
}

// commit a set of writes as one transaction
func put(t *testing.T, l *storage.Ledger, txID string, kv map[string]string) {
	tx := l.Begin(txID, timestamp)
	for k, v := range kv {
		require.NoError(t, tx.PutState(k, []byte(v)), "put: %q", k)
	}
	require.NoError(t, tx.Commit(), "commit: %s", txID)
}

func TestReadYourWritesAndCommit(t *testing.T) {
	l := setup(t)
	defer teardown(l)

	k := key(t, "1", "1")

	tx := l.Begin("tx-1", timestamp)
	value, err := tx.GetState(k)
	assert.NoError(t, err, "get absent key")
	assert.Nil(t, value, "absent key has a value")

	assert.NoError(t, tx.PutState(k, []byte("one")), "put")
	value, err = tx.GetState(k)
	assert.NoError(t, err, "get staged key")
	assert.Equal(t, []byte("one"), value, "staged write not visible")

	other := l.Begin("tx-other", timestamp)
	value, err = other.GetState(k)
	assert.NoError(t, err, "get from other transaction")
	assert.Nil(t, value, "uncommitted write visible to other transaction")
	other.Abort()

	assert.Equal(t, uint64(0), height(t, l), "height before commit")
	assert.NoError(t, tx.Commit(), "commit")
	assert.Equal(t, uint64(1), height(t, l), "height after commit")

	after := l.Begin("tx-2", timestamp)
	value, err = after.GetState(k)
	assert.NoError(t, err, "get committed key")
	assert.Equal(t, []byte("one"), value, "committed value")
	after.Abort()
}

func TestAbortDiscardsWrites(t *testing.T) {
	l := setup(t)
	defer teardown(l)

	k := key(t, "1", "1")

	tx := l.Begin("tx-1", timestamp)
	assert.NoError(t, tx.PutState(k, []byte("one")), "put")
	tx.Abort()

	assert.ErrorIs(t, tx.Commit(), fault.TransactionAborted, "commit after abort")
	assert.ErrorIs(t, tx.PutState(k, []byte("two")), fault.TransactionAborted, "put after abort")

	check := l.Begin("tx-2", timestamp)
	value, err := check.GetState(k)
	assert.NoError(t, err, "get")
	assert.Nil(t, value, "aborted write was stored")
	assert.Equal(t, uint64(0), height(t, l), "height changed by abort")
}

func TestConflictingCommitIsRejected(t *testing.T) {
	l := setup(t)
	defer teardown(l)

	k := key(t, "1", "1")
	put(t, l, "tx-0", map[string]string{k: "initial"})

	first := l.Begin("tx-1", timestamp)
	second := l.Begin("tx-2", timestamp)

	_, err := first.GetState(k)
	require.NoError(t, err, "first read")
	_, err = second.GetState(k)
	require.NoError(t, err, "second read")

	require.NoError(t, first.PutState(k, []byte("first")), "first put")
	require.NoError(t, second.PutState(k, []byte("second")), "second put")

	assert.NoError(t, first.Commit(), "first commit")
	err = second.Commit()
	assert.ErrorIs(t, err, fault.OptimisticConflict, "second commit")
	assert.True(t, fault.IsRetryable(err), "conflict is not retryable")

	check := l.Begin("tx-3", timestamp)
	value, err := check.GetState(k)
	assert.NoError(t, err, "get")
	assert.Equal(t, []byte("first"), value, "losing write was stored")
}

func TestConflictOnAbsentKey(t *testing.T) {
	l := setup(t)
	defer teardown(l)

	k := key(t, "1", "1")

	first := l.Begin("tx-1", timestamp)
	second := l.Begin("tx-2", timestamp)
	for _, tx := range []*storage.Transaction{first, second} {
		value, err := tx.GetState(k)
		require.NoError(t, err, "read")
		require.Nil(t, value, "key exists")
		require.NoError(t, tx.PutState(k, []byte(tx.GetTxID())), "put")
	}

	assert.NoError(t, first.Commit(), "first create")
	assert.ErrorIs(t, second.Commit(), fault.OptimisticConflict, "second create")
}

func TestHistoryIsOrderedAndExact(t *testing.T) {
	l := setup(t)
	defer teardown(l)

	short := key(t, "1")
	long := key(t, "1", "2")

	put(t, l, "tx-a", map[string]string{short: "a"})
	put(t, l, "tx-b", map[string]string{long: "other"})
	put(t, l, "tx-c", map[string]string{short: "c"})

	tx := l.Begin("tx-read", timestamp)
	defer tx.Abort()

	iter, err := tx.GetHistoryForKey(short)
	require.NoError(t, err, "history")
	defer iter.Close()

	txIDs := []string{}
	values := []string{}
	for iter.HasNext() {
		m, err := iter.Next()
		require.NoError(t, err, "next")
		txIDs = append(txIDs, m.TxID)
		values = append(values, string(m.Value))
		assert.True(t, timestamp.Equal(m.Timestamp), "wrong timestamp: %s", m.Timestamp)
	}
	assert.Equal(t, []string{"tx-a", "tx-c"}, txIDs, "wrong transactions")
	assert.Equal(t, []string{"a", "c"}, values, "wrong values")

	_, err = iter.Next()
	assert.ErrorIs(t, err, fault.InvalidCursor, "next past the end")
}

func TestPartialCompositeKey(t *testing.T) {
	l := setup(t)
	defer teardown(l)

	put(t, l, "tx-1", map[string]string{
		key(t, "1", "1"):  "1:1",
		key(t, "1", "2"):  "1:2",
		key(t, "10", "1"): "10:1",
		key(t, "2", "1"):  "2:1",
	})

	tx := l.Begin("tx-read", timestamp)
	defer tx.Abort()

	iter, err := tx.GetStateByPartialCompositeKey("org.example.item", []string{"1"})
	require.NoError(t, err, "partial")
	defer iter.Close()

	values := []string{}
	for iter.HasNext() {
		kv, err := iter.Next()
		require.NoError(t, err, "next")
		_, attributes, err := ledger.SplitCompositeKey(kv.Key)
		require.NoError(t, err, "split: %q", kv.Key)
		assert.Equal(t, "1", attributes[0], "wrong first attribute")
		values = append(values, string(kv.Value))
	}
	assert.Equal(t, []string{"1:1", "1:2"}, values, "wrong values")
}

func TestQueryResult(t *testing.T) {
	l := setup(t)
	defer teardown(l)

	put(t, l, "tx-1", map[string]string{
		key(t, "1"): `{"class":"item","size":1}`,
		key(t, "2"): `{"class":"item","size":2}`,
		key(t, "3"): `{"class":"item","size":3}`,
		key(t, "4"): `{"class":"other","size":4}`,
		key(t, "5"): `not json`,
	})

	tx := l.Begin("tx-read", timestamp)
	defer tx.Abort()

	iter, err := tx.GetQueryResult(`{"selector":{"class":"item","size":{"$gte":2}}}`)
	require.NoError(t, err, "query")
	n := 0
	for iter.HasNext() {
		_, err := iter.Next()
		require.NoError(t, err, "next")
		n += 1
	}
	assert.NoError(t, iter.Close(), "close")
	assert.Equal(t, 2, n, "wrong match count")

	iter, err = tx.GetQueryResult(`{"selector":{"class":"item"},"skip":1,"limit":1}`)
	require.NoError(t, err, "query with skip and limit")
	require.True(t, iter.HasNext(), "no result")
	kv, err := iter.Next()
	require.NoError(t, err, "next")
	assert.Equal(t, key(t, "2"), kv.Key, "wrong record")
	assert.False(t, iter.HasNext(), "limit ignored")
	assert.NoError(t, iter.Close(), "close")

	_, err = tx.GetQueryResult(`{"selector":`)
	assert.ErrorIs(t, err, fault.InvalidQuery, "malformed query")
}

func TestReopenPersistsState(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := os.MkdirTemp("", "ballotd-storage")
	require.NoError(t, err, "temp dir")
	defer os.RemoveAll(dir)
	name := filepath.Join(dir, "ballotd.leveldb")

	l, err := storage.Open(name, storage.ReadWrite)
	require.NoError(t, err, "open")
	k := key(t, "7")
	put(t, l, "tx-1", map[string]string{k: "seven"})
	l.Close()

	l, err = storage.Open(name, storage.ReadOnly)
	require.NoError(t, err, "reopen read only")
	defer l.Close()

	assert.Equal(t, uint64(1), height(t, l), "height after reopen")
	tx := l.Begin("tx-2", timestamp)
	value, err := tx.GetState(k)
	assert.NoError(t, err, "get")
	assert.Equal(t, []byte("seven"), value, "value after reopen")
	assert.ErrorIs(t, tx.PutState(k, []byte("x")), fault.DatabaseIsReadOnly, "put on read only ledger")
}

func TestClosedLedger(t *testing.T) {
	l := setup(t)
	defer teardown(l)

	tx := l.Begin("tx-1", timestamp)
	assert.NoError(t, tx.PutState(key(t, "1"), []byte("one")), "put")

	l.Close()

	_, err := l.Height()
	assert.ErrorIs(t, err, fault.NotInitialised, "height after close")
	assert.ErrorIs(t, tx.Commit(), fault.NotInitialised, "commit after close")
}

func TestEmptyKeyIsRejected(t *testing.T) {
	l := setup(t)
	defer teardown(l)

	tx := l.Begin("tx-1", timestamp)
	defer tx.Abort()

	_, err := tx.GetState("")
	assert.ErrorIs(t, err, fault.InvalidKeyComponent, "get empty key")
	assert.ErrorIs(t, tx.PutState("", []byte("x")), fault.InvalidKeyComponent, "put empty key")
}

func height(t *testing.T, l *storage.Ledger) uint64 {
	h, err := l.Height()
	require.NoError(t, err, "height")
	return h
}
