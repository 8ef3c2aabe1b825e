// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_iterator "github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/ballotd/selector"
)

// cursor - lookahead over a prefix range of the database
//
// decode returns nil, nil for entries that should be skipped
type cursor struct {
	iter   ldb_iterator.Iterator
	decode func(key []byte, value []byte) (interface{}, error)
	next   interface{}
	err    error
	closed bool
}

func newCursor(db *leveldb.DB, prefix []byte, decode func([]byte, []byte) (interface{}, error)) *cursor {
	return &cursor{
		iter:   db.NewIterator(ldb_util.BytesPrefix(prefix), nil),
		decode: decode,
	}
}

func (c *cursor) hasNext() bool {
	if c.closed {
		return false
	}
	if nil != c.next || nil != c.err {
		return true
	}
	for c.iter.Next() {
		item, err := c.decode(c.iter.Key(), c.iter.Value())
		if nil != err {
			c.err = err
			return true
		}
		if nil != item {
			c.next = item
			return true
		}
	}
	if err := c.iter.Error(); nil != err {
		c.err = err
		return true
	}
	return false
}

func (c *cursor) fetch() (interface{}, error) {
	if !c.hasNext() {
		return nil, errors.Wrap(fault.InvalidCursor, "no more results")
	}
	if nil != c.err {
		err := c.err
		c.err = nil
		return nil, err
	}
	item := c.next
	c.next = nil
	return item, nil
}

func (c *cursor) close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.next = nil
	c.iter.Release()
	return c.iter.Error()
}

// stateIterator - ledger.StateIterator over the state pool
type stateIterator struct {
	*cursor
}

// newStateIterator - keys starting with prefix, optionally filtered by a query
func newStateIterator(db *leveldb.DB, prefix string, query *selector.Query) *stateIterator {
	skip := 0
	limit := 0
	if nil != query {
		skip = query.Skip
		limit = query.Limit
	}
	returned := 0

	decode := func(key []byte, data []byte) (interface{}, error) {
		if limit > 0 && returned >= limit {
			return nil, nil
		}
		_, value, err := unpackState(data)
		if nil != err {
			return nil, err
		}
		if nil != query && !query.MatchesJSON(value) {
			return nil, nil
		}
		if skip > 0 {
			skip -= 1
			return nil, nil
		}
		returned += 1
		return &ledger.KV{
			Key:   string(key[1:]),
			Value: value,
		}, nil
	}

	return &stateIterator{
		cursor: newCursor(db, stateKey(prefix), decode),
	}
}

func (it *stateIterator) HasNext() bool {
	return it.hasNext()
}

func (it *stateIterator) Next() (*ledger.KV, error) {
	item, err := it.fetch()
	if nil != err {
		return nil, err
	}
	return item.(*ledger.KV), nil
}

func (it *stateIterator) Close() error {
	return it.close()
}

// historyIterator - ledger.HistoryIterator over one key's history
type historyIterator struct {
	*cursor
}

func newHistoryIterator(db *leveldb.DB, key string) *historyIterator {
	prefix := historyPrefix(key)
	decode := func(k []byte, data []byte) (interface{}, error) {

		// longer keys can share the prefix
		if len(k) != len(prefix)+versionSize {
			return nil, nil
		}
		var record historyRecord
		if err := json.Unmarshal(data, &record); nil != err {
			return nil, errors.Wrapf(fault.MalformedRecord, "history version: %d  error: %s", binary.BigEndian.Uint64(k[len(prefix):]), err)
		}
		return &ledger.Modification{
			TxID:      record.TxID,
			Timestamp: record.Timestamp,
			Value:     record.Value,
		}, nil
	}
	return &historyIterator{
		cursor: newCursor(db, prefix, decode),
	}
}

func (it *historyIterator) HasNext() bool {
	return it.hasNext()
}

func (it *historyIterator) Next() (*ledger.Modification, error) {
	item, err := it.fetch()
	if nil != err {
		return nil, err
	}
	return item.(*ledger.Modification), nil
}

func (it *historyIterator) Close() error {
	return it.close()
}
