// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/logger"
)

// pool prefixes
const (
	prefixState    = 'S'
	prefixHistory  = 'H'
	prefixSequence = 'N'
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Ledger - handle to an open ledger database
type Ledger struct {
	sync.Mutex // held for the duration of a commit

	log      *logger.L
	db       *leveldb.DB
	readOnly bool
}

// Open - open up the database connection
//
// a new database is tagged with the current version, an existing one
// must already be at the current version
func Open(database string, readOnly bool) (*Ledger, error) {
	log := logger.New("storage")

	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(database, opt)
	if nil != err {
		return nil, err
	}

	l, err := newLedger(log, db, readOnly)
	if nil != err {
		db.Close()
		return nil, err
	}
	log.Infof("opened: %q  read only: %t  height: %d", database, readOnly, l.height())
	return l, nil
}

// OpenMemory - a non-persistent ledger, used by tests and tools
func OpenMemory() (*Ledger, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	l, err := newLedger(logger.New("storage"), db, ReadWrite)
	if nil != err {
		db.Close()
		return nil, err
	}
	return l, nil
}

func newLedger(log *logger.L, db *leveldb.DB, readOnly bool) (*Ledger, error) {
	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	switch {
	case 0 == version && readOnly:
		return nil, errors.Wrap(fault.IncompatibleDatabase, "empty database opened read only")

	case 0 == version:
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			return nil, err
		}

	case version != currentDBVersion:
		log.Criticalf("database version: %d  current version: %d", version, currentDBVersion)
		return nil, errors.Wrapf(fault.IncompatibleDatabase, "version: %d  expected: %d", version, currentDBVersion)
	}

	return &Ledger{
		log:      log,
		db:       db,
		readOnly: readOnly,
	}, nil
}

// Close - close the database connection
func (l *Ledger) Close() {
	l.Lock()
	defer l.Unlock()
	if nil != l.db {
		l.db.Close()
		l.db = nil
	}
}

// IsReadOnly - true if no transaction may commit writes
func (l *Ledger) IsReadOnly() bool {
	return l.readOnly
}

// Height - the last committed version, zero for an empty ledger
func (l *Ledger) Height() (uint64, error) {
	l.Lock()
	defer l.Unlock()

	if nil == l.db {
		return 0, fault.NotInitialised
	}
	return l.height(), nil
}

// caller holds the lock
func (l *Ledger) height() uint64 {
	value, err := l.db.Get([]byte{prefixSequence}, nil)
	if leveldb.ErrNotFound == err {
		return 0
	}
	logger.PanicIfError("storage.Height", err)
	if 8 != len(value) {
		logger.Panicf("storage.Height truncated record: %x", value)
	}
	return binary.BigEndian.Uint64(value)
}

// Begin - start a transaction for one invocation
func (l *Ledger) Begin(txID string, timestamp time.Time) *Transaction {
	return newTransaction(l, txID, timestamp, newCache())
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, errors.Wrapf(fault.IncompatibleDatabase, "version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
