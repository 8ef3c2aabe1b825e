// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"
)

//go:generate mockgen -source=ledger.go -destination=mocks/mock_ledger.go -package=mocks

// KV - one current state record returned by a range or selector query
type KV struct {
	Key   string
	Value []byte
}

// Modification - one committed version of a key
type Modification struct {
	TxID      string
	Timestamp time.Time
	Value     []byte
}

// StateIterator - lazy, finite and not restartable
type StateIterator interface {
	HasNext() bool
	Next() (*KV, error)
	Close() error
}

// HistoryIterator - versions of a single key in commit order
type HistoryIterator interface {
	HasNext() bool
	Next() (*Modification, error)
	Close() error
}

// Stub - transaction scoped access to the ledger
//
// GetState returns nil, nil for an absent key
type Stub interface {
	GetTxID() string
	GetTxTimestamp() time.Time
	GetState(key string) ([]byte, error)
	PutState(key string, value []byte) error
	GetHistoryForKey(key string) (HistoryIterator, error)
	GetStateByPartialCompositeKey(objectType string, attributes []string) (StateIterator, error)
	GetQueryResult(query string) (StateIterator, error)
	CreateCompositeKey(objectType string, attributes []string) (string, error)
	SplitCompositeKey(compositeKey string) (string, []string, error)
}

// ClientIdentity - the invoking caller as resolved by membership
type ClientIdentity interface {
	GetMSPID() (string, error)
	GetID() (string, error)
}

// Context - everything one invocation may touch
type Context struct {
	Stub     Stub
	Identity ClientIdentity
}

// NewContext - bundle a stub and identity for one invocation
func NewContext(stub Stub, identity ClientIdentity) Context {
	return Context{
		Stub:     stub,
		Identity: identity,
	}
}
