// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/ledger"
)

// List - records of one class stored under a common list name
type List[T any, P interface {
	*T
	Entity
}] struct {
	stub  ledger.Stub
	name  string
	class string
}

// NewList - access a list through the stub of the current invocation
func NewList[T any, P interface {
	*T
	Entity
}](stub ledger.Stub, name string, class string) *List[T, P] {
	return &List[T, P]{
		stub:  stub,
		name:  name,
		class: class,
	}
}

// Name - the list name used as composite key object type
func (l *List[T, P]) Name() string {
	return l.name
}

// LedgerKey - composite ledger key of a record key
func (l *List[T, P]) LedgerKey(key string) (string, error) {
	return l.stub.CreateCompositeKey(l.name, SplitKey(key))
}

// Add - store a new record, fails if the key is already present
func (l *List[T, P]) Add(record *T) error {
	key, ledgerKey, err := l.keys(record)
	if nil != err {
		return err
	}

	existing, err := l.stub.GetState(ledgerKey)
	if nil != err {
		return err
	}
	if nil != existing {
		return errors.Wrapf(fault.AlreadyExists, "key: %s", key)
	}
	return l.put(ledgerKey, record)
}

// Get - fetch the record stored under a key
func (l *List[T, P]) Get(key string) (*T, error) {
	ledgerKey, err := l.LedgerKey(key)
	if nil != err {
		return nil, err
	}

	data, err := l.stub.GetState(ledgerKey)
	if nil != err {
		return nil, err
	}
	if nil == data {
		return nil, errors.Wrapf(fault.NotFound, "key: %s", key)
	}
	return Deserialize[T, P](data, l.class)
}

// Update - overwrite an existing record
func (l *List[T, P]) Update(record *T) error {
	key, ledgerKey, err := l.keys(record)
	if nil != err {
		return err
	}

	existing, err := l.stub.GetState(ledgerKey)
	if nil != err {
		return err
	}
	if nil == existing {
		return errors.Wrapf(fault.NotFound, "key: %s", key)
	}
	return l.put(ledgerKey, record)
}

func (l *List[T, P]) keys(record *T) (string, string, error) {
	key, err := KeyOf(P(record))
	if nil != err {
		return "", "", err
	}
	ledgerKey, err := l.LedgerKey(key)
	if nil != err {
		return "", "", err
	}
	return key, ledgerKey, nil
}

func (l *List[T, P]) put(ledgerKey string, record *T) error {
	data, err := Serialize(P(record))
	if nil != err {
		return err
	}
	return l.stub.PutState(ledgerKey, data)
}
