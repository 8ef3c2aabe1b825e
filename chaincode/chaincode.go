// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincode

import (
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ballotd/ballot"
	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/ballotd/query"
	"github.com/bitmark-inc/ballotd/storage"
	"github.com/bitmark-inc/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type handler func(c *Chaincode, ctx ledger.Context, args []string) (interface{}, error)

type function struct {
	parameters []string
	readOnly   bool
	run        handler
}

// Chaincode - dispatcher for the ballot functions
type Chaincode struct {
	log     *logger.L
	ledger  *storage.Ledger
	ballots *ballot.Contract
	queries *query.Adapter
}

// New - dispatcher over an open ledger
func New(l *storage.Ledger) *Chaincode {
	return &Chaincode{
		log:     logger.New("chaincode"),
		ledger:  l,
		ballots: ballot.NewContract(),
		queries: query.NewAdapter(),
	}
}

// Functions - names accepted by Invoke
func Functions() []string {
	names := make([]string, len(functionOrder))
	copy(names, functionOrder)
	return names
}

// Invoke - run a function for a caller
//
// OptimisticConflict is returned unchanged so the caller may retry the
// whole invocation
func (c *Chaincode) Invoke(identity ledger.ClientIdentity, name string, args []string) ([]byte, error) {
	if nil == identity {
		return nil, fault.UnknownCertificate
	}

	f, ok := functions[name]
	if !ok {
		c.log.Warnf("unknown function: %q", name)
		return nil, errors.Wrapf(fault.UnknownFunction, "function: %q", name)
	}
	if len(args) != len(f.parameters) {
		return nil, errors.Wrapf(fault.WrongArgumentCount, "function: %s  expected: %d (%v)  actual: %d", name, len(f.parameters), f.parameters, len(args))
	}

	txID, err := transactionID(identity)
	if nil != err {
		return nil, err
	}
	tx := c.ledger.Begin(txID, time.Now().UTC())

	c.log.Debugf("tx: %s  function: %s  args: %q", txID, name, args)

	result, err := f.run(c, ledger.NewContext(tx, identity), args)
	if nil != err {
		tx.Abort()
		c.log.Debugf("tx: %s  aborted: %s", txID, err)
		return nil, err
	}

	if f.readOnly {
		tx.Abort()
	} else if err := tx.Commit(); nil != err {
		c.log.Warnf("tx: %s  commit: %s", txID, err)
		return nil, err
	}

	if nil == result {
		return nil, nil
	}
	return json.Marshal(result)
}

// hex SHA3-256 of a random nonce and the creator
func transactionID(identity ledger.ClientIdentity) (string, error) {
	creator, err := identity.GetID()
	if nil != err {
		return "", err
	}
	nonce := uuid.New()
	digest := sha3.Sum256(append(nonce[:], creator...))
	return hex.EncodeToString(digest[:]), nil
}

func parseNumber(name string, value string) (uint64, error) {
	n, err := strconv.ParseUint(value, 10, 64)
	if nil != err {
		return 0, errors.Wrapf(fault.InvalidArgument, "%s: %q is not a number", name, value)
	}
	return n, nil
}
