// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/ballotd/fault"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const versionSize = 8

// stored in the history pool
type historyRecord struct {
	TxID      string    `json:"txId"`
	Timestamp time.Time `json:"timestamp"`
	Value     []byte    `json:"value"`
}

func stateKey(key string) []byte {
	return append([]byte{prefixState}, key...)
}

func historyPrefix(key string) []byte {
	return append([]byte{prefixHistory}, key...)
}

func historyKey(key string, version uint64) []byte {
	return append(historyPrefix(key), versionBytes(version)...)
}

func versionBytes(version uint64) []byte {
	buffer := make([]byte, versionSize)
	binary.BigEndian.PutUint64(buffer, version)
	return buffer
}

// packState - version ++ value
func packState(version uint64, value []byte) []byte {
	return append(versionBytes(version), value...)
}

// unpackState - split a state record, the returned value is a copy
func unpackState(data []byte) (uint64, []byte, error) {
	if len(data) < versionSize {
		return 0, nil, errors.Wrapf(fault.MalformedRecord, "state record length: %d", len(data))
	}
	value := make([]byte, len(data)-versionSize)
	copy(value, data[versionSize:])
	return binary.BigEndian.Uint64(data[:versionSize]), value, nil
}
