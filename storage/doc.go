// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger
//
// This maintains a LevelDB database split into a series of pools.
// Each pool is defined by a single byte prefix.
//
// Notes:
//  1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
//  2. ++          = concatenation of byte data
//  3. version     = commit sequence number as big endian uint64 (8 bytes)
//  4. key         = ledger key, normally a composite key
//     0x00 ++ type ++ 0x00 ++ attribute ++ 0x00 ...
//
// State:
//
//	S ++ key                 - current value of a key
//	                           data: version ++ value
//
// History:
//
//	H ++ key ++ version      - every committed value of a key
//	                           data: JSON {txId, timestamp, value}
//
// Sequence:
//
//	N                        - last committed version
//	                           data: version
//
// Database:
//
//	0x00 ++ "VERSION"        - database format version (big endian uint32)
//
// One invocation runs inside one Transaction.  Reads record the
// version seen, writes are held in a cache until Commit, which
// re-checks every read version under the commit lock and writes the
// whole batch atomically, or fails with fault.OptimisticConflict.
package storage
