// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package query - read only views over stored ballots
//
// results are produced lazily from the ledger iterators and must be
// closed; a result cannot be restarted, run the query again instead
package query
