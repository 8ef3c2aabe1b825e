// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincode - run one named function as one ledger transaction
//
// arguments arrive as strings, numbers are parsed here; the result is
// JSON and a failed function leaves the ledger unchanged
package chaincode
