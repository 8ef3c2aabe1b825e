// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the collaborator interfaces seen by contract code
//
// A contract never holds a database handle or a caller identity between
// calls. Each invocation receives a Context carrying:
//
//	Stub     - the transaction scoped view of the ledger
//	           (get/put state, history, range and selector queries)
//	Identity - the invoking client's organisation (MSP id)
//
// Composite keys follow the layout:
//
//	0x00 ++ objectType ++ 0x00 ++ attribute-1 ++ 0x00 ++ ... ++ attribute-n ++ 0x00
//
// so that all records of one object type, and all records sharing a
// leading set of attributes, occupy one contiguous key range.
package ledger
