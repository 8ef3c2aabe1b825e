// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ballot - the ballot record and its lifecycle
//
// a ballot moves through the states:
//
//	issue -> ISSUED -> cast ------------------------> TALLY -> audit -> VERIFIED
//	                -> cast_request -> PENDING -> tallied ->
//
// once a candidate has been selected a ballot cannot be cast again,
// and VERIFIED is terminal
package ballot
