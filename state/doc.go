// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package state - typed records stored under composite keys
//
// every record starts with a Header carrying its class and key, for
// example:
//
//	{"class":"org.evote.ballot","key":"100:1",...}
//
// a List gives existence checked access to the records of one class
// through a ledger.Stub and is created afresh for each invocation
package state
