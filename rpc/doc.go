// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the incoming JSON RPC requests
// from clients requiring ballotd services
//
// every TLS client must present a certificate registered in the
// membership file, its organisation is the MSP id seen by the ballot
// functions for all calls on that connection
//
// standard golang RPC services can be used on the client side to
// access these services:
//
//	Ballot.Issue  Ballot.Cast  Ballot.CastRequest  Ballot.Tallied  Ballot.Audit
//	Ballot.History  Ballot.Election  Ballot.Partial  Ballot.Adhoc  Ballot.Named
//	Node.Info
//
// an optional HTTPS gateway offers the queries as read only GET requests
package rpc
