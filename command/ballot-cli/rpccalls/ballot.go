// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/ballotd/ballot"
	rpcballot "github.com/bitmark-inc/ballotd/rpc/ballot"
)

// Issue - create a ballot
func (client *Client) Issue(arguments *rpcballot.IssueArguments) (*ballot.Ballot, error) {
	var reply rpcballot.Reply
	if err := client.call("Ballot.Issue", arguments, &reply); nil != err {
		return nil, err
	}
	return reply.Ballot, nil
}

// Cast - record a vote
func (client *Client) Cast(arguments *rpcballot.CastArguments) (*ballot.Ballot, error) {
	var reply rpcballot.Reply
	if err := client.call("Ballot.Cast", arguments, &reply); nil != err {
		return nil, err
	}
	return reply.Ballot, nil
}

// CastRequest - record a vote that needs confirmation
func (client *Client) CastRequest(arguments *rpcballot.CastArguments) (*ballot.Ballot, error) {
	var reply rpcballot.Reply
	if err := client.call("Ballot.CastRequest", arguments, &reply); nil != err {
		return nil, err
	}
	return reply.Ballot, nil
}

// Tallied - confirm a pending vote
func (client *Client) Tallied(arguments *rpcballot.TalliedArguments) (*ballot.Ballot, error) {
	var reply rpcballot.Reply
	if err := client.call("Ballot.Tallied", arguments, &reply); nil != err {
		return nil, err
	}
	return reply.Ballot, nil
}

// Audit - verify a counted vote
func (client *Client) Audit(arguments *rpcballot.AuditArguments) (*ballot.Ballot, error) {
	var reply rpcballot.Reply
	if err := client.call("Ballot.Audit", arguments, &reply); nil != err {
		return nil, err
	}
	return reply.Ballot, nil
}
