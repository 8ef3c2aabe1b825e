// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/ballotd/query"
	rpcballot "github.com/bitmark-inc/ballotd/rpc/ballot"
)

// History - all versions of one ballot
func (client *Client) History(electionNumber uint64, ballotNumber uint64) ([]*query.Snapshot, error) {
	arguments := rpcballot.HistoryArguments{
		ElectionNumber: electionNumber,
		BallotNumber:   ballotNumber,
	}
	var reply rpcballot.HistoryReply
	if err := client.call("Ballot.History", &arguments, &reply); nil != err {
		return nil, err
	}
	return reply.History, nil
}

// Election - ballots of one election
func (client *Client) Election(electionNumber uint64) ([]*query.Record, error) {
	arguments := rpcballot.ElectionArguments{
		ElectionNumber: electionNumber,
	}
	return client.query("Ballot.Election", &arguments)
}

// Partial - ballots whose key starts with the prefix
func (client *Client) Partial(prefix string) ([]*query.Record, error) {
	arguments := rpcballot.PartialArguments{
		Prefix: prefix,
	}
	return client.query("Ballot.Partial", &arguments)
}

// Adhoc - ballots matching a selector document
func (client *Client) Adhoc(document string) ([]*query.Record, error) {
	arguments := rpcballot.AdhocArguments{
		Query: document,
	}
	return client.query("Ballot.Adhoc", &arguments)
}

// Named - ballots matching a predefined query
func (client *Client) Named(name string) ([]*query.Record, error) {
	arguments := rpcballot.NamedArguments{
		Name: name,
	}
	return client.query("Ballot.Named", &arguments)
}

func (client *Client) query(method string, arguments interface{}) ([]*query.Record, error) {
	var reply rpcballot.QueryReply
	if err := client.call(method, arguments, &reply); nil != err {
		return nil, err
	}
	return reply.Ballots, nil
}
