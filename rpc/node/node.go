// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ballotd/counter"
	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

// Heighter - the commit sequence of the ledger
type Heighter interface {
	Height() (uint64, error)
}

// Counter - the number of registered members
type Counter interface {
	Count() int
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Ledger  Heighter
	Members Counter
	counter *counter.Counter
}

// New - node information receiver
func New(log *logger.L, limiter *rate.Limiter, start time.Time, version string, l Heighter, members Counter, count *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: limiter,
		Start:   start,
		Version: version,
		Ledger:  l,
		Members: members,
		counter: count,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Height  uint64 `json:"height"`
	RPCs    uint64 `json:"rpcs"`
	Members int    `json:"members"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Ledger {
		return fault.NotInitialised
	}

	height, err := node.Ledger.Height()
	if nil != err {
		return err
	}
	reply.Height = height
	reply.RPCs = node.counter.Uint64()
	if nil != node.Members {
		reply.Members = node.Members.Count()
	}
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
