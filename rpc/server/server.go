// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ballotd/counter"
	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/ballotd/rpc/ballot"
	"github.com/bitmark-inc/ballotd/rpc/node"
	"github.com/bitmark-inc/logger"
)

// Shared - state common to every connection
type Shared struct {
	Log     *logger.L
	Start   time.Time
	Version string
	Limiter *rate.Limiter
	Invoker ballot.Invoker
	Ledger  node.Heighter
	Members node.Counter
	Count   *counter.Counter
}

// Create - an RPC server whose receivers act for one identity
func Create(shared *Shared, identity ledger.ClientIdentity) *rpc.Server {

	server := rpc.NewServer()

	_ = server.Register(ballot.New(shared.Log, shared.Limiter, shared.Invoker, identity))
	_ = server.Register(node.New(shared.Log, shared.Limiter, shared.Start, shared.Version, shared.Ledger, shared.Members, shared.Count))

	return server
}
