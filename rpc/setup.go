// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net/rpc"
	"sync"
	"time"

	"github.com/bitmark-inc/ballotd/chaincode"
	"github.com/bitmark-inc/ballotd/counter"
	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/ballotd/membership"
	"github.com/bitmark-inc/ballotd/rpc/certificate"
	"github.com/bitmark-inc/ballotd/rpc/handler"
	"github.com/bitmark-inc/ballotd/rpc/listeners"
	"github.com/bitmark-inc/ballotd/rpc/ratelimit"
	"github.com/bitmark-inc/ballotd/rpc/server"
	"github.com/bitmark-inc/ballotd/storage"
	"github.com/bitmark-inc/logger"
)

const (
	tlsName   = "client_rpc"
	httpsName = "https_rpc"

	// identity used for gateway queries
	GatewayMSP = "gateway"
	GatewayID  = "https"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listeners []listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// connection counts
var connectionCountRPC counter.Counter
var connectionCountHTTPS counter.Counter

// Initialise - start the RPC and HTTPS listeners
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration, version string, l *storage.Ledger, members *membership.Registry) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	shared := &server.Shared{
		Log:     log,
		Start:   time.Now().UTC(),
		Version: version,
		Limiter: ratelimit.New(rpcConfiguration.RequestRate, rpcConfiguration.RequestBurst),
		Invoker: chaincode.New(l),
		Ledger:  l,
		Members: members,
		Count:   &connectionCountRPC,
	}

	tlsConfig, certificateFingerprint, err := certificate.Load(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		func(identity ledger.ClientIdentity) *rpc.Server {
			return server.Create(shared, identity)
		},
		members,
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		return err
	}

	httpsListener, err := initialiseHTTPS(httpsConfiguration, shared)
	if nil != err {
		return err
	}

	globalData.listeners = append(globalData.listeners, rpcListener)
	if nil != httpsListener {
		globalData.listeners = append(globalData.listeners, httpsListener)
	}

	for _, listener := range globalData.listeners {
		if err := listener.Serve(); nil != err {
			closeListeners()
			return err
		}
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	closeListeners()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

func closeListeners() {
	for _, listener := range globalData.listeners {
		listener.Close()
	}
	globalData.listeners = nil
}

// HTTPS gateway, nil if not configured
func initialiseHTTPS(configuration *listeners.HTTPSConfiguration, shared *server.Shared) (listeners.Listener, error) {
	log := globalData.log

	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsName)
		return nil, nil
	}

	tlsConfiguration, fingerprint, err := certificate.Load(log, httpsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return nil, err
	}

	log.Infof("%s: SHA3-256 fingerprint: %s", httpsName, fingerprint)

	gateway := *shared
	gateway.Count = &connectionCountHTTPS

	hdlr := handler.New(log, &gateway, membership.NewIdentity(GatewayMSP, GatewayID))

	return listeners.NewHTTPS(configuration, log, &connectionCountHTTPS, tlsConfiguration, hdlr)
}
