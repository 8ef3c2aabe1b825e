// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
	"time"

	"github.com/bitmark-inc/ballotd/counter"
	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/ballotd/membership"
	"github.com/bitmark-inc/ballotd/util"
	"github.com/bitmark-inc/logger"
)

const (
	logName          = "client_rpc"
	handshakeTimeout = 10 * time.Second
)

// Identifier - resolves a client certificate to a member
type Identifier interface {
	LookupCertificate(certificate *x509.Certificate) (*membership.Identity, error)
}

// ServerFactory - builds the RPC server for one connection
type ServerFactory func(identity ledger.ClientIdentity) *rpc.Server

type rpcListener struct {
	sync.Mutex
	log             *logger.L
	listeners       []net.Listener
	count           *counter.Counter
	create          ServerFactory
	members         Identifier
	maxConnections  uint64
	tlsConfig       *tls.Config
	ipType          []string
	listenIPAndPort []string
}

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
	RequestRate        float64  `gluamapper:"request_rate" json:"request_rate"`
	RequestBurst       int      `gluamapper:"request_burst" json:"request_burst"`
}

// NewRPC - JSON RPC over TLS, every client must present a member certificate
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	create ServerFactory,
	members Identifier,
	tlsConfig *tls.Config,
	certificateFingerprint util.FingerprintBytes,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}
	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	log.Infof("%s: SHA3-256 fingerprint: %s", logName, certificateFingerprint)

	ipType, listen, err := parseListenAddress(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	r := &rpcListener{
		log:             log,
		maxConnections:  configuration.MaximumConnections,
		listenIPAndPort: listen,
		ipType:          ipType,
		create:          create,
		members:         members,
		count:           count,
		tlsConfig:       tlsConfig,
	}

	return r, nil
}

func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for i, listen := range r.listenIPAndPort {
		r.log.Infof("starting RPC server: %s", listen)
		listener, err := tls.Listen(r.ipType[i], listen, r.tlsConfig)
		if err != nil {
			r.log.Errorf("rpc server listen error: %s", err)
			return err
		}
		r.listeners = append(r.listeners, listener)

		go r.doServeRPC(listener)
	}
	return nil
}

func (r *rpcListener) Close() {
	r.Lock()
	defer r.Unlock()

	for _, listener := range r.listeners {
		_ = listener.Close()
	}
	r.listeners = nil
}

func (r *rpcListener) doServeRPC(listen net.Listener) {
	for {
		conn, err := listen.Accept()
		if err != nil {
			r.log.Infof("rpc accept terminated: %s", err)
			break
		}
		if !r.count.Acquire(r.maxConnections) {
			r.log.Warnf("connection limit reached, reject: %s", conn.RemoteAddr())
			_ = conn.Close()
			continue
		}
		go func() {
			r.serveConnection(conn)
			_ = conn.Close()
			r.count.Decrement()
		}()
	}
	_ = listen.Close()
}

// the connection's certificate selects the identity for all its calls
func (r *rpcListener) serveConnection(conn net.Conn) {
	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		r.log.Errorf("not a TLS connection: %s", conn.RemoteAddr())
		return
	}

	_ = tlsConn.SetDeadline(time.Now().Add(handshakeTimeout))
	if err := tlsConn.Handshake(); nil != err {
		r.log.Warnf("handshake: %s  error: %s", conn.RemoteAddr(), err)
		return
	}
	_ = tlsConn.SetDeadline(time.Time{})

	certificates := tlsConn.ConnectionState().PeerCertificates
	if 0 == len(certificates) {
		r.log.Warnf("deny: %s  error: %s", conn.RemoteAddr(), fault.MissingCertificate)
		return
	}

	identity, err := r.members.LookupCertificate(certificates[0])
	if nil != err {
		r.log.Warnf("deny: %s  error: %s", conn.RemoteAddr(), err)
		return
	}

	mspID, _ := identity.GetMSPID()
	id, _ := identity.GetID()
	r.log.Debugf("connection: %s  msp: %s  id: %s", conn.RemoteAddr(), mspID, id)

	r.create(identity).ServeCodec(jsonrpc.NewServerCodec(conn))
}
