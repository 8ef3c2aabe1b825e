// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ballotd/counter"
	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/logger"
)

const (
	httpsLogName     = "https_rpc"
	readWriteTimeout = 10 * time.Second
)

// HTTPSConfiguration - configuration file data for HTTPS setup
type HTTPSConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

// Handler - HTTP routes restricted by client address
type Handler interface {
	http.Handler
	SetAllow(allow map[string][]*net.IPNet)
}

type httpsListener struct {
	sync.Mutex
	log             *logger.L
	listenIPAndPort []string
	ipType          []string
	tlsConfig       *tls.Config
	handler         http.Handler
	count           *counter.Counter
	maxConnections  uint64
	servers         []*http.Server
}

// NewHTTPS - HTTPS listener, nil if no listen addresses are configured
func NewHTTPS(
	configuration *HTTPSConfiguration,
	log *logger.L,
	count *counter.Counter,
	tlsConfig *tls.Config,
	hdlr Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpsLogName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	ipType, listen, err := parseListenAddress(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	// create access control and format strings to match http.Request.RemoteAddr
	local := make(map[string][]*net.IPNet)
	for path, addresses := range configuration.Allow {
		set := make([]*net.IPNet, len(addresses))
		local[path] = set
		for i, ip := range addresses {
			_, cidr, err := net.ParseCIDR(strings.TrimSpace(ip))
			if nil != err {
				log.Errorf("%s allow: %s: %q  error: %s", httpsLogName, path, ip, err)
				return nil, errors.Wrapf(fault.InvalidIpAddress, "allow: %s: %q", path, ip)
			}
			set[i] = cidr
		}
	}

	hdlr.SetAllow(local)

	h := &httpsListener{
		log:             log,
		listenIPAndPort: listen,
		ipType:          ipType,
		tlsConfig:       tlsConfig.Clone(),
		handler:         hdlr,
		count:           count,
		maxConnections:  configuration.MaximumConnections,
	}
	h.tlsConfig.NextProtos = []string{"http/1.1"}

	return h, nil
}

func (h *httpsListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	for i, listen := range h.listenIPAndPort {
		h.log.Infof("starting server: %s on: %q", httpsLogName, listen)

		ln, err := net.Listen(h.ipType[i], listen)
		if err != nil {
			h.log.Errorf("%s listen error: %s", httpsLogName, err)
			return err
		}

		s := &http.Server{
			Handler:        h.handler,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		h.servers = append(h.servers, s)

		limited := &limitListener{
			Listener: ln,
			log:      h.log,
			count:    h.count,
			limit:    h.maxConnections,
		}
		go func() {
			err := s.Serve(tls.NewListener(limited, h.tlsConfig))
			h.log.Infof("%s terminated: %s", httpsLogName, err)
		}()
	}

	return nil
}

func (h *httpsListener) Close() {
	h.Lock()
	defer h.Unlock()

	for _, s := range h.servers {
		_ = s.Close()
	}
	h.servers = nil
}

// drops connections beyond the limit
type limitListener struct {
	net.Listener
	log   *logger.L
	count *counter.Counter
	limit uint64
}

func (l *limitListener) Accept() (net.Conn, error) {
	for {
		conn, err := l.Listener.Accept()
		if nil != err {
			return nil, err
		}
		if l.count.Acquire(l.limit) {
			return &countedConn{Conn: conn, count: l.count}, nil
		}
		l.log.Warnf("connection limit reached, reject: %s", conn.RemoteAddr())
		_ = conn.Close()
	}
}

type countedConn struct {
	net.Conn
	once  sync.Once
	count *counter.Counter
}

func (c *countedConn) Close() error {
	err := c.Conn.Close()
	c.once.Do(func() {
		c.count.Decrement()
	})
	return err
}
