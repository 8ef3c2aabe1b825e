// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ballotd/counter"
	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/fixtures"
	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/ballotd/membership"
	"github.com/bitmark-inc/ballotd/rpc/certificate"
	"github.com/bitmark-inc/ballotd/rpc/listeners"
	"github.com/bitmark-inc/ballotd/util"
	"github.com/bitmark-inc/logger"
)

// reports the organisation of the caller
type Whoami struct {
	identity ledger.ClientIdentity
}

type WhoamiArguments struct{}

func (w *Whoami) MSP(_ *WhoamiArguments, reply *string) error {
	mspID, err := w.identity.GetMSPID()
	*reply = mspID
	return err
}

// single member lookup
type members struct {
	fingerprint util.FingerprintBytes
	identity    *membership.Identity
}

func (m *members) LookupCertificate(certificate *x509.Certificate) (*membership.Identity, error) {
	if util.Fingerprint(certificate.Raw) != m.fingerprint {
		return nil, fault.UnknownCertificate
	}
	return m.identity, nil
}

func serverTLS(t *testing.T) (*tls.Config, util.FingerprintBytes) {
	cer, key, err := fixtures.CertificatePEM("server")
	require.NoError(t, err, "server certificate")
	tlsConfig, fingerprint, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	require.NoError(t, err, "tls configuration")
	return tlsConfig, fingerprint
}

func listenAddress() string {
	return fmt.Sprintf("127.0.0.1:%d", rand.Intn(30000)+30000)
}

func TestRPCListenerIdentifiesClients(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	known, knownPair, err := fixtures.Certificate("known")
	require.NoError(t, err, "known certificate")
	_, unknownPair, err := fixtures.Certificate("unknown")
	require.NoError(t, err, "unknown certificate")

	m := &members{
		fingerprint: util.Fingerprint(known.Raw),
		identity:    membership.NewIdentity(fixtures.Org1MSP, fixtures.Voter1),
	}

	create := func(identity ledger.ClientIdentity) *rpc.Server {
		s := rpc.NewServer()
		_ = s.Register(&Whoami{identity: identity})
		return s
	}

	tlsConfig, fingerprint := serverTLS(t)
	listen := listenAddress()
	count := counter.Counter(0)

	l, err := listeners.NewRPC(
		&listeners.RPCConfiguration{
			MaximumConnections: 5,
			Listen:             []string{listen},
		},
		logger.New(fixtures.LogCategory),
		&count,
		create,
		m,
		tlsConfig,
		fingerprint,
	)
	require.NoError(t, err, "new listener")
	require.NoError(t, l.Serve(), "serve")
	defer l.Close()

	dial := func(pair tls.Certificate) (*rpc.Client, error) {
		conn, err := tls.Dial("tcp", listen, &tls.Config{
			InsecureSkipVerify: true,
			Certificates:       []tls.Certificate{pair},
		})
		if nil != err {
			return nil, err
		}
		return jsonrpc.NewClient(conn), nil
	}

	client, err := dial(knownPair)
	require.NoError(t, err, "dial known")
	var mspID string
	err = client.Call("Whoami.MSP", &WhoamiArguments{}, &mspID)
	assert.NoError(t, err, "known client call")
	assert.Equal(t, fixtures.Org1MSP, mspID, "wrong identity")
	assert.Equal(t, uint64(1), count.Uint64(), "wrong connection count")
	client.Close()

	client, err = dial(unknownPair)
	if nil == err {
		err = client.Call("Whoami.MSP", &WhoamiArguments{}, &mspID)
		client.Close()
	}
	assert.Error(t, err, "unknown client accepted")

	assert.Eventually(t, func() bool { return count.IsZero() }, 2*time.Second, 10*time.Millisecond, "connections not released")
}

func TestNewRPCValidation(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	count := counter.Counter(0)
	var fingerprint util.FingerprintBytes

	_, err := listeners.NewRPC(&listeners.RPCConfiguration{Listen: []string{"127.0.0.1:2130"}}, log, &count, nil, nil, nil, fingerprint)
	assert.Equal(t, fault.MissingParameters, err, "zero connections accepted")

	_, err = listeners.NewRPC(&listeners.RPCConfiguration{MaximumConnections: 1}, log, &count, nil, nil, nil, fingerprint)
	assert.Equal(t, fault.MissingParameters, err, "empty listen accepted")

	for _, listen := range []string{"localhost:2130", "127.0.0.1", "[::1]:0", "*:http"} {
		_, err = listeners.NewRPC(&listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{listen}}, log, &count, nil, nil, nil, fingerprint)
		assert.Error(t, err, "invalid listen accepted: %q", listen)
	}

	for _, listen := range []string{"127.0.0.1:2130", "[::1]:2130", "*:2130"} {
		_, err = listeners.NewRPC(&listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{listen}}, log, &count, nil, nil, nil, fingerprint)
		assert.NoError(t, err, "valid listen rejected: %q", listen)
	}
}

// records the allow lists it was given
type testHandler struct {
	allow map[string][]*net.IPNet
}

func (h *testHandler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	_, _ = io.WriteString(w, "ok")
}

func TestHTTPSListener(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	tlsConfig, _ := serverTLS(t)
	listen := listenAddress()
	count := counter.Counter(0)
	hdlr := &testHandler{}

	l, err := listeners.NewHTTPS(
		&listeners.HTTPSConfiguration{
			MaximumConnections: 2,
			Listen:             []string{listen},
			Allow: map[string][]string{
				"details": {"127.0.0.0/8", " ::1/128 "},
			},
		},
		logger.New(fixtures.LogCategory),
		&count,
		tlsConfig,
		hdlr,
	)
	require.NoError(t, err, "new listener")
	require.Len(t, hdlr.allow["details"], 2, "allow not set")
	assert.True(t, hdlr.allow["details"][1].Contains(net.ParseIP("::1")), "wrong allow entry")

	require.NoError(t, l.Serve(), "serve")
	defer l.Close()

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig:   &tls.Config{InsecureSkipVerify: true},
			DisableKeepAlives: true,
		},
	}
	resp, err := client.Get("https://" + listen + "/ballotd/details")
	require.NoError(t, err, "get")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body), "wrong body")
}

func TestNewHTTPSValidation(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	count := counter.Counter(0)
	tlsConfig, _ := serverTLS(t)

	l, err := listeners.NewHTTPS(&listeners.HTTPSConfiguration{}, log, &count, tlsConfig, &testHandler{})
	assert.NoError(t, err, "disabled listener")
	assert.Nil(t, l, "disabled listener created")

	_, err = listeners.NewHTTPS(&listeners.HTTPSConfiguration{Listen: []string{"127.0.0.1:2131"}}, log, &count, tlsConfig, &testHandler{})
	assert.Equal(t, fault.MissingParameters, err, "zero connections accepted")

	_, err = listeners.NewHTTPS(&listeners.HTTPSConfiguration{
		MaximumConnections: 1,
		Listen:             []string{"127.0.0.1:2131"},
		Allow:              map[string][]string{"query": {"not-a-network"}},
	}, log, &count, tlsConfig, &testHandler{})
	assert.ErrorIs(t, err, fault.InvalidIpAddress, "bad allow accepted")
}
