// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"crypto/tls"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ballotd/ballot"
	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/fixtures"
	"github.com/bitmark-inc/ballotd/membership"
	"github.com/bitmark-inc/ballotd/rpc"
	rpcballot "github.com/bitmark-inc/ballotd/rpc/ballot"
	"github.com/bitmark-inc/ballotd/rpc/listeners"
	"github.com/bitmark-inc/ballotd/storage"
	"github.com/bitmark-inc/ballotd/util"
)

func writeFile(t *testing.T, fileName string, content string) string {
	require.NoError(t, os.WriteFile(fileName, []byte(content), 0600), "write: %s", fileName)
	return fileName
}

func TestInitialiseAndServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := os.MkdirTemp("", "ballotd-rpc")
	require.NoError(t, err, "temp dir")
	defer os.RemoveAll(dir)

	cer, key, err := fixtures.CertificatePEM("server")
	require.NoError(t, err, "server certificate")
	certificateFile := writeFile(t, filepath.Join(dir, "rpc.crt"), cer)
	keyFile := writeFile(t, filepath.Join(dir, "rpc.key"), key)

	client, clientPair, err := fixtures.Certificate(fixtures.Voter1)
	require.NoError(t, err, "client certificate")
	membershipFile := writeFile(t, filepath.Join(dir, "membership.conf"), fmt.Sprintf(
		"return { organisations = { { msp = %q, members = { { name = %q, fingerprint = %q } } } } }\n",
		fixtures.Org1MSP, fixtures.Voter1, util.Fingerprint(client.Raw)))

	members, err := membership.Load(membershipFile)
	require.NoError(t, err, "membership")

	l, err := storage.OpenMemory()
	require.NoError(t, err, "open ledger")
	defer l.Close()

	port := rand.Intn(30000) + 30000
	rpcListen := fmt.Sprintf("127.0.0.1:%d", port)
	httpsListen := fmt.Sprintf("127.0.0.1:%d", port+1)

	err = rpc.Initialise(
		&listeners.RPCConfiguration{
			MaximumConnections: 4,
			Listen:             []string{rpcListen},
			Certificate:        certificateFile,
			PrivateKey:         keyFile,
		},
		&listeners.HTTPSConfiguration{
			MaximumConnections: 4,
			Listen:             []string{httpsListen},
			Certificate:        certificateFile,
			PrivateKey:         keyFile,
			Allow: map[string][]string{
				"query": {"127.0.0.0/8"},
			},
		},
		"v-test",
		l,
		members,
	)
	require.NoError(t, err, "initialise")

	err = rpc.Initialise(&listeners.RPCConfiguration{}, &listeners.HTTPSConfiguration{}, "v-test", l, members)
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise")

	conn, err := tls.Dial("tcp", rpcListen, &tls.Config{
		InsecureSkipVerify: true,
		Certificates:       []tls.Certificate{clientPair},
	})
	require.NoError(t, err, "dial")
	c := jsonrpc.NewClient(conn)

	var reply rpcballot.Reply
	err = c.Call("Ballot.Issue", &rpcballot.IssueArguments{
		Voter:            "alice",
		BallotNumber:     1,
		IssueDateTime:    "2024-01-01",
		ElectionNumber:   100,
		ElectionDateTime: "2024-06-01",
	}, &reply)
	require.NoError(t, err, "issue")
	assert.Equal(t, fixtures.Org1MSP, reply.Ballot.VoterMSP, "wrong organisation")
	assert.Equal(t, ballot.Issued, reply.Ballot.CurrentState, "wrong state")
	c.Close()

	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig:   &tls.Config{InsecureSkipVerify: true},
			DisableKeepAlives: true,
		},
	}
	resp, err := httpClient.Get("https://" + httpsListen + "/ballotd/election/100")
	require.NoError(t, err, "gateway query")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status: %s", body)
	assert.Contains(t, string(body), `"voter":"alice"`, "ballot missing")

	resp, err = httpClient.Get("https://" + httpsListen + "/ballotd/details")
	require.NoError(t, err, "gateway details")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "details not restricted")

	assert.NoError(t, rpc.Finalise(), "finalise")
	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "second finalise")
}
