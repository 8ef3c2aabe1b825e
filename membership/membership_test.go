// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package membership_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ballotd/background"
	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/fixtures"
	"github.com/bitmark-inc/ballotd/membership"
	"github.com/bitmark-inc/ballotd/util"
)

type member struct {
	msp  string
	name string
	der  []byte
}

func newMember(t *testing.T, msp string, name string) member {
	cert, _, err := fixtures.Certificate(name)
	require.NoError(t, err, "certificate for: %s", name)
	return member{
		msp:  msp,
		name: name,
		der:  cert.Raw,
	}
}

func writeFile(t *testing.T, fileName string, members ...member) {
	s := "return {\n  organisations = {\n"
	for _, m := range members {
		s += fmt.Sprintf("    { msp = %q, members = { { name = %q, fingerprint = %q } } },\n", m.msp, m.name, util.Fingerprint(m.der))
	}
	s += "  },\n}\n"
	require.NoError(t, os.WriteFile(fileName, []byte(s), 0600), "write membership file")
}

func setup(t *testing.T) string {
	fixtures.SetupTestLogger()
	dir, err := os.MkdirTemp("", "ballotd-membership")
	require.NoError(t, err, "temp dir")
	return dir
}

func teardown(dir string) {
	os.RemoveAll(dir)
	fixtures.TeardownTestLogger()
}

func TestLookup(t *testing.T) {
	dir := setup(t)
	defer teardown(dir)

	voter1 := newMember(t, fixtures.Org1MSP, fixtures.Voter1)
	voter2 := newMember(t, fixtures.Org2MSP, fixtures.Voter2)
	stranger := newMember(t, fixtures.Org2MSP, "stranger")

	fileName := filepath.Join(dir, "membership.conf")
	writeFile(t, fileName, voter1, voter2)

	r, err := membership.Load(fileName)
	require.NoError(t, err, "load")
	assert.Equal(t, 2, r.Count(), "wrong member count")

	for _, m := range []member{voter1, voter2} {
		identity, err := r.Lookup(m.der)
		require.NoError(t, err, "lookup: %s", m.name)
		msp, _ := identity.GetMSPID()
		id, _ := identity.GetID()
		assert.Equal(t, m.msp, msp, "wrong msp for: %s", m.name)
		assert.Equal(t, m.name, id, "wrong id for: %s", m.name)
	}

	_, err = r.Lookup(stranger.der)
	assert.ErrorIs(t, err, fault.UnknownCertificate, "stranger")

	_, err = r.LookupCertificate(nil)
	assert.ErrorIs(t, err, fault.MissingCertificate, "no certificate")
}

func TestInvalidFiles(t *testing.T) {
	dir := setup(t)
	defer teardown(dir)

	fileName := filepath.Join(dir, "membership.conf")

	contents := map[string]error{
		`return { organisations = { { msp = "" } } }`:                                                          fault.InvalidConfiguration,
		`return { organisations = { { msp = "Org1MSP", members = { { name = "x", fingerprint = "zz" } } } } }`: fault.InvalidFingerprint,
	}
	for content, expected := range contents {
		require.NoError(t, os.WriteFile(fileName, []byte(content), 0600), "write")
		_, err := membership.Load(fileName)
		assert.ErrorIs(t, err, expected, "content: %s", content)
	}

	_, err := membership.Load(filepath.Join(dir, "missing.conf"))
	assert.Error(t, err, "missing file")
}

func TestDuplicateFingerprint(t *testing.T) {
	dir := setup(t)
	defer teardown(dir)

	m := newMember(t, fixtures.Org1MSP, fixtures.Voter1)
	copied := m
	copied.msp = fixtures.Org2MSP

	fileName := filepath.Join(dir, "membership.conf")
	writeFile(t, fileName, m, copied)

	_, err := membership.Load(fileName)
	assert.ErrorIs(t, err, fault.InvalidConfiguration, "duplicate accepted")
}

func TestReloadKeepsMembersOnError(t *testing.T) {
	dir := setup(t)
	defer teardown(dir)

	voter1 := newMember(t, fixtures.Org1MSP, fixtures.Voter1)
	fileName := filepath.Join(dir, "membership.conf")
	writeFile(t, fileName, voter1)

	r, err := membership.Load(fileName)
	require.NoError(t, err, "load")

	require.NoError(t, os.WriteFile(fileName, []byte("return {"), 0600), "write invalid")
	assert.Error(t, r.Reload(), "reload of invalid file")

	_, err = r.Lookup(voter1.der)
	assert.NoError(t, err, "member lost after failed reload")
}

func TestWatcherReloads(t *testing.T) {
	dir := setup(t)
	defer teardown(dir)

	voter1 := newMember(t, fixtures.Org1MSP, fixtures.Voter1)
	voter2 := newMember(t, fixtures.Org2MSP, fixtures.Voter2)

	fileName := filepath.Join(dir, "membership.conf")
	writeFile(t, fileName, voter1)

	r, err := membership.Load(fileName)
	require.NoError(t, err, "load")

	processes := background.Start(background.Processes{r}, nil)
	defer processes.Stop()

	// allow the watcher to start
	time.Sleep(100 * time.Millisecond)

	writeFile(t, fileName, voter1, voter2)

	assert.Eventually(t, func() bool {
		_, err := r.Lookup(voter2.der)
		return nil == err
	}, 5*time.Second, 20*time.Millisecond, "new member not loaded")
	assert.Equal(t, 2, r.Count(), "wrong member count after reload")
}

func TestStaticIdentity(t *testing.T) {
	identity := membership.NewIdentity(fixtures.Org1MSP, fixtures.Voter1)
	msp, err := identity.GetMSPID()
	assert.NoError(t, err, "msp")
	assert.Equal(t, fixtures.Org1MSP, msp, "wrong msp")
	id, err := identity.GetID()
	assert.NoError(t, err, "id")
	assert.Equal(t, fixtures.Voter1, id, "wrong id")
}
