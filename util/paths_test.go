// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ballotd/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/var/lib/ballotd/data", util.EnsureAbsolute("/var/lib/ballotd", "data"), "relative")
	assert.Equal(t, "/tmp/x", util.EnsureAbsolute("/var/lib/ballotd", "/tmp/./x"), "absolute")
}

func TestEnsureFileExists(t *testing.T) {
	f, err := os.CreateTemp("", "ballotd-util")
	assert.NoError(t, err, "create temp")
	f.Close()
	defer os.Remove(f.Name())

	assert.True(t, util.EnsureFileExists(f.Name()), "existing file")
	assert.False(t, util.EnsureFileExists(f.Name()+".missing"), "missing file")
}

func TestIsPlainName(t *testing.T) {
	assert.True(t, util.IsPlainName("ballotd.leveldb"), "plain")
	assert.False(t, util.IsPlainName("data/ballotd.leveldb"), "relative path")
	assert.False(t, util.IsPlainName("/ballotd.leveldb"), "absolute path")
	assert.False(t, util.IsPlainName(""), "empty")
}
