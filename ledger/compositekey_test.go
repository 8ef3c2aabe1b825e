// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/ledger"
)

func TestCompositeKeyRoundTrip(t *testing.T) {
	key, err := ledger.CreateCompositeKey("org.evote.ballot", []string{"100", "1"})
	assert.Nil(t, err, "create error")
	assert.Equal(t, "\x00org.evote.ballot\x00100\x001\x00", key, "wrong layout")

	objectType, attributes, err := ledger.SplitCompositeKey(key)
	assert.Nil(t, err, "split error")
	assert.Equal(t, "org.evote.ballot", objectType, "wrong object type")
	assert.Equal(t, []string{"100", "1"}, attributes, "wrong attributes")
}

func TestCompositeKeyPartialIsPrefix(t *testing.T) {
	full, _ := ledger.CreateCompositeKey("org.evote.ballot", []string{"100", "1"})
	partial, _ := ledger.CreateCompositeKey("org.evote.ballot", []string{"100"})
	other, _ := ledger.CreateCompositeKey("org.evote.ballot", []string{"1000", "1"})

	assert.True(t, strings.HasPrefix(full, partial), "partial key is not a prefix")
	assert.False(t, strings.HasPrefix(other, partial), "partial key must not match a longer attribute")
}

func TestCompositeKeyRejectsNul(t *testing.T) {
	_, err := ledger.CreateCompositeKey("org.evote.ballot", []string{"a\x00b"})
	assert.True(t, fault.IsErrInvalid(err), "nul byte accepted")

	_, err = ledger.CreateCompositeKey("org\x00evote", nil)
	assert.True(t, fault.IsErrInvalid(err), "nul byte accepted in object type")

	_, err = ledger.CreateCompositeKey("org.evote.ballot", []string{string([]byte{0xff, 0xfe})})
	assert.True(t, fault.IsErrInvalid(err), "invalid utf8 accepted")
}

func TestSplitRejectsPlainKey(t *testing.T) {
	_, _, err := ledger.SplitCompositeKey("100:1")
	assert.True(t, fault.IsErrInvalid(err), "plain key accepted")
}
