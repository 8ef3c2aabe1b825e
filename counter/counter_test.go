// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ballotd/counter"
)

func TestCounter(t *testing.T) {
	var c counter.Counter

	assert.True(t, c.IsZero(), "not zero at start")

	for i := 0; i < 5; i += 1 {
		c.Increment()
	}
	assert.Equal(t, uint64(5), c.Uint64(), "after increment")

	assert.Equal(t, uint64(4), c.Decrement(), "after decrement")
	for i := 0; i < 4; i += 1 {
		c.Decrement()
	}
	assert.True(t, c.IsZero(), "did not return to zero")
}

func TestAcquire(t *testing.T) {
	var c counter.Counter

	assert.True(t, c.Acquire(2), "first")
	assert.True(t, c.Acquire(2), "second")
	assert.False(t, c.Acquire(2), "third")
	assert.Equal(t, uint64(2), c.Uint64(), "failed acquire changed count")

	c.Decrement()
	assert.True(t, c.Acquire(2), "after release")
	assert.False(t, c.Acquire(0), "zero limit")
}

func TestAcquireConcurrently(t *testing.T) {
	var c counter.Counter
	const limit = 10

	var wg sync.WaitGroup
	var acquired counter.Counter
	for i := 0; i < 100; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Acquire(limit) {
				acquired.Increment()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(limit), acquired.Uint64(), "wrong number acquired")
	assert.Equal(t, uint64(limit), c.Uint64(), "wrong count")
}
