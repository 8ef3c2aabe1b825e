// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ballotd/fault"
)

// defaults when the configuration leaves them unset
const (
	DefaultRate  = 200
	DefaultBurst = 100
)

// New - a limiter, zero values select the defaults
func New(requestRate float64, burst int) *rate.Limiter {
	if requestRate <= 0 {
		requestRate = DefaultRate
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return rate.NewLimiter(rate.Limit(requestRate), burst)
}

// Limit - limiting for a single request
//
// waits for the reservation, fails only if it can never be met
func Limit(limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.RateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}
