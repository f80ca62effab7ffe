// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/rpc/ratelimit"
)

func TestLimit(t *testing.T) {
	limiter := rate.NewLimiter(1000, 10)
	for i := 0; i < 5; i += 1 {
		assert.Nil(t, ratelimit.Limit(limiter), "limit %d", i)
	}
}

func TestLimitN(t *testing.T) {
	limiter := rate.NewLimiter(1000, 10)

	assert.Nil(t, ratelimit.LimitN(limiter, 5, 10), "within maximum")
	assert.Equal(t, fault.ErrInvalidCount, ratelimit.LimitN(limiter, 0, 10), "zero count")
	assert.Equal(t, fault.ErrInvalidCount, ratelimit.LimitN(limiter, 11, 10), "over maximum")
}

func TestLimitExceedsBurst(t *testing.T) {
	limiter := rate.NewLimiter(1000, 2)
	assert.Equal(t, fault.ErrRateLimiting, ratelimit.LimitN(limiter, 5, 10), "burst exceeded")
}
