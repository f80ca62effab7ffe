// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"
)

// Counter - a concurrency safe count of in-use resources
type Counter uint64

// Acquire - increment the count unless this would exceed the limit
//
// returns false, leaving the count unchanged, when the limit is reached
func (c *Counter) Acquire(limit uint64) bool {
	for {
		current := atomic.LoadUint64((*uint64)(c))
		if current >= limit {
			return false
		}
		if atomic.CompareAndSwapUint64((*uint64)(c), current, current+1) {
			return true
		}
	}
}

// Release - give back one resource
func (c *Counter) Release() uint64 {
	return atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Uint64 - current value
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}
