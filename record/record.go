// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

// Record - any fixed width record that can live in a ledger slot
type Record interface {
	Size() int
	PackInto(buffer []byte) error
	Unpack(buffer []byte) error
}

// zero - clear a buffer
func zero(buffer []byte) {
	for i := range buffer {
		buffer[i] = 0
	}
}
