// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/verifierd/fault"
)

// Rent - parameters of the rent-exempt minimum balance
type Rent struct {
	LamportsPerByteYear uint64 `gluamapper:"lamports_per_byte_year" json:"lamports_per_byte_year"`
	ExemptionThreshold  uint64 `gluamapper:"exemption_threshold" json:"exemption_threshold"`
	Overhead            uint64 `gluamapper:"overhead" json:"overhead"`
}

// DefaultRent - values used when none are configured
var DefaultRent = Rent{
	LamportsPerByteYear: 3480,
	ExemptionThreshold:  2,
	Overhead:            128,
}

// MinimumBalance - balance a slot of size bytes must hold
func (r Rent) MinimumBalance(size int) uint64 {
	return (r.Overhead + uint64(size)) * r.LamportsPerByteYear * r.ExemptionThreshold
}

// Validate - every parameter must be non-zero or funded slots could
// hold a zero balance and read as absent
func (r Rent) Validate() error {
	if 0 == r.LamportsPerByteYear || 0 == r.ExemptionThreshold || 0 == r.Overhead {
		return fault.ErrInvalidRent
	}
	return nil
}
