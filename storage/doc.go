// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// All writes go through a Transaction: Begin takes the transaction
// lock, writes are staged in a single LevelDB batch and mirrored in a
// cache so that later reads in the same transaction see them, and
// Commit applies the batch atomically.
//
// Notes:
// 1. ++       = concatenation of byte data
// 2. location = 32 byte derived address
// 3. balance  = big endian uint64 (8 bytes)
// 4. owner    = 32 byte namespace identity
//
// Slots:
//
//	S ++ location  - ledger slot
//	                 data: balance ++ owner ++ record bytes
//
// Version:
//
//	0x00 ++ "VERSION"  - database version, big endian uint32
package storage
