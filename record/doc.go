// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - fixed layout binary records stored in ledger slots
//
// Verification record (585 bytes):
//
//	offset  size  field
//	------  ----  -----
//	     0    32  test build address
//	    32     8  last verified slot (little endian)
//	    40     1  verified code
//	    41    32  SHA-256 of the verified bytecode
//	    73   512  extension region
//
// Extension region:
//
//	offset  size  field
//	------  ----  -----
//	     0     1  schema version (0 = none)
//	     1     2  payload length (little endian)
//	     3     n  payload, remainder zero
//
// User status record (257 bytes):
//
//	offset  size  field
//	------  ----  -----
//	     0     1  status code
//	     1     1  message length L
//	     2     L  UTF-8 message, remainder zero
package record
