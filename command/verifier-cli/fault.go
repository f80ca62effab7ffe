// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/verifierd/fault"
)

// common errors - keep in alphabetic order
var (
	ErrMissingKey         = fault.InvalidError("signing key is required")
	ErrMissingObservation = fault.InvalidError("observed slot is required")
	ErrMissingSubject     = fault.InvalidError("subject or user is required")
	ErrStatusCode         = fault.InvalidError("status code must fit in one byte")
)
