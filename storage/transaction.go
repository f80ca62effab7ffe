// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/bitmark-inc/verifierd/fault"
)

// Transaction - a serialised unit of ledger work
//
// nothing is visible to other readers until Commit; Abort discards
// every staged write
type Transaction interface {
	Begin() error
	Abort()
	Commit() error
	Create(Handle, []byte, []byte) error
	Get(Handle, []byte) []byte
	Has(Handle, []byte) bool
	InUse() bool
	Put(Handle, []byte, []byte) error
}

// TransactionData - Transaction over an Access
type TransactionData struct {
	lock   sync.Mutex // held from Begin to Commit/Abort
	state  sync.Mutex // protects inUse
	inUse  bool
	access Access
}

func newTransaction(access Access) Transaction {
	return &TransactionData{
		inUse:  false,
		access: access,
	}
}

// Begin - wait for exclusive use then start staging
func (t *TransactionData) Begin() error {
	t.lock.Lock()

	err := t.access.Begin()
	if nil != err {
		t.lock.Unlock()
		return err
	}

	t.state.Lock()
	t.inUse = true
	t.state.Unlock()
	return nil
}

// Abort - discard staged writes and release
func (t *TransactionData) Abort() {
	if !t.InUse() {
		return
	}
	t.access.Abort()
	t.release()
}

// Commit - apply staged writes atomically and release
func (t *TransactionData) Commit() error {
	if !t.InUse() {
		return fault.ErrTransactionNotStarted
	}
	err := t.access.Commit()
	t.release()
	return err
}

func (t *TransactionData) release() {
	t.state.Lock()
	t.inUse = false
	t.state.Unlock()
	t.lock.Unlock()
}

// InUse - true while a transaction is open
func (t *TransactionData) InUse() bool {
	t.state.Lock()
	defer t.state.Unlock()
	return t.inUse
}

// Create - stage a write of a key that must not already exist
func (t *TransactionData) Create(handle Handle, key []byte, value []byte) error {
	if !t.InUse() {
		return fault.ErrTransactionNotStarted
	}
	if handle.has(key) {
		return fault.ErrSlotExists
	}
	handle.put(key, value)
	return nil
}

// Put - stage a write
func (t *TransactionData) Put(handle Handle, key []byte, value []byte) error {
	if !t.InUse() {
		return fault.ErrTransactionNotStarted
	}
	handle.put(key, value)
	return nil
}

// Get - read including staged writes, nil if not found
func (t *TransactionData) Get(handle Handle, key []byte) []byte {
	return handle.get(key)
}

// Has - check including staged writes
func (t *TransactionData) Has(handle Handle, key []byte) bool {
	return handle.has(key)
}
