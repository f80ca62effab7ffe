// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/verifierd/fault"
)

// Handle - a pool that a transaction can write to
type Handle interface {
	Get([]byte) []byte
	Has([]byte) bool
	NewFetchCursor() *FetchCursor
	get([]byte) []byte
	has([]byte) bool
	put([]byte, []byte)
}

// PoolHandle - one prefixed table in the database
type PoolHandle struct {
	prefix     byte
	limit      []byte
	dataAccess Access
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Get - read a committed value, nil if not found
//
// this does not see writes staged by an open transaction
func (p *PoolHandle) Get(key []byte) []byte {
	if nil == p || nil == p.dataAccess {
		return nil
	}
	value, err := p.dataAccess.GetCommitted(p.prefixKey(key))
	fault.PanicIfError("pool.Get", err)
	return value
}

// Has - check if a committed key exists
func (p *PoolHandle) Has(key []byte) bool {
	return nil != p.Get(key)
}

// transaction view of the pool

func (p *PoolHandle) get(key []byte) []byte {
	value, err := p.dataAccess.Get(p.prefixKey(key))
	fault.PanicIfError("pool.get", err)
	return value
}

func (p *PoolHandle) has(key []byte) bool {
	found, err := p.dataAccess.Has(p.prefixKey(key))
	fault.PanicIfError("pool.has", err)
	return found
}

func (p *PoolHandle) put(key []byte, value []byte) {
	p.dataAccess.Put(p.prefixKey(key), value)
}
