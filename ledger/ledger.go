// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - lifecycle of the record slots owned by a namespace
//
// slots are allocated once at their derived location and are then
// only ever rewritten in place through ReadModifyWrite, inside the
// caller's storage transaction
package ledger

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/verifierd/account"
	"github.com/bitmark-inc/verifierd/derive"
	"github.com/bitmark-inc/verifierd/fault"
	"github.com/bitmark-inc/verifierd/record"
	"github.com/bitmark-inc/verifierd/storage"
)

// Ledger - slots of one owning namespace
type Ledger struct {
	log   *logger.L
	owner account.Account
	rent  Rent
	pool  storage.Handle
}

// New - access slots in pool owned by the namespace
func New(owner account.Account, rent Rent, pool storage.Handle) *Ledger {
	return &Ledger{
		log:   logger.New("ledger"),
		owner: owner,
		rent:  rent,
		pool:  pool,
	}
}

// Owner - the owning namespace
func (l *Ledger) Owner() account.Account {
	return l.owner
}

// Rent - the configured rent parameters
func (l *Ledger) Rent() Rent {
	return l.rent
}

// EnsureAllocated - create a zeroed slot of size bytes if none is funded
//
// seeds (without the bump) must derive location under the owning
// namespace.  Returns true if a slot was created.
func (l *Ledger) EnsureAllocated(trx storage.Transaction, location account.Account, size int, payer account.Account, seeds [][]byte, bump uint8) (bool, error) {
	if s := l.load(trx, location); nil != s && s.Balance > 0 {
		return false, nil
	}

	balance := l.rent.MinimumBalance(size)
	if 0 == balance {
		return false, fault.ErrInvalidRent
	}

	full := make([][]byte, 0, len(seeds)+1)
	full = append(full, seeds...)
	full = append(full, []byte{bump})
	derived, err := derive.CreateAddress(full, l.owner)
	if nil != err {
		return false, err
	}
	if derived != location {
		l.log.Warnf("allocate: location: %s  derived: %s", location, derived)
		return false, fault.ErrInvalidAccountBinding
	}

	s := Slot{
		Balance: balance,
		Owner:   l.owner,
		Data:    make([]byte, size),
	}
	err = trx.Create(l.pool, location[:], s.Pack())
	if nil != err {
		return false, err
	}

	l.log.Infof("allocate: location: %s  size: %d  balance: %d  payer: %s", location, size, s.Balance, payer)
	return true, nil
}

// Exists - true if a funded slot is at location
func (l *Ledger) Exists(trx storage.Transaction, location account.Account) bool {
	s := l.load(trx, location)
	return nil != s && s.Balance > 0
}

// Load - read a funded slot including staged writes
func (l *Ledger) Load(trx storage.Transaction, location account.Account) (*Slot, error) {
	return l.checked(l.load(trx, location))
}

// Committed - read a funded slot outside any transaction
func (l *Ledger) Committed(location account.Account) (*Slot, error) {
	value := l.pool.Get(location[:])
	if nil == value {
		return nil, fault.ErrUninitializedTarget
	}
	s, err := unpackSlot(value)
	if nil != err {
		return nil, err
	}
	return l.checked(s)
}

// ReadModifyWrite - decode the slot into rec, run modify, write rec back
//
// the stage happens only if every step succeeds; the slot size never
// changes
func (l *Ledger) ReadModifyWrite(trx storage.Transaction, location account.Account, rec record.Record, modify func() error) error {
	s, err := l.Load(trx, location)
	if nil != err {
		return err
	}

	err = rec.Unpack(s.Data)
	if nil != err {
		return err
	}

	err = modify()
	if nil != err {
		return err
	}

	err = rec.PackInto(s.Data)
	if nil != err {
		return err
	}

	return trx.Put(l.pool, location[:], s.Pack())
}

// Listing - one committed slot
type Listing struct {
	Location account.Account
	Slot     *Slot
}

// List - committed slots of this namespace among up to count
// locations scanned from start
//
// next is where the following page begins, after the last location
// scanned whether or not its slot was kept; it is zero once the scan
// reaches the end
func (l *Ledger) List(start account.Account, count int) ([]Listing, account.Account, error) {
	elements, err := l.pool.NewFetchCursor().Seek(start[:]).Fetch(count)
	if nil != err {
		return nil, account.Account{}, err
	}

	listings := make([]Listing, 0, len(elements))
	next := account.Account{}
	for _, e := range elements {
		location, err := account.FromBytes(e.Key)
		if nil != err {
			return nil, account.Account{}, err
		}
		next = After(location)
		s, err := unpackSlot(e.Value)
		if nil != err {
			return nil, account.Account{}, err
		}
		if s.Owner != l.owner {
			continue
		}
		listings = append(listings, Listing{
			Location: location,
			Slot:     s,
		})
	}
	return listings, next, nil
}

// After - the smallest location greater than location, for paging List
//
// the largest location wraps to zero
func After(location account.Account) account.Account {
	for i := len(location) - 1; i >= 0; i -= 1 {
		location[i] += 1
		if 0 != location[i] {
			break
		}
	}
	return location
}

func (l *Ledger) load(trx storage.Transaction, location account.Account) *Slot {
	value := trx.Get(l.pool, location[:])
	if nil == value {
		return nil
	}
	s, err := unpackSlot(value)
	if nil != err {
		l.log.Criticalf("slot: %s  error: %s", location, err)
		return &Slot{}
	}
	return s
}

func (l *Ledger) checked(s *Slot) (*Slot, error) {
	if nil == s || 0 == s.Balance {
		return nil, fault.ErrUninitializedTarget
	}
	if s.Owner != l.owner {
		return nil, fault.ErrInvalidAccountBinding
	}
	return s, nil
}
