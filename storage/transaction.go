// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - a batch of pool writes committed atomically
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
	InUse() bool
}

// TransactionData - transaction over a single database
type TransactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &TransactionData{
		access: access,
	}
}

// Begin - fails if a transaction is already open
func (t *TransactionData) Begin() error {
	return t.access.Begin()
}

// Put - queue a write
func (t *TransactionData) Put(p *PoolHandle, key []byte, value []byte) {
	p.put(key, value)
}

// Delete - queue a delete
func (t *TransactionData) Delete(p *PoolHandle, key []byte) {
	p.remove(key)
}

// Get - read including the queued writes
func (t *TransactionData) Get(p *PoolHandle, key []byte) []byte {
	return p.Get(key)
}

// Has - check including the queued writes
func (t *TransactionData) Has(p *PoolHandle, key []byte) bool {
	return p.Has(key)
}

// Commit - write all queued changes and end the transaction
func (t *TransactionData) Commit() error {
	return t.access.Commit()
}

// Abort - discard all queued changes and end the transaction
func (t *TransactionData) Abort() {
	t.access.Abort()
}

// InUse - true while a transaction is open
func (t *TransactionData) InUse() bool {
	return t.access.InUse()
}
