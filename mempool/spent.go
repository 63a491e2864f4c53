// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/chainindex/avl"
	"github.com/bitmark-inc/chainindex/spentindex"
)

// SpentIndex - unconfirmed spends, safe for concurrent use
type SpentIndex struct {
	sync.RWMutex
	log *logger.L

	// outpoint → spending details
	tree *avl.Tree

	// spending txId → the outpoints it spends
	spenders map[chainhash.Hash][]spentindex.Key
}

// New - create an empty index
func New(log *logger.L) *SpentIndex {
	return &SpentIndex{
		log:      log,
		tree:     avl.New(),
		spenders: make(map[chainhash.Hash][]spentindex.Key),
	}
}

// Add - record the outpoints spent by a transaction
//
// an outpoint already spent by a different transaction is replaced
// and the replacement is logged
func (s *SpentIndex) Add(txId chainhash.Hash, entries []spentindex.Entry) {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.spenders[txId]; ok {
		s.removeLocked(txId)
	}

	keys := make([]spentindex.Key, 0, len(entries))
	for _, e := range entries {
		node, _ := s.tree.Search(e.Key)
		if nil != node {
			previous := node.Value().(spentindex.Value)
			if previous.SpendingTxId != txId {
				s.log.Warnf("outpoint: %s:%d  spent by: %s  replaced by: %s", e.Key.TxId, e.Key.OutputIndex, previous.SpendingTxId, txId)
				s.forget(previous.SpendingTxId, e.Key)
			}
		}

		value := e.Value
		value.SpendingTxId = txId
		s.tree.Insert(e.Key, value)
		keys = append(keys, e.Key)
	}
	s.spenders[txId] = keys

	s.log.Debugf("add: %s  spends: %d", txId, len(keys))
}

// Remove - drop all outpoints spent by a transaction
//
// returns the number of outpoints removed
func (s *SpentIndex) Remove(txId chainhash.Hash) int {
	s.Lock()
	defer s.Unlock()

	n := s.removeLocked(txId)
	if n > 0 {
		s.log.Debugf("remove: %s  spends: %d", txId, n)
	}
	return n
}

// Get - the spending details of an outpoint
func (s *SpentIndex) Get(key spentindex.Key) (spentindex.Value, bool) {
	s.RLock()
	defer s.RUnlock()

	node, _ := s.tree.Search(key)
	if nil == node {
		return spentindex.NullValue(), false
	}
	return node.Value().(spentindex.Value), true
}

// Count - number of spent outpoints
func (s *SpentIndex) Count() int {
	s.RLock()
	defer s.RUnlock()

	return s.tree.Count()
}

// Keys - all spent outpoints in key order
func (s *SpentIndex) Keys() []spentindex.Key {
	s.RLock()
	defer s.RUnlock()

	keys := make([]spentindex.Key, 0, s.tree.Count())
	s.tree.Walk(func(node *avl.Node) bool {
		keys = append(keys, node.Key().(spentindex.Key))
		return true
	})
	return keys
}

// Outputs - the spent outputs of one funding transaction in output
// index order
func (s *SpentIndex) Outputs(txId chainhash.Hash) []spentindex.Entry {
	s.RLock()
	defer s.RUnlock()

	entries := []spentindex.Entry{}
	start := spentindex.Key{TxId: txId}
	s.tree.WalkFrom(start, func(node *avl.Node) bool {
		key := node.Key().(spentindex.Key)
		if key.TxId != txId {
			return false
		}
		entries = append(entries, spentindex.Entry{
			Key:   key,
			Value: node.Value().(spentindex.Value),
		})
		return true
	})
	return entries
}

// internal: caller holds the write lock
func (s *SpentIndex) removeLocked(txId chainhash.Hash) int {
	keys, ok := s.spenders[txId]
	if !ok {
		return 0
	}
	delete(s.spenders, txId)

	n := 0
	for _, key := range keys {
		if _, ok := s.tree.Delete(key); ok {
			n += 1
		}
	}
	return n
}

// internal: drop one outpoint from a spender's list
func (s *SpentIndex) forget(txId chainhash.Hash, key spentindex.Key) {
	keys := s.spenders[txId]
	for i, k := range keys {
		if k == key {
			keys = append(keys[:i], keys[i+1:]...)
			break
		}
	}
	if 0 == len(keys) {
		delete(s.spenders, txId)
		return
	}
	s.spenders[txId] = keys
}
