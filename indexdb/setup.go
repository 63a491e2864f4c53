// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexdb

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/bitmark-inc/chainindex/addresshash"
	"github.com/bitmark-inc/chainindex/fault"
	"github.com/bitmark-inc/chainindex/mempool"
	"github.com/bitmark-inc/chainindex/storage"
)

// Options - which indices ConnectBlock and DisconnectBlock maintain
//
// Pending, when set, holds unconfirmed spends: LookupSpent consults it
// before the database and ConnectBlock drops the transactions it
// confirms
type Options struct {
	Spent     bool
	Address   bool
	Timestamp bool
	Pending   *mempool.SpentIndex
}

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	params      *chaincfg.Params
	options     Options
	initialised bool
}

var globalData globalDataType

// Initialise - set up the index operations
//
// storage must already be initialised
func Initialise(params *chaincfg.Params, options Options) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	// the channel outlives Finalise, readers use it without the lock
	if nil == globalData.log {
		globalData.log = logger.New("indexdb")
	}
	globalData.log.Infof("chain: %s  spent: %t  address: %t  timestamp: %t", params.Name, options.Spent, options.Address, options.Timestamp)

	globalData.params = params
	globalData.options = options
	globalData.initialised = true
	return nil
}

// Finalise - stop using the index operations
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false
	return nil
}

// internal: a transaction for one write call
func begin() (storage.Transaction, error) {
	globalData.RLock()
	ok := globalData.initialised
	globalData.RUnlock()

	if !ok {
		return nil, fault.ErrNotInitialised
	}
	return storage.NewDBTransaction()
}

// internal: chain and enabled indices, read together under the lock
func settings() (*chaincfg.Params, Options, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, Options{}, fault.ErrNotInitialised
	}
	return globalData.params, globalData.options, nil
}

// internal: check before a read
func ready() error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}
	return nil
}

// internal: records for unknown address types are kept but not
// understood
func warnUnknown(index string, addressType addresshash.Type) {
	if !addressType.Known() {
		globalData.log.Warnf("%s: unknown address type: %d", index, addressType)
	}
}
