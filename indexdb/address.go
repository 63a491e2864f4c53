// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexdb

import (
	"github.com/bitmark-inc/chainindex/addresshash"
	"github.com/bitmark-inc/chainindex/addressindex"
	"github.com/bitmark-inc/chainindex/storage"
)

// WriteAddressIndex - store history entries
func WriteAddressIndex(entries []addressindex.Entry) error {
	trx, err := begin()
	if nil != err {
		return err
	}

	putHistory(trx, entries)

	return trx.Commit()
}

// EraseAddressIndex - remove history entries, only the keys are used
func EraseAddressIndex(entries []addressindex.Entry) error {
	trx, err := begin()
	if nil != err {
		return err
	}

	for _, e := range entries {
		trx.Delete(storage.Pool.AddressIndex, e.Key.Pack())
	}

	return trx.Commit()
}

// ReadAddressIndex - history of an address in key order
//
// start == 0 && end == 0 selects all heights, otherwise heights
// start..end inclusive
func ReadAddressIndex(address addresshash.Address, start int32, end int32) ([]addressindex.Entry, error) {
	if err := ready(); nil != err {
		return nil, err
	}
	warnUnknown("history", address.Type())

	var cursor *storage.FetchCursor
	if 0 == start && 0 == end {
		cursor = storage.Pool.AddressIndex.NewPrefixCursor(addressindex.ScanKey{Address: address}.Pack())
	} else {
		low, limit, err := addressindex.HeightRange(address, start, end)
		if nil != err {
			return nil, err
		}
		cursor = storage.Pool.AddressIndex.NewRangeCursor(low, limit)
	}

	entries := []addressindex.Entry{}
	err := cursor.Map(func(key []byte, value []byte) error {
		k, err := addressindex.UnpackKey(key)
		if nil != err {
			globalData.log.Errorf("history key: %x  decode error: %s", key, err)
			return err
		}
		amount, err := addressindex.UnpackValue(value)
		if nil != err {
			globalData.log.Errorf("history key: %x  value decode error: %s", key, err)
			return err
		}
		entries = append(entries, addressindex.Entry{
			Key:    k,
			Amount: amount,
		})
		return nil
	})
	if nil != err {
		return nil, err
	}

	globalData.log.Debugf("history: %s  heights: %d..%d  entries: %d", address, start, end, len(entries))
	return entries, nil
}

// internal: add history entries to an open transaction
func putHistory(trx storage.Transaction, entries []addressindex.Entry) {
	for _, e := range entries {
		trx.Put(storage.Pool.AddressIndex, e.Key.Pack(), addressindex.PackValue(e.Amount))
	}
}
