// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexdb

import (
	"github.com/bitmark-inc/chainindex/addresshash"
	"github.com/bitmark-inc/chainindex/storage"
	"github.com/bitmark-inc/chainindex/unspentindex"
)

// UpdateAddressUnspentIndex - store each entry, a null value removes
// the key
func UpdateAddressUnspentIndex(entries []unspentindex.Entry) error {
	trx, err := begin()
	if nil != err {
		return err
	}

	putUnspent(trx, entries)

	return trx.Commit()
}

// ReadAddressUnspentIndex - all unspent outputs of an address
func ReadAddressUnspentIndex(address addresshash.Address) ([]unspentindex.Entry, error) {
	if err := ready(); nil != err {
		return nil, err
	}
	warnUnknown("unspent", address.Type())

	cursor := storage.Pool.AddressUnspentIndex.NewPrefixCursor(unspentindex.ScanKey{Address: address}.Pack())

	entries := []unspentindex.Entry{}
	err := cursor.Map(func(key []byte, value []byte) error {
		k, err := unspentindex.UnpackKey(key)
		if nil != err {
			globalData.log.Errorf("unspent key: %x  decode error: %s", key, err)
			return err
		}
		v, err := unspentindex.UnpackValue(value)
		if nil != err {
			globalData.log.Errorf("unspent key: %x  value decode error: %s", key, err)
			return err
		}
		entries = append(entries, unspentindex.Entry{
			Key:   k,
			Value: v,
		})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return entries, nil
}

// internal: add unspent entries to an open transaction
func putUnspent(trx storage.Transaction, entries []unspentindex.Entry) {
	for _, e := range entries {
		if e.Value.IsNull() {
			trx.Delete(storage.Pool.AddressUnspentIndex, e.Key.Pack())
		} else {
			trx.Put(storage.Pool.AddressUnspentIndex, e.Key.Pack(), e.Value.Pack())
		}
	}
}
