// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexdb

import (
	"github.com/bitmark-inc/chainindex/spentindex"
	"github.com/bitmark-inc/chainindex/storage"
)

// UpdateSpentIndex - store each entry, a null value removes the key
func UpdateSpentIndex(entries []spentindex.Entry) error {
	trx, err := begin()
	if nil != err {
		return err
	}

	putSpent(trx, entries)

	return trx.Commit()
}

// ReadSpentIndex - where an output was spent
//
// false if the output is not recorded as spent
func ReadSpentIndex(key spentindex.Key) (spentindex.Value, bool, error) {
	if err := ready(); nil != err {
		return spentindex.NullValue(), false, err
	}

	packed := storage.Pool.SpentIndex.Get(key.Pack())
	if nil == packed {
		return spentindex.NullValue(), false, nil
	}

	value, err := spentindex.UnpackValue(packed)
	if nil != err {
		globalData.log.Errorf("spent: %s:%d  decode error: %s", key.TxId, key.OutputIndex, err)
		return spentindex.NullValue(), false, err
	}
	warnUnknown("spent", value.Address.Type())
	return value, true, nil
}

// LookupSpent - where an output was spent, unconfirmed spends first
func LookupSpent(key spentindex.Key) (spentindex.Value, bool, error) {
	_, options, err := settings()
	if nil != err {
		return spentindex.NullValue(), false, err
	}

	if nil != options.Pending {
		if value, ok := options.Pending.Get(key); ok {
			return value, true, nil
		}
	}
	return ReadSpentIndex(key)
}

// internal: add spent entries to an open transaction
func putSpent(trx storage.Transaction, entries []spentindex.Entry) {
	for _, e := range entries {
		if e.Value.IsNull() {
			trx.Delete(storage.Pool.SpentIndex, e.Key.Pack())
		} else {
			trx.Put(storage.Pool.SpentIndex, e.Key.Pack(), e.Value.Pack())
		}
	}
}
