// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexdb

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/chainindex/storage"
	"github.com/bitmark-inc/chainindex/timestampindex"
)

// WriteTimestampIndex - record a block timestamp
func WriteTimestampIndex(key timestampindex.Key) error {
	trx, err := begin()
	if nil != err {
		return err
	}

	trx.Put(storage.Pool.TimestampIndex, key.Pack(), []byte{})

	return trx.Commit()
}

// ReadTimestampIndex - hashes of blocks with low <= timestamp < high
// in timestamp order
func ReadTimestampIndex(high uint32, low uint32) ([]chainhash.Hash, error) {
	if err := ready(); nil != err {
		return nil, err
	}

	start, limit, err := timestampindex.Range(high, low)
	if nil != err {
		return nil, err
	}

	hashes := []chainhash.Hash{}
	err = storage.Pool.TimestampIndex.NewRangeCursor(start, limit).Map(func(key []byte, value []byte) error {
		k, err := timestampindex.UnpackKey(key)
		if nil != err {
			globalData.log.Errorf("timestamp key: %x  decode error: %s", key, err)
			return err
		}
		hashes = append(hashes, k.BlockHash)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return hashes, nil
}
