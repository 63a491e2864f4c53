// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package timestampindex

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/chainindex/fault"
)

// byte sizes for various fields
const (
	TimestampSize = 4
	BlockHashSize = chainhash.HashSize
	KeySize       = TimestampSize + BlockHashSize
	ScanKeySize   = TimestampSize
)

// Key - a block and its timestamp
type Key struct {
	Timestamp uint32
	BlockHash chainhash.Hash
}

// ScanKey - the first possible key for a timestamp
type ScanKey struct {
	Timestamp uint32
}

// Pack - 36 byte key
func (key Key) Pack() []byte {
	buffer := make([]byte, KeySize)
	binary.BigEndian.PutUint32(buffer, key.Timestamp)
	copy(buffer[TimestampSize:], key.BlockHash[:])
	return buffer
}

// Pack - 4 byte prefix
func (key ScanKey) Pack() []byte {
	buffer := make([]byte, ScanKeySize)
	binary.BigEndian.PutUint32(buffer, key.Timestamp)
	return buffer
}

// UnpackKey - convert a packed key
func UnpackKey(buffer []byte) (Key, error) {
	if len(buffer) < KeySize {
		return Key{}, fault.ErrTruncatedInput
	}
	if len(buffer) > KeySize {
		return Key{}, fault.ErrTrailingData
	}
	key := Key{
		Timestamp: binary.BigEndian.Uint32(buffer),
	}
	copy(key.BlockHash[:], buffer[TimestampSize:])
	return key, nil
}

// UnpackScanKey - convert a packed scan key
func UnpackScanKey(buffer []byte) (ScanKey, error) {
	if len(buffer) < ScanKeySize {
		return ScanKey{}, fault.ErrTruncatedInput
	}
	if len(buffer) > ScanKeySize {
		return ScanKey{}, fault.ErrTrailingData
	}
	return ScanKey{
		Timestamp: binary.BigEndian.Uint32(buffer),
	}, nil
}

// Range - half open byte range selecting low <= timestamp < high
func Range(high uint32, low uint32) ([]byte, []byte, error) {
	if high < low {
		return nil, nil, fault.ErrInvalidTimestampRange
	}
	return ScanKey{Timestamp: low}.Pack(), ScanKey{Timestamp: high}.Pack(), nil
}
