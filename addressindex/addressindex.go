// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addressindex

import (
	"encoding/binary"
	"math"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/chainindex/addresshash"
	"github.com/bitmark-inc/chainindex/fault"
)

// byte sizes for various fields
const (
	BlockHeightSize = 4
	TxIndexSize     = 4
	TxIdSize        = chainhash.HashSize
	IndexSize       = 4
	IsSpendSize     = 1
	ValueSize       = 8

	// everything after the address
	suffixSize = BlockHeightSize + TxIndexSize + TxIdSize + IndexSize + IsSpendSize
)

// Key - one input or output of a transaction touching an address
type Key struct {
	Address     addresshash.Address
	BlockHeight int32          // order significant: big endian
	TxIndex     uint32         // order significant: big endian
	TxId        chainhash.Hash //
	Index       uint32         // payload only: little endian
	IsSpend     bool           // false: output to address, true: input spending from address
}

// ScanKey - all history of an address
type ScanKey struct {
	Address addresshash.Address
}

// HeightScanKey - history of an address starting at a block height
type HeightScanKey struct {
	Address     addresshash.Address
	BlockHeight int32
}

// Entry - key with its amount
//
// the amount is negative for spends
type Entry struct {
	Key    Key
	Amount int64
}

// KeySize - packed key length for an address type
func KeySize(addressType addresshash.Type) int {
	return addressType.PackedSize() + suffixSize
}

// ScanKeySize - packed scan key length for an address type
func ScanKeySize(addressType addresshash.Type) int {
	return addressType.PackedSize()
}

// HeightScanKeySize - packed height scan key length for an address type
func HeightScanKeySize(addressType addresshash.Type) int {
	return addressType.PackedSize() + BlockHeightSize
}

// Pack - 66 or 78 byte key
func (key Key) Pack() []byte {
	buffer := make([]byte, 0, KeySize(key.Address.Type()))
	buffer = key.Address.AppendTo(buffer)
	buffer = appendHeight(buffer, key.BlockHeight)
	buffer = appendUint32(buffer, key.TxIndex, binary.BigEndian)
	buffer = append(buffer, key.TxId[:]...)
	buffer = appendUint32(buffer, key.Index, binary.LittleEndian)

	if key.IsSpend {
		return append(buffer, 0x01)
	}
	return append(buffer, 0x00)
}

// Pack - 21 or 33 byte prefix
func (key ScanKey) Pack() []byte {
	return key.Address.Pack()
}

// Pack - 25 or 37 byte prefix
func (key HeightScanKey) Pack() []byte {
	buffer := make([]byte, 0, HeightScanKeySize(key.Address.Type()))
	return appendHeight(key.Address.AppendTo(buffer), key.BlockHeight)
}

// UnpackKey - convert a packed key
func UnpackKey(buffer []byte) (Key, error) {
	address, n, err := addresshash.Unpack(buffer)
	if nil != err {
		return Key{}, err
	}
	if len(buffer) < n+suffixSize {
		return Key{}, fault.ErrTruncatedInput
	}
	if len(buffer) > n+suffixSize {
		return Key{}, fault.ErrTrailingData
	}

	key := Key{
		Address:     address,
		BlockHeight: int32(binary.BigEndian.Uint32(buffer[n:])),
	}
	n += BlockHeightSize

	key.TxIndex = binary.BigEndian.Uint32(buffer[n:])
	n += TxIndexSize

	copy(key.TxId[:], buffer[n:n+TxIdSize])
	n += TxIdSize

	key.Index = binary.LittleEndian.Uint32(buffer[n:])
	n += IndexSize

	key.IsSpend = 0 != buffer[n]
	return key, nil
}

// UnpackScanKey - convert a packed scan key
func UnpackScanKey(buffer []byte) (ScanKey, error) {
	address, n, err := addresshash.Unpack(buffer)
	if nil != err {
		return ScanKey{}, err
	}
	if len(buffer) != n {
		return ScanKey{}, fault.ErrTrailingData
	}
	return ScanKey{Address: address}, nil
}

// UnpackHeightScanKey - convert a packed height scan key
func UnpackHeightScanKey(buffer []byte) (HeightScanKey, error) {
	address, n, err := addresshash.Unpack(buffer)
	if nil != err {
		return HeightScanKey{}, err
	}
	if len(buffer) < n+BlockHeightSize {
		return HeightScanKey{}, fault.ErrTruncatedInput
	}
	if len(buffer) > n+BlockHeightSize {
		return HeightScanKey{}, fault.ErrTrailingData
	}
	return HeightScanKey{
		Address:     address,
		BlockHeight: int32(binary.BigEndian.Uint32(buffer[n:])),
	}, nil
}

// PackValue - amount as little endian
func PackValue(amount int64) []byte {
	buffer := make([]byte, ValueSize)
	binary.LittleEndian.PutUint64(buffer, uint64(amount))
	return buffer
}

// UnpackValue - convert a packed amount
func UnpackValue(buffer []byte) (int64, error) {
	if len(buffer) < ValueSize {
		return 0, fault.ErrTruncatedInput
	}
	if len(buffer) > ValueSize {
		return 0, fault.ErrTrailingData
	}
	return int64(binary.LittleEndian.Uint64(buffer)), nil
}

// Scan - the history scan key for a full key
func (key Key) Scan() ScanKey {
	return ScanKey{Address: key.Address}
}

// HeightScan - the height scan key for a full key
func (key Key) HeightScan() HeightScanKey {
	return HeightScanKey{
		Address:     key.Address,
		BlockHeight: key.BlockHeight,
	}
}

// Limit - smallest byte string greater than every string with the
// given prefix
//
// nil means no upper bound (prefix was empty or all 0xff)
func Limit(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i -= 1 {
		if c := prefix[i]; c < 0xff {
			limit := make([]byte, i+1)
			copy(limit, prefix)
			limit[i] = c + 1
			return limit
		}
	}
	return nil
}

// Range - half open byte range [start, limit) covering all history of
// the address
func (key ScanKey) Range() ([]byte, []byte) {
	start := key.Pack()
	return start, Limit(start)
}

// HeightRange - half open byte range covering heights start..end
// inclusive for an address
func HeightRange(address addresshash.Address, start int32, end int32) ([]byte, []byte, error) {
	if start < 0 || end < start {
		return nil, nil, fault.ErrInvalidHeightRange
	}

	startKey := HeightScanKey{
		Address:     address,
		BlockHeight: start,
	}.Pack()

	// negative heights sort above MaxInt32
	if math.MaxInt32 == end {
		limitKey := HeightScanKey{
			Address:     address,
			BlockHeight: math.MinInt32,
		}.Pack()
		return startKey, limitKey, nil
	}

	limitKey := HeightScanKey{
		Address:     address,
		BlockHeight: end + 1,
	}.Pack()
	return startKey, limitKey, nil
}

// internal: append a big endian height
func appendHeight(buffer []byte, height int32) []byte {
	return appendUint32(buffer, uint32(height), binary.BigEndian)
}

// internal: append a four byte integer in the given byte order
func appendUint32(buffer []byte, value uint32, order binary.ByteOrder) []byte {
	var b [4]byte
	order.PutUint32(b[:], value)
	return append(buffer, b[:]...)
}
