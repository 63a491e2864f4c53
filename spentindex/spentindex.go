// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spentindex

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/chainindex/addresshash"
	"github.com/bitmark-inc/chainindex/fault"
)

// byte sizes for various fields
const (
	TxIdSize         = chainhash.HashSize
	OutputIndexSize  = 4
	InputIndexSize   = 4
	BlockHeightSize  = 4
	AmountSize       = 8
	AddressTypeSize  = 4
	KeySize          = TxIdSize + OutputIndexSize
	MinimumValueSize = TxIdSize + InputIndexSize + BlockHeightSize + AmountSize + AddressTypeSize + addresshash.PrimarySize
)

// offsets of the value fields
const (
	spendingTxIdOffset = 0
	inputIndexOffset   = spendingTxIdOffset + TxIdSize
	blockHeightOffset  = inputIndexOffset + InputIndexSize
	amountOffset       = blockHeightOffset + BlockHeightSize
	addressTypeOffset  = amountOffset + AmountSize
	addressHashOffset  = addressTypeOffset + AddressTypeSize
)

// Key - an outpoint
type Key struct {
	TxId        chainhash.Hash `json:"txId"`
	OutputIndex uint32         `json:"outputIndex"`
}

// Value - where an output was spent
type Value struct {
	SpendingTxId chainhash.Hash      `json:"spendingTxId"`
	InputIndex   uint32              `json:"inputIndex"`
	BlockHeight  int32               `json:"blockHeight"`
	Amount       int64               `json:"amount"`
	Address      addresshash.Address `json:"-"`
}

// Entry - a key/value pair; a null value means remove the key
type Entry struct {
	Key   Key
	Value Value
}

// NullValue - the value that marks an absent record
func NullValue() Value {
	return Value{}
}

// IsNull - true if the spending txId is all zero
func (value Value) IsNull() bool {
	return value.SpendingTxId == chainhash.Hash{}
}

// Pack - 36 byte key
func (key Key) Pack() []byte {
	buffer := make([]byte, KeySize)
	copy(buffer, key.TxId[:])
	binary.LittleEndian.PutUint32(buffer[TxIdSize:], key.OutputIndex)
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
		OutputIndex: binary.LittleEndian.Uint32(buffer[TxIdSize:]),
	}
	copy(key.TxId[:], buffer[:TxIdSize])
	return key, nil
}

// PackedSize - bytes produced by Pack for this value
func (value Value) PackedSize() int {
	return addressHashOffset + value.Address.Type().HashSize()
}

// Pack - variable length value, the width depends on the address type
func (value Value) Pack() []byte {
	buffer := make([]byte, addressHashOffset, value.PackedSize())
	copy(buffer[spendingTxIdOffset:], value.SpendingTxId[:])
	binary.LittleEndian.PutUint32(buffer[inputIndexOffset:], value.InputIndex)
	binary.LittleEndian.PutUint32(buffer[blockHeightOffset:], uint32(value.BlockHeight))
	binary.LittleEndian.PutUint64(buffer[amountOffset:], uint64(value.Amount))
	binary.LittleEndian.PutUint32(buffer[addressTypeOffset:], uint32(value.Address.Type()))
	return value.Address.AppendHashTo(buffer)
}

// UnpackValue - convert a packed value
func UnpackValue(buffer []byte) (Value, error) {
	if len(buffer) < addressHashOffset {
		return Value{}, fault.ErrTruncatedInput
	}

	rawType := int32(binary.LittleEndian.Uint32(buffer[addressTypeOffset:]))
	if rawType < 0 || rawType > 0xff {
		return Value{}, fault.ErrMalformedDiscriminant
	}
	addressType := addresshash.Type(rawType)

	hash, n, err := addresshash.UnpackHash(addressType, buffer[addressHashOffset:])
	if nil != err {
		return Value{}, err
	}
	if addressHashOffset+n != len(buffer) {
		return Value{}, fault.ErrTrailingData
	}
	address, err := addresshash.FromTypeAndHash(addressType, hash)
	if nil != err {
		return Value{}, err
	}

	value := Value{
		InputIndex:  binary.LittleEndian.Uint32(buffer[inputIndexOffset:]),
		BlockHeight: int32(binary.LittleEndian.Uint32(buffer[blockHeightOffset:])),
		Amount:      int64(binary.LittleEndian.Uint64(buffer[amountOffset:])),
		Address:     address,
	}
	copy(value.SpendingTxId[:], buffer[spendingTxIdOffset:inputIndexOffset])
	return value, nil
}

// Compare - order by txId bytes then by output index
//
// returns -1, 0 or +1 as a < b, a == b, a > b
func Compare(a Key, b Key) int {
	if c := bytes.Compare(a.TxId[:], b.TxId[:]); 0 != c {
		return c
	}
	switch {
	case a.OutputIndex < b.OutputIndex:
		return -1
	case a.OutputIndex > b.OutputIndex:
		return 1
	default:
		return 0
	}
}

// Less - strict weak ordering form of Compare
func Less(a Key, b Key) bool {
	return Compare(a, b) < 0
}

// Compare - so a key can be used as an ordered tree item
func (key Key) Compare(other interface{}) int {
	return Compare(key, other.(Key))
}
