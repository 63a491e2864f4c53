// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package unspentindex

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/chainindex/addresshash"
	"github.com/bitmark-inc/chainindex/fault"
)

// byte sizes for various fields
const (
	TxIdSize        = chainhash.HashSize
	OutputIndexSize = 4
	AmountSize      = 8
	BlockHeightSize = 4

	// amount that marks an absent record
	NullAmount = int64(-1)

	// upper bound on a decoded script
	MaxScriptSize = wire.MaxMessagePayload

	// encoding version passed to the wire var bytes functions
	protocolVersion = wire.ProtocolVersion
)

// Key - an unspent output paying to an address
type Key struct {
	Address     addresshash.Address
	TxId        chainhash.Hash
	OutputIndex uint32
}

// ScanKey - all unspent outputs of an address
type ScanKey struct {
	Address addresshash.Address
}

// Value - the output details
type Value struct {
	Amount      int64
	Script      []byte
	BlockHeight int32
}

// Entry - a key/value pair; a null value means remove the key
type Entry struct {
	Key   Key
	Value Value
}

// KeySize - packed key length for an address type
func KeySize(addressType addresshash.Type) int {
	return addressType.PackedSize() + TxIdSize + OutputIndexSize
}

// NullValue - the value that marks an absent record
func NullValue() Value {
	return Value{
		Amount: NullAmount,
	}
}

// IsNull - true for the -1 amount sentinel
func (value Value) IsNull() bool {
	return NullAmount == value.Amount
}

// Pack - 57 or 69 byte key
func (key Key) Pack() []byte {
	buffer := make([]byte, 0, KeySize(key.Address.Type()))
	buffer = key.Address.AppendTo(buffer)
	buffer = append(buffer, key.TxId[:]...)

	var index [OutputIndexSize]byte
	binary.LittleEndian.PutUint32(index[:], key.OutputIndex)
	return append(buffer, index[:]...)
}

// Pack - 21 or 33 byte prefix of every key for the address
func (key ScanKey) Pack() []byte {
	return key.Address.Pack()
}

// Scan - the scan key for a full key
func (key Key) Scan() ScanKey {
	return ScanKey{Address: key.Address}
}

// UnpackKey - convert a packed key
func UnpackKey(buffer []byte) (Key, error) {
	address, n, err := addresshash.Unpack(buffer)
	if nil != err {
		return Key{}, err
	}
	if len(buffer) < n+TxIdSize+OutputIndexSize {
		return Key{}, fault.ErrTruncatedInput
	}
	if len(buffer) > n+TxIdSize+OutputIndexSize {
		return Key{}, fault.ErrTrailingData
	}

	key := Key{
		Address: address,
	}
	copy(key.TxId[:], buffer[n:n+TxIdSize])
	n += TxIdSize

	key.OutputIndex = binary.LittleEndian.Uint32(buffer[n:])
	return key, nil
}

// PackedSize - bytes produced by Pack for this value
func (value Value) PackedSize() int {
	return AmountSize + wire.VarIntSerializeSize(uint64(len(value.Script))) + len(value.Script) + BlockHeightSize
}

// Pack - variable length value
func (value Value) Pack() []byte {
	buffer := bytes.NewBuffer(make([]byte, 0, value.PackedSize()))

	var amount [AmountSize]byte
	binary.LittleEndian.PutUint64(amount[:], uint64(value.Amount))
	buffer.Write(amount[:])

	// only fails if the writer fails, a bytes.Buffer does not
	_ = wire.WriteVarBytes(buffer, protocolVersion, value.Script)

	var height [BlockHeightSize]byte
	binary.LittleEndian.PutUint32(height[:], uint32(value.BlockHeight))
	buffer.Write(height[:])

	return buffer.Bytes()
}

// UnpackValue - convert a packed value
func UnpackValue(buffer []byte) (Value, error) {
	if len(buffer) < AmountSize {
		return Value{}, fault.ErrTruncatedInput
	}

	amount := int64(binary.LittleEndian.Uint64(buffer))
	if amount < 0 && NullAmount != amount {
		return Value{}, fault.ErrInvalidAmount
	}

	r := bytes.NewReader(buffer[AmountSize:])
	script, err := wire.ReadVarBytes(r, protocolVersion, MaxScriptSize, "script")
	if nil != err {
		if io.EOF == err || io.ErrUnexpectedEOF == err {
			return Value{}, fault.ErrTruncatedInput
		}
		return Value{}, fault.ErrInvalidScriptLength
	}
	if 0 == len(script) {
		script = nil
	}

	if r.Len() < BlockHeightSize {
		return Value{}, fault.ErrTruncatedInput
	}
	if r.Len() > BlockHeightSize {
		return Value{}, fault.ErrTrailingData
	}
	var height [BlockHeightSize]byte
	_, _ = io.ReadFull(r, height[:])

	return Value{
		Amount:      amount,
		Script:      script,
		BlockHeight: int32(binary.LittleEndian.Uint32(height[:])),
	}, nil
}
