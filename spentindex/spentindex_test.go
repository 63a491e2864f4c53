// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spentindex_test

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/chainindex/addresshash"
	"github.com/bitmark-inc/chainindex/fault"
	"github.com/bitmark-inc/chainindex/spentindex"
)

func makeHash(b byte) chainhash.Hash {
	h := chainhash.Hash{}
	for i := range h {
		h[i] = b ^ byte(i)
	}
	return h
}

func makeAddress(t *testing.T, addressType addresshash.Type) addresshash.Address {
	hash := make([]byte, addressType.HashSize())
	for i := range hash {
		hash[i] = byte(addressType)*16 + byte(i)
	}
	a, err := addresshash.New(addressType, hash)
	if nil != err {
		t.Fatalf("new address error: %s", err)
	}
	return a
}

func TestKeyPack(t *testing.T) {
	key := spentindex.Key{
		TxId:        makeHash(0x5a),
		OutputIndex: 0x01020304,
	}
	packed := key.Pack()
	if spentindex.KeySize != len(packed) {
		t.Fatalf("packed length: %d  expected: %d", len(packed), spentindex.KeySize)
	}

	expected := hex.EncodeToString(key.TxId[:]) + "04030201"
	if hex.EncodeToString(packed) != expected {
		t.Errorf("packed: %x  expected: %s", packed, expected)
	}

	unpacked, err := spentindex.UnpackKey(packed)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if unpacked != key {
		t.Errorf("unpacked: %+v  expected: %+v", unpacked, key)
	}
}

func TestKeyUnpackLength(t *testing.T) {
	_, err := spentindex.UnpackKey(make([]byte, 35))
	assert.Equal(t, fault.ErrTruncatedInput, err)

	_, err = spentindex.UnpackKey(make([]byte, 37))
	assert.Equal(t, fault.ErrTrailingData, err)
}

func TestValueRoundTrip(t *testing.T) {
	for _, addressType := range []addresshash.Type{0, 1, 2, 3, 4} {
		value := spentindex.Value{
			SpendingTxId: makeHash(byte(addressType)),
			InputIndex:   math.MaxUint32,
			BlockHeight:  math.MaxInt32,
			Amount:       math.MinInt64 + int64(addressType),
			Address:      makeAddress(t, addressType),
		}

		packed := value.Pack()
		expectedSize := 72
		if addresshash.WitnessScriptHash == addressType {
			expectedSize = 84
		}
		assert.Equal(t, expectedSize, len(packed), "packed size for type %d", addressType)
		assert.Equal(t, expectedSize, value.PackedSize(), "computed size for type %d", addressType)

		// the address type is a four byte little endian integer
		assert.Equal(t, uint32(addressType), binary.LittleEndian.Uint32(packed[48:52]), "type field")

		unpacked, err := spentindex.UnpackValue(packed)
		assert.Nil(t, err, "unpack type %d", addressType)
		assert.Equal(t, value, unpacked, "round trip for type %d", addressType)
	}
}

func TestValueUnpackErrors(t *testing.T) {
	value := spentindex.Value{
		SpendingTxId: makeHash(1),
		Address:      makeAddress(t, addresshash.WitnessScriptHash),
	}
	packed := value.Pack()

	// every proper prefix is truncated
	for n := 0; n < len(packed); n += 1 {
		_, err := spentindex.UnpackValue(packed[:n])
		if fault.ErrTruncatedInput != err {
			t.Errorf("length: %d  error: %v  expected: %v", n, err, fault.ErrTruncatedInput)
		}
	}

	_, err := spentindex.UnpackValue(append(packed, 0))
	assert.Equal(t, fault.ErrTrailingData, err)

	// type outside of a byte
	for _, raw := range []uint32{0x100, 0xffffffff} {
		bad := make([]byte, len(packed))
		copy(bad, packed)
		binary.LittleEndian.PutUint32(bad[48:], raw)
		_, err := spentindex.UnpackValue(bad)
		assert.Equal(t, fault.ErrMalformedDiscriminant, err, "raw type: %x", raw)
	}
}

func TestUnknownTypeIsLenient(t *testing.T) {
	value := spentindex.Value{
		SpendingTxId: makeHash(1),
		Address:      makeAddress(t, addresshash.Type(77)),
	}
	packed := value.Pack()
	assert.Equal(t, 72, len(packed))

	unpacked, err := spentindex.UnpackValue(packed)
	assert.Nil(t, err)
	assert.Equal(t, value, unpacked)
}

func TestNullValue(t *testing.T) {
	assert.True(t, spentindex.NullValue().IsNull())

	null := spentindex.NullValue()
	unpacked, err := spentindex.UnpackValue(null.Pack())
	assert.Nil(t, err)
	assert.True(t, unpacked.IsNull())
	assert.True(t, null == unpacked, "null round trip")

	v := spentindex.Value{SpendingTxId: makeHash(3)}
	assert.False(t, v.IsNull())

	// zero txid with other fields set is still null
	v = spentindex.Value{InputIndex: 5, Amount: 100}
	assert.True(t, v.IsNull())
}

func key(txId chainhash.Hash, n uint32) spentindex.Key {
	return spentindex.Key{
		TxId:        txId,
		OutputIndex: n,
	}
}

func TestCompare(t *testing.T) {
	low := chainhash.Hash{}
	high := chainhash.Hash{}
	high[0] = 1

	// differing only in the last byte
	lastLow := chainhash.Hash{}
	lastHigh := chainhash.Hash{}
	lastHigh[31] = 1

	tests := []struct {
		a        spentindex.Key
		b        spentindex.Key
		expected int
	}{
		{key(low, 0), key(low, 0), 0},
		{key(low, 0), key(low, 1), -1},
		{key(low, 1), key(low, 0), 1},
		{key(low, math.MaxUint32), key(high, 0), -1},
		{key(high, 0), key(low, math.MaxUint32), 1},
		{key(lastLow, 9), key(lastHigh, 0), -1},
		{key(lastHigh, 0), key(lastLow, 9), 1},
	}

	for i, item := range tests {
		actual := spentindex.Compare(item.a, item.b)
		if actual != item.expected {
			t.Errorf("%d: compare: %d  expected: %d", i, actual, item.expected)
		}
		if spentindex.Less(item.a, item.b) != (item.expected < 0) {
			t.Errorf("%d: less: %v  expected: %v", i, !(item.expected < 0), item.expected < 0)
		}
		if item.a.Compare(item.b) != item.expected {
			t.Errorf("%d: method compare: %d  expected: %d", i, item.a.Compare(item.b), item.expected)
		}
	}
}

// sorting with Less must match tuple ordering of (txId, index)
func TestCompareTotalOrder(t *testing.T) {
	keys := []spentindex.Key{}
	for _, b := range []byte{0x7f, 0x00, 0xff, 0x10} {
		for _, n := range []uint32{3, 0, math.MaxUint32, 1} {
			h := chainhash.Hash{}
			h[0] = b
			keys = append(keys, spentindex.Key{TxId: h, OutputIndex: n})
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		return spentindex.Less(keys[i], keys[j])
	})

	for i := 1; i < len(keys); i += 1 {
		a := keys[i-1]
		b := keys[i]
		ordered := a.TxId[0] < b.TxId[0] || (a.TxId[0] == b.TxId[0] && a.OutputIndex < b.OutputIndex)
		if !ordered {
			t.Errorf("%d: out of order: %v:%d before %v:%d", i, a.TxId[0], a.OutputIndex, b.TxId[0], b.OutputIndex)
		}
		if spentindex.Compare(b, a) != 1 || spentindex.Compare(a, b) != -1 {
			t.Errorf("%d: compare not antisymmetric", i)
		}
	}
}
