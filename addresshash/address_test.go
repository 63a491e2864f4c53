// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addresshash_test

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/chainindex/addresshash"
	"github.com/bitmark-inc/chainindex/fault"
)

func filled(n int, b byte) []byte {
	buffer := make([]byte, n)
	for i := range buffer {
		buffer[i] = b + byte(i)
	}
	return buffer
}

func TestHashSize(t *testing.T) {
	for i := 0; i < 256; i += 1 {
		addressType := addresshash.Type(i)
		expected := 20
		if 4 == i {
			expected = 32
		}
		if addressType.HashSize() != expected {
			t.Errorf("type: %d  hash size: %d  expected: %d", i, addressType.HashSize(), expected)
		}
		if addressType.PackedSize() != expected+1 {
			t.Errorf("type: %d  packed size: %d  expected: %d", i, addressType.PackedSize(), expected+1)
		}
	}
}

func TestPackUnpack(t *testing.T) {
	for _, addressType := range []addresshash.Type{0, 1, 2, 3, 4, 5, 200, 255} {
		hash := filled(addressType.HashSize(), byte(addressType))
		a, err := addresshash.New(addressType, hash)
		if !assert.Nil(t, err, "new type %d", addressType) {
			continue
		}

		packed := a.Pack()
		assert.Equal(t, 1+len(hash), len(packed), "packed length for type %d", addressType)
		assert.Equal(t, byte(addressType), packed[0], "type byte")
		assert.True(t, bytes.Equal(hash, packed[1:]), "hash bytes for type %d", addressType)

		// trailing bytes must not be consumed
		a2, n, err := addresshash.Unpack(append(packed, 0xff, 0xfe))
		assert.Nil(t, err, "unpack type %d", addressType)
		assert.Equal(t, len(packed), n, "consumed bytes for type %d", addressType)
		assert.Equal(t, a, a2, "round trip for type %d", addressType)
	}
}

func TestHashVariant(t *testing.T) {
	a, err := addresshash.New(addresshash.WitnessScriptHash, filled(32, 1))
	assert.Nil(t, err)
	_, ok := a.Hash().(addresshash.Alternate)
	assert.True(t, ok, "type 4 must hold the alternate hash")

	a, err = addresshash.New(addresshash.ScriptHash, filled(20, 1))
	assert.Nil(t, err)
	_, ok = a.Hash().(addresshash.Primary)
	assert.True(t, ok, "type 2 must hold the primary hash")
}

func TestNewErrors(t *testing.T) {
	_, err := addresshash.New(addresshash.WitnessScriptHash, filled(20, 0))
	assert.Equal(t, fault.ErrHashLength, err)

	_, err = addresshash.New(addresshash.PubKeyHash, filled(32, 0))
	assert.Equal(t, fault.ErrHashLength, err)

	_, err = addresshash.NewPrimary(addresshash.WitnessScriptHash, addresshash.Primary{})
	assert.Equal(t, fault.ErrMismatchedAddressType, err)

	_, err = addresshash.FromTypeAndHash(addresshash.PubKeyHash, addresshash.Alternate{})
	assert.Equal(t, fault.ErrMismatchedAddressType, err)
}

func TestUnpackTruncated(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x01},
		append([]byte{0x01}, filled(19, 0)...),
		append([]byte{0x04}, filled(20, 0)...),
		append([]byte{0x04}, filled(31, 0)...),
	}
	for i, input := range inputs {
		_, n, err := addresshash.Unpack(input)
		if fault.ErrTruncatedInput != err {
			t.Errorf("%d: error: %v  expected: %v", i, err, fault.ErrTruncatedInput)
		}
		if 0 != n {
			t.Errorf("%d: consumed: %d  expected: 0", i, n)
		}
	}
}

func TestZeroAddress(t *testing.T) {
	a := addresshash.Address{}
	packed := a.Pack()
	assert.Equal(t, make([]byte, 21), packed, "zero address packs as type 0 and zero hash")

	unpacked, n, err := addresshash.Unpack(packed)
	assert.Nil(t, err)
	assert.Equal(t, 21, n)
	assert.True(t, a == unpacked, "unpacked zero address must equal the zero value")

	seen := map[addresshash.Address]int{a: 1}
	assert.Equal(t, 1, seen[unpacked], "zero address map key")

	// every constructor gives the same zero address
	fromNew, err := addresshash.New(addresshash.NoAddress, make([]byte, 20))
	assert.Nil(t, err)
	fromPrimary, err := addresshash.NewPrimary(addresshash.NoAddress, addresshash.Primary{})
	assert.Nil(t, err)
	fromHash, err := addresshash.FromTypeAndHash(addresshash.NoAddress, addresshash.Primary{})
	assert.Nil(t, err)
	assert.True(t, a == fromNew && a == fromPrimary && a == fromHash, "zero address constructors")

	// zero alternate hash
	alternate := addresshash.NewAlternate(addresshash.Alternate{})
	unpacked, _, err = addresshash.Unpack(alternate.Pack())
	assert.Nil(t, err)
	assert.True(t, alternate == unpacked, "zero alternate round trip")
	_, ok := unpacked.Hash().(addresshash.Alternate)
	assert.True(t, ok, "zero alternate keeps its width")
}

func TestKnown(t *testing.T) {
	for i := 0; i < 256; i += 1 {
		assert.Equal(t, i <= 4, addresshash.Type(i).Known(), "type %d", i)
	}
}

func TestFromScript(t *testing.T) {
	params := &chaincfg.MainNetParams

	pkh, err := btcutil.NewAddressPubKeyHash(filled(20, 0x10), params)
	assert.Nil(t, err)
	sh, err := btcutil.NewAddressScriptHashFromHash(filled(20, 0x20), params)
	assert.Nil(t, err)
	wpkh, err := btcutil.NewAddressWitnessPubKeyHash(filled(20, 0x30), params)
	assert.Nil(t, err)
	wsh, err := btcutil.NewAddressWitnessScriptHash(filled(32, 0x40), params)
	assert.Nil(t, err)

	tests := []struct {
		address      btcutil.Address
		expectedType addresshash.Type
		expectedHash []byte
	}{
		{pkh, addresshash.PubKeyHash, filled(20, 0x10)},
		{sh, addresshash.ScriptHash, filled(20, 0x20)},
		{wpkh, addresshash.WitnessPubKeyHash, filled(20, 0x30)},
		{wsh, addresshash.WitnessScriptHash, filled(32, 0x40)},
	}

	for i, item := range tests {
		script, err := txscript.PayToAddrScript(item.address)
		if !assert.Nil(t, err, "%d: pay to address script", i) {
			continue
		}

		a, err := addresshash.FromScript(script, params)
		if !assert.Nil(t, err, "%d: from script", i) {
			continue
		}
		assert.Equal(t, item.expectedType, a.Type(), "%d: type", i)
		assert.Equal(t, item.expectedHash, a.Hash().Bytes(), "%d: hash", i)

		// string form round trip
		s, err := a.Encode(params)
		assert.Nil(t, err, "%d: encode", i)
		assert.Equal(t, item.address.EncodeAddress(), s, "%d: encoded string", i)

		a2, err := addresshash.FromString(s, params)
		assert.Nil(t, err, "%d: from string", i)
		assert.Equal(t, a, a2, "%d: string round trip", i)
	}
}

func TestFromScriptUnsupported(t *testing.T) {
	script := []byte{txscript.OP_RETURN, 0x01, 0x02}
	_, err := addresshash.FromScript(script, &chaincfg.MainNetParams)
	assert.Equal(t, fault.ErrUnsupportedScript, err)
}

func TestFromStringInvalid(t *testing.T) {
	_, err := addresshash.FromString("not-an-address", &chaincfg.MainNetParams)
	assert.Equal(t, fault.ErrCannotDecodeAddress, err)
}
