// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addresshash

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/bitmark-inc/chainindex/fault"
)

// FromScript - determine the address a locking script pays to
//
// pay-to-pubkey is indexed under the hash160 of its key, so it shares
// entries with the corresponding pay-to-pubkey-hash address
func FromScript(script []byte, params *chaincfg.Params) (Address, error) {
	_, addresses, _, err := txscript.ExtractPkScriptAddrs(script, params)
	if nil != err {
		return Address{}, err
	}

	// bare multisig and non-standard scripts are not indexed
	if 1 != len(addresses) {
		return Address{}, fault.ErrUnsupportedScript
	}
	return FromBtcAddress(addresses[0])
}

// FromString - decode a base58 or bech32 address
func FromString(address string, params *chaincfg.Params) (Address, error) {
	a, err := btcutil.DecodeAddress(address, params)
	if nil != err {
		return Address{}, fault.ErrCannotDecodeAddress
	}
	if !a.IsForNet(params) {
		return Address{}, fault.ErrCannotDecodeAddress
	}
	return FromBtcAddress(a)
}

// FromBtcAddress - convert a decoded address
func FromBtcAddress(address btcutil.Address) (Address, error) {
	switch a := address.(type) {

	case *btcutil.AddressPubKeyHash:
		return NewPrimary(PubKeyHash, *a.Hash160())

	case *btcutil.AddressPubKey:
		return NewPrimary(PubKeyHash, *a.AddressPubKeyHash().Hash160())

	case *btcutil.AddressScriptHash:
		return NewPrimary(ScriptHash, *a.Hash160())

	case *btcutil.AddressWitnessPubKeyHash:
		return NewPrimary(WitnessPubKeyHash, *a.Hash160())

	case *btcutil.AddressWitnessScriptHash:
		// the full 32 byte program is kept, not a hash160 of it
		return New(WitnessScriptHash, a.WitnessProgram())
	}

	return Address{}, fault.ErrUnsupportedScript
}

// Encode - render the address in the chain's string form
func (a Address) Encode(params *chaincfg.Params) (string, error) {
	hash := a.Hash().Bytes()

	var (
		address btcutil.Address
		err     error
	)
	switch a.addressType {
	case PubKeyHash:
		address, err = btcutil.NewAddressPubKeyHash(hash, params)
	case ScriptHash:
		address, err = btcutil.NewAddressScriptHashFromHash(hash, params)
	case WitnessPubKeyHash:
		address, err = btcutil.NewAddressWitnessPubKeyHash(hash, params)
	case WitnessScriptHash:
		address, err = btcutil.NewAddressWitnessScriptHash(hash, params)
	default:
		return "", fault.ErrUnsupportedScript
	}
	if nil != err {
		return "", err
	}
	return address.EncodeAddress(), nil
}
