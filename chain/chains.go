// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/bitmark-inc/chainindex/fault"
)

// names of all chains
const (
	Bitcoin = "bitcoin"
	Testnet = "testnet"
	Regtest = "regtest"
	Signet  = "signet"
	Simnet  = "simnet"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Bitcoin, Testnet, Regtest, Signet, Simnet:
		return true
	default:
		return false
	}
}

// Params - network parameters for address encoding and script
// classification
func Params(name string) (*chaincfg.Params, error) {
	switch name {
	case Bitcoin:
		return &chaincfg.MainNetParams, nil
	case Testnet:
		return &chaincfg.TestNet3Params, nil
	case Regtest:
		return &chaincfg.RegressionNetParams, nil
	case Signet:
		return &chaincfg.SigNetParams, nil
	case Simnet:
		return &chaincfg.SimNetParams, nil
	default:
		return nil, fault.ErrUnknownChain
	}
}
