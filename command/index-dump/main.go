// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/chainindex/addresshash"
	"github.com/bitmark-inc/chainindex/chain"
	"github.com/bitmark-inc/chainindex/configuration"
	"github.com/bitmark-inc/chainindex/indexdb"
	"github.com/bitmark-inc/chainindex/spentindex"
	"github.com/bitmark-inc/chainindex/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "list", HasArg: getoptions.NO_ARGUMENT, Short: 'l'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "pool", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'p'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'n'},
		{Long: "address", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'a'},
		{Long: "start", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
		{Long: "end", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'e'},
		{Long: "unspent", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'u'},
		{Long: "spent", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'o'},
		{Long: "time", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 't'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["list"]) > 0 {

		// this will be a struct type
		poolType := reflect.TypeOf(storage.Pool)

		// print all available tags
		fmt.Printf(" tags:\n")
		for i := 0; i < poolType.NumField(); i += 1 {
			fieldInfo := poolType.Field(i)
			prefixTag := fieldInfo.Tag.Get("prefix")
			fmt.Printf("       %s → %s\n", prefixTag, fieldInfo.Name)
		}
		return
	}

	if len(options["help"]) > 0 || 1 != len(options["config-file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--list] --config-file=FILE [--pool=TAG [--count=N]] [--address=ADDR [--start=H --end=H]] [--unspent=ADDR] [--spent=TXID:N] [--time=HIGH:LOW]", program)
	}

	verbose := len(options["verbose"]) > 0

	configurationFile := options["config-file"][0]
	masterConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	params, err := chain.Params(masterConfiguration.Chain)
	if nil != err {
		exitwithstatus.Message("%s: chain: %q  error: %s", program, masterConfiguration.Chain, err)
	}

	// start logging
	if err = logger.Initialise(masterConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	log.Infof("version: %s  chain: %s", version, masterConfiguration.Chain)

	// start of main processing
	databasePath := masterConfiguration.DatabasePath()
	if verbose {
		fmt.Printf("database: %q\n", databasePath)
	}
	err = storage.Initialise(databasePath, storage.ReadOnly)
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer storage.Finalise()

	err = indexdb.Initialise(params, indexdb.Options{
		Spent:     masterConfiguration.Index.Spent,
		Address:   masterConfiguration.Index.Address,
		Timestamp: masterConfiguration.Index.Timestamp,
	})
	if nil != err {
		exitwithstatus.Message("%s: index setup failed with error: %s", program, err)
	}
	defer indexdb.Finalise()

	if len(options["pool"]) > 0 {
		count := 10
		if len(options["count"]) > 0 {
			count, err = strconv.Atoi(options["count"][0])
			if nil != err || count < 1 {
				exitwithstatus.Message("%s: invalid count: %q", program, options["count"][0])
			}
		}
		dumpPool(program, options["pool"][0], count)
	}

	if len(options["address"]) > 0 {
		address := decodeAddress(program, options["address"][0], params)
		start := height(program, options["start"])
		end := height(program, options["end"])

		entries, err := indexdb.ReadAddressIndex(address, start, end)
		if nil != err {
			exitwithstatus.Message("%s: read history error: %s", program, err)
		}
		for i, e := range entries {
			direction := "out"
			if e.Key.IsSpend {
				direction = "in "
			}
			fmt.Printf("%d: height: %d  tx: %s  %s: %d  amount: %d\n", i, e.Key.BlockHeight, e.Key.TxId, direction, e.Key.Index, e.Amount)
		}
	}

	if len(options["unspent"]) > 0 {
		address := decodeAddress(program, options["unspent"][0], params)

		entries, err := indexdb.ReadAddressUnspentIndex(address)
		if nil != err {
			exitwithstatus.Message("%s: read unspent error: %s", program, err)
		}
		total := int64(0)
		for i, e := range entries {
			fmt.Printf("%d: %s:%d  height: %d  amount: %d  script: %x\n", i, e.Key.TxId, e.Key.OutputIndex, e.Value.BlockHeight, e.Value.Amount, e.Value.Script)
			total += e.Value.Amount
		}
		fmt.Printf("total: %d\n", total)
	}

	if len(options["spent"]) > 0 {
		key := outpoint(program, options["spent"][0])

		value, found, err := indexdb.ReadSpentIndex(key)
		if nil != err {
			exitwithstatus.Message("%s: read spent error: %s", program, err)
		}
		if !found {
			fmt.Printf("%s:%d  unspent\n", key.TxId, key.OutputIndex)
		} else {
			fmt.Printf("%s:%d  spent by: %s:%d  height: %d  amount: %d  address: %s\n", key.TxId, key.OutputIndex, value.SpendingTxId, value.InputIndex, value.BlockHeight, value.Amount, value.Address)
		}
	}

	if len(options["time"]) > 0 {
		high, low := timeRange(program, options["time"][0])

		hashes, err := indexdb.ReadTimestampIndex(high, low)
		if nil != err {
			exitwithstatus.Message("%s: read timestamp error: %s", program, err)
		}
		for i, h := range hashes {
			fmt.Printf("%d: %s\n", i, h)
		}
	}
}

// print the first records of a pool as hex
func dumpPool(program string, tag string, count int) {
	p, err := storage.PoolByTag(tag)
	if nil != err {
		exitwithstatus.Message("%s: pool: %q  error: %s", program, tag, err)
	}

	data, err := p.NewFetchCursor().Fetch(count)
	if nil != err {
		exitwithstatus.Message("%s: error on Fetch: %s", program, err)
	}
	for i, e := range data {
		fmt.Printf("%d: Key: %x\n", i, e.Key)
		fmt.Printf("%d: Val: %x\n", i, e.Value)
	}
}

// base58 or bech32 address, or TYPE:HEX for raw hashes
func decodeAddress(program string, s string, params *chaincfg.Params) addresshash.Address {
	if n := strings.Index(s, ":"); n > 0 {
		t, err := strconv.ParseUint(s[:n], 10, 8)
		if nil != err {
			exitwithstatus.Message("%s: address type: %q  error: %s", program, s[:n], err)
		}
		hash, err := hex.DecodeString(s[n+1:])
		if nil != err {
			exitwithstatus.Message("%s: address hash: %q  error: %s", program, s[n+1:], err)
		}
		address, err := addresshash.New(addresshash.Type(t), hash)
		if nil != err {
			exitwithstatus.Message("%s: address: %q  error: %s", program, s, err)
		}
		return address
	}

	address, err := addresshash.FromString(s, params)
	if nil != err {
		exitwithstatus.Message("%s: address: %q  error: %s", program, s, err)
	}
	return address
}

// optional height, zero when absent
func height(program string, values []string) int32 {
	if 0 == len(values) {
		return 0
	}
	h, err := strconv.ParseInt(values[0], 10, 32)
	if nil != err {
		exitwithstatus.Message("%s: height: %q  error: %s", program, values[0], err)
	}
	return int32(h)
}

// TXID:N
func outpoint(program string, s string) spentindex.Key {
	parts := strings.Split(s, ":")
	if 2 != len(parts) {
		exitwithstatus.Message("%s: outpoint: %q  expected TXID:N", program, s)
	}
	txId, err := chainhash.NewHashFromStr(parts[0])
	if nil != err {
		exitwithstatus.Message("%s: txid: %q  error: %s", program, parts[0], err)
	}
	n, err := strconv.ParseUint(parts[1], 10, 32)
	if nil != err {
		exitwithstatus.Message("%s: output index: %q  error: %s", program, parts[1], err)
	}
	return spentindex.Key{
		TxId:        *txId,
		OutputIndex: uint32(n),
	}
}

// HIGH:LOW
func timeRange(program string, s string) (uint32, uint32) {
	parts := strings.Split(s, ":")
	if 2 != len(parts) {
		exitwithstatus.Message("%s: time range: %q  expected HIGH:LOW", program, s)
	}
	high, err := strconv.ParseUint(parts[0], 10, 32)
	if nil != err {
		exitwithstatus.Message("%s: high: %q  error: %s", program, parts[0], err)
	}
	low, err := strconv.ParseUint(parts[1], 10, 32)
	if nil != err {
		exitwithstatus.Message("%s: low: %q  error: %s", program, parts[1], err)
	}
	return uint32(high), uint32(low)
}
