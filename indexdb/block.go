// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexdb

import (
	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/chainindex/addresshash"
	"github.com/bitmark-inc/chainindex/addressindex"
	"github.com/bitmark-inc/chainindex/spentindex"
	"github.com/bitmark-inc/chainindex/storage"
	"github.com/bitmark-inc/chainindex/timestampindex"
	"github.com/bitmark-inc/chainindex/unspentindex"
)

// PrevOutputFetcher - source of outputs created before the block
//
// returns the output and the height of the block that created it
type PrevOutputFetcher interface {
	FetchPrevOutput(outpoint wire.OutPoint) (*wire.TxOut, int32, error)
}

// an output with the height it was created at
type prevOutput struct {
	txOut  *wire.TxOut
	height int32
}

// entries derived from one block
type blockEntries struct {
	spent   []spentindex.Entry
	history []addressindex.Entry
	unspent []unspentindex.Entry
}

// ConnectBlock - add the entries of a block at the given height to
// every enabled index
func ConnectBlock(block *btcutil.Block, height int32, fetcher PrevOutputFetcher) error {
	params, options, err := settings()
	if nil != err {
		return err
	}
	inBlock := make(map[wire.OutPoint]prevOutput)
	entries := blockEntries{}

	for txIndex, tx := range block.Transactions() {
		txId := *tx.Hash()
		msgTx := tx.MsgTx()

		if !blockchain.IsCoinBaseTx(msgTx) {
			for inputIndex, txIn := range msgTx.TxIn {
				outpoint := txIn.PreviousOutPoint
				prev, err := lookup(outpoint, inBlock, fetcher)
				if nil != err {
					globalData.log.Errorf("block: %s  input: %s:%d  previous output: %s  error: %s", block.Hash(), txId, inputIndex, outpoint, err)
					return err
				}

				address, err := addresshash.FromScript(prev.txOut.PkScript, params)
				if nil != err {
					address, _ = addresshash.NewPrimary(addresshash.NoAddress, addresshash.Primary{})
				}

				entries.spent = append(entries.spent, spentindex.Entry{
					Key: spentindex.Key{
						TxId:        outpoint.Hash,
						OutputIndex: outpoint.Index,
					},
					Value: spentindex.Value{
						SpendingTxId: txId,
						InputIndex:   uint32(inputIndex),
						BlockHeight:  height,
						Amount:       prev.txOut.Value,
						Address:      address,
					},
				})

				if nil != err {
					continue
				}

				entries.history = append(entries.history, addressindex.Entry{
					Key: addressindex.Key{
						Address:     address,
						BlockHeight: height,
						TxIndex:     uint32(txIndex),
						TxId:        txId,
						Index:       uint32(inputIndex),
						IsSpend:     true,
					},
					Amount: -prev.txOut.Value,
				})
				entries.unspent = append(entries.unspent, unspentindex.Entry{
					Key: unspentindex.Key{
						Address:     address,
						TxId:        outpoint.Hash,
						OutputIndex: outpoint.Index,
					},
					Value: unspentindex.NullValue(),
				})
			}
		}

		for outputIndex, txOut := range msgTx.TxOut {
			inBlock[wire.OutPoint{Hash: txId, Index: uint32(outputIndex)}] = prevOutput{
				txOut:  txOut,
				height: height,
			}

			address, err := addresshash.FromScript(txOut.PkScript, params)
			if nil != err {
				continue
			}

			entries.history = append(entries.history, addressindex.Entry{
				Key: addressindex.Key{
					Address:     address,
					BlockHeight: height,
					TxIndex:     uint32(txIndex),
					TxId:        txId,
					Index:       uint32(outputIndex),
					IsSpend:     false,
				},
				Amount: txOut.Value,
			})
			entries.unspent = append(entries.unspent, unspentindex.Entry{
				Key: unspentindex.Key{
					Address:     address,
					TxId:        txId,
					OutputIndex: uint32(outputIndex),
				},
				Value: unspentindex.Value{
					Amount:      txOut.Value,
					Script:      txOut.PkScript,
					BlockHeight: height,
				},
			})
		}
	}

	trx, err := begin()
	if nil != err {
		return err
	}

	if options.Spent {
		putSpent(trx, entries.spent)
	}
	if options.Address {
		putHistory(trx, entries.history)
		putUnspent(trx, entries.unspent)
	}
	if options.Timestamp {
		trx.Put(storage.Pool.TimestampIndex, blockTimestamp(block).Pack(), []byte{})
	}

	err = trx.Commit()
	if nil != err {
		return err
	}

	if nil != options.Pending {
		for _, tx := range block.Transactions() {
			options.Pending.Remove(*tx.Hash())
		}
	}

	globalData.log.Infof("connect: %s  height: %d  spent: %d  history: %d  unspent: %d", block.Hash(), height, len(entries.spent), len(entries.history), len(entries.unspent))
	return nil
}

// DisconnectBlock - remove the entries of a block at the given height
// and restore the outputs it spent as unspent
func DisconnectBlock(block *btcutil.Block, height int32, fetcher PrevOutputFetcher) error {
	params, options, err := settings()
	if nil != err {
		return err
	}
	transactions := block.Transactions()

	inBlock := make(map[wire.OutPoint]prevOutput)
	for _, tx := range transactions {
		for outputIndex, txOut := range tx.MsgTx().TxOut {
			inBlock[wire.OutPoint{Hash: *tx.Hash(), Index: uint32(outputIndex)}] = prevOutput{
				txOut:  txOut,
				height: height,
			}
		}
	}

	spentKeys := []spentindex.Key{}
	history := []addressindex.Key{}
	unspent := []unspentindex.Entry{}

	// newest first, so an output created and spent in this block
	// ends up removed
	for txIndex := len(transactions) - 1; txIndex >= 0; txIndex -= 1 {
		tx := transactions[txIndex]
		txId := *tx.Hash()
		msgTx := tx.MsgTx()

		for outputIndex, txOut := range msgTx.TxOut {
			address, err := addresshash.FromScript(txOut.PkScript, params)
			if nil != err {
				continue
			}
			history = append(history, addressindex.Key{
				Address:     address,
				BlockHeight: height,
				TxIndex:     uint32(txIndex),
				TxId:        txId,
				Index:       uint32(outputIndex),
				IsSpend:     false,
			})
			unspent = append(unspent, unspentindex.Entry{
				Key: unspentindex.Key{
					Address:     address,
					TxId:        txId,
					OutputIndex: uint32(outputIndex),
				},
				Value: unspentindex.NullValue(),
			})
		}

		if blockchain.IsCoinBaseTx(msgTx) {
			continue
		}

		for inputIndex, txIn := range msgTx.TxIn {
			outpoint := txIn.PreviousOutPoint
			spentKeys = append(spentKeys, spentindex.Key{
				TxId:        outpoint.Hash,
				OutputIndex: outpoint.Index,
			})

			prev, err := lookup(outpoint, inBlock, fetcher)
			if nil != err {
				globalData.log.Errorf("block: %s  input: %s:%d  previous output: %s  error: %s", block.Hash(), txId, inputIndex, outpoint, err)
				return err
			}
			address, err := addresshash.FromScript(prev.txOut.PkScript, params)
			if nil != err {
				continue
			}

			history = append(history, addressindex.Key{
				Address:     address,
				BlockHeight: height,
				TxIndex:     uint32(txIndex),
				TxId:        txId,
				Index:       uint32(inputIndex),
				IsSpend:     true,
			})
			unspent = append(unspent, unspentindex.Entry{
				Key: unspentindex.Key{
					Address:     address,
					TxId:        outpoint.Hash,
					OutputIndex: outpoint.Index,
				},
				Value: unspentindex.Value{
					Amount:      prev.txOut.Value,
					Script:      prev.txOut.PkScript,
					BlockHeight: prev.height,
				},
			})
		}
	}

	trx, err := begin()
	if nil != err {
		return err
	}

	if options.Spent {
		for _, key := range spentKeys {
			trx.Delete(storage.Pool.SpentIndex, key.Pack())
		}
	}
	if options.Address {
		for _, key := range history {
			trx.Delete(storage.Pool.AddressIndex, key.Pack())
		}
		putUnspent(trx, unspent)
	}
	if options.Timestamp {
		trx.Delete(storage.Pool.TimestampIndex, blockTimestamp(block).Pack())
	}

	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.log.Infof("disconnect: %s  height: %d  spent: %d  history: %d", block.Hash(), height, len(spentKeys), len(history))
	return nil
}

// internal: previous output from this block or the fetcher
func lookup(outpoint wire.OutPoint, inBlock map[wire.OutPoint]prevOutput, fetcher PrevOutputFetcher) (prevOutput, error) {
	if prev, ok := inBlock[outpoint]; ok {
		return prev, nil
	}
	txOut, height, err := fetcher.FetchPrevOutput(outpoint)
	if nil != err {
		return prevOutput{}, err
	}
	return prevOutput{
		txOut:  txOut,
		height: height,
	}, nil
}

// internal: timestamp key of a block header
func blockTimestamp(block *btcutil.Block) timestampindex.Key {
	return timestampindex.Key{
		Timestamp: uint32(block.MsgBlock().Header.Timestamp.Unix()),
		BlockHash: *block.Hash(),
	}
}
