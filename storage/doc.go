// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk index store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. address      = address type (1 byte) ++ address hash (20 or 32 bytes)
// 4. txId         = transaction hash (32 bytes)
// 5. *others*     = see the codec package of each pool
//
// Spent outputs:
//
//   p ++ txId ++ output index                 - spentindex key
//                                               data: spentindex value
//
// Address history:
//
//   a ++ address ++ height ++ tx index ++ txId ++ index ++ is spend
//                                             - addressindex key
//                                               data: amount
//
// Address unspent outputs:
//
//   u ++ address ++ txId ++ output index      - unspentindex key
//                                               data: unspentindex value
//
// Block timestamps:
//
//   s ++ timestamp ++ block hash              - timestampindex key
//                                               data: empty
//
// Testing:
//   Z ++ key                                  - testing data
//
// Writes are collected in a batch by a Transaction and committed
// atomically. Reads through the transaction see uncommitted writes
// from a cache; cursors only see committed data.
package storage
