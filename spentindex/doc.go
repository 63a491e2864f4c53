// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package spentindex - map a spent output to the input that spent it
//
// Keys are only ever fetched exactly, never scanned, so the integers
// are little endian.
//
// Key:
//
//   Field         Type      Size
//   txId          hash      32 bytes
//   output index  uint32    4 bytes  (little endian)
//   -----
//   Total: 36 bytes
//
// Value:
//
//   Field           Type      Size
//   spending txId   hash      32 bytes
//   input index     uint32    4 bytes  (little endian)
//   block height    int32     4 bytes  (little endian)
//   amount          int64     8 bytes  (little endian)
//   address type    int32     4 bytes  (little endian, 0..255)
//   address hash    bytes     20 or 32 bytes (32 only for type 4)
//   -----
//   Total: 72 or 84 bytes
//
// A value with an all zero spending txId is the null value.
//
// Compare gives an ordering for in-memory structures; it has no
// relationship with the order of packed keys in the database.
package spentindex
