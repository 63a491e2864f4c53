// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package addressindex - history of every transaction input and output
// that touched an address
//
// Keys sort by address, then block height, then position of the
// transaction in its block, so the height and tx index are big endian.
// The index is only carried to identify the record and stays little
// endian.
//
// Key:
//
//   Field         Type      Size
//   address type  uint8     1 byte
//   address hash  bytes     20 or 32 bytes (32 only for type 4)
//   block height  int32     4 bytes  (big endian)
//   tx index      uint32    4 bytes  (big endian)
//   txId          hash      32 bytes
//   index         uint32    4 bytes  (little endian)
//   is spend      bool      1 byte   (0x00 or 0x01)
//   -----
//   Total: 66 or 78 bytes
//
// Value:
//
//   Field         Type      Size
//   amount        int64     8 bytes  (little endian)
//
// Scan keys are leading parts of the key and are never stored:
//
//   ScanKey        address type ++ address hash                  21 or 33 bytes
//   HeightScanKey  address type ++ address hash ++ block height  25 or 37 bytes
//
// A scan key is a byte prefix of every key with the same leading
// fields, so [prefix, Limit(prefix)) selects exactly those keys.
//
// Heights are signed; a negative height packs above every positive
// height, HeightRange rejects them.
package addressindex
