// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package unspentindex - the currently unspent outputs of an address
//
// Key:
//
//   Field         Type      Size
//   address type  uint8     1 byte
//   address hash  bytes     20 or 32 bytes (32 only for type 4)
//   txId          hash      32 bytes
//   output index  uint32    4 bytes  (little endian)
//   -----
//   Total: 57 or 69 bytes
//
// Value:
//
//   Field          Type      Size
//   amount         int64     8 bytes  (little endian)
//   script length  varint    1, 3, 5 or 9 bytes (CompactSize)
//   script         bytes     script length bytes
//   block height   int32     4 bytes  (little endian)
//
// An amount of -1 is the null value, a write of a null value removes
// the key. Any other negative amount is invalid.
package unspentindex
