// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package addresshash - the address part common to all "by address"
// index keys
//
// An address is a one byte type discriminant followed by a hash whose
// width is decided by the type alone:
//
//   type           hash
//   0,1,2,3,5..255 20 bytes (primary: hash160)
//   4              32 bytes (alternate: witness script sha256)
//
//   Field   Type    Size
//   type    uint8   1 byte
//   hash    bytes   20 or 32 bytes
//   -----
//   Total: 21 or 33 bytes
//
// Types other than 4 that are not in the known set still decode as the
// 20 byte form so that records of future types can be stepped over.
package addresshash
