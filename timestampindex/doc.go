// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package timestampindex - find blocks by their header timestamp
//
// Key:
//
//   Field       Type      Size
//   timestamp   uint32    4 bytes  (big endian)
//   block hash  hash      32 bytes
//   -----
//   Total: 36 bytes
//
// There is no value, the presence of the key is the record.
//
// The scan key is the 4 byte timestamp alone.
package timestampindex
