// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mempool - spent outputs of transactions not yet in a block
//
// The outputs are held in an ordered tree keyed by spentindex.Key,
// so all the spent outputs of one funding transaction are adjacent.
package mempool
