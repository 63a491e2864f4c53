// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package indexdb - typed reads and writes of the auxiliary indices
//
// Every write call is a single storage transaction, so either all of
// its entries are stored or none are.
//
// ConnectBlock and DisconnectBlock derive the entries for all enabled
// indices from a block; the remaining writes are for callers that
// build their own entries.
package indexdb
