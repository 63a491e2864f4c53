// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/chainindex/fault"
	"github.com/bitmark-inc/chainindex/storage/mocks"
)

func setupTestTransaction(t *testing.T) (Transaction, *PoolHandle, *mocks.MockAccess, *gomock.Controller) {
	ctl := gomock.NewController(t)
	mock := mocks.NewMockAccess(ctl)

	pool := &PoolHandle{
		name:       "Test",
		prefix:     'T',
		limit:      []byte{'U'},
		dataAccess: mock,
	}
	return newTransaction(mock), pool, mock, ctl
}

func TestTransactionBegin(t *testing.T) {
	trx, _, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	gomock.InOrder(
		mock.EXPECT().Begin().Return(nil).Times(1),
		mock.EXPECT().Begin().Return(fault.ErrTransactionAlreadyInUse).Times(1),
	)

	err := trx.Begin()
	assert.Nil(t, err, "first time Begin should not return any error")

	err = trx.Begin()
	assert.Equal(t, fault.ErrTransactionAlreadyInUse, err, "second time Begin should return error")
}

func TestTransactionPrefixesKeys(t *testing.T) {
	trx, pool, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	mock.EXPECT().Put([]byte("Tkey"), []byte("value")).Times(1)
	mock.EXPECT().Delete([]byte("Tgone")).Times(1)
	mock.EXPECT().Get([]byte("Tkey")).Return([]byte("value"), nil).Times(1)
	mock.EXPECT().Has([]byte("Tkey")).Return(true, nil).Times(1)

	trx.Put(pool, []byte("key"), []byte("value"))
	trx.Delete(pool, []byte("gone"))
	assert.Equal(t, []byte("value"), trx.Get(pool, []byte("key")))
	assert.True(t, trx.Has(pool, []byte("key")))
}

func TestTransactionCommitAndAbort(t *testing.T) {
	trx, _, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	mock.EXPECT().Commit().Return(nil).Times(1)
	mock.EXPECT().Abort().Times(1)
	mock.EXPECT().InUse().Return(false).Times(1)

	assert.Nil(t, trx.Commit())
	trx.Abort()
	assert.False(t, trx.InUse())
}
