// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"encoding/binary"
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/chainindex/fault"
	"github.com/bitmark-inc/chainindex/storage"
)

// test database file
const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test.leveldb"
)

// Test main entrypoint
func TestMain(m *testing.M) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	result := m.Run()

	logger.Finalise()
	removeFiles()
	os.Exit(result)
}

// remove all files created by test
func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// configure for testing
func setup(t *testing.T) {
	_ = os.RemoveAll(databaseFileName)
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown() {
	storage.Finalise()
	_ = os.RemoveAll(databaseFileName)
}

func TestInitialiseTwice(t *testing.T) {
	setup(t)
	defer teardown()

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	assert.Equal(t, fault.ErrAlreadyInitialised, err)
}

func TestReopenReadOnly(t *testing.T) {
	setup(t)
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	trx.Put(storage.Pool.TestData, []byte("key"), []byte("data"))
	assert.Nil(t, trx.Commit())
	storage.Finalise()

	err = storage.Initialise(databaseFileName, storage.ReadOnly)
	if nil != err {
		t.Fatalf("read only initialise error: %s", err)
	}
	defer teardown()

	assert.Equal(t, []byte("data"), storage.Pool.TestData.Get([]byte("key")))
}

func TestIncompatibleVersion(t *testing.T) {
	_ = os.RemoveAll(databaseFileName)
	defer teardown()

	db, err := leveldb.OpenFile(databaseFileName, nil)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	version := make([]byte, 4)
	binary.BigEndian.PutUint32(version, 0x7fffffff)
	_ = db.Put([]byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}, version, nil)
	_ = db.Close()

	err = storage.Initialise(databaseFileName, storage.ReadWrite)
	assert.Equal(t, fault.ErrIncompatibleDBVersion, err)

	// failed initialise must leave nothing open
	assert.Nil(t, storage.Pool.TestData)
}

func TestPoolPrefixes(t *testing.T) {
	setup(t)
	defer teardown()

	tests := []struct {
		pool   *storage.PoolHandle
		name   string
		prefix byte
	}{
		{storage.Pool.SpentIndex, "SpentIndex", 'p'},
		{storage.Pool.AddressIndex, "AddressIndex", 'a'},
		{storage.Pool.AddressUnspentIndex, "AddressUnspentIndex", 'u'},
		{storage.Pool.TimestampIndex, "TimestampIndex", 's'},
		{storage.Pool.TestData, "TestData", 'Z'},
	}
	for _, item := range tests {
		if !assert.NotNil(t, item.pool, item.name) {
			continue
		}
		assert.Equal(t, item.name, item.pool.Name())
		assert.Equal(t, item.prefix, item.pool.Prefix(), item.name)
	}
}

func TestPoolByTag(t *testing.T) {
	_, err := storage.PoolByTag("p")
	assert.Equal(t, fault.ErrNotInitialised, err, "before initialise")

	setup(t)
	defer teardown()

	p, err := storage.PoolByTag("u")
	assert.Nil(t, err)
	assert.Equal(t, storage.Pool.AddressUnspentIndex, p)

	for _, tag := range []string{"", "x", "pu"} {
		_, err := storage.PoolByTag(tag)
		assert.Equal(t, fault.ErrUnknownPool, err, "tag: %q", tag)
	}
}

func TestTransactionVisibility(t *testing.T) {
	setup(t)
	defer teardown()

	pool := storage.Pool.TestData

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}

	_, err = storage.NewDBTransaction()
	assert.Equal(t, fault.ErrTransactionAlreadyInUse, err, "second transaction")

	trx.Put(pool, []byte("key-one"), []byte("data-one"))
	trx.Put(pool, []byte("key-empty"), nil)

	// pending writes are visible through the pool
	assert.Equal(t, []byte("data-one"), pool.Get([]byte("key-one")))
	assert.True(t, pool.Has([]byte("key-empty")))
	assert.Equal(t, []byte{}, pool.Get([]byte("key-empty")))

	// but not to cursors
	elements, err := pool.NewFetchCursor().Fetch(10)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(elements), "cursor saw uncommitted data")

	assert.Nil(t, trx.Commit())

	elements, err = pool.NewFetchCursor().Fetch(10)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(elements))

	// delete is visible before commit
	trx, err = storage.NewDBTransaction()
	assert.Nil(t, err)
	trx.Delete(pool, []byte("key-one"))
	assert.Nil(t, pool.Get([]byte("key-one")))
	assert.False(t, pool.Has([]byte("key-one")))
	trx.Abort()

	// abort restores the committed view
	assert.Equal(t, []byte("data-one"), pool.Get([]byte("key-one")))
}

func TestCursorPaging(t *testing.T) {
	setup(t)
	defer teardown()

	pool := storage.Pool.TestData

	trx, _ := storage.NewDBTransaction()
	for i := 0; i < 25; i += 1 {
		trx.Put(pool, []byte(fmt.Sprintf("key-%02d", i)), []byte(fmt.Sprintf("data-%02d", i)))
	}
	// keys in other pools must not appear
	trx.Put(storage.Pool.TimestampIndex, []byte("key-99"), []byte{})
	assert.Nil(t, trx.Commit())

	cursor := pool.NewFetchCursor()
	seen := 0
	for {
		elements, err := cursor.Fetch(10)
		assert.Nil(t, err)
		if 0 == len(elements) {
			break
		}
		for _, e := range elements {
			assert.Equal(t, fmt.Sprintf("key-%02d", seen), string(e.Key))
			assert.Equal(t, fmt.Sprintf("data-%02d", seen), string(e.Value))
			seen += 1
		}
	}
	assert.Equal(t, 25, seen)

	_, err := cursor.Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err)

	var nilCursor *storage.FetchCursor
	_, err = nilCursor.Fetch(1)
	assert.Equal(t, fault.ErrInvalidCursor, err)

	last, found := pool.LastElement()
	assert.True(t, found)
	assert.Equal(t, "key-24", string(last.Key))
}

func TestRangeAndPrefixCursors(t *testing.T) {
	setup(t)
	defer teardown()

	pool := storage.Pool.TestData

	trx, _ := storage.NewDBTransaction()
	for _, k := range []string{"a1", "a2", "a3", "b1", "b2", "c1"} {
		trx.Put(pool, []byte(k), []byte(k))
	}
	assert.Nil(t, trx.Commit())

	collect := func(cursor *storage.FetchCursor) []string {
		keys := []string{}
		err := cursor.Map(func(key []byte, value []byte) error {
			keys = append(keys, string(key))
			return nil
		})
		assert.Nil(t, err)
		return keys
	}

	assert.Equal(t, []string{"a2", "a3", "b1"}, collect(pool.NewRangeCursor([]byte("a2"), []byte("b2"))))
	assert.Equal(t, []string{"b2", "c1"}, collect(pool.NewRangeCursor([]byte("b2"), nil)))
	assert.Equal(t, []string{"b1", "b2"}, collect(pool.NewPrefixCursor([]byte("b"))))
	assert.Equal(t, []string{"c1"}, collect(pool.NewFetchCursor().Seek([]byte("c"))))

	// Map stops on error
	stop := fault.ErrInvalidCount
	n := 0
	err := pool.NewFetchCursor().Map(func(key []byte, value []byte) error {
		n += 1
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, n)
}
