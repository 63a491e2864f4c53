// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/chainindex/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	SpentIndex          *PoolHandle `prefix:"p"`
	AddressIndex        *PoolHandle `prefix:"a"`
	AddressUnspentIndex *PoolHandle `prefix:"u"`
	TimestampIndex      *PoolHandle `prefix:"s"`
	TestData            *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentIndexDBVersion = 0x100
)

// holds the database handle
var poolData struct {
	sync.RWMutex
	log    *logger.L
	db     *leveldb.DB
	access Access
	trx    Transaction
	cache  Cache
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string, readOnly bool) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		return fault.ErrAlreadyInitialised
	}

	poolData.log = logger.New("storage")

	ok := false
	defer func() {
		if !ok {
			dbClose()
		}
	}()

	db, version, err := getDB(database, readOnly)
	if nil != err {
		return err
	}
	poolData.db = db

	// ensure no database downgrade
	if version > currentIndexDBVersion {
		poolData.log.Criticalf("index database version: %d > current version: %d", version, currentIndexDBVersion)
		return fault.ErrIncompatibleDBVersion
	}

	// prevent readOnly from modifying the database
	if readOnly && version != currentIndexDBVersion {
		poolData.log.Criticalf("index database version: %d  current: %d", version, currentIndexDBVersion)
		return fault.ErrIncompatibleDBVersion
	}

	if 0 == version {
		// database was empty so tag as current version
		err = putVersion(poolData.db, currentIndexDBVersion)
		if nil != err {
			return err
		}
	} else if version < currentIndexDBVersion {
		poolData.log.Criticalf("index database version: %d < current version: %d", version, currentIndexDBVersion)
		return fault.ErrIncompatibleDBVersion
	}

	poolData.cache = newCache()
	poolData.access = newDA(poolData.db, new(leveldb.Batch), poolData.cache)
	poolData.trx = newTransaction(poolData.access)

	err = setupPools(poolData.access)
	if nil != err {
		return err
	}

	poolData.log.Infof("opened: %s  version: 0x%x  read only: %t", database, currentIndexDBVersion, readOnly)

	ok = true // prevent db close
	return nil
}

// fill in the Pool structure from its tags
func setupPools(access Access) error {

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			name:       fieldInfo.Name,
			prefix:     prefix,
			limit:      limit,
			dataAccess: access,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// close and forget the pool handles
func dbClose() {
	if nil != poolData.db {
		if err := poolData.db.Close(); nil != err && nil != poolData.log {
			poolData.log.Errorf("close error: %s", err)
		}
		poolData.db = nil
	}
	poolData.access = nil
	poolData.trx = nil
	poolData.cache = nil
	Pool = pools{}
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	dbClose()
	poolData.Unlock()
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// NewDBTransaction - start a batch of writes
//
// only one transaction can be open at a time
func NewDBTransaction() (Transaction, error) {
	poolData.RLock()
	trx := poolData.trx
	poolData.RUnlock()

	if nil == trx {
		return nil, fault.ErrNotInitialised
	}

	err := trx.Begin()
	if nil != err {
		return nil, err
	}
	return trx, nil
}
