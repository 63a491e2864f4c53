// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised      = ExistsError("already initialised")
	ErrCannotDecodeAddress     = InvalidError("cannot decode address")
	ErrConfigurationNotTable   = InvalidError("configuration must return a table")
	ErrHashLength              = LengthError("hash length is invalid")
	ErrIncompatibleDBVersion   = ProcessError("incompatible database version")
	ErrInvalidAmount           = InvalidError("invalid amount")
	ErrInvalidCount            = InvalidError("invalid count")
	ErrInvalidCursor           = InvalidError("invalid cursor")
	ErrInvalidHeightRange      = InvalidError("invalid height range")
	ErrInvalidScriptLength     = LengthError("invalid script length")
	ErrInvalidStructPointer    = InvalidError("invalid struct pointer")
	ErrInvalidTimestampRange   = InvalidError("invalid timestamp range")
	ErrMalformedDiscriminant   = InvalidError("malformed address type discriminant")
	ErrMismatchedAddressType   = InvalidError("address type does not match hash")
	ErrNotInitialised          = NotFoundError("not initialised")
	ErrTransactionAlreadyInUse = ProcessError("transaction already in use")
	ErrTrailingData            = RecordError("trailing data after record")
	ErrTruncatedInput          = LengthError("truncated input")
	ErrUnknownChain            = NotFoundError("unknown chain")
	ErrUnknownPool             = NotFoundError("unknown pool")
	ErrUnsupportedScript       = InvalidError("unsupported script")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
