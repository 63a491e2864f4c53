// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/chainindex/fault"
)

// each codec error must belong to exactly one class
func TestErrorClasses(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		length   bool
		notFound bool
		process  bool
		record   bool
	}{
		{fault.ErrAlreadyInitialised, true, false, false, false, false, false},
		{fault.ErrMalformedDiscriminant, false, true, false, false, false, false},
		{fault.ErrInvalidAmount, false, true, false, false, false, false},
		{fault.ErrUnsupportedScript, false, true, false, false, false, false},
		{fault.ErrTruncatedInput, false, false, true, false, false, false},
		{fault.ErrHashLength, false, false, true, false, false, false},
		{fault.ErrNotInitialised, false, false, false, true, false, false},
		{fault.ErrUnknownPool, false, false, false, true, false, false},
		{fault.ErrTransactionAlreadyInUse, false, false, false, false, true, false},
		{fault.ErrIncompatibleDBVersion, false, false, false, false, true, false},
		{fault.ErrTrailingData, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrLength(err) != e.length {
			t.Errorf("%d: expected 'length' == %v for err = %v", i, e.length, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrRecord(err) != e.record {
			t.Errorf("%d: expected 'record' == %v for err = %v", i, e.record, err)
		}
	}
}

// errors are single instances so identity comparison must work
func TestErrorIdentity(t *testing.T) {
	var err error = fault.ErrTruncatedInput
	if err != fault.ErrTruncatedInput {
		t.Errorf("identity comparison failed for: %v", err)
	}
	if err.Error() != "truncated input" {
		t.Errorf("message: %q  expected: %q", err.Error(), "truncated input")
	}
}
