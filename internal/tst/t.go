// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tst

import (
	"fmt"
	"testing"
)

// T is passed to suite tests, SetUp and TearDown.  It wraps the
// testing.T instance of the sub-test executing a suite test and
// provides compact assertions.
type T struct {
	t        *testing.T
	tearDown func()

	// Not provides the negations of T's assertions.
	Not Not
}

func newT(t *testing.T) *T {
	_t := &T{t: t}
	_t.Not = Not{t: _t}
	return _t
}

// GoT returns the wrapped testing.T instance.
func (t *T) GoT() *testing.T { return t.t }

// Parallel signals that this test may run in parallel with other
// parallel flagged tests.
func (t *T) Parallel() { t.t.Parallel() }

// Log logs given arguments to the wrapped testing.T instance.
func (t *T) Log(args ...interface{}) {
	t.t.Helper()
	t.t.Log(args...)
}

// Logf logs formatted to the wrapped testing.T instance.
func (t *T) Logf(format string, args ...interface{}) {
	t.t.Helper()
	t.t.Logf(format, args...)
}

// Error flags the test as failed and continues its execution.
func (t *T) Error(args ...interface{}) {
	t.t.Helper()
	t.t.Error(args...)
}

// Errorf flags the test as failed with a formatted message and
// continues its execution.
func (t *T) Errorf(format string, args ...interface{}) {
	t.t.Helper()
	t.t.Error(fmt.Sprintf(format, args...))
}

// FailNow cancels the test after a potential TearDown was executed.
func (t *T) FailNow() {
	t.t.Helper()
	if t.tearDown != nil {
		td := t.tearDown
		t.tearDown = nil
		td()
	}
	t.t.FailNow()
}

// Fatal logs given arguments and cancels the test (see FailNow).
func (t *T) Fatal(args ...interface{}) {
	t.t.Helper()
	t.t.Log(args...)
	t.FailNow()
}

// Fatalf logs formatted and cancels the test (see FailNow).
func (t *T) Fatalf(format string, args ...interface{}) {
	t.t.Helper()
	t.t.Logf(format, args...)
	t.FailNow()
}

// FatalOn cancels the test iff given error is not nil.
func (t *T) FatalOn(err error) {
	t.t.Helper()
	if err == nil {
		return
	}
	t.Fatal(err.Error())
}

// FatalIfNot cancels the test iff given assertion is false.
func (t *T) FatalIfNot(assertion bool) {
	if assertion {
		return
	}
	t.t.Helper()
	t.FailNow()
}

// S is passed to a suite's Init and Finalize methods; it wraps the
// testing.T instance of the suite runner.
type S struct{ t *testing.T }

// GoT returns the wrapped testing.T instance.
func (s *S) GoT() *testing.T { return s.t }

// Log logs given arguments to the wrapped testing.T instance.
func (s *S) Log(args ...interface{}) {
	s.t.Helper()
	s.t.Log(args...)
}

// FatalOn cancels the suite run iff given error is not nil.
func (s *S) FatalOn(err error) {
	s.t.Helper()
	if err != nil {
		s.t.Fatal(err)
	}
}
