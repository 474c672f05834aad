// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tst

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// assertErr is the format-string for assertion errors.
const assertErr = "assert %s:\n%v"

// True fails the test and returns false iff given value is not true.
func (t *T) True(value bool) bool {
	t.t.Helper()
	if !value {
		t.Errorf(assertErr, "true", "expected given value to be true")
		return false
	}
	return true
}

// False fails the test and returns false iff given value is not false.
func (t *T) False(value bool) bool {
	t.t.Helper()
	if value {
		t.Errorf(assertErr, "false", "expected given value to be false")
		return false
	}
	return true
}

// Eq fails the test and returns false iff given values are not equal.
// Pointers are equal iff they are identical; other values are compared
// by their string representation, i.e. fmt.Stringer implementations
// compare through their String method.  A failing comparison reports a
// go-cmp diff.
func (t *T) Eq(a, b interface{}) bool {
	t.t.Helper()
	if reflect.ValueOf(a).Kind() == reflect.Ptr ||
		reflect.ValueOf(b).Kind() == reflect.Ptr {
		if a != b {
			t.Errorf(assertErr, "equal: pointer",
				fmt.Sprintf("%p != %p", a, b))
			return false
		}
		return true
	}
	if d := diff(a, b); d != "" {
		t.Errorf(assertErr, "equal", d)
		return false
	}
	return true
}

func diff(a, b interface{}) string {
	_a, _b := toString(a), toString(b)
	if _a == _b {
		return ""
	}
	return cmp.Diff(_a, _b)
}

func toString(value interface{}) string {
	switch value := value.(type) {
	case string:
		return value
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

// Contains fails the test and returns false iff given value's string
// representation doesn't contain given sub-string.
func (t *T) Contains(value interface{}, sub string) bool {
	t.t.Helper()
	if str := toString(value); !strings.Contains(str, sub) {
		t.Errorf(assertErr, "contains",
			fmt.Sprintf("%q doesn't contain %q", str, sub))
		return false
	}
	return true
}

// Err fails the test and returns false iff given value is not an error.
func (t *T) Err(err interface{}) bool {
	t.t.Helper()
	if e, ok := err.(error); !ok || e == nil {
		t.Errorf(assertErr, "error", "given value is not an error")
		return false
	}
	return true
}

// ErrIs fails the test and returns false iff given err doesn't wrap
// given target.
func (t *T) ErrIs(err interface{}, target error) bool {
	t.t.Helper()
	e, ok := err.(error)
	if !ok || !errors.Is(e, target) {
		t.Errorf(assertErr, "error is", fmt.Sprintf(
			"given error doesn't wrap target: %v\n%v", err, target))
		return false
	}
	return true
}

// Panics fails the test and returns false iff given function doesn't
// panic.
func (t *T) Panics(f func()) (hasPanicked bool) {
	t.t.Helper()
	defer func() {
		t.t.Helper()
		if r := recover(); r == nil {
			t.Errorf(assertErr, "panics", "given function doesn't panic")
			hasPanicked = false
			return
		}
		hasPanicked = true
	}()
	f()
	return true
}

// Not implements negations of T's assertions.
type Not struct{ t *T }

// True passes iff given value is false.
func (n Not) True(value bool) bool {
	n.t.t.Helper()
	if value {
		n.t.Errorf(assertErr, "not-true", "expected given value be false")
		return false
	}
	return true
}

// Eq passes iff given values are not equal in the sense of T.Eq.
func (n Not) Eq(a, b interface{}) bool {
	n.t.t.Helper()
	var equal bool
	if reflect.ValueOf(a).Kind() == reflect.Ptr ||
		reflect.ValueOf(b).Kind() == reflect.Ptr {
		equal = a == b
	} else {
		equal = diff(a, b) == ""
	}
	if equal {
		n.t.Errorf(assertErr, "not-equal", fmt.Sprintf("%v == %v", a, b))
		return false
	}
	return true
}

// Nil passes iff given error is nil.
func (n Not) Nil(err error) bool {
	n.t.t.Helper()
	if err == nil {
		n.t.Errorf(assertErr, "not-nil", "expected an error")
		return false
	}
	return true
}
