// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tst runs method based test suites.  A suite is a struct
// embedding Suite whose public one-argument methods are its tests:
//
//	type stack struct{ tst.Suite }
//
//	func (s *stack) Pops_the_ended_toplevel(t *tst.T) { ... }
//
//	func TestStack(t *testing.T) { tst.Run(&stack{}, t) }
//
// The special methods Init(*S) and Finalize(*S) run before respectively
// after all tests; SetUp(*T) and TearDown(*T) before respectively after
// each test.
package tst

import (
	"reflect"
	"testing"
)

// Suite is embedded by test suites to be runnable by Run.
type Suite struct {
	value           reflect.Value
	rtype           reflect.Type
	setUp, tearDown *reflect.Method
}

// Embedder is implemented by embedding a Suite.
type Embedder interface {
	suite() *Suite
}

func (s *Suite) suite() *Suite { return s }

var special = map[string]bool{
	"Init": true, "Finalize": true, "SetUp": true, "TearDown": true,
}

// Run executes the tests of given suite as sub-tests of given t in the
// order go's reflection reports them.
func Run(suite Embedder, t *testing.T) {
	t.Helper()
	s := suite.suite()
	s.value, s.rtype = reflect.ValueOf(suite), reflect.TypeOf(suite)
	for i := 0; i < s.rtype.NumMethod(); i++ {
		m := s.rtype.Method(i)
		switch m.Name {
		case "SetUp":
			s.setUp = &m
		case "TearDown":
			s.tearDown = &m
		case "Init":
			m.Func.Call([]reflect.Value{s.value, reflect.ValueOf(&S{t: t})})
		case "Finalize":
			t.Cleanup(func() {
				m.Func.Call([]reflect.Value{
					s.value, reflect.ValueOf(&S{t: t})})
			})
		}
	}
	for i := 0; i < s.rtype.NumMethod(); i++ {
		m := s.rtype.Method(i)
		if m.Type.NumIn() != 2 || special[m.Name] {
			continue
		}
		t.Run(m.Name, s.subTest(m))
	}
}

func (s *Suite) subTest(m reflect.Method) func(*testing.T) {
	return func(t *testing.T) {
		st := newT(t)
		vl := reflect.ValueOf(st)
		if s.tearDown != nil {
			td := s.tearDown
			st.tearDown = func() {
				td.Func.Call([]reflect.Value{s.value, vl})
			}
		}
		if s.setUp != nil {
			s.setUp.Func.Call([]reflect.Value{s.value, vl})
		}
		m.Func.Call([]reflect.Value{s.value, vl})
		if st.tearDown != nil {
			st.tearDown()
		}
	}
}
