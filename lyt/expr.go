// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lyt

import (
	"fmt"
	"math"
)

// Kind classifies expressions.
type Kind uint8

const (
	// KindAbsolute classifies a fixed number of cells.
	KindAbsolute Kind = iota + 1
	// KindPercent classifies a percentage of the available space.
	KindPercent
	// KindFill classifies the space remaining after a node's position.
	KindFill
	// KindCenter classifies a position centering a node.
	KindCenter
	// KindAnchorEnd classifies a position aligning a node to the far
	// edge.
	KindAnchorEnd
	// KindRelative classifies an edge of an other node.
	KindRelative
	// KindCombine classifies the sum or difference of two expressions.
	KindCombine
	// KindFunction classifies a callback evaluated at each resolution.
	KindFunction
)

var kindNames = map[Kind]string{
	KindAbsolute:  "Absolute",
	KindPercent:   "Percent",
	KindFill:      "Fill",
	KindCenter:    "Center",
	KindAnchorEnd: "AnchorEnd",
	KindRelative:  "Relative",
	KindCombine:   "Combine",
	KindFunction:  "Function",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Expr describes how a position or a dimension of a node is calculated.
// The set of expressions is closed: Absolute, Percent, Filling,
// Centered, Anchored, Relative, Combined and *Function.  Expressions
// are immutable; two expressions of the same kind with the same
// parameters are equal (see Equal) except for functions which are only
// equal to themselves.
type Expr interface {
	Kind() Kind
	String() string
	expr()
}

// Absolute is a fixed number of cells.
type Absolute struct{ N int }

// Abs returns an absolute expression of n cells.
func Abs(n int) Absolute { return Absolute{N: n} }

func (e Absolute) Kind() Kind     { return KindAbsolute }
func (e Absolute) String() string { return fmt.Sprintf("Absolute(%d)", e.N) }
func (Absolute) expr()            {}

// Percent is a percentage of the available space.  Is Remainder set the
// percentage is applied to the space remaining after the node's
// position.
type Percent struct {
	factor    float64
	remainder bool
}

// NewPercent returns a percentage expression for given factor which
// must be in [0, 100]; otherwise ErrPercentRange is returned.
func NewPercent(factor float64, remainder bool) (Percent, error) {
	if math.IsNaN(factor) || factor < 0 || factor > 100 {
		return Percent{}, fmt.Errorf("%w: %v", ErrPercentRange, factor)
	}
	return Percent{factor: factor, remainder: remainder}, nil
}

// MustPercent is NewPercent panicking on an invalid factor.
func MustPercent(factor float64, remainder bool) Percent {
	p, err := NewPercent(factor, remainder)
	if err != nil {
		panic(err)
	}
	return p
}

// Factor returns the percentage in [0, 100].
func (e Percent) Factor() float64 { return e.factor }

// Remainder returns true if the percentage applies to the space after
// the node's position.
func (e Percent) Remainder() bool { return e.remainder }

func (e Percent) Kind() Kind { return KindPercent }
func (e Percent) String() string {
	return fmt.Sprintf("Percent(%v,%v)", e.factor, e.remainder)
}
func (Percent) expr() {}

// Filling is the space remaining after a node's position minus a
// margin.  It is a dimension only.
type Filling struct{ Margin int }

// Fill returns a dimension consuming the remaining space minus given
// margin.
func Fill(margin int) Filling { return Filling{Margin: margin} }

func (e Filling) Kind() Kind     { return KindFill }
func (e Filling) String() string { return fmt.Sprintf("Fill(%d)", e.Margin) }
func (Filling) expr()            {}

// Centered positions a node in the middle of the available space.  It
// is a position only.
type Centered struct{}

// Center returns a position centering a node.
func Center() Centered { return Centered{} }

func (e Centered) Kind() Kind     { return KindCenter }
func (e Centered) String() string { return "Center" }
func (Centered) expr()            {}

// Anchored positions a node's far edge at the far edge of the available
// space minus a margin.  It is a position only.
type Anchored struct{ Margin int }

// AnchorEnd returns a position aligning a node to the far edge.
func AnchorEnd(margin int) Anchored { return Anchored{Margin: margin} }

func (e Anchored) Kind() Kind { return KindAnchorEnd }
func (e Anchored) String() string {
	return fmt.Sprintf("AnchorEnd(%d)", e.Margin)
}
func (Anchored) expr() {}

// Edge identifies a resolved edge or extent of a node.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom
	EdgeWidth
	EdgeHeight
)

var edgeNames = [...]string{"Left", "Top", "Right", "Bottom", "Width",
	"Height"}

func (e Edge) String() string {
	if int(e) < len(edgeNames) {
		return edgeNames[e]
	}
	return fmt.Sprintf("Edge(%d)", e)
}

// Relative evaluates to an edge of an other node, i.e. a sibling or the
// parent of the node the expression is assigned to.
type Relative struct {
	Target NodeID
	Edge   Edge
}

// Rel returns an expression evaluating to given edge of given target.
func Rel(target NodeID, e Edge) Relative {
	return Relative{Target: target, Edge: e}
}

// Left is the x-coordinate of given node.
func Left(id NodeID) Relative { return Rel(id, EdgeLeft) }

// Top is the y-coordinate of given node.
func Top(id NodeID) Relative { return Rel(id, EdgeTop) }

// Right is the x-coordinate plus the width of given node.
func Right(id NodeID) Relative { return Rel(id, EdgeRight) }

// Bottom is the y-coordinate plus the height of given node.
func Bottom(id NodeID) Relative { return Rel(id, EdgeBottom) }

// Width is the width of given node.
func Width(id NodeID) Relative { return Rel(id, EdgeWidth) }

// Height is the height of given node.
func Height(id NodeID) Relative { return Rel(id, EdgeHeight) }

func (e Relative) Kind() Kind { return KindRelative }
func (e Relative) String() string {
	return fmt.Sprintf("%s(#%d)", e.Edge, e.Target)
}
func (Relative) expr() {}

// Op is the operator of a combined expression.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
)

func (o Op) String() string {
	if o == OpSub {
		return "-"
	}
	return "+"
}

// Combined is the sum or difference of two expressions.  Its kind is
// KindCombine regardless of its operands' kinds.
type Combined struct {
	Lhs Expr
	Op  Op
	Rhs Expr
}

// Add returns the sum of given expressions.  A nil operand counts as
// Abs(0).
func Add(lhs, rhs Expr) Combined { return combine(lhs, OpAdd, rhs) }

// Sub returns the difference of given expressions.  A nil operand
// counts as Abs(0).
func Sub(lhs, rhs Expr) Combined { return combine(lhs, OpSub, rhs) }

func combine(lhs Expr, op Op, rhs Expr) Combined {
	if lhs == nil {
		lhs = Abs(0)
	}
	if rhs == nil {
		rhs = Abs(0)
	}
	return Combined{Lhs: lhs, Op: op, Rhs: rhs}
}

func (e Combined) Kind() Kind { return KindCombine }
func (e Combined) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Lhs, e.Op, e.Rhs)
}
func (Combined) expr() {}

// Function is evaluated at each resolution, e.g. to measure content
// whose size changes.
type Function struct{ fn func() int }

// Func returns a function expression; a nil function evaluates to 0.
func Func(fn func() int) *Function { return &Function{fn: fn} }

func (e *Function) Kind() Kind     { return KindFunction }
func (e *Function) String() string { return "Function" }
func (*Function) expr()            {}

func (e *Function) eval() int {
	if e == nil || e.fn == nil {
		return 0
	}
	return e.fn()
}

// Equal returns true iff given expressions are of the same kind with
// the same parameters.  A function is only equal to itself.
func Equal(a, b Expr) bool { return a == b }

// slot discriminates positions from dimensions for validation.
type slot uint8

const (
	posSlot slot = iota
	dimSlot
)

func (s slot) String() string {
	if s == posSlot {
		return "position"
	}
	return "dimension"
}

// validate checks recursively that given expression may be assigned
// to given slot.
func validate(e Expr, s slot) error {
	switch e := e.(type) {
	case nil:
		return fmt.Errorf("%w: nil %s", ErrInvalidExpr, s)
	case Filling:
		if s == posSlot {
			return fmt.Errorf("%w: %s as %s", ErrInvalidExpr, e.Kind(), s)
		}
	case Centered, Anchored:
		if s == dimSlot {
			return fmt.Errorf("%w: %s as %s", ErrInvalidExpr, e.Kind(), s)
		}
	case Combined:
		if err := validate(e.Lhs, s); err != nil {
			return err
		}
		return validate(e.Rhs, s)
	}
	return nil
}

// ValidateSplitOffset fails with ErrInvalidExpr naming the offending
// kind unless given expression is Absolute or a Percent of the whole
// available space.  It serves containers managing a single numeric
// offset.
func ValidateSplitOffset(e Expr) error {
	switch e := e.(type) {
	case nil:
		return fmt.Errorf("%w: split offset: nil", ErrInvalidExpr)
	case Absolute:
		return nil
	case Percent:
		if !e.remainder {
			return nil
		}
		return fmt.Errorf("%w: split offset: remainder %s",
			ErrInvalidExpr, e.Kind())
	}
	return fmt.Errorf(
		"%w: split offset must be Absolute or Percent; got %s",
		ErrInvalidExpr, e.Kind())
}
