// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lyt

import (
	"errors"
	"fmt"
)

// ErrLayout is the general type of layout configuration errors.
var ErrLayout = errors.New("layout")

// ErrPercentRange is returned for a percentage outside [0, 100].
var ErrPercentRange = fmt.Errorf("%w: percent out of range [0,100]",
	ErrLayout)

// ErrInvalidExpr is returned for an expression kind which can't be
// assigned to the slot it was assigned to.
var ErrInvalidExpr = fmt.Errorf("%w: invalid expression", ErrLayout)

// ErrAbsoluteInExprMode is returned if an expression mode node's
// non-absolute expression is replaced by an absolute one.
var ErrAbsoluteInExprMode = fmt.Errorf(
	"%w: absolute expression replaces computed one in expression mode",
	ErrLayout)

// ErrMode is returned for an operation which is not supported by a
// node's layout mode, e.g. setting a rectangle of an expression mode
// node.
var ErrMode = fmt.Errorf("%w: layout mode", ErrLayout)

// ErrCycle is returned by Resolve for expressions whose references form
// a cycle.
var ErrCycle = fmt.Errorf("%w: reference cycle", ErrLayout)

// ErrUnrelated is returned by Resolve for a referenced node which is
// neither a sibling nor the parent of the referencing node.
var ErrUnrelated = fmt.Errorf("%w: unrelated reference", ErrLayout)

// ErrUnknownNode is returned for a node id which is not or no longer
// in a tree.
var ErrUnknownNode = fmt.Errorf("%w: unknown node", ErrLayout)

// ErrAttached is returned if a node which already has a parent is
// appended to an other node.
var ErrAttached = fmt.Errorf("%w: node already attached", ErrLayout)
