// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lyt provides the means to layout nodes in a given area.
// Nodes live in a Tree which owns them; a node refers to its parent and
// its children by NodeID only.  A node is either laid out by
// expressions or by an absolute rectangle.  Expressions describe how a
// position or a dimension is calculated, e.g.
//
//	+-----------------------------------------+
//	| a: Width(Abs(20))  | b: X(Right(a))     |
//	|                    |    Width(Fill(0))  |
//	|                    |                    |
//	+-----------------------------------------+
//
// is realized by
//
//	tree := lyt.NewTree()
//	root, a, b := tree.New(), tree.New(), tree.New()
//	tree.Append(root.ID(), a.ID())
//	tree.Append(root.ID(), b.ID())
//	a.SetWidth(lyt.Abs(20))
//	b.SetX(lyt.Right(a.ID()))
//	b.SetWidth(lyt.Fill(0))
//	err := lyt.Resolve(tree, root.ID(), lyt.Size{Width: 80, Height: 25})
//
// after which b.Frame().Width is 60.  Resolve evaluates siblings in the
// order their references demand; a reference cycle between siblings
// fails the resolution with ErrCycle.  Resolve is idempotent: resolving
// an unchanged tree again yields the same frames.  Function expressions
// are evaluated on every resolution, i.e. their results are never
// cached.
package lyt
