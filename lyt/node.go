// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lyt

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// NodeID identifies a node in its tree.  Ids are never reused, i.e. an
// id of a deleted node stays unknown.
type NodeID int

// NoNode is the parent of a root node.
const NoNode NodeID = -1

// Rect is a rectangle of cells.
type Rect struct{ X, Y, Width, Height int }

// Right returns the x-coordinate after the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y-coordinate after the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains returns true if given point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Size returns the rectangle's extent.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X, r.Y, r.Width, r.Height)
}

// Size is an extent of cells.
type Size struct{ Width, Height int }

// Mode is the layout mode of a node.
type Mode uint8

const (
	// ModeExpr nodes are laid out by their position and dimension
	// expressions.
	ModeExpr Mode = iota
	// ModeAbsolute nodes are laid out by their rectangle.
	ModeAbsolute
)

// Tree owns nodes.  The zero value is not ready to use, see NewTree.
type Tree struct {
	nn    []*Node
	dirty bool
}

// NewTree returns a tree without nodes.
func NewTree() *Tree { return &Tree{} }

// New adds a detached expression mode node whose position and
// dimension expressions are Abs(0).
func (t *Tree) New() *Node {
	n := &Node{
		id: NodeID(len(t.nn)), tree: t, parent: NoNode, mode: ModeExpr,
		x: Abs(0), y: Abs(0), w: Abs(0), h: Abs(0),
	}
	t.nn = append(t.nn, n)
	t.dirty = true
	return n
}

// NewAbsolute adds a detached absolute mode node with given rectangle.
func (t *Tree) NewAbsolute(r Rect) *Node {
	n := t.New()
	n.mode, n.rect = ModeAbsolute, r
	return n
}

// Node returns the node with given id or nil if there is no such node.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nn) {
		return nil
	}
	return t.nn[id]
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	l := 0
	for _, n := range t.nn {
		if n != nil {
			l++
		}
	}
	return l
}

// Append adds given child as last child to given parent.  Append fails
// if one of the nodes is unknown, if the child is attached already or
// if the child is an ancestor of the parent.
func (t *Tree) Append(parent, child NodeID) error {
	p, c := t.Node(parent), t.Node(child)
	if p == nil || c == nil {
		return fmt.Errorf("%w: append #%d to #%d",
			ErrUnknownNode, child, parent)
	}
	if c.parent != NoNode {
		return fmt.Errorf("%w: #%d", ErrAttached, child)
	}
	for a := p; a != nil; a = t.Node(a.parent) {
		if a.id == child {
			return fmt.Errorf("%w: #%d is ancestor of #%d",
				ErrCycle, child, parent)
		}
	}
	c.parent = parent
	p.children = append(p.children, child)
	t.dirty = true
	return nil
}

// Detach removes given node from its parent's children; it becomes a
// root.  Detach is a no-op for unknown or root nodes.
func (t *Tree) Detach(id NodeID) {
	n := t.Node(id)
	if n == nil || n.parent == NoNode {
		return
	}
	if p := t.Node(n.parent); p != nil {
		if i := slices.Index(p.children, id); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
	}
	n.parent = NoNode
	t.dirty = true
}

// Delete detaches given node and removes it together with its
// descendants from the tree.
func (t *Tree) Delete(id NodeID) {
	n := t.Node(id)
	if n == nil {
		return
	}
	t.Detach(id)
	var del func(*Node)
	del = func(n *Node) {
		for _, c := range n.children {
			if cn := t.Node(c); cn != nil {
				del(cn)
			}
		}
		t.nn[n.id] = nil
	}
	del(n)
	t.dirty = true
}

// Dirty returns true if a node was added, removed, moved or changed its
// expressions or rectangle since the last MarkClean.
func (t *Tree) Dirty() bool { return t.dirty }

// MarkClean resets the dirty flag; it is called after all roots of a
// tree were resolved.
func (t *Tree) MarkClean() { t.dirty = false }

// Node is a layout node.  Its frame is calculated by Resolve and is
// given in the coordinates of its parent.
type Node struct {
	id         NodeID
	tree       *Tree
	parent     NodeID
	children   []NodeID
	mode       Mode
	x, y, w, h Expr
	rect       Rect
	frame      Rect
}

// ID returns the node's id in its tree.
func (n *Node) ID() NodeID { return n.id }

// Parent returns the id of the node's parent or NoNode.
func (n *Node) Parent() NodeID { return n.parent }

// Children returns a copy of the node's children ids in insertion
// order.
func (n *Node) Children() []NodeID { return slices.Clone(n.children) }

// Mode returns the node's layout mode.
func (n *Node) Mode() Mode { return n.mode }

// SetMode switches the node's layout mode.  Switching to ModeAbsolute
// takes the current frame as rectangle, switching to ModeExpr takes the
// current frame as absolute expressions.
func (n *Node) SetMode(m Mode) {
	if n.mode == m {
		return
	}
	switch m {
	case ModeAbsolute:
		n.rect = n.frame
	default:
		n.x, n.y = Abs(n.frame.X), Abs(n.frame.Y)
		n.w, n.h = Abs(n.frame.Width), Abs(n.frame.Height)
	}
	n.mode = m
	n.tree.dirty = true
}

// X returns the node's horizontal position expression.
func (n *Node) X() Expr { return n.x }

// Y returns the node's vertical position expression.
func (n *Node) Y() Expr { return n.y }

// Width returns the node's width expression.
func (n *Node) Width() Expr { return n.w }

// Height returns the node's height expression.
func (n *Node) Height() Expr { return n.h }

// SetX replaces the node's horizontal position expression.  An
// absolute mode node accepts only Absolute expressions which set its
// rectangle's x-coordinate.
func (n *Node) SetX(e Expr) error {
	return n.set(&n.x, e, posSlot, func(v int) { n.rect.X = v })
}

// SetY replaces the node's vertical position expression; see SetX.
func (n *Node) SetY(e Expr) error {
	return n.set(&n.y, e, posSlot, func(v int) { n.rect.Y = v })
}

// SetWidth replaces the node's width expression; see SetX.
func (n *Node) SetWidth(e Expr) error {
	return n.set(&n.w, e, dimSlot, func(v int) { n.rect.Width = v })
}

// SetHeight replaces the node's height expression; see SetX.
func (n *Node) SetHeight(e Expr) error {
	return n.set(&n.h, e, dimSlot, func(v int) { n.rect.Height = v })
}

// set replaces given expression after validating the new expression.
// An absolute expression can't replace a computed one in expression
// mode; the node needs to be switched to ModeAbsolute for that.
func (n *Node) set(dst *Expr, e Expr, s slot, abs func(int)) error {
	if err := validate(e, s); err != nil {
		return fmt.Errorf("node #%d: %w", n.id, err)
	}
	if n.mode == ModeAbsolute {
		a, ok := e.(Absolute)
		if !ok {
			return fmt.Errorf("%w: #%d: %s as %s of absolute node",
				ErrMode, n.id, e.Kind(), s)
		}
		abs(a.N)
		n.tree.dirty = true
		return nil
	}
	if e.Kind() == KindAbsolute && (*dst).Kind() != KindAbsolute {
		return fmt.Errorf("%w: #%d: %s replaces %s",
			ErrAbsoluteInExprMode, n.id, e, *dst)
	}
	*dst = e
	n.tree.dirty = true
	return nil
}

// Rect returns the rectangle of an absolute mode node.
func (n *Node) Rect() Rect { return n.rect }

// SetRect sets the rectangle of an absolute mode node; it takes effect
// with the next resolution.
func (n *Node) SetRect(r Rect) error {
	if n.mode != ModeAbsolute {
		return fmt.Errorf("%w: #%d: set rectangle of expression node",
			ErrMode, n.id)
	}
	n.rect = r
	n.tree.dirty = true
	return nil
}

// Frame returns the node's resolved rectangle in its parent's
// coordinates.
func (n *Node) Frame() Rect { return n.frame }

// references returns the ids of the nodes the node's expressions
// refer to.
func (n *Node) references() []NodeID {
	if n.mode != ModeExpr {
		return nil
	}
	var rr []NodeID
	for _, e := range []Expr{n.x, n.y, n.w, n.h} {
		rr = appendReferences(rr, e)
	}
	return rr
}

func appendReferences(rr []NodeID, e Expr) []NodeID {
	switch e := e.(type) {
	case Relative:
		if slices.Index(rr, e.Target) < 0 {
			rr = append(rr, e.Target)
		}
	case Combined:
		rr = appendReferences(rr, e.Lhs)
		rr = appendReferences(rr, e.Rhs)
	}
	return rr
}
