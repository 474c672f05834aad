// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lyt

import (
	"fmt"
	"math"
	"strings"

	"github.com/slukits/ints"
	"golang.org/x/exp/slices"
)

// Resolve calculates the frames of given root and all its descendants.
// An expression mode root is resolved against given available size, an
// absolute mode root takes its rectangle.  Children are resolved in
// their parent's coordinates against their parent's size.  Siblings are
// resolved in insertion order unless a sibling references a later one
// which is then resolved first.  Resolve fails with ErrCycle if
// references form a cycle, with ErrUnrelated if a referenced node is
// neither a sibling nor the parent and with ErrUnknownNode if a
// referenced node was deleted.  Frames of nodes resolved before a
// failure keep their new values.
func Resolve(t *Tree, root NodeID, available Size) error {
	n := t.Node(root)
	if n == nil {
		return fmt.Errorf("%w: resolve root #%d", ErrUnknownNode, root)
	}
	if rr := n.references(); len(rr) > 0 {
		if rr[0] == n.id {
			return fmt.Errorf("%w: #%d references itself", ErrCycle, n.id)
		}
		return fmt.Errorf("%w: root #%d references #%d",
			ErrUnrelated, n.id, rr[0])
	}
	r := &resolver{tree: t}
	r.node(n, nil, available)
	return r.children(n)
}

type resolver struct {
	tree *Tree
}

// children resolves the children of given parent in dependency order
// before it descends into each child.
func (r *resolver) children(parent *Node) error {
	done, order := &ints.Set{}, make([]*Node, 0, len(parent.children))
	var visit func(id NodeID, path []NodeID) error
	visit = func(id NodeID, path []NodeID) error {
		if done.Has(int(id)) {
			return nil
		}
		if slices.Index(path, id) >= 0 {
			return fmt.Errorf("%w: %s", ErrCycle, cycle(append(path, id)))
		}
		n := r.tree.Node(id)
		if n == nil {
			return fmt.Errorf("%w: #%d", ErrUnknownNode, id)
		}
		for _, ref := range n.references() {
			if ref == parent.id {
				continue
			}
			rn := r.tree.Node(ref)
			if rn == nil {
				return fmt.Errorf("%w: #%d references #%d",
					ErrUnknownNode, id, ref)
			}
			if rn.parent != parent.id {
				return fmt.Errorf("%w: #%d references #%d",
					ErrUnrelated, id, ref)
			}
			if err := visit(ref, append(path, id)); err != nil {
				return err
			}
		}
		r.node(n, parent, parent.frame.Size())
		done.Add(int(id))
		order = append(order, n)
		return nil
	}
	for _, id := range parent.children {
		if err := visit(id, nil); err != nil {
			return err
		}
	}
	for _, n := range order {
		if err := r.children(n); err != nil {
			return err
		}
	}
	return nil
}

func cycle(path []NodeID) string {
	ss := make([]string, len(path))
	for i, id := range path {
		ss[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(ss, " -> ")
}

// node resolves given node's frame against given available size.
func (r *resolver) node(n, parent *Node, available Size) {
	if n.mode == ModeAbsolute {
		n.frame = n.rect
		return
	}
	x, w := r.axis(n.x, n.w, available.Width, parent)
	y, h := r.axis(n.y, n.h, available.Height, parent)
	n.frame = Rect{X: x, Y: y, Width: w, Height: h}
}

// axis evaluates a position/dimension pair.  A position needing the
// size (Center, AnchorEnd) is evaluated after the size, a size needing
// the position (Fill, remainder Percent) after the position.  If both
// need each other the size is evaluated at position 0.
func (r *resolver) axis(
	pos, dim Expr, available int, parent *Node,
) (p, s int) {
	e := &evaluation{r: r, available: available, parent: parent}
	if needs(pos, KindCenter, KindAnchorEnd) {
		s = clamp(e.eval(dim))
		e.size = s
		return e.eval(pos), s
	}
	p = e.eval(pos)
	e.pos = p
	return p, clamp(e.eval(dim))
}

func clamp(size int) int {
	if size < 0 {
		return 0
	}
	return size
}

// needs returns true if given expression is or contains one of given
// kinds.
func needs(e Expr, kk ...Kind) bool {
	if c, ok := e.(Combined); ok {
		return needs(c.Lhs, kk...) || needs(c.Rhs, kk...)
	}
	return e != nil && slices.Index(kk, e.Kind()) >= 0
}

// evaluation holds the context for evaluating expressions of one axis.
type evaluation struct {
	r         *resolver
	parent    *Node
	available int
	pos, size int
}

func (e *evaluation) eval(x Expr) int {
	switch x := x.(type) {
	case Absolute:
		return x.N
	case Percent:
		base := e.available
		if x.remainder {
			base -= e.pos
		}
		return int(math.Floor(float64(base) * x.factor / 100))
	case Filling:
		return e.available - e.pos - x.Margin
	case Centered:
		return floorDiv(e.available-e.size, 2)
	case Anchored:
		return e.available - e.size - x.Margin
	case Relative:
		return e.edge(x)
	case Combined:
		if x.Op == OpSub {
			return e.eval(x.Lhs) - e.eval(x.Rhs)
		}
		return e.eval(x.Lhs) + e.eval(x.Rhs)
	case *Function:
		return x.eval()
	}
	panic(fmt.Sprintf("lyt: unknown expression type %T", x))
}

// edge evaluates given relative expression.  The parent contributes its
// own coordinate system, i.e. Left and Top are 0.
func (e *evaluation) edge(x Relative) int {
	var f Rect
	if e.parent != nil && x.Target == e.parent.id {
		f = Rect{Width: e.parent.frame.Width,
			Height: e.parent.frame.Height}
	} else if n := e.r.tree.Node(x.Target); n != nil {
		f = n.frame
	}
	switch x.Edge {
	case EdgeLeft:
		return f.X
	case EdgeTop:
		return f.Y
	case EdgeRight:
		return f.Right()
	case EdgeBottom:
		return f.Bottom()
	case EdgeWidth:
		return f.Width
	case EdgeHeight:
		return f.Height
	}
	return 0
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
