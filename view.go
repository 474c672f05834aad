// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/slukits/frames/lyt"
)

// View is a rectangular screen area laid out by its node in the App's
// layout tree.  A view owns its children through the tree; its parent
// is looked up by the node's parent id.
type View struct {
	app       *App
	node      *lyt.Node
	tl        *Toplevel
	ll        *Listeners
	focusable bool
	hidden    bool
	disabled  bool
	drawer    Drawer
}

// Drawer draws a view's content onto given canvas which is clipped to
// the view's screen area.
type Drawer func(v *View, c *Canvas)

// NewView creates a detached, visible and enabled view whose layout
// expressions are all Abs(0).
func (a *App) NewView() *View { return a.newView(a.tree.New()) }

func (a *App) newView(n *lyt.Node) *View {
	v := &View{app: a, node: n, ll: NewListeners(a.ff)}
	a.views[n.ID()] = v
	return v
}

// App returns the App the view was created by.
func (v *View) App() *App { return v.app }

// ID returns the id of the view's layout node.
func (v *View) ID() lyt.NodeID { return v.node.ID() }

// Node returns the view's layout node.
func (v *View) Node() *lyt.Node { return v.node }

// Parent returns the view's parent or nil for a root view.
func (v *View) Parent() *View { return v.app.views[v.node.Parent()] }

// Children returns the view's children in insertion order.
func (v *View) Children() []*View {
	cc := []*View{}
	for _, id := range v.node.Children() {
		if c := v.app.views[id]; c != nil {
			cc = append(cc, c)
		}
	}
	return cc
}

// Add appends given views to the view's children.  Add fails if a
// child is already attached or if it is an ancestor of the view, see
// lyt.Tree.Append.
func (v *View) Add(cc ...*View) error {
	for _, c := range cc {
		if err := v.app.tree.Append(v.ID(), c.ID()); err != nil {
			return err
		}
	}
	v.app.changed = true
	return nil
}

// Remove detaches given child from the view; the focus of the view's
// toplevel is re-validated.
func (v *View) Remove(c *View) {
	if c == nil || c.node.Parent() != v.ID() {
		return
	}
	v.app.tree.Detach(c.ID())
	v.app.changed = true
	if t := v.Toplevel(); t != nil {
		v.app.revalidateFocus(t)
	}
}

// Delete removes the view together with its descendants from its
// parent, the App and the layout tree; a deleted view must not be used
// anymore.  The focus of the toplevel it was removed from is
// re-validated.  Delete fails with ErrBegun for a toplevel on the
// stack.
func (v *View) Delete() error {
	if v.tl != nil && v.tl.rs != nil {
		return fmt.Errorf("%w: delete %s", ErrBegun, v.tl)
	}
	t := v.Toplevel()
	var forget func(*View)
	forget = func(v *View) {
		for _, c := range v.Children() {
			forget(c)
		}
		delete(v.app.views, v.ID())
	}
	forget(v)
	v.app.tree.Delete(v.ID())
	v.app.changed = true
	if t != nil && t.View != v {
		v.app.revalidateFocus(t)
	}
	return nil
}

// Toplevel returns the toplevel whose tree contains the view or nil if
// the view's root is no toplevel.
func (v *View) Toplevel() *Toplevel {
	root := v
	for p := v.Parent(); p != nil; p = p.Parent() {
		root = p
	}
	return root.tl
}

// SetX sets the view's horizontal position expression.
func (v *View) SetX(e lyt.Expr) error { return v.node.SetX(e) }

// SetY sets the view's vertical position expression.
func (v *View) SetY(e lyt.Expr) error { return v.node.SetY(e) }

// SetWidth sets the view's width expression.
func (v *View) SetWidth(e lyt.Expr) error { return v.node.SetWidth(e) }

// SetHeight sets the view's height expression.
func (v *View) SetHeight(e lyt.Expr) error { return v.node.SetHeight(e) }

// SetMode switches the view's layout mode.
func (v *View) SetMode(m lyt.Mode) { v.node.SetMode(m) }

// SetRect sets the rectangle of an absolute mode view.
func (v *View) SetRect(r lyt.Rect) error { return v.node.SetRect(r) }

// Frame returns the view's resolved rectangle in its parent's
// coordinates.
func (v *View) Frame() lyt.Rect { return v.node.Frame() }

// ScreenRect returns the view's resolved rectangle in screen
// coordinates.
func (v *View) ScreenRect() lyt.Rect {
	r := v.Frame()
	for p := v.Parent(); p != nil; p = p.Parent() {
		f := p.Frame()
		r.X += f.X
		r.Y += f.Y
	}
	return r
}

// Listeners returns the view's input listeners.
func (v *View) Listeners() *Listeners { return v.ll }

// OnDraw sets the view's drawer.
func (v *View) OnDraw(d Drawer) { v.drawer = d }

// Focusable returns true if the view may receive the focus.
func (v *View) Focusable() bool { return v.focusable }

// SetFocusable sets if the view may receive the focus.
func (v *View) SetFocusable(f bool) {
	v.focusable = f
	if !f {
		v.revalidate()
	}
}

// Visible returns true if the view is not hidden.
func (v *View) Visible() bool { return !v.hidden }

// SetVisible hides or shows the view with all its descendants.
func (v *View) SetVisible(visible bool) {
	v.hidden = !visible
	v.app.changed = true
	if !visible {
		v.revalidate()
	}
}

// Enabled returns true if the view is not disabled.
func (v *View) Enabled() bool { return !v.disabled }

// SetEnabled enables or disables the view with all its descendants.
func (v *View) SetEnabled(enabled bool) {
	v.disabled = !enabled
	if !enabled {
		v.revalidate()
	}
}

func (v *View) revalidate() {
	if t := v.Toplevel(); t != nil {
		v.app.revalidateFocus(t)
	}
}

// Focus moves the focus of the view's toplevel to the view if it is
// focusable, visible and enabled.
func (v *View) Focus() bool {
	t := v.Toplevel()
	if t == nil || !t.canFocus(v) {
		return false
	}
	v.app.setFocus(t, v)
	return true
}

// HasFocus returns true if the view is the focused view of the Current
// toplevel.
func (v *View) HasFocus() bool {
	t := v.Toplevel()
	return t != nil && t == v.app.Current() && t.focused == v
}

// Canvas draws to the clipped screen area of a view.  Coordinates are
// relative to the view's origin.
type Canvas struct {
	r      Renderer
	origin lyt.Rect
	clip   lyt.Rect
}

// Size returns the size of the canvas' view.
func (c *Canvas) Size() lyt.Size { return c.origin.Size() }

// Set sets the cell at given coordinates unless it is clipped.
func (c *Canvas) Set(x, y int, r rune, s tcell.Style) {
	x, y = x+c.origin.X, y+c.origin.Y
	if !c.clip.Contains(x, y) {
		return
	}
	c.r.SetContent(x, y, r, nil, s)
}

// Print writes given string starting at given coordinates and returns
// the number of cells it occupies.
func (c *Canvas) Print(x, y int, s string, st tcell.Style) int {
	w := 0
	for _, r := range s {
		c.Set(x+w, y, r, st)
		w += runewidth.RuneWidth(r)
	}
	return w
}

// Fill sets every cell of the canvas to given rune.
func (c *Canvas) Fill(r rune, s tcell.Style) {
	for y := 0; y < c.origin.Height; y++ {
		for x := 0; x < c.origin.Width; x++ {
			c.Set(x, y, r, s)
		}
	}
}

func intersect(a, b lyt.Rect) lyt.Rect {
	x, y := max(a.X, b.X), max(a.Y, b.Y)
	r, btm := min(a.Right(), b.Right()), min(a.Bottom(), b.Bottom())
	if r <= x || btm <= y {
		return lyt.Rect{X: x, Y: y}
	}
	return lyt.Rect{X: x, Y: y, Width: r - x, Height: btm - y}
}
