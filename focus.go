// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"github.com/gdamore/tcell/v2"
	"golang.org/x/exp/slices"
)

// focusables returns the focusable, visible and enabled descendants of
// given toplevel in depth first order.  Descendants of hidden or
// disabled views are skipped.
func (a *App) focusables(t *Toplevel) []*View {
	vv := []*View{}
	var walk func(*View)
	walk = func(v *View) {
		for _, c := range v.Children() {
			if c.hidden || c.disabled {
				continue
			}
			if c.focusable {
				vv = append(vv, c)
			}
			walk(c)
		}
	}
	walk(t.View)
	return vv
}

// canFocus returns true if given view is a focusable descendant of the
// toplevel which is visible and enabled as all its ancestors are.
func (t *Toplevel) canFocus(v *View) bool {
	if v == nil || v == t.View || !v.focusable {
		return false
	}
	for ; v != nil; v = v.Parent() {
		if v == t.View {
			return true
		}
		if v.hidden || v.disabled {
			return false
		}
	}
	return false
}

// FocusNext moves the focus of the Current toplevel to the next
// focusable view wrapping around after the last.  It returns false if
// there is no focusable view.
func (a *App) FocusNext() bool {
	return a.moveFocus(func(i, n int) int {
		if i < 0 {
			return 0
		}
		return (i + 1) % n
	})
}

// FocusPrev moves the focus of the Current toplevel to the previous
// focusable view wrapping around before the first.  It returns false if
// there is no focusable view.
func (a *App) FocusPrev() bool {
	return a.moveFocus(func(i, n int) int {
		if i < 0 {
			return n - 1
		}
		return (i - 1 + n) % n
	})
}

func (a *App) moveFocus(next func(i, n int) int) bool {
	t := a.Current()
	if t == nil {
		return false
	}
	vv := a.focusables(t)
	if len(vv) == 0 {
		return false
	}
	a.setFocus(t, vv[next(slices.Index(vv, t.focused), len(vv))])
	return true
}

// setFocus makes given view the focused view of given toplevel.  Blur
// and Focus are reported if the toplevel is Current.
func (a *App) setFocus(t *Toplevel, v *View) {
	if t.focused == v {
		return
	}
	old := t.focused
	t.focused = v
	if t != a.Current() {
		return
	}
	if old != nil {
		a.report(old, old.ll.blur, nil)
	}
	if v != nil {
		a.report(v, v.ll.focus, nil)
	}
}

// revalidateFocus moves the focus of given toplevel to its first
// focusable view if its focused view can't have the focus anymore.
func (a *App) revalidateFocus(t *Toplevel) {
	if t.focused != nil && t.canFocus(t.focused) {
		return
	}
	var v *View
	if vv := a.focusables(t); len(vv) > 0 {
		v = vv[0]
	}
	a.setFocus(t, v)
}

// report calls given listener back with an environment for given view
// and event.
func (a *App) report(v *View, l Listener, ev tcell.Event) {
	if l == nil {
		return
	}
	env := &Env{App: a, View: v, Evt: ev}
	l(env)
	env.reset()
}
