// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"fmt"

	"github.com/slukits/frames/lyt"
	"golang.org/x/exp/slices"
)

// Begin pushes given toplevel onto the stack making it the Current
// toplevel.  It is laid out against the display, Loaded is reported to
// it (and ChildLoaded to the MDI container if it becomes an MDI child)
// before Deactivate and Activate are reported to the previous and the
// new Current.  Begin fails with ErrNilToplevel, ErrBegun if the
// toplevel is on the stack or has a parent, ErrMdiContainer for a
// second MDI container and with a layout error if the toplevel can't be
// resolved; the stack is unchanged in these cases.
func (a *App) Begin(t *Toplevel) (*RunState, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: begin", ErrNilToplevel)
	}
	if t.rs != nil {
		return nil, fmt.Errorf("%w: %s", ErrBegun, t)
	}
	if t.Parent() != nil {
		return nil, fmt.Errorf("%w: %s is not a root view", ErrBegun, t)
	}
	if t.mdi && a.mdi != nil {
		return nil, fmt.Errorf("%w: begin %s while %s", ErrMdiContainer,
			t, a.mdi)
	}
	if err := lyt.Resolve(a.tree, t.ID(), a.Size()); err != nil {
		a.log.Printf("begin %s: %v", t, err)
		return nil, err
	}

	prev := a.Current()
	rs := &RunState{t: t}
	t.rs, t.running, t.ready, t.sweeping = rs, true, false, false
	t.launcher, t.container = prev, nil
	if !t.modal && !t.mdi && a.mdi != nil {
		t.container = a.mdi
	}
	a.tops = slices.Insert(a.tops, 0, t)
	if t.mdi {
		a.mdi = t
	}
	if a.top == nil {
		a.top = t
	}
	a.changed = true
	a.log.Printf("begin %s", t)

	t.report(Loaded, nil)
	if t.IsMdiChild() {
		a.mdi.report(ChildLoaded, t)
	}
	if t.focused == nil || !t.canFocus(t.focused) {
		t.focused = nil
		if vv := a.focusables(t); len(vv) > 0 {
			t.focused = vv[0]
		}
	}
	a.switchCurrent(prev, t)
	return rs, nil
}

// End pops given run state's toplevel from the stack.  Unloaded (and
// ChildUnloaded to the MDI container for an MDI child) and Closed are
// reported before the next toplevel on the stack becomes Current, i.e.
// its focus is restored and Activate is reported.  A newly Current
// toplevel which was stopped before stays stopped.  End fails with
// ErrNotTop if the toplevel is not on top of the stack and with
// ErrEnded if given run state was ended before.
func (a *App) End(rs *RunState) error {
	if rs == nil || rs.t == nil {
		return fmt.Errorf("%w: end", ErrNilToplevel)
	}
	if rs.ended {
		return fmt.Errorf("%w: %s", ErrEnded, rs.t)
	}
	t := rs.t
	if len(a.tops) == 0 || a.tops[0] != t {
		return fmt.Errorf("%w: %s", ErrNotTop, t)
	}

	wasChild := t.IsMdiChild()
	a.tops = slices.Delete(slices.Clone(a.tops), 0, 1)
	rs.ended, t.rs, t.running, t.container = true, nil, false, nil
	if a.mdi == t {
		a.mdi = nil
	}
	if a.top == t {
		a.top = nil
		if len(a.tops) > 0 {
			a.top = a.tops[len(a.tops)-1]
		}
	}
	a.changed = true
	a.log.Printf("end %s", t)

	t.report(Unloaded, nil)
	if wasChild && a.mdi != nil {
		a.mdi.report(ChildUnloaded, t)
	}
	t.report(Closed, nil)
	a.switchCurrent(t, a.Current())

	if wasChild && a.mdi != nil && a.mdi.sweeping &&
		len(a.MdiChildren()) == 0 {
		a.mdi.sweeping = false
		a.mdi.report(AllChildClosed, nil)
		a.stop(a.mdi)
	}
	return nil
}

// RequestStop stops given target toplevel; nil targets the Current
// toplevel.  Without an MDI container on the stack the Current
// toplevel is stopped regardless of the given target.  Targeting the
// MDI container stops all its children first: once the last child was
// ended AllChildClosed is reported to the container which is then
// stopped.  A stop is canceled if a Closing listener cancels it and it
// is a no-op for a toplevel which is not running.  A stopped toplevel
// remains on the stack until it is ended, i.e. it stays Current.
func (a *App) RequestStop(target *Toplevel) {
	cur := a.Current()
	if target == nil {
		target = cur
	}
	if target == nil {
		return
	}
	switch {
	case a.mdi == nil:
		a.stop(cur)
	case target == a.mdi:
		a.sweep()
	default:
		a.stop(target)
	}
}

// stop stops given toplevel unless it is not running or a Closing
// listener cancels.
func (a *App) stop(t *Toplevel) bool {
	if t == nil || !t.running {
		return false
	}
	if !t.report(Closing, nil) {
		a.log.Printf("stop %s: canceled", t)
		return false
	}
	t.running = false
	a.changed = true
	a.log.Printf("stop %s", t)
	return true
}

// sweep stops all children of the MDI container or the container
// itself if it has no children.  A child canceling its stop aborts the
// sweep.
func (a *App) sweep() {
	c := a.mdi
	if c == nil || !c.running {
		return
	}
	kk := a.MdiChildren()
	if len(kk) == 0 {
		a.stop(c)
		return
	}
	c.sweeping = true
	for _, k := range kk {
		if !k.running {
			continue
		}
		if !a.stop(k) {
			c.sweeping = false
			a.log.Printf("sweep %s: aborted by %s", c, k)
			return
		}
	}
}

// Activate makes given MDI child the Current toplevel moving it to the
// head of the MDI children.  Activate fails with ErrNotMdiChild if t is
// not an MDI child and with ErrModalActive if a modal toplevel is
// Current.
func (a *App) Activate(t *Toplevel) error {
	if t == nil {
		return fmt.Errorf("%w: activate", ErrNilToplevel)
	}
	if !t.IsMdiChild() {
		return fmt.Errorf("%w: %s", ErrNotMdiChild, t)
	}
	prev := a.Current()
	if prev.modal {
		return fmt.Errorf("%w: activate %s while %s", ErrModalActive,
			t, prev)
	}
	if prev == t {
		return nil
	}
	i := slices.Index(a.tops, t)
	a.tops = slices.Insert(slices.Delete(slices.Clone(a.tops), i, i+1),
		0, t)
	a.changed = true
	a.log.Printf("activate %s", t)
	a.switchCurrent(prev, t)
	return nil
}

// NextWindow activates the MDI child following the Current one; the
// Current child becomes the last.
func (a *App) NextWindow() {
	a.cycle(func(kk []*Toplevel) []*Toplevel {
		return append(slices.Clone(kk[1:]), kk[0])
	})
}

// PrevWindow activates the last MDI child; it is the inverse of
// NextWindow.
func (a *App) PrevWindow() {
	a.cycle(func(kk []*Toplevel) []*Toplevel {
		return append([]*Toplevel{kk[len(kk)-1]}, kk[:len(kk)-1]...)
	})
}

func (a *App) cycle(rotate func([]*Toplevel) []*Toplevel) {
	kk, cur := a.MdiChildren(), a.Current()
	if len(kk) == 0 || cur.modal {
		return
	}
	if cur != kk[0] {
		if err := a.Activate(kk[0]); err != nil {
			a.log.Printf("cycle windows: %v", err)
		}
		return
	}
	if len(kk) < 2 {
		return
	}
	a.rearrange(rotate(kk))
	a.switchCurrent(cur, a.Current())
}

// rearrange assigns given MDI children in given order to the stack
// positions of the MDI children leaving all other entries in place.
func (a *App) rearrange(kk []*Toplevel) {
	tops, j := slices.Clone(a.tops), 0
	for i, t := range tops {
		if !t.IsMdiChild() {
			continue
		}
		tops[i] = kk[j]
		j++
	}
	a.tops = tops
	a.changed = true
}

// reorder moves stopped MDI children ahead of the running ones
// preserving the relative order of both.
func (a *App) reorder() {
	kk := a.MdiChildren()
	stopped, running := []*Toplevel{}, []*Toplevel{}
	for _, k := range kk {
		if k.running {
			running = append(running, k)
			continue
		}
		stopped = append(stopped, k)
	}
	if len(stopped) == 0 || len(running) == 0 {
		return
	}
	ordered := append(stopped, running...)
	if slices.Equal(ordered, kk) {
		return
	}
	a.rearrange(ordered)
}

// switchCurrent moves the focus and reports Deactivate and Activate if
// given toplevels differ.
func (a *App) switchCurrent(from, to *Toplevel) {
	if from == to {
		return
	}
	if from != nil {
		if from.focused != nil {
			a.report(from.focused, from.focused.ll.blur, nil)
		}
		from.report(Deactivate, to)
	}
	if to != nil {
		to.report(Activate, from)
		if to.focused != nil {
			a.report(to.focused, to.focused.ll.focus, nil)
		}
	}
}

// Current returns the toplevel receiving input or nil if the stack is
// empty.
func (a *App) Current() *Toplevel {
	if len(a.tops) == 0 {
		return nil
	}
	return a.tops[0]
}

// Top returns the MDI container if there is one on the stack, otherwise
// the oldest toplevel on the stack.
func (a *App) Top() *Toplevel {
	if a.mdi != nil {
		return a.mdi
	}
	return a.top
}

// Toplevels returns the toplevels on the stack most recent first.
func (a *App) Toplevels() []*Toplevel { return slices.Clone(a.tops) }

// MdiChildren returns the non-modal toplevels begun while the MDI
// container was on the stack, most recently activated first.  It returns nil if no
// MDI container is on the stack.
func (a *App) MdiChildren() []*Toplevel {
	if a.mdi == nil {
		return nil
	}
	kk := []*Toplevel{}
	for _, t := range a.tops {
		if t.IsMdiChild() {
			kk = append(kk, t)
		}
	}
	return kk
}
