// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/slukits/frames/lyt"
)

// Run iterates the App's loop until given toplevel stops, the App
// quits or given context is done; nil runs the Current toplevel.  A
// toplevel which is not on the stack is begun by Run and ended before
// Run returns.  Stopped toplevels on top of the stack which are not
// driven by a Run call themselves are ended by Run, e.g. MDI children
// or toplevels begun by Begin.  Ready is reported at the first
// iteration.  Run returns the context's error if it is done and
// layout or input errors of an iteration.
func (a *App) Run(ctx context.Context, t *Toplevel) (err error) {
	if t == nil {
		t = a.Current()
	}
	if t == nil {
		return ErrNilToplevel
	}
	rs := t.rs
	if rs == nil {
		if rs, err = a.Begin(t); err != nil {
			return err
		}
		rs.byRun = true
	}
	t.loops++
	defer func() { t.loops-- }()

	for t.running && !a.quit {
		if !t.ready {
			t.ready = true
			t.report(Ready, nil)
		}
		if err = a.Iterate(ctx, true); err != nil {
			break
		}
		a.endAbove(t, false)
	}
	a.endAbove(t, true)
	if rs.byRun && !rs.ended {
		if e := a.End(rs); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// endAbove ends toplevels on top of given toplevel which are not driven
// by a Run call.  Only stopped toplevels are ended unless all is set.
func (a *App) endAbove(t *Toplevel, all bool) {
	for cur := a.Current(); cur != nil && cur != t && cur.loops == 0; cur = a.Current() {
		if cur.running && !all {
			return
		}
		if err := a.End(cur.rs); err != nil {
			a.log.Printf("run %s: %v", t, err)
			return
		}
	}
}

// Iterate executes one iteration of the loop:
//
//  1. idle callbacks in registration order,
//  2. due timers in expiry order,
//  3. posted functions and at most one input event which is routed to
//     the Current toplevel,
//  4. layout of the running toplevels if the stack or a view changed,
//  5. post-iteration callback and redraw,
//  6. stopped MDI children are moved ahead of the running ones.
//
// Iterate waits for input only if block is set and no idle callback is
// registered; the wait ends at the latest when the next timer is due.
func (a *App) Iterate(ctx context.Context, block bool) error {
	a.runIdles()
	a.runTimers()
	a.runPosted()

	ev, err := a.drv.Next(ctx, a.wait(block))
	if err != nil {
		return err
	}
	if ev != nil {
		a.route(ev)
	}

	if err := a.layout(false); err != nil {
		return err
	}
	if a.postIter != nil {
		a.postIter()
	}
	a.draw()
	a.reorder()
	return nil
}

// wait calculates how long the input wait of an iteration may block;
// a negative duration blocks until input is available.
func (a *App) wait(block bool) time.Duration {
	if !block || len(a.idles) > 0 || a.quit {
		return 0
	}
	a.mutex.Lock()
	posted := len(a.posted) > 0
	a.mutex.Unlock()
	if posted {
		return 0
	}
	d, ok := a.nextTimeout()
	if !ok {
		d = -1
	}
	if mw := a.cfg.Loop.MaxWait.Duration; mw > 0 && (d < 0 || d > mw) {
		d = mw
	}
	return d
}

func (a *App) route(ev tcell.Event) {
	switch ev := ev.(type) {
	case *postEvent:
		a.runPosted()
	case *tcell.EventResize:
		w, h := ev.Size()
		a.drv.Resize(w, h)
		a.checkMin()
		a.changed = true
	case *tcell.EventKey:
		a.routeKey(ev)
	case *tcell.EventMouse:
		if !a.ToSmall() {
			a.routeMouse(ev)
		}
	}
}

func (a *App) routeKey(ev *tcell.EventKey) {
	f := a.ff.KeyEvent(ev.Key(), ev.Modifiers())
	if ev.Key() == tcell.KeyRune {
		f = a.ff.RuneEvent(ev.Rune())
	}
	if a.ToSmall() && f != FtQuit {
		return
	}
	switch f {
	case FtQuit:
		a.RequestStop(nil)
		return
	case FtFocusNext:
		a.FocusNext()
		return
	case FtFocusPrev:
		a.FocusPrev()
		return
	case FtNextWindow:
		a.NextWindow()
		return
	case FtPrevWindow:
		a.PrevWindow()
		return
	}

	t := a.Current()
	if t == nil {
		return
	}
	v := t.focused
	if v == nil {
		v = t.View
	}
	env := &Env{App: a, Evt: ev}
	defer env.reset()
	for ; v != nil; v = v.Parent() {
		if v.disabled {
			continue
		}
		env.View = v
		v.ll.reportKey(env, ev)
		if env.stopBubbling {
			return
		}
	}
}

// routeMouse focuses with button 1 the deepest focusable view under
// the pointer and reports the event to the mouse listeners from the
// deepest view under the pointer up to the toplevel.
func (a *App) routeMouse(ev *tcell.EventMouse) {
	t := a.Current()
	if t == nil {
		return
	}
	x, y := ev.Position()
	hit := a.hit(t.View, x, y)
	if hit == nil {
		return
	}
	if ev.Buttons()&tcell.Button1 != 0 {
		for v := hit; v != nil && v != t.View; v = v.Parent() {
			if t.canFocus(v) {
				a.setFocus(t, v)
				break
			}
		}
	}
	env := &Env{App: a, Evt: ev}
	defer env.reset()
	for v := hit; v != nil; v = v.Parent() {
		if v.ll.mouse == nil || v.disabled {
			continue
		}
		env.View = v
		v.ll.mouse(env)
		if env.stopBubbling {
			return
		}
	}
}

// hit returns the deepest visible view containing given screen
// coordinates.  Later children overlay earlier ones.
func (a *App) hit(v *View, x, y int) *View {
	if v.hidden || !v.ScreenRect().Contains(x, y) {
		return nil
	}
	cc := v.Children()
	for i := len(cc) - 1; i >= 0; i-- {
		if h := a.hit(cc[i], x, y); h != nil {
			return h
		}
	}
	return v
}

// Layout resolves the frames of all running toplevels against the
// display size.
func (a *App) Layout() error { return a.layout(true) }

func (a *App) layout(force bool) error {
	if !force && !a.changed && !a.tree.Dirty() {
		return nil
	}
	size := a.Size()
	for _, t := range a.tops {
		if !t.running {
			continue
		}
		if err := lyt.Resolve(a.tree, t.ID(), size); err != nil {
			a.log.Printf("layout %s: %v", t, err)
			return err
		}
	}
	a.tree.MarkClean()
	a.changed = false
	return nil
}

// draw paints the running toplevels from the bottom of the stack to
// its top and flushes the screen.
func (a *App) draw() {
	if a.errScr != nil && a.errScr.Active {
		a.errScr.draw(a.drv)
		a.drv.Show()
		return
	}
	a.drv.Clear()
	w, h := a.drv.Size()
	screen := lyt.Rect{Width: w, Height: h}
	for i := len(a.tops) - 1; i >= 0; i-- {
		if t := a.tops[i]; t.running {
			a.drawView(t.View, screen, lyt.Rect{}, true)
		}
	}
	a.drv.Show()
}

func (a *App) drawView(v *View, clip, parent lyt.Rect, top bool) {
	if v.hidden {
		return
	}
	f := v.Frame()
	f.X, f.Y = f.X+parent.X, f.Y+parent.Y
	c := &Canvas{r: a.drv, origin: f, clip: intersect(clip, f)}
	if top {
		c.Fill(' ', tcell.StyleDefault)
	}
	if v.drawer != nil {
		v.drawer(v, c)
	}
	for _, cv := range v.Children() {
		a.drawView(cv, c.clip, f, false)
	}
}
