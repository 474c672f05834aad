// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Frames is a demo of the frames toolkit: a desk whose windows are the
children of an MDI container.  Each window shows a split of two panes
which may be focused by tab and backtab or by a click.

Usage:

	frames [config.toml]

The optional argument is a TOML configuration file, see frames.Config.
Key bindings of the desk:

	n          opens a new window
	d          opens the modal close-all dialog
	f6         activates the next window, shift-f6 the previous
	ctrl-q     closes the current window; closing the desk closes
	           all its windows first

The dialog closes all windows and the desk on 'y' and itself on any
other rune.  If the environment variable FRAMES_LOG names a file the
desk's stack transitions are logged to it.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/slukits/frames"
	"github.com/slukits/frames/lyt"
	"golang.org/x/term"
)

const usage = "usage: frames [config.toml]"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "frames: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 1 {
		return errors.New(usage)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}
	oo := []frames.Option{}
	if len(args) == 1 {
		cfg, err := frames.LoadConfig(args[0])
		if err != nil {
			return err
		}
		oo = append(oo, frames.WithConfig(cfg))
	}
	if path := os.Getenv("FRAMES_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY,
			0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		oo = append(oo, frames.WithLogger(
			log.New(f, "frames: ", log.LstdFlags)))
	}

	drv, err := frames.NewDriver()
	if err != nil {
		return err
	}
	app, err := frames.Init(drv, oo...)
	if err != nil {
		drv.Fini()
		return err
	}
	defer app.Shutdown()

	d, err := newDesk(app)
	if err != nil {
		return err
	}
	return app.Run(context.Background(), d.container)
}

// desk is an MDI container whose children are windows showing a split.
type desk struct {
	app       *frames.App
	container *frames.Toplevel
	status    *frames.Label
	clock     *frames.Label
	opened    int
}

func newDesk(app *frames.App) (*desk, error) {
	d := &desk{app: app,
		container: app.NewToplevel(frames.AsMdiContainer()),
		status:    app.NewLabel(""),
		clock:     app.NewLabel(""),
	}
	if err := d.container.Add(d.status.View, d.clock.View); err != nil {
		return nil, err
	}
	for _, err := range []error{
		d.status.SetY(lyt.AnchorEnd(0)),
		d.clock.SetX(lyt.AnchorEnd(0)),
		d.clock.SetY(lyt.AnchorEnd(0)),
	} {
		if err != nil {
			return nil, err
		}
	}
	d.bind(d.container)
	d.container.On(frames.ChildLoaded, func(*frames.LcEvent) {
		d.report()
	})
	d.container.On(frames.ChildUnloaded, func(*frames.LcEvent) {
		d.report()
	})
	d.container.On(frames.Ready, func(*frames.LcEvent) {
		d.report()
		d.tick()
		app.AddTimeout(time.Second, func() bool {
			d.tick()
			return true
		})
	})
	return d, nil
}

// bind registers the desk's runes at given toplevel's root view.
func (d *desk) bind(t *frames.Toplevel) {
	ll := t.Listeners()
	for r, l := range map[rune]frames.Listener{
		'n': func(*frames.Env) { d.open() },
		'd': func(*frames.Env) { d.dialog() },
	} {
		if err := ll.Rune(r, l); err != nil {
			d.app.Logger().Printf("bind %s: %v", t, err)
		}
	}
}

func (d *desk) report() {
	d.status.SetText(fmt.Sprintf(
		"%d window(s)  n: new  d: close all  f6: next  ctrl-q: close",
		len(d.app.MdiChildren())))
}

func (d *desk) tick() { d.clock.SetText(time.Now().Format("15:04:05")) }

// open begins a new window cascading it over the previous ones.
func (d *desk) open() {
	d.opened++
	off := d.opened % 8
	w := d.app.NewToplevel(frames.WithRect(lyt.Rect{
		X: 2 + 2*off, Y: 1 + off, Width: 44, Height: 10}))
	w.OnDraw(border(fmt.Sprintf(" window %d ", d.opened)))

	left, right := d.pane("left"), d.pane("right")
	sp, err := d.app.NewSplit(frames.SideBySide, left.View, right.View)
	if err != nil {
		d.app.Logger().Printf("open window: %v", err)
		return
	}
	for _, err := range []error{
		w.Add(sp.View),
		sp.SetX(lyt.Abs(1)), sp.SetY(lyt.Abs(1)),
		sp.SetWidth(lyt.Fill(1)), sp.SetHeight(lyt.Fill(1)),
	} {
		if err != nil {
			d.app.Logger().Printf("open window: %v", err)
			return
		}
	}
	d.bind(w)
	if _, err := d.app.Begin(w); err != nil {
		d.app.Logger().Printf("open window: %v", err)
	}
}

// pane is a focusable label which is highlighted while it has the
// focus.
func (d *desk) pane(text string) *frames.Label {
	l := d.app.NewLabel(text)
	l.SetFocusable(true)
	l.Listeners().Focus(func(*frames.Env) {
		l.Style = tcell.StyleDefault.Reverse(true)
	})
	l.Listeners().Blur(func(*frames.Env) {
		l.Style = tcell.StyleDefault
	})
	return l
}

// dialog begins the modal close-all dialog centered on the screen.
func (d *desk) dialog() {
	size := d.app.Size()
	w, h := 30, 3
	dlg := d.app.NewToplevel(frames.AsModal(), frames.WithRect(lyt.Rect{
		X: (size.Width - w) / 2, Y: (size.Height - h) / 2,
		Width: w, Height: h}))
	dlg.OnDraw(border(" close all? "))
	q := d.app.NewLabel("y / n")
	for _, err := range []error{
		dlg.Add(q.View), q.SetX(lyt.Center()), q.SetY(lyt.Abs(1)),
	} {
		if err != nil {
			d.app.Logger().Printf("dialog: %v", err)
			return
		}
	}
	dlg.Listeners().Keyboard(func(_ *frames.Env, r rune, _ tcell.Key,
		_ tcell.ModMask) {
		dlg.RequestStop()
		if r == 'y' {
			d.app.RequestStop(d.container)
		}
	})
	if _, err := d.app.Begin(dlg); err != nil {
		d.app.Logger().Printf("dialog: %v", err)
	}
}

// border returns a drawer framing a view with a line border showing
// given title.
func border(title string) frames.Drawer {
	return func(v *frames.View, c *frames.Canvas) {
		size, st := c.Size(), tcell.StyleDefault
		right, bottom := size.Width-1, size.Height-1
		for x := 1; x < right; x++ {
			c.Set(x, 0, tcell.RuneHLine, st)
			c.Set(x, bottom, tcell.RuneHLine, st)
		}
		for y := 1; y < bottom; y++ {
			c.Set(0, y, tcell.RuneVLine, st)
			c.Set(right, y, tcell.RuneVLine, st)
		}
		c.Set(0, 0, tcell.RuneULCorner, st)
		c.Set(right, 0, tcell.RuneURCorner, st)
		c.Set(0, bottom, tcell.RuneLLCorner, st)
		c.Set(right, bottom, tcell.RuneLRCorner, st)
		c.Print(2, 0, title, st)
	}
}
