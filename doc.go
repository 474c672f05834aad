// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package frames is a terminal UI toolkit managing a stack of toplevel
// windows.  Views are laid out declaratively by the expressions of the
// lyt package, toplevels are begun and ended in stack discipline,
// modal toplevels overlay the stack and an optional MDI container
// coordinates its non-modal children.  A single cooperative loop reads
// input, routes it to the focused view of the Current toplevel, runs
// idle callbacks and timers and redraws after layout.
//
// frames wraps the package https://github.com/gdamore/tcell which does
// the heavy lifting on the terminal side.  tcell's Key constants, its
// ModMask constants and its Style type are used as they are.
//
// # Context
//
// An App is created by Init with a Driver and released by Shutdown:
//
//	drv, err := frames.NewDriver()
//	if err != nil {
//	    log.Fatalf("can't obtain terminal: %v", err)
//	}
//	app, err := frames.Init(drv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Shutdown()
//
// # Window stack
//
// Begin pushes a toplevel onto the stack and returns a RunState which
// must be passed to the matching End.  Run begins a toplevel if
// necessary, iterates the loop until the toplevel stops and ends it:
//
//	top := app.NewToplevel()
//	top.Add(app.NewLabel("hello world").View)
//	if err := app.Run(context.Background(), top); err != nil {
//	    log.Fatal(err)
//	}
//
// RequestStop stops a toplevel; it stays on the stack, i.e. Current,
// until it is ended.  Lifecycle notifications like Loaded, Closing or
// Activate are registered with Toplevel.On.
//
//	dlg := app.NewToplevel(frames.AsModal(), frames.WithRect(
//	    lyt.Rect{X: 10, Y: 5, Width: 40, Height: 10}))
//	dlg.On(frames.Closing, func(e *frames.LcEvent) {
//	    if unsaved {
//	        e.Cancel()
//	    }
//	})
//
// # MDI
//
// A toplevel created with AsMdiContainer makes all non-modal toplevels
// begun while it is on the stack its children.  Activate moves a child
// to the head of the children, RequestStop on the container closes all
// children before the container itself stops.
//
// # Focus and input
//
// Keys bound to a Feature (see DefaultFeatures and Config) are handled
// by the App: tab and backtab move the focus, ctrl-q stops the Current
// toplevel and f6 and shift-f6 cycle the MDI children.  All other keys
// are reported to the listeners of the focused view and bubble up to
// its ancestors until a listener stops the bubbling:
//
//	v := app.NewView()
//	v.SetFocusable(true)
//	v.Listeners().Rune('x', func(e *frames.Env) {
//	    e.StopBubbling()
//	})
//
// Listeners are called in the loop's goroutine.  App.Post is the only
// way to get back into the loop from an other goroutine.
//
// # Testing
//
// Test creates an App on a tcell simulation screen whose input is
// controlled by a Testing instance, see Testing.
package frames
