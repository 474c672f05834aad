// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Renderer is a fixed size grid of character cells which is flushed to
// the physical terminal by Show.  tcell.Screen implements all of its
// methods except for Resize.
type Renderer interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Clear()
	Show()

	// Resize adapts the grid to given size after a terminal size
	// change.
	Resize(width, height int)
}

// Input reports key, mouse and resize events.
type Input interface {

	// Next returns the next event.  It blocks at most for given wait
	// duration returning a nil event after it passed; a negative wait
	// blocks until an event is available.  Next fails with
	// ErrInputClosed if no further events will be reported and with
	// the context's error if ctx is done.
	Next(ctx context.Context, wait time.Duration) (tcell.Event, error)

	// Post queues given event for a subsequent Next call.  It may be
	// called from any goroutine.
	Post(tcell.Event) error
}

// Driver combines the render and input collaborators of an App.
type Driver interface {
	Renderer
	Input

	// Fini releases the terminal.
	Fini()
}

// NewDriver returns a driver for the process's terminal.
func NewDriver() (Driver, error) {
	lib, err := screenFactory.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreen, err)
	}
	return newDriver(lib, false)
}

// NewSimDriver returns a driver on a tcell simulation screen with given
// size.
func NewSimDriver(width, height int) (Driver, error) {
	lib := screenFactory.NewSimulationScreen("UTF-8")
	d, err := newDriver(lib, true)
	if err != nil {
		return nil, err
	}
	lib.SetSize(width, height)
	return d, nil
}

// tcellDriver polls tcell events in its own goroutine and hands them
// to Next through a channel.
type tcellDriver struct {
	lib  tcell.Screen
	sim  bool
	evt  chan tcell.Event
	done chan struct{}
}

func newDriver(lib tcell.Screen, sim bool) (*tcellDriver, error) {
	if err := lib.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}
	lib.EnableMouse()
	d := &tcellDriver{lib: lib, sim: sim,
		evt: make(chan tcell.Event), done: make(chan struct{})}
	go d.poll()
	return d, nil
}

func (d *tcellDriver) poll() {
	defer close(d.evt)
	for {
		ev := d.lib.PollEvent()
		if ev == nil { // screen finalized
			return
		}
		select {
		case d.evt <- ev:
		case <-d.done:
			return
		}
	}
}

func (d *tcellDriver) Next(
	ctx context.Context, wait time.Duration,
) (tcell.Event, error) {
	var timeout <-chan time.Time
	switch {
	case wait == 0:
		select {
		case ev, ok := <-d.evt:
			return received(ev, ok)
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			return nil, nil
		}
	case wait > 0:
		tmr := time.NewTimer(wait)
		defer tmr.Stop()
		timeout = tmr.C
	}
	select {
	case ev, ok := <-d.evt:
		return received(ev, ok)
	case <-timeout:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func received(ev tcell.Event, ok bool) (tcell.Event, error) {
	if !ok {
		return nil, ErrInputClosed
	}
	return ev, nil
}

func (d *tcellDriver) Post(ev tcell.Event) error {
	return d.lib.PostEvent(ev)
}

func (d *tcellDriver) Size() (int, int) { return d.lib.Size() }

func (d *tcellDriver) SetContent(
	x, y int, r rune, cc []rune, s tcell.Style,
) {
	d.lib.SetContent(x, y, r, cc, s)
}

func (d *tcellDriver) Clear() { d.lib.Clear() }

func (d *tcellDriver) Show() { d.lib.Show() }

// Resize sets the size of a simulation screen; a terminal screen is
// synchronized with the terminal's size instead.
func (d *tcellDriver) Resize(width, height int) {
	if sim, ok := d.lib.(tcell.SimulationScreen); ok && d.sim {
		sim.SetSize(width, height)
		return
	}
	d.lib.Sync()
}

func (d *tcellDriver) Fini() {
	select {
	case <-d.done:
		return
	default:
	}
	close(d.done)
	d.lib.Fini()
}

// screenFactory is used to create new tcell-screens for production or
// for simulation.  export_test.go makes it possible to replace this
// screen factory with a screen-factory mocking up tcell's screen
// creation errors so they can be tested.
var screenFactory screenFactoryer = &defaultFactory{}

type defaultFactory struct{}

func (f *defaultFactory) NewScreen() (tcell.Screen, error) {
	return tcell.NewScreen()
}

func (f *defaultFactory) NewSimulationScreen(
	s string,
) tcell.SimulationScreen {
	return tcell.NewSimulationScreen(s)
}

type screenFactoryer interface {
	NewScreen() (tcell.Screen, error)
	NewSimulationScreen(string) tcell.SimulationScreen
}
