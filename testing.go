// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Testing augments an App created by Test with features for testing
// like firing an event or getting the current screen content as
// string.  Its input is a queue of fired events which are processed
// before a firing method returns: a listener has returned and the
// screen is redrawn.  A loop which would block on an empty queue quits
// the App instead, i.e. Run returns once all fired events are
// processed.  A loop which would wait for a timer advances the
// fixture's clock instead.
//
//	func TestLabel(t *testing.T) {
//	    app, tt := frames.Test(t, 20, 3)
//	    top := app.NewToplevel()
//	    top.Add(app.NewLabel("42").View)
//	    if _, err := app.Begin(top); err != nil {
//	        t.Fatal(err)
//	    }
//	    tt.FireResize(20, 2)
//	    if tt.String() != "42" {
//	        t.Errorf("expected 42 on screen; got %s", tt.String())
//	    }
//	}
//
// NOTE do not use a Testing instance concurrently; App.Post is the
// exception.
type Testing struct {
	app *App
	drv *testDriver
	t   *testing.T
	ctx context.Context

	// Clock is the App's clock unless an other clock was given to
	// Test.
	Clock *ManualClock

	// LastScreen provides the screen content of the last redraw.
	LastScreen string
}

// Test creates a new App on a simulation screen of given size whose
// input is controlled by the returned Testing instance.  The App is
// shut down when the test finishes.
func Test(t *testing.T, width, height int, oo ...Option) (*App, *Testing) {
	t.Helper()
	lib := screenFactory.NewSimulationScreen("UTF-8")
	if err := lib.Init(); err != nil {
		t.Fatalf("test: init sim: %v", err)
	}
	lib.SetSize(width, height)
	tt := &Testing{t: t, ctx: context.Background(),
		Clock: &ManualClock{now: time.Date(
			2022, 12, 1, 0, 0, 0, 0, time.UTC)}}
	tt.drv = &testDriver{lib: lib, tt: tt}
	app, err := Init(tt.drv, append([]Option{WithClock(tt.Clock)}, oo...)...)
	if err != nil {
		t.Fatalf("test: init app: %v", err)
	}
	tt.app = app
	t.Cleanup(app.Shutdown)
	return app, tt
}

// Run runs given toplevel until all fired events are processed, see
// App.Run.
func (tt *Testing) Run(t *Toplevel) error {
	tt.app.quit = false
	return tt.app.Run(tt.ctx, t)
}

// FireResize resizes the simulation screen and returns after the
// resize event was processed.
func (tt *Testing) FireResize(width, height int) *Testing {
	tt.t.Helper()
	return tt.fire(tcell.NewEventResize(width, height))
}

// FireRune fires given rune and returns after it was processed.
func (tt *Testing) FireRune(r rune) *Testing {
	tt.t.Helper()
	return tt.fire(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

// FireKey fires given special key with given optional modifiers and
// returns after it was processed.
func (tt *Testing) FireKey(k tcell.Key, m ...tcell.ModMask) *Testing {
	tt.t.Helper()
	mod := tcell.ModNone
	for _, _m := range m {
		mod |= _m
	}
	return tt.fire(tcell.NewEventKey(k, 0, mod))
}

// FireClick fires a button-1 press and its release at given screen
// coordinates and returns after both were processed.
func (tt *Testing) FireClick(x, y int) *Testing {
	tt.t.Helper()
	return tt.fire(
		tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone),
	)
}

// Advance moves the fixture's clock by given duration and executes one
// iteration, i.e. timers which became due are called.
func (tt *Testing) Advance(d time.Duration) *Testing {
	tt.t.Helper()
	tt.Clock.Advance(d)
	if err := tt.app.Iterate(tt.ctx, false); err != nil {
		tt.t.Fatalf("test: advance: %v", err)
	}
	return tt
}

// Iterate executes one non-blocking iteration.
func (tt *Testing) Iterate() *Testing {
	tt.t.Helper()
	if err := tt.app.Iterate(tt.ctx, false); err != nil {
		tt.t.Fatalf("test: iterate: %v", err)
	}
	return tt
}

func (tt *Testing) fire(ee ...tcell.Event) *Testing {
	tt.t.Helper()
	for _, ev := range ee {
		if ev, ok := ev.(*tcell.EventResize); ok {
			tt.drv.lib.SetSize(ev.Size())
		}
		tt.drv.Post(ev)
	}
	for tt.drv.pending() {
		if err := tt.app.Iterate(tt.ctx, false); err != nil {
			tt.t.Fatalf("test: fire: %v", err)
		}
	}
	return tt
}

// String returns the test-screen's content as string with line breaks
// where a new screen line starts.  Empty lines at the end of the screen
// are not returned and empty cells at the end of a line are trimmed.
// I.e.
//
//	+-------------+
//	|             |
//	|   content   |   => "content"
//	|             |
//	+-------------+
func (tt *Testing) String() string {
	b, w, h := tt.drv.lib.GetContents()
	sb := &strings.Builder{}
	for y := 0; y < h; y++ {
		line := ""
		for x := 0; x < w; x++ {
			cell := b[y*w+x]
			if len(cell.Runes) == 0 {
				continue
			}
			line += string(cell.Runes[0])
		}
		if len(strings.TrimSpace(line)) == 0 {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(strings.TrimRight(line, " \t\r") + "\n")
	}
	return strings.TrimLeft(
		strings.TrimRight(sb.String(), " \t\r\n"), "\n")
}

// ManualClock is a Clock which only moves if it is advanced.
type ManualClock struct {
	mutex sync.Mutex
	now   time.Time
}

func (c *ManualClock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.now
}

// Advance moves the clock by given duration.
func (c *ManualClock) Advance(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = c.now.Add(d)
}

// testDriver renders to a simulation screen and reads from a queue of
// fired events.
type testDriver struct {
	lib   tcell.SimulationScreen
	tt    *Testing
	mutex sync.Mutex
	queue []tcell.Event
}

func (d *testDriver) pending() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return len(d.queue) > 0
}

func (d *testDriver) Next(
	ctx context.Context, wait time.Duration,
) (tcell.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mutex.Lock()
	if len(d.queue) > 0 {
		ev := d.queue[0]
		d.queue = d.queue[1:]
		d.mutex.Unlock()
		return ev, nil
	}
	d.mutex.Unlock()
	switch {
	case wait < 0:
		d.tt.app.Quit()
	case wait > 0:
		d.tt.Clock.Advance(wait)
	}
	return nil, nil
}

func (d *testDriver) Post(ev tcell.Event) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.queue = append(d.queue, ev)
	return nil
}

func (d *testDriver) Size() (int, int) { return d.lib.Size() }

func (d *testDriver) SetContent(
	x, y int, r rune, cc []rune, s tcell.Style,
) {
	d.lib.SetContent(x, y, r, cc, s)
}

func (d *testDriver) Clear() { d.lib.Clear() }

func (d *testDriver) Show() {
	d.lib.Show()
	d.tt.LastScreen = d.tt.String()
}

func (d *testDriver) Resize(width, height int) { d.lib.SetSize(width, height) }

func (d *testDriver) Fini() { d.lib.Fini() }
