// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/slukits/frames/lyt"
)

// App is the context of a window stack: it owns the layout tree of all
// its views, the stack of begun toplevels, the idle callbacks and
// timers and the driver it renders to and reads input from.  An App is
// created by Init and released by Shutdown.  Except for Post an App's
// methods must be called from the goroutine running its loop.
type App struct {
	drv    Driver
	tree   *lyt.Tree
	views  map[lyt.NodeID]*View
	ff     *Features
	log    *log.Logger
	clock  Clock
	cfg    *Config
	errScr *ErrScr

	tops   []*Toplevel // most recent first
	top    *Toplevel
	mdi    *Toplevel
	lastID int

	seq      Token
	idles    []*idle
	timers   []*timer
	postIter func()
	changed  bool
	quit     bool
	down     bool

	mutex  sync.Mutex
	posted []func()
}

// Clock provides the current time to an App's timers.
type Clock interface{ Now() time.Time }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures an App at initialization.
type Option func(*App)

// WithLogger sets the logger stack transitions and layout failures are
// logged to.  Logging is discarded by default.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithClock replaces the system clock for timer scheduling.
func WithClock(c Clock) Option {
	return func(a *App) {
		if c != nil {
			a.clock = c
		}
	}
}

// WithConfig applies given configuration.  Its key bindings are
// overruled by WithFeatures.
func WithConfig(c *Config) Option {
	return func(a *App) {
		if c == nil {
			return
		}
		cpy := *c
		a.cfg = &cpy
	}
}

// WithFeatures replaces the default key bindings of an App.
func WithFeatures(ff *Features) Option {
	return func(a *App) {
		if ff != nil {
			a.ff = ff
		}
	}
}

// Init creates a new App rendering to and reading from given driver.
// Init fails with ErrDriver if no driver is given and with ErrConfig if
// a given configuration's keys can't be mapped to features.
func Init(drv Driver, oo ...Option) (*App, error) {
	if drv == nil {
		return nil, fmt.Errorf("%w: init: nil driver", ErrDriver)
	}
	a := &App{
		drv:   drv,
		tree:  lyt.NewTree(),
		views: map[lyt.NodeID]*View{},
		log:   log.New(io.Discard, "frames: ", log.LstdFlags),
		clock: systemClock{},
	}
	for _, o := range oo {
		o(a)
	}
	if a.cfg == nil {
		a.cfg = DefaultConfig()
	}
	if a.ff == nil {
		ff, err := a.cfg.Features()
		if err != nil {
			return nil, err
		}
		a.ff = ff
	}
	a.SetMin(a.cfg.Screen.MinWidth, a.cfg.Screen.MinHeight)
	return a, nil
}

// Shutdown releases the App's driver.  Toplevels still on the stack
// are not ended, i.e. no lifecycle events are reported.
func (a *App) Shutdown() {
	if a.down {
		return
	}
	a.down = true
	a.log.Printf("shutdown with %d toplevel(s) on the stack",
		len(a.tops))
	a.drv.Fini()
}

// Tree returns the layout tree of the App's views.  Views are removed
// by View.Delete rather than by deleting their nodes from the tree.
func (a *App) Tree() *lyt.Tree { return a.tree }

// Features returns the key bindings of the App's features.
func (a *App) Features() *Features { return a.ff }

// Logger returns the App's logger.
func (a *App) Logger() *log.Logger { return a.log }

// Post queues given function for execution on the loop's goroutine and
// wakes a blocked input wait.  Post is the only method of an App which
// may be called from any goroutine.
func (a *App) Post(fn func()) error {
	if fn == nil {
		return nil
	}
	a.mutex.Lock()
	a.posted = append(a.posted, fn)
	a.mutex.Unlock()
	return a.drv.Post(&postEvent{when: time.Now()})
}

type postEvent struct{ when time.Time }

func (e *postEvent) When() time.Time { return e.when }

// runPosted executes posted functions in the order they were posted.
func (a *App) runPosted() {
	a.mutex.Lock()
	ff := a.posted
	a.posted = nil
	a.mutex.Unlock()
	for _, f := range ff {
		f()
	}
}

// Quit requests the App's loop to stop at the process level, i.e. all
// running Run calls return after their current iteration.
func (a *App) Quit() { a.quit = true }

// Quitting returns true if Quit was called.
func (a *App) Quitting() bool { return a.quit }

// SetMin defines the minimal expected screen size.  An error screen is
// displayed and only features are reported as long as the screen is
// smaller.
func (a *App) SetMin(width, height int) {
	a.cfg.Screen.MinWidth, a.cfg.Screen.MinHeight = width, height
	a.checkMin()
}

// ToSmall returns true if a set minimal size is greater than the
// available screen size.
func (a *App) ToSmall() bool {
	w, h := a.drv.Size()
	return w < a.cfg.Screen.MinWidth || h < a.cfg.Screen.MinHeight
}

// Size returns the size of the App's display.
func (a *App) Size() lyt.Size {
	w, h := a.drv.Size()
	return lyt.Size{Width: w, Height: h}
}
