// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"fmt"

	"github.com/slukits/frames/lyt"
)

// Toplevel is a root view which is pushed onto an App's window stack by
// Begin and popped by End.  Its states are unstarted, running and
// stopped; a stopped toplevel stays on the stack until it is ended.
type Toplevel struct {
	*View
	id        int
	running   bool
	modal     bool
	mdi       bool
	rs        *RunState
	launcher  *Toplevel
	container *Toplevel // MDI container the toplevel was begun in
	focused   *View
	sweeping  bool
	loops     int
	ready     bool
	lc        map[Lifecycle][]*lcListener
}

// TopOption configures a toplevel at construction.
type TopOption func(*Toplevel)

// AsModal makes a toplevel modal: it overlays the stack and is never
// an MDI child.
func AsModal() TopOption { return func(t *Toplevel) { t.modal = true } }

// AsMdiContainer makes a toplevel the container of the non-modal
// toplevels begun while it is on the stack.
func AsMdiContainer() TopOption { return func(t *Toplevel) { t.mdi = true } }

// WithRect makes a toplevel an absolute mode view with given
// rectangle in screen coordinates.
func WithRect(r lyt.Rect) TopOption {
	return func(t *Toplevel) {
		t.node.SetMode(lyt.ModeAbsolute)
		_ = t.node.SetRect(r) // can't fail in absolute mode
	}
}

// NewToplevel creates a toplevel filling the screen unless configured
// differently by given options.
func (a *App) NewToplevel(oo ...TopOption) *Toplevel {
	n := a.tree.New()
	// valid dimensions replacing a new node's Abs(0) never fail
	_ = n.SetWidth(lyt.Fill(0))
	_ = n.SetHeight(lyt.Fill(0))
	a.lastID++
	t := &Toplevel{View: a.newView(n), id: a.lastID,
		lc: map[Lifecycle][]*lcListener{}}
	t.tl = t
	for _, o := range oo {
		o(t)
	}
	return t
}

// ToplevelID returns the toplevel's unique id.
func (t *Toplevel) ToplevelID() int { return t.id }

// Running returns true if the toplevel was begun and not stopped.
func (t *Toplevel) Running() bool { return t.running }

// Modal returns true for a modal toplevel.
func (t *Toplevel) Modal() bool { return t.modal }

// IsMdiContainer returns true for an MDI container.
func (t *Toplevel) IsMdiContainer() bool { return t.mdi }

// IsMdiChild returns true for a non-modal toplevel which was begun
// while the MDI container was on the stack and which hasn't ended.
// Toplevels begun before the container are not its children.
func (t *Toplevel) IsMdiChild() bool {
	return t.container != nil && t.container == t.app.mdi && t.rs != nil
}

// Focused returns the view which has the focus while the toplevel is
// Current.
func (t *Toplevel) Focused() *View { return t.focused }

// RequestStop stops the toplevel itself; for the MDI container it
// starts the sweep closing all its children first.
func (t *Toplevel) RequestStop() {
	if t.app.mdi == t {
		t.app.sweep()
		return
	}
	t.app.stop(t)
}

func (t *Toplevel) String() string {
	switch {
	case t.mdi:
		return fmt.Sprintf("mdi#%d", t.id)
	case t.modal:
		return fmt.Sprintf("modal#%d", t.id)
	}
	return fmt.Sprintf("top#%d", t.id)
}

// RunState is returned by Begin and must be passed to the matching
// End.
type RunState struct {
	t     *Toplevel
	ended bool
	byRun bool
}

// Toplevel returns the toplevel the run state was created for.
func (rs *RunState) Toplevel() *Toplevel { return rs.t }

// Ended returns true if the run state was ended.
func (rs *RunState) Ended() bool { return rs.ended }
