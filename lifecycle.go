// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import "golang.org/x/exp/slices"

// Token identifies exactly one registration of a callback.  Removing a
// registration a second time is a no-op.
type Token uint64

// Lifecycle classifies the notifications a toplevel reports about its
// stack transitions.
type Lifecycle uint8

const (
	// Loaded is reported when a toplevel was begun.
	Loaded Lifecycle = iota
	// Ready is reported at the first iteration of a toplevel's loop.
	Ready
	// Unloaded is reported when a toplevel was ended.
	Unloaded
	// Closing is reported before a toplevel stops; it is cancelable.
	Closing
	// Closed is reported after a toplevel was ended.
	Closed
	// AllChildClosed is reported to the MDI container after the last
	// child of a sweep was ended.
	AllChildClosed
	// ChildLoaded is reported to the MDI container for a begun child.
	ChildLoaded
	// ChildUnloaded is reported to the MDI container for an ended
	// child.
	ChildUnloaded
	// Activate is reported when a toplevel becomes Current.
	Activate
	// Deactivate is reported when a toplevel stops being Current.
	Deactivate
)

var lcNames = [...]string{"Loaded", "Ready", "Unloaded", "Closing",
	"Closed", "AllChildClosed", "ChildLoaded", "ChildUnloaded",
	"Activate", "Deactivate"}

func (lc Lifecycle) String() string {
	if int(lc) < len(lcNames) {
		return lcNames[lc]
	}
	return "Lifecycle(?)"
}

// LcEvent is provided to lifecycle listeners.
type LcEvent struct {
	App      *App
	Toplevel *Toplevel
	Type     Lifecycle

	// Other is the child for ChildLoaded and ChildUnloaded, the
	// toplevel becoming Current for Deactivate and the toplevel
	// loosing this status for Activate.  It is nil otherwise.
	Other *Toplevel

	canceled bool
}

// Cancel cancels a Closing toplevel's stop.
func (e *LcEvent) Cancel() {
	if e.Type == Closing {
		e.canceled = true
	}
}

// Canceled returns true if a listener canceled the event.
func (e *LcEvent) Canceled() bool { return e.canceled }

// LcListener is called back with a lifecycle event.
type LcListener = func(*LcEvent)

type lcListener struct {
	tkn Token
	l   LcListener
}

// On registers given listener for given lifecycle notification and
// returns the registration's token.
func (t *Toplevel) On(lc Lifecycle, l LcListener) Token {
	t.app.seq++
	t.lc[lc] = append(t.lc[lc], &lcListener{tkn: t.app.seq, l: l})
	return t.app.seq
}

// Off removes the registration of given token.  It returns false if
// there is no such registration, e.g. it was removed before.
func (t *Toplevel) Off(tkn Token) bool {
	for lc, ll := range t.lc {
		i := slices.IndexFunc(ll, func(l *lcListener) bool {
			return l.tkn == tkn
		})
		if i < 0 {
			continue
		}
		t.lc[lc] = slices.Delete(slices.Clone(ll), i, i+1)
		return true
	}
	return false
}

// report notifies the listeners of given lifecycle notification and
// returns false if one of them canceled it.
func (t *Toplevel) report(lc Lifecycle, other *Toplevel) bool {
	ll := t.lc[lc]
	if len(ll) == 0 {
		return true
	}
	e := &LcEvent{App: t.app, Toplevel: t, Type: lc, Other: other}
	for _, l := range ll {
		l.l(e)
	}
	return !e.canceled
}
