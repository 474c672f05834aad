// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"time"

	"golang.org/x/exp/slices"
)

type idle struct {
	tkn     Token
	fn      func() bool
	removed bool
}

// AddIdle registers given callback which is called once per iteration
// before input is read.  A callback returning false is removed.  While
// idle callbacks are registered the loop doesn't block for input.
func (a *App) AddIdle(fn func() bool) Token {
	a.seq++
	a.idles = append(a.idles, &idle{tkn: a.seq, fn: fn})
	return a.seq
}

// RemoveIdle removes the idle callback registered with given token.  It
// returns false if there is no such callback, e.g. it was removed
// before.
func (a *App) RemoveIdle(tkn Token) bool {
	i := slices.IndexFunc(a.idles, func(i *idle) bool {
		return i.tkn == tkn
	})
	if i < 0 {
		return false
	}
	a.idles[i].removed = true
	a.idles = slices.Delete(slices.Clone(a.idles), i, i+1)
	return true
}

// HasIdles returns true if idle callbacks are registered.
func (a *App) HasIdles() bool { return len(a.idles) > 0 }

func (a *App) runIdles() {
	for _, i := range a.idles {
		if i.removed {
			continue
		}
		if i.fn == nil || !i.fn() {
			a.RemoveIdle(i.tkn)
		}
	}
}

type timer struct {
	tkn      Token
	interval time.Duration
	due      time.Time
	fn       func() bool
	removed  bool
}

// AddTimeout registers given callback to be called once given duration
// has passed.  A callback returning true is rescheduled with the same
// duration.  Due timers are called in the order of their expiry, ties
// are broken by registration order.
func (a *App) AddTimeout(d time.Duration, fn func() bool) Token {
	a.seq++
	a.timers = append(a.timers, &timer{tkn: a.seq, interval: d,
		due: a.clock.Now().Add(d), fn: fn})
	return a.seq
}

// RemoveTimeout removes the timer registered with given token; a timer
// may remove itself from its callback which then isn't rescheduled.
// It returns false if there is no such timer, e.g. it was removed
// before or it has fired without being rescheduled.
func (a *App) RemoveTimeout(tkn Token) bool {
	i := slices.IndexFunc(a.timers, func(t *timer) bool {
		return t.tkn == tkn
	})
	if i < 0 {
		return false
	}
	a.timers[i].removed = true
	a.timers = slices.Delete(slices.Clone(a.timers), i, i+1)
	return true
}

func (a *App) runTimers() {
	now := a.clock.Now()
	due := []*timer{}
	for _, t := range a.timers {
		if !t.due.After(now) {
			due = append(due, t)
		}
	}
	slices.SortFunc(due, func(a, b *timer) bool {
		if a.due.Equal(b.due) {
			return a.tkn < b.tkn
		}
		return a.due.Before(b.due)
	})
	for _, t := range due {
		if t.removed {
			continue
		}
		repeat := t.fn != nil && t.fn()
		if t.removed {
			continue
		}
		if !repeat {
			a.RemoveTimeout(t.tkn)
			continue
		}
		t.due = now.Add(t.interval)
	}
}

// nextTimeout returns the duration until the next timer is due and
// false if there is no timer.
func (a *App) nextTimeout() (time.Duration, bool) {
	if len(a.timers) == 0 {
		return 0, false
	}
	next := a.timers[0].due
	for _, t := range a.timers[1:] {
		if t.due.Before(next) {
			next = t.due
		}
	}
	d := next.Sub(a.clock.Now())
	if d < 0 {
		d = 0
	}
	return d, true
}

// SetPostIteration registers given callback which is called after each
// iteration's layout before the screen is redrawn; nil removes it.
func (a *App) SetPostIteration(fn func()) { a.postIter = fn }
