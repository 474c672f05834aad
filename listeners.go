// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Listener is the most common type of listener: a callback provided
// with the environment of the view it was registered at.
type Listener = func(*Env)

// KBListener is a keyboard callback provided with the environment and
// all information about the received key event as reported by tcell.
type KBListener = func(*Env, rune, tcell.Key, tcell.ModMask)

// Listeners is the set of input listeners registered at a view mapped
// to their events.  A view's listeners are reported in the loop's
// goroutine only, i.e. Listeners are not concurrency save.
type Listeners struct {
	isFeature func(k tcell.Key, m tcell.ModMask, r rune) bool
	kk        map[tcell.ModMask]map[tcell.Key]Listener
	rr        map[rune]Listener
	kb        KBListener
	mouse     Listener
	focus     Listener
	blur      Listener
}

// NewListeners creates a new listeners instance whereas given features
// define the runes and keys which may not be used for listener
// registration.  If ff is nil DefaultFeatures is used.
func NewListeners(ff *Features) *Listeners {
	if ff == nil {
		ff = DefaultFeatures
	}
	return &Listeners{
		isFeature: func(k tcell.Key, m tcell.ModMask, r rune) bool {
			if k == tcell.KeyRune {
				return ff.HasRune(r)
			}
			return ff.HasKey(k, m)
		},
		rr: map[rune]Listener{},
		kk: map[tcell.ModMask]map[tcell.Key]Listener{},
	}
}

// ErrEvents is the general type for errors at listener registration.
var ErrEvents = errors.New("add event")

// ErrZeroRune for attempting to register for the zero-rune.
var ErrZeroRune = fmt.Errorf("%w: can't register zero-rune", ErrEvents)

// ErrZeroKey for attempting to register for the zero-key
var ErrZeroKey = fmt.Errorf("%w: can't register zero-key", ErrEvents)

// ErrFeature for attempting to register for a key/rune which is
// associated with a feature.
var ErrFeature = fmt.Errorf("%w: associated with a feature", ErrEvents)

// ErrExists for attempting to register for a key/rune which is already
// registered.
var ErrExists = fmt.Errorf("%w: already registered", ErrEvents)

// Rune registers provided listener for given rune respectively removes
// the registration for given rune if the listener is nil.  Rune fails
// if already a listener is registered for given rune or if the zero
// rune is given or if given rune is associated with a feature.
func (kk *Listeners) Rune(r rune, l Listener) error {
	if l == nil {
		delete(kk.rr, r)
		return nil
	}

	if r == rune(0) {
		return ErrZeroRune
	}
	if kk.isFeature(tcell.KeyRune, tcell.ModNone, r) {
		return fmt.Errorf("%w: %c", ErrFeature, r)
	}
	if _, ok := kk.rr[r]; ok {
		return fmt.Errorf("%w: %c", ErrExists, r)
	}

	kk.rr[r] = l
	return nil
}

// Keyboard listener shadows all other rune/key listeners of a view
// until it is removed by Keyboard(nil).  Features are never reported to
// a keyboard listener.
func (kk *Listeners) Keyboard(l KBListener) { kk.kb = l }

// KBListener returns the registered keyboard listener or nil.
func (kk *Listeners) KBListener() KBListener { return kk.kb }

// Key registers provided listener for given key/mode combination
// respectively removes the registration for given key/mode if the
// listener is nil.  Key fails if already a listener is registered for
// given key/mode or if the zero key is given or if given key is
// associated with a feature.
func (kk *Listeners) Key(k tcell.Key, m tcell.ModMask, l Listener) error {
	k, m = normalize(k, m)
	if l == nil {
		if kk.kk[m] != nil {
			delete(kk.kk[m], k)
		}
		return nil
	}

	if k == tcell.KeyNUL {
		return ErrZeroKey
	}
	if kk.isFeature(k, m, 0) {
		return fmt.Errorf("%w: %s", ErrFeature, tcell.KeyNames[k])
	}

	if kk.kk[m] == nil {
		kk.kk[m] = map[tcell.Key]Listener{k: l}
		return nil
	}

	if _, ok := kk.kk[m][k]; ok {
		return fmt.Errorf("%w: %s", ErrExists, tcell.KeyNames[k])
	}

	kk.kk[m][k] = l
	return nil
}

// KeyListenerOf returns the listener registered for given key/mode
// combination.  The second return value is false if no listener is
// registered for given key.
func (kk *Listeners) KeyListenerOf(
	k tcell.Key, m tcell.ModMask,
) (Listener, bool) {
	k, m = normalize(k, m)
	if _, ok := kk.kk[m]; !ok {
		return nil, false
	}
	l, ok := kk.kk[m][k]
	return l, ok
}

// RuneListenerOf returns the listener registered for given rune.  The
// second return value is false if no listener is registered for given
// rune.
func (kk *Listeners) RuneListenerOf(r rune) (Listener, bool) {
	l, ok := kk.rr[r]
	return l, ok
}

// HasKBListener is true if a KBListener is registered.
func (kk *Listeners) HasKBListener() bool { return kk.kb != nil }

// Mouse registers given listener for mouse events respectively removes
// it if nil.
func (kk *Listeners) Mouse(l Listener) { kk.mouse = l }

// Focus registers given listener which is called when the view gains
// the focus respectively removes it if nil.
func (kk *Listeners) Focus(l Listener) { kk.focus = l }

// Blur registers given listener which is called when the view looses
// the focus respectively removes it if nil.
func (kk *Listeners) Blur(l Listener) { kk.blur = l }

// reportKey reports given key event to the registered listeners and
// returns true if a listener was found.
func (kk *Listeners) reportKey(env *Env, ev *tcell.EventKey) bool {
	if kk.kb != nil {
		kk.kb(env, ev.Rune(), ev.Key(), ev.Modifiers())
		return true
	}
	if ev.Key() == tcell.KeyRune {
		if l, ok := kk.RuneListenerOf(ev.Rune()); ok {
			l(env)
			return true
		}
		return false
	}
	if l, ok := kk.KeyListenerOf(ev.Key(), ev.Modifiers()); ok {
		l(env)
		return true
	}
	return false
}
