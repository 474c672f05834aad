// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"github.com/gdamore/tcell/v2"
	"github.com/slukits/ints"
)

// Feature classifies keys/runes which are handled by an App before
// they are reported to the focused view.
type Feature uint64

const (
	// NoFeature classifies keys/runes not registered for any feature.
	NoFeature Feature = iota
	// FtQuit requests the Current toplevel to stop.
	FtQuit
	// FtFocusNext moves the focus to the next focusable view.
	FtFocusNext
	// FtFocusPrev moves the focus to the previous focusable view.
	FtFocusPrev
	// FtNextWindow activates the next MDI child.
	FtNextWindow
	// FtPrevWindow activates the previous MDI child.
	FtPrevWindow
)

// AllFeatures lists all features an App handles.
var AllFeatures = []Feature{FtQuit, FtFocusNext, FtFocusPrev,
	FtNextWindow, FtPrevWindow}

var featureNames = map[Feature]string{
	NoFeature:    "none",
	FtQuit:       "quit",
	FtFocusNext:  "focus_next",
	FtFocusPrev:  "focus_prev",
	FtNextWindow: "next_window",
	FtPrevWindow: "prev_window",
}

func (f Feature) String() string { return featureNames[f] }

// Features maps keys and runes to the features they trigger.  The zero
// value is not ready to use; make a copy of DefaultFeatures or use
// NewFeatures.
type Features struct {
	keys  map[tcell.ModMask]map[tcell.Key]Feature
	runes map[rune]Feature
	fixed bool
}

// DefaultFeatures are the default keys of an App's features:
//
//	FtQuit: ctrl-q
//	FtFocusNext: tab
//	FtFocusPrev: backtab
//	FtNextWindow: f6
//	FtPrevWindow: shift-f6
//
// NOTE DefaultFeatures cannot be modified, a copy of them can.
var DefaultFeatures = &Features{
	keys: map[tcell.ModMask]map[tcell.Key]Feature{
		tcell.ModNone: {
			tcell.KeyCtrlQ:   FtQuit,
			tcell.KeyTab:     FtFocusNext,
			tcell.KeyBacktab: FtFocusPrev,
			tcell.KeyF6:      FtNextWindow,
		},
		tcell.ModShift: {
			tcell.KeyF6: FtPrevWindow,
		},
	},
	runes: map[rune]Feature{},
	fixed: true,
}

// NewFeatures returns a Features instance without any registration.
func NewFeatures() *Features {
	return &Features{
		keys:  map[tcell.ModMask]map[tcell.Key]Feature{},
		runes: map[rune]Feature{},
	}
}

// Copy creates a new modifiable Features instance initialized with the
// registrations of receiving Features instance.
func (ff *Features) Copy() *Features {
	cpy := NewFeatures()
	for m, kk := range ff.keys {
		cpy.keys[m] = map[tcell.Key]Feature{}
		for k, f := range kk {
			cpy.keys[m][k] = f
		}
	}
	for r, f := range ff.runes {
		cpy.runes[r] = f
	}
	return cpy
}

// Add associates given feature with given rune respectively with given
// key and modifier.  Provide the zero rune to register a key and
// tcell.KeyRune to register a rune.
func (ff *Features) Add(f Feature, r rune, k tcell.Key, m tcell.ModMask) {
	if ff.fixed || f == NoFeature {
		return
	}
	if k == tcell.KeyRune {
		if r != 0 {
			ff.runes[r] = f
		}
		return
	}
	k, m = normalize(k, m)
	if ff.keys[m] == nil {
		ff.keys[m] = map[tcell.Key]Feature{}
	}
	ff.keys[m][k] = f
}

// Del removes all keys and runes registered for given feature.
func (ff *Features) Del(f Feature) {
	if ff.fixed {
		return
	}
	for m, kk := range ff.keys {
		for k, _f := range kk {
			if _f == f {
				delete(kk, k)
			}
		}
		if len(kk) == 0 {
			delete(ff.keys, m)
		}
	}
	for r, _f := range ff.runes {
		if _f == f {
			delete(ff.runes, r)
		}
	}
}

// Registered returns the set of features currently registered.
func (ff *Features) Registered() *ints.Set {
	_ff := &ints.Set{}
	for _, kk := range ff.keys {
		for _, f := range kk {
			_ff.Add(int(f))
		}
	}
	for _, f := range ff.runes {
		_ff.Add(int(f))
	}
	return _ff
}

type FeatureKey struct {
	Mod tcell.ModMask
	Key tcell.Key
}

// KeysOf returns the keys with their modifiers for given feature.
func (ff *Features) KeysOf(f Feature) []*FeatureKey {
	kk := []*FeatureKey{}
	for m, _kk := range ff.keys {
		for k, _f := range _kk {
			if f != _f {
				continue
			}
			kk = append(kk, &FeatureKey{Mod: m, Key: k})
		}
	}
	return kk
}

// RunesOf returns the runes for given feature.
func (ff *Features) RunesOf(f Feature) []rune {
	rr := []rune{}
	for r, _f := range ff.runes {
		if f != _f {
			continue
		}
		rr = append(rr, r)
	}
	return rr
}

// HasKey returns true if given key is registered for a feature.
func (ff *Features) HasKey(k tcell.Key, m tcell.ModMask) bool {
	return ff.KeyEvent(k, m) != NoFeature
}

// HasRune returns true if given rune is registered for a feature.
func (ff *Features) HasRune(r rune) bool {
	return ff.runes[r] != NoFeature
}

// KeyEvent maps a key to its feature or to NoFeature if not registered.
func (ff *Features) KeyEvent(k tcell.Key, m tcell.ModMask) Feature {
	k, m = normalize(k, m)
	return ff.keys[m][k]
}

// RuneEvent maps a rune to its feature or to NoFeature if not
// registered.
func (ff *Features) RuneEvent(r rune) Feature {
	return ff.runes[r]
}

// normalize drops modifiers terminals report inconsistently, e.g.
// ctrl for control keys and shift for backtab.
func normalize(k tcell.Key, m tcell.ModMask) (tcell.Key, tcell.ModMask) {
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		m &^= tcell.ModCtrl
	}
	if k == tcell.KeyBacktab {
		m &^= tcell.ModShift
	}
	return k, m
}
