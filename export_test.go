// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import "github.com/gdamore/tcell/v2"

type ScreenFactoryer = screenFactoryer

// SetScreenFactory allows to mock up tcell's screen generation for
// error handling testing.  Provided factory instance must implement
// NewScreen() (tcell.Screen, error)
// NewSimulationScreen() tcell.Screen
func SetScreenFactory(f ScreenFactoryer) {
	screenFactory = f
}

func DefaultScreenFactory() ScreenFactoryer {
	return &defaultFactory{}
}

// Lib returns the tcell screen of a driver created by NewDriver or
// NewSimDriver.
func Lib(d Driver) tcell.Screen { return d.(*tcellDriver).lib }

// Normalize exposes the key normalization of features and listeners.
func Normalize(k tcell.Key, m tcell.ModMask) (tcell.Key, tcell.ModMask) {
	return normalize(k, m)
}
