// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// ErrScr overlays all toplevels with a centered message while it is
// active.  It allows to report errors without loosing the content of
// the stack's toplevels.
type ErrScr struct {
	content string
	min     bool
	Active  bool
	Style   tcell.Style
}

// ErrScreen returns the App's error screen.
func (a *App) ErrScreen() *ErrScr {
	if a.errScr == nil {
		a.errScr = &ErrScr{}
	}
	return a.errScr
}

func (e *ErrScr) String() string { return e.content }

// Set replaces the error screen's message.
func (e *ErrScr) Set(s string) { e.content = s }

// ErrScreenFmt is the displayed error message for the case that a set
// minimal size is greater than the available screen size.
const ErrScreenFmt = "minimum screen-size: %dx%d"

// checkMin activates the error screen with the minimum size message if
// the screen is to small and deactivates it once it is big enough
// again.
func (a *App) checkMin() {
	if a.ToSmall() {
		es := a.ErrScreen()
		es.Set(fmt.Sprintf(ErrScreenFmt,
			a.cfg.Screen.MinWidth, a.cfg.Screen.MinHeight))
		es.Active, es.min = true, true
		return
	}
	if a.errScr != nil && a.errScr.min {
		a.errScr.Active, a.errScr.min = false, false
	}
}

func (e *ErrScr) draw(r Renderer) {
	r.Clear()
	w, h := r.Size()
	y := h / 2
	x := w/2 - runewidth.StringWidth(e.content)/2
	if x < 0 {
		x = 0
	}
	for _, c := range e.content {
		r.SetContent(x, y, c, nil, e.Style)
		x += runewidth.RuneWidth(c)
	}
}
