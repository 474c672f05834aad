// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/slukits/frames/lyt"
)

// Label is a single line view whose width is the display width of its
// text.  Its width is measured at each layout pass, i.e. a label
// positioned by lyt.AnchorEnd stays right aligned as its text changes.
type Label struct {
	*View
	text  string
	Style tcell.Style
}

// NewLabel creates a detached label showing given text.
func (a *App) NewLabel(text string) *Label {
	l := &Label{View: a.NewView(), text: text}
	// valid dimensions replacing a new node's Abs(0) never fail
	_ = l.node.SetWidth(lyt.Func(l.measure))
	_ = l.node.SetHeight(lyt.Abs(1))
	l.OnDraw(func(_ *View, c *Canvas) { c.Print(0, 0, l.text, l.Style) })
	return l
}

// Text returns the label's text.
func (l *Label) Text() string { return l.text }

// SetText replaces the label's text; the label is laid out again with
// the next iteration.
func (l *Label) SetText(s string) {
	if s == l.text {
		return
	}
	l.text = s
	l.app.changed = true
}

func (l *Label) measure() int { return runewidth.StringWidth(l.text) }
