// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/slukits/frames/lyt"
)

// Orientation is the direction in which a split places its panes.
type Orientation uint8

const (
	// SideBySide places the second pane right of the first.
	SideBySide Orientation = iota
	// Stacked places the second pane below the first.
	Stacked
)

// Split is a container of two panes separated by a one cell divider.
// The extent of the first pane is a single offset which is either
// Absolute or a Percent of the split's extent; the second pane fills
// the rest.
type Split struct {
	*View
	first, second, divider *View
	orientation            Orientation
	offset                 lyt.Expr
	DividerStyle           tcell.Style
}

// NewSplit creates a split filling its parent whose panes are given
// views.  The first pane's offset is 50 percent.
func (a *App) NewSplit(o Orientation, first, second *View) (*Split, error) {
	s := &Split{View: a.NewView(), orientation: o,
		offset: lyt.MustPercent(50, false), divider: a.NewView()}
	s.first, s.second = first, second
	if err := s.Add(first, s.divider, second); err != nil {
		return nil, err
	}
	pos, dim, cross := (*View).SetX, (*View).SetWidth, (*View).SetHeight
	end := lyt.Right
	if o == Stacked {
		pos, dim, cross = (*View).SetY, (*View).SetHeight, (*View).SetWidth
		end = lyt.Bottom
	}
	for _, x := range []struct {
		set func(*View, lyt.Expr) error
		v   *View
		e   lyt.Expr
	}{
		{(*View).SetWidth, s.View, lyt.Fill(0)},
		{(*View).SetHeight, s.View, lyt.Fill(0)},
		{cross, first, lyt.Fill(0)},
		{cross, s.divider, lyt.Fill(0)},
		{cross, second, lyt.Fill(0)},
		{dim, first, lyt.Func(s.offsetSize)},
		{pos, s.divider, end(first.ID())},
		{dim, s.divider, lyt.Abs(1)},
		{pos, second, end(s.divider.ID())},
		{dim, second, lyt.Fill(0)},
	} {
		if err := x.set(x.v, x.e); err != nil {
			return nil, fmt.Errorf("split: %w", err)
		}
	}
	s.divider.OnDraw(s.drawDivider)
	return s, nil
}

// Offset returns the expression of the first pane's extent.
func (s *Split) Offset() lyt.Expr { return s.offset }

// SetOffset replaces the expression of the first pane's extent.  It
// fails with lyt.ErrInvalidExpr unless given expression is Absolute or
// a Percent of the split's extent.
func (s *Split) SetOffset(e lyt.Expr) error {
	if err := lyt.ValidateSplitOffset(e); err != nil {
		return fmt.Errorf("split: %w", err)
	}
	s.offset = e
	s.app.changed = true
	return nil
}

// First returns the first pane.
func (s *Split) First() *View { return s.first }

// Second returns the second pane.
func (s *Split) Second() *View { return s.second }

// offsetSize evaluates the offset against the split's resolved extent
// which is resolved before its panes.
func (s *Split) offsetSize() int {
	extent := s.Frame().Width
	if s.orientation == Stacked {
		extent = s.Frame().Height
	}
	switch o := s.offset.(type) {
	case lyt.Absolute:
		return o.N
	case lyt.Percent:
		return int(math.Floor(float64(extent) * o.Factor() / 100))
	}
	return 0
}

func (s *Split) drawDivider(_ *View, c *Canvas) {
	r := tcell.RuneVLine
	if s.orientation == Stacked {
		r = tcell.RuneHLine
	}
	c.Fill(r, s.DividerStyle)
}
