// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	. "github.com/slukits/frames/internal/tst"
	"github.com/slukits/frames/lyt"
)

type loop struct{ Suite }

func (s *loop) SetUp(t *T) { t.Parallel() }

func (s *loop) Calls_idle_callbacks_in_registration_order(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	calls := []string{}
	idle := func(name string, keep bool) func() bool {
		return func() bool {
			calls = append(calls, name)
			return keep
		}
	}
	app.AddIdle(idle("1", true))
	app.AddIdle(idle("2", false))
	app.AddIdle(idle("3", true))
	t.True(app.HasIdles())

	tt.Iterate().Iterate()
	t.Eq("[1 2 3 1 3]", fmt.Sprint(calls))
}

func (s *loop) Skips_an_idle_callback_removed_during_the_iteration(
	t *T,
) {
	app, tt := Test(t.GoT(), 20, 5)
	var second Token
	removed, called := false, false
	app.AddIdle(func() bool { removed = app.RemoveIdle(second); return true })
	second = app.AddIdle(func() bool { called = true; return true })
	tt.Iterate()
	t.True(removed)
	t.False(called)
}

func (s *loop) Removes_an_idle_callback_once(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	tkn := app.AddIdle(func() bool { return true })
	t.True(app.RemoveIdle(tkn))
	t.False(app.RemoveIdle(tkn))
	t.False(app.HasIdles())
}

func (s *loop) Fires_due_timers_in_expiry_order(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	calls := []string{}
	timer := func(name string) func() bool {
		return func() bool { calls = append(calls, name); return false }
	}
	app.AddTimeout(20*time.Millisecond, timer("a"))
	app.AddTimeout(10*time.Millisecond, timer("b"))
	app.AddTimeout(10*time.Millisecond, timer("c"))

	tt.Advance(5 * time.Millisecond)
	t.Eq(0, len(calls))
	tt.Advance(25 * time.Millisecond)
	t.Eq("[b c a]", fmt.Sprint(calls))
}

func (s *loop) Reschedules_a_timer_returning_true(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	n := 0
	tkn := app.AddTimeout(10*time.Millisecond, func() bool {
		n++
		return n < 3
	})
	for i := 0; i < 4; i++ {
		tt.Advance(10 * time.Millisecond)
	}
	t.Eq(3, n)
	t.False(app.RemoveTimeout(tkn))
}

func (s *loop) Removes_a_timer_once(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	fired := false
	tkn := app.AddTimeout(time.Millisecond, func() bool {
		fired = true
		return false
	})
	t.True(app.RemoveTimeout(tkn))
	t.False(app.RemoveTimeout(tkn))
	tt.Advance(time.Second)
	t.False(fired)
}

func (s *loop) Removes_a_timer_from_its_own_callback(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	n, removed := 0, []bool{}
	var tkn Token
	tkn = app.AddTimeout(time.Second, func() bool {
		n++
		removed = append(removed, app.RemoveTimeout(tkn))
		return true
	})
	for i := 0; i < 3; i++ {
		tt.Advance(time.Second)
	}
	t.Eq(1, n)
	t.Eq("[true]", fmt.Sprint(removed))
	t.False(app.RemoveTimeout(tkn))
}

func (s *loop) Waits_for_the_next_timer_while_running(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	top, fired := app.NewToplevel(), false
	app.AddTimeout(time.Minute, func() bool {
		fired = true
		app.RequestStop(nil)
		return false
	})
	start := tt.Clock.Now()
	t.FatalOn(tt.Run(top))
	t.True(fired)
	t.True(tt.Clock.Now().Sub(start) >= time.Minute)
	t.True(app.Current() == nil)
}

func (s *loop) Executes_posted_functions_on_the_loop(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	executed := false
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Post(func() { executed = true })
	}()
	wg.Wait()
	tt.Iterate()
	t.True(executed)
}

func (s *loop) Calls_the_post_iteration_callback(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	n := 0
	app.SetPostIteration(func() { n++ })
	tt.Iterate().Iterate()
	t.Eq(2, n)
	app.SetPostIteration(nil)
	tt.Iterate()
	t.Eq(2, n)
}

func (s *loop) Run_begins_reports_ready_and_ends_a_toplevel(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	top := app.NewToplevel()
	t.FatalOn(top.Add(app.NewLabel("hello").View))
	r := (&recorder{}).on(top)

	t.FatalOn(tt.Run(top))
	t.Eq("hello", tt.LastScreen)
	t.True(app.Current() == nil)
	t.Eq(fmt.Sprint([]string{"top#1:Loaded", "top#1:Activate",
		"top#1:Ready", "top#1:Unloaded", "top#1:Closed",
		"top#1:Deactivate"}), fmt.Sprint(r.ee))
}

func (s *loop) Run_leaves_a_toplevel_begun_by_begin_on_the_stack(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	top := app.NewToplevel()
	begin(t, app, top)
	t.FatalOn(tt.Run(nil))
	t.Eq(top, app.Current())
	t.True(top.Running())
}

func (s *loop) Run_fails_without_a_toplevel(t *T) {
	_, tt := Test(t.GoT(), 20, 5)
	t.ErrIs(tt.Run(nil), ErrNilToplevel)
}

func (s *loop) Run_returns_the_error_of_a_done_context(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	top := app.NewToplevel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	t.ErrIs(app.Run(ctx, top), context.Canceled)
	t.True(app.Current() == nil)
}

func (s *loop) Run_ends_stopped_mdi_children(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	c := app.NewToplevel(AsMdiContainer())
	c1, c2 := app.NewToplevel(), app.NewToplevel()
	r := (&recorder{})
	c.On(Ready, func(e *LcEvent) {
		begin(t, app, c1, c2)
		r.on(c1, c2)
		app.RequestStop(c)
	})
	allClosed := false
	c.On(AllChildClosed, func(*LcEvent) { allClosed = true })

	t.FatalOn(tt.Run(c))
	t.True(allClosed)
	t.Contains(fmt.Sprint(r.ee), "top#2:Closed")
	t.Contains(fmt.Sprint(r.ee), "top#3:Closed")
	t.True(app.Current() == nil)
}

func (s *loop) Stops_the_current_toplevel_on_the_quit_feature(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	top := app.NewToplevel()
	begin(t, app, top)
	tt.FireKey(tcell.KeyCtrlQ, tcell.ModCtrl)
	t.False(top.Running())
	t.Eq(top, app.Current())
}

func (s *loop) Lays_out_views_again_on_resize(t *T) {
	app, tt := Test(t.GoT(), 80, 25)
	top, a, b := app.NewToplevel(), app.NewView(), app.NewView()
	t.FatalOn(top.Add(a, b))
	t.FatalOn(a.SetWidth(lyt.Abs(20)))
	t.FatalOn(b.SetX(lyt.Right(a.ID())))
	t.FatalOn(b.SetWidth(lyt.Fill(0)))
	begin(t, app, top)
	t.Eq(60, b.Frame().Width)

	tt.FireResize(100, 25)
	t.Eq(80, b.Frame().Width)
	t.Eq("(0,0,100,25)", top.Frame())
}

func (s *loop) Returns_layout_errors_of_an_iteration(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	top, a, b := app.NewToplevel(), app.NewView(), app.NewView()
	t.FatalOn(top.Add(a, b))
	begin(t, app, top)
	t.FatalOn(a.SetWidth(lyt.Width(b.ID())))
	t.FatalOn(b.SetWidth(lyt.Width(a.ID())))
	t.ErrIs(app.Iterate(context.Background(), false), lyt.ErrCycle)
}

func (s *loop) Draws_overlaying_toplevels_over_the_ones_below(t *T) {
	app, tt := Test(t.GoT(), 20, 3)
	base, dlg := app.NewToplevel(), app.NewToplevel(AsModal(),
		WithRect(lyt.Rect{X: 2, Y: 1, Width: 5, Height: 1}))
	t.FatalOn(base.Add(app.NewLabel("base base base").View))
	t.FatalOn(dlg.Add(app.NewLabel("dialog").View))
	begin(t, app, base, dlg)
	tt.Iterate()
	t.Eq("base base base\n  dialo", tt.String())
}

func (s *loop) Shows_the_error_screen_while_the_screen_is_to_small(
	t *T,
) {
	app, tt := Test(t.GoT(), 40, 5)
	top, v := app.NewToplevel(), app.NewView()
	v.SetFocusable(true)
	t.FatalOn(top.Add(v))
	received := false
	t.FatalOn(v.Listeners().Rune('x', func(*Env) { received = true }))
	begin(t, app, top)

	app.SetMin(50, 10)
	t.True(app.ToSmall())
	t.True(app.ErrScreen().Active)
	tt.FireRune('x')
	t.False(received)
	t.Contains(tt.String(), fmt.Sprintf(ErrScreenFmt, 50, 10))

	tt.FireResize(60, 12)
	t.False(app.ToSmall())
	t.False(app.ErrScreen().Active)
	tt.FireRune('x')
	t.True(received)
}

func TestLoop(t *testing.T) {
	t.Parallel()
	Run(&loop{}, t)
}
