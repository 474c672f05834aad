// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"fmt"
	"testing"

	. "github.com/slukits/frames/internal/tst"
	"github.com/slukits/frames/lyt"
)

// recorder records the lifecycle notifications of toplevels.
type recorder struct{ ee []string }

func (r *recorder) on(tt ...*Toplevel) *recorder {
	for _, t := range tt {
		t := t
		for lc := Loaded; lc <= Deactivate; lc++ {
			t.On(lc, func(e *LcEvent) {
				r.ee = append(r.ee, fmt.Sprintf("%s:%s", t, e.Type))
			})
		}
	}
	return r
}

func (r *recorder) reset() { r.ee = nil }

func begin(t *T, app *App, tt ...*Toplevel) []*RunState {
	t.GoT().Helper()
	rr := []*RunState{}
	for _, tl := range tt {
		rs, err := app.Begin(tl)
		t.FatalOn(err)
		rr = append(rr, rs)
	}
	return rr
}

type stack struct{ Suite }

func (s *stack) SetUp(t *T) { t.Parallel() }

func (s *stack) Begin_fails_for_a_nil_toplevel(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	_, err := app.Begin(nil)
	t.ErrIs(err, ErrNilToplevel)
	t.True(app.Current() == nil)
}

func (s *stack) Begin_makes_a_toplevel_current_and_running(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	top := app.NewToplevel()
	t.False(top.Running())
	rs, err := app.Begin(top)
	t.FatalOn(err)
	t.Eq(top, rs.Toplevel())
	t.Eq(top, app.Current())
	t.Eq(top, app.Top())
	t.True(top.Running())
}

func (s *stack) Begin_lays_a_toplevel_out_against_the_display(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	top := app.NewToplevel()
	begin(t, app, top)
	t.Eq("(0,0,20,5)", top.Frame())
}

func (s *stack) Begin_fails_for_a_begun_toplevel(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	top := app.NewToplevel()
	begin(t, app, top)
	_, err := app.Begin(top)
	t.ErrIs(err, ErrBegun)
	t.Eq(1, len(app.Toplevels()))
}

func (s *stack) Begin_fails_for_a_toplevel_with_a_parent(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	a, b := app.NewToplevel(), app.NewToplevel()
	t.FatalOn(a.Add(b.View))
	_, err := app.Begin(b)
	t.ErrIs(err, ErrBegun)
}

func (s *stack) Begin_leaves_the_stack_unchanged_on_layout_errors(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	top, v := app.NewToplevel(), app.NewView()
	t.FatalOn(top.Add(v))
	t.FatalOn(v.SetWidth(lyt.Width(v.ID())))
	_, err := app.Begin(top)
	t.Err(err)
	t.Eq(0, len(app.Toplevels()))
	t.False(top.Running())
}

func (s *stack) Accepts_only_one_mdi_container_at_a_time(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	c1 := app.NewToplevel(AsMdiContainer())
	c2 := app.NewToplevel(AsMdiContainer())
	rr := begin(t, app, c1)
	_, err := app.Begin(c2)
	t.ErrIs(err, ErrMdiContainer)
	t.Eq(c1, app.Current())

	t.FatalOn(app.End(rr[0]))
	_, err = app.Begin(c2)
	t.FatalOn(err)
	t.Eq(c2, app.Top())
}

func (s *stack) End_fails_for_a_toplevel_not_on_top(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	a, b := app.NewToplevel(), app.NewToplevel()
	rr := begin(t, app, a, b)
	t.ErrIs(app.End(rr[0]), ErrNotTop)
	t.Eq(2, len(app.Toplevels()))
	t.Eq(b, app.Current())
	t.True(a.Running())
}

func (s *stack) End_fails_for_an_ended_run_state(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	rr := begin(t, app, app.NewToplevel())
	t.FatalOn(app.End(rr[0]))
	t.True(rr[0].Ended())
	t.ErrIs(app.End(rr[0]), ErrEnded)
	t.ErrIs(app.End(nil), ErrNilToplevel)
}

func (s *stack) Restores_current_after_nested_begin_end_pairs(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	base := app.NewToplevel()
	begin(t, app, base)
	a, b, c := app.NewToplevel(), app.NewToplevel(AsModal()),
		app.NewToplevel(AsModal())

	ra := begin(t, app, a)[0]
	rb := begin(t, app, b)[0]
	t.FatalOn(app.End(rb))
	t.Eq(a, app.Current())
	rc := begin(t, app, c)[0]
	t.FatalOn(app.End(rc))
	t.FatalOn(app.End(ra))

	t.Eq(base, app.Current())
	t.Eq(base, app.Top())
	t.Eq(1, len(app.Toplevels()))
}

func (s *stack) Reports_lifecycle_of_begin_and_end(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	base, m := app.NewToplevel(), app.NewToplevel(AsModal())
	begin(t, app, base)
	r := (&recorder{}).on(base, m)

	rs := begin(t, app, m)[0]
	t.Eq(fmt.Sprint([]string{"modal#2:Loaded", "top#1:Deactivate",
		"modal#2:Activate"}), fmt.Sprint(r.ee))

	r.reset()
	t.FatalOn(app.End(rs))
	t.Eq(fmt.Sprint([]string{"modal#2:Unloaded", "modal#2:Closed",
		"modal#2:Deactivate", "top#1:Activate"}), fmt.Sprint(r.ee))
}

func (s *stack) Removes_lifecycle_listeners_once(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	top, loaded := app.NewToplevel(), 0
	tkn := top.On(Loaded, func(*LcEvent) { loaded++ })
	t.True(top.Off(tkn))
	t.False(top.Off(tkn))
	begin(t, app, top)
	t.Eq(0, loaded)
}

func (s *stack) Stops_the_current_toplevel_which_stays_current(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	a, b := app.NewToplevel(), app.NewToplevel()
	begin(t, app, a, b)
	app.RequestStop(nil)
	t.False(b.Running())
	t.True(a.Running())
	t.Eq(b, app.Current())
}

func (s *stack) Stops_current_regardless_of_target_without_mdi(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	a, b := app.NewToplevel(), app.NewToplevel()
	begin(t, app, a, b)
	app.RequestStop(a)
	t.True(a.Running())
	t.False(b.Running())
}

func (s *stack) Stops_the_receiving_toplevel_itself(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	a, b := app.NewToplevel(), app.NewToplevel()
	begin(t, app, a, b)
	a.RequestStop()
	t.False(a.Running())
	t.True(b.Running())
}

func (s *stack) Cancels_a_stop_by_a_closing_listener(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	top := app.NewToplevel()
	begin(t, app, top)
	top.On(Closing, func(e *LcEvent) { e.Cancel() })
	app.RequestStop(nil)
	t.True(top.Running())
}

func (s *stack) Orders_mdi_children_most_recent_first(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	t.True(app.MdiChildren() == nil)
	c := app.NewToplevel(AsMdiContainer())
	c1, c2, c3 := app.NewToplevel(), app.NewToplevel(), app.NewToplevel()
	begin(t, app, c, c1, c2, c3)

	t.Eq(fmt.Sprint([]*Toplevel{c3, c2, c1}), fmt.Sprint(app.MdiChildren()))
	t.Eq(c3, app.Current())
	t.Eq(c, app.Top())
	t.True(c1.IsMdiChild())
	t.False(c.IsMdiChild())
}

func (s *stack) Moves_stopped_mdi_children_ahead_at_iteration_end(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	c := app.NewToplevel(AsMdiContainer())
	c1, c2, c3 := app.NewToplevel(), app.NewToplevel(), app.NewToplevel()
	begin(t, app, c, c1, c2, c3)

	app.RequestStop(c1)
	t.False(c1.Running())
	t.Eq(c3, app.Current())
	t.Eq(fmt.Sprint([]*Toplevel{c3, c2, c1}), fmt.Sprint(app.MdiChildren()))

	tt.Iterate()
	t.Eq(fmt.Sprint([]*Toplevel{c1, c3, c2}), fmt.Sprint(app.MdiChildren()))
	t.Eq(c1, app.Current())
}

func (s *stack) Keeps_mdi_children_when_a_modal_overlays_them(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	c := app.NewToplevel(AsMdiContainer())
	c1, c2 := app.NewToplevel(), app.NewToplevel()
	m := app.NewToplevel(AsModal())
	begin(t, app, c, c1, c2)
	r := (&recorder{}).on(c)

	rs := begin(t, app, m)[0]
	t.Eq(2, len(app.MdiChildren()))
	t.False(m.IsMdiChild())
	t.False(c.IsMdiChild())
	t.Eq(m, app.Current())
	t.Eq(0, len(r.ee))

	t.FatalOn(app.End(rs))
	t.Eq(c2, app.Current())
}

func (s *stack) Reports_loaded_and_unloaded_children_to_the_container(
	t *T,
) {
	app, _ := Test(t.GoT(), 20, 5)
	c, c1 := app.NewToplevel(AsMdiContainer()), app.NewToplevel()
	begin(t, app, c)
	loaded, unloaded := []*Toplevel{}, []*Toplevel{}
	c.On(ChildLoaded, func(e *LcEvent) { loaded = append(loaded, e.Other) })
	c.On(ChildUnloaded, func(e *LcEvent) {
		unloaded = append(unloaded, e.Other)
	})
	rs := begin(t, app, c1)[0]
	t.FatalOn(app.End(rs))
	t.Eq(fmt.Sprint([]*Toplevel{c1}), fmt.Sprint(loaded))
	t.Eq(fmt.Sprint([]*Toplevel{c1}), fmt.Sprint(unloaded))
}

func (s *stack) Activates_an_mdi_child(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	c := app.NewToplevel(AsMdiContainer())
	c1, c2, c3 := app.NewToplevel(), app.NewToplevel(), app.NewToplevel()
	begin(t, app, c, c1, c2, c3)
	r := (&recorder{}).on(c1, c3)

	t.FatalOn(app.Activate(c1))
	t.Eq(c1, app.Current())
	t.Eq(fmt.Sprint([]*Toplevel{c1, c3, c2}), fmt.Sprint(app.MdiChildren()))
	t.Eq(fmt.Sprint([]string{"top#4:Deactivate", "top#2:Activate"}),
		fmt.Sprint(r.ee))
}

func (s *stack) Activate_fails_for_non_children_and_overlaying_modals(
	t *T,
) {
	app, _ := Test(t.GoT(), 20, 5)
	c := app.NewToplevel(AsMdiContainer())
	c1, c2 := app.NewToplevel(), app.NewToplevel()
	m := app.NewToplevel(AsModal())
	begin(t, app, c, c1, c2)

	t.ErrIs(app.Activate(c), ErrNotMdiChild)
	t.ErrIs(app.Activate(m), ErrNotMdiChild)
	t.ErrIs(app.Activate(nil), ErrNilToplevel)

	begin(t, app, m)
	t.ErrIs(app.Activate(c1), ErrModalActive)
	t.Eq(m, app.Current())
}

func (s *stack) Cycles_mdi_children_with_window_features(t *T) {
	app, tt := Test(t.GoT(), 20, 5)
	c := app.NewToplevel(AsMdiContainer())
	c1, c2, c3 := app.NewToplevel(), app.NewToplevel(), app.NewToplevel()
	begin(t, app, c, c1, c2, c3)

	nextWindow := DefaultFeatures.KeysOf(FtNextWindow)[0]
	tt.FireKey(nextWindow.Key, nextWindow.Mod)
	t.Eq(c2, app.Current())
	tt.FireKey(nextWindow.Key, nextWindow.Mod)
	t.Eq(c1, app.Current())
	tt.FireKey(nextWindow.Key, nextWindow.Mod)
	t.Eq(c3, app.Current())

	prevWindow := DefaultFeatures.KeysOf(FtPrevWindow)[0]
	tt.FireKey(prevWindow.Key, prevWindow.Mod)
	t.Eq(c1, app.Current())
	tt.FireKey(prevWindow.Key, prevWindow.Mod)
	t.Eq(c2, app.Current())
	t.Eq(3, len(app.MdiChildren()))
}

func (s *stack) Sweeps_mdi_children_before_stopping_the_container(
	t *T,
) {
	app, _ := Test(t.GoT(), 20, 5)
	c := app.NewToplevel(AsMdiContainer())
	c1, c2 := app.NewToplevel(), app.NewToplevel()
	rr := begin(t, app, c, c1, c2)
	r := (&recorder{}).on(c)

	app.RequestStop(c)
	t.False(c1.Running())
	t.False(c2.Running())
	t.True(c.Running())

	t.FatalOn(app.End(rr[2]))
	t.True(c.Running())
	t.FatalOn(app.End(rr[1]))
	t.False(c.Running())
	t.Eq(fmt.Sprint([]string{
		"mdi#1:ChildUnloaded", "mdi#1:ChildUnloaded", "mdi#1:Activate",
		"mdi#1:AllChildClosed", "mdi#1:Closing",
	}), fmt.Sprint(r.ee))
}

func (s *stack) Aborts_a_sweep_if_a_child_cancels_closing(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	c := app.NewToplevel(AsMdiContainer())
	c1, c2, c3 := app.NewToplevel(), app.NewToplevel(), app.NewToplevel()
	begin(t, app, c, c1, c2, c3)
	c2.On(Closing, func(e *LcEvent) { e.Cancel() })

	c.RequestStop()
	t.False(c3.Running())
	t.True(c2.Running())
	t.True(c1.Running())
	t.True(c.Running())
}

func (s *stack) Stops_a_container_without_children_directly(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	c := app.NewToplevel(AsMdiContainer())
	begin(t, app, c)
	app.RequestStop(nil)
	t.False(c.Running())
}

func (s *stack) Excludes_toplevels_begun_before_the_container(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	base, c, k := app.NewToplevel(), app.NewToplevel(AsMdiContainer()),
		app.NewToplevel()
	rr := begin(t, app, base, c, k)
	t.False(base.IsMdiChild())
	t.True(k.IsMdiChild())
	t.Eq(fmt.Sprint([]*Toplevel{k}), fmt.Sprint(app.MdiChildren()))
	t.ErrIs(app.Activate(base), ErrNotMdiChild)
	t.Eq(fmt.Sprint([]*Toplevel{k, c, base}), fmt.Sprint(app.Toplevels()))

	allClosed := false
	c.On(AllChildClosed, func(*LcEvent) { allClosed = true })
	app.RequestStop(c)
	t.True(base.Running())
	t.False(k.Running())
	t.FatalOn(app.End(rr[2]))
	t.True(allClosed)
	t.False(c.Running())
	t.True(base.Running())
}

func (s *stack) Forgets_mdi_membership_at_end(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	c, k := app.NewToplevel(AsMdiContainer()), app.NewToplevel()
	rr := begin(t, app, c, k)
	t.FatalOn(app.End(rr[1]))
	t.False(k.IsMdiChild())
	t.FatalOn(app.End(rr[0]))

	begin(t, app, k)
	t.False(k.IsMdiChild())
	t.True(app.MdiChildren() == nil)
}

func (s *stack) Cascades_a_launchers_stop_one_level(t *T) {
	app, _ := Test(t.GoT(), 20, 5)
	b, c := app.NewToplevel(), app.NewToplevel()
	d := app.NewToplevel(AsModal())
	rr := begin(t, app, b, c, d)
	closing := 0
	c.On(Closing, func(*LcEvent) { closing++ })

	c.RequestStop()
	t.False(c.Running())
	t.Eq(d, app.Current())
	app.RequestStop(nil)
	t.False(d.Running())
	t.FatalOn(app.End(rr[2]))

	t.Eq(c, app.Current())
	t.False(c.Running())
	app.RequestStop(c)
	t.Eq(1, closing)

	t.FatalOn(app.End(rr[1]))
	t.Eq(b, app.Current())
	t.True(b.Running())
}

func TestStack(t *testing.T) {
	t.Parallel()
	Run(&stack{}, t)
}
