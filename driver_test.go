// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	. "github.com/slukits/frames/internal/tst"
)

type driver struct{ Suite }

// fxDriver returns a simulation driver which is finalized after the
// test.
func fxDriver(t *T) Driver {
	t.GoT().Helper()
	drv, err := NewSimDriver(30, 7)
	t.FatalOn(err)
	t.GoT().Cleanup(drv.Fini)
	return drv
}

func (s *driver) Has_the_size_of_its_simulation_screen(t *T) {
	drv := fxDriver(t)
	w, h := drv.Size()
	t.Eq(30, w)
	t.Eq(7, h)
	drv.Resize(40, 10)
	w, h = drv.Size()
	t.Eq(40, w)
	t.Eq(10, h)
}

func (s *driver) Reports_posted_events(t *T) {
	drv := fxDriver(t)
	t.FatalOn(drv.Post(tcell.NewEventKey(tcell.KeyRune, 'x', 0)))
	for {
		ev, err := drv.Next(context.Background(), time.Second)
		t.FatalOn(err)
		if ev == nil {
			t.Fatal("expected posted event")
		}
		if kev, ok := ev.(*tcell.EventKey); ok {
			t.Eq('x', kev.Rune())
			return
		}
	}
}

func (s *driver) Returns_nil_after_waiting_without_events(t *T) {
	drv := fxDriver(t)
	ev, err := drv.Next(context.Background(), time.Millisecond)
	t.FatalOn(err)
	t.True(ev == nil)
}

func (s *driver) Fails_for_a_done_context(t *T) {
	drv := fxDriver(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := drv.Next(ctx, -1)
	t.ErrIs(err, context.Canceled)
}

func (s *driver) Fails_with_closed_input_after_being_finalized(t *T) {
	drv, err := NewSimDriver(30, 7)
	t.FatalOn(err)
	drv.Fini()
	drv.Fini()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		_, err := drv.Next(ctx, -1)
		if err == nil {
			continue
		}
		t.ErrIs(err, ErrInputClosed)
		return
	}
}

func (s *driver) Renders_to_its_screen(t *T) {
	drv := fxDriver(t)
	drv.SetContent(1, 0, 'x', nil, tcell.StyleDefault)
	drv.Show()
	sim := Lib(drv).(tcell.SimulationScreen)
	cc, w, _ := sim.GetContents()
	t.Eq('x', cc[1].Runes[0])
	t.Eq(30, w)
}

type screenFailing struct{ ScreenFactoryer }

func (f *screenFailing) NewScreen() (tcell.Screen, error) {
	return nil, errors.New("no terminal")
}

type initFailing struct{ tcell.SimulationScreen }

func (s *initFailing) Init() error { return errors.New("init failed") }

type initFailingFactory struct{ ScreenFactoryer }

func (f *initFailingFactory) NewScreen() (tcell.Screen, error) {
	return &initFailing{tcell.NewSimulationScreen("UTF-8")}, nil
}

func (s *driver) Fails_if_no_screen_can_be_obtained(t *T) {
	SetScreenFactory(&screenFailing{DefaultScreenFactory()})
	defer SetScreenFactory(DefaultScreenFactory())
	_, err := NewDriver()
	t.ErrIs(err, ErrScreen)
	t.ErrIs(err, ErrDriver)
}

func (s *driver) Fails_if_the_screen_fails_to_initialize(t *T) {
	SetScreenFactory(&initFailingFactory{DefaultScreenFactory()})
	defer SetScreenFactory(DefaultScreenFactory())
	_, err := NewDriver()
	t.ErrIs(err, ErrInit)
}

func (s *driver) Is_mandatory_for_an_app(t *T) {
	_, err := Init(nil)
	t.ErrIs(err, ErrDriver)
}

func (s *driver) Is_finalized_by_an_apps_shutdown_once(t *T) {
	drv, err := NewSimDriver(30, 7)
	t.FatalOn(err)
	app, err := Init(drv)
	t.FatalOn(err)
	app.Shutdown()
	app.Shutdown()
	_, err = drv.Next(context.Background(), -1)
	for err == nil {
		_, err = drv.Next(context.Background(), -1)
	}
	t.ErrIs(err, ErrInputClosed)
}

// TestDriver is not run in parallel since it replaces the package's
// screen factory.
func TestDriver(t *testing.T) {
	Run(&driver{}, t)
}
