// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import "github.com/gdamore/tcell/v2"

// Env is an environment provided to event listeners when they are
// called back.  It provides the App, the view the listener was
// registered at and the tcell-event which triggered the callback.
//
// NOTE it is not save to provide an Env instance to an other go
// routine.  Use App.Post to get back on the loop's goroutine instead:
//
//	func (c *myCmp) listener(e *frames.Env) {
//	    go myVeryHeavyOperation(e.App, c.answer)
//	}
//
//	func myVeryHeavyOperation(app *frames.App, l *frames.Label) {
//	    var theAnswer int
//	    // implementation of very heavy operation to find the answer
//	    app.Post(func() { l.SetText(fmt.Sprint(theAnswer)) })
//	}
type Env struct {

	// App is the App instance reporting the event.
	App *App

	// View is the view the reported listener is registered at.
	View *View

	// Evt is the tcell-event triggering the creation of a receiving
	// environment to report it back to a registered listener.
	Evt tcell.Event

	stopBubbling bool
}

// StopBubbling prevents the reported event from being reported to the
// ancestors of the view the receiving environment belongs to.
func (e *Env) StopBubbling() { e.stopBubbling = true }

// Toplevel returns the toplevel of the environment's view.
func (e *Env) Toplevel() *Toplevel {
	if e.View == nil {
		return nil
	}
	return e.View.Toplevel()
}

func (e *Env) reset() {
	e.App = nil
	e.View = nil
	e.Evt = nil
}
