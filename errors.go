// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frames

import (
	"errors"
	"fmt"
)

// ErrStack is the general type of rejected window stack operations.
// A rejected operation leaves the stack unchanged.
var ErrStack = errors.New("stack")

// ErrNilToplevel is returned if a stack operation is given no toplevel.
var ErrNilToplevel = fmt.Errorf("%w: nil toplevel", ErrStack)

// ErrBegun is returned by Begin for a toplevel which is already on the
// stack or which is not a root view.
var ErrBegun = fmt.Errorf("%w: toplevel already begun", ErrStack)

// ErrMdiContainer is returned by Begin for an MDI container while an
// other MDI container is on the stack.
var ErrMdiContainer = fmt.Errorf("%w: MDI container already active",
	ErrStack)

// ErrNotTop is returned by End for a toplevel which is not on top of
// the stack.
var ErrNotTop = fmt.Errorf("%w: toplevel not on top", ErrStack)

// ErrEnded is returned by End for a run state which was ended already.
var ErrEnded = fmt.Errorf("%w: run state already ended", ErrStack)

// ErrNotMdiChild is returned by Activate for a toplevel which is not a
// child of the active MDI container.
var ErrNotMdiChild = fmt.Errorf("%w: not an MDI child", ErrStack)

// ErrModalActive is returned by Activate while a modal toplevel
// overlays the MDI children.
var ErrModalActive = fmt.Errorf("%w: modal toplevel active", ErrStack)

// ErrDriver is the general type of failures of a render or input
// collaborator.
var ErrDriver = errors.New("driver")

// ErrScreen is returned if a terminal screen can't be obtained.
var ErrScreen = fmt.Errorf("%w: can't obtain screen", ErrDriver)

// ErrInit is returned if an obtained screen fails to initialize.
var ErrInit = fmt.Errorf("%w: can't initialize screen", ErrDriver)

// ErrInputClosed is returned by an input collaborator which won't
// report any further events.
var ErrInputClosed = fmt.Errorf("%w: input closed", ErrDriver)

// ErrConfig is returned for configuration which can't be read, parsed
// or mapped to features.
var ErrConfig = errors.New("config")
