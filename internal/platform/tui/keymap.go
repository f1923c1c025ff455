package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starmap/internal/core"
)

// holdTime is how long a key press counts as held. Terminals report
// presses and auto-repeats but never releases.
const holdTime = 0.22

// KeyMap defines the key bindings for the play view.
type KeyMap struct {
	TurnLeft    key.Binding
	TurnRight   key.Binding
	Thrust      key.Binding
	Back        key.Binding
	StrafeLeft  key.Binding
	StrafeRight key.Binding
	Boost       key.Binding
	Fire        key.Binding

	Confirm    key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Abort      key.Binding
	Quit       key.Binding
	Screenshot key.Binding
	Copy       key.Binding
	Help       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Thrust, k.TurnLeft, k.TurnRight, k.Fire, k.Boost, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Thrust, k.Back, k.TurnLeft, k.TurnRight},
		{k.StrafeLeft, k.StrafeRight, k.Boost, k.Fire},
		{k.Confirm, k.Pause, k.Restart, k.Abort},
		{k.Screenshot, k.Copy, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		TurnLeft: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "turn left"),
		),
		TurnRight: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "turn right"),
		),
		Thrust: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "thrust"),
		),
		Back: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "reverse"),
		),
		StrafeLeft: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "strafe left"),
		),
		StrafeRight: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "strafe right"),
		),
		Boost: key.NewBinding(
			key.WithKeys("shift+up", "f"),
			key.WithHelp("f", "boost"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "launch/fire"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start/continue"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry run"),
		),
		Abort: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "abort run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy frame"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// control is a held ship control.
type control int

const (
	ctlTurnLeft control = iota
	ctlTurnRight
	ctlThrust
	ctlBack
	ctlStrafeLeft
	ctlStrafeRight
	ctlBoost
	ctlFire
	numControls
)

// Controls turns key presses into a per-frame Intent. Each press keeps its
// control held for holdTime; auto-repeat refreshes it. A launch request
// stays pending until ConsumeLaunch.
type Controls struct {
	held   [numControls]float64
	fresh  [numControls]bool
	launch bool
	invert bool
}

// NewControls creates an empty control state. invert swaps thrust and
// reverse.
func NewControls(invert bool) *Controls {
	return &Controls{invert: invert}
}

// Press records a key press. It reports whether the key was a ship control.
func (c *Controls) Press(msg tea.KeyMsg, km KeyMap) bool {
	var ctl control
	switch {
	case key.Matches(msg, km.TurnLeft):
		ctl = ctlTurnLeft
	case key.Matches(msg, km.TurnRight):
		ctl = ctlTurnRight
	case key.Matches(msg, km.Thrust):
		ctl = ctlThrust
	case key.Matches(msg, km.Back):
		ctl = ctlBack
	case key.Matches(msg, km.StrafeLeft):
		ctl = ctlStrafeLeft
	case key.Matches(msg, km.StrafeRight):
		ctl = ctlStrafeRight
	case key.Matches(msg, km.Boost):
		ctl = ctlBoost
	case key.Matches(msg, km.Fire):
		ctl = ctlFire
		if c.held[ctlFire] <= 0 {
			c.launch = true
		}
	default:
		return false
	}
	c.held[ctl] = holdTime
	c.fresh[ctl] = true
	return true
}

// Intent ages held keys by dt and builds the intent for the next frame. A
// key pressed since the previous frame always counts, even when dt exceeds
// holdTime.
func (c *Controls) Intent(dt float64) core.Intent {
	for i := range c.held {
		c.held[i] -= dt
	}
	on := func(ctl control) bool { return c.fresh[ctl] || c.held[ctl] > 0 }

	in := core.Intent{
		TurnLeft:    on(ctlTurnLeft),
		TurnRight:   on(ctlTurnRight),
		StrafeLeft:  on(ctlStrafeLeft),
		StrafeRight: on(ctlStrafeRight),
		Boost:       on(ctlBoost),
		Shoot:       on(ctlFire),
		Launch:      c.launch,
	}
	fwd, back := ctlThrust, ctlBack
	if c.invert {
		fwd, back = back, fwd
	}
	if on(fwd) {
		in.Thrust = core.KeyThrustStrength
	}
	if on(back) {
		in.Back = core.KeyBackStrength
	}
	if in.StrafeLeft || in.StrafeRight {
		in.Strafe = core.KeyStrafeStrength
	}

	c.fresh = [numControls]bool{}
	return in
}

// ConsumeLaunch drops the pending launch request.
func (c *Controls) ConsumeLaunch() {
	c.launch = false
}

// Release drops every held key.
func (c *Controls) Release() {
	c.held = [numControls]float64{}
	c.fresh = [numControls]bool{}
	c.launch = false
}

// MapAction translates a key message to a run-level action.
func (km KeyMap) MapAction(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, km.Quit):
		return core.ActionQuit
	case key.Matches(msg, km.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, km.Pause):
		return core.ActionPause
	case key.Matches(msg, km.Restart):
		return core.ActionRestart
	case key.Matches(msg, km.Abort):
		return core.ActionAbort
	}
	return core.ActionNone
}
