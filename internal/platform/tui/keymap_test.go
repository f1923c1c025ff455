package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starmap/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}

func TestMapAction(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"p", runeKey("p"), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"r", runeKey("r"), core.ActionRestart},
		{"x", runeKey("x"), core.ActionAbort},
		{"q", runeKey("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"thrust is not an action", runeKey("w"), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapAction(tt.msg); got != tt.want {
				t.Errorf("MapAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestControlsPress(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name  string
		msg   tea.KeyMsg
		check func(core.Intent) bool
	}{
		{"w thrusts", runeKey("w"), func(in core.Intent) bool { return in.Thrust == core.KeyThrustStrength }},
		{"up thrusts", tea.KeyMsg{Type: tea.KeyUp}, func(in core.Intent) bool { return in.Thrust > 0 }},
		{"s reverses", runeKey("s"), func(in core.Intent) bool { return in.Back == core.KeyBackStrength }},
		{"a turns left", runeKey("a"), func(in core.Intent) bool { return in.TurnLeft && !in.TurnRight }},
		{"right turns right", tea.KeyMsg{Type: tea.KeyRight}, func(in core.Intent) bool { return in.TurnRight }},
		{"z strafes left", runeKey("z"), func(in core.Intent) bool { return in.StrafeLeft && in.Strafe == core.KeyStrafeStrength }},
		{"c strafes right", runeKey("c"), func(in core.Intent) bool { return in.StrafeRight && in.Strafe > 0 }},
		{"f boosts", runeKey("f"), func(in core.Intent) bool { return in.Boost }},
		{"space fires and launches", spaceKey, func(in core.Intent) bool { return in.Shoot && in.Launch }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewControls(false)
			if !c.Press(tt.msg, km) {
				t.Fatalf("Press(%q) not a control", tt.msg.String())
			}
			if in := c.Intent(0.016); !tt.check(in) {
				t.Errorf("unexpected intent %+v", in)
			}
		})
	}

	c := NewControls(false)
	if c.Press(tea.KeyMsg{Type: tea.KeyEnter}, km) {
		t.Error("enter should not be a ship control")
	}
}

func TestControlsHoldExpires(t *testing.T) {
	c := NewControls(false)
	c.Press(runeKey("w"), DefaultKeyMap())

	if in := c.Intent(0.1); in.Thrust == 0 {
		t.Fatal("thrust not held on first frame")
	}
	if in := c.Intent(0.1); in.Thrust == 0 {
		t.Fatal("thrust released before hold time")
	}
	if in := c.Intent(0.1); in.Thrust != 0 {
		t.Errorf("thrust still held after %.2fs", 0.3)
	}
}

func TestControlsLaunchEdge(t *testing.T) {
	km := DefaultKeyMap()
	c := NewControls(false)

	c.Press(spaceKey, km)
	if in := c.Intent(0.016); !in.Launch {
		t.Fatal("first press did not launch")
	}
	c.ConsumeLaunch()

	// Auto-repeat while held keeps firing without a new launch edge.
	c.Press(spaceKey, km)
	in := c.Intent(0.016)
	if in.Launch {
		t.Error("repeat produced a second launch")
	}
	if !in.Shoot {
		t.Error("repeat stopped shooting")
	}

	c.Release()
	c.Press(spaceKey, km)
	if in := c.Intent(0.016); !in.Launch {
		t.Error("press after release did not launch")
	}
}

func TestControlsInvert(t *testing.T) {
	c := NewControls(true)
	c.Press(runeKey("w"), DefaultKeyMap())
	in := c.Intent(0.016)
	if in.Thrust != 0 || in.Back != core.KeyBackStrength {
		t.Errorf("inverted w: thrust=%v back=%v", in.Thrust, in.Back)
	}
}

func TestControlsLaunchPendingUntilConsumed(t *testing.T) {
	km := DefaultKeyMap()
	c := NewControls(false)
	c.Press(spaceKey, km)

	for i := range 30 {
		if in := c.Intent(0.05); !in.Launch {
			t.Fatalf("launch dropped on frame %d before it was used", i)
		}
	}
	c.ConsumeLaunch()
	if in := c.Intent(0.05); in.Launch {
		t.Error("launch still pending after ConsumeLaunch")
	}
}

func TestControlsFreshPressSurvivesLongFrame(t *testing.T) {
	c := NewControls(false)
	c.Press(runeKey("a"), DefaultKeyMap())
	if in := c.Intent(0.5); !in.TurnLeft {
		t.Error("press lost when the frame was longer than the hold time")
	}
	if in := c.Intent(0.016); in.TurnLeft {
		t.Error("key still held after its hold time")
	}
}
