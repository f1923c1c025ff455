package gfx

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap"
	"github.com/vovakirdan/starmap/internal/starmap/camera"
)

// Gamepad axis indices and dead zones.
const (
	axisLeftX  = 0
	axisLeftY  = 1
	axisRightX = 2
	axisRightY = 3

	stickDeadZone = 0.2
	aimDeadZone   = 0.35
)

// Input polls the keyboard, mouse and gamepads. A launch press stays
// pending until ConsumeLaunch.
type Input struct {
	invert bool
	launch bool
}

// NewInput creates an input reader. invert swaps thrust and reverse.
func NewInput(invert bool) *Input {
	return &Input{invert: invert}
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Actions applies run-level keys to the manager. It reports whether the
// player asked to quit.
func (i *Input) Actions(mgr *starmap.Manager, loop *starmap.Loop) bool {
	if anyJustPressed(ebiten.KeyQ) {
		return true
	}
	if loop.Fault() != nil {
		if anyJustPressed(ebiten.KeyEnter) {
			loop.ClearFault()
		}
		return false
	}

	switch {
	case anyJustPressed(ebiten.KeyEnter, ebiten.KeyNumpadEnter):
		mgr.Handle(core.ActionConfirm)
	case anyJustPressed(ebiten.KeyP, ebiten.KeyEscape):
		mgr.Handle(core.ActionPause)
	case anyJustPressed(ebiten.KeyR):
		mgr.Handle(core.ActionRestart)
	case anyJustPressed(ebiten.KeyX):
		mgr.Handle(core.ActionAbort)
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		switch {
		case inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton7):
			if mgr.Overlay == starmap.OverlayNone {
				mgr.Handle(core.ActionPause)
			} else {
				mgr.Handle(core.ActionConfirm)
			}
		case inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton6):
			mgr.Handle(core.ActionRestart)
		}
	}
	return false
}

// Intent reads the controls for one frame. Screen-space aim is rotated
// into world space through the camera.
func (i *Input) Intent(cam *camera.Camera, width, height int) core.Intent {
	in := core.Intent{
		TurnLeft:    anyPressed(ebiten.KeyArrowLeft, ebiten.KeyA),
		TurnRight:   anyPressed(ebiten.KeyArrowRight, ebiten.KeyD),
		StrafeLeft:  anyPressed(ebiten.KeyZ),
		StrafeRight: anyPressed(ebiten.KeyC),
		Boost:       anyPressed(ebiten.KeyShiftLeft, ebiten.KeyShiftRight, ebiten.KeyF),
		Shoot:       anyPressed(ebiten.KeySpace) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
	if anyJustPressed(ebiten.KeySpace) {
		i.launch = true
	}

	fwd := anyPressed(ebiten.KeyArrowUp, ebiten.KeyW)
	back := anyPressed(ebiten.KeyArrowDown, ebiten.KeyS)
	if i.invert {
		fwd, back = back, fwd
	}
	if fwd {
		in.Thrust = core.KeyThrustStrength
	}
	if back {
		in.Back = core.KeyBackStrength
	}
	if in.StrafeLeft || in.StrafeRight {
		in.Strafe = core.KeyStrafeStrength
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		i.gamepad(id, cam, &in)
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		mx, my := ebiten.CursorPosition()
		dx, dy := float64(mx)-float64(width)/2, float64(my)-float64(height)/2
		reach := math.Min(float64(width), float64(height)) / 3
		if d := math.Hypot(dx, dy); d > 0 && reach > 0 {
			setAim(&in, cam, math.Atan2(dy, dx), math.Min(1, d/reach))
		}
	}
	in.Launch = i.launch
	return in
}

// ConsumeLaunch drops the pending launch press.
func (i *Input) ConsumeLaunch() {
	i.launch = false
}

func (i *Input) gamepad(id ebiten.GamepadID, cam *camera.Camera, in *core.Intent) {
	ax := ebiten.GamepadAxisValue(id, axisLeftX)
	ay := ebiten.GamepadAxisValue(id, axisLeftY)
	if math.Abs(ax) > stickDeadZone {
		in.Turn = core.ClampF(ax, -1, 1)
	}
	if i.invert {
		ay = -ay
	}
	if ay < -stickDeadZone {
		in.Thrust = math.Max(in.Thrust, math.Min(1, -ay))
	}
	if ay > stickDeadZone {
		in.Back = math.Max(in.Back, math.Min(1, ay))
	}

	if ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton0) {
		in.Shoot = true
	}
	if inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton0) {
		i.launch = true
	}
	if ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton1) {
		in.Boost = true
	}

	rx := ebiten.GamepadAxisValue(id, axisRightX)
	ry := ebiten.GamepadAxisValue(id, axisRightY)
	if s := math.Hypot(rx, ry); s > aimDeadZone {
		setAim(in, cam, math.Atan2(ry, rx), math.Min(1, s))
	}
}

// setAim converts a screen angle to a world aim direction. The view
// rotates the world by -(Rot + π/2).
func setAim(in *core.Intent, cam *camera.Camera, screenAngle, strength float64) {
	in.AimActive = true
	in.AimAngle = screenAngle + cam.Rot + math.Pi/2
	in.AimStrength = strength
}
