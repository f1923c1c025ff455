package core

// Action represents a run-level command, abstracted from physical key presses.
// Ship control flows through Intent; actions drive menus and the run lifecycle.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter - start a run / dismiss an overlay
	ActionPause          // P, Escape - pause/unpause the roadmap
	ActionRestart        // R - retry the current run
	ActionAbort          // X - abandon the current run
	ActionQuit           // Q, Ctrl+C - exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionAbort:
		return "Abort"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Intent is the device-agnostic control input for one simulation step.
// Analog strengths are already normalized by the frontend that produced them.
type Intent struct {
	// Turn is an analog turn strength in [-1, 1]. Values with magnitude
	// at or below 0.01 fall through to the digital TurnLeft/TurnRight keys.
	Turn      float64
	TurnLeft  bool
	TurnRight bool

	Thrust float64 // forward thrust, 0..1
	Back   float64 // reverse thrust, 0..1
	Strafe float64 // lateral thrust strength, 0..1

	StrafeLeft  bool
	StrafeRight bool

	Boost  bool
	Shoot  bool
	Launch bool // edge: true only on the frame the launch key went down

	// Aim is an optional look direction (right stick or mouse) that biases
	// the camera. Ignored when AimStrength is at or below 0.05.
	AimActive   bool
	AimAngle    float64
	AimStrength float64
}

// Keyboard strengths used when a digital key stands in for an analog axis.
const (
	KeyThrustStrength = 1.0
	KeyBackStrength   = 0.6
	KeyStrafeStrength = 0.6
)
