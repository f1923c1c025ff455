package starmap

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starmap/internal/core"
)

// MaxFrameDt caps a single simulation step in seconds, so a stall or a
// backgrounded window does not teleport the ship.
const MaxFrameDt = 0.05

// Engine is what the loop steps each frame.
type Engine interface {
	Update(dt float64, in core.Intent)
}

// Fault is the last panic the loop recovered, kept for a diagnostic
// overlay.
type Fault struct {
	Frame uint64
	Value string
	Stack string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("frame %d: %s", f.Frame, f.Value)
}

// Loop drives update then render once per frame. The frontend owns the
// clock and calls Frame with the elapsed time.
type Loop struct {
	engine  Engine
	render  func()
	log     *log.Logger
	running bool
	frames  uint64
	fault   *Fault
}

// NewLoop creates a stopped loop. render may be nil when the frontend
// draws outside the loop.
func NewLoop(engine Engine, render func(), logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loop{engine: engine, render: render, log: logger}
}

// Start resumes frames. Starting a running loop is a no-op.
func (l *Loop) Start() {
	l.running = true
}

// Stop suspends frames until the next Start.
func (l *Loop) Stop() {
	l.running = false
}

// Running reports whether Frame does anything.
func (l *Loop) Running() bool {
	return l.running
}

// Frames returns how many frames have run.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Fault returns the last recovered panic, or nil.
func (l *Loop) Fault() *Fault {
	return l.fault
}

// ClearFault dismisses the diagnostic.
func (l *Loop) ClearFault() {
	l.fault = nil
}

// Frame runs one update and render with dt clamped to [0, MaxFrameDt].
// It reports whether a frame ran. A panic in either step is recovered,
// logged and kept as the current fault; the loop keeps running.
func (l *Loop) Frame(elapsed float64, in core.Intent) bool {
	if !l.running {
		return false
	}
	dt := core.ClampF(elapsed, 0, MaxFrameDt)
	l.frames++
	l.guard(func() {
		l.engine.Update(dt, in)
		if l.render != nil {
			l.render()
		}
	})
	return true
}

func (l *Loop) guard(step func()) {
	defer func() {
		if r := recover(); r != nil {
			l.fault = &Fault{
				Frame: l.frames,
				Value: fmt.Sprint(r),
				Stack: string(debug.Stack()),
			}
			l.log.Error("frame panicked", "frame", l.frames, "panic", r, "stack", l.fault.Stack)
		}
	}()
	step()
}
