// Package starmap ties the roadmap and arena modes together: the mode
// manager, the frame loop and the HUD effects sink frontends render from.
package starmap

import (
	"io"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starmap/internal/config"
	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap/arena"
	"github.com/vovakirdan/starmap/internal/starmap/camera"
	"github.com/vovakirdan/starmap/internal/starmap/roadmap"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

// Mode is the active game mode.
type Mode int

const (
	ModeRoadmap Mode = iota
	ModeArena
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeRoadmap:
		return "roadmap"
	case ModeArena:
		return "arena"
	default:
		return "unknown"
	}
}

// Overlay is the modal screen shown over the simulation. The simulation
// only advances while no overlay is open.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayStart
	OverlayPause
	OverlayEnd
	OverlayVictory
	OverlayDefeat
)

// String returns the overlay name.
func (o Overlay) String() string {
	switch o {
	case OverlayNone:
		return "none"
	case OverlayStart:
		return "start"
	case OverlayPause:
		return "pause"
	case OverlayEnd:
		return "end"
	case OverlayVictory:
		return "victory"
	case OverlayDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// ExitReason says why the arena was left.
type ExitReason int

const (
	ExitQuit ExitReason = iota
	ExitWin
	ExitLoss
)

// String returns the reason as stored with arena results.
func (r ExitReason) String() string {
	switch r {
	case ExitWin:
		return "win"
	case ExitLoss:
		return "loss"
	default:
		return "quit"
	}
}

// Recorder persists finished runs and arena outcomes.
type Recorder interface {
	SaveRun(runID string, totalMs int64) error
	SaveArenaResult(runID, outcome string, durationMs int64) error
}

// Controller starts and stops the frame loop.
type Controller interface {
	Start()
	Stop()
}

// Options configures a Manager.
type Options struct {
	Tuning  *config.Tuning
	Catalog *config.Catalog
	HUD     *HUD
	Logger  *log.Logger

	// Recorder is optional; nil skips persistence.
	Recorder Recorder

	// Seed drives run ids and particle jitter. Zero picks one from the clock.
	Seed int64
}

// Manager owns the run, the arena session and the shared camera and pools.
type Manager struct {
	Mode    Mode
	Overlay Overlay

	Run   *roadmap.Run
	Arena *arena.State

	Camera      *camera.Camera
	Particles   *world.Particles
	Projectiles *world.Projectiles
	HUD         *HUD

	arenaMs float64

	tuning   *config.Tuning
	catalog  *config.Catalog
	recorder Recorder
	log      *log.Logger
	rng      *rand.Rand
	loop     Controller
}

// NewManager creates a manager showing the start overlay.
func NewManager(opts Options) *Manager {
	if opts.Tuning == nil {
		t := config.DefaultTuning()
		opts.Tuning = &t
	}
	if opts.Catalog == nil {
		c := config.DefaultCatalog()
		opts.Catalog = &c
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.HUD == nil {
		opts.HUD = NewHUD(nil, opts.Logger, opts.Tuning.Settings.SFXVolume, opts.Tuning.Settings.MusicVolume)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	return &Manager{
		Mode:        ModeRoadmap,
		Overlay:     OverlayStart,
		Camera:      camera.New(opts.Tuning),
		Particles:   world.NewParticles(opts.Seed),
		Projectiles: &world.Projectiles{},
		HUD:         opts.HUD,
		tuning:      opts.Tuning,
		catalog:     opts.Catalog,
		recorder:    opts.Recorder,
		log:         opts.Logger,
		rng:         rand.New(rand.NewSource(opts.Seed)),
	}
}

// Bind attaches the loop so run lifecycle changes can start and stop it.
func (m *Manager) Bind(loop Controller) {
	m.loop = loop
}

// Tuning returns the tuning the manager was built with.
func (m *Manager) Tuning() *config.Tuning {
	return m.tuning
}

func (m *Manager) ensureRunning() {
	if m.loop != nil {
		m.loop.Start()
	}
}

func (m *Manager) newRunID() string {
	return strconv.FormatInt(m.rng.Int63(), 36)
}

// NewRun starts a fresh campaign at level 1.
func (m *Manager) NewRun() {
	m.ensureRunning()
	m.leaveArena()
	m.HUD.ClearOverlays()
	m.Particles.Reset()
	m.Projectiles.Reset()

	m.Run = roadmap.NewRun(m.newRunID(), roadmap.Env{
		Tuning:    m.tuning,
		Catalog:   m.catalog,
		FX:        m.HUD,
		Particles: m.Particles,
	})
	m.Run.Current.StartCountdown(m.tuning.Timing.Countdown)
	m.Overlay = OverlayNone
	m.snapCamera()
	m.HUD.RefreshHUD()
	m.log.Info("new run", "id", m.Run.ID)
}

// Retry restarts the current run at level 1, keeping its id and
// accumulated time. Without a run it starts a new one.
func (m *Manager) Retry() {
	if m.Run == nil {
		m.NewRun()
		return
	}
	m.ensureRunning()
	m.leaveArena()
	m.HUD.ClearOverlays()
	m.Projectiles.Reset()

	m.Run.Retry()
	m.Run.Current.StartCountdown(m.tuning.Timing.Countdown)
	m.Overlay = OverlayNone
	m.snapCamera()
	m.HUD.RefreshHUD()
	m.log.Info("retry run", "id", m.Run.ID, "total_ms", int64(m.Run.TotalActiveMs))
}

// Quit abandons the run and returns to the start overlay. An open arena is
// exited and recorded as a quit first.
func (m *Manager) Quit() {
	if m.Mode == ModeArena && m.Arena != nil {
		m.ExitArena(ExitQuit)
	}
	if m.Run != nil {
		m.log.Info("quit run", "id", m.Run.ID)
	}
	m.HUD.StopMusic()
	m.Arena = nil
	m.Mode = ModeRoadmap
	m.Camera.SetBaseZoom(m.tuning.Camera.BaseZoom)
	m.Run = nil
	m.Overlay = OverlayStart
	m.HUD.RefreshHUD()
	m.HUD.Toast("Run aborted.", world.DefaultToast)
}

// TogglePause pauses or resumes the roadmap. The arena cannot be paused.
// It reports whether the overlay changed.
func (m *Manager) TogglePause() bool {
	if m.Run == nil || m.Mode == ModeArena {
		return false
	}
	switch m.Overlay {
	case OverlayNone:
		m.Overlay = OverlayPause
		m.Run.PauseTimer()
	case OverlayPause:
		m.Overlay = OverlayNone
	default:
		return false
	}
	m.HUD.RefreshHUD()
	return true
}

// Dismiss closes the current overlay. The start overlay starts a run;
// end, victory and defeat drop the run and return to the start overlay.
func (m *Manager) Dismiss() {
	switch m.Overlay {
	case OverlayStart:
		m.NewRun()
	case OverlayPause:
		m.TogglePause()
	case OverlayEnd, OverlayVictory, OverlayDefeat:
		m.HUD.ClearOverlays()
		m.Run = nil
		m.Overlay = OverlayStart
		m.HUD.RefreshHUD()
	}
}

// Handle applies a run-level action. Quit is left to the frontend.
func (m *Manager) Handle(a core.Action) {
	switch a {
	case core.ActionConfirm:
		m.Dismiss()
	case core.ActionPause:
		m.TogglePause()
	case core.ActionRestart:
		m.Retry()
	case core.ActionAbort:
		if m.Run != nil {
			m.Quit()
		}
	case core.ActionNone, core.ActionQuit:
	}
}

// EnterArena builds a fresh arena session and starts its countdown. The
// roadmap timer was already paused by the gate.
func (m *Manager) EnterArena() {
	m.ensureRunning()
	if m.Overlay == OverlayEnd {
		m.Overlay = OverlayNone
	}
	m.Mode = ModeArena
	m.arenaMs = 0
	m.HUD.Toast("The Secret Altar accepts your challenge... No pausing!", 4*time.Second)

	m.Arena = arena.Build(arena.Env{
		Tuning:      m.tuning,
		FX:          m.HUD,
		Particles:   m.Particles,
		Projectiles: m.Projectiles,
		Camera:      m.Camera,
	})
	m.Camera.SetBaseZoom(m.tuning.Camera.ArenaZoom)
	m.Arena.StartCountdown(m.tuning.Timing.Countdown)
	m.snapCamera()
	m.log.Info("enter arena", "run", m.runID())
}

// ExitArena tears down the arena session and returns to the roadmap.
func (m *Manager) ExitArena(reason ExitReason) {
	if m.Arena == nil {
		return
	}
	m.leaveArena()
	switch reason {
	case ExitWin:
		m.HUD.Toast("Unique event complete. Returning to orbit.", world.DefaultToast)
	case ExitLoss:
		m.HUD.Toast("Defeated. Returning to orbit.", world.DefaultToast)
	default:
		m.HUD.Toast("Left the arena.", world.DefaultToast)
	}
	m.snapCamera()

	ms := int64(m.arenaMs)
	m.log.Info("exit arena", "run", m.runID(), "reason", reason, "ms", ms)
	if m.recorder != nil && m.Run != nil {
		if err := m.recorder.SaveArenaResult(m.Run.ID, reason.String(), ms); err != nil {
			m.log.Warn("could not save arena result", "error", err)
		}
	}
}

func (m *Manager) leaveArena() {
	if m.Arena != nil {
		m.HUD.StopMusic()
	}
	m.Arena = nil
	m.Mode = ModeRoadmap
	m.Projectiles.Reset()
	m.Camera.SetBaseZoom(m.tuning.Camera.BaseZoom)
}

func (m *Manager) runID() string {
	if m.Run == nil {
		return ""
	}
	return m.Run.ID
}

// Update advances the active mode and the camera. Nothing moves while an
// overlay is open or no run exists.
func (m *Manager) Update(dt float64, in core.Intent) {
	m.HUD.Tick(dt)

	if m.Mode == ModeArena && m.Overlay == OverlayPause {
		m.Overlay = OverlayNone
	}
	if m.Run == nil || m.Overlay != OverlayNone {
		return
	}

	switch m.Mode {
	case ModeRoadmap:
		m.updateRoadmap(dt, in)
	case ModeArena:
		m.updateArena(dt, in)
	}

	if ship := m.Ship(); ship != nil {
		m.Camera.Update(dt, m.cameraTarget(ship, in))
	}
}

func (m *Manager) updateRoadmap(dt float64, in core.Intent) {
	switch sig := m.Run.Update(dt, in); sig {
	case roadmap.SignalEnterArena:
		m.EnterArena()
	case roadmap.SignalRunComplete:
		m.completeRun()
	case roadmap.SignalLevelComplete:
		m.log.Info("level complete", "run", m.Run.ID, "level", m.Run.LevelIndex-1)
		m.snapCamera()
	case roadmap.SignalOutOfFuel:
		m.log.Info("out of fuel", "run", m.Run.ID, "level", m.Run.LevelIndex)
	case roadmap.SignalNone:
	}
}

func (m *Manager) updateArena(dt float64, in core.Intent) {
	m.arenaMs += dt * 1000
	switch m.Arena.Update(dt, in) {
	case arena.SignalVictory:
		m.ExitArena(ExitWin)
		m.Overlay = OverlayVictory
	case arena.SignalDefeat:
		m.ExitArena(ExitLoss)
		m.Overlay = OverlayDefeat
	case arena.SignalNone:
	}
}

func (m *Manager) completeRun() {
	m.Overlay = OverlayEnd
	m.log.Info("run complete", "id", m.Run.ID, "total_ms", m.Run.FinalMs)
	if m.recorder != nil {
		if err := m.recorder.SaveRun(m.Run.ID, m.Run.FinalMs); err != nil {
			m.log.Warn("could not save run", "error", err)
		}
	}
	if m.loop != nil {
		m.loop.Stop()
	}
}

// AwaitingLaunch reports whether the active ship is still locked on its pad.
// A frontend keeps a launch request pending while this holds.
func (m *Manager) AwaitingLaunch() bool {
	switch {
	case m.Mode == ModeArena && m.Arena != nil:
		return m.Arena.Pad.Locked
	case m.Run != nil && m.Run.Current != nil:
		return m.Run.Current.Pad.Locked
	default:
		return false
	}
}

// Ship returns the ship of the active mode, or nil without a run.
func (m *Manager) Ship() *world.Ship {
	switch {
	case m.Mode == ModeArena && m.Arena != nil:
		return &m.Arena.Player
	case m.Run != nil && m.Run.Current != nil:
		return &m.Run.Current.Player
	default:
		return nil
	}
}

func (m *Manager) cameraTarget(s *world.Ship, in core.Intent) camera.Target {
	return camera.Target{
		Pos:         s.Pos,
		Vel:         s.Vel,
		Angle:       s.Angle,
		AimActive:   in.AimActive,
		AimAngle:    in.AimAngle,
		AimStrength: in.AimStrength,
		SpeedZoom:   m.Mode == ModeRoadmap,
	}
}

func (m *Manager) snapCamera() {
	if s := m.Ship(); s != nil {
		m.Camera.Snap(m.cameraTarget(s, core.Intent{}))
	}
}
