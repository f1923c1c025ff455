package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures the play view.
type Options struct {
	Config core.RuntimeConfig
	Logger *log.Logger

	// Remote disables screenshots and clipboard copies, which would land on
	// the host rather than the player's machine.
	Remote bool
}

// Model is the Bubble Tea model for playing starmap in a terminal.
type Model struct {
	mgr      *starmap.Manager
	loop     *starmap.Loop
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	controls *Controls
	help     help.Model
	remote   bool
	last     time.Time
	quitting bool
}

// NewModel creates a play view driving mgr. The frame loop is created
// here and bound to the manager.
func NewModel(mgr *starmap.Manager, opts Options) Model {
	cfg := opts.Config
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	loop := starmap.NewLoop(mgr, nil, opts.Logger)
	mgr.Bind(loop)

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		mgr:      mgr,
		loop:     loop,
		config:   cfg,
		keys:     DefaultKeyMap(),
		controls: NewControls(mgr.Tuning().Settings.InvertThrustAxis),
		help:     h,
		remote:   opts.Remote,
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.playHeight())
	return m
}

// Manager returns the driven manager.
func (m Model) Manager() *starmap.Manager {
	return m.mgr
}

// Loop returns the frame loop.
func (m Model) Loop() *starmap.Loop {
	return m.loop
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copyFrame()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.config.ScreenW, m.playHeight())
		return m, nil
	}

	if m.loop.Fault() != nil && key.Matches(msg, m.keys.Confirm) {
		m.loop.ClearFault()
		return m, nil
	}

	if m.controls.Press(msg, m.keys) {
		return m, nil
	}

	switch a := m.keys.MapAction(msg); a {
	case core.ActionConfirm, core.ActionRestart, core.ActionAbort:
		m.controls.Release()
		m.mgr.Handle(a)
	case core.ActionPause:
		m.mgr.Handle(a)
	case core.ActionNone, core.ActionQuit:
	}
	return m, nil
}

// handleResize processes window resize events. The simulation works in
// world units, so only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, m.playHeight())
	return m, nil
}

// handleTick runs one frame with the wall time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := 1 / float64(m.config.TickRate)
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last).Seconds()
	}
	m.last = now

	in := m.controls.Intent(elapsed)
	m.loop.Frame(elapsed, in)
	if in.Launch && !m.mgr.AwaitingLaunch() {
		m.controls.ConsumeLaunch()
	}
	return m, tickCmd(m.config.TickRate)
}

// playHeight is the screen height left after the help bar.
func (m Model) playHeight() int {
	return max(1, m.config.ScreenH-lipgloss.Height(m.help.View(m.keys)))
}

// draw renders the current frame, or the fault diagnostic, into the buffer.
func (m Model) draw() {
	if f := m.loop.Fault(); f != nil {
		starmap.RenderFault(m.screen, f)
		return
	}
	m.mgr.Render(m.screen)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.remote {
		return
	}
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".starmap", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.mgr.HUD.Toast("Screenshot failed.", world.DefaultToast)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("starmap_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.mgr.HUD.Toast("Screenshot failed.", world.DefaultToast)
		return
	}
	m.mgr.HUD.Toast("Screenshot saved.", world.DefaultToast)
}

// copyFrame copies the current screen as plain text.
func (m *Model) copyFrame() {
	if m.remote {
		return
	}
	m.draw()
	if err := clipboard.WriteAll(m.screen.String()); err != nil {
		m.mgr.HUD.Toast("Clipboard unavailable.", world.DefaultToast)
		return
	}
	m.mgr.HUD.Toast("Frame copied.", world.DefaultToast)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program driving mgr.
func Run(mgr *starmap.Manager, opts Options) error {
	p := tea.NewProgram(
		NewModel(mgr, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
