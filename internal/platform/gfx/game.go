// Package gfx is the ebiten window frontend: vector drawing through the
// rotating follow camera, keyboard, mouse and gamepad input.
package gfx

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/vovakirdan/starmap/internal/starmap"
)

// Options configures the window.
type Options struct {
	Width    int
	Height   int
	TickRate int
	Logger   *log.Logger
}

// DefaultOptions returns a 1280x720 window at 60 TPS.
func DefaultOptions() Options {
	return Options{Width: 1280, Height: 720, TickRate: 60}
}

// Game implements ebiten.Game around a starmap manager.
type Game struct {
	mgr    *starmap.Manager
	loop   *starmap.Loop
	input  *Input
	hud    *text.GoTextFace
	banner *text.GoTextFace

	width, height int
	tps           int
}

// New creates the window game and binds a fresh frame loop to mgr.
func New(mgr *starmap.Manager, opts Options) (*Game, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("gfx: cannot load font: %w", err)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}

	loop := starmap.NewLoop(mgr, nil, opts.Logger)
	mgr.Bind(loop)

	return &Game{
		mgr:    mgr,
		loop:   loop,
		input:  NewInput(mgr.Tuning().Settings.InvertThrustAxis),
		hud:    &text.GoTextFace{Source: src, Size: 15},
		banner: &text.GoTextFace{Source: src, Size: 40},
		width:  opts.Width,
		height: opts.Height,
		tps:    opts.TickRate,
	}, nil
}

// Update reads input and runs one frame.
func (g *Game) Update() error {
	if g.input.Actions(g.mgr, g.loop) {
		return ebiten.Termination
	}
	in := g.input.Intent(g.mgr.Camera, g.width, g.height)
	g.loop.Frame(1/float64(g.tps), in)
	if in.Launch && !g.mgr.AwaitingLaunch() {
		g.input.ConsumeLaunch()
	}
	return nil
}

// Draw renders the frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	if f := g.loop.Fault(); f != nil {
		ebitenutil.DebugPrintAt(screen, "SIMULATION FAULT (Enter to dismiss)\n\n"+f.Error()+"\n\n"+f.Stack, 12, 12)
		return
	}

	p := newProj(g.mgr.Camera, g.width, g.height)
	switch {
	case g.mgr.Run == nil:
	case g.mgr.Mode == starmap.ModeArena && g.mgr.Arena != nil:
		drawArena(screen, p, g.mgr)
	case g.mgr.Run.Current != nil:
		drawRoadmap(screen, p, g.mgr)
	}
	g.drawHUD(screen)
	g.mgr.HUD.Dirty = false
}

// Layout tracks the window size one to one.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	for i, line := range g.mgr.StatusLines() {
		c := color.Color(hudText)
		if i > 0 {
			c = hudAccent
		}
		g.drawText(screen, line, g.hud, 8, 8+float64(i)*20, c)
	}

	if b := g.mgr.Banner(); b != "" {
		g.drawCentered(screen, b, g.banner, float64(g.height)/2-120, bannerText)
	}

	toasts := g.mgr.HUD.Toasts()
	y := float64(g.height) - 24*float64(len(toasts)) - 8
	for _, t := range toasts {
		g.drawCentered(screen, t.Text, g.hud, y, toastText)
		y += 24
	}

	if title, hint, ok := g.mgr.OverlayText(); ok {
		overlayShade(screen, g.width, g.height)
		g.drawCentered(screen, title, g.banner, float64(g.height)/2-50, bannerText)
		g.drawCentered(screen, hint, g.hud, float64(g.height)/2+20, hudText)
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func (g *Game) drawCentered(screen *ebiten.Image, s string, face *text.GoTextFace, y float64, c color.Color) {
	w, _ := text.Measure(s, face, 0)
	g.drawText(screen, s, face, (float64(g.width)-w)/2, y, c)
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(mgr *starmap.Manager, opts Options) error {
	g, err := New(mgr, opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle("Starmap")
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.tps)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gfx: %w", err)
	}
	return nil
}
