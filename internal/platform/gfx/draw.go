package gfx

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap"
	"github.com/vovakirdan/starmap/internal/starmap/arena"
	"github.com/vovakirdan/starmap/internal/starmap/camera"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

const (
	// pixelsPerUnit is the window scale at zoom 1.
	pixelsPerUnit = 22.0

	// boomFrames is the length of the explosion flash.
	boomFrames = 10
)

var (
	background = color.RGBA{R: 6, G: 8, B: 18, A: 255}
	boundsLine = color.RGBA{R: 60, G: 70, B: 96, A: 255}

	hudText    = colornames.White
	hudAccent  = colornames.Violet
	bannerText = colornames.Gold
	toastText  = colornames.Khaki

	shipColor   = colornames.Aqua
	wallColor   = colornames.Lightsteelblue
	coverColor  = colornames.Slategray
	genColor    = colornames.Gold
	genFull     = colornames.Springgreen
	shardColor  = colornames.Cyan
	cryptColor  = colornames.Hotpink
	bossColor   = colornames.Crimson
	shieldColor = colornames.Magenta
	playerShot  = colornames.Yellow
	enemyShot   = colornames.Orangered
	fxColor     = colornames.Orange
	spentColor  = colornames.Dimgray
	stationCol  = colornames.Goldenrod
	gateIdle    = colornames.Darkcyan
)

// shardColors maps shard palette entries to window colors.
var shardColors = map[world.ShardColor]color.RGBA{
	world.ShardNone:   colornames.White,
	world.ShardBlue:   colornames.Dodgerblue,
	world.ShardPink:   colornames.Hotpink,
	world.ShardGreen:  colornames.Limegreen,
	world.ShardPurple: colornames.Mediumpurple,
}

// proj maps world points to window pixels through the camera, ship
// heading up.
type proj struct {
	origin   core.Vec2
	cos, sin float64
	scale    float64
	cx, cy   float64
}

func newProj(c *camera.Camera, width, height int) proj {
	rot := -(c.Rot + math.Pi/2)
	return proj{
		origin: c.Pos,
		cos:    math.Cos(rot),
		sin:    math.Sin(rot),
		scale:  c.Zoom * pixelsPerUnit,
		cx:     float64(width) / 2,
		cy:     float64(height) / 2,
	}
}

func (p proj) at(v core.Vec2) (float32, float32) {
	d := v.Sub(p.origin)
	x := d.X*p.cos - d.Y*p.sin
	y := d.X*p.sin + d.Y*p.cos
	return float32(p.cx + x*p.scale), float32(p.cy + y*p.scale)
}

func (p proj) size(d float64) float32 {
	return float32(math.Max(1, d*p.scale))
}

func (p proj) line(dst *ebiten.Image, a, b core.Vec2, width float32, c color.Color) {
	x0, y0 := p.at(a)
	x1, y1 := p.at(b)
	vector.StrokeLine(dst, x0, y0, x1, y1, width, c, true)
}

func (p proj) disc(dst *ebiten.Image, at core.Vec2, r float64, c color.Color) {
	x, y := p.at(at)
	vector.FillCircle(dst, x, y, p.size(r), c, true)
}

func (p proj) ring(dst *ebiten.Image, at core.Vec2, r float64, width float32, c color.Color) {
	x, y := p.at(at)
	vector.StrokeCircle(dst, x, y, p.size(r), width, c, true)
}

func drawRoadmap(dst *ebiten.Image, p proj, mgr *starmap.Manager) {
	lv := mgr.Run.Current
	t := mgr.Tuning()
	w, h := float64(t.Grid.Width), float64(t.Grid.Height)

	corners := []core.Vec2{core.V(0, 0), core.V(w, 0), core.V(w, h), core.V(0, h)}
	for i := range corners {
		p.line(dst, corners[i], corners[(i+1)%len(corners)], 1, boundsLine)
	}

	quotaMet := lv.Shards.Len() >= mgr.Run.RequiredShards()
	for _, n := range lv.Nodes {
		switch n.Kind {
		case world.NodeStart:
			p.ring(dst, n.Center(), t.Ship.StartPadRadius, 1, spentColor)
		case world.NodeGate:
			c := gateIdle
			if quotaMet {
				c = genFull
			}
			p.ring(dst, n.Center(), t.Radii.Gate, 3, c)
		case world.NodePlanet:
			if lv.Shards.Has(n.ID) {
				p.ring(dst, n.Center(), t.Radii.Planet, 1, spentColor)
			} else {
				p.disc(dst, n.Center(), t.Radii.Planet, shardColors[n.Color])
			}
		case world.NodeStation:
			p.disc(dst, n.Center(), t.Radii.Station*0.6, stationCol)
			p.ring(dst, n.Center(), t.Radii.Station, 1, stationCol)
		}
	}

	if tgt := lv.NearestTarget; tgt != nil && !lv.Pad.Locked {
		dir := tgt.Center().Sub(lv.Player.Pos)
		if d := dir.Len(); d > 2 {
			from := lv.Player.Pos.Add(dir.Scale(1.1 / d))
			p.line(dst, from, from.Add(dir.Scale(0.5/d)), 2, bannerText)
		}
	}

	drawParticles(dst, p, mgr.Particles)
	drawShip(dst, p, &lv.Player, t.Ship.Scale, false)
}

func drawArena(dst *ebiten.Image, p proj, mgr *starmap.Manager) {
	a := mgr.Arena
	t := mgr.Tuning()

	for _, w := range a.Walls {
		p.line(dst, w.A, w.B, p.size(t.Arena.WallThickness), wallColor)
	}
	for _, c := range a.Cover {
		hw, hh := c.W/2, c.H/2
		pts := []core.Vec2{
			core.V(c.Center.X-hw, c.Center.Y-hh),
			core.V(c.Center.X+hw, c.Center.Y-hh),
			core.V(c.Center.X+hw, c.Center.Y+hh),
			core.V(c.Center.X-hw, c.Center.Y+hh),
		}
		for i := range pts {
			p.line(dst, pts[i], pts[(i+1)%len(pts)], 2, coverColor)
		}
	}
	for _, g := range a.Gens {
		c := genColor
		if g.Deposited >= t.Arena.GeneratorCapacity {
			c = genFull
		}
		p.ring(dst, g.Pos, t.Arena.GeneratorDepositRadius, 2, c)
		for i := range t.Arena.GeneratorCapacity {
			fill := spentColor
			if i < g.Deposited {
				fill = c
			}
			p.disc(dst, g.Pos.Add(core.V(float64(i)*0.5-0.25, 0)), 0.18, fill)
		}
	}
	for _, s := range a.Shards {
		if !s.Collected {
			p.disc(dst, s.Pos, 0.25, shardColor)
		}
	}

	if a.ExitGate != nil {
		p.ring(dst, *a.ExitGate, t.Radii.Gate*1.2, 3, genFull)
	}
	if a.Encrypted != nil && !a.Encrypted.Picked {
		p.disc(dst, a.Encrypted.Pos, 0.35, cryptColor)
		p.ring(dst, a.Encrypted.Pos, 0.55, 1, cryptColor)
	}

	drawBoss(dst, p, a, t.Boss.Radius)

	for _, pr := range mgr.Projectiles.Items {
		if pr.Owner == world.OwnerPlayer {
			p.disc(dst, pr.Pos, 0.12, playerShot)
		} else {
			p.disc(dst, pr.Pos, 0.18, enemyShot)
		}
	}
	drawParticles(dst, p, mgr.Particles)
	drawShip(dst, p, &a.Player, t.Ship.Scale, a.Player.Invuln > 0)

	if cine := a.Cine; cine != nil {
		switch cine.Phase {
		case arena.CineRing:
			p.ring(dst, cine.Origin, cine.RingRadius, 3, fxColor)
		case arena.CineBoom:
			frame := cine.BoomProgress(boomFrames)
			k := float64(frame) / boomFrames
			p.disc(dst, cine.Origin, 0.5+float64(frame)*0.2, fade(fxColor, 0.9-0.6*k))
		case arena.CineGate, arena.CineReturn:
		}
	}
}

func drawBoss(dst *ebiten.Image, p proj, a *arena.State, radius float64) {
	b := &a.Boss
	if a.BossGone || b.State == arena.BossPreEntry {
		return
	}
	c := bossColor
	switch {
	case b.State == arena.BossDead:
		c = spentColor
	case b.Telegraphing():
		c = bannerText
	}
	p.disc(dst, b.Pos, radius, c)
	if b.Shielded && b.State != arena.BossDead {
		p.ring(dst, b.Pos, radius+0.4, 3, shieldColor)
	}
}

func drawParticles(dst *ebiten.Image, p proj, ps *world.Particles) {
	for _, pt := range ps.Items {
		p.disc(dst, pt.Pos, math.Max(0.04, pt.Size), fade(fxColor, core.ClampF(pt.Life, 0.1, 1)))
	}
}

// drawShip draws the hull as a triangle pointing along the heading.
func drawShip(dst *ebiten.Image, p proj, s *world.Ship, scale float64, blink bool) {
	if blink && int(s.Invuln*20)%2 == 1 {
		return
	}
	nose := s.Pos.Add(core.FromAngle(s.Angle, 0.6*scale))
	left := s.Pos.Add(core.FromAngle(s.Angle+2.5, 0.45*scale))
	right := s.Pos.Add(core.FromAngle(s.Angle-2.5, 0.45*scale))
	p.line(dst, nose, left, 2, shipColor)
	p.line(dst, left, right, 2, shipColor)
	p.line(dst, right, nose, 2, shipColor)
}

func overlayShade(dst *ebiten.Image, width, height int) {
	vector.FillRect(dst, 0, 0, float32(width), float32(height), color.RGBA{A: 170}, false)
}

// fade scales a color's alpha.
func fade(c color.RGBA, a float64) color.RGBA {
	k := core.ClampF(a, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: uint8(float64(c.A) * k),
	}
}
