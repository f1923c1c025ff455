package starmap

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap/arena"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

// Terminal cells are roughly twice as tall as they are wide.
const (
	cellsPerUnitX = 2.4
	cellsPerUnitY = 1.2
	edgeStep      = 0.25 // world units between sampled outline points
)

// boomGlyphs are the explosion frames, smallest first.
var boomGlyphs = []rune{'·', '*', '✶', '✷', '✸', '✹', '❋'}

// shipGlyphs point along the heading relative to the view, clockwise from
// up in eighths of a turn.
var shipGlyphs = []rune{'▲', '◥', '▶', '◢', '▼', '◣', '◀', '◤'}

// view projects world points into the terminal through the camera. The
// ship's heading points up the screen.
type view struct {
	origin   core.Vec2
	cos, sin float64
	sx, sy   float64
	cx, cy   float64
}

func (m *Manager) view(dst *core.Screen) view {
	c := m.Camera
	rot := -(c.Rot + math.Pi/2)
	return view{
		origin: c.Pos,
		cos:    math.Cos(rot),
		sin:    math.Sin(rot),
		sx:     c.Zoom * cellsPerUnitX,
		sy:     c.Zoom * cellsPerUnitY,
		cx:     float64(dst.Width()) / 2,
		cy:     float64(dst.Height()) / 2,
	}
}

func (v view) project(p core.Vec2) (int, int) {
	d := p.Sub(v.origin)
	x := d.X*v.cos - d.Y*v.sin
	y := d.X*v.sin + d.Y*v.cos
	return int(math.Round(v.cx + x*v.sx)), int(math.Round(v.cy + y*v.sy))
}

func (v view) plot(dst *core.Screen, p core.Vec2, r rune, c core.Color) {
	x, y := v.project(p)
	dst.Set(x, y, r, c)
}

func (v view) segment(dst *core.Screen, a, b core.Vec2, r rune, c core.Color) {
	x0, y0 := v.project(a)
	x1, y1 := v.project(b)
	dst.DrawLine(x0, y0, x1, y1, r, c)
}

func (v view) circle(dst *core.Screen, center core.Vec2, radius float64, r rune, c core.Color) {
	n := max(8, int(2*math.Pi*radius/edgeStep))
	for i := range n {
		v.plot(dst, center.Add(core.FromAngle(float64(i)/float64(n)*2*math.Pi, radius)), r, c)
	}
}

// Render draws the current frame into dst.
func (m *Manager) Render(dst *core.Screen) {
	dst.Clear()
	m.HUD.Dirty = false

	if m.Run != nil {
		v := m.view(dst)
		switch {
		case m.Mode == ModeArena && m.Arena != nil:
			m.drawArena(dst, v)
		case m.Run.Current != nil:
			m.drawRoadmap(dst, v)
		}
	}
	m.drawToasts(dst)
	m.drawOverlay(dst)
}

// shardColors maps shard palette entries to terminal colors.
var shardColors = map[world.ShardColor]core.Color{
	world.ShardNone:   core.ColorWhite,
	world.ShardBlue:   core.ColorBlue,
	world.ShardPink:   core.ColorPink,
	world.ShardGreen:  core.ColorGreen,
	world.ShardPurple: core.ColorPurple,
}

func (m *Manager) drawRoadmap(dst *core.Screen, v view) {
	lv := m.Run.Current
	t := m.tuning
	w, h := float64(t.Grid.Width), float64(t.Grid.Height)

	corners := []core.Vec2{core.V(0, 0), core.V(w, 0), core.V(w, h), core.V(0, h)}
	for i := range corners {
		v.segment(dst, corners[i], corners[(i+1)%len(corners)], '·', core.ColorGray)
	}

	quotaMet := lv.Shards.Len() >= m.Run.RequiredShards()
	for _, n := range lv.Nodes {
		switch n.Kind {
		case world.NodeStart:
			v.plot(dst, n.Center(), 'S', core.ColorGray)
		case world.NodeGate:
			c := core.ColorCyan
			if quotaMet {
				c = core.ColorBrightGreen
			}
			v.circle(dst, n.Center(), t.Radii.Gate, '○', c)
		case world.NodePlanet:
			if lv.Shards.Has(n.ID) {
				v.plot(dst, n.Center(), '○', core.ColorGray)
			} else {
				v.plot(dst, n.Center(), '●', shardColors[n.Color])
			}
		case world.NodeStation:
			v.plot(dst, n.Center(), '+', core.ColorYellow)
		}
	}

	m.drawParticles(dst, v)
	m.drawShip(dst, v, &lv.Player, false)
	m.drawStatus(dst, core.ColorWhite)
}

// StatusLines returns the HUD rows for the active mode, top first.
func (m *Manager) StatusLines() []string {
	if m.Run == nil {
		return nil
	}
	t := m.tuning

	if m.Mode == ModeArena && m.Arena != nil {
		a := m.Arena
		p := &a.Player
		heat := "OK"
		if p.Overheated {
			heat = "OVERHEAT"
		}
		lines := []string{fmt.Sprintf(" HP %3.0f  Heat %s %s  Carry %d/%d  Gens %s  Boost %s",
			p.HP, bar(p.Heat, p.MaxHeat, 8), heat, p.ShardsCarried, t.Arena.CarryCap,
			gensText(a.Gens, t.Arena.GeneratorCapacity), pips(a.Boost, t.Boost.MaxPips))}

		switch {
		case a.HasEncryptedShard:
			lines = append(lines, " Encrypted shard secured: reach the exit gate")
		case a.Boss.State != arena.BossDead && a.Boss.State != arena.BossPreEntry:
			label := "WARDEN"
			if a.Boss.Shielded {
				label = "WARDEN [SHIELDED]"
			}
			lines = append(lines, fmt.Sprintf(" %s %s", label, bar(a.Boss.HP, a.Boss.MaxHP, 20)))
		}
		return lines
	}

	lv := m.Run.Current
	if lv == nil {
		return nil
	}
	target := "-"
	if lv.NearestTarget != nil {
		target = lv.NearestTarget.Label()
	}
	return []string{fmt.Sprintf(" L%d  %s  Fuel %3.0f/%-3.0f  Shards %d/%d  Boost %s  → %s",
		lv.Number, world.FormatMs(int64(m.Run.TotalActiveMs)),
		lv.Fuel, lv.MaxFuel, lv.Shards.Len(), m.Run.RequiredShards(),
		pips(lv.Boost, t.Boost.MaxPips), target)}
}

// Banner returns the centered message over the playfield: the countdown
// or the launch hint. It is empty when there is nothing to show.
func (m *Manager) Banner() string {
	switch {
	case m.Run == nil:
		return ""
	case m.Mode == ModeArena && m.Arena != nil:
		if m.Arena.Countdown.Active {
			return countdownText(m.Arena.Countdown.Remaining)
		}
	case m.Run.Current != nil:
		lv := m.Run.Current
		if lv.Countdown.Active {
			return countdownText(lv.Countdown.Remaining)
		}
		if lv.ShowLaunchHint && lv.Pad.Locked {
			return "Press SPACE to launch"
		}
	}
	return ""
}

func (m *Manager) drawStatus(dst *core.Screen, second core.Color) {
	for y, line := range m.StatusLines() {
		c := core.ColorWhite
		if y > 0 {
			c = second
		}
		dst.DrawText(0, y, line, c)
	}
	if b := m.Banner(); b != "" {
		dst.DrawTextCentered(dst.Height()/2-3, b, core.ColorBrightYellow)
	}
}

func (m *Manager) drawArena(dst *core.Screen, v view) {
	a := m.Arena
	t := m.tuning

	for _, w := range a.Walls {
		v.segment(dst, w.A, w.B, '#', core.ColorWhite)
	}
	for _, c := range a.Cover {
		hw, hh := c.W/2, c.H/2
		for y := c.Center.Y - hh; y <= c.Center.Y+hh; y += edgeStep {
			v.segment(dst, core.V(c.Center.X-hw, y), core.V(c.Center.X+hw, y), '▓', core.ColorGray)
		}
	}
	for _, g := range a.Gens {
		c := core.ColorYellow
		if g.Deposited >= t.Arena.GeneratorCapacity {
			c = core.ColorBrightGreen
		}
		v.circle(dst, g.Pos, t.Arena.GeneratorDepositRadius, '·', c)
		for i, r := range g.ID {
			v.plot(dst, g.Pos.Add(core.V(float64(i)*0.4, 0)), r, c)
		}
	}
	for _, s := range a.Shards {
		if !s.Collected {
			v.plot(dst, s.Pos, '◆', core.ColorBrightCyan)
		}
	}

	if a.ExitGate != nil {
		v.circle(dst, *a.ExitGate, t.Radii.Gate*1.2, '○', core.ColorBrightGreen)
	}
	if a.Encrypted != nil && !a.Encrypted.Picked {
		v.plot(dst, a.Encrypted.Pos, '◈', core.ColorPink)
	}

	m.drawBoss(dst, v)

	for _, p := range m.Projectiles.Items {
		if p.Owner == world.OwnerPlayer {
			v.plot(dst, p.Pos, '•', core.ColorBrightYellow)
		} else {
			v.plot(dst, p.Pos, '*', core.ColorBrightRed)
		}
	}
	m.drawParticles(dst, v)
	m.drawShip(dst, v, &a.Player, a.Player.Invuln > 0)

	if cine := a.Cine; cine != nil {
		switch cine.Phase {
		case arena.CineRing:
			v.circle(dst, cine.Origin, cine.RingRadius, '°', core.ColorOrange)
		case arena.CineBoom:
			frame := cine.BoomProgress(len(boomGlyphs))
			v.circle(dst, cine.Origin, 0.5+float64(frame)*0.2, boomGlyphs[frame], core.ColorOrange)
		case arena.CineGate, arena.CineReturn:
		}
	}

	second := core.ColorMagenta
	if a.HasEncryptedShard {
		second = core.ColorPink
	}
	m.drawStatus(dst, second)
}

func (m *Manager) drawBoss(dst *core.Screen, v view) {
	a := m.Arena
	b := &a.Boss
	if a.BossGone || b.State == arena.BossPreEntry {
		return
	}
	c := core.ColorRed
	switch {
	case b.State == arena.BossDead:
		c = core.ColorGray
	case b.Telegraphing():
		c = core.ColorBrightYellow
	case b.Shielded:
		v.circle(dst, b.Pos, m.tuning.Boss.Radius+0.4, '~', core.ColorMagenta)
	}
	v.circle(dst, b.Pos, m.tuning.Boss.Radius, '@', c)
	v.plot(dst, b.Pos, 'W', c)
}

func (m *Manager) drawParticles(dst *core.Screen, v view) {
	for _, p := range m.Particles.Items {
		v.plot(dst, p.Pos, '·', core.ColorOrange)
	}
}

func (m *Manager) drawShip(dst *core.Screen, v view, s *world.Ship, blink bool) {
	if blink && int(s.Invuln*20)%2 == 1 {
		return
	}
	v.plot(dst, s.Pos, shipGlyph(s.Angle, m.Camera.Rot), core.ColorBrightCyan)
}

// shipGlyph picks the glyph for a heading seen through a camera rotated to
// rot. The camera lags behind fast turns, so the glyph leans into them.
func shipGlyph(angle, rot float64) rune {
	d := core.AngleDiff(angle, rot)
	if math.IsNaN(d) {
		return shipGlyphs[0]
	}
	i := int(math.Round(d/(math.Pi/4))) % len(shipGlyphs)
	if i < 0 {
		i += len(shipGlyphs)
	}
	return shipGlyphs[i]
}

func (m *Manager) drawToasts(dst *core.Screen) {
	toasts := m.HUD.Toasts()
	y := dst.Height() - len(toasts)
	for _, t := range toasts {
		dst.DrawTextCentered(y, t.Text, core.ColorBrightYellow)
		y++
	}
}

// OverlayText returns the title and hint line of the open overlay.
func (m *Manager) OverlayText() (title, hint string, ok bool) {
	switch m.Overlay {
	case OverlayStart:
		return "STARMAP", "Enter: launch a new run   Q: quit", true
	case OverlayPause:
		return "PAUSED", "P: resume   R: retry   X: abort run", true
	case OverlayEnd:
		return "RUN COMPLETE", fmt.Sprintf("Total time %s   Enter: menu   R: go again", m.HUD.EndTime), true
	case OverlayVictory:
		msg := "Victory"
		if m.HUD.Victory != nil {
			msg = m.HUD.Victory.Message
		}
		return "VICTORY", msg + "   Enter: menu", true
	case OverlayDefeat:
		return "DEFEATED", "Enter: menu   R: retry run", true
	case OverlayNone:
	}
	return "", "", false
}

func (m *Manager) drawOverlay(dst *core.Screen) {
	if title, hint, ok := m.OverlayText(); ok {
		drawBox(dst, title, hint)
	}
}

// RenderFault draws the diagnostic overlay for a recovered panic.
func RenderFault(dst *core.Screen, f *Fault) {
	if f == nil {
		return
	}
	drawBox(dst, "SIMULATION FAULT", f.Error())
}

func drawBox(dst *core.Screen, title, subtitle string) {
	w := max(len([]rune(title)), len([]rune(subtitle))) + 4
	h := 5
	r := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.FillRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorWhite)
	dst.DrawTextCentered(r.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(r.Y+3, subtitle, core.ColorWhite)
}

func countdownText(remaining float64) string {
	return fmt.Sprintf("%d", int(math.Ceil(math.Max(0, remaining))))
}

func pips(v, maxPips float64) string {
	n := int(maxPips)
	full := core.Clamp(int(math.Floor(v)), 0, n)
	return strings.Repeat("▮", full) + strings.Repeat("▯", n-full)
}

func bar(v, maxV float64, width int) string {
	if maxV <= 0 {
		return strings.Repeat("░", width)
	}
	n := core.Clamp(int(math.Round(v/maxV*float64(width))), 0, width)
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func gensText(gens []arena.Generator, capacity int) string {
	parts := make([]string, len(gens))
	for i, g := range gens {
		parts[i] = fmt.Sprintf("%s %d/%d", g.ID, g.Deposited, capacity)
	}
	return strings.Join(parts, " ")
}
