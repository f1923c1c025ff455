package world

import (
	"fmt"
	"time"
)

// Cue is a symbolic sound effect key.
type Cue int

const (
	CueLaser Cue = iota
	CueBossHit
	CueShieldHit
	CueExplosion
	CuePlayerHit
	CueShardPickup
	CueShardDeposit
	CueShieldDown
	CueBossIntro
)

// String returns the cue key.
func (c Cue) String() string {
	switch c {
	case CueLaser:
		return "laser"
	case CueBossHit:
		return "boss_hit"
	case CueShieldHit:
		return "shield_hit"
	case CueExplosion:
		return "explosion"
	case CuePlayerHit:
		return "player_hit"
	case CueShardPickup:
		return "shard_pickup"
	case CueShardDeposit:
		return "shard_deposit"
	case CueShieldDown:
		return "shield_down"
	case CueBossIntro:
		return "boss_intro"
	default:
		return "unknown"
	}
}

// Track is a symbolic music key.
type Track int

const (
	TrackBossTheme Track = iota
)

// String returns the track key.
func (t Track) String() string {
	switch t {
	case TrackBossTheme:
		return "boss_theme"
	default:
		return "unknown"
	}
}

// VictoryPayload is shown when the arena is won.
type VictoryPayload struct {
	Message string
}

// DefeatPayload is shown when the player dies in the arena.
type DefeatPayload struct {
	Locked bool
}

// Defaults for effects that do not ask for a specific value.
const (
	DefaultToast  = 2500 * time.Millisecond
	DefaultVolume = 0.5
)

// Effects receives fire-and-forget notifications from the simulation.
// Implementations must not call back into the simulation.
type Effects interface {
	Toast(msg string, d time.Duration)
	PlaySound(cue Cue, volume float64)
	PlaySoundThrottled(cue Cue, volume float64, cooldown time.Duration)
	PlayMusic(track Track, volume float64, loop bool)
	StopMusic()
	RefreshHUD()
	OpenVictory(p VictoryPayload)
	OpenDefeat(p DefeatPayload)
	OpenEnd(formatted string)
}

// Nop discards every effect.
type Nop struct{}

func (Nop) Toast(string, time.Duration)                    {}
func (Nop) PlaySound(Cue, float64)                         {}
func (Nop) PlaySoundThrottled(Cue, float64, time.Duration) {}
func (Nop) PlayMusic(Track, float64, bool)                 {}
func (Nop) StopMusic()                                     {}
func (Nop) RefreshHUD()                                    {}
func (Nop) OpenVictory(VictoryPayload)                     {}
func (Nop) OpenDefeat(DefeatPayload)                       {}
func (Nop) OpenEnd(string)                                 {}

// Recorder captures effects in order. Tests use it to assert on
// user-visible outcomes.
type Recorder struct {
	Toasts    []string
	Sounds    []Cue
	Music     []Track
	MusicStop int
	Refreshes int
	Victories []VictoryPayload
	Defeats   []DefeatPayload
	Ends      []string
}

func (r *Recorder) Toast(msg string, _ time.Duration) { r.Toasts = append(r.Toasts, msg) }
func (r *Recorder) PlaySound(c Cue, _ float64)        { r.Sounds = append(r.Sounds, c) }
func (r *Recorder) PlaySoundThrottled(c Cue, _ float64, _ time.Duration) {
	r.Sounds = append(r.Sounds, c)
}
func (r *Recorder) PlayMusic(t Track, _ float64, _ bool) { r.Music = append(r.Music, t) }
func (r *Recorder) StopMusic()                           { r.MusicStop++ }
func (r *Recorder) RefreshHUD()                          { r.Refreshes++ }
func (r *Recorder) OpenVictory(p VictoryPayload)         { r.Victories = append(r.Victories, p) }
func (r *Recorder) OpenDefeat(p DefeatPayload)           { r.Defeats = append(r.Defeats, p) }
func (r *Recorder) OpenEnd(formatted string)             { r.Ends = append(r.Ends, formatted) }

// CountSound returns how many times a cue was played.
func (r *Recorder) CountSound(c Cue) int {
	n := 0
	for _, s := range r.Sounds {
		if s == c {
			n++
		}
	}
	return n
}

// LastToast returns the most recent toast, or "" when none was shown.
func (r *Recorder) LastToast() string {
	if len(r.Toasts) == 0 {
		return ""
	}
	return r.Toasts[len(r.Toasts)-1]
}

// FormatMs renders a duration in milliseconds as mm:ss.cc.
func FormatMs(ms int64) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	m := ms / 60000
	s := (ms % 60000) / 1000
	cs := (ms % 1000) / 10
	return fmt.Sprintf("%s%02d:%02d.%02d", sign, m, s, cs)
}
