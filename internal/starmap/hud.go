package starmap

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starmap/internal/starmap/world"
)

// Audio plays the symbolic cues the simulation emits. The platform audio
// package implements it; a nil Audio keeps the game silent.
type Audio interface {
	Play(cue world.Cue, volume float64)
	PlayMusic(track world.Track, volume float64, loop bool)
	StopMusic()
}

// Toast is a timed notification.
type Toast struct {
	Text      string
	Remaining float64 // seconds
}

// HUD is the effects sink frontends read from. Toasts and sound throttles
// age on the simulation clock, not the wall clock.
type HUD struct {
	audio  Audio
	log    *log.Logger
	sfx    float64
	music  float64
	toasts []Toast

	throttle map[world.Cue]float64

	// Dirty is set by RefreshHUD and cleared by the renderer.
	Dirty   bool
	Victory *world.VictoryPayload
	Defeat  *world.DefeatPayload
	EndTime string
}

const maxToasts = 4

// NewHUD creates an effects sink. audio and logger may be nil.
func NewHUD(audio Audio, logger *log.Logger, sfxVolume, musicVolume float64) *HUD {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &HUD{
		audio:    audio,
		log:      logger,
		sfx:      sfxVolume,
		music:    musicVolume,
		throttle: make(map[world.Cue]float64),
	}
}

// Tick ages toasts and sound throttles.
func (h *HUD) Tick(dt float64) {
	kept := h.toasts[:0]
	for _, t := range h.toasts {
		t.Remaining -= dt
		if t.Remaining > 0 {
			kept = append(kept, t)
		}
	}
	h.toasts = kept

	for cue, left := range h.throttle {
		left -= dt
		if left <= 0 {
			delete(h.throttle, cue)
			continue
		}
		h.throttle[cue] = left
	}
}

// Toasts returns the active toasts, oldest first.
func (h *HUD) Toasts() []Toast {
	return h.toasts
}

// ClearOverlays drops victory, defeat and end payloads.
func (h *HUD) ClearOverlays() {
	h.Victory = nil
	h.Defeat = nil
	h.EndTime = ""
}

func (h *HUD) Toast(msg string, d time.Duration) {
	if d <= 0 {
		d = world.DefaultToast
	}
	h.toasts = append(h.toasts, Toast{Text: msg, Remaining: d.Seconds()})
	if len(h.toasts) > maxToasts {
		h.toasts = h.toasts[len(h.toasts)-maxToasts:]
	}
	h.log.Debug("toast", "text", msg)
}

func (h *HUD) PlaySound(cue world.Cue, volume float64) {
	h.log.Debug("sound", "cue", cue, "volume", volume)
	if h.audio != nil {
		h.audio.Play(cue, volume*h.sfx)
	}
}

// PlaySoundThrottled drops the cue while a previous play of it is still
// inside its cooldown.
func (h *HUD) PlaySoundThrottled(cue world.Cue, volume float64, cooldown time.Duration) {
	if _, busy := h.throttle[cue]; busy {
		return
	}
	h.throttle[cue] = cooldown.Seconds()
	h.PlaySound(cue, volume)
}

func (h *HUD) PlayMusic(track world.Track, volume float64, loop bool) {
	h.log.Debug("music", "track", track, "loop", loop)
	if h.audio != nil {
		h.audio.PlayMusic(track, volume*h.music, loop)
	}
}

func (h *HUD) StopMusic() {
	if h.audio != nil {
		h.audio.StopMusic()
	}
}

func (h *HUD) RefreshHUD() {
	h.Dirty = true
}

func (h *HUD) OpenVictory(p world.VictoryPayload) {
	h.log.Debug("overlay", "name", "victory", "message", p.Message)
	h.Victory = &p
}

func (h *HUD) OpenDefeat(p world.DefeatPayload) {
	h.log.Debug("overlay", "name", "defeat")
	h.Defeat = &p
}

func (h *HUD) OpenEnd(formatted string) {
	h.log.Debug("overlay", "name", "end", "time", formatted)
	h.EndTime = formatted
}
