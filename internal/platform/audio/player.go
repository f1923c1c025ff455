package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/starmap/internal/starmap"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

const (
	sampleRate = beep.SampleRate(44100)

	// oneShotMusic is how long a non-looping track plays.
	oneShotMusic = 20 * time.Second
)

// Player implements starmap.Audio on the system speaker. A Player that
// failed to open the speaker stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	log         *log.Logger
	initialized bool
}

var _ starmap.Audio = (*Player)(nil)

// NewPlayer creates a silent player. Call Init to open the speaker.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer: &beep.Mixer{},
		log:   logger,
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops every sound and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	p.music = nil
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Play mixes in the sound for cue at a linear volume.
func (p *Player) Play(cue world.Cue, volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || volume <= 0 {
		return
	}
	s := CueStreamer(cue, sampleRate)
	if s == nil {
		p.log.Warn("unknown sound cue", "cue", cue)
		return
	}
	p.add(newVolume(s, volume))
}

// PlayMusic replaces the current music.
func (p *Player) PlayMusic(track world.Track, volume float64, loop bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := TrackStreamer(track, sampleRate, loop, oneShotMusic)
	if s == nil {
		p.log.Warn("unknown music track", "track", track)
		return
	}

	ctrl := &beep.Ctrl{Streamer: newVolume(s, volume)}
	speaker.Lock()
	p.stopMusicLocked()
	p.music = ctrl
	p.mixer.Add(ctrl)
	speaker.Unlock()
}

// StopMusic silences the current music.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.stopMusicLocked()
	speaker.Unlock()
}

// stopMusicLocked drops the music stream. A Ctrl with no streamer drains
// out of the mixer. The caller holds the speaker lock.
func (p *Player) stopMusicLocked() {
	if p.music != nil {
		p.music.Streamer = nil
		p.music = nil
	}
}

func (p *Player) add(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
