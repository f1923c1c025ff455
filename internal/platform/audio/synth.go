// Package audio synthesizes starmap's sound cues and boss music with beep.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/starmap/internal/starmap/world"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length wave, optionally gliding from freq
// to glide over its duration.
type oscillator struct {
	freq     float64
	glide    float64
	phase    float64
	duration int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a wave generator of the given duration.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewGlide(freq, freq, duration, wave, rate)
}

// NewGlide creates a wave generator sweeping linearly from one frequency
// to another.
func NewGlide(from, to float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		glide:    to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(from*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		f := o.freq + (o.glide-o.freq)*float64(o.position)/float64(o.duration)
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// decay applies an exponential fade, for percussive hits and explosions.
type decay struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	speed    float64
	position int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := math.Exp(-d.speed * float64(d.position) / float64(d.rate))
		samples[i][0] *= g
		samples[i][1] *= g
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume wraps s at a linear volume. Zero or less is silent since
// log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is a shaped note with a short click-free attack and release.
func tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 4*time.Millisecond, d/2, rate)
}

// CueStreamer returns the synthesized sound for a cue, or nil for an
// unknown cue.
func CueStreamer(cue world.Cue, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case world.CueLaser:
		d := 90 * time.Millisecond
		return newVolume(NewEnvelope(NewGlide(1400, 500, d, WaveSquare, rate), d, 2*time.Millisecond, 60*time.Millisecond, rate), 0.35)
	case world.CueBossHit:
		return newVolume(&decay{streamer: NewOscillator(160, 140*time.Millisecond, WaveSquare, rate), rate: rate, speed: 18}, 0.5)
	case world.CueShieldHit:
		return beep.Mix(
			newVolume(tone(1200, 70*time.Millisecond, WaveSine, rate), 0.4),
			newVolume(tone(2400, 70*time.Millisecond, WaveSine, rate), 0.2),
		)
	case world.CueExplosion:
		d := 700 * time.Millisecond
		return beep.Mix(
			newVolume(&decay{streamer: NewOscillator(0, d, WaveNoise, rate), rate: rate, speed: 5}, 0.6),
			newVolume(&decay{streamer: NewGlide(90, 40, d, WaveSine, rate), rate: rate, speed: 4}, 0.5),
		)
	case world.CuePlayerHit:
		d := 200 * time.Millisecond
		return newVolume(NewEnvelope(NewGlide(220, 90, d, WaveSaw, rate), d, 2*time.Millisecond, 120*time.Millisecond, rate), 0.5)
	case world.CueShardPickup:
		return newVolume(beep.Seq(
			tone(987.77, 70*time.Millisecond, WaveSquare, rate),
			tone(1318.51, 140*time.Millisecond, WaveSquare, rate),
		), 0.3)
	case world.CueShardDeposit:
		return newVolume(beep.Seq(
			tone(523.25, 80*time.Millisecond, WaveSine, rate),
			tone(659.25, 80*time.Millisecond, WaveSine, rate),
			tone(783.99, 160*time.Millisecond, WaveSine, rate),
		), 0.45)
	case world.CueShieldDown:
		return newVolume(beep.Seq(
			tone(783.99, 120*time.Millisecond, WaveSaw, rate),
			tone(523.25, 120*time.Millisecond, WaveSaw, rate),
			tone(392.00, 300*time.Millisecond, WaveSaw, rate),
		), 0.4)
	case world.CueBossIntro:
		d := 1200 * time.Millisecond
		return newVolume(NewEnvelope(NewGlide(40, 70, d, WaveSaw, rate), d, 200*time.Millisecond, 500*time.Millisecond, rate), 0.5)
	default:
		return nil
	}
}

// bossTheme is a kick-and-bass loop. It never ends on its own.
type bossTheme struct {
	rate  beep.SampleRate
	pos   int
	beat  int
	notes []float64
}

// NewBossTheme creates the endless arena music.
func NewBossTheme(rate beep.SampleRate) beep.Streamer {
	return &bossTheme{
		rate:  rate,
		beat:  rate.N(420 * time.Millisecond),
		notes: []float64{55, 55, 65.41, 49},
	}
}

func (g *bossTheme) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := g.rate.N(90 * time.Millisecond)
	for i := range samples {
		beatPos := g.pos % g.beat
		bar := (g.pos / (g.beat * 4)) % len(g.notes)
		t := float64(g.pos) / float64(g.rate)

		kick := 0.0
		if beatPos < kickLen {
			env := 1 - float64(beatPos)/float64(kickLen)
			kick = 0.45 * env * math.Sin(2*math.Pi*60*(1+2*env)*float64(beatPos)/float64(g.rate))
		}

		freq := g.notes[bar]
		if (g.pos/(g.beat/2))%2 == 1 {
			freq *= 2
		}
		bass := 0.18 * math.Sin(2*math.Pi*freq*t)

		s := kick + bass
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *bossTheme) Err() error { return nil }

// TrackStreamer returns the music for a track. Without loop the track
// plays for length and stops.
func TrackStreamer(track world.Track, rate beep.SampleRate, loop bool, length time.Duration) beep.Streamer {
	var s beep.Streamer
	switch track {
	case world.TrackBossTheme:
		s = NewBossTheme(rate)
	default:
		return nil
	}
	if !loop {
		s = beep.Take(rate.N(length), s)
	}
	return s
}
