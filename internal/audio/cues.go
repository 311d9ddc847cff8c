// Package audio synthesizes short gameplay cues with the beep library.
// All sounds are generated oscillators, so no asset files are needed.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// waveType selects the oscillator wave shape.
type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveSaw
)

// oscillator generates a raw wave for a fixed duration.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     waveType
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, wave waveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case waveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release shaping to a streamer.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a streamer. math.Log2(0) is -Inf, so zero is silenced.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Player plays gameplay cues through the system speaker. A Player whose
// speaker could not be initialized stays usable and plays nothing.
type Player struct {
	mu      sync.Mutex
	enabled bool
}

// NewPlayer initializes the speaker. Initialization failure (no audio
// device, headless host) disables playback instead of erroring out.
func NewPlayer() *Player {
	p := &Player{}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err == nil {
		p.enabled = true
	}
	return p
}

// Enabled reports whether the speaker was initialized.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Mute disables playback without touching the speaker.
func (p *Player) Mute() {
	p.mu.Lock()
	p.enabled = false
	p.mu.Unlock()
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	enabled := p.enabled
	p.mu.Unlock()
	if !enabled {
		return
	}
	speaker.Play(s)
}

// Flap plays a soft short blip on a wing flap.
func (p *Player) Flap() {
	osc := newOscillator(520, 60*time.Millisecond, waveSine, sampleRate)
	shaped := newEnvelope(osc, 60*time.Millisecond, 5*time.Millisecond, 30*time.Millisecond, sampleRate)
	p.play(newVolume(shaped, 0.25))
}

// Score plays a bright ding when an obstacle is cleared.
func (p *Player) Score() {
	fund := newOscillator(880, 120*time.Millisecond, waveSine, sampleRate)
	fundShaped := newEnvelope(fund, 120*time.Millisecond, 2*time.Millisecond, 90*time.Millisecond, sampleRate)

	over := newOscillator(1760, 120*time.Millisecond, waveSine, sampleRate)
	overShaped := newEnvelope(over, 120*time.Millisecond, 2*time.Millisecond, 60*time.Millisecond, sampleRate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	p.play(newVolume(mixed, 0.4))
}

// LevelUp plays a rising two-note chime when difficulty advances.
func (p *Player) LevelUp() {
	n1 := newOscillator(987.77, 90*time.Millisecond, waveSquare, sampleRate)
	n1Shaped := newEnvelope(n1, 90*time.Millisecond, 2*time.Millisecond, 40*time.Millisecond, sampleRate)

	n2 := newOscillator(1318.51, 140*time.Millisecond, waveSquare, sampleRate)
	n2Shaped := newEnvelope(n2, 140*time.Millisecond, 2*time.Millisecond, 100*time.Millisecond, sampleRate)

	p.play(newVolume(beep.Seq(n1Shaped, n2Shaped), 0.35))
}

// PowerUp plays a shimmering pickup sound.
func (p *Player) PowerUp() {
	n1 := newOscillator(659.25, 70*time.Millisecond, waveSine, sampleRate)
	n1Shaped := newEnvelope(n1, 70*time.Millisecond, 2*time.Millisecond, 30*time.Millisecond, sampleRate)

	n2 := newOscillator(830.61, 70*time.Millisecond, waveSine, sampleRate)
	n2Shaped := newEnvelope(n2, 70*time.Millisecond, 2*time.Millisecond, 30*time.Millisecond, sampleRate)

	n3 := newOscillator(1046.5, 110*time.Millisecond, waveSine, sampleRate)
	n3Shaped := newEnvelope(n3, 110*time.Millisecond, 2*time.Millisecond, 80*time.Millisecond, sampleRate)

	p.play(newVolume(beep.Seq(n1Shaped, n2Shaped, n3Shaped), 0.35))
}

// GameOver plays a low descending buzz when the run ends.
func (p *Player) GameOver() {
	n1 := newOscillator(220, 180*time.Millisecond, waveSaw, sampleRate)
	n1Shaped := newEnvelope(n1, 180*time.Millisecond, 5*time.Millisecond, 80*time.Millisecond, sampleRate)

	n2 := newOscillator(146.83, 320*time.Millisecond, waveSaw, sampleRate)
	n2Shaped := newEnvelope(n2, 320*time.Millisecond, 5*time.Millisecond, 220*time.Millisecond, sampleRate)

	p.play(newVolume(beep.Seq(n1Shaped, n2Shaped), 0.3))
}
