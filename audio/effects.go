package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/donut/parameter"
	"github.com/lixenwraith/donut/vmath"
)

// oscillator generates a sine wave by stepping a rotor once per sample
// The same angle-sum recurrence that turns the torus replaces math.Sin in the audio path
type oscillator struct {
	phase     vmath.Rotor
	step      vmath.Rotor
	remaining int
}

// NewOscillator creates a sine oscillator lasting duration
func NewOscillator(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		phase:     vmath.RotorIdentity,
		step:      vmath.NewRotor(2 * math.Pi * freq / float64(rate)),
		remaining: rate.N(duration),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.remaining == 0 {
			return i, i > 0
		}

		val := float64(o.phase.Sin) / vmath.AngleScale
		samples[i] = [2]float64{val, val}

		o.phase = o.phase.Step(o.step)
		o.remaining--
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope is a linear attack / hold / release gain over a fixed number of samples
type envelope struct {
	streamer beep.Streamer
	position int
	total    int
	attack   int
	release  int
}

// NewEnvelope shapes s so the gain rises over attack and falls to zero over the final release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	return &envelope{
		streamer: s,
		total:    total,
		attack:   min(rate.N(attack), total),
		release:  min(rate.N(release), total),
	}
}

// gain returns the envelope level at sample pos
func (e *envelope) gain(pos int) float64 {
	g := 1.0
	if pos < e.attack {
		g = float64(pos) / float64(e.attack)
	}
	if left := e.total - pos; left < e.release {
		g = min(g, float64(left)/float64(e.release))
	}
	return g
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	n, ok = e.streamer.Stream(samples[:min(len(samples), e.total-e.position)])

	for i := range samples[:n] {
		g := e.gain(e.position)
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain
// math.Log2(0) is -Inf, so zero volume is handled as silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ChimePitch returns the fundamental for the given completed-turn count
func ChimePitch(turn uint64) float64 {
	return parameter.ChimeFundamental * parameter.ChimeScale[turn%uint64(len(parameter.ChimeScale))]
}

// NewChime builds the bell for a completed turn: a fundamental from the turn's scale degree
// plus its octave, which decays faster
func NewChime(rate beep.SampleRate, volume float64, turn uint64) beep.Streamer {
	pitch := ChimePitch(turn)

	fund := NewOscillator(pitch, parameter.ChimeDuration, rate)
	fundShaped := NewEnvelope(fund, parameter.ChimeDuration, parameter.ChimeAttack, parameter.ChimeFundamentalRelease, rate)

	over := NewOscillator(2*pitch, parameter.ChimeDuration, rate)
	overShaped := NewEnvelope(over, parameter.ChimeDuration, parameter.ChimeAttack, parameter.ChimeOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, volume)
}
