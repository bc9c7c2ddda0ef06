package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/donut/parameter"
	"github.com/lixenwraith/donut/torus"
)

// Player chimes on every completed turn of the A axis
// Frames are observed from the render loop goroutine only
type Player struct {
	rate     beep.SampleRate
	volume   float64
	mixer    *beep.Mixer
	detector RevolutionDetector

	mu      sync.Mutex
	started bool
	played  atomic.Uint64
}

// NewPlayer creates a silent player; Start attaches it to the speaker
func NewPlayer(volume float64) *Player {
	return &Player{
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		volume: volume,
		mixer:  &beep.Mixer{},
	}
}

// Start opens the audio device and begins streaming the mixer
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBuffer)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	log.Printf("audio: speaker started rate=%d volume=%.2f", p.rate, p.volume)
	return nil
}

// Stop clears pending sounds and closes the device
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
	log.Printf("audio: speaker stopped after %d chimes", p.played.Load())
}

// FrameDone chimes when the A axis of the displayed orientation completed a turn
func (p *Player) FrameDone(frame uint64, o torus.Orientation) {
	if p.detector.Observe(o.A) {
		p.Chime(p.detector.Revolutions() - 1)
	}
}

// Chime queues the bell for the given zero-based turn on the mixer
func (p *Player) Chime(turn uint64) {
	s := NewChime(p.rate, p.volume, turn)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(s)
	p.played.Add(1)
}

// Played returns the number of chimes queued
func (p *Player) Played() uint64 {
	return p.played.Load()
}

// Pending returns the number of sounds still in the mixer
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}
