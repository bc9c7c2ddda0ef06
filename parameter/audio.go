package parameter

import (
	"time"
)

// Revolution chime
const (
	AudioSampleRate = 44100
	AudioBuffer     = time.Second / 10
	DefaultVolume   = 0.5

	// ChimeFundamental is the pitch of the first turn; the overtone is one octave up
	ChimeFundamental = 880.0
	ChimeDuration    = 400 * time.Millisecond
	ChimeAttack      = 5 * time.Millisecond

	ChimeFundamentalRelease = 350 * time.Millisecond
	ChimeOvertoneRelease    = 200 * time.Millisecond
)

// ChimeScale steps the fundamental through a major pentatonic scale, one degree per completed turn
var ChimeScale = [...]float64{1, 9.0 / 8, 5.0 / 4, 3.0 / 2, 5.0 / 3}
