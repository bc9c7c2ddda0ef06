package parameter

import (
	"time"
)

// Frame pacing
const (
	DefaultFPS = 30
	MinFPS     = 1
	MaxFPS     = 120

	// FPSStep is the change applied by the faster/slower keys
	FPSStep = 5
)

// FrameInterval returns the ticker period for fps, clamped to [MinFPS, MaxFPS]
func FrameInterval(fps int) time.Duration {
	if fps < MinFPS {
		fps = MinFPS
	}
	if fps > MaxFPS {
		fps = MaxFPS
	}
	return time.Second / time.Duration(fps)
}

// Output backends
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
	BackendPlain = "plain"

	DefaultBackend = BackendANSI
)

// StatsInterval is the number of frames between pacing log lines
const StatsInterval = 300

// Logging
const (
	LogDir      = "logs"
	LogFileName = "donut.log"
	MaxLogSize  = 10 * 1024 * 1024
)
