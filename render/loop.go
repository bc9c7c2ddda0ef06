package render

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/donut/parameter"
	"github.com/lixenwraith/donut/torus"
)

// LoopConfig holds the pacing settings of a Loop
type LoopConfig struct {
	FPS int
	// Frames stops the loop after this many displayed frames, 0 runs until quit
	Frames uint64
	// Start is the first displayed orientation, the zero value means torus.Identity
	Start torus.Orientation
}

// Loop paces frames: render into a reused frame, hand it to the sink, notify observers
// The sink call completes before the frame is reset again
type Loop struct {
	renderer  *torus.Renderer
	sink      Sink
	actions   <-chan Action
	observers []FrameObserver

	frame       *torus.Frame
	orientation torus.Orientation
	fps         int
	limit       uint64
	count       uint64
	paused      bool

	ticker     *time.Ticker
	statsStart time.Time
}

// NewLoop creates a loop rendering r into sink
func NewLoop(r *torus.Renderer, sink Sink, cfg LoopConfig) *Loop {
	fps := min(max(cfg.FPS, parameter.MinFPS), parameter.MaxFPS)
	return &Loop{
		renderer:    r,
		sink:        sink,
		frame:       r.NewFrame(),
		orientation: cfg.Start.Normalize(),
		fps:         fps,
		limit:       cfg.Frames,
	}
}

// SetActions attaches a command source, typically Screen.Actions
func (l *Loop) SetActions(ch <-chan Action) {
	l.actions = ch
}

// AddObserver registers o, observers run in registration order
func (l *Loop) AddObserver(o FrameObserver) {
	l.observers = append(l.observers, o)
}

// Orientation returns the orientation the next frame will be rendered at
func (l *Loop) Orientation() torus.Orientation {
	return l.orientation
}

// Frames returns the number of frames displayed so far
func (l *Loop) Frames() uint64 {
	return l.count
}

// FPS returns the current target frame rate
func (l *Loop) FPS() int {
	return l.fps
}

// Paused reports whether orientation updates are suspended
func (l *Loop) Paused() bool {
	return l.paused
}

// Run displays frames until ctx is done, a quit action arrives or the frame limit is reached
// Returns the first sink error, nil on any regular stop
func (l *Loop) Run(ctx context.Context) error {
	l.ticker = time.NewTicker(parameter.FrameInterval(l.fps))
	defer l.ticker.Stop()
	l.statsStart = time.Now()

	log.Printf("loop: start fps=%d limit=%d", l.fps, l.limit)

	// First frame without waiting a tick
	if err := l.step(); err != nil {
		return err
	}

	for {
		if l.done() {
			log.Printf("loop: frame limit %d reached", l.limit)
			return nil
		}

		select {
		case <-ctx.Done():
			log.Printf("loop: stopped after %d frames", l.count)
			return nil

		case a := <-l.actions:
			if l.handle(a) {
				log.Printf("loop: quit after %d frames", l.count)
				return nil
			}

		case <-l.ticker.C:
			if l.paused {
				continue
			}
			if err := l.step(); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) done() bool {
	return l.limit > 0 && l.count >= l.limit
}

// step renders and displays one frame
func (l *Loop) step() error {
	shown := l.orientation
	next := l.renderer.RenderInto(l.frame, shown)

	if err := l.sink.Display(l.frame.Glyphs, l.frame.Width, l.frame.Height); err != nil {
		log.Printf("loop: display failed at frame %d: %v", l.count, err)
		return fmt.Errorf("display frame %d: %w", l.count, err)
	}

	l.orientation = next
	l.count++

	for _, o := range l.observers {
		o.FrameDone(l.count, shown)
	}

	if l.count%parameter.StatsInterval == 0 {
		elapsed := time.Since(l.statsStart)
		a, b := shown.Angles()
		log.Printf("loop: frame %d, %.1f fps over last %d, A=%.3f B=%.3f",
			l.count, float64(parameter.StatsInterval)/elapsed.Seconds(), parameter.StatsInterval, a, b)
		l.statsStart = time.Now()
	}
	return nil
}

// handle applies a user action, reports true on quit
func (l *Loop) handle(a Action) bool {
	switch a {
	case ActionQuit:
		return true
	case ActionPause:
		l.paused = !l.paused
		log.Printf("loop: paused=%v", l.paused)
	case ActionFaster:
		l.setFPS(l.fps + parameter.FPSStep)
	case ActionSlower:
		l.setFPS(l.fps - parameter.FPSStep)
	}
	return false
}

func (l *Loop) setFPS(fps int) {
	fps = min(max(fps, parameter.MinFPS), parameter.MaxFPS)
	if fps == l.fps {
		return
	}
	l.fps = fps
	if l.ticker != nil {
		l.ticker.Reset(parameter.FrameInterval(fps))
	}
	log.Printf("loop: fps=%d", fps)
}
