package render

import (
	"github.com/lixenwraith/donut/torus"
)

// Sink receives each finished frame as a row-major glyph grid
// The slice is only valid for the duration of the call
type Sink interface {
	Display(glyphs []rune, width, height int) error
}

// Action is a user command decoded by an interactive screen
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionFaster
	ActionSlower
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionPause:
		return "pause"
	case ActionFaster:
		return "faster"
	case ActionSlower:
		return "slower"
	default:
		return "none"
	}
}

// Screen is an interactive sink that also reports user commands
type Screen interface {
	Sink
	// Actions delivers decoded commands, nil when the screen has no input
	Actions() <-chan Action
	Close() error
}

// FrameObserver is notified after each displayed frame
type FrameObserver interface {
	FrameDone(frame uint64, o torus.Orientation)
}

// FrameObserverFunc adapts a function to FrameObserver
type FrameObserverFunc func(frame uint64, o torus.Orientation)

func (f FrameObserverFunc) FrameDone(frame uint64, o torus.Orientation) { f(frame, o) }

// actionForRune maps the shared key bindings of all interactive screens
func actionForRune(r rune) Action {
	switch r {
	case 'q', 'Q':
		return ActionQuit
	case ' ', 'p', 'P':
		return ActionPause
	case '+', '=':
		return ActionFaster
	case '-', '_':
		return ActionSlower
	default:
		return ActionNone
	}
}
