package terminal

import (
	"bufio"
	"errors"
	"sync"
)

// ErrNotInitialized is returned by Draw outside Init/Fini
var ErrNotInitialized = errors.New("terminal not initialized")

// Terminal owns the tty for the lifetime of the program
type Terminal struct {
	backend backend
	out     *bufio.Writer
	input   *inputReader

	mu          sync.Mutex
	initialized bool
	finalized   bool

	// last terminal size drawn into, a change forces a full clear
	lastW, lastH int
}

// New creates a Terminal on stdin/stdout
func New() *Terminal {
	return newTerminal(newBackend())
}

func newTerminal(b backend) *Terminal {
	return &Terminal{
		backend: b,
		out:     bufio.NewWriterSize(backendWriter{b}, 16384),
	}
}

// Init enters raw mode, alternate screen buffer, hides cursor and starts the input reader
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	t.out.Write(csiAltScreenEnter)
	t.out.Write(csiCursorHide)
	t.out.Write(csiAutoWrapOff)
	t.out.Write(csiClear)
	if err := t.out.Flush(); err != nil {
		t.backend.Fini()
		return err
	}

	t.input = newInputReader(t.backend)
	t.input.start()

	t.initialized = true
	return nil
}

// Fini restores terminal state. Safe to call multiple times
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	if t.input != nil {
		t.input.stop()
	}

	t.out.Write(csiCursorShow)
	t.out.Write(csiAltScreenExit)
	// Re-enable Auto-Wrap after exiting alt screen so the main buffer has wrap enabled
	t.out.Write(csiAutoWrapOn)
	t.out.Write(csiSGR0)
	t.out.Flush()

	t.backend.Fini()
	t.finalized = true
}

// Size returns current terminal dimensions
func (t *Terminal) Size() (int, int) {
	return t.backend.Size()
}

// Events returns the input event channel, nil before Init
func (t *Terminal) Events() <-chan Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.input == nil {
		return nil
	}
	return t.input.eventCh
}

// Draw writes a row-major glyph grid centered in the terminal
// Rows and columns past the terminal edge are clipped
func (t *Terminal) Draw(glyphs []rune, width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrNotInitialized
	}

	tw, th := t.backend.Size()
	if tw != t.lastW || th != t.lastH {
		t.out.Write(csiClear)
		t.lastW, t.lastH = tw, th
	}

	x0, y0 := max((tw-width)/2, 0), max((th-height)/2, 0)
	cols, rows := min(width, tw), min(height, th)

	for y := 0; y < rows; y++ {
		writeCursorPos(t.out, x0, y0+y)
		for _, r := range glyphs[y*width : y*width+cols] {
			t.out.WriteRune(r)
		}
	}
	t.out.Write(csiHome)
	return t.out.Flush()
}
