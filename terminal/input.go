package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"time"
	"unicode/utf8"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey    EventType = iota
	EventError            // Read error
	EventClosed           // Input closed
)

// Event represents a terminal input event
type Event struct {
	Type EventType
	Key  Key
	Rune rune
	Err  error
}

// inputReader turns raw stdin bytes into events
type inputReader struct {
	backend backend
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer so partial escape sequences and UTF-8 survive read boundaries
	buf []byte
}

func newInputReader(b backend) *inputReader {
	return &inputReader{
		backend: b,
		eventCh: make(chan Event, 64),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 64),
	}
}

func (r *inputReader) start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	go r.readLoop()
}

func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	// Don't block forever if a platform read is stuck
	select {
	case <-r.doneCh:
	case <-time.After(200 * time.Millisecond):
	}
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", rec)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			r.send(Event{Type: EventError, Err: err})
			return
		}

		if len(data) == 0 {
			// Timeout: a lone ESC left in the buffer is a real Escape key
			if len(r.buf) == 1 && r.buf[0] == 0x1b {
				r.send(Event{Type: EventKey, Key: KeyEscape})
				r.buf = r.buf[:0]
			}
			select {
			case <-r.stopCh:
				r.send(Event{Type: EventClosed})
				return
			default:
				continue
			}
		}

		r.buf = append(r.buf, data...)
		consumed := parseInput(r.buf, r.send)
		n := copy(r.buf, r.buf[consumed:])
		r.buf = r.buf[:n]
	}
}

// send delivers without blocking; input is dropped when the consumer lags
func (r *inputReader) send(ev Event) {
	select {
	case r.eventCh <- ev:
	default:
	}
}

// parseInput decodes data into events and returns the bytes consumed
// Stops early on an incomplete escape sequence or UTF-8 rune
func parseInput(data []byte, emit func(Event)) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		switch {
		case b == 0x03:
			emit(Event{Type: EventKey, Key: KeyCtrlC})
			i++

		case b == '\r' || b == '\n':
			emit(Event{Type: EventKey, Key: KeyEnter})
			i++

		case b == 0x1b:
			if i+1 >= n {
				return i // Wait for more data or the timeout flush
			}
			if next := data[i+1]; next != '[' && next != 'O' {
				emit(Event{Type: EventKey, Key: KeyEscape})
				i++
				continue
			}
			// CSI/SS3: parameters until a final byte in 0x40-0x7e
			j := i + 2
			for j < n && (data[j] < 0x40 || data[j] > 0x7e) {
				j++
			}
			if j >= n {
				return i
			}
			if k, ok := csiFinalKeys[data[j]]; ok {
				emit(Event{Type: EventKey, Key: k})
			}
			i = j + 1

		case b >= 0x20 && b < 0x7f:
			emit(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++

		case b < 0x20 || b == 0x7f:
			// Other control bytes are ignored
			i++

		default:
			if !utf8.FullRune(data[i:]) {
				return i
			}
			ch, size := utf8.DecodeRune(data[i:])
			if ch != utf8.RuneError {
				emit(Event{Type: EventKey, Key: KeyRune, Rune: ch})
			}
			i += size
		}
	}
	return i
}
