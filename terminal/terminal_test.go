package terminal

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeBackend struct {
	mu      sync.Mutex
	w, h    int
	out     bytes.Buffer
	reads   chan []byte
	initErr error
	raw     bool
}

func newFakeBackend(w, h int) *fakeBackend {
	return &fakeBackend{w: w, h: h, reads: make(chan []byte, 8)}
}

func (b *fakeBackend) Init() error {
	if b.initErr != nil {
		return b.initErr
	}
	b.raw = true
	return nil
}

func (b *fakeBackend) Fini() { b.raw = false }

func (b *fakeBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.w, b.h
}

func (b *fakeBackend) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Write(p)
	return nil
}

func (b *fakeBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case d := <-b.reads:
		return d, nil
	case <-stopCh:
		return nil, nil
	case <-time.After(10 * time.Millisecond):
		return nil, nil
	}
}

func (b *fakeBackend) output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.String()
}

func (b *fakeBackend) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Reset()
}

func TestInitFini(t *testing.T) {
	b := newFakeBackend(80, 24)
	term := newTerminal(b)

	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !b.raw {
		t.Error("Expected raw mode after Init")
	}
	if !strings.Contains(b.output(), string(csiAltScreenEnter)) {
		t.Error("Expected alternate screen enter sequence")
	}

	term.Fini()
	term.Fini()

	if b.raw {
		t.Error("Expected raw mode restored after Fini")
	}
	if strings.Count(b.output(), string(csiAltScreenExit)) != 1 {
		t.Error("Expected exactly one alternate screen exit")
	}
}

func TestInitError(t *testing.T) {
	b := newFakeBackend(80, 24)
	b.initErr = errors.New("no tty")
	term := newTerminal(b)

	if err := term.Init(); err == nil {
		t.Fatal("Expected Init error")
	}
	if b.output() != "" {
		t.Errorf("Expected no output after failed Init, got %q", b.output())
	}
	if err := term.Draw([]rune("ab"), 2, 1); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
}

// TestDrawCentered verifies the grid is positioned in the middle of a larger terminal
func TestDrawCentered(t *testing.T) {
	b := newFakeBackend(84, 24)
	term := newTerminal(b)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Fini()

	// First draw clears, second draw at same size does not
	term.Draw([]rune("abcd"), 2, 2)
	b.reset()

	if err := term.Draw([]rune("abcd"), 2, 2); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	want := "\x1b[12;42Hab\x1b[13;42Hcd\x1b[H"
	if got := b.output(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

// TestDrawClipped verifies grids larger than the terminal are clipped, not wrapped
func TestDrawClipped(t *testing.T) {
	b := newFakeBackend(3, 1)
	term := newTerminal(b)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Fini()
	b.reset()

	if err := term.Draw([]rune("abcdefghij"), 5, 2); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	want := string(csiClear) + "\x1b[1;1Habc\x1b[H"
	if got := b.output(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestEventsFromBackend(t *testing.T) {
	b := newFakeBackend(80, 24)
	term := newTerminal(b)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Fini()

	b.reads <- []byte("q")
	b.reads <- []byte{0x1b}

	want := []Event{
		{Type: EventKey, Key: KeyRune, Rune: 'q'},
		{Type: EventKey, Key: KeyEscape},
	}
	for _, w := range want {
		select {
		case ev := <-term.Events():
			if ev != w {
				t.Errorf("Expected %+v, got %+v", w, ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("Timed out waiting for %+v", w)
		}
	}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		want     []Event
		consumed int
	}{
		{"rune", "q", []Event{{Type: EventKey, Key: KeyRune, Rune: 'q'}}, 1},
		{"ctrl-c", "\x03", []Event{{Type: EventKey, Key: KeyCtrlC}}, 1},
		{"enter", "\r", []Event{{Type: EventKey, Key: KeyEnter}}, 1},
		{"arrow csi", "\x1b[A", []Event{{Type: EventKey, Key: KeyUp}}, 3},
		{"arrow ss3", "\x1bOB", []Event{{Type: EventKey, Key: KeyDown}}, 3},
		{"modified arrow", "\x1b[1;5C", []Event{{Type: EventKey, Key: KeyRight}}, 6},
		{"unknown csi swallowed", "\x1b[2~", nil, 4},
		{"incomplete csi", "\x1b[1;", nil, 0},
		{"lone escape waits", "\x1b", nil, 0},
		{"escape then rune", "\x1bx", []Event{{Type: EventKey, Key: KeyEscape}, {Type: EventKey, Key: KeyRune, Rune: 'x'}}, 2},
		{"utf8", "é", []Event{{Type: EventKey, Key: KeyRune, Rune: 'é'}}, 2},
		{"partial utf8", "\xc3", nil, 0},
		{"control ignored", "\x01+", []Event{{Type: EventKey, Key: KeyRune, Rune: '+'}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Event
			n := parseInput([]byte(tt.data), func(ev Event) { got = append(got, ev) })
			if n != tt.consumed {
				t.Errorf("Expected %d bytes consumed, got %d", tt.consumed, n)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d events, got %+v", len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Event %d: expected %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestEmergencyReset(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)

	out := buf.String()
	for _, seq := range [][]byte{csiCursorShow, csiAltScreenExit, csiAutoWrapOn} {
		if !strings.Contains(out, string(seq)) {
			t.Errorf("Expected %q in reset output", seq)
		}
	}
}
