package render

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/lixenwraith/donut/terminal"
)

// ANSIScreen draws through the raw ANSI terminal backend
type ANSIScreen struct {
	term    *terminal.Terminal
	actions chan Action
	done    chan struct{}
	once    sync.Once
}

// NewANSIScreen takes over the controlling terminal
func NewANSIScreen() (*ANSIScreen, error) {
	term := terminal.New()
	if err := term.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}

	s := &ANSIScreen{
		term:    term,
		actions: make(chan Action, 16),
		done:    make(chan struct{}),
	}
	go s.pump(term.Events())
	return s, nil
}

func (s *ANSIScreen) Display(glyphs []rune, width, height int) error {
	return s.term.Draw(glyphs, width, height)
}

func (s *ANSIScreen) Actions() <-chan Action {
	return s.actions
}

// Close restores the terminal. Safe to call multiple times
func (s *ANSIScreen) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.term.Fini()
	})
	return nil
}

func (s *ANSIScreen) pump(events <-chan terminal.Event) {
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		select {
		case <-s.done:
			return
		case ev := <-events:
			if ev.Type == terminal.EventClosed || ev.Type == terminal.EventError {
				return
			}
			if a := actionForEvent(ev); a != ActionNone {
				select {
				case s.actions <- a:
				default:
				}
			}
		}
	}
}

// actionForEvent maps a decoded terminal key
func actionForEvent(ev terminal.Event) Action {
	if ev.Type != terminal.EventKey {
		return ActionNone
	}
	switch ev.Key {
	case terminal.KeyEscape, terminal.KeyCtrlC:
		return ActionQuit
	case terminal.KeyUp, terminal.KeyRight:
		return ActionFaster
	case terminal.KeyDown, terminal.KeyLeft:
		return ActionSlower
	case terminal.KeyRune:
		return actionForRune(ev.Rune)
	default:
		return ActionNone
	}
}
