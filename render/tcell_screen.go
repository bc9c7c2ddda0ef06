package render

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/donut/terminal"
)

// TcellScreen draws through tcell, for terminals the raw backend handles poorly
type TcellScreen struct {
	screen  tcell.Screen
	style   tcell.Style
	actions chan Action
	once    sync.Once
	done    chan struct{}
}

// NewTcellScreen opens the default tcell screen
func NewTcellScreen() (*TcellScreen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create tcell screen: %w", err)
	}
	return newTcellScreen(screen)
}

// newTcellScreen initializes screen and starts the event poller
func newTcellScreen(screen tcell.Screen) (*TcellScreen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init tcell screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	s := &TcellScreen{
		screen:  screen,
		style:   tcell.StyleDefault,
		actions: make(chan Action, 16),
		done:    make(chan struct{}),
	}
	go s.poll()
	return s, nil
}

// Display draws the grid centered, clipped to the screen
func (s *TcellScreen) Display(glyphs []rune, width, height int) error {
	sw, sh := s.screen.Size()
	x0, y0 := max((sw-width)/2, 0), max((sh-height)/2, 0)
	cols, rows := min(width, sw), min(height, sh)

	s.screen.Clear()
	for y := 0; y < rows; y++ {
		row := glyphs[y*width : y*width+cols]
		for x, r := range row {
			s.screen.SetContent(x0+x, y0+y, r, nil, s.style)
		}
	}
	s.screen.Show()
	return nil
}

func (s *TcellScreen) Actions() <-chan Action {
	return s.actions
}

// Close finalizes the screen. Safe to call multiple times
func (s *TcellScreen) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.screen.Fini()
	})
	return nil
}

func (s *TcellScreen) poll() {
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		// nil after Fini
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if a := actionForKey(ev); a != ActionNone {
				select {
				case s.actions <- a:
				case <-s.done:
					return
				default:
				}
			}
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

// actionForKey maps a tcell key event
func actionForKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyUp, tcell.KeyRight:
		return ActionFaster
	case tcell.KeyDown, tcell.KeyLeft:
		return ActionSlower
	case tcell.KeyRune:
		return actionForRune(ev.Rune())
	default:
		return ActionNone
	}
}
