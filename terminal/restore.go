package terminal

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Raw-mode state saved by the active backend, used by EmergencyReset
var (
	savedMu    sync.Mutex
	savedFd    = -1
	savedState *term.State
)

func saveState(fd int, st *term.State) {
	savedMu.Lock()
	savedFd, savedState = fd, st
	savedMu.Unlock()
}

// EmergencyReset restores a sane terminal from a crash path
// Escape sequences alone don't restore termios, so the saved raw-mode state is restored as well
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Best-effort; ignore errors in crash context
	savedMu.Lock()
	defer savedMu.Unlock()
	if savedState != nil {
		term.Restore(savedFd, savedState)
		savedState = nil
	}
}
