package terminal

// backend abstracts the platform tty
type backend interface {
	// Init enters raw mode
	Init() error
	// Fini restores the mode saved by Init
	Fini()

	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed, or an error occurs
	// An empty result with nil error means timeout or stop
	Read(stopCh <-chan struct{}) ([]byte, error)
}

// backendWriter adapts backend to io.Writer for the bufio layer
type backendWriter struct {
	b backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
