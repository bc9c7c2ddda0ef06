//go:build !unix

package terminal

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// otherBackend uses blocking reads; stop is observed between reads
type otherBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State
}

func newBackend() backend {
	return &otherBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

func (b *otherBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return errors.New("stdin is not a terminal")
	}
	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return err
	}
	b.oldTerm = old
	saveState(b.inFd, old)
	return nil
}

func (b *otherBackend) Fini() {
	if b.oldTerm != nil {
		term.Restore(b.inFd, b.oldTerm)
		b.oldTerm = nil
		saveState(-1, nil)
	}
}

func (b *otherBackend) Size() (int, int) {
	w, h, err := term.GetSize(b.outFd)
	if err != nil || w == 0 || h == 0 {
		return 80, 24
	}
	return w, h
}

func (b *otherBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

func (b *otherBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case <-stopCh:
		return nil, nil
	default:
	}
	buf := make([]byte, 256)
	n, err := b.in.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
