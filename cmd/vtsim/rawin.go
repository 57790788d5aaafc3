package main

import (
	"os"

	rawterm "github.com/pkg/term"
	"golang.org/x/term"
)

// openRaw switches the terminal behind f to raw mode so that keys arrive
// unbuffered and without echo. It fails if f is not a terminal.
func openRaw(f *os.File) (*rawterm.Term, error) {
	if !term.IsTerminal(int(f.Fd())) {
		return nil, os.ErrInvalid
	}

	return rawterm.Open(f.Name(), rawterm.RawMode)
}
