package main

import (
	"bufio"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"

	"vtos/device/tty"
	"vtos/device/video/console"
	"vtos/shell"
)

// session connects a terminal shown on a tcell screen to the shell.
type session struct {
	screen tcell.Screen
	term   *tty.Terminal
	kb     keyQueue
	sh     *shell.Shell
}

func newSession(screen tcell.Screen, term *tty.Terminal) *session {
	surface := newScreenSurface(screen)
	term.AttachTo(surface, surface.CursorPort())

	s := &session{screen: screen, term: term}
	s.sh = startShell(term, &s.kb)
	screen.Show()
	return s
}

// handle processes a single tcell event. It returns false once the session
// should end.
func (s *session) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		// The screen was finalized.
		return false
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if code, ok := translateKey(ev); ok {
			s.kb.press(code)
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}

	for s.kb.KeyPressed() {
		s.sh.Poll()
	}
	s.screen.Show()
	return true
}

func runInteractive(term *tty.Terminal) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err = screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	s := newSession(screen, term)
	for s.handle(screen.PollEvent()) {
	}

	return nil
}

// runHeadless renders term into memory and feeds it the keys read from in
// until in is exhausted or a Ctrl-C or Ctrl-D byte is read. The final frame
// is then written to out.
func runHeadless(term *tty.Terminal, in io.Reader, out io.Writer) error {
	if f, ok := in.(*os.File); ok {
		if raw, err := openRaw(f); err == nil {
			defer func() {
				_ = raw.Restore()
				_ = raw.Close()
			}()
			in = raw
		}
	}

	surface := console.NewMemSurface()
	term.AttachTo(surface, nil)

	var (
		kb  keyQueue
		dec byteDecoder
		sh  = startShell(term, &kb)
		r   = bufio.NewReader(in)
	)

	for {
		b, err := r.ReadByte()
		if err == io.EOF || b == ctrlC || b == ctrlD {
			break
		}
		if err != nil {
			return err
		}

		if code, ok := dec.Feed(b); ok {
			kb.press(code)
		}
		for kb.KeyPressed() {
			sh.Poll()
		}
	}

	return surface.Dump(out)
}
