// Package shell implements the line-oriented command prompt that runs on
// every virtual screen.
package shell

import (
	"io"

	"vtos/device/keyboard"
	"vtos/device/tty"
	"vtos/device/video/console"
	"vtos/kernel"
	"vtos/kernel/kfmt"
)

const (
	// Prompt is printed whenever the shell is ready for a new command.
	Prompt = "> "

	// LineSize is the capacity of the per-screen line buffer. One byte is
	// kept in reserve so a full line holds LineSize-1 characters.
	LineSize = 256
)

// Console is the subset of the terminal engine the shell drives.
type Console interface {
	io.Writer
	WriteString(string)
	PutChar(byte)
	Clear()
	SetColor(console.Attr)
	Color() console.Attr
	SwitchTo(int) *kernel.Error
	ActiveIndex() int
	ScreenCount() int
	CursorPosition() (int, int)
}

type lineBuffer struct {
	buf [LineSize]byte
	len int
}

// Shell reads key events and interprets them as commands for the active
// screen. Each screen keeps its own partially typed line.
type Shell struct {
	term  Console
	kb    keyboard.Keyboard
	lines [tty.MaxScreens]lineBuffer
}

// New returns a shell that reads from kb and writes to term.
func New(term Console, kb keyboard.Keyboard) *Shell {
	sh := &Shell{}
	sh.Init(term, kb)
	return sh
}

// Init binds sh to term and kb and discards any partially typed lines.
func (sh *Shell) Init(term Console, kb keyboard.Keyboard) {
	sh.term = term
	sh.kb = kb
	for i := range sh.lines {
		sh.lines[i].len = 0
	}
}

// Poll handles at most one pending key event. It never blocks.
func (sh *Shell) Poll() {
	if sh.kb == nil || !sh.kb.KeyPressed() {
		return
	}

	sh.HandleKey(sh.kb.ReadEvent())
}

// HandleKey processes a single key event. Releases are ignored. Function keys
// switch screens; the resulting error is ignored as the switch is a no-op for
// screens that do not exist.
func (sh *Shell) HandleKey(code keyboard.Keycode, released bool) {
	if released {
		return
	}

	if index, ok := keyboard.ScreenForKey(code); ok {
		if err := sh.term.SwitchTo(index); err != nil {
			kfmt.Printf("[shell] ignoring switch to screen %d: %s\n", index, err.Message)
		}
		return
	}

	ch, ok := keyboard.ToASCII(code)
	if !ok {
		return
	}

	line := sh.activeLine()
	switch {
	case ch == '\b':
		if line.len > 0 {
			line.len--
			sh.term.PutChar('\b')
		}
	case ch == '\n':
		active := sh.term.ActiveIndex()
		sh.term.PutChar('\n')
		sh.execute(line.buf[:line.len])
		line.len = 0

		// A screen switch leaves the target screen at its own prompt.
		if sh.term.ActiveIndex() == active {
			sh.term.WriteString(Prompt)
		}
	case ch >= ' ' && ch <= '~':
		if line.len < LineSize-1 {
			line.buf[line.len] = ch
			line.len++
			sh.term.PutChar(ch)
		}
	}
}

// Line returns the partially typed line of the active screen.
func (sh *Shell) Line() string {
	line := sh.activeLine()
	return string(line.buf[:line.len])
}

// CursorPosition returns the terminal cursor position so callers can re-render
// the prompt.
func (sh *Shell) CursorPosition() (int, int) {
	return sh.term.CursorPosition()
}

func (sh *Shell) activeLine() *lineBuffer {
	index := sh.term.ActiveIndex()
	if index < 0 || index >= len(sh.lines) {
		index = 0
	}
	return &sh.lines[index]
}
