package main

import (
	"github.com/gdamore/tcell/v2"

	"vtos/device/keyboard"
)

// keyEvent is a single scancode as the keyboard controller would report it.
type keyEvent struct {
	code     keyboard.Keycode
	released bool
}

// keyQueue implements keyboard.Keyboard on top of host input. Every host key
// press is queued as a make code followed by its break code.
type keyQueue struct {
	events []keyEvent
}

// KeyPressed reports whether an event is waiting to be read.
func (q *keyQueue) KeyPressed() bool {
	return len(q.events) > 0
}

// ReadEvent removes and returns the oldest queued event.
func (q *keyQueue) ReadEvent() (keyboard.Keycode, bool) {
	if len(q.events) == 0 {
		return 0, false
	}

	ev := q.events[0]
	q.events = q.events[1:]
	return ev.code, ev.released
}

// press queues a make and break code pair for code.
func (q *keyQueue) press(code keyboard.Keycode) {
	q.events = append(q.events, keyEvent{code: code}, keyEvent{code: code, released: true})
}

// asciiKeys is the reverse of the keyboard layout: it maps an ASCII character
// to the key that produces it.
var asciiKeys [128]keyboard.Keycode

func init() {
	for code := keyboard.Keycode(1); code < 0x80; code++ {
		if ch, ok := keyboard.ToASCII(code); ok && asciiKeys[ch] == 0 {
			asciiKeys[ch] = code
		}
	}
}

// keyForRune returns the key that produces r. Upper case letters map to their
// lower case key since the layout has no shift state.
func keyForRune(r rune) (keyboard.Keycode, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r < 0 || r >= rune(len(asciiKeys)) || asciiKeys[r] == 0 {
		return 0, false
	}

	return asciiKeys[r], true
}

// functionKeys maps F1-F12 to their scancodes.
var functionKeys = [...]keyboard.Keycode{
	keyboard.KeyF1, keyboard.KeyF2, keyboard.KeyF3, keyboard.KeyF4,
	keyboard.KeyF5, keyboard.KeyF6, keyboard.KeyF7, keyboard.KeyF8,
	keyboard.KeyF9, keyboard.KeyF10, keyboard.KeyF11, keyboard.KeyF12,
}

// translateKey maps a tcell key event to a scancode.
func translateKey(ev *tcell.EventKey) (keyboard.Keycode, bool) {
	switch key := ev.Key(); {
	case key >= tcell.KeyF1 && key <= tcell.KeyF12:
		return functionKeys[key-tcell.KeyF1], true
	case key == tcell.KeyEnter:
		return keyboard.KeyEnter, true
	case key == tcell.KeyBackspace || key == tcell.KeyBackspace2:
		return keyboard.KeyBackspace, true
	case key == tcell.KeyTab:
		return keyboard.KeyTab, true
	case key == tcell.KeyEscape:
		return keyboard.KeyEscape, true
	case key == tcell.KeyRune:
		return keyForRune(ev.Rune())
	}

	return 0, false
}

// Control bytes with a special meaning for the headless input decoder.
// Ctrl-C and Ctrl-D end the session.
const (
	ctrlC = 0x03
	ctrlD = 0x04
	esc   = 0x1b
)

// byteDecoder turns a raw terminal byte stream into scancodes. It understands
// the xterm escape sequences for the function keys: ESC O P-S for F1-F4 and
// ESC [ n ~ for F1-F12.
type byteDecoder struct {
	seq [8]byte
	n   int
}

// Feed consumes b and returns the completed key, if any.
func (d *byteDecoder) Feed(b byte) (keyboard.Keycode, bool) {
	if d.n == 0 {
		if b == esc {
			d.seq[0] = b
			d.n = 1
			return 0, false
		}
		return keyForByte(b)
	}

	d.seq[d.n] = b
	d.n++

	switch {
	case d.n == 2 && b != '[' && b != 'O':
		// A lone escape. The byte that followed it is dropped.
		d.n = 0
		return keyboard.KeyEscape, true
	case d.n == 3 && d.seq[1] == 'O':
		d.n = 0
		if b >= 'P' && b <= 'S' {
			return functionKeys[b-'P'], true
		}
		return 0, false
	case d.n > 2 && d.seq[1] == '[' && b == '~':
		code, ok := csiFunctionKey(d.seq[2 : d.n-1])
		d.n = 0
		return code, ok
	case d.n > 2 && (b < '0' || b > '9'), d.n == len(d.seq):
		d.n = 0
	}

	return 0, false
}

// csiFunctionKey maps the numeric parameter of an ESC [ n ~ sequence to a
// function key.
func csiFunctionKey(param []byte) (keyboard.Keycode, bool) {
	var n int
	for _, ch := range param {
		n = n*10 + int(ch-'0')
	}

	switch {
	case n >= 11 && n <= 15:
		return functionKeys[n-11], true
	case n >= 17 && n <= 21:
		return functionKeys[n-12], true
	case n == 23 || n == 24:
		return functionKeys[n-13], true
	}

	return 0, false
}

func keyForByte(b byte) (keyboard.Keycode, bool) {
	switch b {
	case '\r', '\n':
		return keyboard.KeyEnter, true
	case 0x7f, '\b':
		return keyboard.KeyBackspace, true
	}

	return keyForRune(rune(b))
}
