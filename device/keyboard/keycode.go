package keyboard

// Keycode is a scancode set 1 make code with the release bit stripped.
type Keycode uint8

// Keycodes with a special meaning for the console.
const (
	KeyEscape    Keycode = 0x01
	KeyBackspace Keycode = 0x0e
	KeyTab       Keycode = 0x0f
	KeyEnter     Keycode = 0x1c
	KeySpace     Keycode = 0x39

	KeyF1  Keycode = 0x3b
	KeyF2  Keycode = 0x3c
	KeyF3  Keycode = 0x3d
	KeyF4  Keycode = 0x3e
	KeyF5  Keycode = 0x3f
	KeyF6  Keycode = 0x40
	KeyF7  Keycode = 0x41
	KeyF8  Keycode = 0x42
	KeyF9  Keycode = 0x43
	KeyF10 Keycode = 0x44
	KeyF11 Keycode = 0x57
	KeyF12 Keycode = 0x58
)

// releaseBit is set in the scancode the controller reports when a key is
// released.
const releaseBit = 0x80

// usLayout maps keycodes to ASCII for a US layout with no modifiers held.
// Zero entries have no ASCII representation.
var usLayout = [...]byte{
	0, 0x1b, '1', '2', '3', '4', '5', '6', '7', '8', '9', '0', '-', '=', '\b',
	'\t', 'q', 'w', 'e', 'r', 't', 'y', 'u', 'i', 'o', 'p', '[', ']', '\n',
	0, 'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';', '\'', '`',
	0, '\\', 'z', 'x', 'c', 'v', 'b', 'n', 'm', ',', '.', '/',
	0, '*', 0, ' ',
}

// ToASCII returns the ASCII character produced by code and true, or false if
// code does not produce a character.
func ToASCII(code Keycode) (byte, bool) {
	if int(code) >= len(usLayout) || usLayout[code] == 0 {
		return 0, false
	}

	return usLayout[code], true
}

// ScreenForKey maps the function keys F1-F12 to the screen indices 0-11.
func ScreenForKey(code Keycode) (int, bool) {
	switch {
	case code >= KeyF1 && code <= KeyF10:
		return int(code - KeyF1), true
	case code == KeyF11:
		return 10, true
	case code == KeyF12:
		return 11, true
	}

	return 0, false
}

// decode splits a raw scancode into a keycode and a release flag.
func decode(scancode uint8) (Keycode, bool) {
	return Keycode(scancode &^ releaseBit), scancode&releaseBit != 0
}
