package shell

import (
	"strings"
	"testing"

	"vtos/device/keyboard"
	"vtos/device/tty"
	"vtos/device/video/console"
)

type keyEvent struct {
	code     keyboard.Keycode
	released bool
}

// keyboardMock replays a queue of key events.
type keyboardMock struct {
	events []keyEvent
}

func (kb *keyboardMock) KeyPressed() bool { return len(kb.events) != 0 }

func (kb *keyboardMock) ReadEvent() (keyboard.Keycode, bool) {
	ev := kb.events[0]
	kb.events = kb.events[1:]
	return ev.code, ev.released
}

// keycodeFor returns the keycode that produces ch.
func keycodeFor(t *testing.T, ch byte) keyboard.Keycode {
	t.Helper()
	for code := keyboard.Keycode(0); code < 0x80; code++ {
		if got, ok := keyboard.ToASCII(code); ok && got == ch {
			return code
		}
	}

	t.Fatalf("no keycode produces %q", ch)
	return 0
}

func typeString(t *testing.T, sh *Shell, s string) {
	t.Helper()
	for i := 0; i < len(s); i++ {
		code := keycodeFor(t, s[i])
		sh.HandleKey(code, false)
		sh.HandleKey(code, true)
	}
}

func newTestShell(screens int) (*Shell, *tty.Terminal, *console.MemSurface) {
	term := tty.NewTerminal(screens)
	surface := console.NewMemSurface()
	term.AttachTo(surface, nil)
	term.WriteString(Prompt)

	return New(term, nil), term, surface
}

func TestShellEchoAndBackspace(t *testing.T) {
	sh, term, surface := newTestShell(1)

	typeString(t, sh, "abc")
	if exp, got := "abc", sh.Line(); got != exp {
		t.Fatalf("expected line %q; got %q", exp, got)
	}
	if exp, got := "> abc", surface.Row(0); got != exp {
		t.Fatalf("expected row 0 to be %q; got %q", exp, got)
	}

	typeString(t, sh, "\b\b\b")
	if got := sh.Line(); got != "" {
		t.Fatalf("expected empty line; got %q", got)
	}

	// Backspace on an empty line never erases the prompt.
	typeString(t, sh, "\b")
	if exp, got := ">", surface.Row(0); got != exp {
		t.Fatalf("expected row 0 to be %q; got %q", exp, got)
	}
	if row, col := sh.CursorPosition(); row != 0 || col != 2 {
		t.Fatalf("expected cursor at (0, 2); got (%d, %d)", row, col)
	}

	// Non printable keys are ignored.
	sh.HandleKey(keyboard.KeyEscape, false)
	sh.HandleKey(0x2a, false) // left shift
	if row, col := term.CursorPosition(); row != 0 || col != 2 {
		t.Fatalf("expected cursor at (0, 2); got (%d, %d)", row, col)
	}
}

func TestShellLineLimit(t *testing.T) {
	sh, _, _ := newTestShell(1)

	typeString(t, sh, strings.Repeat("x", LineSize+10))
	if exp, got := LineSize-1, len(sh.Line()); got != exp {
		t.Fatalf("expected line length %d; got %d", exp, got)
	}
}

func TestShellCommands(t *testing.T) {
	helpRows := []string{
		"clear - Clear the screen",
		"help - Show this list",
		"color <fg> <bg> - Set the text color (0-15 or a name)",
		"screen <n> - Switch to virtual screen n",
		"gdt - Dump the descriptor table",
		"stack - Print a kernel stack trace",
	}

	specs := []struct {
		input   string
		expRows []string
	}{
		{"\n", []string{">", ">"}},
		{"   \n", []string{">", ">"}},
		{
			"foo\n",
			append(append([]string{"> foo", "", "Unknown command. Available commands:"}, helpRows...), ">"),
		},
		{
			"help\n",
			append(append([]string{"> help", "Available commands:"}, helpRows...), ">"),
		},
		{"color 1\n", []string{"> color 1", "Usage: color <fg> <bg>", ">"}},
		{"color 16 0\n", []string{"> color 16 0", "Usage: color <fg> <bg>", ">"}},
		{"color white blue x\n", []string{"> color white blue x", "Usage: color <fg> <bg>", ">"}},
		{"screen\n", []string{"> screen", "Usage: screen <n>", ">"}},
		{"screen 2\n", []string{"> screen 2", "screen: no such screen", ">"}},
		{"screen 1\n", []string{"> screen 1", ">"}},
		{"gdt\n", []string{"> gdt", "Entry  Base        Limit     Access  Gran"}},
	}

	for specIndex, spec := range specs {
		sh, _, surface := newTestShell(1)
		typeString(t, sh, spec.input)

		for row, exp := range spec.expRows {
			if got := surface.Row(row); got != exp {
				t.Errorf("[spec %d] expected row %d to be %q; got %q", specIndex, row, exp, got)
			}
		}

		if got := sh.Line(); got != "" {
			t.Errorf("[spec %d] expected line buffer to be reset; got %q", specIndex, got)
		}
	}
}

func TestShellClear(t *testing.T) {
	sh, term, surface := newTestShell(1)

	typeString(t, sh, "foo\nclear\n")

	if exp, got := ">", surface.Row(0); got != exp {
		t.Fatalf("expected row 0 to be %q; got %q", exp, got)
	}

	for row := 1; row < console.Height; row++ {
		if got := surface.Row(row); got != "" {
			t.Fatalf("expected row %d to be blank; got %q", row, got)
		}
	}

	if row, col := term.CursorPosition(); row != 0 || col != 2 {
		t.Fatalf("expected cursor at (0, 2); got (%d, %d)", row, col)
	}
}

func TestShellColor(t *testing.T) {
	specs := []struct {
		input string
		exp   console.Attr
	}{
		{"color 15 1\n", console.MakeAttr(console.White, console.Blue)},
		{"color yellow red\n", console.MakeAttr(console.LightBrown, console.Red)},
		{"color  0   7 \n", console.MakeAttr(console.Black, console.LightGrey)},
		{"color pink black\n", console.DefaultAttr},
	}

	for specIndex, spec := range specs {
		sh, term, _ := newTestShell(1)
		typeString(t, sh, spec.input)

		if got := term.Color(); got != spec.exp {
			t.Errorf("[spec %d] expected attribute 0x%x; got 0x%x", specIndex, spec.exp, got)
		}
	}
}

func TestShellScreenSwitching(t *testing.T) {
	sh, term, surface := newTestShell(3)

	typeString(t, sh, "ab")

	sh.HandleKey(keyboard.KeyF2, false)
	if got := term.ActiveIndex(); got != 1 {
		t.Fatalf("expected F2 to activate screen 1; got %d", got)
	}
	if got := sh.Line(); got != "" {
		t.Fatalf("expected screen 1 to have its own empty line; got %q", got)
	}

	typeString(t, sh, "x")
	if exp, got := "> x", surface.Row(0); got != exp {
		t.Fatalf("expected row 0 to be %q; got %q", exp, got)
	}

	// Key releases and switches to missing screens are ignored.
	sh.HandleKey(keyboard.KeyF1, true)
	sh.HandleKey(keyboard.KeyF12, false)
	if got := term.ActiveIndex(); got != 1 {
		t.Fatalf("expected screen 1 to stay active; got %d", got)
	}

	sh.HandleKey(keyboard.KeyF1, false)
	if exp, got := "ab", sh.Line(); got != exp {
		t.Fatalf("expected screen 0 line %q; got %q", exp, got)
	}
	if exp, got := "> ab", surface.Row(0); got != exp {
		t.Fatalf("expected row 0 to be %q; got %q", exp, got)
	}

	// Finishing the line on screen 0 runs it there.
	typeString(t, sh, "\b\bscreen 3\n")
	if got := term.ActiveIndex(); got != 2 {
		t.Fatalf("expected screen command to activate screen 2; got %d", got)
	}
	if exp, got := ">", surface.Row(0); got != exp {
		t.Fatalf("expected a single prompt on screen 2; got %q", got)
	}
	if row, col := term.CursorPosition(); row != 0 || col != 2 {
		t.Fatalf("expected cursor at (0, 2); got (%d, %d)", row, col)
	}

	sh.HandleKey(keyboard.KeyF1, false)
	if got := sh.Line(); got != "" {
		t.Fatalf("expected executed line on screen 0 to be reset; got %q", got)
	}
}

func TestShellPoll(t *testing.T) {
	sh, term, surface := newTestShell(2)

	kb := &keyboardMock{}
	for _, ch := range []byte("hi") {
		code := keycodeFor(t, ch)
		kb.events = append(kb.events, keyEvent{code, false}, keyEvent{code, true})
	}
	kb.events = append(kb.events, keyEvent{keyboard.KeyF2, false})
	sh.Init(term, kb)

	for i := 0; i < 10; i++ {
		sh.Poll()
	}

	if len(kb.events) != 0 {
		t.Fatalf("expected all events to be consumed; %d left", len(kb.events))
	}

	if got := term.ActiveIndex(); got != 1 {
		t.Fatalf("expected screen 1 to be active; got %d", got)
	}

	if exp, got := "> hi", term.Screen(0).Row(0); got != exp {
		t.Fatalf("expected screen 0 row 0 to be %q; got %q", exp, got)
	}

	if exp, got := ">", surface.Row(0); got != exp {
		t.Fatalf("expected surface to show the screen 1 prompt; got %q", got)
	}

	// Polling without a keyboard is a no-op.
	New(term, nil).Poll()
}

func TestNextToken(t *testing.T) {
	specs := []struct {
		in, expTok, expRest string
	}{
		{"", "", ""},
		{"   ", "", ""},
		{"clear", "clear", ""},
		{"  color 1 2", "color", " 1 2"},
	}

	for specIndex, spec := range specs {
		tok, rest := nextToken([]byte(spec.in))
		if string(tok) != spec.expTok || string(rest) != spec.expRest {
			t.Errorf("[spec %d] expected (%q, %q); got (%q, %q)", specIndex, spec.expTok, spec.expRest, tok, rest)
		}
	}
}
