package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"vtos/device/tty"
	"vtos/device/video/console"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(console.Width, console.Height)
	return screen
}

// screenRow returns the characters of row as a string with trailing blanks
// removed.
func screenRow(screen tcell.Screen, row int) string {
	var sb strings.Builder
	for col := 0; col < console.Width; col++ {
		ch, _, _, _ := screen.GetContent(col, row)
		if ch == 0 {
			ch = ' '
		}
		sb.WriteRune(ch)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestScreenSurfaceWriteCell(t *testing.T) {
	screen := newSimScreen(t)
	defer screen.Fini()

	surface := newScreenSurface(screen)
	attr := console.MakeAttr(console.LightBrown, console.Blue)

	specs := []struct {
		row, col int
		ch       byte
		expCh    rune
	}{
		{0, 0, 'a', 'a'},
		{1, 2, '~', '~'},
		{24, 79, 'z', 'z'},
		{3, 3, 0x07, ' '},
		{4, 4, 0xdb, ' '},
	}

	for specIndex, spec := range specs {
		index, _ := console.Index(spec.row, spec.col)
		surface.WriteCell(index, console.MakeCell(spec.ch, attr))

		ch, _, style, _ := screen.GetContent(spec.col, spec.row)
		if ch != spec.expCh {
			t.Errorf("[spec %d] expected char %q; got %q", specIndex, spec.expCh, ch)
		}
		if exp := styleFor(attr); style != exp {
			t.Errorf("[spec %d] expected style %v; got %v", specIndex, exp, style)
		}
	}

	// out of bounds writes are ignored
	surface.WriteCell(console.CellCount, console.MakeCell('x', attr))
}

func TestStyleFor(t *testing.T) {
	fg, bg, _ := styleFor(console.MakeAttr(console.White, console.Red)).Decompose()
	if fg != tcell.ColorWhite || bg != tcell.ColorMaroon {
		t.Fatalf("expected white on maroon; got %v on %v", fg, bg)
	}
}

func TestScreenCursorPort(t *testing.T) {
	screen := newSimScreen(t)
	defer screen.Fini()

	surface := newScreenSurface(screen)
	cursor := console.NewCursor(surface.CursorPort())

	cursor.Enable()
	cursor.Update(3, 5)
	if x, y, visible := screen.GetCursor(); x != 5 || y != 3 || !visible {
		t.Fatalf("expected visible cursor at (5, 3); got (%d, %d) visible: %t", x, y, visible)
	}

	cursor.Update(24, 79)
	if x, y, _ := screen.GetCursor(); x != 79 || y != 24 {
		t.Fatalf("expected cursor at (79, 24); got (%d, %d)", x, y)
	}

	cursor.Disable()
	if _, _, visible := screen.GetCursor(); visible {
		t.Fatal("expected cursor to be hidden")
	}

	cursor.Enable()
	if x, y, visible := screen.GetCursor(); x != 79 || y != 24 || !visible {
		t.Fatalf("expected cursor to reappear at (79, 24); got (%d, %d) visible: %t", x, y, visible)
	}
}

func TestSession(t *testing.T) {
	screen := newSimScreen(t)
	defer screen.Fini()

	term := new(tty.Terminal)
	term.Reset(2, console.DefaultAttr)
	s := newSession(screen, term)

	if got := screenRow(screen, 0); got != strings.TrimRight(banner, "\n") {
		t.Fatalf("expected banner on row 0; got %q", got)
	}
	if got := screenRow(screen, 1); got != ">" {
		t.Fatalf("expected prompt on row 1; got %q", got)
	}

	keys := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone),
	}
	for _, ev := range keys {
		if !s.handle(ev) {
			t.Fatal("expected session to keep running")
		}
	}

	if got := term.ActiveIndex(); got != 1 {
		t.Fatalf("expected screen 1 to be active; got %d", got)
	}
	if got := screenRow(screen, 0); got != "> x" {
		t.Fatalf("expected row 0 of screen 1 to read %q; got %q", "> x", got)
	}
	if x, y, _ := screen.GetCursor(); x != 3 || y != 0 {
		t.Fatalf("expected cursor at (3, 0); got (%d, %d)", x, y)
	}

	if !s.handle(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone)) {
		t.Fatal("expected session to keep running")
	}
	if got := screenRow(screen, 0); got != strings.TrimRight(banner, "\n") {
		t.Fatalf("expected banner after switching back; got %q", got)
	}

	if s.handle(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Fatal("expected Ctrl-C to end the session")
	}
	if s.handle(nil) {
		t.Fatal("expected a nil event to end the session")
	}
}

func TestRunHeadless(t *testing.T) {
	specs := []struct {
		input   string
		expRows []string
	}{
		{
			"screen 2\nhi",
			[]string{"> hi"},
		},
		{
			"\x1b[12~x\x04ignored",
			[]string{"> x"},
		},
		{
			"clear\nab\x7fc",
			[]string{"> ac"},
		},
	}

	for specIndex, spec := range specs {
		term := new(tty.Terminal)
		term.Reset(2, console.DefaultAttr)

		var out bytes.Buffer
		if err := runHeadless(term, strings.NewReader(spec.input), &out); err != nil {
			t.Errorf("[spec %d] unexpected error: %v", specIndex, err)
			continue
		}

		rows := strings.Split(out.String(), "\n")
		if len(rows) != console.Height+1 {
			t.Errorf("[spec %d] expected %d rows; got %d", specIndex, console.Height, len(rows)-1)
			continue
		}

		for i, exp := range spec.expRows {
			if rows[i] != exp {
				t.Errorf("[spec %d] expected row %d to read %q; got %q", specIndex, i, exp, rows[i])
			}
		}
	}
}
