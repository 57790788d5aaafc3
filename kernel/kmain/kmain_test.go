package kmain

import (
	"testing"

	"vtos/device/tty"
	"vtos/device/video/console"
	"vtos/shell"
)

func TestStart(t *testing.T) {
	term := tty.NewTerminal(2)
	surface := console.NewMemSurface()
	term.AttachTo(surface, nil)

	var sh shell.Shell
	start(&sh, term, nil)

	expRows := []string{
		"Hello from kernel_main()",
		"--- this message was sent from the std vga device ---",
		"and thats a great boot log",
		">",
	}

	for row, exp := range expRows {
		if got := surface.Row(row); got != exp {
			t.Errorf("expected row %d to be %q; got %q", row, exp, got)
		}
	}

	if row, col := sh.CursorPosition(); row != 3 || col != 2 {
		t.Fatalf("expected cursor at (3, 2); got (%d, %d)", row, col)
	}

	// The shell is bound to the terminal.
	sh.HandleKey(0x1e, false) // a
	if exp, got := "> a", surface.Row(3); got != exp {
		t.Fatalf("expected row 3 to be %q; got %q", exp, got)
	}
}
