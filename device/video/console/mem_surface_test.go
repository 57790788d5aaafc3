package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemSurface(t *testing.T) {
	s := NewMemSurface()
	attr := MakeAttr(White, Blue)

	for i, ch := range []byte("hi there") {
		s.WriteCell(uint32(Width+i), MakeCell(ch, attr))
	}

	// dropped
	s.WriteCell(CellCount, MakeCell('X', attr))

	if got := s.Writes(); got != 8 {
		t.Fatalf("expected 8 writes; got %d", got)
	}

	if got := s.Cell(1, 1); got != MakeCell('i', attr) {
		t.Fatalf("expected cell (1, 1) to be 'i'; got %q", got.Char())
	}

	if got := s.Cell(Height, 0); got != 0 {
		t.Fatalf("expected out of range cell to be 0; got 0x%x", got)
	}

	if got := s.Row(1); got != "hi there" {
		t.Fatalf("expected row 1 to be %q; got %q", "hi there", got)
	}

	var buf bytes.Buffer
	if err := s.Dump(&buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(buf.String(), "\n")
	if len(lines) != Height+1 || lines[1] != "hi there" || lines[0] != "" {
		t.Fatalf("unexpected dump output:\n%s", buf.String())
	}
}
