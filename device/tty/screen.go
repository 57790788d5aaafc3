package tty

import "vtos/device/video/console"

// Screen is one virtual terminal: a full-frame cell buffer together with its
// own cursor position and attribute. A Screen is only mutated while it is the
// active screen of its Terminal.
type Screen struct {
	buffer [console.CellCount]console.Cell

	row, col int
	attr     console.Attr

	// initialized is set the first time the screen becomes active.
	initialized bool
}

// reset blanks the buffer using attr and homes the cursor.
func (s *Screen) reset(attr console.Attr) {
	s.attr = attr
	blank := console.BlankCell(attr)
	for i := range s.buffer {
		s.buffer[i] = blank
	}
	s.row, s.col = 0, 0
	s.initialized = false
}

// Cell returns the cell at (row, col) or 0 if the position is outside the
// grid.
func (s *Screen) Cell(row, col int) console.Cell {
	index, ok := console.Index(row, col)
	if !ok {
		return 0
	}
	return s.buffer[index]
}

// CursorPosition returns the logical cursor position as (row, col).
func (s *Screen) CursorPosition() (int, int) {
	return s.row, s.col
}

// Attr returns the attribute applied to newly written cells.
func (s *Screen) Attr() console.Attr {
	return s.attr
}

// Initialized returns true if the screen has ever been active.
func (s *Screen) Initialized() bool {
	return s.initialized
}

// Row returns the characters of row as a string with trailing blanks removed.
func (s *Screen) Row(row int) string {
	if row < 0 || row >= console.Height {
		return ""
	}

	var (
		line [console.Width]byte
		end  int
	)
	for col := 0; col < console.Width; col++ {
		line[col] = s.buffer[row*console.Width+col].Char()
		if line[col] != ' ' {
			end = col + 1
		}
	}

	return string(line[:end])
}
