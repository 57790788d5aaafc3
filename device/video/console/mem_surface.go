package console

import "io"

// MemSurface is an in-memory Surface. It backs headless terminals and lets
// tests observe exactly what would have reached the display hardware.
type MemSurface struct {
	cells  [CellCount]Cell
	writes int
}

// NewMemSurface returns a MemSurface whose cells are all zero, matching a
// display that has not been written to yet.
func NewMemSurface() *MemSurface {
	return &MemSurface{}
}

// WriteCell stores cell at the row-major index.
func (s *MemSurface) WriteCell(index uint32, cell Cell) {
	if index >= CellCount {
		return
	}

	s.cells[index] = cell
	s.writes++
}

// Cell returns the cell stored at (row, col) or 0 if the position is outside
// the grid.
func (s *MemSurface) Cell(row, col int) Cell {
	index, ok := Index(row, col)
	if !ok {
		return 0
	}
	return s.cells[index]
}

// Writes returns the number of cell writes the surface has received.
func (s *MemSurface) Writes() int {
	return s.writes
}

// Row returns the characters of row as a string with trailing blanks removed.
func (s *MemSurface) Row(row int) string {
	if row < 0 || row >= Height {
		return ""
	}

	var line [Width]byte
	end := 0
	for col := 0; col < Width; col++ {
		ch := s.cells[row*Width+col].Char()
		if ch == 0 {
			ch = ' '
		}
		line[col] = ch
		if ch != ' ' {
			end = col + 1
		}
	}

	return string(line[:end])
}

// Dump writes all rows to w, one line per row.
func (s *MemSurface) Dump(w io.Writer) error {
	for row := 0; row < Height; row++ {
		if _, err := io.WriteString(w, s.Row(row)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
