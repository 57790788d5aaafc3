package console

// The dimensions of the EGA text mode (mode 0x3) display in characters.
const (
	Width  = 80
	Height = 25

	// CellCount is the number of cells in a full frame.
	CellCount = Width * Height
)

// Color is one of the 16 EGA palette indices.
type Color uint8

// The EGA palette.
const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGrey
	DarkGrey
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	LightBrown
	White
)

// Attr is a display attribute byte: the foreground color in the low nibble and
// the background color in the high nibble.
type Attr uint8

// DefaultAttr is light grey text on a black background.
const DefaultAttr = Attr(LightGrey) | Attr(Black)<<4

// MakeAttr packs a foreground and a background color into an attribute byte.
// Colors outside the palette are masked to their low 4 bits.
func MakeAttr(fg, bg Color) Attr {
	return Attr(fg&0xf) | Attr(bg&0xf)<<4
}

// Fg returns the foreground color of the attribute.
func (a Attr) Fg() Color { return Color(a & 0xf) }

// Bg returns the background color of the attribute.
func (a Attr) Bg() Color { return Color(a >> 4) }

// Cell is the content of a single grid position in the exact layout the
// display hardware expects: the character code in the low byte and the
// attribute in the high byte.
type Cell uint16

// MakeCell packs a character and an attribute into a Cell. Cells must never be
// assembled by hand.
func MakeCell(ch byte, attr Attr) Cell {
	return Cell(ch) | Cell(attr)<<8
}

// BlankCell returns a space using the supplied attribute.
func BlankCell(attr Attr) Cell {
	return MakeCell(' ', attr)
}

// Char returns the character code stored in the cell.
func (c Cell) Char() byte { return byte(c) }

// Attr returns the attribute stored in the cell.
func (c Cell) Attr() Attr { return Attr(c >> 8) }

// Index returns the row-major offset of (row, col) and whether the position
// lies inside the display grid.
func Index(row, col int) (uint32, bool) {
	if row < 0 || row >= Height || col < 0 || col >= Width {
		return 0, false
	}
	return uint32(row*Width + col), true
}
