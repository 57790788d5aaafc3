package console

// CRTC registers that control the text mode cursor.
const (
	regCursorStart   uint8 = 0x0a
	regCursorEnd     uint8 = 0x0b
	regCursorPosHigh uint8 = 0x0e
	regCursorPosLow  uint8 = 0x0f

	// cursorDisable is bit 5 of the cursor start register. Setting it
	// hides the cursor glyph.
	cursorDisable uint8 = 0x20

	cursorScanlineStart uint8 = 0
	cursorScanlineEnd   uint8 = 15
)

// Cursor drives the blinking hardware cursor through a CursorPort. Every
// register access is followed by the port's settle delay.
type Cursor struct {
	port CursorPort
}

// NewCursor returns a cursor controller bound to port. A nil port yields a
// controller whose operations are no-ops.
func NewCursor(port CursorPort) *Cursor {
	return &Cursor{port: port}
}

// Enable shows the cursor as a full-height block (scanlines 0 to 15).
func (c *Cursor) Enable() {
	c.write(regCursorStart, cursorScanlineStart)
	c.write(regCursorEnd, cursorScanlineEnd)
}

// Disable hides the cursor glyph.
func (c *Cursor) Disable() {
	c.write(regCursorStart, cursorDisable)
}

// Update moves the cursor glyph to (row, col). Positions outside the grid are
// ignored.
func (c *Cursor) Update(row, col int) {
	pos, ok := Index(row, col)
	if !ok {
		return
	}

	c.write(regCursorPosLow, uint8(pos&0xff))
	c.write(regCursorPosHigh, uint8((pos>>8)&0xff))
}

func (c *Cursor) write(reg, val uint8) {
	if c == nil || c.port == nil {
		return
	}

	c.port.Select(reg)
	c.port.Settle()
	c.port.Data(val)
	c.port.Settle()
}
