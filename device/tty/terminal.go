package tty

import (
	"io"

	"vtos/device"
	"vtos/device/video/console"
	"vtos/kernel"
	"vtos/kernel/kfmt"
)

const (
	// MaxScreens is the number of virtual screens a Terminal can host. It
	// covers the screens reachable through the F1-F12 keys.
	MaxScreens = 12

	// TabWidth defines the tab stop interval.
	TabWidth = 8

	// promptText is written to a screen the first time it becomes active.
	promptText = "> "
)

var (
	// ErrInvalidIndex is returned when switching to a screen that does not
	// exist.
	ErrInvalidIndex = &kernel.Error{Module: "tty", Message: "invalid screen index"}

	errOutOfBounds = &kernel.Error{Module: "tty", Message: "cell index out of bounds"}
)

// Terminal multiplexes a fixed set of virtual screens onto a single display
// surface. Exactly one screen is active at any time; every change to the
// active screen is mirrored cell by cell to the surface and followed by a
// hardware cursor update.
//
// The terminal interprets the following special characters:
//   - \n (line feed; implies carriage return)
//   - \t (advance to the next multiple of TabWidth)
//   - \b (destructive backspace; wraps to the end of the previous row)
//
// All other bytes are written verbatim; there is no escape sequence support.
type Terminal struct {
	screens     [MaxScreens]Screen
	screenCount int
	active      int

	surface console.Surface
	cursor  *console.Cursor
}

// NewTerminal creates a terminal with screenCount blank screens using the
// default attribute. screenCount is clamped to [1, MaxScreens]. Screen 0 is
// active.
func NewTerminal(screenCount int) *Terminal {
	t := &Terminal{}
	t.Reset(screenCount, console.DefaultAttr)
	return t
}

// Reset detaches the terminal from its surface and blanks all screens using
// attr, which also becomes the attribute of every screen. screenCount is
// clamped to [1, MaxScreens] and screen 0 becomes the active screen.
func (t *Terminal) Reset(screenCount int, attr console.Attr) {
	*t = Terminal{screenCount: clampScreenCount(screenCount)}
	for i := range t.screens {
		t.screens[i].reset(attr)
	}
}

func clampScreenCount(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxScreens:
		return MaxScreens
	}
	return n
}

// AttachTo connects the terminal to a display surface and an optional cursor
// port. The active screen is marked as initialized, its contents are copied
// to the surface and the hardware cursor is enabled and synchronized.
func (t *Terminal) AttachTo(surface console.Surface, port console.CursorPort) {
	if surface == nil {
		return
	}

	t.surface = surface
	t.cursor = console.NewCursor(port)
	t.screens[t.active].initialized = true

	t.repaint()
	t.cursor.Enable()
	t.syncCursor()
}

// SetCursorVisible shows or hides the hardware cursor glyph.
func (t *Terminal) SetCursorVisible(visible bool) {
	if visible {
		t.cursor.Enable()
		t.syncCursor()
		return
	}

	t.cursor.Disable()
}

// ScreenCount returns the number of usable screens.
func (t *Terminal) ScreenCount() int {
	return t.screenCount
}

// SetScreenCount lowers or raises the number of usable screens. Counts
// outside [1, MaxScreens] or that would leave the active screen unreachable
// are rejected with ErrInvalidIndex.
func (t *Terminal) SetScreenCount(n int) *kernel.Error {
	if n < 1 || n > MaxScreens || t.active >= n {
		return ErrInvalidIndex
	}

	t.screenCount = n
	return nil
}

// ActiveIndex returns the index of the active screen.
func (t *Terminal) ActiveIndex() int {
	return t.active
}

// Active returns the active screen.
func (t *Terminal) Active() *Screen {
	return &t.screens[t.active]
}

// Screen returns the screen at index or nil if index is not a usable screen.
func (t *Terminal) Screen(index int) *Screen {
	if index < 0 || index >= t.screenCount {
		return nil
	}
	return &t.screens[index]
}

// SwitchTo makes the screen at index the active one and copies its contents
// to the display surface. A screen that becomes active for the first time
// gets a fresh prompt. Switching to an invalid index returns ErrInvalidIndex
// and leaves the terminal untouched.
func (t *Terminal) SwitchTo(index int) *kernel.Error {
	if index < 0 || index >= t.screenCount {
		return ErrInvalidIndex
	}

	t.active = index
	t.repaint()

	if s := &t.screens[index]; !s.initialized {
		s.initialized = true
		t.WriteString(promptText)
	}

	t.syncCursor()
	return nil
}

// CursorPosition returns the cursor position of the active screen as
// (row, col).
func (t *Terminal) CursorPosition() (int, int) {
	return t.screens[t.active].CursorPosition()
}

// SetCursorPosition moves the cursor of the active screen to (row, col).
// Positions outside the grid are clipped to it.
func (t *Terminal) SetCursorPosition(row, col int) {
	s := &t.screens[t.active]

	index := clampIndex(row, col)
	s.row, s.col = int(index)/console.Width, int(index)%console.Width
	t.syncCursor()
}

// Color returns the attribute of the active screen.
func (t *Terminal) Color() console.Attr {
	return t.screens[t.active].attr
}

// SetColor sets the attribute applied to cells subsequently written to the
// active screen.
func (t *Terminal) SetColor(attr console.Attr) {
	t.screens[t.active].attr = attr
}

// Clear blanks the active screen using its current attribute and moves the
// cursor to the top-left corner.
func (t *Terminal) Clear() {
	s := &t.screens[t.active]
	blank := console.BlankCell(s.attr)
	for index := uint32(0); index < console.CellCount; index++ {
		t.setCell(s, index, blank)
	}

	s.row, s.col = 0, 0
	t.syncCursor()
}

// Write implements io.Writer. It returns io.ErrClosedPipe if the terminal is
// not attached to a surface.
func (t *Terminal) Write(data []byte) (int, error) {
	if t.surface == nil {
		return 0, io.ErrClosedPipe
	}

	for _, b := range data {
		t.PutChar(b)
	}

	return len(data), nil
}

// WriteByte implements io.ByteWriter.
func (t *Terminal) WriteByte(b byte) error {
	if t.surface == nil {
		return io.ErrClosedPipe
	}

	t.PutChar(b)
	return nil
}

// WriteString writes each byte of s to the active screen.
func (t *Terminal) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		t.PutChar(s[i])
	}
}

// PutChar applies a single byte to the active screen and resynchronizes the
// hardware cursor.
func (t *Terminal) PutChar(b byte) {
	s := &t.screens[t.active]

	switch b {
	case '\n':
		t.lf(s)
	case '\t':
		s.col = (s.col + TabWidth) &^ (TabWidth - 1)
		if s.col >= console.Width {
			t.lf(s)
		}
	case '\b':
		if s.col > 0 {
			s.col--
		} else if s.row > 0 {
			s.row--
			s.col = console.Width - 1
		}
		t.setCell(s, cellIndex(s.row, s.col), console.BlankCell(s.attr))
	default:
		t.setCell(s, cellIndex(s.row, s.col), console.MakeCell(b, s.attr))
		s.col++
		if s.col == console.Width {
			t.lf(s)
		}
	}

	t.syncCursor()
}

// lf moves the cursor to the start of the next row, scrolling the screen
// contents up when the cursor moves past the last row.
func (t *Terminal) lf(s *Screen) {
	s.col = 0
	s.row++
	if s.row == console.Height {
		t.scroll(s)
	}
}

// scroll moves every row of s up by one, blanks the last row and leaves the
// cursor on the last row.
func (t *Terminal) scroll(s *Screen) {
	var index uint32
	for ; index < console.CellCount-console.Width; index++ {
		t.setCell(s, index, s.buffer[index+console.Width])
	}

	blank := console.BlankCell(s.attr)
	for ; index < console.CellCount; index++ {
		t.setCell(s, index, blank)
	}

	s.row = console.Height - 1
}

// setCell stores cell in the buffer of s and, if s is the active screen,
// mirrors it to the surface.
func (t *Terminal) setCell(s *Screen, index uint32, cell console.Cell) {
	s.buffer[index] = cell
	if t.surface != nil && s == &t.screens[t.active] {
		t.surface.WriteCell(index, cell)
	}
}

// repaint copies the full buffer of the active screen to the surface in
// row-major order.
func (t *Terminal) repaint() {
	if t.surface == nil {
		return
	}

	s := &t.screens[t.active]
	for index := uint32(0); index < console.CellCount; index++ {
		t.surface.WriteCell(index, s.buffer[index])
	}
}

// syncCursor moves the hardware cursor to the logical cursor of the active
// screen.
func (t *Terminal) syncCursor() {
	s := &t.screens[t.active]
	t.cursor.Update(s.row, s.col)
}

// DriverName returns the name of this driver.
func (t *Terminal) DriverName() string {
	return "vt"
}

// DriverVersion returns the version of this driver.
func (t *Terminal) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit initializes this driver.
func (t *Terminal) DriverInit(w io.Writer) *kernel.Error {
	kfmt.Fprintf(w, "%d virtual screens, %dx%d\n", t.screenCount, console.Width, console.Height)
	return nil
}

// vt backs the terminal handed out by the probe; the kernel image has no
// heap to allocate it from.
var vt Terminal

func probeForTerminal() device.Driver {
	vt.Reset(MaxScreens, console.DefaultAttr)
	return &vt
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderLast,
		Probe: probeForTerminal,
	})
}
