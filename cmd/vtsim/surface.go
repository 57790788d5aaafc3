package main

import (
	"github.com/gdamore/tcell/v2"

	"vtos/device/video/console"
)

// palette maps the 16 text mode colors to their tcell counterparts.
var palette = [16]tcell.Color{
	console.Black:        tcell.ColorBlack,
	console.Blue:         tcell.ColorNavy,
	console.Green:        tcell.ColorGreen,
	console.Cyan:         tcell.ColorTeal,
	console.Red:          tcell.ColorMaroon,
	console.Magenta:      tcell.ColorPurple,
	console.Brown:        tcell.ColorOlive,
	console.LightGrey:    tcell.ColorSilver,
	console.DarkGrey:     tcell.ColorGray,
	console.LightBlue:    tcell.ColorBlue,
	console.LightGreen:   tcell.ColorLime,
	console.LightCyan:    tcell.ColorAqua,
	console.LightRed:     tcell.ColorRed,
	console.LightMagenta: tcell.ColorFuchsia,
	console.LightBrown:   tcell.ColorYellow,
	console.White:        tcell.ColorWhite,
}

// styleFor returns the tcell style matching a cell attribute.
func styleFor(attr console.Attr) tcell.Style {
	return tcell.StyleDefault.
		Foreground(palette[attr.Fg()]).
		Background(palette[attr.Bg()])
}

// screenSurface renders terminal cells onto a tcell screen. Changes become
// visible on the next call to Show.
type screenSurface struct {
	screen tcell.Screen
	port   screenCursorPort
}

func newScreenSurface(screen tcell.Screen) *screenSurface {
	return &screenSurface{
		screen: screen,
		port:   screenCursorPort{screen: screen},
	}
}

// WriteCell implements console.Surface.
func (s *screenSurface) WriteCell(index uint32, cell console.Cell) {
	if index >= console.CellCount {
		return
	}

	ch := rune(cell.Char())
	if ch < ' ' || ch > '~' {
		ch = ' '
	}

	s.screen.SetContent(int(index%console.Width), int(index/console.Width), ch, nil, styleFor(cell.Attr()))
}

// CursorPort implements console.CursorPortProvider.
func (s *screenSurface) CursorPort() console.CursorPort {
	return &s.port
}

// CRTC cursor registers emulated by screenCursorPort.
const (
	regCursorStart   = 0x0a
	regCursorPosHigh = 0x0e
	regCursorPosLow  = 0x0f

	cursorDisable = 0x20
)

// screenCursorPort emulates the CRTC cursor registers and mirrors their state
// to the cursor of a tcell screen.
type screenCursorPort struct {
	screen tcell.Screen

	selected uint8
	pos      uint16
	hidden   bool
}

// Select implements console.CursorPort.
func (p *screenCursorPort) Select(reg uint8) {
	p.selected = reg
}

// Data implements console.CursorPort.
func (p *screenCursorPort) Data(val uint8) {
	switch p.selected {
	case regCursorStart:
		p.hidden = val&cursorDisable != 0
	case regCursorPosHigh:
		p.pos = p.pos&0x00ff | uint16(val)<<8
	case regCursorPosLow:
		p.pos = p.pos&0xff00 | uint16(val)
	default:
		return
	}

	p.apply()
}

// Settle implements console.CursorPort. The emulated registers need no delay.
func (p *screenCursorPort) Settle() {}

func (p *screenCursorPort) apply() {
	if p.hidden || uint32(p.pos) >= console.CellCount {
		p.screen.HideCursor()
		return
	}

	p.screen.ShowCursor(int(p.pos)%console.Width, int(p.pos)/console.Width)
}
