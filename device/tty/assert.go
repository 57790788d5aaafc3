package tty

import (
	"vtos/device/video/console"
	"vtos/kernel/kfmt"
)

// panicFn is mocked by tests.
var panicFn = kfmt.Panic

// cellIndex returns the buffer offset of (row, col). The state machine never
// produces an out of range position; if it ever does, debug builds (tag
// vtdebug) panic while release builds clamp to the nearest cell so that an
// invalid offset can never reach display memory.
func cellIndex(row, col int) uint32 {
	if index, ok := console.Index(row, col); ok {
		return index
	}

	if debugAsserts {
		panicFn(errOutOfBounds)
	}

	return clampIndex(row, col)
}

func clampIndex(row, col int) uint32 {
	switch {
	case row < 0:
		row = 0
	case row >= console.Height:
		row = console.Height - 1
	}

	switch {
	case col < 0:
		col = 0
	case col >= console.Width:
		col = console.Width - 1
	}

	return uint32(row*console.Width + col)
}
