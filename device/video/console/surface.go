package console

// Surface is the hardware-visible character grid. The terminal engine is its
// only writer; a surface is never read back for logic. Implementations must
// ignore writes with an index >= CellCount.
type Surface interface {
	// WriteCell stores cell at the row-major index.
	WriteCell(index uint32, cell Cell)
}

// CursorPort is the indexed register pair that controls the hardware cursor.
// A register access is performed by selecting a register and then writing its
// value to the data register.
type CursorPort interface {
	// Select chooses the register targeted by the next Data call.
	Select(reg uint8)

	// Data writes val to the selected register.
	Data(val uint8)

	// Settle blocks for the time the device needs after a register access.
	Settle()
}

// CursorPortProvider is implemented by surfaces that come with a hardware
// cursor.
type CursorPortProvider interface {
	CursorPort() CursorPort
}
