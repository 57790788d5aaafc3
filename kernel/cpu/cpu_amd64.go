package cpu

// DisableInterrupts disables interrupt handling. The kernel polls its
// devices and never turns interrupts back on.
func DisableInterrupts()

// Halt stops instruction execution.
func Halt()

// PortWriteByte writes a uint8 value to the requested port.
func PortWriteByte(port uint16, val uint8)

// PortReadByte reads a uint8 value from the requested port.
func PortReadByte(port uint16) uint8

// StoreWord writes val to the 16-bit word at addr. The store is performed by
// an assembly routine so the compiler can neither inline it nor cache, merge,
// reorder or drop it relative to the surrounding code. It is the only way
// device memory such as the VGA text buffer may be written.
func StoreWord(addr uintptr, val uint16)

// FramePointer returns the frame pointer (RBP) of the calling function.
func FramePointer() uintptr

// LoadGDT loads the descriptor table whose 10-byte pseudo-descriptor
// (16-bit limit followed by a 64-bit base) lives at gdtrAddr and reloads the
// data segment registers with the kernel data selector.
func LoadGDT(gdtrAddr uintptr)
