//go:build !amd64

package cpu

import "unsafe"

// The kernel only targets amd64. These definitions allow hosted tools such as
// the terminal simulator to be built on other architectures; none of them is
// ever invoked outside the kernel image.

// DisableInterrupts is a no-op on this architecture.
func DisableInterrupts() {}

// Halt spins forever.
func Halt() {
	for {
	}
}

// PortWriteByte is a no-op on this architecture.
func PortWriteByte(_ uint16, _ uint8) {}

// PortReadByte always returns 0 on this architecture.
func PortReadByte(_ uint16) uint8 { return 0 }

// StoreWord writes val to the 16-bit word at addr.
//
//go:noinline
func StoreWord(addr uintptr, val uint16) {
	*(*uint16)(unsafe.Pointer(addr)) = val
}

// FramePointer always returns 0 on this architecture.
func FramePointer() uintptr { return 0 }

// LoadGDT is a no-op on this architecture.
func LoadGDT(_ uintptr) {}
