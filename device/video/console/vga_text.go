package console

import (
	"io"

	"vtos/device"
	"vtos/kernel"
	"vtos/kernel/kfmt"
)

// DefaultFramebufferAddr is the physical address of the EGA/VGA text mode
// framebuffer.
const DefaultFramebufferAddr uintptr = 0xb8000

var (
	// The kernel image has no heap; the probe hands out these statically
	// allocated instances.
	vgaText VgaTextSurface
	vgaCRTC = CRTCPort{settleIterations: DefaultSettleIterations}
)

// VgaTextSurface is the memory-mapped 80x25 VGA text mode framebuffer. Each
// cell occupies two bytes (character, attribute) in row-major order.
//
// Every write is issued through cpu.StoreWord so that the compiler never
// caches, merges, reorders or drops a store to device memory.
type VgaTextSurface struct {
	fbPhysAddr uintptr
	port       *CRTCPort
}

// NewVgaTextSurface creates a text surface whose framebuffer lives at
// fbPhysAddr. The kernel runs with the low 1GiB identity mapped so the
// physical address can be used directly.
func NewVgaTextSurface(fbPhysAddr uintptr) *VgaTextSurface {
	return &VgaTextSurface{
		fbPhysAddr: fbPhysAddr,
		port:       NewCRTCPort(DefaultSettleIterations),
	}
}

// WriteCell stores cell at the row-major index. Out of range indices are
// dropped before they can reach device memory.
func (s *VgaTextSurface) WriteCell(index uint32, cell Cell) {
	if index >= CellCount {
		return
	}

	storeWordFn(s.fbPhysAddr+uintptr(index)<<1, uint16(cell))
}

// CursorPort returns the CRTC register pair that drives the cursor of this
// display.
func (s *VgaTextSurface) CursorPort() CursorPort {
	if s.port == nil {
		return nil
	}
	return s.port
}

// DriverName returns the name of this driver.
func (s *VgaTextSurface) DriverName() string {
	return "vga_text"
}

// DriverVersion returns the version of this driver.
func (s *VgaTextSurface) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit initializes this driver.
func (s *VgaTextSurface) DriverInit(w io.Writer) *kernel.Error {
	if s.fbPhysAddr == 0 {
		return errNoFramebuffer
	}

	kfmt.Fprintf(w, "%dx%d text framebuffer at 0x%x\n", Width, Height, s.fbPhysAddr)
	return nil
}

// probeForVgaTextSurface checks whether the bootloader left the display in EGA
// text mode. When no framebuffer information is available the display is
// assumed to be in the BIOS default text mode at 0xb8000.
func probeForVgaTextSurface() device.Driver {
	var fbAddr uintptr

	fbInfo := getFramebufferInfoFn()
	switch {
	case fbInfo == nil:
		fbAddr = DefaultFramebufferAddr
	case fbInfo.IsEGAText(Width, Height):
		fbAddr = uintptr(fbInfo.PhysAddr)
	default:
		return nil
	}

	vgaText = VgaTextSurface{fbPhysAddr: fbAddr, port: &vgaCRTC}
	return &vgaText
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderConsole,
		Probe: probeForVgaTextSurface,
	})
}
