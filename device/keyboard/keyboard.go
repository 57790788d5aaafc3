// Package keyboard provides polled access to keyboard input.
package keyboard

import (
	"io"

	"vtos/device"
	"vtos/kernel"
	"vtos/kernel/cpu"
	"vtos/kernel/kfmt"
)

// Keyboard is implemented by devices that deliver key events.
type Keyboard interface {
	// KeyPressed returns true if an event is waiting to be read.
	KeyPressed() bool

	// ReadEvent returns the next key event and whether it is a key
	// release. The result is undefined if KeyPressed returned false.
	ReadEvent() (Keycode, bool)
}

// The i8042 controller ports.
const (
	dataPort   = 0x60
	statusPort = 0x64

	// statusOutputFull is set while the controller output buffer holds
	// a byte for the CPU.
	statusOutputFull = 1 << 0
)

var portReadByteFn = cpu.PortReadByte

// PS2 polls the i8042 controller for scancode set 1 key events.
type PS2 struct{}

// KeyPressed implements Keyboard.
func (*PS2) KeyPressed() bool {
	return portReadByteFn(statusPort)&statusOutputFull != 0
}

// ReadEvent implements Keyboard.
func (*PS2) ReadEvent() (Keycode, bool) {
	return decode(portReadByteFn(dataPort))
}

// DriverName returns the name of this driver.
func (*PS2) DriverName() string {
	return "ps2_keyboard"
}

// DriverVersion returns the version of this driver.
func (*PS2) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit drains any scancodes queued before the driver was loaded.
func (kb *PS2) DriverInit(w io.Writer) *kernel.Error {
	var drained int
	for ; kb.KeyPressed() && drained < maxDrain; drained++ {
		portReadByteFn(dataPort)
	}

	kfmt.Fprintf(w, "discarded %d stale scancodes\n", drained)
	return nil
}

// maxDrain bounds the number of bytes discarded by DriverInit so a
// controller that never clears its status bit cannot stall the boot.
const maxDrain = 16

var ps2 PS2

func probeForPS2() device.Driver {
	return &ps2
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderInput,
		Probe: probeForPS2,
	})
}
