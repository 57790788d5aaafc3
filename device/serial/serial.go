// Package serial implements a polled 16550 UART driver that is used as the
// kernel log sink.
package serial

import (
	"io"

	"vtos/device"
	"vtos/kernel"
	"vtos/kernel/cpu"
	"vtos/kernel/kfmt"
)

// COM1 is the I/O base of the first serial port.
const COM1 uint16 = 0x3f8

// UART register offsets relative to the port base.
const (
	regData        = 0 // THR (write), DLL when DLAB is set
	regIntEnable   = 1 // IER, DLM when DLAB is set
	regFIFOControl = 2
	regLineControl = 3
	regModemCtrl   = 4
	regLineStatus  = 5
)

const (
	lcrDLAB    = 0x80
	lcr8N1     = 0x03
	fcrEnable  = 0xc7 // enable and clear FIFOs, 14-byte threshold
	mcrDTRRTS  = 0x0b // DTR, RTS and OUT2
	lsrTxEmpty = 0x20

	// divisor115200 selects 115200 baud with the standard 1.8432MHz clock.
	divisor115200 = 1

	// txSpinLimit bounds the number of LSR polls before a byte is
	// dropped. A missing or wedged UART must never stall the console.
	txSpinLimit = 1 << 16
)

var (
	portWriteByteFn = cpu.PortWriteByte
	portReadByteFn  = cpu.PortReadByte
)

// Port is a polled UART.
type Port struct {
	base    uint16
	dropped uint64
}

// NewPort returns a Port for the UART at the supplied I/O base.
func NewPort(base uint16) *Port {
	return &Port{base: base}
}

// Dropped returns the number of bytes discarded because the transmitter did
// not become ready in time.
func (p *Port) Dropped() uint64 {
	return p.dropped
}

// WriteByte transmits b once the transmit holding register is empty. If the
// register does not drain within a bounded number of polls the byte is
// dropped and counted; WriteByte never reports an error.
func (p *Port) WriteByte(b byte) error {
	for spins := 0; portReadByteFn(p.base+regLineStatus)&lsrTxEmpty == 0; spins++ {
		if spins == txSpinLimit {
			p.dropped++
			return nil
		}
	}

	portWriteByteFn(p.base+regData, b)
	return nil
}

// Write implements io.Writer.
func (p *Port) Write(data []byte) (int, error) {
	for _, b := range data {
		_ = p.WriteByte(b)
	}

	return len(data), nil
}

// DriverName returns the name of this driver.
func (p *Port) DriverName() string {
	return "serial_com1"
}

// DriverVersion returns the version of this driver.
func (p *Port) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit programs the UART for 115200 8N1 with FIFOs enabled and
// interrupts disabled.
func (p *Port) DriverInit(w io.Writer) *kernel.Error {
	portWriteByteFn(p.base+regIntEnable, 0)
	portWriteByteFn(p.base+regLineControl, lcrDLAB)
	portWriteByteFn(p.base+regData, divisor115200&0xff)
	portWriteByteFn(p.base+regIntEnable, divisor115200>>8)
	portWriteByteFn(p.base+regLineControl, lcr8N1)
	portWriteByteFn(p.base+regFIFOControl, fcrEnable)
	portWriteByteFn(p.base+regModemCtrl, mcrDTRRTS)

	kfmt.Fprintf(w, "port 0x%x, 115200 8N1\n", p.base)
	return nil
}

// com1 backs the port handed out by the probe; the kernel image has no heap
// to allocate it from.
var com1 Port

func probeForCOM1() device.Driver {
	com1 = Port{base: COM1}
	return &com1
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderEarly,
		Probe: probeForCOM1,
	})
}
