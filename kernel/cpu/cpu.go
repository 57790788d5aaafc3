// Package cpu exposes the handful of privileged instructions the kernel
// needs: port I/O, ordered stores to device memory, interrupt control and
// descriptor table loading.
package cpu

// postPort is the POST diagnostic port. Writes to it have no side effects
// and take roughly 1us to complete on ISA-compatible chipsets.
const postPort = 0x80

var portWriteByteFn = PortWriteByte

// IOWait stalls for one I/O bus cycle by writing to the POST diagnostic port.
// Devices behind slow buses (CRTC, PIC, UART) may need this between
// consecutive register accesses.
func IOWait() {
	portWriteByteFn(postPort, 0)
}
