package main

import (
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/jacobsa/go-serial/serial"

	"vtos/device/tty"
)

// openSerialSink opens a serial device configured for 8N1 at the requested
// baud rate. The kernel log is written to it the way it would be written to
// COM1 on real hardware.
func openSerialSink(name string, baud uint) (io.ReadWriteCloser, error) {
	return serial.Open(serial.OpenOptions{
		PortName:        name,
		BaudRate:        baud,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	})
}

// dumpState writes a graphviz description of the terminal, including every
// screen buffer, to the file at path.
func dumpState(path string, term *tty.Terminal) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	memviz.Map(f, term)
	return f.Close()
}
