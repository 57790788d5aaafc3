// Package device defines the driver model shared by all hardware drivers:
// every driver registers a probe function together with a detection order and
// the hal package runs the probes during boot.
package device

import (
	"io"

	"vtos/kernel"
)

// Driver is an interface implemented by all drivers.
type Driver interface {
	// DriverName returns the name of the driver.
	DriverName() string

	// DriverVersion returns the driver version.
	DriverVersion() (major uint16, minor uint16, patch uint16)

	// DriverInit initializes the device driver. If the driver init code
	// needs to log some output, it can use the supplied io.Writer in
	// conjunction with a call to kfmt.Fprintf.
	DriverInit(io.Writer) *kernel.Error
}

// ProbeFn is a function that scans for the presence of a particular
// piece of hardware and returns a driver for it or nil if the hardware is
// not present.
type ProbeFn func() Driver

// DetectOrder specifies when a driver is probed relative to other drivers.
type DetectOrder int8

const (
	// DetectOrderEarly is used by drivers that the rest of the boot
	// sequence relies on, e.g. the serial log sink.
	DetectOrderEarly DetectOrder = -128 + iota

	// DetectOrderConsole is used by display hardware drivers.
	DetectOrderConsole

	// DetectOrderInput is used by input device drivers.
	DetectOrderInput

	// DetectOrderLast is used by drivers that depend on devices detected
	// by all other orders, e.g. the terminal engine.
	DetectOrderLast = 127
)

// DriverInfo is a driver-defined struct that is passed to calls to RegisterDriver.
type DriverInfo struct {
	// Order specifies at which stage of the HW detection step the probe
	// function should be invoked.
	Order DetectOrder

	// Probe is a function that checks for the presence of a particular
	// piece of hardware and returns back a driver for it.
	Probe ProbeFn
}

// DriverInfoList is a list of registered drivers that implements sort.Interface.
type DriverInfoList []*DriverInfo

// Len returns the length of the driver info list.
func (l DriverInfoList) Len() int { return len(l) }

// Swap exchanges 2 elements in the driver info list.
func (l DriverInfoList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Less compares 2 elements of the driver info list.
func (l DriverInfoList) Less(i, j int) bool { return l[i].Order < l[j].Order }

var registeredDrivers DriverInfoList

// RegisterDriver adds the supplied driver info to the list of registered
// drivers. Drivers call it from an init() block.
func RegisterDriver(info *DriverInfo) {
	registeredDrivers = append(registeredDrivers, info)
}

// DriverList returns the list of registered drivers.
func DriverList() DriverInfoList {
	return registeredDrivers
}
