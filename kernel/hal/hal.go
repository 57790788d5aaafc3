// Package hal detects the available hardware and wires the resulting drivers
// together: the display surface and its cursor port feed the terminal engine,
// the serial port becomes the kernel log sink and the keyboard feeds the
// shell.
package hal

import (
	"bytes"
	"sort"

	"vtos/device"
	"vtos/device/keyboard"
	"vtos/device/serial"
	"vtos/device/tty"
	"vtos/device/video/console"
	"vtos/kernel/kfmt"
)

// maxDrivers bounds the number of drivers the HAL keeps track of.
const maxDrivers = 8

// managedDevices contains the devices discovered by the HAL.
type managedDevices struct {
	activeSurface  console.Surface
	activePort     console.CursorPort
	activeTerminal *tty.Terminal
	activeKeyboard keyboard.Keyboard
	activeSerial   *serial.Port

	// activeDrivers tracks all initialized device drivers.
	activeDrivers [maxDrivers]device.Driver
	driverCount   int
}

var (
	devices managedDevices
	config  = DefaultConfig()
	strBuf  bytes.Buffer
)

// ActiveTerminal returns the terminal engine or nil if none was detected.
func ActiveTerminal() *tty.Terminal {
	return devices.activeTerminal
}

// ActiveKeyboard returns the keyboard or nil if none was detected.
func ActiveKeyboard() keyboard.Keyboard {
	return devices.activeKeyboard
}

// ActiveConfig returns the configuration applied by DetectHardware.
func ActiveConfig() Config {
	return config
}

// DetectHardware loads the boot configuration, probes for hardware devices
// and initializes the appropriate drivers.
func DetectHardware() {
	config = LoadConfig()

	// Get driver list and sort by detection priority
	drivers := device.DriverList()
	sort.Stable(drivers)

	probe(drivers)
}

// probe executes the probe function for each driver and invokes
// onDriverInit for each successfully initialized driver.
func probe(driverInfoList device.DriverInfoList) {
	var w = kfmt.PrefixWriter{Sink: kfmt.OutputSink()}

	for _, info := range driverInfoList {
		drv := info.Probe()
		if drv == nil {
			continue
		}

		strBuf.Reset()
		major, minor, patch := drv.DriverVersion()
		kfmt.Fprintf(&strBuf, "[hal] %s(%d.%d.%d): ", drv.DriverName(), major, minor, patch)
		w.Prefix = strBuf.Bytes()

		applyConfig(drv)
		if err := drv.DriverInit(&w); err != nil {
			kfmt.Fprintf(&w, "init failed: %s\n", err.Message)
			continue
		}

		kfmt.Fprintf(&w, "initialized\n")
		onDriverInit(drv)

		// The serial port may have just become the log sink.
		w.Sink = kfmt.OutputSink()

		if devices.driverCount < maxDrivers {
			devices.activeDrivers[devices.driverCount] = drv
			devices.driverCount++
		}
	}
}

// applyConfig is invoked by probe() before a driver is initialized so that
// the driver reports and runs with the boot configuration.
func applyConfig(drv device.Driver) {
	if term, ok := drv.(*tty.Terminal); ok && devices.activeTerminal == nil {
		term.Reset(config.Screens, console.MakeAttr(config.Fg, config.Bg))
	}
}

// onDriverInit is invoked by probe() whenever a piece of hardware is detected
// and successfully initialized. The first driver of each kind wins.
func onDriverInit(drv device.Driver) {
	switch drvImpl := drv.(type) {
	case *serial.Port:
		if devices.activeSerial != nil || !config.Serial {
			return
		}

		devices.activeSerial = drvImpl
		kfmt.SetOutputSink(drvImpl)
	case *tty.Terminal:
		if devices.activeTerminal != nil {
			return
		}

		devices.activeTerminal = drvImpl
		if devices.activeSurface != nil {
			linkTerminalToSurface()
		}
	case keyboard.Keyboard:
		if devices.activeKeyboard != nil {
			return
		}

		devices.activeKeyboard = drvImpl
	case console.Surface:
		onSurfaceInit(drvImpl)
	}
}

// onSurfaceInit is invoked whenever a display surface is initialized. The
// first surface becomes the active one and, if a terminal is present, it is
// linked to it.
func onSurfaceInit(surface console.Surface) {
	if devices.activeSurface != nil {
		return
	}

	devices.activeSurface = surface
	if provider, ok := surface.(console.CursorPortProvider); ok {
		devices.activePort = provider.CursorPort()
	}

	if devices.activeTerminal != nil {
		linkTerminalToSurface()
	}
}

// linkTerminalToSurface connects the active terminal to the active surface
// and syncs their contents.
func linkTerminalToSurface() {
	devices.activeTerminal.AttachTo(devices.activeSurface, devices.activePort)
	if !config.Cursor {
		devices.activeTerminal.SetCursorVisible(false)
	}
}
