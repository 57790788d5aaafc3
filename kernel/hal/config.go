package hal

import (
	"vtos/device/tty"
	"vtos/device/video/console"
	"vtos/kernel/hal/multiboot"
	"vtos/kernel/kfmt"
)

// Config holds the terminal settings that can be overridden from the boot
// command line:
//
//	vt.screens=<1-12>  number of virtual screens
//	vt.fg=<0-15>       foreground color
//	vt.bg=<0-15>       background color
//	vt.cursor=off      hide the hardware cursor
//	serial=off         do not log to the serial port
type Config struct {
	Screens int
	Fg, Bg  console.Color
	Cursor  bool
	Serial  bool
}

// DefaultConfig returns the settings used when the command line does not
// override them.
func DefaultConfig() Config {
	return Config{
		Screens: tty.MaxScreens,
		Fg:      console.LightGrey,
		Bg:      console.Black,
		Cursor:  true,
		Serial:  true,
	}
}

// LoadConfig returns the default configuration updated with the options found
// on the boot command line.
func LoadConfig() Config {
	cfg := DefaultConfig()
	multiboot.VisitBootCmdLine(cfg.Set)
	return cfg
}

// Set applies a single command line option. Unknown keys are ignored; invalid
// values are logged and leave the setting unchanged.
func (c *Config) Set(key, value string) {
	var ok bool

	switch key {
	case "vt.screens":
		var n int
		if n, ok = parseDec(value); ok && n >= 1 && n <= tty.MaxScreens {
			c.Screens = n
		} else {
			ok = false
		}
	case "vt.fg":
		c.Fg, ok = parseColor(value, c.Fg)
	case "vt.bg":
		c.Bg, ok = parseColor(value, c.Bg)
	case "vt.cursor":
		c.Cursor, ok = parseSwitch(value, c.Cursor)
	case "serial":
		c.Serial, ok = parseSwitch(value, c.Serial)
	default:
		return
	}

	if !ok {
		kfmt.Printf("[hal] ignoring invalid value %s for %s\n", value, key)
	}
}

func parseColor(value string, cur console.Color) (console.Color, bool) {
	n, ok := parseDec(value)
	if !ok || n > int(console.White) {
		return cur, false
	}
	return console.Color(n), true
}

func parseSwitch(value string, cur bool) (bool, bool) {
	switch value {
	case "on":
		return true, true
	case "off":
		return false, true
	}
	return cur, false
}

// parseDec parses a short run of decimal digits without allocating.
func parseDec(value string) (int, bool) {
	if len(value) == 0 || len(value) > 4 {
		return 0, false
	}

	var n int
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, false
		}
		n = n*10 + int(value[i]-'0')
	}
	return n, true
}
