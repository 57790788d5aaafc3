// Command vtsim runs the virtual terminal and its command shell as a regular
// process. The 80x25 text grid is rendered with tcell and host key presses are
// translated into keyboard scancodes; F1-F12 switch between the virtual
// screens exactly like they do on real hardware.
//
// With -headless the terminal renders into memory instead and input is read
// from stdin, which makes it possible to script sessions:
//
//	printf 'color 14 1\nhelp\n' | vtsim -headless
//
// Kernel log output is discarded unless -serial names a serial device.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"vtos/device/tty"
	"vtos/device/video/console"
	"vtos/kernel/kfmt"
	"vtos/shell"
)

var (
	screens  = flag.Int("screens", tty.MaxScreens, "number of virtual screens (1-12)")
	fg       = flag.Uint("fg", uint(console.LightGrey), "foreground color (0-15)")
	bg       = flag.Uint("bg", uint(console.Black), "background color (0-15)")
	serialTo = flag.String("serial", "", "serial device receiving the kernel log")
	baud     = flag.Uint("baud", 115200, "serial device baud rate")
	headless = flag.Bool("headless", false, "read keys from stdin and print the final frame on exit")
	vizTo    = flag.String("memviz", "", "write a graphviz dump of the terminal state to this file on exit")
)

// banner is printed on screen 0 before the first prompt.
const banner = "vtsim: F1-F12 switch screens, Ctrl-C quits\n"

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[vtsim] error: %s\n", err.Error())
	os.Exit(1)
}

func main() {
	flag.Parse()

	if *screens < 1 || *screens > tty.MaxScreens {
		exit(fmt.Errorf("screen count must be between 1 and %d; got %d", tty.MaxScreens, *screens))
	}
	if *fg > uint(console.White) || *bg > uint(console.White) {
		exit(errors.New("colors must be between 0 and 15"))
	}

	if *serialTo != "" {
		port, err := openSerialSink(*serialTo, *baud)
		if err != nil {
			exit(err)
		}
		defer port.Close()

		kfmt.SetOutputSink(port)
	}

	term := new(tty.Terminal)
	term.Reset(*screens, console.MakeAttr(console.Color(*fg), console.Color(*bg)))

	var err error
	if *headless {
		err = runHeadless(term, os.Stdin, os.Stdout)
	} else {
		err = runInteractive(term)
	}
	if err != nil {
		exit(err)
	}

	if *vizTo != "" {
		if err := dumpState(*vizTo, term); err != nil {
			exit(err)
		}
	}
}

// startShell prints the banner and the first prompt on term and returns a
// shell that reads keys from kb.
func startShell(term *tty.Terminal, kb *keyQueue) *shell.Shell {
	term.WriteString(banner)
	term.WriteString(shell.Prompt)

	kfmt.Printf("[vtsim] shell ready on %d screens\n", term.ScreenCount())
	return shell.New(term, kb)
}
