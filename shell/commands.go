package shell

import (
	"vtos/device/video/console"
	"vtos/kernel/gdt"
	"vtos/kernel/stack"
)

// command is a built-in shell command. args holds the raw bytes that follow
// the command name.
type command struct {
	name  string
	usage string
	help  string
	run   func(sh *Shell, args []byte)
}

// commands is a fixed array assigned in init; the command functions refer back
// to it through printCommands.
var commands [6]command

func init() {
	commands = [...]command{
		{"clear", "clear", "Clear the screen", (*Shell).cmdClear},
		{"help", "help", "Show this list", (*Shell).cmdHelp},
		{"color", "color <fg> <bg>", "Set the text color (0-15 or a name)", (*Shell).cmdColor},
		{"screen", "screen <n>", "Switch to virtual screen n", (*Shell).cmdScreen},
		{"gdt", "gdt", "Dump the descriptor table", (*Shell).cmdGDT},
		{"stack", "stack", "Print a kernel stack trace", (*Shell).cmdStack},
	}
}

// execute runs the command in line. Empty lines are ignored.
func (sh *Shell) execute(line []byte) {
	name, rest := nextToken(line)
	if len(name) == 0 {
		return
	}

	for i := range commands {
		if string(name) == commands[i].name {
			commands[i].run(sh, rest)
			return
		}
	}

	sh.term.WriteString("\nUnknown command. Available commands:\n")
	sh.printCommands()
}

func (sh *Shell) printCommands() {
	for i := range commands {
		sh.term.WriteString(commands[i].usage)
		sh.term.WriteString(" - ")
		sh.term.WriteString(commands[i].help)
		sh.term.PutChar('\n')
	}
}

func (sh *Shell) cmdClear(_ []byte) {
	sh.term.Clear()
}

func (sh *Shell) cmdHelp(_ []byte) {
	sh.term.WriteString("Available commands:\n")
	sh.printCommands()
}

func (sh *Shell) cmdColor(args []byte) {
	fgTok, rest := nextToken(args)
	bgTok, rest := nextToken(rest)
	extra, _ := nextToken(rest)

	fg, fgOK := parseColor(fgTok)
	bg, bgOK := parseColor(bgTok)
	if !fgOK || !bgOK || len(extra) != 0 {
		sh.term.WriteString("Usage: color <fg> <bg>\n")
		return
	}

	sh.term.SetColor(console.MakeAttr(fg, bg))
}

// cmdScreen switches to a screen using the 1-based numbering of the F-keys.
func (sh *Shell) cmdScreen(args []byte) {
	tok, rest := nextToken(args)
	extra, _ := nextToken(rest)

	n, ok := parseDec(tok)
	if !ok || len(extra) != 0 {
		sh.term.WriteString("Usage: screen <n>\n")
		return
	}

	if n < 1 || n > sh.term.ScreenCount() {
		sh.term.WriteString("screen: no such screen\n")
		return
	}

	_ = sh.term.SwitchTo(n - 1)
}

func (sh *Shell) cmdGDT(_ []byte) {
	gdt.Dump(sh.term)
}

func (sh *Shell) cmdStack(_ []byte) {
	stack.Trace(sh.term)
}

// colorNames lists the palette in index order.
var colorNames = [...]string{
	"black", "blue", "green", "cyan", "red", "magenta", "brown", "lightgrey",
	"darkgrey", "lightblue", "lightgreen", "lightcyan", "lightred",
	"lightmagenta", "yellow", "white",
}

// parseColor accepts either a palette index or a color name.
func parseColor(tok []byte) (console.Color, bool) {
	if n, ok := parseDec(tok); ok {
		if n > int(console.White) {
			return 0, false
		}
		return console.Color(n), true
	}

	for i, name := range colorNames {
		if string(tok) == name {
			return console.Color(i), true
		}
	}

	return 0, false
}

// parseDec parses a non-empty run of decimal digits.
func parseDec(tok []byte) (int, bool) {
	if len(tok) == 0 || len(tok) > 4 {
		return 0, false
	}

	var n int
	for _, ch := range tok {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		n = n*10 + int(ch-'0')
	}

	return n, true
}

// nextToken skips leading spaces and returns the next space-delimited token
// and the remaining input.
func nextToken(in []byte) ([]byte, []byte) {
	start := 0
	for start < len(in) && in[start] == ' ' {
		start++
	}

	end := start
	for end < len(in) && in[end] != ' ' {
		end++
	}

	return in[start:end], in[end:]
}
