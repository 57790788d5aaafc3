package kmain

import (
	"vtos/device/keyboard"
	"vtos/kernel"
	"vtos/kernel/cpu"
	"vtos/kernel/gdt"
	"vtos/kernel/hal"
	"vtos/kernel/hal/multiboot"
	"vtos/kernel/kfmt"
	"vtos/shell"
)

// banner is printed on screen 0 once the terminal is up.
const banner = "Hello from kernel_main()\n" +
	"--- this message was sent from the std vga device ---\n" +
	"and thats a great boot log\n"

var (
	errNoTerminal = &kernel.Error{Module: "kmain", Message: "no terminal device detected"}

	// bootShell is statically allocated; the kernel image has no heap.
	bootShell shell.Shell
)

// Kmain is the only Go symbol that is visible (exported) from the rt0
// initialization code. This function is invoked by the rt0 assembly code after
// setting up a minimal g0 struct that allows Go code to use the 4K stack
// allocated by the assembly code.
//
// The rt0 code passes the address of the multiboot info payload provided by
// the bootloader as well as the physical addresses for the kernel start/end.
//
// Kmain is not expected to return. If it does, the rt0 code will halt the CPU.
//
//go:noinline
func Kmain(multibootInfoPtr, _, _ uintptr) {
	multiboot.SetInfoPtr(multibootInfoPtr)

	cpu.DisableInterrupts()
	gdt.Init()
	hal.DetectHardware()

	term := hal.ActiveTerminal()
	if term == nil {
		kfmt.Panic(errNoTerminal)
	}

	start(&bootShell, term, hal.ActiveKeyboard())
	for {
		bootShell.Poll()
	}
}

// start prints the boot banner and the first prompt on term and binds sh to
// term and kb.
func start(sh *shell.Shell, term shell.Console, kb keyboard.Keyboard) {
	term.WriteString(banner)
	term.WriteString(shell.Prompt)
	sh.Init(term, kb)

	kfmt.Printf("[kmain] shell ready on %d screens\n", term.ScreenCount())
}
