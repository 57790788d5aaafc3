package console

import (
	"vtos/kernel"
	"vtos/kernel/cpu"
	"vtos/kernel/hal/multiboot"
)

var (
	errNoFramebuffer = &kernel.Error{Module: "vga_text", Message: "framebuffer address not set"}

	storeWordFn          = cpu.StoreWord
	portWriteByteFn      = cpu.PortWriteByte
	ioWaitFn             = cpu.IOWait
	getFramebufferInfoFn = multiboot.GetFramebufferInfo
)
