// Package stack walks the chain of saved frame pointers on the kernel stack.
package stack

import (
	"io"
	"unsafe"

	"vtos/kernel/cpu"
	"vtos/kernel/kfmt"
)

// MaxFrames bounds the number of frames printed by Trace.
const MaxFrames = 32

const wordSize = unsafe.Sizeof(uintptr(0))

var (
	framePointerFn = cpu.FramePointer
	readWordFn     = readWord
)

func readWord(addr uintptr) uintptr {
	return *(*uintptr)(unsafe.Pointer(addr))
}

// Walk follows the saved frame pointer chain that starts at fp. For each
// frame it invokes visit with the frame pointer and the return address stored
// right above it. The walk stops when visit returns false, after limit
// frames, at a nil frame pointer or when the chain stops growing towards the
// stack base.
func Walk(fp uintptr, limit int, visit func(fp, ret uintptr) bool) {
	for frames := 0; fp != 0 && frames < limit; frames++ {
		if !visit(fp, readWordFn(fp+wordSize)) {
			return
		}

		next := readWordFn(fp)
		if next <= fp {
			return
		}
		fp = next
	}
}

// Trace writes the frames of the calling goroutine's stack to w.
func Trace(w io.Writer) {
	kfmt.Fprintf(w, "Kernel Stack Trace:\n")
	kfmt.Fprintf(w, "==================\n")

	Walk(framePointerFn(), MaxFrames, func(fp, ret uintptr) bool {
		kfmt.Fprintf(w, "RBP: 0x%16x  RIP: 0x%16x\n", fp, ret)
		return true
	})

	kfmt.Fprintf(w, "==================\n")
}
