// Package gdt builds and loads the global descriptor table.
package gdt

import (
	"encoding/binary"
	"io"
	"unsafe"

	"vtos/kernel/cpu"
	"vtos/kernel/kfmt"
)

// EntryCount is the number of descriptors in the table.
const EntryCount = 6

// Segment selectors. The selector of descriptor i is i*8.
const (
	SelectorKernelCode uint16 = 0x08
	SelectorKernelData uint16 = 0x10
	SelectorUserCode   uint16 = 0x18
	SelectorUserData   uint16 = 0x20
	SelectorTSS        uint16 = 0x28
)

// Access byte flags.
const (
	AccessPresent   uint8 = 0x80
	AccessRing0     uint8 = 0x00
	AccessRing3     uint8 = 0x60
	AccessCode      uint8 = 0x18
	AccessData      uint8 = 0x10
	AccessReadWrite uint8 = 0x02
	AccessExecute   uint8 = 0x08
)

// Granularity flags. They occupy the high nibble of the granularity byte;
// the low nibble holds bits 16-19 of the limit.
const (
	Gran4K       uint8 = 0x80
	Gran32Bit    uint8 = 0x40
	GranLongMode uint8 = 0x20
)

// flatLimit spans the whole address space when combined with Gran4K.
const flatLimit uint32 = 0xfffff

// Entry is a segment descriptor in the exact layout the CPU expects.
type Entry struct {
	limitLow    uint16
	baseLow     uint16
	baseMiddle  uint8
	access      uint8
	granularity uint8
	baseHigh    uint8
}

// makeEntry packs a base, a 20-bit limit and the access and granularity
// flags into a descriptor.
func makeEntry(base, limit uint32, access, gran uint8) Entry {
	return Entry{
		limitLow:    uint16(limit & 0xffff),
		baseLow:     uint16(base & 0xffff),
		baseMiddle:  uint8((base >> 16) & 0xff),
		access:      access,
		granularity: uint8((limit>>16)&0x0f) | (gran & 0xf0),
		baseHigh:    uint8((base >> 24) & 0xff),
	}
}

// Base returns the segment base address.
func (e Entry) Base() uint32 {
	return uint32(e.baseHigh)<<24 | uint32(e.baseMiddle)<<16 | uint32(e.baseLow)
}

// Limit returns the 20-bit segment limit.
func (e Entry) Limit() uint32 {
	return uint32(e.granularity&0x0f)<<16 | uint32(e.limitLow)
}

// Access returns the access byte.
func (e Entry) Access() uint8 {
	return e.access
}

// Granularity returns the granularity byte including the high limit bits.
func (e Entry) Granularity() uint8 {
	return e.granularity
}

var (
	table [EntryCount]Entry

	// gdtr is the pseudo-descriptor passed to lgdt: a 16-bit limit
	// followed by the 64-bit table address.
	gdtr [10]byte

	loaded bool

	loadGDTFn = cpu.LoadGDT
)

// codeGran returns the granularity flags for code segments. In long mode the
// L bit must be set and the D bit cleared.
func codeGran() uint8 {
	if unsafe.Sizeof(uintptr(0)) == 8 {
		return Gran4K | GranLongMode
	}
	return Gran4K | Gran32Bit
}

// Init populates the descriptor table with the null, kernel code, kernel
// data, user code, user data and TSS placeholder descriptors and loads it.
// Calls after the first one are no-ops.
func Init() {
	if loaded {
		return
	}

	kfmt.Printf("[gdt] building %d descriptors\n", EntryCount)

	setGate(0, 0, 0, 0, 0)
	setGate(1, 0, flatLimit, AccessPresent|AccessRing0|AccessCode|AccessExecute, codeGran())
	setGate(2, 0, flatLimit, AccessPresent|AccessRing0|AccessData|AccessReadWrite, Gran4K|Gran32Bit)
	setGate(3, 0, flatLimit, AccessPresent|AccessRing3|AccessCode|AccessExecute, codeGran())
	setGate(4, 0, flatLimit, AccessPresent|AccessRing3|AccessData|AccessReadWrite, Gran4K|Gran32Bit)
	setGate(5, 0, 0, 0, 0)

	binary.LittleEndian.PutUint16(gdtr[0:], uint16(unsafe.Sizeof(table)-1))
	binary.LittleEndian.PutUint64(gdtr[2:], uint64(uintptr(unsafe.Pointer(&table[0]))))

	loadGDTFn(uintptr(unsafe.Pointer(&gdtr[0])))
	loaded = true

	kfmt.Printf("[gdt] loaded table at 0x%16x\n", uintptr(unsafe.Pointer(&table[0])))
}

func setGate(index int, base, limit uint32, access, gran uint8) {
	kfmt.Printf("[gdt] setting gate 0x%x\n", index)
	table[index] = makeEntry(base, limit, access, gran)
}

// Entries returns a copy of the descriptor table.
func Entries() [EntryCount]Entry {
	return table
}

// Dump writes a human readable listing of the descriptor table to w.
func Dump(w io.Writer) {
	kfmt.Fprintf(w, "Entry  Base        Limit     Access  Gran\n")
	kfmt.Fprintf(w, "----------------------------------------\n")
	for i, e := range table {
		kfmt.Fprintf(w, "%5d  0x%8x  0x%5x   0x%2x    0x%2x\n", i, e.Base(), e.Limit(), e.Access(), e.Granularity())
	}
}
