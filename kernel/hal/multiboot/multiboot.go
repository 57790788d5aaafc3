// Package multiboot reads the multiboot2 information block handed over by the
// bootloader. The kernel uses it for two things: the boot command line, which
// carries the terminal configuration, and the framebuffer tag, which tells
// whether the display was left in EGA text mode.
package multiboot

import (
	"strings"
	"unsafe"
)

var infoData uintptr

type tagType uint32

// nolint
const (
	tagMbSectionEnd tagType = iota
	tagBootCmdLine
	tagBootLoaderName
	tagModules
	tagBasicMemoryInfo
	tagBiosBootDevice
	tagMemoryMap
	tagVbeInfo
	tagFramebufferInfo
)

// tagHeader describes the header the preceedes each tag.
type tagHeader struct {
	// The type of the tag
	tagType tagType

	// The size of the tag including the header but *not* including any
	// padding. Each multiboot2 tag starts at an 8-byte aligned
	// address.
	size uint32
}

// FramebufferType defines the type of the initialized framebuffer.
type FramebufferType uint8

const (
	// FramebufferTypeIndexed specifies a 256-color palette.
	FramebufferTypeIndexed FramebufferType = iota

	// FramebufferTypeRGB specifies direct RGB mode.
	FramebufferTypeRGB

	// FramebufferTypeEGA specifies EGA text mode.
	FramebufferTypeEGA
)

// FramebufferInfo provides information about the initialized framebuffer.
type FramebufferInfo struct {
	// The framebuffer physical address.
	PhysAddr uint64

	// Row pitch in bytes.
	Pitch uint32

	// Width and height in pixels (or characters if Type = FramebufferTypeEGA)
	Width, Height uint32

	// Bits per pixel (non EGA modes only).
	Bpp uint8

	// Framebuffer type.
	Type FramebufferType

	reserved uint16
}

// IsEGAText returns true if the framebuffer is an EGA text mode buffer with
// the requested dimensions in characters.
func (i *FramebufferInfo) IsEGAText(width, height uint32) bool {
	return i.Type == FramebufferTypeEGA && i.Width == width && i.Height == height && i.PhysAddr != 0
}

// SetInfoPtr updates the internal multiboot information pointer to the given
// value. This function must be invoked before invoking any other function
// exported by this package.
func SetInfoPtr(ptr uintptr) {
	infoData = ptr
}

// GetFramebufferInfo returns information about the framebuffer initialized by the
// bootloader. This function returns nil if no framebuffer info is available.
func GetFramebufferInfo() *FramebufferInfo {
	curPtr, size := findTagByType(tagFramebufferInfo)
	if size == 0 {
		return nil
	}

	return (*FramebufferInfo)(unsafe.Pointer(curPtr))
}

// VisitBootCmdLine invokes visit for each space-separated key=value pair of
// the command line passed to the kernel. Flags without a value (e.g. "quiet")
// are reported with the key as their value. The strings passed to visit alias
// the multiboot info block, so VisitBootCmdLine can run before any heap
// exists.
func VisitBootCmdLine(visit func(key, value string)) {
	curPtr, size := findTagByType(tagBootCmdLine)
	if size <= 1 {
		return
	}

	// The command line is a C-style NULL-terminated string
	cmdLine := unsafe.String((*byte)(unsafe.Pointer(curPtr)), size-1)
	for len(cmdLine) != 0 {
		var pair string
		pair, cmdLine, _ = strings.Cut(cmdLine, " ")
		if pair == "" {
			continue
		}

		key, value, found := strings.Cut(pair, "=")
		if !found {
			value = key
		}
		visit(key, value)
	}
}

// findTagByType scans the multiboot info data looking for the start of of the
// specified type. It returns a pointer to the tag contents start offset and
// the content length exluding the tag header.
//
// If no info pointer has been set or the tag is not present, findTagByType
// returns (0,0).
func findTagByType(tagType tagType) (uintptr, uint32) {
	if infoData == 0 {
		return 0, 0
	}

	var ptrTagHeader *tagHeader

	curPtr := infoData + 8
	for ptrTagHeader = (*tagHeader)(unsafe.Pointer(curPtr)); ptrTagHeader.tagType != tagMbSectionEnd; ptrTagHeader = (*tagHeader)(unsafe.Pointer(curPtr)) {
		if ptrTagHeader.tagType == tagType {
			return curPtr + 8, ptrTagHeader.size - 8
		}

		// Tags are aligned at 8-byte aligned addresses
		curPtr += uintptr(int32(ptrTagHeader.size+7) & ^7)
	}

	return 0, 0
}
