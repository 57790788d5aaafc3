package stack

import (
	"bytes"
	"testing"

	"vtos/kernel/cpu"
)

// fakeStack maps addresses to the words stored there.
type fakeStack map[uintptr]uintptr

// frame stores a saved frame pointer at fp and a return address above it.
func (s fakeStack) frame(fp, next, ret uintptr) {
	s[fp] = next
	s[fp+wordSize] = ret
}

func (s fakeStack) read(addr uintptr) uintptr {
	return s[addr]
}

func TestWalk(t *testing.T) {
	defer func() {
		readWordFn = readWord
	}()

	stack := fakeStack{}
	stack.frame(0x1000, 0x1040, 0xaaa)
	stack.frame(0x1040, 0x1100, 0xbbb)
	stack.frame(0x1100, 0x1080, 0xccc) // chain turns back
	stack.frame(0x2000, 0x2000, 0xddd) // self loop
	stack.frame(0x3000, 0, 0xeee)      // outermost frame
	readWordFn = stack.read

	type visited struct {
		fp, ret uintptr
	}

	specs := []struct {
		fp    uintptr
		limit int
		exp   []visited
	}{
		{0, MaxFrames, nil},
		{0x1000, MaxFrames, []visited{{0x1000, 0xaaa}, {0x1040, 0xbbb}, {0x1100, 0xccc}}},
		{0x1000, 2, []visited{{0x1000, 0xaaa}, {0x1040, 0xbbb}}},
		{0x1000, 0, nil},
		{0x2000, MaxFrames, []visited{{0x2000, 0xddd}}},
		{0x3000, MaxFrames, []visited{{0x3000, 0xeee}}},
	}

	for specIndex, spec := range specs {
		var got []visited
		Walk(spec.fp, spec.limit, func(fp, ret uintptr) bool {
			got = append(got, visited{fp, ret})
			return true
		})

		if len(got) != len(spec.exp) {
			t.Errorf("[spec %d] expected %d frames; got %d: %v", specIndex, len(spec.exp), len(got), got)
			continue
		}

		for i := range got {
			if got[i] != spec.exp[i] {
				t.Errorf("[spec %d] expected frame %d to be %v; got %v", specIndex, i, spec.exp[i], got[i])
			}
		}
	}

	var count int
	Walk(0x1000, MaxFrames, func(_, _ uintptr) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("expected walk to stop when visit returns false; visited %d frames", count)
	}
}

func TestTrace(t *testing.T) {
	defer func() {
		readWordFn = readWord
		framePointerFn = cpu.FramePointer
	}()

	stack := fakeStack{}
	stack.frame(0x7ff0, 0x8010, 0x100123)
	stack.frame(0x8010, 0, 0x100456)
	readWordFn = stack.read
	framePointerFn = func() uintptr { return 0x7ff0 }

	var buf bytes.Buffer
	Trace(&buf)

	exp := "Kernel Stack Trace:\n" +
		"==================\n" +
		"RBP: 0x0000000000007ff0  RIP: 0x0000000000100123\n" +
		"RBP: 0x0000000000008010  RIP: 0x0000000000100456\n" +
		"==================\n"

	if got := buf.String(); got != exp {
		t.Fatalf("expected trace:\n%s\ngot:\n%s", exp, got)
	}
}
