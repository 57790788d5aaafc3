package kfmt

import "io"

// PrefixWriter is an io.Writer that wraps another io.Writer and injects a
// prefix at the beginning of each line. Drivers use it to tag their log output
// with the subsystem name, e.g. "[hal] vga_text(0.0.1): ".
type PrefixWriter struct {
	// A writer where all writes get sent to. A nil Sink sends output to
	// the early print buffer.
	Sink io.Writer

	// The prefix injected at the beginning of each line.
	Prefix []byte

	// midLine is set while the last write did not end with a line feed.
	midLine bool
}

// Write writes len(p) bytes from p to the underlying sink and returns the
// number of bytes written. The injected prefixes are not included in the
// returned count.
func (w *PrefixWriter) Write(p []byte) (int, error) {
	var written, start int

	for cur := 0; cur < len(p); cur++ {
		if p[cur] != '\n' {
			continue
		}

		n, err := w.writeLine(p[start : cur+1])
		written += n
		if err != nil {
			return written, err
		}

		w.midLine = false
		start = cur + 1
	}

	if start < len(p) {
		n, err := w.writeLine(p[start:])
		written += n
		w.midLine = true
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

// writeLine emits the prefix if a new line is starting and then forwards
// chunk to the sink.
func (w *PrefixWriter) writeLine(chunk []byte) (int, error) {
	var sink io.Writer = &earlyPrintBuffer
	if w.Sink != nil {
		sink = w.Sink
	}

	if !w.midLine {
		sink.Write(w.Prefix)
	}

	return sink.Write(chunk)
}
