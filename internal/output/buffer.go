package output

import (
	"bytes"
	"strings"
)

// Buffer accumulates process output. It is not safe for concurrent use: a run
// appends and renders on a single goroutine.
//
// The log is append-only and grows without bound for the lifetime of a run.
type Buffer struct {
	log     bytes.Buffer
	partial []byte
	current string
	lines   int
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append records chunk in the log and updates the current line.
//
// Each newline-terminated line replaces the current line. Bytes after the
// last newline update it provisionally until the rest of the line arrives.
// Blank lines never replace the current line.
func (b *Buffer) Append(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	b.log.Write(chunk)

	data := chunk
	for {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			break
		}
		b.partial = append(b.partial, data[:idx]...)
		b.setCurrent(string(b.partial))
		b.partial = b.partial[:0]
		b.lines++
		data = data[idx+1:]
	}

	if len(data) > 0 {
		b.partial = append(b.partial, data...)
		b.setCurrent(string(b.partial))
	}
}

// Write implements io.Writer so a Buffer can sit at the end of io.Copy.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Append(p)
	return len(p), nil
}

func (b *Buffer) setCurrent(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	b.current = line
}

// CurrentLine returns the latest non-blank line, or "" if nothing has been
// printed yet. The line is raw: escapes and carriage returns are intact.
func (b *Buffer) CurrentLine() string {
	return b.current
}

// FullOutput returns a copy of everything appended so far, byte for byte.
func (b *Buffer) FullOutput() []byte {
	return bytes.Clone(b.log.Bytes())
}

// Len returns the number of bytes in the log.
func (b *Buffer) Len() int {
	return b.log.Len()
}

// Lines returns the number of newline-terminated lines seen.
func (b *Buffer) Lines() int {
	return b.lines
}

// Pending reports whether the log ends in an unterminated line.
func (b *Buffer) Pending() bool {
	return len(b.partial) > 0
}
