package gcode

import (
	"bytes"
	"io"
)

// Buffer re-serializes commands from a Reader as canonical GCode text,
// one command per line.
type Buffer struct {
	gr  Reader
	buf bytes.Buffer
	err error
}

var _ io.Reader = &Buffer{}

func NewBuffer(r Reader) *Buffer {
	return &Buffer{gr: r}
}
func (b *Buffer) Buffered() []byte { return b.buf.Bytes() }

func (b *Buffer) Read(p []byte) (n int, err error) {
	for b.err == nil && b.buf.Len() < len(p) {
		var cmd *Command
		cmd, b.err = b.gr.ReadCommand()
		if b.err != nil {
			break
		}
		b.buf.WriteString(cmd.String())
		b.buf.WriteByte('\n')
	}

	if b.buf.Len() > 0 {
		return b.buf.Read(p)
	}

	return 0, b.err
}
