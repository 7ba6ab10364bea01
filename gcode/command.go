package gcode

import "strings"

// A Command is one parsed line: a code word plus its parameter words in
// source order. Commands are immutable once parsed.
type Command struct {
	// Code is the command word, e.g. G1, M3, or a bare lettered value
	// like F100 where the number is the argument itself.
	Code Word

	// Params holds the remaining words of the line, in source order.
	Params []Word

	// Line is the 1-based source line number, for diagnostics only.
	Line int

	// Label is the N-number of the line, or -1 if the line had none.
	Label int
}

// Arg returns the value of the parameter with the given letter.
func (c *Command) Arg(w byte) (bool, float64) {
	for _, g := range c.Params {
		if g.W == w {
			return true, g.Arg
		}
	}
	return false, 0
}

// Clone returns a copy with its own parameter slice.
func (c *Command) Clone() *Command {
	d := *c
	d.Params = make([]Word, len(c.Params))
	copy(d.Params, c.Params)
	return &d
}

// String renders the command in canonical form: uppercase words
// separated by single spaces, numbers trimmed to at most 3 decimals.
func (c *Command) String() string {
	var b strings.Builder
	b.WriteString(c.Code.String())
	for _, g := range c.Params {
		b.WriteByte(' ')
		b.WriteString(g.String())
	}
	return b.String()
}
