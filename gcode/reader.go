package gcode

import "io"

type Reader interface {
	ReadCommand() (*Command, error)
}

type CommandsReader struct {
	Commands []*Command
	n        int
}

func (c *CommandsReader) ReadCommand() (*Command, error) {
	if c.n == len(c.Commands) {
		return nil, io.EOF
	}

	c.n++
	return c.Commands[c.n-1], nil
}
