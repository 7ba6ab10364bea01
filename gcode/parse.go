package gcode

import (
	"bytes"
	"io"
)

func Parse(data string) ([]*Command, error) {
	p := NewParser(bytes.NewBufferString(data))
	var cmds []*Command
	for {
		cmd, err := p.ReadCommand()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func MustParse(data string) []*Command {
	cmds, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return cmds
}
