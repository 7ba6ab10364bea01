package gcode

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ReadCommand(t *testing.T) {
	p := NewParser(strings.NewReader("G90\nG1 X10 Y5 F100\n"))

	cmd, err := p.ReadCommand()
	require.NoError(t, err)
	assert.Equal(t, Word{W: 'G', Arg: 90}, cmd.Code)
	assert.Empty(t, cmd.Params)
	assert.Equal(t, 1, cmd.Line)

	cmd, err = p.ReadCommand()
	require.NoError(t, err)
	assert.Equal(t, Word{W: 'G', Arg: 1}, cmd.Code)
	assert.Equal(t, []Word{{W: 'X', Arg: 10}, {W: 'Y', Arg: 5}, {W: 'F', Arg: 100}}, cmd.Params)
	assert.Equal(t, 2, cmd.Line)

	_, err = p.ReadCommand()
	assert.Equal(t, io.EOF, err)
}

func TestParser_SkipsNonCommands(t *testing.T) {
	const input = `%
O0001
( header comment )
; full line comment

G1 X1 ; trailing comment
G1 (inline) Y2
%
`
	cmds, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, "G1 X1", cmds[0].String())
	assert.Equal(t, 6, cmds[0].Line)
	assert.Equal(t, "G1 Y2", cmds[1].String())
	assert.Equal(t, 7, cmds[1].Line)
}

func TestParser_LineLabels(t *testing.T) {
	cmds, err := Parse("N10 G1 X5\nN20\nG0 X0\n")
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, 10, cmds[0].Label)
	assert.Equal(t, Word{W: 'G', Arg: 1}, cmds[0].Code)
	assert.Equal(t, -1, cmds[1].Label)
}

func TestParser_Lowercase(t *testing.T) {
	cmds := MustParse("g1 x10 y-2.5")
	require.Len(t, cmds, 1)
	assert.Equal(t, "G1 X10 Y-2.5", cmds[0].String())
}

func TestParser_Idempotent(t *testing.T) {
	const line = "G1 X10 Y5 F100"
	a := MustParse(line)
	b := MustParse(line)
	assert.Equal(t, a, b)
}

func TestParser_Errors(t *testing.T) {
	check := func(input, token, reason string, line int) {
		t.Helper()
		_, err := Parse(input)
		require.Error(t, err)
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, line, pe.Line)
		assert.Equal(t, token, pe.Token)
		assert.Equal(t, reason, pe.Reason)
		assert.Contains(t, pe.Error(), token)
	}

	check("G1 X", "X", "missing numeric value", 1)
	check("G", "G", "missing numeric value", 1)
	check("G1 10", "10", "missing letter", 1)
	check("G90\nG1 X1..2", "X1..2", `malformed number "1..2"`, 2)
	check("G1 X1 X2", "X2", "duplicate parameter X", 1)
}

func TestParser_NoEOLAtEOF(t *testing.T) {
	cmds, err := Parse("G1 X1")
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, "G1 X1", cmds[0].String())
}
