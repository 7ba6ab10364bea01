package vm

import (
	"strings"
	"testing"

	"github.com/mastercactapus/gcvm/coord"
	"github.com/mastercactapus/gcvm/gcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner() *Runner {
	return NewRunner(DefaultRegistry(), NewMachine())
}

func (r *Runner) runString(s string) ([]Diagnostic, error) {
	return r.Run(gcode.NewParser(strings.NewReader(s)))
}

func TestRunner_CleanProgram(t *testing.T) {
	r := newTestRunner()
	diags, err := r.runString("G90\nG1 X10 Y5 F100\nG1 Y8\n")

	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, coord.Point{X: 10, Y: 8}, r.Machine.Pos())
	assert.Equal(t, 100.0, r.Machine.Feed())
}

func TestRunner_ContinuePolicy(t *testing.T) {
	r := newTestRunner()
	diags, err := r.runString("G1 X\nG999\nG1 X1 Q2\nG1 X3\n")

	require.NoError(t, err, "continue policy finishes the file")
	require.Len(t, diags, 3)

	assert.Equal(t, KindParse, diags[0].Kind)
	assert.Equal(t, 1, diags[0].Line)
	assert.Contains(t, diags[0].Message, `"X"`)

	assert.Equal(t, KindUnsupported, diags[1].Kind)
	assert.Equal(t, 2, diags[1].Line)
	assert.Contains(t, diags[1].Message, "G999")

	assert.Equal(t, KindParameter, diags[2].Kind)
	assert.Equal(t, 3, diags[2].Line)

	// the final good line still ran
	assert.Equal(t, coord.Point{X: 3}, r.Machine.Pos())
}

func TestRunner_AbortPolicy(t *testing.T) {
	r := newTestRunner()
	r.Policy = AbortOnError
	diags, err := r.runString("G1 X1\nG999\nG1 X5\n")

	require.Error(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, KindUnsupported, diags[0].Kind)
	assert.Equal(t, coord.Point{X: 1}, r.Machine.Pos(), "lines after the failure must not run")
}

func TestRunner_OnState(t *testing.T) {
	r := newTestRunner()
	var states []State
	r.OnState = func(s State) { states = append(states, s) }

	_, err := r.runString("G1 X1\nG1 X2\n")
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, 1.0, states[0].Pos.X)
	assert.Equal(t, 2.0, states[1].Pos.X)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("abort")
	require.NoError(t, err)
	assert.Equal(t, AbortOnError, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, ContinueOnError, p)

	_, err = ParsePolicy("explode")
	assert.Error(t, err)
}
