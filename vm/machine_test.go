package vm

import (
	"testing"

	"github.com/mastercactapus/gcvm/coord"
	"github.com/mastercactapus/gcvm/gcode"
	"github.com/stretchr/testify/assert"
)

func TestNewMachine_Defaults(t *testing.T) {
	m := NewMachine()

	assert.False(t, m.Inches())
	assert.False(t, m.RelativeMotion())
	assert.False(t, m.SpindleOn())
	assert.False(t, m.CoolantOn())
	assert.Equal(t, coord.Point{}, m.Pos())
	assert.Equal(t, 0.0, m.Feed())
}

func TestMachine_SetModal(t *testing.T) {
	m := NewMachine()

	m.SetModal(gcode.Word{W: 'G', Arg: 91})
	assert.True(t, m.RelativeMotion())

	m.SetModal(gcode.Word{W: 'G', Arg: 90})
	assert.False(t, m.RelativeMotion())

	m.SetModal(gcode.Word{W: 'M', Arg: 3})
	assert.True(t, m.SpindleOn())

	// non-modal words are ignored
	m.SetModal(gcode.Word{W: 'G', Arg: 28})
	assert.True(t, m.SpindleOn())
	assert.False(t, m.RelativeMotion())
}

func TestMachine_State(t *testing.T) {
	m := NewMachine()
	m.SetPos(coord.Point{X: 1, Y: 2, Z: 3})
	m.SetModal(gcode.Word{W: 'M', Arg: 8})

	s := m.State()
	assert.Equal(t, coord.Point{X: 1, Y: 2, Z: 3}, s.Pos)
	assert.True(t, s.Coolant)
	assert.False(t, s.Spindle)
	assert.False(t, s.Inches)
}
