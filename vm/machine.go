package vm

import (
	"github.com/mastercactapus/gcvm/coord"
	"github.com/mastercactapus/gcvm/gcode"
)

// Machine holds the mutable interpreter state: position, feed rate,
// spindle speed, tool selection, and the modal mode table. Exactly one
// instance exists per run; handlers mutate it and nothing else.
type Machine struct {
	pos coord.Point

	modal [256]float64

	feed  float64
	speed float64

	tool        int
	pendingTool int
}

// NewMachine returns a machine with conventional power-on defaults:
// millimeters, absolute positioning, XY plane, feed-per-minute,
// spindle and coolant off.
func NewMachine() *Machine {
	m := &Machine{}

	m.modal[gcode.ModalGroupMotion] = 0
	m.modal[gcode.ModalGroupCoordinateSystem] = 54
	m.modal[gcode.ModalGroupPlaneSelection] = 17
	m.modal[gcode.ModalGroupDistanceMode] = 90
	m.modal[gcode.ModalGroupFeedRateMode] = 94
	m.modal[gcode.ModalGroupUnits] = 21
	m.modal[gcode.ModalGroupCutterCompensation] = 40
	m.modal[gcode.ModalGroupToolLength] = 49
	m.modal[gcode.ModalGroupStopping] = 0
	m.modal[gcode.ModalGroupSpindle] = 5
	m.modal[gcode.ModalGroupCoolant] = 9

	return m
}

func (m Machine) Inches() bool         { return m.modal[gcode.ModalGroupUnits] == 20 }
func (m Machine) RelativeMotion() bool { return m.modal[gcode.ModalGroupDistanceMode] == 91 }
func (m Machine) SpindleOn() bool {
	s := m.modal[gcode.ModalGroupSpindle]
	return s == 3 || s == 4
}
func (m Machine) CoolantOn() bool {
	c := m.modal[gcode.ModalGroupCoolant]
	return c == 7 || c == 8
}

func (m Machine) Pos() coord.Point      { return m.pos }
func (m *Machine) SetPos(p coord.Point) { m.pos = p }
func (m Machine) Feed() float64         { return m.feed }
func (m Machine) Speed() float64        { return m.speed }
func (m Machine) Tool() int             { return m.tool }

// SetModal records a modal word (e.g. G90, M3) in the mode table. Words
// outside any modal group are ignored.
func (m *Machine) SetModal(w gcode.Word) {
	mg := w.ModalGroup()
	if mg == gcode.ModalGroupNone || mg == gcode.ModalGroupNonModal {
		return
	}
	m.modal[mg] = w.Arg
}

// State is a JSON-friendly snapshot of the machine.
type State struct {
	Pos      coord.Point `json:"pos"`
	Feed     float64     `json:"feed"`
	Speed    float64     `json:"speed"`
	Tool     int         `json:"tool"`
	Spindle  bool        `json:"spindle"`
	Coolant  bool        `json:"coolant"`
	Relative bool        `json:"relative"`
	Inches   bool        `json:"inches"`
}

func (m Machine) State() State {
	return State{
		Pos:      m.pos,
		Feed:     m.feed,
		Speed:    m.speed,
		Tool:     m.tool,
		Spindle:  m.SpindleOn(),
		Coolant:  m.CoolantOn(),
		Relative: m.RelativeMotion(),
		Inches:   m.Inches(),
	}
}
