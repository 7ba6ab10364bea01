package vm

import (
	"github.com/mastercactapus/gcvm/coord"
	"github.com/mastercactapus/gcvm/gcode"
)

// DefaultRegistry returns the standard command set: G0/G1 motion, G28
// homing, the common modal codes, spindle/coolant/tool M-codes, and the
// bare F, S and T letter codes.
func DefaultRegistry() *Registry {
	g := func(n float64) gcode.Word { return gcode.Word{W: 'G', Arg: n} }
	m := func(n float64) gcode.Word { return gcode.Word{W: 'M', Arg: n} }

	r := NewRegistry()
	r.Register(g(0), HandlerFunc(move))
	r.Register(g(1), HandlerFunc(move))
	r.Register(g(28), HandlerFunc(home))
	r.Register(m(6), HandlerFunc(toolChange))

	for _, w := range []gcode.Word{
		g(17), g(20), g(21), g(40), g(49), g(54), g(80), g(90), g(91), g(94),
		m(3), m(5), m(8), m(9), m(30),
	} {
		r.Register(w, HandlerFunc(setModal))
	}

	r.RegisterLetter('F', HandlerFunc(feedRate))
	r.RegisterLetter('S', HandlerFunc(spindleSpeed))
	r.RegisterLetter('T', HandlerFunc(selectTool))

	return r
}

func applyAxes(p coord.Point, params []gcode.Word, mul float64) coord.Point {
	for _, g := range params {
		switch g.W {
		case 'X':
			p.X = g.Arg * mul
		case 'Y':
			p.Y = g.Arg * mul
		case 'Z':
			p.Z = g.Arg * mul
		}
	}

	return p
}

// move handles G0 and G1. Axes not named keep their previous value in
// absolute mode and contribute no offset in relative mode. An F
// parameter updates the feed rate before the move.
func move(cmd *gcode.Command, m *Machine) error {
	for _, w := range cmd.Params {
		if !w.IsAxis() && w.W != 'F' {
			return &InvalidParameterError{Line: cmd.Line, Code: cmd.Code.String(), Letter: w.W}
		}
	}
	if ok, f := cmd.Arg('F'); ok {
		if f <= 0 {
			return &InvalidParameterError{Line: cmd.Line, Code: cmd.Code.String(), Letter: 'F', Reason: "feed rate must be positive"}
		}
		m.feed = f
	}

	mul := 1.0
	if m.Inches() {
		mul = 25.4
	}
	if m.RelativeMotion() {
		m.pos = m.pos.Add(applyAxes(coord.Point{}, cmd.Params, mul))
	} else {
		m.pos = applyAxes(m.pos, cmd.Params, mul)
	}
	m.SetModal(cmd.Code)

	return nil
}

// home handles G28: return to the origin. Axis parameters name an
// intermediate point and are accepted but not retained.
func home(cmd *gcode.Command, m *Machine) error {
	for _, w := range cmd.Params {
		if !w.IsAxis() {
			return &InvalidParameterError{Line: cmd.Line, Code: cmd.Code.String(), Letter: w.W}
		}
	}
	m.pos = coord.Point{}

	return nil
}

// setModal handles the mode-only codes (G17, G20/G21, G90/G91, M3/M5,
// coolant, program end). They take no parameters.
func setModal(cmd *gcode.Command, m *Machine) error {
	if len(cmd.Params) > 0 {
		return &InvalidParameterError{Line: cmd.Line, Code: cmd.Code.String(), Letter: cmd.Params[0].W}
	}
	m.SetModal(cmd.Code)

	return nil
}

// toolChange handles M6: the pending T selection becomes the active
// tool. An inline T parameter selects first.
func toolChange(cmd *gcode.Command, m *Machine) error {
	for _, w := range cmd.Params {
		if w.W != 'T' {
			return &InvalidParameterError{Line: cmd.Line, Code: cmd.Code.String(), Letter: w.W}
		}
	}
	if ok, v := cmd.Arg('T'); ok {
		if v < 0 || v != float64(int(v)) {
			return &InvalidParameterError{Line: cmd.Line, Code: cmd.Code.String(), Letter: 'T', Reason: "tool number must be a non-negative integer"}
		}
		m.pendingTool = int(v)
	}
	m.tool = m.pendingTool

	return nil
}

func feedRate(cmd *gcode.Command, m *Machine) error {
	if len(cmd.Params) > 0 {
		return &InvalidParameterError{Line: cmd.Line, Code: cmd.Code.String(), Letter: cmd.Params[0].W}
	}
	if cmd.Code.Arg <= 0 {
		return &InvalidParameterError{Line: cmd.Line, Code: cmd.Code.String(), Letter: 'F', Reason: "feed rate must be positive"}
	}
	m.feed = cmd.Code.Arg

	return nil
}

func spindleSpeed(cmd *gcode.Command, m *Machine) error {
	if len(cmd.Params) > 0 {
		return &InvalidParameterError{Line: cmd.Line, Code: cmd.Code.String(), Letter: cmd.Params[0].W}
	}
	if cmd.Code.Arg < 0 {
		return &InvalidParameterError{Line: cmd.Line, Code: cmd.Code.String(), Letter: 'S', Reason: "spindle speed must not be negative"}
	}
	m.speed = cmd.Code.Arg

	return nil
}

func selectTool(cmd *gcode.Command, m *Machine) error {
	if len(cmd.Params) > 0 {
		return &InvalidParameterError{Line: cmd.Line, Code: cmd.Code.String(), Letter: cmd.Params[0].W}
	}
	v := cmd.Code.Arg
	if v < 0 || v != float64(int(v)) {
		return &InvalidParameterError{Line: cmd.Line, Code: cmd.Code.String(), Letter: 'T', Reason: "tool number must be a non-negative integer"}
	}
	m.pendingTool = int(v)

	return nil
}
