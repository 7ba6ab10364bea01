package vm

import (
	"github.com/mastercactapus/gcvm/gcode"
)

// A Handler executes one command code's effect on the machine. It must
// mutate only the machine it is given, and must leave it untouched when
// returning an error.
type Handler interface {
	Apply(cmd *gcode.Command, m *Machine) error
}

type HandlerFunc func(cmd *gcode.Command, m *Machine) error

func (f HandlerFunc) Apply(cmd *gcode.Command, m *Machine) error { return f(cmd, m) }

// Registry maps command codes to handlers. Exact codes (G1, M6) are
// tried first, then bare letters (F, S, T) whose own number is the
// argument. Populate it at startup; it is read-only during a run.
type Registry struct {
	codes   map[gcode.Word]Handler
	letters map[byte]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		codes:   make(map[gcode.Word]Handler),
		letters: make(map[byte]Handler),
	}
}

// Register binds an exact code to a handler. Binding a code twice is a
// programming error and panics.
func (r *Registry) Register(code gcode.Word, h Handler) {
	if _, ok := r.codes[code]; ok {
		panic("vm: handler already registered for " + code.String())
	}
	r.codes[code] = h
}

// RegisterLetter binds a bare letter code, e.g. F100.
func (r *Registry) RegisterLetter(letter byte, h Handler) {
	if _, ok := r.letters[letter]; ok {
		panic("vm: handler already registered for letter " + string(letter))
	}
	r.letters[letter] = h
}

// Dispatch looks up the command's code and invokes its handler. An
// unregistered code returns an UnsupportedCommandError and leaves the
// machine untouched.
func (r *Registry) Dispatch(cmd *gcode.Command, m *Machine) error {
	h, ok := r.codes[cmd.Code]
	if !ok {
		h, ok = r.letters[cmd.Code.W]
	}
	if !ok {
		return &UnsupportedCommandError{Line: cmd.Line, Code: cmd.Code.String()}
	}

	return h.Apply(cmd, m)
}
