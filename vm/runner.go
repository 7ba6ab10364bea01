package vm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mastercactapus/gcvm/gcode"
	"github.com/mastercactapus/gcvm/internal/logging"
)

// Policy controls whether a run continues past a bad line or stops at
// the first one.
type Policy int

const (
	// ContinueOnError records a diagnostic and moves to the next line,
	// surfacing every fixable problem in one pass. This is the default.
	ContinueOnError Policy = iota

	// AbortOnError stops at the first diagnostic.
	AbortOnError
)

func (p Policy) String() string {
	if p == AbortOnError {
		return "abort"
	}
	return "continue"
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "continue", "":
		return ContinueOnError, nil
	case "abort":
		return AbortOnError, nil
	}
	return 0, fmt.Errorf("unknown error policy %q (want \"continue\" or \"abort\")", s)
}

// Diagnostic is one reported problem. The message is self-contained:
// it already names the line and the offending token or code.
type Diagnostic struct {
	Line    int    `json:"line"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	KindParse       = "parse"
	KindUnsupported = "unsupported-command"
	KindParameter   = "invalid-parameter"
)

func toDiagnostic(err error) Diagnostic {
	d := Diagnostic{Message: err.Error()}

	var pe *gcode.ParseError
	var ue *UnsupportedCommandError
	var ipe *InvalidParameterError
	switch {
	case errors.As(err, &pe):
		d.Kind, d.Line = KindParse, pe.Line
	case errors.As(err, &ue):
		d.Kind, d.Line = KindUnsupported, ue.Line
	case errors.As(err, &ipe):
		d.Kind, d.Line = KindParameter, ipe.Line
	}

	return d
}

// Runner drives the interpreter: it reads commands, dispatches them,
// and collects diagnostics per the configured policy.
type Runner struct {
	Registry *Registry
	Machine  *Machine
	Policy   Policy
	Logger   *slog.Logger

	// OnState, when set, is called after every successfully applied
	// command with the new machine state.
	OnState func(State)
}

func NewRunner(reg *Registry, m *Machine) *Runner {
	return &Runner{
		Registry: reg,
		Machine:  m,
		Logger:   logging.NewNop(),
	}
}

// Run interprets commands until EOF. The returned diagnostics cover
// every parse, dispatch and parameter failure; the returned error is
// non-nil only when the run stopped early (abort policy, or a read
// failure on the source).
func (r *Runner) Run(gr gcode.Reader) ([]Diagnostic, error) {
	var diags []Diagnostic

	fail := func(err error) ([]Diagnostic, error, bool) {
		d := toDiagnostic(err)
		if d.Kind == "" {
			// not a diagnostic: the source itself failed
			return diags, err, true
		}
		diags = append(diags, d)
		r.Logger.Warn("diagnostic", "line", d.Line, "kind", d.Kind, "error", d.Message)
		if r.Policy == AbortOnError {
			return diags, err, true
		}
		return nil, nil, false
	}

	for {
		cmd, err := gr.ReadCommand()
		if err == io.EOF {
			return diags, nil
		}
		if err != nil {
			if d, e, stop := fail(err); stop {
				return d, e
			}
			continue
		}

		err = r.Registry.Dispatch(cmd, r.Machine)
		if err != nil {
			if d, e, stop := fail(err); stop {
				return d, e
			}
			continue
		}

		r.Logger.Debug("apply", "line", cmd.Line, "cmd", cmd.String())
		if r.OnState != nil {
			r.OnState(r.Machine.State())
		}
	}
}
