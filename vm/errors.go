package vm

import "fmt"

// UnsupportedCommandError reports a well-formed code with no registered
// handler.
type UnsupportedCommandError struct {
	Line int
	Code string
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("line %d: unsupported command %s", e.Line, e.Code)
}

// InvalidParameterError reports a parameter letter a handler does not
// accept, or a value outside the accepted range.
type InvalidParameterError struct {
	Line   int
	Code   string
	Letter byte
	Reason string
}

func (e *InvalidParameterError) Error() string {
	s := fmt.Sprintf("line %d: command %s: invalid parameter %c", e.Line, e.Code, e.Letter)
	if e.Reason != "" {
		s += ": " + e.Reason
	}
	return s
}
