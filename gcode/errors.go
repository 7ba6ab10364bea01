package gcode

import "fmt"

// ParseError describes a malformed line. The message always carries the
// line number and the offending token so it can be read without the
// source file at hand.
type ParseError struct {
	Line   int
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: invalid token %q: %s", e.Line, e.Token, e.Reason)
}
