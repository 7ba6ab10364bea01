package gcode

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Parser reads GCode commands from a stream, one line at a time. It
// tracks the 1-based line number for diagnostics.
type Parser struct {
	br   *bufio.Reader
	line int
}

func NewParser(r io.Reader) *Parser {
	if br, ok := r.(*bufio.Reader); ok {
		return &Parser{br: br}
	}

	return &Parser{br: bufio.NewReader(r)}
}

var (
	rxParen   = regexp.MustCompile(`\([^)]*\)`)
	rxProgram = regexp.MustCompile(`^O[0-9]+$`)
	rxLabel   = regexp.MustCompile(`^N([0-9]+)$`)
)

// ReadCommand returns the next command from the stream, or io.EOF at
// the end of input. Blank lines, comments, '%' markers and O-number
// program identifiers are skipped silently.
func (p *Parser) ReadCommand() (*Command, error) {
	for {
		s, err := p.br.ReadString('\n')
		if err == io.EOF && s != "" {
			err = nil
		}
		if err != nil {
			return nil, err
		}
		p.line++

		s = rxParen.ReplaceAllString(s, " ")
		s = strings.SplitN(s, ";", 2)[0]
		s = strings.TrimSpace(s)
		s = strings.ToUpper(s)

		if s == "" || s == "%" || rxProgram.MatchString(s) {
			continue
		}

		cmd, err := p.parseLine(s)
		if err != nil {
			return nil, err
		}
		if cmd == nil { // label-only line
			continue
		}
		return cmd, nil
	}
}

func (p *Parser) parseLine(s string) (*Command, error) {
	tokens := strings.Fields(s)

	label := -1
	if m := rxLabel.FindStringSubmatch(tokens[0]); m != nil {
		label, _ = strconv.Atoi(m[1])
		tokens = tokens[1:]
		if len(tokens) == 0 {
			return nil, nil
		}
	}

	code, err := p.parseWord(tokens[0])
	if err != nil {
		return nil, err
	}

	cmd := &Command{Code: code, Line: p.line, Label: label}
	var seen [256]bool
	for _, tok := range tokens[1:] {
		w, err := p.parseWord(tok)
		if err != nil {
			return nil, err
		}
		if seen[w.W] {
			return nil, &ParseError{Line: p.line, Token: tok, Reason: "duplicate parameter " + string(w.W)}
		}
		seen[w.W] = true
		cmd.Params = append(cmd.Params, w)
	}

	return cmd, nil
}

func (p *Parser) parseWord(tok string) (Word, error) {
	w := Word{W: tok[0]}
	if !w.IsValid() {
		return Word{}, &ParseError{Line: p.line, Token: tok, Reason: "missing letter"}
	}
	if len(tok) == 1 {
		return Word{}, &ParseError{Line: p.line, Token: tok, Reason: "missing numeric value"}
	}

	arg, err := strconv.ParseFloat(tok[1:], 64)
	if err != nil {
		return Word{}, &ParseError{Line: p.line, Token: tok, Reason: "malformed number " + strconv.Quote(tok[1:])}
	}
	w.Arg = arg

	return w, nil
}
