package errors

import "fmt"

// ParseError reports a structural failure of a question bank document.
// Line and Column are 1-based; zero means the position is unknown.
type ParseError struct {
	Line   int
	Column int
	Msg    string
	Err    error
}

func (pe *ParseError) Error() string {
	switch {
	case pe.Line > 0 && pe.Column > 0:
		return fmt.Sprintf("xml parse error at line %d, column %d: %s", pe.Line, pe.Column, pe.Msg)
	case pe.Line > 0:
		return fmt.Sprintf("xml parse error at line %d: %s", pe.Line, pe.Msg)
	default:
		return fmt.Sprintf("xml parse error: %s", pe.Msg)
	}
}

func (pe *ParseError) Unwrap() error {
	return pe.Err
}

// NewParseError creates a parse error at the given position
func NewParseError(line, column int, err error) *ParseError {
	msg := "malformed document"
	if err != nil {
		msg = err.Error()
	}
	return &ParseError{Line: line, Column: column, Msg: msg, Err: err}
}
