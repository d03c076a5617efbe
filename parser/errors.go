package parser

import (
	"errors"
	"fmt"

	"github.com/luxfi/yulc/lexer"
)

// ErrUnexpectedEOF is returned when the lexeme stream ends mid-grammar.
var ErrUnexpectedEOF = errors.New("unexpected end of file")

// Error is the parser taxonomy error of spec.md §7: "expected-one-of
// {list}, found {lexeme}". Hint is an optional human nudge (e.g.
// "did you forget a default case?").
type Error struct {
	Expected []string
	Found    lexer.Lexeme
	Hint     string
	Pos      Position
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%d:%d: expected one of %v, found %q", e.Pos.Line, e.Pos.Column, e.Expected, e.Found.String())
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func expectedOneOf(found lexer.Lexeme, hint string, expected ...string) *Error {
	return &Error{Expected: expected, Found: found, Hint: hint, Pos: found.Pos}
}
