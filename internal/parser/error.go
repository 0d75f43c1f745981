package parser

import (
	"fmt"

	"github.com/cwbudde/minicc/pkg/token"
)

// Error codes the parser can produce, one per syntactic failure mode
// Mini-C's grammar can actually trigger.
const (
	ErrUnexpectedToken  = "E_UNEXPECTED_TOKEN"
	ErrExpectedIdent    = "E_EXPECTED_IDENT"
	ErrExpectedType     = "E_EXPECTED_TYPE"
	ErrMissingSemicolon = "E_MISSING_SEMICOLON"
	ErrMissingLParen    = "E_MISSING_LPAREN"
	ErrMissingRParen    = "E_MISSING_RPAREN"
	ErrMissingLBrace    = "E_MISSING_LBRACE"
	ErrMissingRBrace    = "E_MISSING_RBRACE"
	ErrInvalidExpr      = "E_INVALID_EXPRESSION"
)

// Error is a single syntactic diagnostic: a message, a stable code, and
// the position it occurred at. Only the first one encountered during a
// parse is ever produced; the parser halts the surrounding production on
// the first error per Mini-C's report-first-error-and-stop policy.
type Error struct {
	Message string
	Code    string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

func newError(pos token.Position, code, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Code: code, Pos: pos}
}
