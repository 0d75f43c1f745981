package semantic

import (
	"fmt"

	"github.com/cwbudde/minicc/pkg/token"
)

// Error codes the analyzer can produce: unknown name, redefinition within
// the same scope, type mismatch without a widening, wrong number of call
// arguments, assignment to a non-lvalue, narrowing return.
const (
	ErrUnknownName       = "E_UNKNOWN_NAME"
	ErrRedefinition      = "E_REDEFINITION"
	ErrTypeMismatch      = "E_TYPE_MISMATCH"
	ErrArgCount          = "E_ARG_COUNT"
	ErrNotLvalue         = "E_NOT_LVALUE"
	ErrNarrowingReturn   = "E_NARROWING_RETURN"
	ErrVoidInExpr        = "E_VOID_IN_EXPR"
	ErrNotCallable       = "E_NOT_CALLABLE"
	ErrReturnValueInVoid = "E_RETURN_VALUE_IN_VOID"
)

// Error is a single semantic diagnostic.
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
