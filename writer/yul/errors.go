package yul

import (
	"errors"
	"fmt"
)

// ErrUndeclaredIdentifier is returned when an expression references a
// variable that no enclosing scope has declared.
var ErrUndeclaredIdentifier = errors.New("yul writer: undeclared identifier")

// ErrUnknownFunction is returned when a call names neither a Yul
// builtin nor a previously declared function in scope.
var ErrUnknownFunction = errors.New("yul writer: unknown function")

// ErrArity is returned when a builtin or user function call supplies
// the wrong number of arguments.
type ErrArity struct {
	Name     string
	Expected int
	Found    int
}

func (e *ErrArity) Error() string {
	return fmt.Sprintf("yul writer: %s expects %d argument(s), found %d", e.Name, e.Expected, e.Found)
}

// ErrNotAssignable is returned when an assignment or multi-return
// binding targets a name nothing declared.
var ErrNotAssignable = errors.New("yul writer: assignment target not declared")
