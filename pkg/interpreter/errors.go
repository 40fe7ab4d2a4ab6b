package interpreter

import (
	"fmt"

	"github.com/zurustar/gamerscript/pkg/compiler/token"
)

// ErrorType represents the type of runtime error.
type ErrorType string

const (
	ErrorUndefinedVar     ErrorType = "UNDEFINED_VARIABLE"
	ErrorUndefinedFunc    ErrorType = "UNDEFINED_FUNCTION"
	ErrorTypeMismatch     ErrorType = "TYPE_MISMATCH"
	ErrorArgumentCount    ErrorType = "ARGUMENT_COUNT"
	ErrorInvalidArgument  ErrorType = "INVALID_ARGUMENT"
	ErrorStackOverflow    ErrorType = "STACK_OVERFLOW"
	ErrorReturnOutsideFn  ErrorType = "RETURN_OUTSIDE_FUNCTION"
	ErrorInvalidOperation ErrorType = "INVALID_OPERATION"
)

// RuntimeError aborts program execution.
type RuntimeError struct {
	Type    ErrorType
	Message string
	Line    int // 1-based; 0 when unknown
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("runtime error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("runtime error: %s", e.Message)
}

// NewRuntimeError creates a new RuntimeError.
func NewRuntimeError(errType ErrorType, line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	}
}

func newUndefinedVariableError(name string, line int) *RuntimeError {
	return NewRuntimeError(ErrorUndefinedVar, line, "undefined variable '%s'", name)
}

func newUndefinedFunctionError(name string, line int) *RuntimeError {
	return NewRuntimeError(ErrorUndefinedFunc, line, "undefined function '%s'", name)
}

func newOperandError(op token.Token, left, right Value) *RuntimeError {
	return NewRuntimeError(ErrorTypeMismatch, op.Line,
		"operator '%s' cannot be applied to %s and %s", op.Literal, left.Kind, right.Kind)
}

func newArgumentCountError(name string, want string, got, line int) *RuntimeError {
	return NewRuntimeError(ErrorArgumentCount, line,
		"%s expects %s argument(s), got %d", name, want, got)
}

func newStackOverflowError(depth, limit, line int) *RuntimeError {
	return NewRuntimeError(ErrorStackOverflow, line,
		"stack overflow: call depth %d exceeds maximum %d", depth, limit)
}

// ExitError is returned when a program calls the exit built-in. Nothing
// runs after it; the host should exit with Code.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
