package value

import "errors"

// Error kinds. Every failure the evaluator reports wraps exactly one of
// these, so callers can test with errors.Is.
var (
	ErrUndefinedVariable     = errors.New("undefined variable")
	ErrImmutableReassignment = errors.New("cannot reassign val")
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrArityMismatch         = errors.New("arity mismatch")
	ErrUnknownClass          = errors.New("unknown class")
	ErrUnknownCallable       = errors.New("unknown function")
	ErrUnknownMethod         = errors.New("unknown method")
	ErrNotIterable           = errors.New("cannot iterate")
	ErrInvalidOperand        = errors.New("invalid operand")
	ErrDivisionByZero        = errors.New("division by zero")
	ErrInvalidLiteral        = errors.New("invalid literal")
)
