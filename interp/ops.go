package interp

import (
	"fmt"
	"math"

	"github.com/minj-lang/minj/syntax"
	"github.com/minj-lang/minj/value"
)

func unaryOp(op syntax.Token, x value.Value) (value.Value, error) {
	switch op {
	case syntax.NOT:
		if b, ok := x.(value.BoolValue); ok {
			return !b, nil
		}
	case syntax.MINUS:
		switch n := x.(type) {
		case value.IntValue:
			return -n, nil
		case value.Float32Value:
			return -n, nil
		case value.Float64Value:
			return -n, nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown unary operator %s", value.ErrInvalidOperand, op)
	}
	return nil, fmt.Errorf("%w: %s %s", value.ErrInvalidOperand, op, x.Tag())
}

func binaryOp(op syntax.Token, x, y value.Value) (value.Value, error) {
	switch op {
	case syntax.AND, syntax.OR, syntax.XOR:
		return logicOp(op, x, y)
	case syntax.EQL:
		return value.BoolValue(value.Equal(x, y)), nil
	case syntax.NEQ:
		return value.BoolValue(!value.Equal(x, y)), nil
	case syntax.LT, syntax.GT, syntax.LE, syntax.GE:
		return compareOp(op, x, y)
	case syntax.PLUS:
		if isText(x) || isText(y) {
			return value.StrValue(x.String() + y.String()), nil
		}
		return arithOp(op, x, y)
	case syntax.MINUS, syntax.STAR, syntax.SLASH, syntax.PERCENT:
		return arithOp(op, x, y)
	}
	return nil, fmt.Errorf("%w: unknown binary operator %s", value.ErrInvalidOperand, op)
}

func isText(v value.Value) bool {
	switch v.(type) {
	case value.StrValue, value.CharValue:
		return true
	}
	return false
}

func operandError(op syntax.Token, x, y value.Value) error {
	return fmt.Errorf("%w: %s %s %s", value.ErrInvalidOperand, x.Tag(), op, y.Tag())
}

func logicOp(op syntax.Token, x, y value.Value) (value.Value, error) {
	a, ok1 := x.(value.BoolValue)
	b, ok2 := y.(value.BoolValue)
	if !ok1 || !ok2 {
		return nil, operandError(op, x, y)
	}
	switch op {
	case syntax.AND:
		return a && b, nil
	case syntax.OR:
		return a || b, nil
	}
	return value.BoolValue(a != b), nil
}

func compareOp(op syntax.Token, x, y value.Value) (value.Value, error) {
	a, ok1 := value.AsFloat64(x)
	b, ok2 := value.AsFloat64(y)
	if !ok1 || !ok2 {
		return nil, operandError(op, x, y)
	}
	switch op {
	case syntax.LT:
		return value.BoolValue(a < b), nil
	case syntax.GT:
		return value.BoolValue(a > b), nil
	case syntax.LE:
		return value.BoolValue(a <= b), nil
	}
	return value.BoolValue(a >= b), nil
}

// arithOp keeps int op int in 32-bit integer arithmetic with wraparound.
// Every other numeric pairing is computed in double precision.
func arithOp(op syntax.Token, x, y value.Value) (value.Value, error) {
	if a, ok := x.(value.IntValue); ok {
		if b, ok := y.(value.IntValue); ok {
			return intOp(op, a, b)
		}
	}
	a, ok1 := value.AsFloat64(x)
	b, ok2 := value.AsFloat64(y)
	if !ok1 || !ok2 {
		return nil, operandError(op, x, y)
	}
	switch op {
	case syntax.PLUS:
		return value.Float64Value(a + b), nil
	case syntax.MINUS:
		return value.Float64Value(a - b), nil
	case syntax.STAR:
		return value.Float64Value(a * b), nil
	case syntax.SLASH:
		return value.Float64Value(a / b), nil
	}
	return value.Float64Value(math.Mod(a, b)), nil
}

func intOp(op syntax.Token, a, b value.IntValue) (value.Value, error) {
	switch op {
	case syntax.PLUS:
		return a + b, nil
	case syntax.MINUS:
		return a - b, nil
	case syntax.STAR:
		return a * b, nil
	}
	if b == 0 {
		return nil, value.ErrDivisionByZero
	}
	if op == syntax.SLASH {
		return a / b, nil
	}
	return a % b, nil
}
