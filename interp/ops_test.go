package interp

import (
	"math"
	"testing"

	"github.com/minj-lang/minj/syntax"
	"github.com/minj-lang/minj/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryOperators(t *testing.T) {
	tests := []struct {
		name     string
		op       syntax.Token
		x, y     value.Value
		expected value.Value
	}{
		{"int division truncates", syntax.SLASH, value.IntValue(23), value.IntValue(5), value.IntValue(4)},
		{"negative int division", syntax.SLASH, value.IntValue(-7), value.IntValue(2), value.IntValue(-3)},
		{"double division", syntax.SLASH, value.Float64Value(23), value.IntValue(5), value.Float64Value(4.6)},
		{"int modulo", syntax.PERCENT, value.IntValue(-7), value.IntValue(3), value.IntValue(-1)},
		{"double modulo", syntax.PERCENT, value.Float64Value(7.5), value.IntValue(2), value.Float64Value(1.5)},
		{"int overflow wraps", syntax.PLUS, value.IntValue(math.MaxInt32), value.IntValue(1), value.IntValue(math.MinInt32)},
		{"int times", syntax.STAR, value.IntValue(6), value.IntValue(7), value.IntValue(42)},
		{"float pair promotes", syntax.PLUS, value.Float32Value(1.5), value.Float32Value(1.5), value.Float64Value(3)},
		{"mixed minus", syntax.MINUS, value.IntValue(1), value.Float32Value(0.5), value.Float64Value(0.5)},
		{"int then string", syntax.PLUS, value.IntValue(1), value.StrValue("x"), value.StrValue("1x")},
		{"string then int", syntax.PLUS, value.StrValue("x"), value.IntValue(1), value.StrValue("x1")},
		{"char concat", syntax.PLUS, value.CharValue('a'), value.CharValue('b'), value.StrValue("ab")},
		{"string and double", syntax.PLUS, value.StrValue("v="), value.Float64Value(2), value.StrValue("v=2.0")},
		{"less than mixed", syntax.LT, value.IntValue(1), value.Float64Value(1.5), value.BoolTrue},
		{"greater equal", syntax.GE, value.Float32Value(2), value.IntValue(2), value.BoolTrue},
		{"greater", syntax.GT, value.IntValue(1), value.IntValue(2), value.BoolFalse},
		{"equal ints", syntax.EQL, value.IntValue(1), value.IntValue(1), value.BoolTrue},
		{"equal needs same tag", syntax.EQL, value.IntValue(1), value.Float64Value(1), value.BoolFalse},
		{"not equal strings", syntax.NEQ, value.StrValue("a"), value.StrValue("b"), value.BoolTrue},
		{"and", syntax.AND, value.BoolTrue, value.BoolFalse, value.BoolFalse},
		{"or", syntax.OR, value.BoolFalse, value.BoolTrue, value.BoolTrue},
		{"xor same", syntax.XOR, value.BoolTrue, value.BoolTrue, value.BoolFalse},
		{"xor different", syntax.XOR, value.BoolTrue, value.BoolFalse, value.BoolTrue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := binaryOp(tt.op, tt.x, tt.y)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestListEquality(t *testing.T) {
	a := value.NewList([]value.Value{value.IntValue(1), value.StrValue("a")})
	b := value.NewList([]value.Value{value.IntValue(1), value.StrValue("a")})
	c := value.NewList([]value.Value{value.IntValue(1)})

	got, err := binaryOp(syntax.EQL, a, b)
	require.NoError(t, err)
	assert.Equal(t, value.BoolTrue, got)

	got, err = binaryOp(syntax.EQL, a, c)
	require.NoError(t, err)
	assert.Equal(t, value.BoolFalse, got)
}

func TestBinaryOperatorErrors(t *testing.T) {
	tests := []struct {
		name string
		op   syntax.Token
		x, y value.Value
		want error
	}{
		{"int divide by zero", syntax.SLASH, value.IntValue(1), value.IntValue(0), value.ErrDivisionByZero},
		{"int modulo by zero", syntax.PERCENT, value.IntValue(1), value.IntValue(0), value.ErrDivisionByZero},
		{"and on ints", syntax.AND, value.IntValue(1), value.BoolTrue, value.ErrInvalidOperand},
		{"compare strings", syntax.LT, value.StrValue("a"), value.StrValue("b"), value.ErrInvalidOperand},
		{"minus strings", syntax.MINUS, value.StrValue("a"), value.IntValue(1), value.ErrInvalidOperand},
		{"plus lists", syntax.PLUS, value.NewList(nil), value.IntValue(1), value.ErrInvalidOperand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := binaryOp(tt.op, tt.x, tt.y)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDoubleDivisionByZero(t *testing.T) {
	got, err := binaryOp(syntax.SLASH, value.Float64Value(1), value.IntValue(0))
	require.NoError(t, err)
	assert.Equal(t, "Infinity", got.String())
}

func TestUnaryOperators(t *testing.T) {
	got, err := unaryOp(syntax.MINUS, value.IntValue(3))
	require.NoError(t, err)
	assert.Equal(t, value.IntValue(-3), got)

	got, err = unaryOp(syntax.MINUS, value.Float32Value(1.5))
	require.NoError(t, err)
	assert.Equal(t, value.Float32Value(-1.5), got)

	got, err = unaryOp(syntax.NOT, value.BoolFalse)
	require.NoError(t, err)
	assert.Equal(t, value.BoolTrue, got)

	_, err = unaryOp(syntax.NOT, value.IntValue(1))
	require.ErrorIs(t, err, value.ErrInvalidOperand)

	_, err = unaryOp(syntax.MINUS, value.StrValue("a"))
	require.ErrorIs(t, err, value.ErrInvalidOperand)
}
