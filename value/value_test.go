package value

import (
	"math"
	"testing"

	"github.com/minj-lang/minj/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLiteral(t *testing.T) {
	tests := []struct {
		tok      syntax.Token
		raw      string
		expected Value
	}{
		{syntax.INT, "123", IntValue(123)},
		{syntax.FLOAT, "1.5f", Float32Value(1.5)},
		{syntax.FLOAT, "2F", Float32Value(2)},
		{syntax.DOUBLE, "1.25", Float64Value(1.25)},
		{syntax.DOUBLE, "1e3", Float64Value(1000)},
		{syntax.BOOL, "true", BoolTrue},
		{syntax.BOOL, "false", BoolFalse},
		{syntax.CHAR, "'x'", CharValue('x')},
		{syntax.CHAR, `'\n'`, CharValue('\\')},
		{syntax.STRING, `"hello"`, StrValue("hello")},
		{syntax.STRING, `"a\tb"`, StrValue(`a\tb`)},
		{syntax.STRING, `""`, StrValue("")},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := DecodeLiteral(tt.tok, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}

	_, err := DecodeLiteral(syntax.INT, "99999999999")
	require.ErrorIs(t, err, ErrInvalidLiteral)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, IntValue(0), Default(TagInt))
	assert.Equal(t, Float32Value(0), Default(TagFloat32))
	assert.Equal(t, Float64Value(0), Default(TagFloat64))
	assert.Equal(t, BoolFalse, Default(TagBool))
	assert.Equal(t, CharValue(0), Default(TagChar))
	assert.Equal(t, StrValue(""), Default(TagString))
}

func TestCellSet(t *testing.T) {
	static := NewCell(IntValue(1), TagInt, true, false)
	require.NoError(t, static.Set(IntValue(2)))
	assert.Equal(t, IntValue(2), static.Value)
	require.ErrorIs(t, static.Set(StrValue("a")), ErrTypeMismatch)
	assert.Equal(t, IntValue(2), static.Value)

	dynamic := NewCell(IntValue(1), TagInt, true, true)
	require.NoError(t, dynamic.Set(StrValue("a")))
	assert.Equal(t, TagString, dynamic.Type)

	// Immutability wins even when the tag would be accepted.
	frozen := NewCell(IntValue(1), TagInt, false, false)
	require.ErrorIs(t, frozen.Set(IntValue(1)), ErrImmutableReassignment)
	frozenDynamic := NewCell(IntValue(1), TagInt, false, true)
	require.ErrorIs(t, frozenDynamic.Set(StrValue("x")), ErrImmutableReassignment)

	assert.Equal(t, "val int = 1", frozen.String())
	assert.Equal(t, "var dynamic String = a", dynamic.String())
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		v        Value
		expected string
	}{
		{Float64Value(1), "1.0"},
		{Float64Value(4.6), "4.6"},
		{Float64Value(-0.5), "-0.5"},
		{Float64Value(1e20), "1.0E20"},
		{Float64Value(1.5e-5), "1.5E-5"},
		{Float64Value(1234567), "1234567.0"},
		{Float64Value(12345678), "1.2345678E7"},
		{Float64Value(math.NaN()), "NaN"},
		{Float64Value(math.Inf(-1)), "-Infinity"},
		{Float32Value(0.1), "0.1"},
		{Float32Value(3), "3.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.v.String())
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(IntValue(1), IntValue(1)))
	assert.False(t, Equal(IntValue(1), Float64Value(1)))
	assert.True(t, Equal(StrValue("a"), StrValue("a")))
	assert.True(t, Equal(Void, Void))

	a := NewList([]Value{IntValue(1), NewList([]Value{CharValue('c')})})
	b := NewList([]Value{IntValue(1), NewList([]Value{CharValue('c')})})
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, NewList([]Value{IntValue(1)})))

	c := NewClass("C")
	x, y := c.Instantiate(), c.Instantiate()
	assert.True(t, Equal(x, x))
	assert.False(t, Equal(x, y))
}

func TestInstantiateIsolatesFields(t *testing.T) {
	c := NewClass("C")
	c.AddField("n", NewCell(IntValue(0), TagInt, true, true))
	c.AddField("xs", NewCell(NewList([]Value{IntValue(1)}), TagList, true, true))
	c.AddField("n", NewCell(IntValue(7), TagInt, true, true))
	assert.Equal(t, []string{"n", "xs"}, c.FieldOrder)

	a, b := c.Instantiate(), c.Instantiate()
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotSame(t, a.Fields["n"], b.Fields["n"])
	assert.NotSame(t, a.Fields["n"], c.Fields["n"])

	require.NoError(t, a.Fields["n"].Set(IntValue(5)))
	assert.Equal(t, IntValue(7), b.Fields["n"].Value)
	assert.Equal(t, IntValue(7), c.Fields["n"].Value)

	al := a.Fields["xs"].Value.(*ListValue)
	bl := b.Fields["xs"].Value.(*ListValue)
	al.Elems[0] = IntValue(9)
	assert.Equal(t, IntValue(1), bl.Elems[0])

	assert.Regexp(t, `^C@[0-9a-f]{8}$`, a.String())
}

func TestReturnList(t *testing.T) {
	l := NewReturnList([]Value{IntValue(1), IntValue(2)})
	assert.True(t, l.IsReturnList())
	assert.False(t, NewList(nil).IsReturnList())
	assert.Equal(t, "[1, 2]", l.String())
	assert.Equal(t, 2, l.Len())
}
