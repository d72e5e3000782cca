package value

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/minj-lang/minj/syntax"
)

// DecodeLiteral turns literal token text into a value. Char and string
// bodies are taken literally: no escape sequences are processed.
func DecodeLiteral(tok syntax.Token, raw string) (Value, error) {
	switch tok {
	case syntax.INT:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: int %s", ErrInvalidLiteral, raw)
		}
		return IntValue(n), nil
	case syntax.FLOAT:
		if len(raw) < 2 {
			return nil, fmt.Errorf("%w: float %s", ErrInvalidLiteral, raw)
		}
		f, err := strconv.ParseFloat(raw[:len(raw)-1], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: float %s", ErrInvalidLiteral, raw)
		}
		return Float32Value(f), nil
	case syntax.DOUBLE:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: double %s", ErrInvalidLiteral, raw)
		}
		return Float64Value(f), nil
	case syntax.BOOL:
		return BoolValue(raw == "true"), nil
	case syntax.CHAR:
		if len(raw) < 3 {
			return nil, fmt.Errorf("%w: char %s", ErrInvalidLiteral, raw)
		}
		r, _ := utf8.DecodeRuneInString(raw[1:])
		return CharValue(r), nil
	case syntax.STRING:
		if len(raw) < 2 {
			return nil, fmt.Errorf("%w: string %s", ErrInvalidLiteral, raw)
		}
		return StrValue(raw[1 : len(raw)-1]), nil
	}
	return nil, fmt.Errorf("%w: unsupported literal token %s", ErrInvalidLiteral, tok)
}

// Default is the value of a typed declaration without an initializer.
func Default(t Tag) Value {
	switch t {
	case TagInt:
		return IntValue(0)
	case TagFloat32:
		return Float32Value(0)
	case TagFloat64:
		return Float64Value(0)
	case TagBool:
		return BoolFalse
	case TagChar:
		return CharValue(0)
	}
	return StrValue("")
}
