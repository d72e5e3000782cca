package value

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minj-lang/minj/syntax"
)

// Tag is the runtime type of a Value.
type Tag int

const (
	TagInt Tag = iota
	TagFloat32
	TagFloat64
	TagBool
	TagChar
	TagString
	TagList
	TagObject
	TagVoid
)

func (t Tag) String() string {
	switch t {
	case TagInt:
		return "int"
	case TagFloat32:
		return "float"
	case TagFloat64:
		return "double"
	case TagBool:
		return "boolean"
	case TagChar:
		return "char"
	case TagString:
		return "String"
	case TagList:
		return "list"
	case TagObject:
		return "object"
	case TagVoid:
		return "void"
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// TagForType maps a declaration type token to its tag.
func TagForType(tok syntax.Token) (Tag, bool) {
	switch tok {
	case syntax.TYPE_INT:
		return TagInt, true
	case syntax.TYPE_FLOAT:
		return TagFloat32, true
	case syntax.TYPE_DOUBLE:
		return TagFloat64, true
	case syntax.TYPE_BOOLEAN:
		return TagBool, true
	case syntax.TYPE_CHAR:
		return TagChar, true
	case syntax.TYPE_STRING:
		return TagString, true
	}
	return 0, false
}

// Value is the closed set of runtime values. Only this package implements it.
type Value interface {
	isValue()
	Tag() Tag
	String() string
}

type IntValue int32

type Float32Value float32

type Float64Value float64

type BoolValue bool

type CharValue rune

type StrValue string

// ListValue is shared by reference: every holder sees the same elements.
type ListValue struct {
	Elems []Value
	multi bool
}

// ObjectValue is a class instance. Its field cells are owned by the
// instance alone.
type ObjectValue struct {
	ID     uuid.UUID
	Class  *Class
	Fields map[string]*Cell
}

type VoidValue struct{}

var (
	BoolTrue  = BoolValue(true)
	BoolFalse = BoolValue(false)
	Void      = VoidValue{}
)

func (IntValue) isValue()     {}
func (Float32Value) isValue() {}
func (Float64Value) isValue() {}
func (BoolValue) isValue()    {}
func (CharValue) isValue()    {}
func (StrValue) isValue()     {}
func (*ListValue) isValue()   {}
func (*ObjectValue) isValue() {}
func (VoidValue) isValue()    {}

func (IntValue) Tag() Tag     { return TagInt }
func (Float32Value) Tag() Tag { return TagFloat32 }
func (Float64Value) Tag() Tag { return TagFloat64 }
func (BoolValue) Tag() Tag    { return TagBool }
func (CharValue) Tag() Tag    { return TagChar }
func (StrValue) Tag() Tag     { return TagString }
func (*ListValue) Tag() Tag   { return TagList }
func (*ObjectValue) Tag() Tag { return TagObject }
func (VoidValue) Tag() Tag    { return TagVoid }

// NewList builds an ordinary list.
func NewList(elems []Value) *ListValue {
	return &ListValue{Elems: elems}
}

// NewReturnList builds the list produced by a multi-value return. It can be
// destructured across several identifiers but never bound to just one.
func NewReturnList(elems []Value) *ListValue {
	return &ListValue{Elems: elems, multi: true}
}

// IsReturnList reports whether l came from a multi-value return.
func (l *ListValue) IsReturnList() bool {
	return l.multi
}

func (l *ListValue) Len() int {
	return len(l.Elems)
}

// Clone copies l and every nested list. Objects stay shared.
func (l *ListValue) Clone() *ListValue {
	out := &ListValue{Elems: make([]Value, len(l.Elems)), multi: l.multi}
	for i, e := range l.Elems {
		out.Elems[i] = Clone(e)
	}
	return out
}

// Clone returns a copy of v with independent list storage.
func Clone(v Value) Value {
	if l, ok := v.(*ListValue); ok {
		return l.Clone()
	}
	return v
}

// AsFloat64 widens a numeric value.
func AsFloat64(v Value) (float64, bool) {
	switch n := v.(type) {
	case IntValue:
		return float64(n), true
	case Float32Value:
		return float64(n), true
	case Float64Value:
		return float64(n), true
	}
	return 0, false
}

// Equal is value equality: tags must match, lists compare element-wise and
// objects by identity.
func Equal(a, b Value) bool {
	if a.Tag() != b.Tag() {
		return false
	}
	switch av := a.(type) {
	case *ListValue:
		bv := b.(*ListValue)
		if av == bv {
			return true
		}
		if len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *ObjectValue:
		return av == b.(*ObjectValue)
	}
	return a == b
}

func (i IntValue) String() string     { return fmt.Sprintf("%d", int32(i)) }
func (f Float32Value) String() string { return formatFloat(float64(f), 32) }
func (f Float64Value) String() string { return formatFloat(float64(f), 64) }
func (c CharValue) String() string    { return string(rune(c)) }
func (s StrValue) String() string     { return string(s) }
func (VoidValue) String() string      { return "null" }

func (b BoolValue) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (l *ListValue) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range l.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (o *ObjectValue) String() string {
	return fmt.Sprintf("%s@%s", o.Class.Name, o.ID.String()[:8])
}
