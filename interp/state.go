package interp

import (
	"fmt"
	"sort"

	"github.com/minj-lang/minj/syntax"
	"github.com/minj-lang/minj/value"
	"github.com/rs/zerolog/log"
)

const thisName = "this"

// State is everything a run mutates. There is one per program execution.
type State struct {
	Globals *StackFrame
	// Frame is the active local frame. At top level it is Globals.
	Frame    *StackFrame
	Classes  map[string]*value.Class
	Methods  map[string]*syntax.MethodDecl
	inMethod bool
}

// StackFrame holds the local bindings of one invocation.
type StackFrame struct {
	Variables map[string]*value.Cell
	// Returned is set when a return statement unwinds the frame.
	Returned []value.Value
}

func NewState() *State {
	g := NewStackFrame()
	return &State{
		Globals: g,
		Frame:   g,
		Classes: make(map[string]*value.Class),
		Methods: make(map[string]*syntax.MethodDecl),
	}
}

func NewStackFrame() *StackFrame {
	return &StackFrame{Variables: make(map[string]*value.Cell)}
}

func (f *StackFrame) StoreVar(name string, c *value.Cell) {
	if f.Variables == nil {
		f.Variables = make(map[string]*value.Cell)
	}
	f.Variables[name] = c
}

// Names returns the bound names in sorted order.
func (f *StackFrame) Names() []string {
	out := make([]string, 0, len(f.Variables))
	for k := range f.Variables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// InMethod reports whether a method body is executing.
func (s *State) InMethod() bool {
	return s.inMethod
}

// This returns the receiver of the executing method, if any.
func (s *State) This() (*value.ObjectValue, bool) {
	if !s.inMethod {
		return nil, false
	}
	c, ok := s.Frame.Variables[thisName]
	if !ok {
		return nil, false
	}
	obj, ok := c.Value.(*value.ObjectValue)
	return obj, ok
}

// ResolveCell finds the cell bound to name: the local frame first, then the
// fields of this, then the globals.
func (s *State) ResolveCell(name string) (*value.Cell, error) {
	if c, ok := s.Frame.Variables[name]; ok {
		log.Trace().Str("variable", name).Str("scope", "local").Msg("resolve")
		return c, nil
	}
	if obj, ok := s.This(); ok {
		if c, ok := obj.Fields[name]; ok {
			log.Trace().Str("variable", name).Str("scope", "field").Msg("resolve")
			return c, nil
		}
	}
	if c, ok := s.Globals.Variables[name]; ok {
		log.Trace().Str("variable", name).Str("scope", "global").Msg("resolve")
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", value.ErrUndefinedVariable, name)
}

// Resolve returns the value bound to name.
func (s *State) Resolve(name string) (value.Value, error) {
	c, err := s.ResolveCell(name)
	if err != nil {
		return nil, err
	}
	return c.Value, nil
}

func (s *State) registerClass(c *value.Class) {
	s.Classes[c.Name] = c
}
