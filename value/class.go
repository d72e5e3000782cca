package value

import (
	"github.com/google/uuid"
	"github.com/minj-lang/minj/syntax"
)

// Class is a registered class template: default field cells plus a method
// table that only instances of the class can reach.
type Class struct {
	Name       string
	Fields     map[string]*Cell
	FieldOrder []string
	Methods    map[string]*syntax.MethodDecl
}

func NewClass(name string) *Class {
	return &Class{
		Name:    name,
		Fields:  make(map[string]*Cell),
		Methods: make(map[string]*syntax.MethodDecl),
	}
}

// AddField installs a template cell, replacing an earlier one of the same name.
func (c *Class) AddField(name string, cell *Cell) {
	if _, ok := c.Fields[name]; !ok {
		c.FieldOrder = append(c.FieldOrder, name)
	}
	c.Fields[name] = cell
}

func (c *Class) AddMethod(m *syntax.MethodDecl) {
	c.Methods[m.Name] = m
}

// Instantiate builds a new object whose fields are clones of the template.
func (c *Class) Instantiate() *ObjectValue {
	obj := &ObjectValue{
		ID:     uuid.New(),
		Class:  c,
		Fields: make(map[string]*Cell, len(c.Fields)),
	}
	for name, cell := range c.Fields {
		obj.Fields[name] = cell.Clone()
	}
	return obj
}
