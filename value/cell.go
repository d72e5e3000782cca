package value

import "fmt"

// Cell is the storage slot behind one name. A static cell (Dynamic false)
// only accepts values tagged Type; an immutable cell accepts no writes.
type Cell struct {
	Value   Value
	Type    Tag
	Mutable bool
	Dynamic bool
}

func NewCell(v Value, t Tag, mutable, dynamic bool) *Cell {
	return &Cell{Value: v, Type: t, Mutable: mutable, Dynamic: dynamic}
}

// Set overwrites the value in place after the mutability and type checks.
// Dynamic cells take on the tag of every value written to them.
func (c *Cell) Set(v Value) error {
	if !c.Mutable {
		return ErrImmutableReassignment
	}
	if !c.Dynamic && v.Tag() != c.Type {
		return fmt.Errorf("%w: %s vs %s", ErrTypeMismatch, c.Type, v.Tag())
	}
	c.Value = v
	if c.Dynamic {
		c.Type = v.Tag()
	}
	return nil
}

// Clone returns an independent cell with the same metadata.
func (c *Cell) Clone() *Cell {
	return &Cell{
		Value:   Clone(c.Value),
		Type:    c.Type,
		Mutable: c.Mutable,
		Dynamic: c.Dynamic,
	}
}

func (c *Cell) String() string {
	kind := "var"
	if !c.Mutable {
		kind = "val"
	}
	typ := c.Type.String()
	if c.Dynamic {
		typ = "dynamic " + typ
	}
	return fmt.Sprintf("%s %s = %s", kind, typ, c.Value)
}
