package interp

import (
	"fmt"

	"github.com/minj-lang/minj/syntax"
	"github.com/minj-lang/minj/value"
	"github.com/rs/zerolog/log"
)

// spread distributes rhs across n identifiers. A multi-value return only
// binds to exactly as many identifiers as it has values; an ordinary list
// is destructured when more than one identifier is bound.
func spread(n int, rhs value.Value) ([]value.Value, error) {
	l, isList := rhs.(*value.ListValue)
	if n == 1 {
		if isList && l.IsReturnList() {
			return nil, fmt.Errorf("%w: expected 1 value, got %d", value.ErrArityMismatch, l.Len())
		}
		return []value.Value{rhs}, nil
	}
	if !isList {
		return nil, fmt.Errorf("%w: expected %d values, got 1", value.ErrArityMismatch, n)
	}
	if l.Len() != n {
		return nil, fmt.Errorf("%w: expected %d values, got %d", value.ErrArityMismatch, n, l.Len())
	}
	return l.Elems, nil
}

// evalRHS evaluates the right side of a declaration or assignment. Several
// expressions form a multi-value list, just like `return a, b`.
func (ip *Interpreter) evalRHS(exprs []syntax.Expr) (value.Value, error) {
	if len(exprs) == 1 {
		return ip.eval(exprs[0])
	}
	vals, err := ip.evalList(exprs)
	if err != nil {
		return nil, err
	}
	return value.NewReturnList(vals), nil
}

// declCells evaluates a declaration and builds one fresh cell per name. The
// declared type is the explicit type when there is one, otherwise the tag
// of the initial value.
func (ip *Interpreter) declCells(d *syntax.VarDecl) ([]*value.Cell, error) {
	declType, typed := value.TagForType(d.Type)
	dynamic := d.Var && !typed
	mutable := !d.Val

	var vals []value.Value
	if len(d.Values) == 0 {
		def := value.Default(declType)
		if !typed {
			def = value.StrValue("")
		}
		for range d.Names {
			vals = append(vals, def)
		}
	} else {
		rhs, err := ip.evalRHS(d.Values)
		if err != nil {
			return nil, err
		}
		vals, err = spread(len(d.Names), rhs)
		if err != nil {
			return nil, err
		}
	}

	cells := make([]*value.Cell, len(d.Names))
	for i, name := range d.Names {
		v := vals[i]
		t := v.Tag()
		if typed {
			if t != declType {
				return nil, fmt.Errorf("%w for %s: %s vs %s", value.ErrTypeMismatch, name, declType, t)
			}
			t = declType
		}
		cells[i] = value.NewCell(v, t, mutable, dynamic)
		log.Trace().Str("variable", name).Str("type", t.String()).Bool("mutable", mutable).Bool("dynamic", dynamic).Msg("declare")
	}
	return cells, nil
}

// declare binds the names of d as fresh cells in the active frame.
func (ip *Interpreter) declare(d *syntax.VarDecl) error {
	cells, err := ip.declCells(d)
	if err != nil {
		return err
	}
	for i, name := range d.Names {
		ip.State.Frame.StoreVar(name, cells[i])
	}
	return nil
}

// assign rebinds existing cells in place so every holder of a cell sees the
// new value.
func (ip *Interpreter) assign(a *syntax.AssignStmt) error {
	rhs, err := ip.evalRHS(a.Values)
	if err != nil {
		return err
	}
	vals, err := spread(len(a.Targets), rhs)
	if err != nil {
		return err
	}
	for i, t := range a.Targets {
		cell, name, err := ip.targetCell(t)
		if err != nil {
			return err
		}
		if err := cell.Set(vals[i]); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		log.Trace().Str("variable", name).Interface("value", vals[i].String()).Msg("assign")
	}
	return nil
}

// targetCell resolves an assignment target to the cell it writes.
func (ip *Interpreter) targetCell(t syntax.Expr) (*value.Cell, string, error) {
	switch v := t.(type) {
	case *syntax.Ident:
		c, err := ip.State.ResolveCell(v.Name)
		return c, v.Name, err
	case *syntax.DotExpr:
		c, err := ip.fieldCell(v)
		return c, v.Name, err
	}
	return nil, "", fmt.Errorf("%w: cannot assign to %T", value.ErrInvalidOperand, t)
}

func (ip *Interpreter) fieldCell(d *syntax.DotExpr) (*value.Cell, error) {
	x, err := ip.eval(d.X)
	if err != nil {
		return nil, err
	}
	obj, ok := x.(*value.ObjectValue)
	if !ok {
		return nil, fmt.Errorf("%w: field %s on %s", value.ErrInvalidOperand, d.Name, x.Tag())
	}
	c, ok := obj.Fields[d.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %s", value.ErrUndefinedVariable, obj.Class.Name, d.Name)
	}
	return c, nil
}
