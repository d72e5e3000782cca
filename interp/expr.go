package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/minj-lang/minj/syntax"
	"github.com/minj-lang/minj/value"
)

func (ip *Interpreter) eval(e syntax.Expr) (value.Value, error) {
	switch v := e.(type) {
	case *syntax.Literal:
		return value.DecodeLiteral(v.Token, v.Raw)
	case *syntax.Ident:
		return ip.State.Resolve(v.Name)
	case *syntax.ThisExpr:
		obj, ok := ip.State.This()
		if !ok {
			return nil, fmt.Errorf("%w: %s outside of an instance method", value.ErrUndefinedVariable, thisName)
		}
		return obj, nil
	case *syntax.ParenExpr:
		return ip.eval(v.X)
	case *syntax.UnaryExpr:
		x, err := ip.eval(v.X)
		if err != nil {
			return nil, err
		}
		return unaryOp(v.Op, x)
	case *syntax.BinaryExpr:
		// Both sides always run, including for and/or/xor.
		x, err := ip.eval(v.X)
		if err != nil {
			return nil, err
		}
		y, err := ip.eval(v.Y)
		if err != nil {
			return nil, err
		}
		return binaryOp(v.Op, x, y)
	case *syntax.ListExpr:
		elems, err := ip.evalList(v.List)
		if err != nil {
			return nil, err
		}
		return value.NewList(elems), nil
	case *syntax.CallExpr:
		return ip.callExpr(v)
	case *syntax.DotExpr:
		c, err := ip.fieldCell(v)
		if err != nil {
			return nil, err
		}
		return c.Value, nil
	case *syntax.NewExpr:
		return ip.newObject(v.Class)
	case *syntax.InputExpr:
		return ip.input(v)
	}
	return nil, fmt.Errorf("unhandled expression type %T", e)
}

// evalList evaluates exprs left to right.
func (ip *Interpreter) evalList(exprs []syntax.Expr) ([]value.Value, error) {
	out := make([]value.Value, 0, len(exprs))
	for _, x := range exprs {
		v, err := ip.eval(x)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// input writes the optional prompt without a newline and reads one line.
// End of input yields whatever was read, possibly the empty string.
func (ip *Interpreter) input(x *syntax.InputExpr) (value.Value, error) {
	if x.Prompt != nil {
		p, err := ip.eval(x.Prompt)
		if err != nil {
			return nil, err
		}
		if _, err := fmt.Fprint(ip.Out, p.String()); err != nil {
			return nil, err
		}
	}
	line, err := ip.In.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	return value.StrValue(strings.TrimRight(line, "\r\n")), nil
}
