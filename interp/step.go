package interp

import (
	"fmt"

	"github.com/minj-lang/minj/syntax"
	"github.com/minj-lang/minj/value"
	"github.com/rs/zerolog/log"
)

// StepResult tells the enclosing block whether to keep going.
type StepResult int

const (
	// ContinueStep means the statement completed normally.
	ContinueStep StepResult = iota
	// ReturnStep means a return statement ran and the values sit in the
	// active frame. Every block passes it up untouched until invoke.
	ReturnStep
)

func (r StepResult) String() string {
	switch r {
	case ContinueStep:
		return "continue"
	case ReturnStep:
		return "return"
	}
	return fmt.Sprintf("StepResult(%d)", int(r))
}

func (ip *Interpreter) execBlock(stmts []syntax.Stmt) (StepResult, error) {
	for _, s := range stmts {
		res, err := ip.exec(s)
		if err != nil || res == ReturnStep {
			return res, err
		}
	}
	return ContinueStep, nil
}

func (ip *Interpreter) exec(s syntax.Stmt) (StepResult, error) {
	log.Trace().Str("pos", s.Span().String()).Type("stmt", s).Msg("exec")
	res, err := ip.execStmt(s)
	return res, positioned(s, err)
}

func (ip *Interpreter) execStmt(s syntax.Stmt) (StepResult, error) {
	switch v := s.(type) {
	case *syntax.VarDecl:
		return ContinueStep, ip.declare(v)
	case *syntax.AssignStmt:
		return ContinueStep, ip.assign(v)
	case *syntax.ExprStmt:
		_, err := ip.eval(v.X)
		return ContinueStep, err
	case *syntax.PrintStmt:
		return ContinueStep, ip.print(v)
	case *syntax.ReturnStmt:
		vals, err := ip.evalList(v.Values)
		if err != nil {
			return ContinueStep, err
		}
		ip.State.Frame.Returned = vals
		return ReturnStep, nil
	case *syntax.IfStmt:
		return ip.execIf(v)
	case *syntax.WhileStmt:
		return ip.execWhile(v)
	case *syntax.ForStmt:
		return ip.execFor(v)
	case *syntax.ForeachStmt:
		return ip.execForeach(v)
	}
	return ContinueStep, fmt.Errorf("unhandled statement type %T", s)
}

func (ip *Interpreter) print(s *syntax.PrintStmt) error {
	if s.X == nil {
		_, err := fmt.Fprintln(ip.Out)
		return err
	}
	v, err := ip.eval(s.X)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ip.Out, v.String())
	return err
}

// execIf runs the first block whose guard is exactly true. A guard of any
// other type simply does not match.
func (ip *Interpreter) execIf(s *syntax.IfStmt) (StepResult, error) {
	for i, cond := range s.Conds {
		v, err := ip.eval(cond)
		if err != nil {
			return ContinueStep, err
		}
		if b, ok := v.(value.BoolValue); ok && bool(b) {
			return ip.execBlock(s.Blocks[i])
		}
	}
	if s.Else != nil {
		return ip.execBlock(s.Else)
	}
	return ContinueStep, nil
}

func (ip *Interpreter) execWhile(s *syntax.WhileStmt) (StepResult, error) {
	for {
		v, err := ip.eval(s.Cond)
		if err != nil {
			return ContinueStep, err
		}
		b, ok := v.(value.BoolValue)
		if !ok {
			return ContinueStep, fmt.Errorf("%w: while condition is %s, not boolean", value.ErrTypeMismatch, v.Tag())
		}
		if !b {
			return ContinueStep, nil
		}
		res, err := ip.execBlock(s.Body)
		if err != nil || res == ReturnStep {
			return res, err
		}
	}
}

func (ip *Interpreter) execFor(s *syntax.ForStmt) (StepResult, error) {
	name, cell, err := ip.loopCell(s)
	if err != nil {
		return ContinueStep, err
	}
	upperV, err := ip.eval(s.Upper)
	if err != nil {
		return ContinueStep, err
	}
	upper, ok := value.AsFloat64(upperV)
	if !ok {
		return ContinueStep, fmt.Errorf("%w: for upper bound is %s", value.ErrInvalidOperand, upperV.Tag())
	}

	for {
		cur, ok := value.AsFloat64(cell.Value)
		if !ok {
			return ContinueStep, fmt.Errorf("%w: loop variable %s is %s", value.ErrInvalidOperand, name, cell.Value.Tag())
		}
		if cur > upper {
			return ContinueStep, nil
		}
		res, err := ip.execBlock(s.Body)
		if err != nil || res == ReturnStep {
			return res, err
		}
		if err := ip.advance(s, name, cell); err != nil {
			return ContinueStep, err
		}
	}
}

// loopCell binds the loop variable once, before the first iteration.
func (ip *Interpreter) loopCell(s *syntax.ForStmt) (string, *value.Cell, error) {
	if s.Decl != nil {
		if err := ip.declare(s.Decl); err != nil {
			return "", nil, err
		}
		name := s.Decl.Names[0]
		return name, ip.State.Frame.Variables[name], nil
	}
	id, ok := s.Init.Targets[0].(*syntax.Ident)
	if !ok {
		return "", nil, fmt.Errorf("%w: loop variable must be a name", value.ErrInvalidOperand)
	}
	v, err := ip.eval(s.Init.Values[0])
	if err != nil {
		return "", nil, err
	}
	cell := value.NewCell(v, v.Tag(), true, true)
	ip.State.Frame.StoreVar(id.Name, cell)
	return id.Name, cell, nil
}

func (ip *Interpreter) advance(s *syntax.ForStmt, name string, cell *value.Cell) error {
	switch {
	case s.StepAssign != nil:
		if id, ok := s.StepAssign.Targets[0].(*syntax.Ident); ok && id.Name == name {
			v, err := ip.eval(s.StepAssign.Values[0])
			if err != nil {
				return err
			}
			return cell.Set(v)
		}
		return ip.assign(s.StepAssign)
	case s.StepBy != nil:
		by, err := ip.eval(s.StepBy)
		if err != nil {
			return err
		}
		v, err := binaryOp(syntax.PLUS, cell.Value, by)
		if err != nil {
			return err
		}
		return cell.Set(v)
	}
	switch cur := cell.Value.(type) {
	case value.IntValue:
		return cell.Set(cur + 1)
	case value.Float32Value:
		// A static float cell only accepts floats.
		if !cell.Dynamic {
			return cell.Set(cur + 1)
		}
	}
	f, ok := value.AsFloat64(cell.Value)
	if !ok {
		return fmt.Errorf("%w: loop variable %s is %s", value.ErrInvalidOperand, name, cell.Value.Tag())
	}
	return cell.Set(value.Float64Value(f + 1))
}

func (ip *Interpreter) execForeach(s *syntax.ForeachStmt) (StepResult, error) {
	x, err := ip.eval(s.X)
	if err != nil {
		return ContinueStep, err
	}
	l, ok := x.(*value.ListValue)
	if !ok {
		return ContinueStep, fmt.Errorf("%w: %s", value.ErrNotIterable, x.Tag())
	}
	for _, e := range l.Elems {
		ip.State.Frame.StoreVar(s.Var, value.NewCell(e, e.Tag(), true, true))
		res, err := ip.execBlock(s.Body)
		if err != nil || res == ReturnStep {
			return res, err
		}
	}
	return ContinueStep, nil
}
