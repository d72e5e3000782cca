package interp

import (
	"fmt"

	"github.com/minj-lang/minj/syntax"
	"github.com/minj-lang/minj/value"
	"github.com/rs/zerolog/log"
)

func (ip *Interpreter) callExpr(c *syntax.CallExpr) (value.Value, error) {
	if c.Recv == nil {
		m, ok := ip.State.Methods[c.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", value.ErrUnknownCallable, c.Name)
		}
		args, err := ip.evalList(c.Args)
		if err != nil {
			return nil, err
		}
		return ip.invoke(m, args, nil)
	}

	recv, err := ip.eval(c.Recv)
	if err != nil {
		return nil, err
	}
	obj, ok := recv.(*value.ObjectValue)
	if !ok {
		return nil, fmt.Errorf("%w: method %s called on %s", value.ErrInvalidOperand, c.Name, recv.Tag())
	}
	m, ok := obj.Class.Methods[c.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", value.ErrUnknownMethod, obj.Class.Name, c.Name)
	}
	args, err := ip.evalList(c.Args)
	if err != nil {
		return nil, err
	}
	return ip.invoke(m, args, obj)
}

// invoke runs m in a fresh local frame. The caller's frame is restored on
// every exit path, and a return inside the body unwinds to here and no
// further.
func (ip *Interpreter) invoke(m *syntax.MethodDecl, args []value.Value, recv *value.ObjectValue) (value.Value, error) {
	if len(args) != len(m.Params) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", value.ErrArityMismatch, m.Name, len(m.Params), len(args))
	}

	st := ip.State
	savedFrame, savedInMethod := st.Frame, st.inMethod
	defer func() {
		st.Frame, st.inMethod = savedFrame, savedInMethod
	}()

	frame := NewStackFrame()
	st.Frame = frame
	st.inMethod = true
	if recv != nil {
		frame.StoreVar(thisName, value.NewCell(recv, value.TagObject, false, false))
	}
	for i, p := range m.Params {
		frame.StoreVar(p, value.NewCell(args[i], args[i].Tag(), true, false))
	}

	ev := log.Debug().Str("method", m.Name).Int("args", len(args))
	if recv != nil {
		ev = ev.Str("receiver", recv.String())
	}
	ev.Msg("invoke")

	res, err := ip.execBlock(m.Body)
	if err != nil {
		return nil, err
	}
	if res != ReturnStep {
		return value.Void, nil
	}
	switch len(frame.Returned) {
	case 0:
		return value.Void, nil
	case 1:
		return frame.Returned[0], nil
	}
	return value.NewReturnList(frame.Returned), nil
}
