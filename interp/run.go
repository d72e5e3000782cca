package interp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/minj-lang/minj/syntax"
	"github.com/minj-lang/minj/value"
	"github.com/rs/zerolog/log"
)

var errReturnOutsideMethod = errors.New("return outside of a method body")

// Interpreter walks a parsed program against a State.
type Interpreter struct {
	State *State
	Out   io.Writer
	In    *bufio.Reader

	// AfterDecl, if set, runs after every top-level declaration. A non-nil
	// error stops the run.
	AfterDecl func(index int, decl syntax.Decl) error
}

// New builds an interpreter printing to out and reading input from in. Nil
// arguments fall back to the process stdout and stdin.
func New(out io.Writer, in io.Reader) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	if in == nil {
		in = os.Stdin
	}
	return &Interpreter{
		State: NewState(),
		Out:   out,
		In:    bufio.NewReader(in),
	}
}

// Execute runs the top-level declarations of f in order: classes and methods
// are registered, bare statements run immediately.
func (ip *Interpreter) Execute(f *syntax.File) error {
	log.Debug().Str("file", f.Path).Int("decls", len(f.Decls)).Msg("Execute: starting")
	for i, d := range f.Decls {
		if err := ip.execDecl(d); err != nil {
			return err
		}
		if ip.AfterDecl != nil {
			if err := ip.AfterDecl(i, d); err != nil {
				return err
			}
		}
	}
	log.Debug().Str("file", f.Path).Msg("Execute: finished")
	return nil
}

func (ip *Interpreter) execDecl(d syntax.Decl) error {
	switch v := d.(type) {
	case *syntax.ClassDecl:
		return ip.registerClass(v)
	case *syntax.MethodDecl:
		log.Debug().Str("method", v.Name).Int("params", len(v.Params)).Msg("registered global method")
		ip.State.Methods[v.Name] = v
		return nil
	case syntax.Stmt:
		res, err := ip.exec(v)
		if err != nil {
			return err
		}
		if res == ReturnStep {
			return positioned(v, errReturnOutsideMethod)
		}
		return nil
	}
	return fmt.Errorf("unhandled declaration type %T", d)
}

// Call invokes a global method by name, as the driver does for an entrypoint.
func (ip *Interpreter) Call(name string, args ...value.Value) (value.Value, error) {
	m, ok := ip.State.Methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", value.ErrUnknownCallable, name)
	}
	return ip.invoke(m, args, nil)
}
