package project

import (
	"errors"
	"fmt"
	"io"

	"github.com/minj-lang/minj/interp"
	"github.com/minj-lang/minj/syntax"
	"github.com/minj-lang/minj/value"
	"github.com/rs/zerolog/log"
)

// SourceError reports a program file that could not be read at all, as
// opposed to one that failed to parse or run.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("cannot read %s: %s", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// An Executor is the parsed program of a project plus the interpreter that
// runs it.
type Executor struct {
	Project *Project
	File    *syntax.File
	Interp  *interp.Interpreter
}

// BuildExecutor reads and parses the project's program. Program output goes
// to out and input is read from in.
func (p *Project) BuildExecutor(out io.Writer, in io.Reader) (*Executor, error) {
	f, err := syntax.ParseFile(p.Program.File)
	if err != nil {
		var pe *syntax.Error
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, &SourceError{Path: p.Program.File, Err: err}
	}
	log.Debug().Str("file", p.Program.File).Int("decls", len(f.Decls)).Msg("parsed program")
	return &Executor{
		Project: p,
		File:    f,
		Interp:  interp.New(out, in),
	}, nil
}

// Run executes the top level and then the entrypoint, if one is set. The
// entrypoint's return value is Void when there is none.
func (e *Executor) Run() (value.Value, error) {
	if err := e.Interp.Execute(e.File); err != nil {
		return nil, err
	}
	entry := e.Project.Program.Entrypoint
	if entry == "" {
		return value.Void, nil
	}
	log.Debug().Str("entrypoint", entry).Msg("calling entrypoint")
	return e.Interp.Call(entry)
}
