package project

import (
	"github.com/minj-lang/minj/cas"
	"github.com/minj-lang/minj/syntax"
	"github.com/rs/zerolog/log"
)

// TraceStep is the effect of one top-level declaration on the globals.
type TraceStep struct {
	Index   int
	Pos     syntax.Position
	Kind    string
	Hash    cas.Hash
	Seen    bool
	Changes []cas.Change
}

// Tracer snapshots the globals after every top-level declaration. States
// are kept in a content-addressed store, so a state that was already
// reached is reported as seen.
type Tracer struct {
	Store    cas.CAS
	Reporter Reporter
	Details  bool
	Steps    []TraceStep

	prev    cas.Hash
	hasPrev bool
}

func NewTracer(r Reporter, details bool) *Tracer {
	if r == nil {
		r = &SilentReporter{}
	}
	return &Tracer{
		Store:    cas.NewLRUCache(cas.NewMemoryCAS(), 64),
		Reporter: r,
		Details:  details,
	}
}

// Attach installs the tracer on the executor's interpreter.
func (t *Tracer) Attach(e *Executor) {
	st := e.Interp.State
	e.Interp.AfterDecl = func(i int, d syntax.Decl) error {
		return t.record(cas.Take(st), i, d)
	}
}

func (t *Tracer) record(snap *cas.Snapshot, i int, d syntax.Decl) error {
	var prev *cas.Snapshot
	if t.hasPrev {
		p, err := cas.Retrieve[*cas.Snapshot](t.Store, t.prev)
		if err != nil {
			return err
		}
		prev = p
	}

	h, err := cas.HashOf(snap)
	if err != nil {
		return err
	}
	seen := t.Store.Has(h)
	if _, err := t.Store.Put(snap); err != nil {
		return err
	}

	step := TraceStep{
		Index:   i,
		Pos:     d.Span(),
		Kind:    declKind(d),
		Hash:    h,
		Seen:    seen,
		Changes: cas.Diff(prev, snap),
	}
	t.Steps = append(t.Steps, step)
	t.prev, t.hasPrev = h, true
	log.Trace().Int("step", i).Str("hash", h.String()).Bool("seen", seen).Msg("trace")
	t.Reporter.Printf("%s", FormatStep(step, t.Details))
	return nil
}

func declKind(d syntax.Decl) string {
	switch d.(type) {
	case *syntax.ClassDecl:
		return "class"
	case *syntax.MethodDecl:
		return "def"
	case *syntax.VarDecl:
		return "declare"
	case *syntax.AssignStmt:
		return "assign"
	case *syntax.PrintStmt:
		return "print"
	case *syntax.ExprStmt:
		return "call"
	case *syntax.IfStmt:
		return "if"
	case *syntax.WhileStmt:
		return "while"
	case *syntax.ForStmt:
		return "for"
	case *syntax.ForeachStmt:
		return "foreach"
	}
	return "statement"
}
