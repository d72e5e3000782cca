package syntax

// Node is implemented by every tree node.
type Node interface {
	Span() Position
}

// Decl is a top-level declaration or a class body member: a *ClassDecl, a
// *MethodDecl or any Stmt.
type Decl interface {
	Node
	declNode()
}

type Stmt interface {
	Decl
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

// File is the root of a parsed program.
type File struct {
	Path  string
	Decls []Decl
}

type ClassDecl struct {
	Pos     Position
	Name    string
	Members []Decl // *VarDecl fields, *MethodDecl methods, other Stmts run once
}

type MethodDecl struct {
	Pos    Position
	Name   string
	Params []string
	Body   []Stmt
}

// VarDecl declares one or more identifiers. Type is ILLEGAL when no type
// token was written.
type VarDecl struct {
	Pos    Position
	Var    bool
	Val    bool
	Type   Token
	Names  []string
	Values []Expr // empty when there is no initializer
}

// AssignStmt rebinds existing cells. Each target is an *Ident or a *DotExpr.
type AssignStmt struct {
	Pos     Position
	Targets []Expr
	Values  []Expr
}

type PrintStmt struct {
	Pos Position
	X   Expr // may be nil
}

type ExprStmt struct {
	Pos Position
	X   Expr
}

type ReturnStmt struct {
	Pos    Position
	Values []Expr
}

// IfStmt holds the guarded branches in source order. Else is nil when there
// is no trailing unconditional block.
type IfStmt struct {
	Pos    Position
	Conds  []Expr
	Blocks [][]Stmt
	Else   []Stmt
}

type WhileStmt struct {
	Pos  Position
	Cond Expr
	Body []Stmt
}

// ForStmt is `for [var] i = lo to hi [step ...] do: ... end`. Exactly one of
// Decl and Init is set. StepAssign and StepBy are both nil for the default
// increment of one.
type ForStmt struct {
	Pos        Position
	Decl       *VarDecl
	Init       *AssignStmt
	Upper      Expr
	StepAssign *AssignStmt
	StepBy     Expr
	Body       []Stmt
}

type ForeachStmt struct {
	Pos  Position
	Var  string
	X    Expr
	Body []Stmt
}

type Ident struct {
	Pos  Position
	Name string
}

// Literal keeps the raw token text; decoding is done by the evaluator.
type Literal struct {
	Pos   Position
	Token Token
	Raw   string
}

type ThisExpr struct {
	Pos Position
}

type UnaryExpr struct {
	Pos Position
	Op  Token
	X   Expr
}

type BinaryExpr struct {
	Pos Position
	Op  Token
	X   Expr
	Y   Expr
}

type ParenExpr struct {
	Pos Position
	X   Expr
}

type ListExpr struct {
	Pos  Position
	List []Expr
}

// CallExpr is a call to a global method when Recv is nil, otherwise an
// instance method call on Recv.
type CallExpr struct {
	Pos  Position
	Recv Expr
	Name string
	Args []Expr
}

// DotExpr reads field Name of X.
type DotExpr struct {
	Pos  Position
	X    Expr
	Name string
}

type NewExpr struct {
	Pos   Position
	Class string
}

type InputExpr struct {
	Pos    Position
	Prompt Expr // may be nil
}

func (x *File) Span() Position {
	if len(x.Decls) == 0 {
		return Position{File: x.Path}
	}
	return x.Decls[0].Span()
}

func (x *ClassDecl) Span() Position   { return x.Pos }
func (x *MethodDecl) Span() Position  { return x.Pos }
func (x *VarDecl) Span() Position     { return x.Pos }
func (x *AssignStmt) Span() Position  { return x.Pos }
func (x *PrintStmt) Span() Position   { return x.Pos }
func (x *ExprStmt) Span() Position    { return x.Pos }
func (x *ReturnStmt) Span() Position  { return x.Pos }
func (x *IfStmt) Span() Position      { return x.Pos }
func (x *WhileStmt) Span() Position   { return x.Pos }
func (x *ForStmt) Span() Position     { return x.Pos }
func (x *ForeachStmt) Span() Position { return x.Pos }
func (x *Ident) Span() Position       { return x.Pos }
func (x *Literal) Span() Position     { return x.Pos }
func (x *ThisExpr) Span() Position    { return x.Pos }
func (x *UnaryExpr) Span() Position   { return x.Pos }
func (x *BinaryExpr) Span() Position  { return x.Pos }
func (x *ParenExpr) Span() Position   { return x.Pos }
func (x *ListExpr) Span() Position    { return x.Pos }
func (x *CallExpr) Span() Position    { return x.Pos }
func (x *DotExpr) Span() Position     { return x.Pos }
func (x *NewExpr) Span() Position     { return x.Pos }
func (x *InputExpr) Span() Position   { return x.Pos }

func (*ClassDecl) declNode()   {}
func (*MethodDecl) declNode()  {}
func (*VarDecl) declNode()     {}
func (*AssignStmt) declNode()  {}
func (*PrintStmt) declNode()   {}
func (*ExprStmt) declNode()    {}
func (*ReturnStmt) declNode()  {}
func (*IfStmt) declNode()      {}
func (*WhileStmt) declNode()   {}
func (*ForStmt) declNode()     {}
func (*ForeachStmt) declNode() {}

func (*VarDecl) stmtNode()     {}
func (*AssignStmt) stmtNode()  {}
func (*PrintStmt) stmtNode()   {}
func (*ExprStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode()  {}
func (*IfStmt) stmtNode()      {}
func (*WhileStmt) stmtNode()   {}
func (*ForStmt) stmtNode()     {}
func (*ForeachStmt) stmtNode() {}

func (*Ident) exprNode()      {}
func (*Literal) exprNode()    {}
func (*ThisExpr) exprNode()   {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*ParenExpr) exprNode()  {}
func (*ListExpr) exprNode()   {}
func (*CallExpr) exprNode()   {}
func (*DotExpr) exprNode()    {}
func (*NewExpr) exprNode()    {}
func (*InputExpr) exprNode()  {}
