package syntax

import (
	"fmt"
	"os"
)

// An Error is a scan or parse failure at a source position.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

type parser struct {
	toks        []Lexeme
	i           int
	methodDepth int
	inClass     bool
}

// Parse parses a complete program. The path is only used for positions.
func Parse(path, src string) (*File, error) {
	toks, err := Scan(path, src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	f := &File{Path: path}
	for {
		p.skipSemis()
		if p.at(EOF) {
			return f, nil
		}
		d, err := p.decl()
		if err != nil {
			return nil, err
		}
		f.Decls = append(f.Decls, d)
	}
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, string(b))
}

func (p *parser) cur() Lexeme {
	return p.toks[p.i]
}

func (p *parser) peek() Lexeme {
	if p.i+1 < len(p.toks) {
		return p.toks[p.i+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) at(k Token) bool {
	return p.cur().Kind == k
}

func (p *parser) advance() Lexeme {
	l := p.cur()
	if l.Kind != EOF {
		p.i++
	}
	return l
}

func (p *parser) accept(k Token) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(k Token) (Lexeme, error) {
	if !p.at(k) {
		return Lexeme{}, p.errorf("expected %s, got %s", k, p.cur())
	}
	return p.advance(), nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &Error{Pos: p.cur().Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSemis() {
	for p.accept(SEMI) {
	}
}

func (p *parser) decl() (Decl, error) {
	switch p.cur().Kind {
	case CLASS:
		if p.inClass {
			return nil, p.errorf("nested classes are unsupported")
		}
		return p.classDecl()
	case DEF:
		if p.methodDepth > 0 {
			return nil, p.errorf("nested method declarations are unsupported")
		}
		return p.methodDecl()
	}
	return p.stmt()
}

func (p *parser) classDecl() (*ClassDecl, error) {
	pos := p.advance().Pos
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	c := &ClassDecl{Pos: pos, Name: name.Raw}
	p.inClass = true
	defer func() { p.inClass = false }()
	for {
		p.skipSemis()
		if p.accept(RBRACE) {
			return c, nil
		}
		if p.at(EOF) {
			return nil, p.errorf("unterminated class %s", c.Name)
		}
		m, err := p.decl()
		if err != nil {
			return nil, err
		}
		c.Members = append(c.Members, m)
	}
}

func (p *parser) methodDecl() (*MethodDecl, error) {
	pos := p.advance().Pos
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	m := &MethodDecl{Pos: pos, Name: name.Raw}
	seen := make(map[string]bool)
	for !p.at(RPAREN) {
		param, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		if seen[param.Raw] {
			return nil, &Error{Pos: param.Pos, Msg: fmt.Sprintf("duplicate parameter %s", param.Raw)}
		}
		seen[param.Raw] = true
		m.Params = append(m.Params, param.Raw)
		if !p.accept(COMMA) {
			break
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	p.methodDepth++
	defer func() { p.methodDepth-- }()
	m.Body, err = p.doBlock()
	if err != nil {
		return nil, err
	}
	return m, nil
}

// doBlock parses `do: stmt* end`.
func (p *parser) doBlock() ([]Stmt, error) {
	if err := p.blockOpen(); err != nil {
		return nil, err
	}
	body, err := p.stmtsUntil(END)
	if err != nil {
		return nil, err
	}
	p.advance()
	return body, nil
}

func (p *parser) blockOpen() error {
	if _, err := p.expect(DO); err != nil {
		return err
	}
	_, err := p.expect(COLON)
	return err
}

// stmtsUntil parses statements until one of the stop tokens, which is left
// unconsumed.
func (p *parser) stmtsUntil(stop ...Token) ([]Stmt, error) {
	var out []Stmt
	for {
		p.skipSemis()
		for _, k := range stop {
			if p.at(k) {
				return out, nil
			}
		}
		if p.at(EOF) {
			return nil, p.errorf("expected %s, got end of file", stop[0])
		}
		if p.at(CLASS) || p.at(DEF) {
			return nil, p.errorf("%s is only allowed at top level", p.cur().Kind)
		}
		s, err := p.stmt()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
}

func (p *parser) stmt() (Stmt, error) {
	switch k := p.cur().Kind; {
	case k == VAR || k == VAL || k.IsType():
		return p.varDecl()
	case k == PRINT:
		return p.printStmt()
	case k == RETURN:
		return p.returnStmt()
	case k == IF:
		return p.ifStmt()
	case k == WHILE:
		return p.whileStmt()
	case k == FOR:
		return p.forStmt()
	case k == FOREACH:
		return p.foreachStmt()
	}
	return p.simpleStmt()
}

func (p *parser) varDecl() (*VarDecl, error) {
	d := &VarDecl{Pos: p.cur().Pos, Type: ILLEGAL}
	if p.accept(VAR) {
		d.Var = true
	} else if p.accept(VAL) {
		d.Val = true
	}
	if p.cur().Kind.IsType() {
		d.Type = p.advance().Kind
	}
	for {
		name, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		d.Names = append(d.Names, name.Raw)
		if !p.accept(COMMA) {
			break
		}
	}
	if p.accept(EQ) {
		values, err := p.exprList()
		if err != nil {
			return nil, err
		}
		d.Values = values
	}
	return d, nil
}

func (p *parser) printStmt() (*PrintStmt, error) {
	pos := p.advance().Pos
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	s := &PrintStmt{Pos: pos}
	if !p.at(RPAREN) {
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		s.X = x
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *parser) returnStmt() (*ReturnStmt, error) {
	if p.methodDepth == 0 {
		return nil, p.errorf("return outside of a method body")
	}
	tok := p.advance()
	s := &ReturnStmt{Pos: tok.Pos}
	// Values must start on the same line as the keyword.
	next := p.cur()
	switch next.Kind {
	case EOF, SEMI, END, ELIF, ELSE:
		return s, nil
	}
	if next.Pos.Line != tok.Pos.Line {
		return s, nil
	}
	values, err := p.exprList()
	if err != nil {
		return nil, err
	}
	s.Values = values
	return s, nil
}

func (p *parser) ifStmt() (*IfStmt, error) {
	s := &IfStmt{Pos: p.advance().Pos}
	for {
		cond, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.blockOpen(); err != nil {
			return nil, err
		}
		body, err := p.stmtsUntil(ELIF, ELSE, END)
		if err != nil {
			return nil, err
		}
		s.Conds = append(s.Conds, cond)
		s.Blocks = append(s.Blocks, body)
		if !p.accept(ELIF) {
			break
		}
	}
	if p.accept(ELSE) {
		p.accept(DO)
		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}
		body, err := p.stmtsUntil(END)
		if err != nil {
			return nil, err
		}
		if body == nil {
			body = []Stmt{}
		}
		s.Else = body
	}
	if _, err := p.expect(END); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *parser) whileStmt() (*WhileStmt, error) {
	s := &WhileStmt{Pos: p.advance().Pos}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	s.Cond = cond
	s.Body, err = p.doBlock()
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (p *parser) forStmt() (*ForStmt, error) {
	s := &ForStmt{Pos: p.advance().Pos}
	switch k := p.cur().Kind; {
	case k == VAR || k == VAL || k.IsType():
		d, err := p.varDecl()
		if err != nil {
			return nil, err
		}
		if len(d.Names) != 1 || len(d.Values) != 1 {
			return nil, &Error{Pos: d.Pos, Msg: "for loop declares exactly one initialized variable"}
		}
		s.Decl = d
	default:
		init, err := p.singleAssign()
		if err != nil {
			return nil, err
		}
		s.Init = init
	}
	if _, err := p.expect(TO); err != nil {
		return nil, err
	}
	upper, err := p.expr()
	if err != nil {
		return nil, err
	}
	s.Upper = upper
	if p.accept(STEP) {
		if p.at(IDENT) && p.peek().Kind == EQ {
			s.StepAssign, err = p.singleAssign()
		} else {
			s.StepBy, err = p.expr()
		}
		if err != nil {
			return nil, err
		}
	}
	s.Body, err = p.doBlock()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// singleAssign parses `ident = expr`.
func (p *parser) singleAssign() (*AssignStmt, error) {
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EQ); err != nil {
		return nil, err
	}
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &AssignStmt{
		Pos:     name.Pos,
		Targets: []Expr{&Ident{Pos: name.Pos, Name: name.Raw}},
		Values:  []Expr{x},
	}, nil
}

func (p *parser) foreachStmt() (*ForeachStmt, error) {
	s := &ForeachStmt{Pos: p.advance().Pos}
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	s.Var = name.Raw
	if _, err := p.expect(IN); err != nil {
		return nil, err
	}
	s.X, err = p.expr()
	if err != nil {
		return nil, err
	}
	s.Body, err = p.doBlock()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// simpleStmt parses an assignment or an expression statement.
func (p *parser) simpleStmt() (Stmt, error) {
	pos := p.cur().Pos
	lhs, err := p.exprList()
	if err != nil {
		return nil, err
	}
	if p.accept(EQ) {
		for _, t := range lhs {
			switch t.(type) {
			case *Ident, *DotExpr:
			default:
				return nil, &Error{Pos: t.Span(), Msg: "cannot assign to expression"}
			}
		}
		rhs, err := p.exprList()
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Pos: pos, Targets: lhs, Values: rhs}, nil
	}
	if len(lhs) != 1 {
		return nil, &Error{Pos: pos, Msg: "expected = after target list"}
	}
	switch lhs[0].(type) {
	case *CallExpr, *NewExpr, *InputExpr:
	default:
		return nil, &Error{Pos: pos, Msg: "expression statement has no effect"}
	}
	return &ExprStmt{Pos: pos, X: lhs[0]}, nil
}

func (p *parser) exprList() ([]Expr, error) {
	var out []Expr
	for {
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		out = append(out, x)
		if !p.accept(COMMA) {
			return out, nil
		}
	}
}

// Binary precedence, loosest first.
var precedence = [][]Token{
	{OR},
	{XOR},
	{AND},
	{EQL, NEQ},
	{LT, GT, LE, GE},
	{PLUS, MINUS},
	{STAR, SLASH, PERCENT},
}

func (p *parser) expr() (Expr, error) {
	return p.binary(0)
}

func (p *parser) binary(level int) (Expr, error) {
	if level == len(precedence) {
		return p.unary()
	}
	x, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchOp(precedence[level])
		if !ok {
			return x, nil
		}
		y, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}
		x = &BinaryExpr{Pos: op.Pos, Op: op.Kind, X: x, Y: y}
	}
}

func (p *parser) matchOp(ops []Token) (Lexeme, bool) {
	for _, k := range ops {
		if p.at(k) {
			return p.advance(), true
		}
	}
	return Lexeme{}, false
}

func (p *parser) unary() (Expr, error) {
	switch p.cur().Kind {
	case MINUS, NOT, BANG:
		op := p.advance()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		kind := op.Kind
		if kind == BANG {
			kind = NOT
		}
		return &UnaryExpr{Pos: op.Pos, Op: kind, X: x}, nil
	}
	return p.postfix()
}

func (p *parser) postfix() (Expr, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.at(DOT) {
		p.advance()
		name, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		if p.at(LPAREN) {
			args, err := p.args()
			if err != nil {
				return nil, err
			}
			x = &CallExpr{Pos: name.Pos, Recv: x, Name: name.Raw, Args: args}
			continue
		}
		x = &DotExpr{Pos: name.Pos, X: x, Name: name.Raw}
	}
	return x, nil
}

func (p *parser) args() ([]Expr, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	var out []Expr
	if !p.at(RPAREN) {
		var err error
		out, err = p.exprList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) primary() (Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case INT, FLOAT, DOUBLE, CHAR, STRING, BOOL:
		p.advance()
		return &Literal{Pos: tok.Pos, Token: tok.Kind, Raw: tok.Raw}, nil
	case IDENT:
		p.advance()
		if p.at(LPAREN) {
			args, err := p.args()
			if err != nil {
				return nil, err
			}
			return &CallExpr{Pos: tok.Pos, Name: tok.Raw, Args: args}, nil
		}
		return &Ident{Pos: tok.Pos, Name: tok.Raw}, nil
	case THIS:
		p.advance()
		return &ThisExpr{Pos: tok.Pos}, nil
	case NEW:
		p.advance()
		name, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(LPAREN); err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &NewExpr{Pos: tok.Pos, Class: name.Raw}, nil
	case INPUT:
		p.advance()
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		if len(args) > 1 {
			return nil, &Error{Pos: tok.Pos, Msg: "input takes at most one prompt"}
		}
		in := &InputExpr{Pos: tok.Pos}
		if len(args) == 1 {
			in.Prompt = args[0]
		}
		return in, nil
	case LPAREN:
		p.advance()
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &ParenExpr{Pos: tok.Pos, X: x}, nil
	case LBRACK:
		p.advance()
		l := &ListExpr{Pos: tok.Pos}
		if !p.at(RBRACK) {
			list, err := p.exprList()
			if err != nil {
				return nil, err
			}
			l.List = list
		}
		if _, err := p.expect(RBRACK); err != nil {
			return nil, err
		}
		return l, nil
	}
	return nil, p.errorf("unexpected %s", tok)
}
