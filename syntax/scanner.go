package syntax

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// A Lexeme is one scanned token. Raw holds the exact source text; literal
// bodies keep their quotes and suffixes so the evaluator can decode them.
type Lexeme struct {
	Kind Token
	Raw  string
	Pos  Position
}

func (l Lexeme) String() string {
	switch l.Kind {
	case IDENT, INT, FLOAT, DOUBLE, CHAR, STRING, BOOL:
		return fmt.Sprintf("%s %q", l.Kind, l.Raw)
	}
	return l.Kind.String()
}

type scanner struct {
	file string
	src  string
	pos  int // offset of ch
	next int // offset after ch
	ch   rune
	line int
	col  int
}

func newScanner(file, src string) *scanner {
	s := &scanner{file: file, src: src, line: 1}
	s.read()
	return s
}

func (s *scanner) read() {
	if s.next >= len(s.src) {
		s.pos = len(s.src)
		s.ch = -1
		s.col++
		return
	}
	if s.ch == '\n' {
		s.line++
		s.col = 0
	}
	r, size := utf8.DecodeRuneInString(s.src[s.next:])
	s.ch = r
	s.pos = s.next
	s.next += size
	s.col++
}

func (s *scanner) peek() rune {
	if s.next >= len(s.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.next:])
	return r
}

func (s *scanner) position() Position {
	return Position{File: s.file, Line: s.line, Col: s.col}
}

func (s *scanner) errorf(pos Position, format string, args ...any) error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) skipSpaceAndComments() error {
	for {
		switch {
		case s.ch == ' ' || s.ch == '\t' || s.ch == '\r' || s.ch == '\n':
			s.read()
		case s.ch == '/' && s.peek() == '/':
			for s.ch != '\n' && s.ch != -1 {
				s.read()
			}
		case s.ch == '/' && s.peek() == '*':
			start := s.position()
			s.read()
			s.read()
			for !(s.ch == '*' && s.peek() == '/') {
				if s.ch == -1 {
					return s.errorf(start, "unterminated block comment")
				}
				s.read()
			}
			s.read()
			s.read()
		default:
			return nil
		}
	}
}

// scan returns the next lexeme, or EOF at the end of input.
func (s *scanner) scan() (Lexeme, error) {
	if err := s.skipSpaceAndComments(); err != nil {
		return Lexeme{}, err
	}
	pos := s.position()
	start := s.pos
	if s.ch == -1 {
		return Lexeme{Kind: EOF, Pos: pos}, nil
	}

	switch {
	case isLetter(s.ch):
		for isLetter(s.ch) || isDigit(s.ch) {
			s.read()
		}
		word := s.src[start:s.pos]
		if kw, ok := keywords[word]; ok {
			return Lexeme{Kind: kw, Raw: word, Pos: pos}, nil
		}
		return Lexeme{Kind: IDENT, Raw: word, Pos: pos}, nil
	case isDigit(s.ch):
		return s.number(start, pos)
	}

	ch := s.ch
	s.read()
	kind := ILLEGAL
	switch ch {
	case '\'':
		return s.quoted('\'', CHAR, start, pos)
	case '"':
		return s.quoted('"', STRING, start, pos)
	case '+':
		kind = PLUS
	case '-':
		kind = MINUS
	case '*':
		kind = STAR
	case '/':
		kind = SLASH
	case '%':
		kind = PERCENT
	case '(':
		kind = LPAREN
	case ')':
		kind = RPAREN
	case '[':
		kind = LBRACK
	case ']':
		kind = RBRACK
	case '{':
		kind = LBRACE
	case '}':
		kind = RBRACE
	case ',':
		kind = COMMA
	case '.':
		kind = DOT
	case ':':
		kind = COLON
	case ';':
		kind = SEMI
	case '=':
		kind = s.twoChar('=', EQL, EQ)
	case '!':
		kind = s.twoChar('=', NEQ, BANG)
	case '<':
		kind = s.twoChar('=', LE, LT)
	case '>':
		kind = s.twoChar('=', GE, GT)
	case '&':
		if s.ch == '&' {
			s.read()
			kind = AND
		}
	case '|':
		if s.ch == '|' {
			s.read()
			kind = OR
		}
	case '^':
		kind = XOR
	}
	if kind == ILLEGAL {
		return Lexeme{}, s.errorf(pos, "unexpected character %q", ch)
	}
	return Lexeme{Kind: kind, Raw: s.src[start:s.pos], Pos: pos}, nil
}

func (s *scanner) twoChar(second rune, yes, no Token) Token {
	if s.ch == second {
		s.read()
		return yes
	}
	return no
}

func (s *scanner) number(start int, pos Position) (Lexeme, error) {
	kind := INT
	for isDigit(s.ch) {
		s.read()
	}
	if s.ch == '.' && isDigit(s.peek()) {
		kind = DOUBLE
		s.read()
		for isDigit(s.ch) {
			s.read()
		}
	}
	if s.ch == 'e' || s.ch == 'E' {
		kind = DOUBLE
		s.read()
		if s.ch == '+' || s.ch == '-' {
			s.read()
		}
		if !isDigit(s.ch) {
			return Lexeme{}, s.errorf(pos, "malformed exponent in %q", s.src[start:s.pos])
		}
		for isDigit(s.ch) {
			s.read()
		}
	}
	if s.ch == 'f' || s.ch == 'F' {
		kind = FLOAT
		s.read()
	}
	if isLetter(s.ch) {
		return Lexeme{}, s.errorf(pos, "malformed number %q", s.src[start:s.pos+1])
	}
	return Lexeme{Kind: kind, Raw: s.src[start:s.pos], Pos: pos}, nil
}

// quoted scans a char or string literal. A backslash keeps the following
// character from closing the literal, but nothing is unescaped here.
func (s *scanner) quoted(quote rune, kind Token, start int, pos Position) (Lexeme, error) {
	for s.ch != quote {
		if s.ch == -1 || s.ch == '\n' {
			return Lexeme{}, s.errorf(pos, "unterminated %s", kind)
		}
		if s.ch == '\\' {
			s.read()
			if s.ch == -1 {
				return Lexeme{}, s.errorf(pos, "unterminated %s", kind)
			}
		}
		s.read()
	}
	s.read()
	raw := s.src[start:s.pos]
	if kind == CHAR && utf8.RuneCountInString(raw) < 3 {
		return Lexeme{}, s.errorf(pos, "empty char literal")
	}
	return Lexeme{Kind: kind, Raw: raw, Pos: pos}, nil
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// Scan tokenizes src completely. It is mostly useful for tests and tooling.
func Scan(file, src string) ([]Lexeme, error) {
	s := newScanner(file, src)
	var out []Lexeme
	for {
		l, err := s.scan()
		if err != nil {
			return nil, err
		}
		out = append(out, l)
		if l.Kind == EOF {
			return out, nil
		}
	}
}
