package syntax

import "fmt"

type Token int

const (
	ILLEGAL Token = iota
	EOF

	IDENT
	INT    // 123
	FLOAT  // 1.5f
	DOUBLE // 1.5
	CHAR   // 'c'
	STRING // "abc"
	BOOL   // true, false

	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	EQ      // =
	EQL     // ==
	NEQ     // !=
	LT      // <
	GT      // >
	LE      // <=
	GE      // >=
	BANG    // !
	LPAREN  // (
	RPAREN  // )
	LBRACK  // [
	RBRACK  // ]
	LBRACE  // {
	RBRACE  // }
	COMMA   // ,
	DOT     // .
	COLON   // :
	SEMI    // ;

	// Keywords
	AND
	CLASS
	DEF
	DO
	ELIF
	ELSE
	END
	FOR
	FOREACH
	IF
	IN
	INPUT
	NEW
	NOT
	OR
	PRINT
	RETURN
	STEP
	THIS
	TO
	VAL
	VAR
	WHILE
	XOR

	// Type names
	TYPE_INT
	TYPE_FLOAT
	TYPE_DOUBLE
	TYPE_BOOLEAN
	TYPE_CHAR
	TYPE_STRING
)

var tokenNames = [...]string{
	ILLEGAL:      "illegal token",
	EOF:          "end of file",
	IDENT:        "identifier",
	INT:          "int literal",
	FLOAT:        "float literal",
	DOUBLE:       "double literal",
	CHAR:         "char literal",
	STRING:       "string literal",
	BOOL:         "boolean literal",
	PLUS:         "+",
	MINUS:        "-",
	STAR:         "*",
	SLASH:        "/",
	PERCENT:      "%",
	EQ:           "=",
	EQL:          "==",
	NEQ:          "!=",
	LT:           "<",
	GT:           ">",
	LE:           "<=",
	GE:           ">=",
	BANG:         "!",
	LPAREN:       "(",
	RPAREN:       ")",
	LBRACK:       "[",
	RBRACK:       "]",
	LBRACE:       "{",
	RBRACE:       "}",
	COMMA:        ",",
	DOT:          ".",
	COLON:        ":",
	SEMI:         ";",
	AND:          "and",
	CLASS:        "class",
	DEF:          "def",
	DO:           "do",
	ELIF:         "elif",
	ELSE:         "else",
	END:          "end",
	FOR:          "for",
	FOREACH:      "foreach",
	IF:           "if",
	IN:           "in",
	INPUT:        "input",
	NEW:          "new",
	NOT:          "not",
	OR:           "or",
	PRINT:        "print",
	RETURN:       "return",
	STEP:         "step",
	THIS:         "this",
	TO:           "to",
	VAL:          "val",
	VAR:          "var",
	WHILE:        "while",
	XOR:          "xor",
	TYPE_INT:     "int",
	TYPE_FLOAT:   "float",
	TYPE_DOUBLE:  "double",
	TYPE_BOOLEAN: "boolean",
	TYPE_CHAR:    "char",
	TYPE_STRING:  "String",
}

func (t Token) String() string {
	if t >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

// IsType reports whether t names one of the builtin declaration types.
func (t Token) IsType() bool {
	return t >= TYPE_INT && t <= TYPE_STRING
}

var keywords = map[string]Token{
	"and":     AND,
	"class":   CLASS,
	"def":     DEF,
	"do":      DO,
	"elif":    ELIF,
	"else":    ELSE,
	"end":     END,
	"for":     FOR,
	"foreach": FOREACH,
	"if":      IF,
	"in":      IN,
	"input":   INPUT,
	"new":     NEW,
	"not":     NOT,
	"or":      OR,
	"print":   PRINT,
	"return":  RETURN,
	"step":    STEP,
	"this":    THIS,
	"to":      TO,
	"val":     VAL,
	"var":     VAR,
	"while":   WHILE,
	"xor":     XOR,
	"true":    BOOL,
	"false":   BOOL,
	"int":     TYPE_INT,
	"float":   TYPE_FLOAT,
	"double":  TYPE_DOUBLE,
	"boolean": TYPE_BOOLEAN,
	"char":    TYPE_CHAR,
	"String":  TYPE_STRING,
}

// Position is a location in a source file. Line and Col are 1-based.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// IsValid reports whether the position was ever set.
func (p Position) IsValid() bool {
	return p.Line > 0
}
