package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Offset   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	EQUALS
	PLUS
	MINUS
	STAR
	SLASH
	SEMICOLON

	INT
	IDENT
	STRING

	IF
	ELSE
	WHILE
	PRINT
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:       "EOF",
		LPAREN:    "LPAREN",
		RPAREN:    "RPAREN",
		LBRACE:    "LBRACE",
		RBRACE:    "RBRACE",
		EQUALS:    "EQUALS",
		PLUS:      "PLUS",
		MINUS:     "MINUS",
		STAR:      "STAR",
		SLASH:     "SLASH",
		SEMICOLON: "SEMICOLON",
		INT:       "INT",
		IDENT:     "IDENT",
		STRING:    "STRING",
		IF:        "IF",
		ELSE:      "ELSE",
		WHILE:     "WHILE",
		PRINT:     "PRINT",
	}
	if s, ok := data[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

// Keywords maps reserved words to their token kinds. Identifiers are scanned
// first and then reclassified on an exact match.
var Keywords = map[string]TokenKind{
	"if":    IF,
	"else":  ELSE,
	"while": WHILE,
	"print": PRINT,
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

// Join returns the span covering both a and b.
func Join(a, b Span) Span {
	return Span{a.From, b.To}
}

type Token struct {
	Kind     TokenKind
	Lexeme   string
	Location Span
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
}
