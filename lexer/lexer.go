package lexer

import (
	"bufio"
	"io"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/peri/errors"
	"github.com/pontaoski/peri/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/peri", "lexer")

type Lexer struct {
	pos    types.Position
	prev   types.Position
	reader *bufio.Reader
	peeked *types.Token
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Column: 1, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

func (l *Lexer) read() (rune, error) {
	r, size, err := l.reader.ReadRune()
	if err != nil {
		return r, err
	}

	l.prev = l.pos
	l.pos.Offset += size
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}

	return r, nil
}

// backup undoes the last read. Only one rune of backup is supported.
func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}

	l.pos = l.prev
}

func (l *Lexer) token(kind types.TokenKind, from types.Position, lit string) types.Token {
	return types.Token{
		Kind:     kind,
		Lexeme:   lit,
		Location: types.Span{From: from, To: l.pos},
	}
}

func firstChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func otherChar(r rune) bool {
	return firstChar(r) || isDigit(r)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// lexWhile consumes runes matching pred, starting with the already read first.
func (l *Lexer) lexWhile(first rune, pred func(rune) bool) string {
	var lit strings.Builder
	lit.WriteRune(first)

	for {
		r, err := l.read()
		if err != nil {
			if err == io.EOF {
				return lit.String()
			}
			panic(err)
		}

		if !pred(r) {
			l.backup()
			return lit.String()
		}

		lit.WriteRune(r)
	}
}

// lexString is called after the opening quote has been read. The returned
// lexeme includes both quotes.
func (l *Lexer) lexString(from types.Position) types.Token {
	var lit strings.Builder
	lit.WriteRune('"')

	for {
		r, err := l.read()
		if err != nil {
			if err == io.EOF {
				panic(errors.LexError{
					Char:     '"',
					Reason:   "unterminated string",
					Location: from,
				})
			}
			panic(err)
		}

		lit.WriteRune(r)
		if r == '"' {
			return l.token(types.STRING, from, lit.String())
		}
	}
}

var punctuation = map[rune]types.TokenKind{
	'=': types.EQUALS,
	'+': types.PLUS,
	'-': types.MINUS,
	'*': types.STAR,
	'/': types.SLASH,
	'(': types.LPAREN,
	')': types.RPAREN,
	'{': types.LBRACE,
	'}': types.RBRACE,
	';': types.SEMICOLON,
}

func (l *Lexer) Peek() types.Token {
	if l.peeked != nil {
		return *l.peeked
	}

	tok := l.Lex()
	l.peeked = &tok

	return tok
}

func (l *Lexer) PeekIs(k ...types.TokenKind) bool {
	token := l.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

// Lex returns the next token. Once the input is exhausted every call returns
// an EOF token. Lexical errors are raised as panics of errors.LexError;
// Tokenize recovers them.
func (l *Lexer) Lex() types.Token {
	if l.peeked != nil {
		defer func() { l.peeked = nil }()
		return *l.peeked
	}

	for {
		from := l.pos
		r, err := l.read()
		if err != nil {
			if err == io.EOF {
				return l.token(types.EOF, from, "")
			}
			panic(err)
		}

		if isSpace(r) {
			continue
		}

		if kind, ok := punctuation[r]; ok {
			return l.token(kind, from, string(r))
		}

		switch {
		case r == '"':
			return l.lexString(from)
		case isDigit(r):
			return l.token(types.INT, from, l.lexWhile(r, isDigit))
		case firstChar(r):
			lit := l.lexWhile(r, otherChar)

			if kind, ok := types.Keywords[lit]; ok {
				return l.token(kind, from, lit)
			}

			return l.token(types.IDENT, from, lit)
		}

		panic(errors.LexError{
			Char:     r,
			Location: from,
		})
	}
}

// TokenizeReader lexes the whole input. The returned sequence always ends
// with exactly one EOF token.
func TokenizeReader(reader io.Reader, filename string) (tokens []types.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				tokens = nil
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()

	l := NewLexer(reader, filename)
	for {
		tok := l.Lex()
		tokens = append(tokens, tok)
		if tok.Kind == types.EOF {
			break
		}
	}

	plog.Debugf("%s: %d tokens", filename, len(tokens))
	return tokens, nil
}

func Tokenize(source string, filename string) ([]types.Token, error) {
	return TokenizeReader(strings.NewReader(source), filename)
}
