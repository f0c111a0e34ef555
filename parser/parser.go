package parser

import (
	"strconv"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/peri/ast"
	"github.com/pontaoski/peri/errors"
	"github.com/pontaoski/peri/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/peri", "parser")

// Parser walks a token sequence with one token of lookahead. Grammar
// violations panic with errors.ParseError and are recovered by Parse.
type Parser struct {
	tokens []types.Token
	pos    int
}

func NewParser(tokens []types.Token) Parser {
	return Parser{tokens: tokens}
}

func (p *Parser) Parse() (program ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				program = ast.Program{}
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()

	p.pos = 0
	for !p.PeekIs(types.EOF) {
		program.Statements = append(program.Statements, p.parseStatement())
	}

	plog.Debugf("parsed %d top level statements", len(program.Statements))
	return program, nil
}

// Parse builds the program for a token sequence produced by the lexer.
func Parse(tokens []types.Token) (ast.Program, error) {
	p := NewParser(tokens)
	return p.Parse()
}

// Peek returns the next token without consuming it. A missing trailing EOF
// token is synthesised after the last token.
func (p *Parser) Peek() types.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}

	eof := types.Token{Kind: types.EOF}
	if len(p.tokens) > 0 {
		last := p.tokens[len(p.tokens)-1].Location.To
		eof.Location = types.Span{From: last, To: last}
	}
	return eof
}

func (p *Parser) PeekIs(k ...types.TokenKind) bool {
	token := p.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

func (p *Parser) Lex() types.Token {
	tok := p.Peek()
	if tok.Kind != types.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) LexExpecting(rule string, k ...types.TokenKind) types.Token {
	token := p.Lex()
	for _, kind := range k {
		if token.Kind == kind {
			return token
		}
	}

	panic(errors.ParseError{
		Expected: k,
		Got:      token,
		Rule:     rule,
	})
}

func (p *Parser) parseStatement() ast.Statement {
	tok := p.LexExpecting("statement", types.PRINT, types.IDENT, types.IF, types.WHILE)

	switch tok.Kind {
	case types.PRINT:
		value := p.parseExpression()
		end := p.LexExpecting("print statement", types.SEMICOLON)
		return ast.PrintStatement{
			Value: value,
			Pos:   types.Join(tok.Location, end.Location),
		}
	case types.IDENT:
		p.LexExpecting("assignment", types.EQUALS)
		value := p.parseExpression()
		end := p.LexExpecting("assignment", types.SEMICOLON)
		return ast.Assignment{
			Name:  tok.Lexeme,
			Value: value,
			Pos:   types.Join(tok.Location, end.Location),
		}
	case types.IF:
		cond := p.parseCondition("if statement")
		then, end := p.parseBlock("if statement")

		var elseBranch []ast.Statement
		if p.PeekIs(types.ELSE) {
			p.Lex()
			elseBranch, end = p.parseBlock("else branch")
		}

		return ast.IfStatement{
			Condition: cond,
			Then:      then,
			Else:      elseBranch,
			Pos:       types.Join(tok.Location, end),
		}
	case types.WHILE:
		cond := p.parseCondition("while statement")
		body, end := p.parseBlock("while statement")
		return ast.WhileStatement{
			Condition: cond,
			Body:      body,
			Pos:       types.Join(tok.Location, end),
		}
	}

	panic("unhandled")
}

func (p *Parser) parseCondition(rule string) ast.Expression {
	p.LexExpecting(rule, types.LPAREN)
	cond := p.parseExpression()
	p.LexExpecting(rule, types.RPAREN)
	return cond
}

// parseBlock reads a brace delimited statement list. The result is non-nil
// even for an empty block, so an empty else stays distinguishable from none.
func (p *Parser) parseBlock(rule string) ([]ast.Statement, types.Span) {
	p.LexExpecting(rule, types.LBRACE)

	statements := []ast.Statement{}
	for !p.PeekIs(types.RBRACE) {
		if p.PeekIs(types.EOF) {
			p.LexExpecting(rule, types.RBRACE)
		}
		statements = append(statements, p.parseStatement())
	}
	end := p.LexExpecting(rule, types.RBRACE)

	return statements, end.Location
}

var operators = map[types.TokenKind]ast.Operator{
	types.PLUS:  ast.Add,
	types.MINUS: ast.Sub,
	types.STAR:  ast.Mul,
	types.SLASH: ast.Div,
}

func (p *Parser) binary(operand func() ast.Expression, kinds ...types.TokenKind) ast.Expression {
	left := operand()

	for p.PeekIs(kinds...) {
		op := p.Lex()
		right := operand()
		left = ast.BinaryOp{
			Left:     left,
			Operator: operators[op.Kind],
			Right:    right,
			Pos:      types.Join(ast.Span(left), ast.Span(right)),
		}
	}

	return left
}

func (p *Parser) parseExpression() ast.Expression {
	return p.binary(p.parseTerm, types.PLUS, types.MINUS)
}

func (p *Parser) parseTerm() ast.Expression {
	return p.binary(p.parseFactor, types.STAR, types.SLASH)
}

func (p *Parser) parseFactor() ast.Expression {
	tok := p.LexExpecting("expression", types.INT, types.IDENT, types.STRING, types.LPAREN)

	switch tok.Kind {
	case types.INT:
		parsed, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			panic(errors.ParseError{
				Got:    tok,
				Rule:   "expression",
				Reason: "integer literal out of range",
			})
		}
		return ast.NumberLiteral{Value: parsed, Pos: tok.Location}
	case types.IDENT:
		return ast.VariableReference{Name: tok.Lexeme, Pos: tok.Location}
	case types.STRING:
		return ast.StringLiteral{
			Value: tok.Lexeme[1 : len(tok.Lexeme)-1],
			Pos:   tok.Location,
		}
	case types.LPAREN:
		expr := p.parseExpression()
		p.LexExpecting("parenthesized expression", types.RPAREN)
		return expr
	}

	panic("unhandled")
}
