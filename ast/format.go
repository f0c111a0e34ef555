package ast

import (
	"strconv"
	"strings"
)

type exprPrinter struct{}

type printer struct {
	b      strings.Builder
	indent int
}

var (
	_ ExpressionVisitor[string]  = exprPrinter{}
	_ StatementVisitor[struct{}] = (*printer)(nil)
)

func (exprPrinter) VisitNumberLiteral(n NumberLiteral) (string, error) {
	return strconv.FormatInt(n.Value, 10), nil
}

func (exprPrinter) VisitStringLiteral(n StringLiteral) (string, error) {
	return `"` + n.Value + `"`, nil
}

func (exprPrinter) VisitVariableReference(n VariableReference) (string, error) {
	return n.Name, nil
}

func (p exprPrinter) VisitBinaryOp(n BinaryOp) (string, error) {
	left, err := p.operand(n.Left, n.Operator, false)
	if err != nil {
		return "", err
	}
	right, err := p.operand(n.Right, n.Operator, true)
	if err != nil {
		return "", err
	}
	return left + " " + n.Operator.String() + " " + right, nil
}

// operand parenthesizes e when printing it bare would regroup it. Operators
// are left associative, so a right operand of equal precedence needs parens.
func (p exprPrinter) operand(e Expression, parent Operator, right bool) (string, error) {
	s, err := VisitExpression[string](e, p)
	if err != nil {
		return "", err
	}

	if bin, ok := e.(BinaryOp); ok {
		prec, outer := bin.Operator.Precedence(), parent.Precedence()
		if prec < outer || (right && prec == outer) {
			return "(" + s + ")", nil
		}
	}

	return s, nil
}

func (p *printer) expr(e Expression) (string, error) {
	return VisitExpression[string](e, exprPrinter{})
}

func (p *printer) line(s string) {
	p.b.WriteString(strings.Repeat("\t", p.indent))
	p.b.WriteString(s)
	p.b.WriteByte('\n')
}

func (p *printer) block(stmts []Statement) error {
	p.indent++
	defer func() { p.indent-- }()

	for _, stmt := range stmts {
		if _, err := VisitStatement[struct{}](stmt, p); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) VisitAssignment(s Assignment) (struct{}, error) {
	value, err := p.expr(s.Value)
	if err != nil {
		return struct{}{}, err
	}
	p.line(s.Name + " = " + value + ";")
	return struct{}{}, nil
}

func (p *printer) VisitPrintStatement(s PrintStatement) (struct{}, error) {
	value, err := p.expr(s.Value)
	if err != nil {
		return struct{}{}, err
	}
	p.line("print " + value + ";")
	return struct{}{}, nil
}

func (p *printer) VisitIfStatement(s IfStatement) (struct{}, error) {
	cond, err := p.expr(s.Condition)
	if err != nil {
		return struct{}{}, err
	}

	p.line("if (" + cond + ") {")
	if err := p.block(s.Then); err != nil {
		return struct{}{}, err
	}
	if s.Else != nil {
		p.line("} else {")
		if err := p.block(s.Else); err != nil {
			return struct{}{}, err
		}
	}
	p.line("}")
	return struct{}{}, nil
}

func (p *printer) VisitWhileStatement(s WhileStatement) (struct{}, error) {
	cond, err := p.expr(s.Condition)
	if err != nil {
		return struct{}{}, err
	}

	p.line("while (" + cond + ") {")
	if err := p.block(s.Body); err != nil {
		return struct{}{}, err
	}
	p.line("}")
	return struct{}{}, nil
}

// Format renders a program as canonical source text, one statement per line
// with tab indentation inside blocks.
func Format(program Program) (string, error) {
	p := &printer{}
	for _, stmt := range program.Statements {
		if _, err := VisitStatement[struct{}](stmt, p); err != nil {
			return "", err
		}
	}
	return p.b.String(), nil
}
