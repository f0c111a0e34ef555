package ast

import "github.com/pontaoski/peri/types"

type spanOf struct{}

func (spanOf) VisitNumberLiteral(n NumberLiteral) (types.Span, error)         { return n.Pos, nil }
func (spanOf) VisitStringLiteral(n StringLiteral) (types.Span, error)         { return n.Pos, nil }
func (spanOf) VisitVariableReference(n VariableReference) (types.Span, error) { return n.Pos, nil }
func (spanOf) VisitBinaryOp(n BinaryOp) (types.Span, error)                   { return n.Pos, nil }

// Span returns the source range covered by an expression.
func Span(e Expression) types.Span {
	s, _ := VisitExpression[types.Span](e, spanOf{})
	return s
}
