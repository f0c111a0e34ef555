package ast

//go:generate sh -c "cd ../tool && go run . ../ast/ast.adt ../ast/ast.go ast"

import "fmt"

type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
)

func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Precedence is higher for operators that bind tighter.
func (o Operator) Precedence() int {
	switch o {
	case Mul, Div:
		return 2
	}
	return 1
}

// Program is the root of a parsed source file.
type Program struct {
	Statements []Statement
}
