package interpreter

import (
	"fmt"
	"io"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/peri/ast"
	"github.com/pontaoski/peri/errors"
	"github.com/pontaoski/peri/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/peri", "interpreter")

// Interpreter evaluates a program against an Environment, writing the output
// of print statements to out. Reading an unbound variable is an error.
type Interpreter struct {
	out io.Writer
	env *Environment
}

var (
	_ ast.ExpressionVisitor[Value]   = (*Interpreter)(nil)
	_ ast.StatementVisitor[struct{}] = (*Interpreter)(nil)
)

func New(out io.Writer) *Interpreter {
	return &Interpreter{out: out}
}

// Run executes the statements of program in order, stopping at the first
// runtime error. Output already written and bindings already made are kept.
// A nil env runs the program in a fresh, discarded environment.
func (i *Interpreter) Run(program ast.Program, env *Environment) error {
	if env == nil {
		env = NewEnvironment()
	}
	i.env = env
	defer func() { i.env = nil }()

	if err := i.execBlock(program.Statements); err != nil {
		return tracerr.Wrap(err)
	}

	plog.Debugf("program finished with %d bindings", env.Len())
	return nil
}

// Run executes program in a fresh environment and returns it.
func Run(program ast.Program, out io.Writer) (*Environment, error) {
	env := NewEnvironment()
	return env, New(out).Run(program, env)
}

func (i *Interpreter) execBlock(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if _, err := ast.VisitStatement[struct{}](stmt, i); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) eval(e ast.Expression) (Value, error) {
	return ast.VisitExpression[Value](e, i)
}

func (i *Interpreter) truthy(e ast.Expression) (bool, error) {
	v, err := i.eval(e)
	if err != nil {
		return false, err
	}

	n, ok := v.(Integer)
	if !ok {
		return false, errors.RuntimeError{
			Kind:     errors.TypeMismatch,
			Detail:   fmt.Sprintf("condition must be an integer, got %s", typeName(v)),
			Location: ast.Span(e),
		}
	}
	return n != 0, nil
}

func (i *Interpreter) VisitNumberLiteral(n ast.NumberLiteral) (Value, error) {
	return Integer(n.Value), nil
}

func (i *Interpreter) VisitStringLiteral(n ast.StringLiteral) (Value, error) {
	return String(n.Value), nil
}

func (i *Interpreter) VisitVariableReference(n ast.VariableReference) (Value, error) {
	v, ok := i.env.Get(n.Name)
	if !ok {
		return nil, errors.RuntimeError{
			Kind:     errors.UndefinedVariable,
			Detail:   n.Name,
			Location: n.Pos,
		}
	}
	return v, nil
}

func (i *Interpreter) VisitBinaryOp(n ast.BinaryOp) (Value, error) {
	left, err := i.eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(n.Right)
	if err != nil {
		return nil, err
	}

	l, lok := left.(Integer)
	r, rok := right.(Integer)
	if !lok || !rok {
		return nil, errors.RuntimeError{
			Kind:     errors.TypeMismatch,
			Detail:   fmt.Sprintf("cannot apply %s to %s and %s", n.Operator, typeName(left), typeName(right)),
			Location: n.Pos,
		}
	}

	return apply(n.Operator, l, r, n.Pos)
}

func apply(op ast.Operator, l, r Integer, pos types.Span) (Value, error) {
	switch op {
	case ast.Add:
		return l + r, nil
	case ast.Sub:
		return l - r, nil
	case ast.Mul:
		return l * r, nil
	case ast.Div:
		if r == 0 {
			return nil, errors.RuntimeError{
				Kind:     errors.DivisionByZero,
				Location: pos,
			}
		}
		return l / r, nil
	}
	return nil, fmt.Errorf("unknown operator %s", op)
}

func (i *Interpreter) VisitAssignment(s ast.Assignment) (struct{}, error) {
	v, err := i.eval(s.Value)
	if err != nil {
		return struct{}{}, err
	}

	plog.Tracef("%s: %s = %s", s.Pos.From, s.Name, v)
	i.env.Set(s.Name, v)
	return struct{}{}, nil
}

func (i *Interpreter) VisitPrintStatement(s ast.PrintStatement) (struct{}, error) {
	v, err := i.eval(s.Value)
	if err != nil {
		return struct{}{}, err
	}

	plog.Tracef("%s: print %s", s.Pos.From, v)
	_, err = fmt.Fprintln(i.out, v.String())
	return struct{}{}, err
}

func (i *Interpreter) VisitIfStatement(s ast.IfStatement) (struct{}, error) {
	cond, err := i.truthy(s.Condition)
	if err != nil {
		return struct{}{}, err
	}

	switch {
	case cond:
		return struct{}{}, i.execBlock(s.Then)
	case s.Else != nil:
		return struct{}{}, i.execBlock(s.Else)
	}
	return struct{}{}, nil
}

func (i *Interpreter) VisitWhileStatement(s ast.WhileStatement) (struct{}, error) {
	for {
		cond, err := i.truthy(s.Condition)
		if err != nil || !cond {
			return struct{}{}, err
		}

		if err := i.execBlock(s.Body); err != nil {
			return struct{}{}, err
		}
	}
}
