package parser

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/peri/ast"
	"github.com/pontaoski/peri/errors"
	"github.com/pontaoski/peri/lexer"
	"github.com/pontaoski/peri/types"
)

func parseSource(src string) (ast.Program, error) {
	tokens, err := lexer.Tokenize(src, "test")
	if err != nil {
		return ast.Program{}, err
	}
	return Parse(tokens)
}

func mustParse(t *testing.T, src string) ast.Program {
	t.Helper()
	program, err := parseSource(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return program
}

func formatted(t *testing.T, src string) string {
	t.Helper()
	out, err := ast.Format(mustParse(t, src))
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	return out
}

func parseError(t *testing.T, src string) errors.ParseError {
	t.Helper()
	_, err := parseSource(src)
	if err == nil {
		t.Fatalf("expected %q to fail", src)
	}
	var perr errors.ParseError
	if !stderrors.As(tracerr.Unwrap(err), &perr) {
		t.Fatalf("expected ParseError for %q, got %v", src, err)
	}
	return perr
}

func TestAssignmentAndPrint(t *testing.T) {
	program := mustParse(t, "x = 5; print x;")
	if len(program.Statements) != 2 {
		t.Fatalf("got %s", repr.String(program))
	}

	assign, ok := program.Statements[0].(ast.Assignment)
	if !ok || assign.Name != "x" {
		t.Fatalf("unexpected first statement %s", repr.String(program.Statements[0]))
	}
	if lit, ok := assign.Value.(ast.NumberLiteral); !ok || lit.Value != 5 {
		t.Fatalf("unexpected assigned value %s", repr.String(assign.Value))
	}

	print, ok := program.Statements[1].(ast.PrintStatement)
	if !ok {
		t.Fatalf("unexpected second statement %s", repr.String(program.Statements[1]))
	}
	if ref, ok := print.Value.(ast.VariableReference); !ok || ref.Name != "x" {
		t.Fatalf("unexpected printed value %s", repr.String(print.Value))
	}
	if print.Pos.From.Offset != 7 || print.Pos.To.Offset != 15 {
		t.Fatalf("print spans %d-%d", print.Pos.From.Offset, print.Pos.To.Offset)
	}
}

func TestPrecedence(t *testing.T) {
	program := mustParse(t, "print 2 + 3 * 4;")
	print := program.Statements[0].(ast.PrintStatement)

	sum, ok := print.Value.(ast.BinaryOp)
	if !ok || sum.Operator != ast.Add {
		t.Fatalf("expected + at the root, got %s", repr.String(print.Value))
	}
	product, ok := sum.Right.(ast.BinaryOp)
	if !ok || product.Operator != ast.Mul {
		t.Fatalf("expected * on the right, got %s", repr.String(sum.Right))
	}
}

func TestGrouping(t *testing.T) {
	cases := map[string]string{
		"print 2 + 3 * 4;":         "print 2 + 3 * 4;\n",
		"print (2 + 3) * 4;":       "print (2 + 3) * 4;\n",
		"print 1 - 2 - 3;":         "print 1 - 2 - 3;\n",
		"print 1 - (2 - 3);":       "print 1 - (2 - 3);\n",
		"print 8 / 4 / 2;":         "print 8 / 4 / 2;\n",
		"print 8 / (4 * 2);":       "print 8 / (4 * 2);\n",
		"print ((a));":             "print a;\n",
		"print a * b + c / d;":     "print a * b + c / d;\n",
		`print "a" + "b";`:         "print \"a\" + \"b\";\n",
		"x=1+2*(3-4)/5;":           "x = 1 + 2 * (3 - 4) / 5;\n",
		"print (1 + 2) - (3 + 4);": "print 1 + 2 - (3 + 4);\n",
	}

	for src, want := range cases {
		if got := formatted(t, src); got != want {
			t.Fatalf("formatting %q: got %q, want %q", src, got, want)
		}
	}
}

func TestLeftAssociativity(t *testing.T) {
	program := mustParse(t, "print 1 - 2 - 3;")
	outer := program.Statements[0].(ast.PrintStatement).Value.(ast.BinaryOp)
	if _, ok := outer.Left.(ast.BinaryOp); !ok {
		t.Fatalf("expected nested operation on the left, got %s", repr.String(outer))
	}
	if lit, ok := outer.Right.(ast.NumberLiteral); !ok || lit.Value != 3 {
		t.Fatalf("expected 3 on the right, got %s", repr.String(outer.Right))
	}
}

func TestStringLiteral(t *testing.T) {
	program := mustParse(t, `s = "hello world";`)
	lit, ok := program.Statements[0].(ast.Assignment).Value.(ast.StringLiteral)
	if !ok || lit.Value != "hello world" {
		t.Fatalf("unexpected literal %s", repr.String(program.Statements[0]))
	}
}

func TestControlFlow(t *testing.T) {
	src := `
x = 3;
while (x) {
	if (x - 2) { print x; } else { print "two"; }
	x = x - 1;
}
if (x) { } else { }
if (1) { print 1; }
`
	want := `x = 3;
while (x) {
	if (x - 2) {
		print x;
	} else {
		print "two";
	}
	x = x - 1;
}
if (x) {
} else {
}
if (1) {
	print 1;
}
`
	if got := formatted(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}

	program := mustParse(t, src)
	emptyElse := program.Statements[2].(ast.IfStatement)
	if emptyElse.Then == nil || emptyElse.Else == nil || len(emptyElse.Else) != 0 {
		t.Fatalf("expected empty but present branches: %s", repr.String(emptyElse))
	}
	noElse := program.Statements[3].(ast.IfStatement)
	if noElse.Else != nil {
		t.Fatalf("expected no else branch: %s", repr.String(noElse))
	}
}

func TestFormatRoundTrip(t *testing.T) {
	src := `a=1;b=(a+2)*3;while(b){if(b-1){print b;}else{print "last";}b=b-1;}`
	once := formatted(t, src)
	twice := formatted(t, once)
	if once != twice {
		t.Fatalf("formatting is not stable:\n%s\n%s", once, twice)
	}
}

func TestEmptyProgram(t *testing.T) {
	program := mustParse(t, "  \n")
	if len(program.Statements) != 0 {
		t.Fatalf("expected no statements, got %s", repr.String(program))
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src      string
		got      types.TokenKind
		expected []types.TokenKind
	}{
		{"print 1", types.EOF, []types.TokenKind{types.SEMICOLON}},
		{"x 1;", types.INT, []types.TokenKind{types.EQUALS}},
		{"1;", types.INT, []types.TokenKind{types.PRINT, types.IDENT, types.IF, types.WHILE}},
		{"x;", types.SEMICOLON, []types.TokenKind{types.EQUALS}},
		{"print ;", types.SEMICOLON, []types.TokenKind{types.INT, types.IDENT, types.STRING, types.LPAREN}},
		{"print (1 + 2;", types.SEMICOLON, []types.TokenKind{types.RPAREN}},
		{"if x { }", types.IDENT, []types.TokenKind{types.LPAREN}},
		{"if (x) print x;", types.PRINT, []types.TokenKind{types.LBRACE}},
		{"while (x) { print x;", types.EOF, []types.TokenKind{types.RBRACE}},
		{"if (x) { } else print 1;", types.PRINT, []types.TokenKind{types.LBRACE}},
		{"else { }", types.ELSE, []types.TokenKind{types.PRINT, types.IDENT, types.IF, types.WHILE}},
		{"print 1 + * 2;", types.STAR, []types.TokenKind{types.INT, types.IDENT, types.STRING, types.LPAREN}},
	}

	for _, c := range cases {
		perr := parseError(t, c.src)
		if perr.Got.Kind != c.got {
			t.Fatalf("%q: got token %s, want %s", c.src, perr.Got, c.got)
		}
		if repr.String(perr.Expected) != repr.String(c.expected) {
			t.Fatalf("%q: expected %v, want %v", c.src, perr.Expected, c.expected)
		}
	}
}

func TestParseErrorMessage(t *testing.T) {
	perr := parseError(t, "x = 1;\nprint x")
	msg := perr.Error()
	if !strings.Contains(msg, "end of input") || !strings.Contains(msg, "SEMICOLON") || !strings.Contains(msg, "test:2:8") {
		t.Fatalf("unhelpful message %q", msg)
	}
}

func TestIntegerOutOfRange(t *testing.T) {
	perr := parseError(t, "print 9223372036854775808;")
	if perr.Got.Kind != types.INT || !strings.Contains(perr.Error(), "out of range") {
		t.Fatalf("unexpected error %v", perr)
	}
}

func TestTokensWithoutEOF(t *testing.T) {
	tokens, err := lexer.Tokenize("print 1;", "test")
	if err != nil {
		t.Fatal(err)
	}
	program, err := Parse(tokens[:len(tokens)-1])
	if err != nil || len(program.Statements) != 1 {
		t.Fatalf("parse without EOF: %v %s", err, repr.String(program))
	}
}

func TestParseIsRepeatable(t *testing.T) {
	tokens, err := lexer.Tokenize("x = 1; print x;", "test")
	if err != nil {
		t.Fatal(err)
	}

	p := NewParser(tokens)
	first, err := p.Parse()
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := p.Parse()
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if len(first.Statements) != 2 || len(second.Statements) != 2 {
		t.Fatalf("got %d then %d statements", len(first.Statements), len(second.Statements))
	}
}

func TestFailedParseReturnsNoStatements(t *testing.T) {
	tokens, err := lexer.Tokenize("x = 1; print x", "test")
	if err != nil {
		t.Fatal(err)
	}
	program, err := Parse(tokens)
	if err == nil || len(program.Statements) != 0 {
		t.Fatalf("expected an error and no statements, got %v %s", err, repr.String(program))
	}
}
