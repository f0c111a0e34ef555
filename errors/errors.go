package errors

import (
	"fmt"

	"github.com/pontaoski/peri/types"
)

// LexError reports a character that starts no token.
type LexError struct {
	Char     rune
	Reason   string
	Location types.Position
}

func (e LexError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unexpected character"
	}
	return fmt.Sprintf("%s %q at byte %d. %s", reason, e.Char, e.Location.Offset, e.Location)
}

// ParseError reports a token the grammar did not allow at this point. Got is
// an EOF token when the input ended early.
type ParseError struct {
	Expected []types.TokenKind
	Got      types.Token
	Rule     string
	Reason   string
}

func (e ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s. %s", e.Rule, e.Reason, e.Got.Location)
	}
	if len(e.Expected) == 1 {
		return fmt.Sprintf("%s: got %s, expected a %s. %s", e.Rule, e.Got, e.Expected[0], e.Got.Location)
	}
	return fmt.Sprintf("%s: got %s, expected one of %s. %s", e.Rule, e.Got, e.Expected, e.Got.Location)
}

type RuntimeErrorKind int

const (
	DivisionByZero RuntimeErrorKind = iota
	TypeMismatch
	UndefinedVariable
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case DivisionByZero:
		return "division by zero"
	case TypeMismatch:
		return "type mismatch"
	case UndefinedVariable:
		return "undefined variable"
	}
	return fmt.Sprintf("RuntimeErrorKind(%d)", int(k))
}

type RuntimeError struct {
	Kind     RuntimeErrorKind
	Detail   string
	Location types.Span
}

func (e RuntimeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s. %s", e.Kind, e.Location)
	}
	return fmt.Sprintf("%s: %s. %s", e.Kind, e.Detail, e.Location)
}
