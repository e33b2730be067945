// Package diag defines the structured errors raised while tokenizing,
// parsing and evaluating programs, and renders them against source text.
package diag

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"basic/interpreter-go/pkg/ast"
)

// Kind classifies a language error.
type Kind int

const (
	KindSyntax Kind = iota
	KindReference
	KindType
	KindArity
	KindControlFlow
	KindRedeclaration
	KindRuntime
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindReference:
		return "ReferenceError"
	case KindType:
		return "TypeError"
	case KindArity:
		return "ArityError"
	case KindControlFlow:
		return "ControlFlowError"
	case KindRedeclaration:
		return "RedeclarationError"
	case KindRuntime:
		return "RuntimeError"
	default:
		return fmt.Sprintf("Error(%d)", int(k))
	}
}

var (
	// ErrSyntax matches malformed tokens and grammar violations.
	ErrSyntax = errors.New("syntax error")
	// ErrReference matches access to or assignment of an undeclared name.
	ErrReference = errors.New("reference error")
	// ErrType matches declaration/assignment/return/parameter mismatches
	// and unsupported operand combinations.
	ErrType = errors.New("type error")
	// ErrArity matches calls with the wrong number of arguments.
	ErrArity = errors.New("arity error")
	// ErrControlFlow matches ret/continue/break outside a function or loop.
	ErrControlFlow = errors.New("control flow error")
	// ErrRedeclaration matches same-scope redeclaration and const reassignment.
	ErrRedeclaration = errors.New("redeclaration error")
	// ErrRuntime matches the remaining evaluation failures.
	ErrRuntime = errors.New("runtime error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindSyntax:
		return ErrSyntax
	case KindReference:
		return ErrReference
	case KindType:
		return ErrType
	case KindArity:
		return ErrArity
	case KindControlFlow:
		return ErrControlFlow
	case KindRedeclaration:
		return ErrRedeclaration
	default:
		return ErrRuntime
	}
}

// Error is a language error with an optional source range.
type Error struct {
	Kind    Kind
	Message string
	Span    ast.Span
	// Source is the program text the span refers to, attached by the entry
	// point so the error can render itself.
	Source string
	// Incomplete marks syntax errors caused by input ending early, which an
	// interactive reader can resolve by reading more lines.
	Incomplete bool
}

func (e *Error) Error() string {
	if e.Span.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (line %d, column %d)", e.Kind, e.Message, e.Span.Start.Line, e.Span.Start.Column)
}

func (e *Error) Unwrap() error { return e.Kind.sentinel() }

// New constructs an error of the given kind.
func New(kind Kind, span ast.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

func Syntax(span ast.Span, format string, args ...any) *Error {
	return New(KindSyntax, span, format, args...)
}

func Reference(span ast.Span, format string, args ...any) *Error {
	return New(KindReference, span, format, args...)
}

func Type(span ast.Span, format string, args ...any) *Error {
	return New(KindType, span, format, args...)
}

func Runtime(span ast.Span, format string, args ...any) *Error {
	return New(KindRuntime, span, format, args...)
}

// As extracts a *Error from err.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// WithSpan fills in the span of a span-less language error. Other errors are
// returned unchanged.
func WithSpan(err error, span ast.Span) error {
	if de, ok := As(err); ok && de.Span.IsZero() {
		de.Span = span
	}
	return err
}

// WithSource attaches program text to a language error so Render can quote it.
func WithSource(err error, source string) error {
	if de, ok := As(err); ok && de.Source == "" {
		de.Source = source
	}
	return err
}

// IsIncomplete reports whether err is a syntax error caused by premature end
// of input.
func IsIncomplete(err error) bool {
	de, ok := As(err)
	return ok && de.Incomplete
}

// Render formats the error as a one-line message followed by the offending
// source line with the span underlined:
//
//	TypeError: cannot apply '-' to string and int
//	   1 | "a" - 1
//	     | ^^^^^^^
func (e *Error) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	if e.Source == "" || e.Span.IsZero() {
		return b.String()
	}
	lines := strings.Split(e.Source, "\n")
	line := e.Span.Start.Line
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	text := strings.TrimRight(lines[line-1], "\r")
	col := e.Span.Start.Column
	if col < 1 {
		col = 1
	}
	width := 1
	lineLen := utf8.RuneCountInString(text)
	if e.Span.End.Line == e.Span.Start.Line {
		width = e.Span.End.Column - col
	} else if e.Span.End.Line > e.Span.Start.Line {
		width = lineLen - col + 1
	}
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(&b, "\n%4d | %s\n", line, text)
	fmt.Fprintf(&b, "     | %s%s", strings.Repeat(" ", col-1), strings.Repeat("^", width))
	return b.String()
}

// Render formats any error for display, using the source excerpt form for
// language errors.
func Render(err error) string {
	if de, ok := As(err); ok {
		return de.Render()
	}
	return err.Error()
}
