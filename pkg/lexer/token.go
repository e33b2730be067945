package lexer

import (
	"fmt"

	"basic/interpreter-go/pkg/ast"
)

// Kind identifies the lexical class of a token.
type Kind int

const (
	KindEOF Kind = iota
	KindIdentifier
	KindKeyword
	KindDec
	KindHex
	KindOct
	KindBin
	KindFloat
	KindString
	// KindLSpan and KindRSpan bracket an interpolated `$"..."` string.
	KindLSpan
	KindRSpan
	KindOperator
)

func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "EOF"
	case KindIdentifier:
		return "IDENTIFIER"
	case KindKeyword:
		return "KEYWORD"
	case KindDec:
		return "DEC"
	case KindHex:
		return "HEX"
	case KindOct:
		return "OCT"
	case KindBin:
		return "BIN"
	case KindFloat:
		return "FLOAT"
	case KindString:
		return "STRING"
	case KindLSpan:
		return "LSPAN"
	case KindRSpan:
		return "RSPAN"
	case KindOperator:
		return "OPERATOR"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsNumber reports whether the kind is one of the numeric literal kinds.
func (k Kind) IsNumber() bool {
	return k >= KindDec && k <= KindFloat
}

// Token is an immutable classified lexeme. For numeric tokens Text holds the
// digit run with any radix prefix letter or suffix removed; digit separators
// are kept. For strings Text holds the unescaped contents.
type Token struct {
	Kind  Kind
	Text  string
	Start ast.Position
	End   ast.Position
}

func (t Token) Span() ast.Span {
	return ast.Span{Start: t.Start, End: t.End}
}

// Is reports whether the token is the given operator or punctuation.
func (t Token) Is(op string) bool {
	return t.Kind == KindOperator && t.Text == op
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(word string) bool {
	return t.Kind == KindKeyword && t.Text == word
}

func (t Token) String() string {
	return fmt.Sprintf("%s:%s", t.Kind, t.Text)
}

var keywords = map[string]struct{}{
	"true":     {},
	"false":    {},
	"null":     {},
	"const":    {},
	"ret":      {},
	"if":       {},
	"elif":     {},
	"else":     {},
	"while":    {},
	"for":      {},
	"continue": {},
	"break":    {},
	"jmp":      {},
	"map":      {},
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// operators lists every operator and punctuation lexeme, longest first so
// that matching is greedy.
var operators = []string{
	"**=", "<<=", ">>=", "&&=", "||=", "??=",
	"**", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||", "??", "?.",
	"++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "=>",
	"+", "-", "*", "/", "%", "=", "<", ">", "!", "~", "&", "|", "^",
	"?", ":", ";", ",", ".", "(", ")", "[", "]", "{", "}",
}
