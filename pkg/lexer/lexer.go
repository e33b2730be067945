// Package lexer turns source text into tokens.
package lexer

import (
	"strings"
	"unicode/utf8"

	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
)

const eof = -1

// Lexer scans one source text. Whitespace and comments are consumed
// internally and never reach the token stream.
type Lexer struct {
	src string
	pos ast.Position
}

// New returns a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, pos: ast.Position{Offset: 0, Line: 1, Column: 1}}
}

// Tokenize scans src completely. The result always ends with an EOF token.
func Tokenize(src string) ([]Token, error) {
	return New(src).Tokenize()
}

// Tokenize scans the remaining input.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		l.skipTrivia()
		if l.peek() == eof {
			tokens = append(tokens, Token{Kind: KindEOF, Text: "EOF", Start: l.pos, End: l.pos})
			return tokens, nil
		}
		var err error
		tokens, err = l.scan(tokens)
		if err != nil {
			return nil, err
		}
	}
}

// scan appends the next token (or, for a text span, the whole run of span
// tokens) to out.
func (l *Lexer) scan(out []Token) ([]Token, error) {
	c := l.peek()
	switch {
	case c == '$':
		return l.textSpan(out)
	case isDigit(c) || (c == '.' && isDigit(l.peekAt(1))):
		tok, err := l.number()
		if err != nil {
			return nil, err
		}
		return append(out, tok), nil
	case isIdentStart(c):
		return append(out, l.identifier()), nil
	case c == '"' || c == '\'':
		tok, err := l.str()
		if err != nil {
			return nil, err
		}
		return append(out, tok), nil
	}
	tok, err := l.operator()
	if err != nil {
		return nil, err
	}
	return append(out, tok), nil
}

func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) rune {
	offset := l.pos.Offset
	for i := 0; ; i++ {
		if offset >= len(l.src) {
			return eof
		}
		r, size := utf8.DecodeRuneInString(l.src[offset:])
		if i == n {
			return r
		}
		offset += size
	}
}

func (l *Lexer) advance() rune {
	if l.pos.Offset >= len(l.src) {
		return eof
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos.Offset:])
	l.pos.Offset += size
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return r
}

func (l *Lexer) spanFrom(start ast.Position) ast.Span {
	return ast.Span{Start: start, End: l.pos}
}

func (l *Lexer) skipTrivia() {
	for {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.peekAt(1) == '/':
			for c := l.peek(); c != '\n' && c != eof; c = l.peek() {
				l.advance()
			}
		case c == '/' && l.peekAt(1) == '*':
			l.advance()
			l.advance()
			// An unterminated block comment runs to the end of input.
			for {
				c := l.advance()
				if c == eof {
					break
				}
				if c == '*' && l.peek() == '/' {
					l.advance()
					break
				}
			}
		default:
			return
		}
	}
}

func (l *Lexer) identifier() Token {
	start := l.pos
	for isIdentPart(l.peek()) {
		l.advance()
	}
	text := l.src[start.Offset:l.pos.Offset]
	kind := KindIdentifier
	if IsKeyword(text) {
		kind = KindKeyword
	}
	return Token{Kind: kind, Text: text, Start: start, End: l.pos}
}

// number scans a numeric literal. A leading `0x`/`0h`, `0d`, `0o`/`0q` or
// `0b`/`0y` selects the radix; so does a trailing `h`, `d`, `o`/`q` or `b`/`y`
// after a decimal digit run. A single `.` followed by a digit makes a float.
func (l *Lexer) number() (Token, error) {
	start := l.pos
	kind := KindDec
	var digits strings.Builder

	if l.peek() == '.' {
		digits.WriteRune(l.advance())
		for isDigit(l.peek()) {
			digits.WriteRune(l.advance())
		}
		return Token{Kind: KindFloat, Text: digits.String(), Start: start, End: l.pos}, nil
	}

	if l.peek() == '0' {
		digits.WriteRune(l.advance())
		switch l.peek() {
		case 'x', 'h':
			l.advance()
			kind = KindHex
		case 'd':
			l.advance()
		case 'o', 'q':
			l.advance()
			kind = KindOct
		case 'b', 'y':
			l.advance()
			kind = KindBin
		}
	}

	for {
		c := l.peek()
		if c == '.' {
			if !isDigit(l.peekAt(1)) || kind == KindFloat {
				break
			}
			if kind != KindDec {
				l.advance()
				return Token{}, diag.Syntax(l.spanFrom(start), "Unexpected '.' in %s literal", strings.ToLower(kind.String()))
			}
			kind = KindFloat
			digits.WriteRune(l.advance())
			continue
		}
		if !isHexDigit(c) && c != '_' {
			break
		}
		digits.WriteRune(l.advance())
	}

	text := digits.String()
	if kind == KindDec && len(text) > 1 {
		switch text[len(text)-1] {
		case 'd', 'D':
			text = text[:len(text)-1]
		case 'b', 'B':
			kind = KindBin
			text = text[:len(text)-1]
		}
	}
	if kind == KindDec {
		switch l.peek() {
		case 'h':
			l.advance()
			kind = KindHex
		case 'o', 'q':
			l.advance()
			kind = KindOct
		case 'y':
			l.advance()
			kind = KindBin
		}
	}
	return Token{Kind: kind, Text: text, Start: start, End: l.pos}, nil
}

func unescape(c rune) rune {
	switch c {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return c
	}
}

func (l *Lexer) str() (Token, error) {
	start := l.pos
	quote := l.advance()
	var b strings.Builder
	for {
		c := l.advance()
		switch c {
		case eof:
			err := diag.Syntax(l.spanFrom(start), "Invalid or unexpected token: unterminated string")
			err.Incomplete = true
			return Token{}, err
		case quote:
			return Token{Kind: KindString, Text: b.String(), Start: start, End: l.pos}, nil
		case '\\':
			next := l.advance()
			if next == eof {
				continue
			}
			b.WriteRune(unescape(next))
		default:
			b.WriteRune(c)
		}
	}
}

// textSpan scans `$"lit{expr}lit"`. It emits LSPAN, then STRING tokens for
// literal runs and `{` ... `}` wrapped token runs for each interpolation,
// then RSPAN.
func (l *Lexer) textSpan(out []Token) ([]Token, error) {
	start := l.pos
	l.advance()
	quote := l.peek()
	if quote != '"' && quote != '\'' {
		return nil, diag.Syntax(l.spanFrom(start), "Invalid or unexpected token")
	}
	l.advance()
	out = append(out, Token{Kind: KindLSpan, Text: "$" + string(quote), Start: start, End: l.pos})

	var lit strings.Builder
	litStart := l.pos
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, Token{Kind: KindString, Text: lit.String(), Start: litStart, End: l.pos})
			lit.Reset()
		}
	}
	unterminated := func() error {
		err := diag.Syntax(l.spanFrom(start), "Unterminated text span")
		err.Incomplete = true
		return err
	}

	for {
		c := l.peek()
		switch c {
		case eof:
			return nil, unterminated()
		case quote:
			flush()
			closeStart := l.pos
			l.advance()
			return append(out, Token{Kind: KindRSpan, Text: string(quote), Start: closeStart, End: l.pos}), nil
		case '\\':
			l.advance()
			if next := l.advance(); next != eof {
				lit.WriteRune(unescape(next))
			}
		case '{':
			flush()
			braceStart := l.pos
			l.advance()
			out = append(out, Token{Kind: KindOperator, Text: "{", Start: braceStart, End: l.pos})
			depth := 0
			for {
				l.skipTrivia()
				c := l.peek()
				if c == eof {
					return nil, unterminated()
				}
				if c == '}' && depth == 0 {
					break
				}
				var err error
				before := len(out)
				out, err = l.scan(out)
				if err != nil {
					return nil, err
				}
				if last := out[len(out)-1]; len(out) > before && last.Kind == KindOperator {
					switch last.Text {
					case "{":
						depth++
					case "}":
						depth--
					}
				}
			}
			braceStart = l.pos
			l.advance()
			out = append(out, Token{Kind: KindOperator, Text: "}", Start: braceStart, End: l.pos})
			litStart = l.pos
		default:
			lit.WriteRune(l.advance())
		}
	}
}

func (l *Lexer) operator() (Token, error) {
	start := l.pos
	rest := l.src[l.pos.Offset:]
	for _, op := range operators {
		if !strings.HasPrefix(rest, op) {
			continue
		}
		// `a?.5:1` is a conditional, not an optional chain.
		if op == "?." && isDigit(l.peekAt(2)) {
			continue
		}
		for range op {
			l.advance()
		}
		return Token{Kind: KindOperator, Text: op, Start: start, End: l.pos}, nil
	}
	l.advance()
	return Token{}, diag.Syntax(l.spanFrom(start), "Invalid or unexpected token")
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}
