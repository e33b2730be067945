// Package parser builds the AST from a token stream using recursive descent
// for statements and precedence climbing for expressions.
package parser

import (
	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
	"basic/interpreter-go/pkg/lexer"
)

// Parser consumes a token slice produced by the lexer. It is single use.
type Parser struct {
	tokens []lexer.Token
	pos    int
	last   lexer.Token
}

// NewParser wraps tokens, appending an EOF token if the slice lacks one.
func NewParser(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.KindEOF {
		var end ast.Position
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].End
		} else {
			end = ast.Position{Line: 1, Column: 1}
		}
		tokens = append(tokens, lexer.Token{Kind: lexer.KindEOF, Text: "EOF", Start: end, End: end})
	}
	return &Parser{tokens: tokens}
}

// Parse converts tokens into a module. Empty input yields a module holding a
// single null literal.
func Parse(tokens []lexer.Token) (*ast.Module, error) {
	return NewParser(tokens).ParseModule()
}

// ParseSource tokenizes and parses src.
func ParseSource(src string) (*ast.Module, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseModule parses statements until EOF.
func (p *Parser) ParseModule() (*ast.Module, error) {
	start := p.cur()
	if start.Kind == lexer.KindEOF {
		null := ast.NewNullLiteral()
		ast.SetSpan(null, start.Span())
		module := ast.NewModule([]ast.Statement{null})
		ast.SetSpan(module, start.Span())
		return module, nil
	}
	var body []ast.Statement
	for p.cur().Kind != lexer.KindEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	module := ast.NewModule(body)
	p.finish(module, start.Start)
	return module, nil
}

func (p *Parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

// peek returns the token n positions ahead of the current one, clamped to EOF.
func (p *Parser) peek(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) next() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != lexer.KindEOF {
		p.pos++
	}
	p.last = tok
	return tok
}

func (p *Parser) atOp(op string) bool {
	return p.cur().Is(op)
}

func (p *Parser) atKeyword(word string) bool {
	return p.cur().IsKeyword(word)
}

func (p *Parser) expectOp(op string) (lexer.Token, error) {
	if !p.atOp(op) {
		return lexer.Token{}, p.unexpected()
	}
	return p.next(), nil
}

func (p *Parser) expectKeyword(word string) (lexer.Token, error) {
	if !p.atKeyword(word) {
		return lexer.Token{}, p.unexpected()
	}
	return p.next(), nil
}

func (p *Parser) expectIdentifier() (*ast.Identifier, error) {
	tok := p.cur()
	if tok.Kind != lexer.KindIdentifier {
		return nil, p.unexpected()
	}
	p.next()
	id := ast.NewIdentifier(tok.Text)
	ast.SetSpan(id, tok.Span())
	return id, nil
}

// unexpected reports the current token. Running out of input is flagged as
// incomplete so interactive readers can ask for more lines.
func (p *Parser) unexpected() error {
	tok := p.cur()
	if tok.Kind == lexer.KindEOF {
		err := diag.Syntax(tok.Span(), "Unexpected end of input")
		err.Incomplete = true
		return err
	}
	return diag.Syntax(tok.Span(), "Unexpected token '%s'", tok.Text)
}
