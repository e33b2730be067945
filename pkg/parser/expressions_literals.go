package parser

import (
	"errors"
	"strconv"
	"strings"

	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
	"basic/interpreter-go/pkg/lexer"
)

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.KindDec, lexer.KindHex, lexer.KindOct, lexer.KindBin:
		p.next()
		return p.integerLiteral(tok)
	case lexer.KindFloat:
		p.next()
		value, err := strconv.ParseFloat(strings.ReplaceAll(tok.Text, "_", ""), 64)
		if err != nil {
			return nil, diag.Syntax(tok.Span(), "Invalid number '%s'", tok.Text)
		}
		return p.annotateExpression(ast.NewFloatLiteral(value, tok.Text), tok.Start), nil
	case lexer.KindString:
		p.next()
		return p.annotateExpression(ast.NewStringLiteral(tok.Text), tok.Start), nil
	case lexer.KindLSpan:
		return p.parseTextSpan()
	case lexer.KindIdentifier:
		p.next()
		return p.annotateExpression(ast.NewIdentifier(tok.Text), tok.Start), nil
	case lexer.KindKeyword:
		switch tok.Text {
		case "true", "false":
			p.next()
			return p.annotateExpression(ast.NewBooleanLiteral(tok.Text == "true"), tok.Start), nil
		case "null":
			p.next()
			return p.annotateExpression(ast.NewNullLiteral(), tok.Start), nil
		case "map":
			return p.parseMapLiteral()
		}
	case lexer.KindOperator:
		switch tok.Text {
		case "(":
			p.next()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectOp(")"); err != nil {
				return nil, err
			}
			return expr, nil
		case "[":
			items, err := p.parseArguments("[", "]")
			if err != nil {
				return nil, err
			}
			return p.annotateExpression(ast.NewListLiteral(items), tok.Start), nil
		}
	}
	return nil, p.unexpected()
}

var radixOf = map[lexer.Kind]int{
	lexer.KindDec: 10,
	lexer.KindHex: 16,
	lexer.KindOct: 8,
	lexer.KindBin: 2,
}

// integerLiteral converts a numeric token. Digit separators are dropped here.
// Non-decimal literals may use all 64 bits and wrap into the signed range.
func (p *Parser) integerLiteral(tok lexer.Token) (ast.Expression, error) {
	base := radixOf[tok.Kind]
	digits := strings.ReplaceAll(tok.Text, "_", "")
	var value int64
	if base == 10 {
		v, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return nil, numberError(tok, err)
		}
		value = v
	} else {
		v, err := strconv.ParseUint(digits, base, 64)
		if err != nil {
			return nil, numberError(tok, err)
		}
		value = int64(v)
	}
	return p.annotateExpression(ast.NewIntegerLiteral(value, base, tok.Text), tok.Start), nil
}

func numberError(tok lexer.Token, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return diag.Syntax(tok.Span(), "Number '%s' is out of range", tok.Text)
	}
	return diag.Syntax(tok.Span(), "Invalid number '%s'", tok.Text)
}

// parseTextSpan parses the LSPAN ... RSPAN run produced for `$"..."`.
func (p *Parser) parseTextSpan() (ast.Expression, error) {
	open := p.next()
	var parts []ast.Expression
	for {
		tok := p.cur()
		switch {
		case tok.Kind == lexer.KindRSpan:
			p.next()
			return p.annotateExpression(ast.NewTextSpan(parts), open.Start), nil
		case tok.Kind == lexer.KindString:
			p.next()
			parts = append(parts, p.annotateExpression(ast.NewStringLiteral(tok.Text), tok.Start))
		case tok.Is("{"):
			p.next()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectOp("}"); err != nil {
				return nil, err
			}
			parts = append(parts, expr)
		default:
			return nil, p.unexpected()
		}
	}
}

// parseMapLiteral parses `map { key: value, ... }`. A trailing comma is
// allowed.
func (p *Parser) parseMapLiteral() (ast.Expression, error) {
	start, err := p.expectKeyword("map")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp("{"); err != nil {
		return nil, err
	}
	var entries []*ast.MapEntry
	for !p.atOp("}") {
		key, err := p.parseExpressionNoComma()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOp(":"); err != nil {
			return nil, err
		}
		value, err := p.parseExpressionNoComma()
		if err != nil {
			return nil, err
		}
		entry := ast.NewMapEntry(key, value)
		p.finish(entry, startOf(key))
		entries = append(entries, entry)
		if !p.atOp("}") {
			if _, err := p.expectOp(","); err != nil {
				return nil, err
			}
		}
	}
	p.next()
	return p.annotateExpression(ast.NewMapLiteral(entries), start.Start), nil
}
