package parser

import (
	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
	"basic/interpreter-go/pkg/lexer"
)

// parseExpression parses a full expression, including the comma operator.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseBinary(precLowest)
}

// parseExpressionNoComma parses an expression that stops at a top-level comma.
func (p *Parser) parseExpressionNoComma() (ast.Expression, error) {
	return p.parseBinary(precComma)
}

// parseBinary is the precedence-climbing loop. It consumes operators that
// bind tighter than minPrec. `**`, the assignment family and the conditional
// are right-associative; every other operator is left-associative.
func (p *Parser) parseBinary(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.cur()
		if tok.Is("?") {
			if precTernary <= minPrec {
				return left, nil
			}
			if left, err = p.parseConditional(left); err != nil {
				return nil, err
			}
			continue
		}

		prec := precedenceOf(tok)
		if prec <= minPrec {
			return left, nil
		}
		p.next()

		switch {
		case prec == precAssign:
			target, ok := assignmentTarget(left)
			if !ok {
				return nil, diag.Syntax(left.Span(), "Invalid left-hand side in assignment")
			}
			value, err := p.parseBinary(precAssign - 1)
			if err != nil {
				return nil, err
			}
			left = p.annotateExpression(ast.NewAssignmentExpression(tok.Text, target, value), startOf(left))
		case tok.Text == "**":
			right, err := p.parseBinary(prec - 1)
			if err != nil {
				return nil, err
			}
			left = p.annotateExpression(ast.NewBinaryExpression(tok.Text, left, right), startOf(left))
		default:
			right, err := p.parseBinary(prec)
			if err != nil {
				return nil, err
			}
			left = p.annotateExpression(ast.NewBinaryExpression(tok.Text, left, right), startOf(left))
		}
	}
}

// parseConditional parses `? then : else` after cond. The then branch stops
// at a comma; the else branch also admits assignments and nested conditionals.
func (p *Parser) parseConditional(cond ast.Expression) (ast.Expression, error) {
	if _, err := p.expectOp("?"); err != nil {
		return nil, err
	}
	then, err := p.parseBinary(precComma)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(":"); err != nil {
		return nil, err
	}
	els, err := p.parseBinary(precAssign - 1)
	if err != nil {
		return nil, err
	}
	return p.annotateExpression(ast.NewConditionalExpression(cond, then, els), startOf(cond)), nil
}

// parseUnary handles prefix operators and casts, which bind tighter than any
// binary operator.
func (p *Parser) parseUnary() (ast.Expression, error) {
	tok := p.cur()
	if tok.Kind == lexer.KindOperator && prefixOperators[tok.Text] {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if tok.Text == "++" || tok.Text == "--" {
			if _, ok := assignmentTarget(operand); !ok {
				return nil, diag.Syntax(operand.Span(), "Invalid left-hand side expression in prefix operation")
			}
		}
		return p.annotateExpression(ast.NewUnaryExpression(tok.Text, operand, false), tok.Start), nil
	}
	if tok.Is("(") && p.peek(1).Kind == lexer.KindIdentifier && castTypes[p.peek(1).Text] && p.peek(2).Is(")") {
		p.next()
		typeName, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return p.annotateExpression(ast.NewConversionExpression(typeName, operand), tok.Start), nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by any chain of calls, indexing and
// member access, then an optional postfix `++`/`--`.
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	start := startOf(expr)
	for {
		tok := p.cur()
		switch {
		case tok.Is("("):
			args, err := p.parseArguments("(", ")")
			if err != nil {
				return nil, err
			}
			expr = p.annotateExpression(ast.NewFunctionCall(expr, args), start)
		case tok.Is("["):
			p.next()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectOp("]"); err != nil {
				return nil, err
			}
			expr = p.annotateExpression(ast.NewIndexExpression(expr, index), start)
		case tok.Is(".") || tok.Is("?."):
			p.next()
			member, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			expr = p.annotateExpression(ast.NewMemberAccessExpression(expr, member, tok.Text == "?."), start)
		case tok.Is("++") || tok.Is("--"):
			if _, ok := assignmentTarget(expr); !ok {
				return nil, diag.Syntax(tok.Span(), "Invalid left-hand side expression in postfix operation")
			}
			p.next()
			return p.annotateExpression(ast.NewUnaryExpression(tok.Text, expr, true), start), nil
		default:
			return expr, nil
		}
	}
}

// parseArguments parses a comma separated list of expressions between opener
// and closer, such as call arguments or list items.
func (p *Parser) parseArguments(opener, closer string) ([]ast.Expression, error) {
	if _, err := p.expectOp(opener); err != nil {
		return nil, err
	}
	var items []ast.Expression
	if p.atOp(closer) {
		p.next()
		return items, nil
	}
	for {
		item, err := p.parseExpressionNoComma()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.atOp(",") {
			break
		}
		p.next()
	}
	if _, err := p.expectOp(closer); err != nil {
		return nil, err
	}
	return items, nil
}
