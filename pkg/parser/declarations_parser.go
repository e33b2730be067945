package parser

import (
	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
	"basic/interpreter-go/pkg/lexer"
)

// parseTypeName accepts an identifier or the `map` keyword in type position.
func (p *Parser) parseTypeName() (*ast.Identifier, error) {
	tok := p.cur()
	if tok.IsKeyword("map") {
		p.next()
		id := ast.NewIdentifier(tok.Text)
		ast.SetSpan(id, tok.Span())
		return id, nil
	}
	return p.expectIdentifier()
}

// parseVariableDeclaration parses `type name [= expr] (, name [= expr])*`.
// The `const` keyword, if any, has already been consumed.
func (p *Parser) parseVariableDeclaration(isConst bool, start ast.Position) (*ast.VariableDeclaration, error) {
	declaredType, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	var items []*ast.Declarator
	for {
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if p.atOp("=") {
			p.next()
			if init, err = p.parseExpressionNoComma(); err != nil {
				return nil, err
			}
		} else if isConst {
			return nil, diag.Syntax(name.Span(), "Missing initializer in const declaration")
		}
		item := ast.NewDeclarator(name, init)
		p.finish(item, name.Span().Start)
		items = append(items, item)
		if !p.atOp(",") {
			break
		}
		p.next()
	}
	decl := ast.NewVariableDeclaration(isConst, declaredType, items)
	p.finish(decl, start)
	return decl, nil
}

// parseFunctionDefinition parses `type name(params) { ... }` and
// `type name(params) => expr`.
func (p *Parser) parseFunctionDefinition() (ast.Statement, error) {
	start := p.cur().Start
	returnType, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}

	var body ast.Statement
	switch {
	case p.atOp("{"):
		block, err := p.parseBlock(ast.BlockFunctionBody)
		if err != nil {
			return nil, err
		}
		body = block
	case p.atOp("=>"):
		p.next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		body = expr
	default:
		return nil, p.unexpected()
	}
	return p.annotateStatement(ast.NewFunctionDefinition(returnType, name, params, body), start), nil
}

func (p *Parser) parseParameters() ([]*ast.FunctionParameter, error) {
	if _, err := p.expectOp("("); err != nil {
		return nil, err
	}
	var params []*ast.FunctionParameter
	if p.atOp(")") {
		p.next()
		return params, nil
	}
	for {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.atOp(",") {
			break
		}
		p.next()
	}
	if _, err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseParameter() (*ast.FunctionParameter, error) {
	start := p.cur().Start
	isConst := false
	if p.atKeyword("const") {
		p.next()
		isConst = true
	}
	paramType, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	param := ast.NewFunctionParameter(isConst, paramType, name)
	p.finish(param, start)
	return param, nil
}

// isTypeToken reports whether tok can name a type.
func isTypeToken(tok lexer.Token) bool {
	return tok.Kind == lexer.KindIdentifier || tok.IsKeyword("map")
}
