package parser

import (
	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/lexer"
)

// parseStatement parses one statement and any semicolons that follow it.
func (p *Parser) parseStatement() (ast.Statement, error) {
	stmt, err := p.parseStatementBody()
	if err != nil {
		return nil, err
	}
	for p.atOp(";") {
		p.next()
	}
	return stmt, nil
}

func (p *Parser) parseStatementBody() (ast.Statement, error) {
	tok := p.cur()
	switch {
	case tok.Is("{"):
		return p.parseBlock(ast.BlockDefault)
	case tok.IsKeyword("const"):
		p.next()
		return p.parseVariableDeclaration(true, tok.Start)
	case tok.IsKeyword("if"):
		return p.parseIfStatement()
	case tok.IsKeyword("while"):
		return p.parseWhileLoop()
	case tok.IsKeyword("for"):
		return p.parseForLoop()
	case tok.IsKeyword("ret"):
		return p.parseReturnStatement()
	case tok.IsKeyword("continue"):
		p.next()
		return p.annotateStatement(ast.NewContinueStatement(), tok.Start), nil
	case tok.IsKeyword("break"):
		p.next()
		return p.annotateStatement(ast.NewBreakStatement(), tok.Start), nil
	case p.startsDeclaration():
		if p.peek(2).Is("(") {
			return p.parseFunctionDefinition()
		}
		return p.parseVariableDeclaration(false, tok.Start)
	}
	return p.parseExpression()
}

func (p *Parser) parseBlock(kind ast.BlockKind) (*ast.BlockStatement, error) {
	open, err := p.expectOp("{")
	if err != nil {
		return nil, err
	}
	var body []ast.Statement
	for !p.atOp("}") {
		if p.cur().Kind == lexer.KindEOF {
			return nil, p.unexpected()
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	p.next()
	block := ast.NewBlockStatement(body, kind)
	p.finish(block, open.Start)
	return block, nil
}

// parseBody parses the body of if/elif/else/while/for. Block bodies are
// tagged as control-flow blocks.
func (p *Parser) parseBody() (ast.Statement, error) {
	if p.atOp("{") {
		block, err := p.parseBlock(ast.BlockControlFlow)
		if err != nil {
			return nil, err
		}
		return block, nil
	}
	return p.parseStatement()
}

func (p *Parser) parseCondition() (ast.Expression, error) {
	if _, err := p.expectOp("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	start, err := p.expectKeyword("if")
	if err != nil {
		return nil, err
	}
	var clauses []*ast.IfClause
	for {
		clauseStart := p.last.Start
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		clause := ast.NewIfClause(cond, body)
		p.finish(clause, clauseStart)
		clauses = append(clauses, clause)
		if !p.atKeyword("elif") {
			break
		}
		p.next()
	}
	var els ast.Statement
	if p.atKeyword("else") {
		p.next()
		els, err = p.parseBody()
		if err != nil {
			return nil, err
		}
	}
	return p.annotateStatement(ast.NewIfStatement(clauses, els), start.Start), nil
}

func (p *Parser) parseWhileLoop() (ast.Statement, error) {
	start, err := p.expectKeyword("while")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return p.annotateStatement(ast.NewWhileLoop(cond, body), start.Start), nil
}

// parseForLoop parses `for(init; cond; step) body`. Each header segment may
// be empty; init may be a declaration or an expression.
func (p *Parser) parseForLoop() (ast.Statement, error) {
	start, err := p.expectKeyword("for")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp("("); err != nil {
		return nil, err
	}

	var init ast.Statement
	if !p.atOp(";") {
		initTok := p.cur()
		switch {
		case initTok.IsKeyword("const"):
			p.next()
			init, err = p.parseVariableDeclaration(true, initTok.Start)
		case p.startsDeclaration():
			init, err = p.parseVariableDeclaration(false, initTok.Start)
		default:
			init, err = p.parseExpression()
		}
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expectOp(";"); err != nil {
		return nil, err
	}

	var cond ast.Expression
	if !p.atOp(";") {
		if cond, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectOp(";"); err != nil {
		return nil, err
	}

	var step ast.Expression
	if !p.atOp(")") {
		if step, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectOp(")"); err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return p.annotateStatement(ast.NewForLoop(init, cond, step, body), start.Start), nil
}

// parseReturnStatement takes a value only when it starts on the same line as
// `ret`.
func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	start, err := p.expectKeyword("ret")
	if err != nil {
		return nil, err
	}
	next := p.cur()
	if next.Kind == lexer.KindEOF || next.Start.Line != start.Start.Line || next.Is(";") || next.Is("}") {
		return p.annotateStatement(ast.NewReturnStatement(nil), start.Start), nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return p.annotateStatement(ast.NewReturnStatement(value), start.Start), nil
}
