package parser

import "basic/interpreter-go/pkg/ast"

// finish stamps node with a span from start to the end of the last consumed
// token.
func (p *Parser) finish(node ast.Node, start ast.Position) {
	ast.SetSpan(node, ast.Span{Start: start, End: p.last.End})
}

// annotateExpression is finish for expressions that are returned directly.
func (p *Parser) annotateExpression(expr ast.Expression, start ast.Position) ast.Expression {
	p.finish(expr, start)
	return expr
}

func (p *Parser) annotateStatement(stmt ast.Statement, start ast.Position) ast.Statement {
	p.finish(stmt, start)
	return stmt
}

func startOf(node ast.Node) ast.Position {
	return node.Span().Start
}
