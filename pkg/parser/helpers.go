package parser

import (
	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/lexer"
)

const (
	// precLowest admits every binary operator, including the comma.
	precLowest = -1
	// precComma stops before the comma operator. It is used for call
	// arguments, list items, map entries and declarator initializers.
	precComma     = 0
	precAssign    = 3
	precTernary   = 4
	precNoBinding = -2
)

// binaryPrecedence maps binary operators to their binding strength; higher
// binds tighter.
var binaryPrecedence = map[string]int{
	"**":  16,
	"*":   15,
	"/":   15,
	"%":   15,
	"+":   14,
	"-":   14,
	"<<":  13,
	">>":  13,
	"<":   12,
	"<=":  12,
	">":   12,
	">=":  12,
	"==":  11,
	"!=":  11,
	"&":   10,
	"^":   9,
	"|":   8,
	"&&":  7,
	"||":  6,
	"??":  5,
	"=":   precAssign,
	"+=":  precAssign,
	"-=":  precAssign,
	"*=":  precAssign,
	"/=":  precAssign,
	"%=":  precAssign,
	"**=": precAssign,
	"<<=": precAssign,
	">>=": precAssign,
	"&=":  precAssign,
	"^=":  precAssign,
	"|=":  precAssign,
	"&&=": precAssign,
	"||=": precAssign,
	"??=": precAssign,
	",":   precComma,
}

func precedenceOf(tok lexer.Token) int {
	if tok.Kind != lexer.KindOperator {
		return precNoBinding
	}
	if prec, ok := binaryPrecedence[tok.Text]; ok {
		return prec
	}
	return precNoBinding
}

var prefixOperators = map[string]bool{
	"!": true, "+": true, "-": true, "~": true, "++": true, "--": true,
}

// castTypes are the type names recognised in `(type)expr`.
var castTypes = map[string]bool{
	"int": true, "float": true, "string": true, "bool": true,
}

// assignmentTarget reports whether expr may be assigned to or incremented.
func assignmentTarget(expr ast.Expression) (ast.AssignmentTarget, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e, true
	case *ast.IndexExpression:
		return e, true
	case *ast.MemberAccessExpression:
		if e.Optional {
			return nil, false
		}
		return e, true
	default:
		return nil, false
	}
}

// startsDeclaration reports whether the tokens at the cursor begin
// `type name`, where type is an identifier or the `map` keyword.
func (p *Parser) startsDeclaration() bool {
	return isTypeToken(p.cur()) && p.peek(1).Kind == lexer.KindIdentifier
}
