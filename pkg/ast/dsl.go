package ast

// Short constructors for building trees by hand in tests.

func ID(name string) *Identifier { return NewIdentifier(name) }

func Int(v int64) *IntegerLiteral { return NewIntegerLiteral(v, 10, "") }

func Flt(v float64) *FloatLiteral { return NewFloatLiteral(v, "") }

func Str(v string) *StringLiteral { return NewStringLiteral(v) }

func Bool(v bool) *BooleanLiteral { return NewBooleanLiteral(v) }

func Null() *NullLiteral { return NewNullLiteral() }

func List(elements ...Expression) *ListLiteral { return NewListLiteral(elements) }

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Assign(target AssignmentTarget, value Expression) *AssignmentExpression {
	return NewAssignmentExpression("=", target, value)
}

func AssignOp(op string, target AssignmentTarget, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(op, target, value)
}

func Prefix(op string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(op, operand, false)
}

func Postfix(op string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(op, operand, true)
}

func Call(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args)
}

func CallName(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

func Member(object Expression, name string) *MemberAccessExpression {
	return NewMemberAccessExpression(object, ID(name), false)
}

func Index(object, index Expression) *IndexExpression {
	return NewIndexExpression(object, index)
}

func Block(stmts ...Statement) *BlockStatement { return NewBlockStatement(stmts, BlockDefault) }

func Mod(stmts ...Statement) *Module { return NewModule(stmts) }

// Decl declares a single name: `typ name = init`.
func Decl(typ, name string, init Expression) *VariableDeclaration {
	return NewVariableDeclaration(false, ID(typ), []*Declarator{NewDeclarator(ID(name), init)})
}

func Const(typ, name string, init Expression) *VariableDeclaration {
	return NewVariableDeclaration(true, ID(typ), []*Declarator{NewDeclarator(ID(name), init)})
}

func Param(typ, name string) *FunctionParameter {
	return NewFunctionParameter(false, ID(typ), ID(name))
}

// Fn builds a block-bodied function definition.
func Fn(returnType, name string, params []*FunctionParameter, body ...Statement) *FunctionDefinition {
	return NewFunctionDefinition(ID(returnType), ID(name), params, NewBlockStatement(body, BlockFunctionBody))
}

func Ret(value Expression) *ReturnStatement { return NewReturnStatement(value) }

func If(cond Expression, body Statement, els Statement) *IfStatement {
	return NewIfStatement([]*IfClause{NewIfClause(cond, body)}, els)
}
