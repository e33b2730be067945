package ast

// Declarations

type Declarator struct {
	nodeImpl

	Name        *Identifier `json:"name"`
	Initializer Expression  `json:"initializer,omitempty"`
}

func NewDeclarator(name *Identifier, initializer Expression) *Declarator {
	return &Declarator{nodeImpl: newNodeImpl(NodeDeclarator), Name: name, Initializer: initializer}
}

// VariableDeclaration introduces one or more names sharing a declared type,
// e.g. `int a = 1, b`.
type VariableDeclaration struct {
	nodeImpl
	statementMarker

	IsConst      bool          `json:"isConst,omitempty"`
	DeclaredType *Identifier   `json:"declaredType"`
	Items        []*Declarator `json:"items"`
}

func NewVariableDeclaration(isConst bool, declaredType *Identifier, items []*Declarator) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), IsConst: isConst, DeclaredType: declaredType, Items: items}
}

type FunctionParameter struct {
	nodeImpl

	IsConst bool        `json:"isConst,omitempty"`
	Type    *Identifier `json:"type"`
	Name    *Identifier `json:"name"`
}

func NewFunctionParameter(isConst bool, paramType, name *Identifier) *FunctionParameter {
	return &FunctionParameter{nodeImpl: newNodeImpl(NodeFunctionParameter), IsConst: isConst, Type: paramType, Name: name}
}

// FunctionDefinition is `type name(params) { ... }` or the arrow form
// `type name(params) => expr`. Body is a *BlockStatement of kind
// BlockFunctionBody in the first case and an Expression in the second.
type FunctionDefinition struct {
	nodeImpl
	statementMarker

	ReturnType *Identifier          `json:"returnType"`
	ID         *Identifier          `json:"id"`
	Params     []*FunctionParameter `json:"params"`
	Body       Statement            `json:"body"`
}

func NewFunctionDefinition(returnType, id *Identifier, params []*FunctionParameter, body Statement) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), ReturnType: returnType, ID: id, Params: params, Body: body}
}

// IsArrow reports whether the body is a bare expression.
func (f *FunctionDefinition) IsArrow() bool {
	_, ok := f.Body.(Expression)
	return ok
}

// Blocks

type BlockKind string

const (
	BlockDefault      BlockKind = "default"
	BlockFunctionBody BlockKind = "functionBody"
	BlockControlFlow  BlockKind = "controlFlowBody"
)

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
	Kind BlockKind   `json:"kind"`
}

func NewBlockStatement(body []Statement, kind BlockKind) *BlockStatement {
	if kind == "" {
		kind = BlockDefault
	}
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body, Kind: kind}
}

// Module is the top-level program.
type Module struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewModule(body []Statement) *Module {
	return &Module{nodeImpl: newNodeImpl(NodeModule), Body: body}
}

// Control flow

type IfClause struct {
	nodeImpl

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewIfClause(condition Expression, body Statement) *IfClause {
	return &IfClause{nodeImpl: newNodeImpl(NodeIfClause), Condition: condition, Body: body}
}

// IfStatement holds the `if` clause followed by any `elif` clauses.
type IfStatement struct {
	nodeImpl
	statementMarker

	Clauses []*IfClause `json:"clauses"`
	Else    Statement   `json:"else,omitempty"`
}

func NewIfStatement(clauses []*IfClause, els Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Clauses: clauses, Else: els}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileLoop(condition Expression, body Statement) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

// ForLoop is the C-style loop. Init, Condition and Step may each be nil.
type ForLoop struct {
	nodeImpl
	statementMarker

	Init      Statement  `json:"init,omitempty"`
	Condition Expression `json:"condition,omitempty"`
	Step      Expression `json:"step,omitempty"`
	Body      Statement  `json:"body"`
}

func NewForLoop(init Statement, condition, step Expression, body Statement) *ForLoop {
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop), Init: init, Condition: condition, Step: step, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement() *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement)}
}
