package ast

type NodeType string

const (
	NodeIdentifier             NodeType = "Identifier"
	NodeStringLiteral          NodeType = "StringLiteral"
	NodeIntegerLiteral         NodeType = "IntegerLiteral"
	NodeFloatLiteral           NodeType = "FloatLiteral"
	NodeBooleanLiteral         NodeType = "BooleanLiteral"
	NodeNullLiteral            NodeType = "NullLiteral"
	NodeTextSpan               NodeType = "TextSpan"
	NodeListLiteral            NodeType = "ListLiteral"
	NodeMapLiteral             NodeType = "MapLiteral"
	NodeMapEntry               NodeType = "MapEntry"
	NodeUnaryExpression        NodeType = "UnaryExpression"
	NodeBinaryExpression       NodeType = "BinaryExpression"
	NodeAssignmentExpression   NodeType = "AssignmentExpression"
	NodeConversionExpression   NodeType = "ConversionExpression"
	NodeConditionalExpression  NodeType = "ConditionalExpression"
	NodeFunctionCall           NodeType = "FunctionCall"
	NodeIndexExpression        NodeType = "IndexExpression"
	NodeMemberAccessExpression NodeType = "MemberAccessExpression"
	NodeVariableDeclaration    NodeType = "VariableDeclaration"
	NodeDeclarator             NodeType = "Declarator"
	NodeFunctionParameter      NodeType = "FunctionParameter"
	NodeFunctionDefinition     NodeType = "FunctionDefinition"
	NodeBlockStatement         NodeType = "BlockStatement"
	NodeIfStatement            NodeType = "IfStatement"
	NodeIfClause               NodeType = "IfClause"
	NodeWhileLoop              NodeType = "WhileLoop"
	NodeForLoop                NodeType = "ForLoop"
	NodeReturnStatement        NodeType = "ReturnStatement"
	NodeBreakStatement         NodeType = "BreakStatement"
	NodeContinueStatement      NodeType = "ContinueStatement"
	NodeModule                 NodeType = "Module"
)

// Position is a point in the source text. Offset is a 0-based byte offset;
// Line and Column are 1-based, with Column counted in runes.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Span covers the half-open source range [Start, End).
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsZero reports whether the span was never set.
func (s Span) IsZero() bool {
	return s.Start.Line == 0 && s.End.Line == 0
}

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type nodeImpl struct {
	Type     NodeType `json:"type"`
	Location Span     `json:"span"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.Location }
func (nodeImpl) isNode()              {}

func (n *nodeImpl) setSpan(span Span) { n.Location = span }

// SetSpan records the source range of a node. Nodes are otherwise immutable
// once the parser hands them out.
func SetSpan(node Node, span Span) {
	if s, ok := node.(interface{ setSpan(Span) }); ok {
		s.setSpan(span)
	}
}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// AssignmentTarget is implemented by the expressions that may appear on the
// left of `=`, a compound assignment, or an increment.
type AssignmentTarget interface {
	Expression
	assignmentTargetNode()
}

type assignmentTargetMarker struct{}

func (assignmentTargetMarker) assignmentTargetNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// IntegerLiteral keeps the radix and raw lexeme next to the parsed value.
type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value int64  `json:"value"`
	Base  int    `json:"base"`
	Raw   string `json:"raw,omitempty"`
}

func NewIntegerLiteral(value int64, base int, raw string) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value, Base: base, Raw: raw}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value float64 `json:"value"`
	Raw   string  `json:"raw,omitempty"`
}

func NewFloatLiteral(value float64, raw string) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value, Raw: raw}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NullLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker
}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{nodeImpl: newNodeImpl(NodeNullLiteral)}
}

// TextSpan is an interpolated string: literal runs and expressions are
// concatenated in order at evaluation time.
type TextSpan struct {
	nodeImpl
	expressionMarker
	statementMarker

	Parts []Expression `json:"parts"`
}

func NewTextSpan(parts []Expression) *TextSpan {
	return &TextSpan{nodeImpl: newNodeImpl(NodeTextSpan), Parts: parts}
}

type ListLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Elements []Expression `json:"elements"`
}

func NewListLiteral(elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}

type MapEntry struct {
	nodeImpl

	Key   Expression `json:"key"`
	Value Expression `json:"value"`
}

func NewMapEntry(key, value Expression) *MapEntry {
	return &MapEntry{nodeImpl: newNodeImpl(NodeMapEntry), Key: key, Value: value}
}

type MapLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Entries []*MapEntry `json:"entries"`
}

func NewMapLiteral(entries []*MapEntry) *MapLiteral {
	return &MapLiteral{nodeImpl: newNodeImpl(NodeMapLiteral), Entries: entries}
}

// Operators

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator  string     `json:"operator"`
	Operand   Expression `json:"operand"`
	IsPostfix bool       `json:"isPostfix,omitempty"`
}

func NewUnaryExpression(operator string, operand Expression, isPostfix bool) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand, IsPostfix: isPostfix}
}

// BinaryExpression covers arithmetic, bitwise, comparison, logical, `??`
// and the comma operator.
type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// AssignmentExpression is `=` or one of the compound forms (`+=`, `??=`, ...).
type AssignmentExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string           `json:"operator"`
	Target   AssignmentTarget `json:"target"`
	Value    Expression       `json:"value"`
}

func NewAssignmentExpression(operator string, target AssignmentTarget, value Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Operator: operator, Target: target, Value: value}
}

// ConversionExpression is a cast such as `(int)x`.
type ConversionExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	TargetType *Identifier `json:"targetType"`
	Operand    Expression  `json:"operand"`
}

func NewConversionExpression(targetType *Identifier, operand Expression) *ConversionExpression {
	return &ConversionExpression{nodeImpl: newNodeImpl(NodeConversionExpression), TargetType: targetType, Operand: operand}
}

type ConditionalExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Condition Expression `json:"condition"`
	Then      Expression `json:"then"`
	Else      Expression `json:"else"`
}

func NewConditionalExpression(condition, then, els Expression) *ConditionalExpression {
	return &ConditionalExpression{nodeImpl: newNodeImpl(NodeConditionalExpression), Condition: condition, Then: then, Else: els}
}

// Postfix access

type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee Expression, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker

	Object Expression `json:"object"`
	Index  Expression `json:"index"`
}

func NewIndexExpression(object, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Object: object, Index: index}
}

// MemberAccessExpression is `a.b`, or `a?.b` when Optional is set.
type MemberAccessExpression struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker

	Object   Expression  `json:"object"`
	Member   *Identifier `json:"member"`
	Optional bool        `json:"optional,omitempty"`
}

func NewMemberAccessExpression(object Expression, member *Identifier, optional bool) *MemberAccessExpression {
	return &MemberAccessExpression{nodeImpl: newNodeImpl(NodeMemberAccessExpression), Object: object, Member: member, Optional: optional}
}
