package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a node as a parenthesised prefix form, e.g. `(+ 1 (* 2 3))`.
// Modules print one top-level statement per line.
func Print(node Node) string {
	var b strings.Builder
	writeNode(&b, node)
	return b.String()
}

func writeNode(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("_")
	case *Module:
		for i, stmt := range n.Body {
			if i > 0 {
				b.WriteByte('\n')
			}
			writeNode(b, stmt)
		}
	case *Identifier:
		if n == nil {
			b.WriteString("_")
			return
		}
		b.WriteString(n.Name)
	case *IntegerLiteral:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *FloatLiteral:
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *StringLiteral:
		b.WriteString(strconv.Quote(n.Value))
	case *BooleanLiteral:
		b.WriteString(strconv.FormatBool(n.Value))
	case *NullLiteral:
		b.WriteString("null")
	case *TextSpan:
		writeList(b, "span", exprNodes(n.Parts)...)
	case *ListLiteral:
		writeList(b, "list", exprNodes(n.Elements)...)
	case *MapLiteral:
		b.WriteString("(map")
		for _, entry := range n.Entries {
			b.WriteString(" (")
			writeNode(b, entry.Key)
			b.WriteByte(' ')
			writeNode(b, entry.Value)
			b.WriteByte(')')
		}
		b.WriteByte(')')
	case *UnaryExpression:
		if n.IsPostfix {
			b.WriteByte('(')
			writeNode(b, n.Operand)
			b.WriteByte(' ')
			b.WriteString(n.Operator)
			b.WriteByte(')')
			return
		}
		writeList(b, n.Operator, n.Operand)
	case *BinaryExpression:
		writeList(b, n.Operator, n.Left, n.Right)
	case *AssignmentExpression:
		writeList(b, n.Operator, n.Target, n.Value)
	case *ConversionExpression:
		writeList(b, "("+n.TargetType.Name+")", n.Operand)
	case *ConditionalExpression:
		writeList(b, "?", n.Condition, n.Then, n.Else)
	case *FunctionCall:
		writeList(b, "call", append([]Node{n.Callee}, exprNodes(n.Arguments)...)...)
	case *IndexExpression:
		writeList(b, "index", n.Object, n.Index)
	case *MemberAccessExpression:
		op := "."
		if n.Optional {
			op = "?."
		}
		writeList(b, op, n.Object, n.Member)
	case *VariableDeclaration:
		head := "decl"
		if n.IsConst {
			head = "const"
		}
		b.WriteByte('(')
		b.WriteString(head)
		b.WriteByte(' ')
		writeNode(b, n.DeclaredType)
		for _, item := range n.Items {
			b.WriteByte(' ')
			writeNode(b, item.Name)
			if item.Initializer != nil {
				b.WriteString(" = ")
				writeNode(b, item.Initializer)
			}
		}
		b.WriteByte(')')
	case *FunctionDefinition:
		b.WriteString("(fun ")
		writeNode(b, n.ReturnType)
		b.WriteByte(' ')
		writeNode(b, n.ID)
		b.WriteString(" (")
		for i, param := range n.Params {
			if i > 0 {
				b.WriteByte(' ')
			}
			if param.IsConst {
				b.WriteString("const ")
			}
			writeNode(b, param.Type)
			b.WriteByte(' ')
			writeNode(b, param.Name)
		}
		b.WriteString(") ")
		if n.IsArrow() {
			b.WriteString("=> ")
		}
		writeNode(b, n.Body)
		b.WriteByte(')')
	case *BlockStatement:
		writeList(b, "block", stmtNodes(n.Body)...)
	case *IfStatement:
		b.WriteString("(if")
		for _, clause := range n.Clauses {
			b.WriteString(" (")
			writeNode(b, clause.Condition)
			b.WriteByte(' ')
			writeNode(b, clause.Body)
			b.WriteByte(')')
		}
		if n.Else != nil {
			b.WriteString(" (else ")
			writeNode(b, n.Else)
			b.WriteByte(')')
		}
		b.WriteByte(')')
	case *WhileLoop:
		writeList(b, "while", n.Condition, n.Body)
	case *ForLoop:
		writeList(b, "for", n.Init, n.Condition, n.Step, n.Body)
	case *ReturnStatement:
		if n.Argument == nil {
			b.WriteString("(ret)")
			return
		}
		writeList(b, "ret", n.Argument)
	case *BreakStatement:
		b.WriteString("(break)")
	case *ContinueStatement:
		b.WriteString("(continue)")
	default:
		fmt.Fprintf(b, "<%s>", node.NodeType())
	}
}

func writeList(b *strings.Builder, head string, items ...Node) {
	b.WriteByte('(')
	b.WriteString(head)
	for _, item := range items {
		b.WriteByte(' ')
		writeNode(b, item)
	}
	b.WriteByte(')')
}

func exprNodes(exprs []Expression) []Node {
	out := make([]Node, len(exprs))
	for i, expr := range exprs {
		out[i] = expr
	}
	return out
}

func stmtNodes(stmts []Statement) []Node {
	out := make([]Node, len(stmts))
	for i, stmt := range stmts {
		out[i] = stmt
	}
	return out
}
