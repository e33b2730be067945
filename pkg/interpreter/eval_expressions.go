package interpreter

import (
	"strings"

	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
	"basic/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment, ctx evalContext) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NullLiteral:
		return runtime.Null, nil
	case *ast.TextSpan:
		return i.evaluateTextSpan(n, env, ctx)
	case *ast.Identifier:
		binding, ok := env.Get(n.Name)
		if !ok {
			return nil, diag.Reference(n.Span(), "'%s' is not defined", n.Name)
		}
		return binding.Value, nil
	case *ast.ListLiteral:
		elements := make([]runtime.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			val, err := i.evaluateExpression(el, env, ctx)
			if err != nil {
				return nil, err
			}
			elements = append(elements, val)
		}
		return runtime.NewList(elements), nil
	case *ast.MapLiteral:
		return i.evaluateMapLiteral(n, env, ctx)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env, ctx)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env, ctx)
	case *ast.AssignmentExpression:
		return i.evaluateAssignmentExpression(n, env, ctx)
	case *ast.ConversionExpression:
		val, err := i.evaluateExpression(n.Operand, env, ctx)
		if err != nil {
			return nil, err
		}
		out, err := runtime.Convert(n.TargetType.Name, val)
		return out, diag.WithSpan(err, n.Span())
	case *ast.ConditionalExpression:
		cond, err := i.evaluateExpression(n.Condition, env, ctx)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(cond) {
			return i.evaluateExpression(n.Then, env, ctx)
		}
		return i.evaluateExpression(n.Else, env, ctx)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, env, ctx)
	case *ast.IndexExpression:
		obj, err := i.evaluateExpression(n.Object, env, ctx)
		if err != nil {
			return nil, err
		}
		idx, err := i.evaluateExpression(n.Index, env, ctx)
		if err != nil {
			return nil, err
		}
		out, err := runtime.Index(obj, idx)
		return out, diag.WithSpan(err, n.Span())
	case *ast.MemberAccessExpression:
		obj, err := i.evaluateExpression(n.Object, env, ctx)
		if err != nil {
			return nil, err
		}
		if n.Optional && runtime.IsNull(obj) {
			return runtime.Null, nil
		}
		out, err := runtime.Member(obj, n.Member.Name)
		return out, diag.WithSpan(err, n.Span())
	default:
		return nil, diag.Runtime(node.Span(), "unsupported expression type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateTextSpan(span *ast.TextSpan, env *runtime.Environment, ctx evalContext) (runtime.Value, error) {
	var b strings.Builder
	for _, part := range span.Parts {
		val, err := i.evaluateExpression(part, env, ctx)
		if err != nil {
			return nil, err
		}
		b.WriteString(runtime.Display(val))
	}
	return runtime.StringValue{Val: b.String()}, nil
}

// evaluateMapLiteral stores each entry under the display form of its
// evaluated key. Later duplicates overwrite earlier ones in place.
func (i *Interpreter) evaluateMapLiteral(lit *ast.MapLiteral, env *runtime.Environment, ctx evalContext) (runtime.Value, error) {
	m := runtime.NewMap()
	for _, entry := range lit.Entries {
		key, err := i.evaluateExpression(entry.Key, env, ctx)
		if err != nil {
			return nil, err
		}
		val, err := i.evaluateExpression(entry.Value, env, ctx)
		if err != nil {
			return nil, err
		}
		m.Set(runtime.MapKey(key), val)
	}
	return m, nil
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment, ctx evalContext) (runtime.Value, error) {
	if expr.Operator == "++" || expr.Operator == "--" {
		return i.evaluateIncrement(expr, env, ctx)
	}
	operand, err := i.evaluateExpression(expr.Operand, env, ctx)
	if err != nil {
		return nil, err
	}
	out, err := runtime.UnaryOp(expr.Operator, operand)
	return out, diag.WithSpan(err, expr.Span())
}

// evaluateIncrement handles prefix and postfix ++/--. The prefix form yields
// the updated value, the postfix form the previous one.
func (i *Interpreter) evaluateIncrement(expr *ast.UnaryExpression, env *runtime.Environment, ctx evalContext) (runtime.Value, error) {
	target, ok := expr.Operand.(ast.AssignmentTarget)
	if !ok {
		return nil, diag.Syntax(expr.Span(), "Invalid operand for '%s'", expr.Operator)
	}
	ref, err := i.resolveReference(target, env, ctx)
	if err != nil {
		return nil, err
	}
	current, err := ref.get()
	if err != nil {
		return nil, err
	}
	op := expr.Operator[:1]
	updated, err := runtime.BinaryOp(op, current, runtime.IntValue{Val: 1})
	if err != nil {
		return nil, diag.WithSpan(err, expr.Span())
	}
	if err := ref.set(updated); err != nil {
		return nil, err
	}
	if expr.IsPostfix {
		return current, nil
	}
	return updated, nil
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment, ctx evalContext) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env, ctx)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "&&", "||", "??":
		if shortCircuits(expr.Operator, left) {
			return left, nil
		}
		return i.evaluateExpression(expr.Right, env, ctx)
	case ",":
		return i.evaluateExpression(expr.Right, env, ctx)
	}
	right, err := i.evaluateExpression(expr.Right, env, ctx)
	if err != nil {
		return nil, err
	}
	out, err := runtime.BinaryOp(expr.Operator, left, right)
	return out, diag.WithSpan(err, expr.Span())
}

// shortCircuits reports whether a logical operator is decided by its left
// operand alone, in which case that operand is the result.
func shortCircuits(op string, left runtime.Value) bool {
	switch op {
	case "&&":
		return !runtime.Truthy(left)
	case "||":
		return runtime.Truthy(left)
	default:
		return !runtime.IsNull(left)
	}
}

func (i *Interpreter) evaluateAssignmentExpression(expr *ast.AssignmentExpression, env *runtime.Environment, ctx evalContext) (runtime.Value, error) {
	ref, err := i.resolveReference(expr.Target, env, ctx)
	if err != nil {
		return nil, err
	}
	if expr.Operator == "=" {
		val, err := i.evaluateExpression(expr.Value, env, ctx)
		if err != nil {
			return nil, err
		}
		if err := ref.set(val); err != nil {
			return nil, err
		}
		return val, nil
	}

	op, ok := runtime.CompoundOperator(expr.Operator)
	if !ok {
		return nil, diag.Syntax(expr.Span(), "Unknown assignment operator '%s'", expr.Operator)
	}
	current, err := ref.get()
	if err != nil {
		return nil, err
	}
	var updated runtime.Value
	switch op {
	case "&&", "||", "??":
		if shortCircuits(op, current) {
			return current, nil
		}
		if updated, err = i.evaluateExpression(expr.Value, env, ctx); err != nil {
			return nil, err
		}
	default:
		rhs, err := i.evaluateExpression(expr.Value, env, ctx)
		if err != nil {
			return nil, err
		}
		if updated, err = runtime.BinaryOp(op, current, rhs); err != nil {
			return nil, diag.WithSpan(err, expr.Span())
		}
	}
	if err := ref.set(updated); err != nil {
		return nil, err
	}
	return updated, nil
}
