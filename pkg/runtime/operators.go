package runtime

import (
	"math"

	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
)

// Operator errors carry no span; the interpreter attaches the span of the
// expression that applied the operator.

func operandError(op string, left, right Value) error {
	return diag.Type(ast.Span{}, "cannot apply '%s' to %s and %s", op, TypeOf(left), TypeOf(right))
}

// Truthy reports the truth value used by every condition. Null, false, zero
// and the empty string are false; containers and functions are always true.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case BoolValue:
		return val.Val
	case IntValue:
		return val.Val != 0
	case FloatValue:
		return val.Val != 0
	case StringValue:
		return val.Val != ""
	case NullValue, nil:
		return false
	default:
		return true
	}
}

// IsNull reports whether v is the null value.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(NullValue)
	return ok
}

// UnaryOp applies a prefix operator other than ++/--.
func UnaryOp(op string, v Value) (Value, error) {
	switch op {
	case "!":
		return BoolValue{Val: !Truthy(v)}, nil
	case "-":
		switch val := v.(type) {
		case IntValue:
			return IntValue{Val: -val.Val}, nil
		case FloatValue:
			return FloatValue{Val: -val.Val}, nil
		}
	case "+":
		switch v.(type) {
		case IntValue, FloatValue:
			return v, nil
		}
	case "~":
		if n, ok := bitOperand(v); ok {
			return IntValue{Val: ^n}, nil
		}
	}
	return nil, diag.Type(ast.Span{}, "cannot apply '%s' to %s", op, TypeOf(v))
}

// BinaryOp applies an eager binary operator. The short-circuit operators
// (&&, ||, ??) and the comma operator are evaluated by the interpreter.
func BinaryOp(op string, left, right Value) (Value, error) {
	switch op {
	case "+":
		if ls, ok := left.(StringValue); ok {
			if rs, ok := right.(StringValue); ok {
				return StringValue{Val: ls.Val + rs.Val}, nil
			}
			return nil, operandError(op, left, right)
		}
		return arithmetic(op, left, right)
	case "-", "*", "/", "%", "**":
		return arithmetic(op, left, right)
	case "&", "|", "^", "<<", ">>":
		return bitwise(op, left, right)
	case "<", ">", "<=", ">=":
		return compare(op, left, right)
	case "==":
		return BoolValue{Val: Equal(left, right)}, nil
	case "!=":
		return BoolValue{Val: !Equal(left, right)}, nil
	}
	return nil, diag.Type(ast.Span{}, "unknown operator '%s'", op)
}

// CompoundOperator maps `+=` style operators to their binary operator.
func CompoundOperator(op string) (string, bool) {
	if len(op) < 2 || op[len(op)-1] != '=' {
		return "", false
	}
	base := op[:len(op)-1]
	switch base {
	case "+", "-", "*", "/", "%", "**", "&", "|", "^", "<<", ">>", "&&", "||", "??":
		return base, true
	}
	return "", false
}

func toFloat64(v Value) (float64, bool) {
	switch val := v.(type) {
	case IntValue:
		return float64(val.Val), true
	case FloatValue:
		return val.Val, true
	}
	return 0, false
}

func arithmetic(op string, left, right Value) (Value, error) {
	li, lok := left.(IntValue)
	ri, rok := right.(IntValue)
	if lok && rok {
		return intArithmetic(op, li.Val, ri.Val)
	}
	lf, lok := toFloat64(left)
	rf, rok := toFloat64(right)
	if !lok || !rok {
		return nil, operandError(op, left, right)
	}
	var out float64
	switch op {
	case "+":
		out = lf + rf
	case "-":
		out = lf - rf
	case "*":
		out = lf * rf
	case "/":
		out = lf / rf
	case "%":
		out = math.Mod(lf, rf)
	case "**":
		out = math.Pow(lf, rf)
	}
	return FloatValue{Val: out}, nil
}

func intArithmetic(op string, l, r int64) (Value, error) {
	switch op {
	case "+":
		return IntValue{Val: l + r}, nil
	case "-":
		return IntValue{Val: l - r}, nil
	case "*":
		return IntValue{Val: l * r}, nil
	case "/":
		if r == 0 {
			return nil, diag.Runtime(ast.Span{}, "division by zero")
		}
		return IntValue{Val: l / r}, nil
	case "%":
		if r == 0 {
			return nil, diag.Runtime(ast.Span{}, "division by zero")
		}
		return IntValue{Val: l % r}, nil
	case "**":
		if r < 0 {
			return FloatValue{Val: math.Pow(float64(l), float64(r))}, nil
		}
		return IntValue{Val: intPow(l, r)}, nil
	}
	return nil, diag.Type(ast.Span{}, "unknown operator '%s'", op)
}

// intPow computes base**exp by squaring, wrapping on overflow like the other
// integer operators.
func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func bitOperand(v Value) (int64, bool) {
	switch val := v.(type) {
	case IntValue:
		return val.Val, true
	case FloatValue:
		if math.IsNaN(val.Val) || math.IsInf(val.Val, 0) {
			return 0, false
		}
		return int64(val.Val), true
	}
	return 0, false
}

func bitwise(op string, left, right Value) (Value, error) {
	l, lok := bitOperand(left)
	r, rok := bitOperand(right)
	if !lok || !rok {
		return nil, operandError(op, left, right)
	}
	switch op {
	case "&":
		return IntValue{Val: l & r}, nil
	case "|":
		return IntValue{Val: l | r}, nil
	case "^":
		return IntValue{Val: l ^ r}, nil
	}
	if r < 0 {
		return nil, diag.Runtime(ast.Span{}, "negative shift count %d", r)
	}
	if op == "<<" {
		return IntValue{Val: l << uint64(r)}, nil
	}
	return IntValue{Val: l >> uint64(r)}, nil
}

func compare(op string, left, right Value) (Value, error) {
	var cmp int
	li, lok := left.(IntValue)
	ri, rok := right.(IntValue)
	if lok && rok {
		cmp = compareOrdered(li.Val, ri.Val)
	} else {
		lf, lok := toFloat64(left)
		rf, rok := toFloat64(right)
		if !lok || !rok {
			return nil, operandError(op, left, right)
		}
		if math.IsNaN(lf) || math.IsNaN(rf) {
			return BoolValue{Val: false}, nil
		}
		cmp = compareOrdered(lf, rf)
	}
	switch op {
	case "<":
		return BoolValue{Val: cmp < 0}, nil
	case ">":
		return BoolValue{Val: cmp > 0}, nil
	case "<=":
		return BoolValue{Val: cmp <= 0}, nil
	default:
		return BoolValue{Val: cmp >= 0}, nil
	}
}

func compareOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Equal implements `==`. Int and Float compare by numeric value, other
// scalars compare within their own variant, and lists, maps and functions
// compare by identity.
func Equal(left, right Value) bool {
	if IsNull(left) || IsNull(right) {
		return IsNull(left) && IsNull(right)
	}
	switch l := left.(type) {
	case IntValue:
		switch r := right.(type) {
		case IntValue:
			return l.Val == r.Val
		case FloatValue:
			return float64(l.Val) == r.Val
		}
	case FloatValue:
		switch r := right.(type) {
		case IntValue:
			return l.Val == float64(r.Val)
		case FloatValue:
			return l.Val == r.Val
		}
	case BoolValue:
		if r, ok := right.(BoolValue); ok {
			return l.Val == r.Val
		}
	case StringValue:
		if r, ok := right.(StringValue); ok {
			return l.Val == r.Val
		}
	case *ListValue:
		r, ok := right.(*ListValue)
		return ok && l == r
	case *MapValue:
		r, ok := right.(*MapValue)
		return ok && l == r
	case *FunctionValue:
		r, ok := right.(*FunctionValue)
		return ok && l == r
	case *NativeFunctionValue:
		r, ok := right.(*NativeFunctionValue)
		return ok && l == r
	case *BoundMethodValue:
		r, ok := right.(*BoundMethodValue)
		return ok && l.Method == r.Method && Equal(l.Receiver, r.Receiver)
	}
	return false
}
