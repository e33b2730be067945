package runtime

import (
	"math"
	"strconv"
	"strings"

	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
)

// Convert implements the `(type)value` cast for int, float, string and bool.
func Convert(typeName string, v Value) (Value, error) {
	switch typeName {
	case TypeString:
		return StringValue{Val: Display(v)}, nil
	case TypeBool:
		return BoolValue{Val: Truthy(v)}, nil
	case TypeInt:
		return toInt(v)
	case TypeFloat:
		return toFloat(v)
	}
	return nil, diag.Type(ast.Span{}, "unknown conversion target '%s'", typeName)
}

func conversionError(v Value, typeName string) error {
	return diag.Type(ast.Span{}, "There is no conversion from \"%s\" to \"%s\"", TypeOf(v), typeName)
}

func toInt(v Value) (Value, error) {
	switch val := v.(type) {
	case IntValue:
		return val, nil
	case FloatValue:
		if math.IsNaN(val.Val) || math.IsInf(val.Val, 0) {
			return nil, diag.Runtime(ast.Span{}, "cannot convert %s to int", formatFloat(val.Val))
		}
		return IntValue{Val: int64(val.Val)}, nil
	case BoolValue:
		if val.Val {
			return IntValue{Val: 1}, nil
		}
		return IntValue{Val: 0}, nil
	case StringValue:
		text := strings.TrimSpace(val.Val)
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return IntValue{Val: n}, nil
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return IntValue{Val: int64(f)}, nil
		}
		return nil, diag.Runtime(ast.Span{}, "cannot convert %q to int", val.Val)
	}
	return nil, conversionError(v, TypeInt)
}

func toFloat(v Value) (Value, error) {
	switch val := v.(type) {
	case FloatValue:
		return val, nil
	case IntValue:
		return FloatValue{Val: float64(val.Val)}, nil
	case BoolValue:
		if val.Val {
			return FloatValue{Val: 1}, nil
		}
		return FloatValue{Val: 0}, nil
	case StringValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(val.Val), 64)
		if err != nil {
			return nil, diag.Runtime(ast.Span{}, "cannot convert %q to float", val.Val)
		}
		return FloatValue{Val: f}, nil
	}
	return nil, conversionError(v, TypeFloat)
}
