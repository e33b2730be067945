package runtime

import (
	"errors"
	"math"
	"testing"

	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
)

func TestTypeOfTags(t *testing.T) {
	fn := &FunctionValue{Declaration: ast.Fn("int", "f", nil, ast.Ret(ast.Int(1)))}
	cases := []struct {
		value Value
		want  string
	}{
		{IntValue{Val: 1}, "int"},
		{FloatValue{Val: 1.5}, "float"},
		{BoolValue{Val: true}, "bool"},
		{Null, "null"},
		{StringValue{Val: "x"}, "string"},
		{NewList(nil), "list"},
		{NewMap(), "map"},
		{fn, "function"},
		{&NativeFunctionValue{Name: "print"}, "function"},
	}
	for _, tc := range cases {
		if got := TypeOf(tc.value); got != tc.want {
			t.Fatalf("TypeOf(%#v) = %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestAssignable(t *testing.T) {
	if !Assignable("auto", StringValue{Val: "x"}) {
		t.Fatalf("auto should accept strings")
	}
	if !Assignable("int", Null) {
		t.Fatalf("null should fit every type")
	}
	if Assignable("int", StringValue{Val: "x"}) {
		t.Fatalf("int should reject strings")
	}
	if Assignable("int", FloatValue{Val: 1}) {
		t.Fatalf("int should reject floats")
	}
}

func TestTruthy(t *testing.T) {
	falsy := []Value{Null, BoolValue{}, IntValue{}, FloatValue{}, StringValue{}}
	for _, v := range falsy {
		if Truthy(v) {
			t.Fatalf("expected %#v to be falsy", v)
		}
	}
	truthy := []Value{BoolValue{Val: true}, IntValue{Val: -1}, FloatValue{Val: 0.1}, StringValue{Val: "0"}, NewList(nil), NewMap()}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Fatalf("expected %#v to be truthy", v)
		}
	}
}

func TestBinaryArithmetic(t *testing.T) {
	cases := []struct {
		op          string
		left, right Value
		want        Value
	}{
		{"+", IntValue{Val: 1}, IntValue{Val: 2}, IntValue{Val: 3}},
		{"+", IntValue{Val: 1}, FloatValue{Val: 0.5}, FloatValue{Val: 1.5}},
		{"+", StringValue{Val: "a"}, StringValue{Val: "b"}, StringValue{Val: "ab"}},
		{"/", IntValue{Val: 7}, IntValue{Val: 2}, IntValue{Val: 3}},
		{"/", IntValue{Val: -7}, IntValue{Val: 2}, IntValue{Val: -3}},
		{"/", FloatValue{Val: 7}, IntValue{Val: 2}, FloatValue{Val: 3.5}},
		{"%", IntValue{Val: -7}, IntValue{Val: 3}, IntValue{Val: -1}},
		{"**", IntValue{Val: 2}, IntValue{Val: 10}, IntValue{Val: 1024}},
		{"**", IntValue{Val: 2}, IntValue{Val: -1}, FloatValue{Val: 0.5}},
		{"&", IntValue{Val: 6}, IntValue{Val: 3}, IntValue{Val: 2}},
		{"|", FloatValue{Val: 4.9}, IntValue{Val: 1}, IntValue{Val: 5}},
		{"<<", IntValue{Val: 1}, IntValue{Val: 4}, IntValue{Val: 16}},
		{">>", IntValue{Val: -16}, IntValue{Val: 2}, IntValue{Val: -4}},
		{"<", IntValue{Val: 1}, FloatValue{Val: 1.5}, BoolValue{Val: true}},
		{">=", IntValue{Val: 2}, IntValue{Val: 2}, BoolValue{Val: true}},
		{"==", IntValue{Val: 2}, FloatValue{Val: 2}, BoolValue{Val: true}},
		{"==", StringValue{Val: "1"}, IntValue{Val: 1}, BoolValue{Val: false}},
		{"!=", Null, Null, BoolValue{Val: false}},
	}
	for _, tc := range cases {
		got, err := BinaryOp(tc.op, tc.left, tc.right)
		if err != nil {
			t.Fatalf("%s %s %s: %v", Inspect(tc.left), tc.op, Inspect(tc.right), err)
		}
		if got != tc.want {
			t.Fatalf("%s %s %s = %#v, want %#v", Inspect(tc.left), tc.op, Inspect(tc.right), got, tc.want)
		}
	}
}

func TestIntOverflowWraps(t *testing.T) {
	got, err := BinaryOp("+", IntValue{Val: math.MaxInt64}, IntValue{Val: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (IntValue{Val: math.MinInt64}) {
		t.Fatalf("expected wrap, got %#v", got)
	}
}

func TestBinaryErrors(t *testing.T) {
	cases := []struct {
		op          string
		left, right Value
		sentinel    error
	}{
		{"-", StringValue{Val: "a"}, IntValue{Val: 1}, diag.ErrType},
		{"+", StringValue{Val: "a"}, IntValue{Val: 1}, diag.ErrType},
		{"<", StringValue{Val: "a"}, StringValue{Val: "b"}, diag.ErrType},
		{"&", BoolValue{Val: true}, IntValue{Val: 1}, diag.ErrType},
		{"/", IntValue{Val: 1}, IntValue{Val: 0}, diag.ErrRuntime},
		{"%", IntValue{Val: 1}, IntValue{Val: 0}, diag.ErrRuntime},
		{"<<", IntValue{Val: 1}, IntValue{Val: -1}, diag.ErrRuntime},
	}
	for _, tc := range cases {
		_, err := BinaryOp(tc.op, tc.left, tc.right)
		if !errors.Is(err, tc.sentinel) {
			t.Fatalf("%s %s %s: expected %v, got %v", Inspect(tc.left), tc.op, Inspect(tc.right), tc.sentinel, err)
		}
	}
	_, err := BinaryOp("-", StringValue{Val: "a"}, IntValue{Val: 1})
	if want := "TypeError: cannot apply '-' to string and int"; err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
	got, err := BinaryOp("/", FloatValue{Val: 1}, IntValue{Val: 0})
	if err != nil || !math.IsInf(got.(FloatValue).Val, 1) {
		t.Fatalf("float division by zero = %#v, %v", got, err)
	}
}

func TestUnaryOp(t *testing.T) {
	if got, _ := UnaryOp("-", IntValue{Val: 3}); got != (IntValue{Val: -3}) {
		t.Fatalf("-3 = %#v", got)
	}
	if got, _ := UnaryOp("~", IntValue{Val: 0}); got != (IntValue{Val: -1}) {
		t.Fatalf("~0 = %#v", got)
	}
	if got, _ := UnaryOp("!", StringValue{}); got != (BoolValue{Val: true}) {
		t.Fatalf("!\"\" = %#v", got)
	}
	if _, err := UnaryOp("-", StringValue{Val: "x"}); !errors.Is(err, diag.ErrType) {
		t.Fatalf("expected type error, got %v", err)
	}
}

func TestCompoundOperator(t *testing.T) {
	for op, want := range map[string]string{"+=": "+", "**=": "**", "<<=": "<<", "??=": "??", "&&=": "&&"} {
		got, ok := CompoundOperator(op)
		if !ok || got != want {
			t.Fatalf("CompoundOperator(%q) = %q, %v", op, got, ok)
		}
	}
	for _, op := range []string{"=", "==", "<=", "!="} {
		if _, ok := CompoundOperator(op); ok {
			t.Fatalf("%q is not a compound operator", op)
		}
	}
}

func TestEqualityIdentity(t *testing.T) {
	a := NewList([]Value{IntValue{Val: 1}})
	b := NewList([]Value{IntValue{Val: 1}})
	if !Equal(a, a) || Equal(a, b) {
		t.Fatalf("lists should compare by identity")
	}
	if Equal(Null, IntValue{}) {
		t.Fatalf("null should only equal null")
	}
}

func TestConvert(t *testing.T) {
	cases := []struct {
		typeName string
		in       Value
		want     Value
	}{
		{"int", StringValue{Val: " 42 "}, IntValue{Val: 42}},
		{"int", StringValue{Val: "3.9"}, IntValue{Val: 3}},
		{"int", FloatValue{Val: -2.7}, IntValue{Val: -2}},
		{"int", BoolValue{Val: true}, IntValue{Val: 1}},
		{"float", IntValue{Val: 2}, FloatValue{Val: 2}},
		{"float", StringValue{Val: "1.25"}, FloatValue{Val: 1.25}},
		{"string", FloatValue{Val: 2}, StringValue{Val: "2.0"}},
		{"string", StringValue{Val: "x"}, StringValue{Val: "x"}},
		{"bool", IntValue{Val: 0}, BoolValue{Val: false}},
	}
	for _, tc := range cases {
		got, err := Convert(tc.typeName, tc.in)
		if err != nil {
			t.Fatalf("(%s)%s: %v", tc.typeName, Inspect(tc.in), err)
		}
		if got != tc.want {
			t.Fatalf("(%s)%s = %#v, want %#v", tc.typeName, Inspect(tc.in), got, tc.want)
		}
	}
	if _, err := Convert("int", StringValue{Val: "abc"}); !errors.Is(err, diag.ErrRuntime) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	if _, err := Convert("int", NewList(nil)); !errors.Is(err, diag.ErrType) {
		t.Fatalf("expected type error, got %v", err)
	}
}
