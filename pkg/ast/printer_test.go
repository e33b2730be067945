package ast

import "testing"

func TestPrintExpressions(t *testing.T) {
	cases := []struct {
		name string
		node Node
		want string
	}{
		{"binary", Bin("+", Int(1), Bin("*", Int(2), Int(3))), "(+ 1 (* 2 3))"},
		{"postfix", Postfix("++", ID("i")), "(i ++)"},
		{"prefix", Prefix("-", Flt(1.5)), "(- 1.5)"},
		{"member", NewMemberAccessExpression(ID("a"), ID("b"), true), "(?. a b)"},
		{"call", CallName("print", Str("hi")), `(call print "hi")`},
		{"cast", NewConversionExpression(ID("int"), Str("3")), `((int) "3")`},
		{"map", NewMapLiteral([]*MapEntry{NewMapEntry(Str("a"), Int(1))}), `(map ("a" 1))`},
	}
	for _, tc := range cases {
		if got := Print(tc.node); got != tc.want {
			t.Fatalf("%s: Print = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestPrintStatements(t *testing.T) {
	fn := Fn("int", "add", []*FunctionParameter{Param("int", "a"), Param("int", "b")},
		Ret(Bin("+", ID("a"), ID("b"))),
	)
	if got, want := Print(fn), "(fun int add (int a int b) (block (ret (+ a b))))"; got != want {
		t.Fatalf("Print(fn) = %q, want %q", got, want)
	}

	loop := NewForLoop(nil, nil, nil, Block(NewBreakStatement()))
	if got, want := Print(loop), "(for _ _ _ (block (break)))"; got != want {
		t.Fatalf("Print(for) = %q, want %q", got, want)
	}

	mod := Mod(Decl("int", "a", Int(1)), If(ID("a"), Block(), Ret(nil)))
	want := "(decl int a = 1)\n(if (a (block)) (else (ret)))"
	if got := Print(mod); got != want {
		t.Fatalf("Print(module) = %q, want %q", got, want)
	}
}

func TestSetSpan(t *testing.T) {
	id := ID("x")
	if !id.Span().IsZero() {
		t.Fatalf("expected zero span on fresh node")
	}
	span := Span{Start: Position{Offset: 4, Line: 1, Column: 5}, End: Position{Offset: 5, Line: 1, Column: 6}}
	SetSpan(id, span)
	if id.Span() != span {
		t.Fatalf("span = %+v, want %+v", id.Span(), span)
	}
}
