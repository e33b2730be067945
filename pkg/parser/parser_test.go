package parser_test

import (
	"errors"
	"testing"

	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
	"basic/interpreter-go/pkg/parser"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("ParseSource(%q): %v", src, err)
	}
	return mod
}

func TestParseExpressions(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"2 ** 3 ** 2", "(** 2 (** 3 2))"},
		{"-2 ** 2", "(** (- 2) 2)"},
		{"a = b = 1", "(= a (= b 1))"},
		{"a += 1 << 2", "(+= a (<< 1 2))"},
		{"x ?? y || z", "(?? x (|| y z))"},
		{"a && b || c", "(|| (&& a b) c)"},
		{"a | b ^ c & d", "(| a (^ b (& c d)))"},
		{"a < b == c >= d", "(== (< a b) (>= c d))"},
		{"c ? 1 : d ? 2 : 3", "(? c 1 (? d 2 3))"},
		{"x = c ? 1 : 2", "(= x (? c 1 2))"},
		{"a, b = 1", "(, a (= b 1))"},
		{"!a++", "(! (a ++))"},
		{"++a.b", "(++ (. a b))"},
		{"a[0]--", "((index a 0) --)"},
		{"(int)\"3\" + 1", "(+ ((int) \"3\") 1)"},
		{"(a) + 1", "(+ a 1)"},
		{"f(1, 2)(3)[0].x?.y", "(?. (. (index (call (call f 1 2) 3) 0) x) y)"},
		{"[1, [2], map{}]", "(list 1 (list 2) (map))"},
		{"map{\"a\": 1, b: 2,}", "(map (\"a\" 1) (b 2))"},
		{"$\"a{x}b{y + 1}\"", "(span \"a\" x \"b\" (+ y 1))"},
		{"0xff + 0b11 + 017o + 1_000", "(+ (+ (+ 255 3) 15) 1000)"},
		{".5 * 2", "(* 0.5 2)"},
	}
	for _, tc := range cases {
		mod := mustParse(t, tc.src)
		if got := ast.Print(mod); got != tc.want {
			t.Fatalf("%q:\n got  %s\n want %s", tc.src, got, tc.want)
		}
	}
}

func TestParseStatements(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"int a = 1, b, c = a + 1;", "(decl int a = 1 b c = (+ a 1))"},
		{"const auto x = 2", "(const auto x = 2)"},
		{"map m = map{}", "(decl map m = (map))"},
		{"int add(int a, const int b) { ret a + b }", "(fun int add (int a const int b) (block (ret (+ a b))))"},
		{"int sq(int x) => x * x", "(fun int sq (int x) => (* x x))"},
		{"if (a) b elif (c) { d } else e", "(if (a b) (c (block d)) (else e))"},
		{"while (i < 3) i++", "(while (< i 3) (i ++))"},
		{"for (int i = 0; i < 5; i++) { continue; break }", "(for (decl int i = 0) (< i 5) (i ++) (block (continue) (break)))"},
		{"for (;;) {}", "(for _ _ _ (block))"},
		{"for (i = 0; ; ) x", "(for (= i 0) _ _ x)"},
		{"{ int a = 1 } a", "(block (decl int a = 1))\na"},
		{"1;;2;", "1\n2"},
	}
	for _, tc := range cases {
		mod := mustParse(t, tc.src)
		if got := ast.Print(mod); got != tc.want {
			t.Fatalf("%q:\n got  %s\n want %s", tc.src, got, tc.want)
		}
	}
}

func TestParseBlockKinds(t *testing.T) {
	mod := mustParse(t, "void f() { while (x) { } }")
	fn := mod.Body[0].(*ast.FunctionDefinition)
	body := fn.Body.(*ast.BlockStatement)
	if body.Kind != ast.BlockFunctionBody {
		t.Fatalf("function body kind = %s", body.Kind)
	}
	loop := body.Body[0].(*ast.WhileLoop)
	if inner := loop.Body.(*ast.BlockStatement); inner.Kind != ast.BlockControlFlow {
		t.Fatalf("loop body kind = %s", inner.Kind)
	}
	mod = mustParse(t, "{ }")
	if block := mod.Body[0].(*ast.BlockStatement); block.Kind != ast.BlockDefault {
		t.Fatalf("bare block kind = %s", block.Kind)
	}
}

func TestParseReturnSameLine(t *testing.T) {
	mod := mustParse(t, "int f() {\n  ret\n  1\n}")
	want := "(fun int f () (block (ret) 1))"
	if got := ast.Print(mod); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	mod = mustParse(t, "int g() { ret 1 }")
	if got, want := ast.Print(mod), "(fun int g () (block (ret 1)))"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, src := range []string{"", "  // only a comment\n"} {
		mod := mustParse(t, src)
		if len(mod.Body) != 1 {
			t.Fatalf("%q: expected single statement, got %d", src, len(mod.Body))
		}
		if _, ok := mod.Body[0].(*ast.NullLiteral); !ok {
			t.Fatalf("%q: expected NullLiteral, got %T", src, mod.Body[0])
		}
	}
}

func TestParseSpans(t *testing.T) {
	mod := mustParse(t, "int a = 1\nb = a + 22")
	assign := mod.Body[1].(*ast.AssignmentExpression)
	span := assign.Span()
	if span.Start.Line != 2 || span.Start.Column != 1 || span.End.Column != 11 {
		t.Fatalf("assignment span = %+v", span)
	}
	right := assign.Value.(*ast.BinaryExpression).Right
	if right.Span().Start.Column != 9 {
		t.Fatalf("literal span = %+v", right.Span())
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src        string
		incomplete bool
	}{
		{"1 +", true},
		{"int f() {", true},
		{"(1 + 2", true},
		{"map{\"a\": 1", true},
		{"1 = 2", false},
		{"a?.b = 1", false},
		{"f()++", false},
		{"++1", false},
		{"const int x", false},
		{"jmp", false},
		{"int f() 1", false},
		{")", false},
		{"99999999999999999999", false},
	}
	for _, tc := range cases {
		_, err := parser.ParseSource(tc.src)
		if err == nil {
			t.Fatalf("%q: expected error", tc.src)
		}
		if !errors.Is(err, diag.ErrSyntax) {
			t.Fatalf("%q: expected syntax error, got %v", tc.src, err)
		}
		if got := diag.IsIncomplete(err); got != tc.incomplete {
			t.Fatalf("%q: incomplete = %v, want %v (%v)", tc.src, got, tc.incomplete, err)
		}
	}
}
