package runtime

import "testing"

func TestEnvironmentShadowingAndSet(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", &Binding{Type: "int", Value: IntValue{Val: 1}})
	inner := global.Extend()
	if inner.CanDeclare("a") != true {
		t.Fatalf("outer bindings should not block declaration in a child scope")
	}
	if global.CanDeclare("a") {
		t.Fatalf("expected redeclaration to be refused in the same scope")
	}
	inner.Define("a", &Binding{Type: "int", Value: IntValue{Val: 2}})
	if !inner.Set("a", IntValue{Val: 3}) {
		t.Fatalf("Set should find the inner binding")
	}
	outer, _ := global.Get("a")
	if outer.Value != (IntValue{Val: 1}) {
		t.Fatalf("outer binding changed: %#v", outer.Value)
	}
	got, ok := inner.Get("a")
	if !ok || got.Value != (IntValue{Val: 3}) {
		t.Fatalf("inner binding = %#v", got)
	}
}

func TestEnvironmentLookupWalksChain(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", &Binding{Type: "auto", Value: StringValue{Val: "g"}})
	child := global.Extend().Extend()
	if !child.Has("x") {
		t.Fatalf("expected x to be visible through two scopes")
	}
	if !child.Set("x", StringValue{Val: "changed"}) {
		t.Fatalf("expected Set to reach the global binding")
	}
	b, _ := global.Get("x")
	if b.Value != (StringValue{Val: "changed"}) {
		t.Fatalf("global binding = %#v", b.Value)
	}
	if child.Set("missing", Null) || child.Has("missing") {
		t.Fatalf("unknown names should not resolve")
	}
	if child.Parent().Parent() != global {
		t.Fatalf("unexpected parent chain")
	}
}

func TestEnvironmentKeysSorted(t *testing.T) {
	env := NewEnvironment(nil)
	for _, name := range []string{"b", "c", "a"} {
		env.Define(name, &Binding{Value: Null})
	}
	keys := env.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[2] != "c" {
		t.Fatalf("keys = %v", keys)
	}
}
