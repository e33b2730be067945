package runtime

import (
	"errors"
	"testing"

	"basic/interpreter-go/pkg/diag"
)

func TestListIndexing(t *testing.T) {
	list := NewList([]Value{IntValue{Val: 1}, IntValue{Val: 2}})
	if got, _ := Index(list, IntValue{Val: 1}); got != (IntValue{Val: 2}) {
		t.Fatalf("list[1] = %#v", got)
	}
	if got, _ := Index(list, StringValue{Val: "0"}); got != (IntValue{Val: 1}) {
		t.Fatalf("list[\"0\"] = %#v", got)
	}
	if got, _ := Index(list, IntValue{Val: 5}); !IsNull(got) {
		t.Fatalf("out of range read should be null, got %#v", got)
	}
	if err := SetIndex(list, IntValue{Val: 2}, IntValue{Val: 3}); err != nil {
		t.Fatalf("append via index: %v", err)
	}
	if list.Size() != 3 {
		t.Fatalf("size = %d", list.Size())
	}
	if err := SetIndex(list, IntValue{Val: 9}, Null); !errors.Is(err, diag.ErrRuntime) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	if _, err := Index(list, BoolValue{}); !errors.Is(err, diag.ErrType) {
		t.Fatalf("expected type error, got %v", err)
	}
}

func TestListMethods(t *testing.T) {
	list := NewList([]Value{IntValue{Val: 1}})
	push, err := Member(list, "push")
	if err != nil {
		t.Fatalf("push lookup: %v", err)
	}
	bound := push.(*BoundMethodValue)
	got, err := bound.Method.Impl(nil, []Value{bound.Receiver, IntValue{Val: 2}})
	if err != nil || got != (IntValue{Val: 2}) {
		t.Fatalf("push returned %#v, %v", got, err)
	}
	size, _ := Member(list, "size")
	bound = size.(*BoundMethodValue)
	if got, _ := bound.Method.Impl(nil, []Value{bound.Receiver}); got != (IntValue{Val: 2}) {
		t.Fatalf("size = %#v", got)
	}
	if got, _ := Member(list, "nope"); !IsNull(got) {
		t.Fatalf("unknown list member should be null, got %#v", got)
	}
}

func TestMapAccess(t *testing.T) {
	m := NewMap()
	m.Set("a", IntValue{Val: 1})
	if err := SetIndex(m, IntValue{Val: 2}, StringValue{Val: "two"}); err != nil {
		t.Fatalf("SetIndex: %v", err)
	}
	if err := SetMember(m, "a", IntValue{Val: 10}); err != nil {
		t.Fatalf("SetMember: %v", err)
	}
	if got, _ := Member(m, "a"); got != (IntValue{Val: 10}) {
		t.Fatalf("m.a = %#v", got)
	}
	if got, _ := Index(m, StringValue{Val: "2"}); got != (StringValue{Val: "two"}) {
		t.Fatalf("m[\"2\"] = %#v", got)
	}
	if got, _ := Member(m, "missing"); !IsNull(got) {
		t.Fatalf("missing key should be null, got %#v", got)
	}
	if keys := m.Keys(); len(keys) != 2 || keys[0] != "a" || keys[1] != "2" {
		t.Fatalf("keys = %v", keys)
	}
}

func TestMemberOfNull(t *testing.T) {
	_, err := Member(Null, "x")
	if !errors.Is(err, diag.ErrType) {
		t.Fatalf("expected type error, got %v", err)
	}
	if err := SetMember(NewList(nil), "x", Null); !errors.Is(err, diag.ErrType) {
		t.Fatalf("expected type error, got %v", err)
	}
}

func TestStringIndex(t *testing.T) {
	if got, _ := Index(StringValue{Val: "héllo"}, IntValue{Val: 1}); got != (StringValue{Val: "é"}) {
		t.Fatalf("got %#v", got)
	}
}
