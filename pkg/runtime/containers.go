package runtime

import (
	"strconv"

	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
)

// MapKey is the stored form of a map key: its display string.
func MapKey(v Value) string {
	return Display(v)
}

func listIndex(index Value) (int64, bool) {
	switch idx := index.(type) {
	case IntValue:
		return idx.Val, true
	case StringValue:
		n, err := strconv.ParseInt(idx.Val, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// Index reads obj[index]. Missing list positions and map keys read as null.
func Index(obj, index Value) (Value, error) {
	switch o := obj.(type) {
	case *ListValue:
		i, ok := listIndex(index)
		if !ok {
			return nil, diag.Type(ast.Span{}, "list index must be int, got %s", TypeOf(index))
		}
		if i < 0 || i >= int64(len(o.Elements)) {
			return Null, nil
		}
		return o.Elements[i], nil
	case *MapValue:
		if v, ok := o.Get(MapKey(index)); ok {
			return v, nil
		}
		return Null, nil
	case StringValue:
		i, ok := index.(IntValue)
		if !ok {
			return nil, diag.Type(ast.Span{}, "string index must be int, got %s", TypeOf(index))
		}
		runes := []rune(o.Val)
		if i.Val < 0 || i.Val >= int64(len(runes)) {
			return Null, nil
		}
		return StringValue{Val: string(runes[i.Val])}, nil
	}
	return nil, diag.Type(ast.Span{}, "cannot index %s", TypeOf(obj))
}

// SetIndex writes obj[index] = value. Writing one past the end of a list
// appends.
func SetIndex(obj, index, value Value) error {
	switch o := obj.(type) {
	case *ListValue:
		i, ok := listIndex(index)
		if !ok {
			return diag.Type(ast.Span{}, "list index must be int, got %s", TypeOf(index))
		}
		switch {
		case i >= 0 && i < int64(len(o.Elements)):
			o.Elements[i] = value
		case i == int64(len(o.Elements)):
			o.Elements = append(o.Elements, value)
		default:
			return diag.Runtime(ast.Span{}, "list index %d out of range (size %d)", i, len(o.Elements))
		}
		return nil
	case *MapValue:
		o.Set(MapKey(index), value)
		return nil
	}
	return diag.Type(ast.Span{}, "cannot assign to index of %s", TypeOf(obj))
}

// Member reads obj.name. Maps look the name up as a key; lists expose size
// and push.
func Member(obj Value, name string) (Value, error) {
	switch o := obj.(type) {
	case *MapValue:
		if v, ok := o.Get(name); ok {
			return v, nil
		}
		return Null, nil
	case *ListValue:
		if method, ok := listMethods[name]; ok {
			return &BoundMethodValue{Receiver: o, Method: method}, nil
		}
		return Null, nil
	}
	return nil, diag.Type(ast.Span{}, "cannot read member '%s' of %s", name, TypeOf(obj))
}

// SetMember writes obj.name = value. Only maps accept member writes.
func SetMember(obj Value, name string, value Value) error {
	if m, ok := obj.(*MapValue); ok {
		m.Set(name, value)
		return nil
	}
	return diag.Type(ast.Span{}, "cannot assign member '%s' of %s", name, TypeOf(obj))
}

// Bound method implementations receive the receiver as args[0].
var listMethods = map[string]*NativeFunctionValue{
	"size": {
		Name:       "size",
		ReturnType: TypeInt,
		Impl: func(_ *NativeCallContext, args []Value) (Value, error) {
			return IntValue{Val: int64(args[0].(*ListValue).Size())}, nil
		},
	},
	"push": {
		Name:       "push",
		ReturnType: TypeInt,
		Params:     []Param{{Name: "item", Type: TypeAuto}},
		Impl: func(_ *NativeCallContext, args []Value) (Value, error) {
			return IntValue{Val: int64(args[0].(*ListValue).Push(args[1]))}, nil
		},
	},
}
