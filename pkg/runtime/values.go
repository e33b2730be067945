package runtime

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"basic/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindNull
	KindString
	KindList
	KindMap
	KindFunction
	KindNativeFunction
	KindBoundMethod
)

// Type tags reported by TypeOf and accepted in declarations.
const (
	TypeInt      = "int"
	TypeFloat    = "float"
	TypeBool     = "bool"
	TypeNull     = "null"
	TypeString   = "string"
	TypeList     = "list"
	TypeMap      = "map"
	TypeFunction = "function"
	TypeAuto     = "auto"
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return TypeInt
	case KindFloat:
		return TypeFloat
	case KindBool:
		return TypeBool
	case KindNull:
		return TypeNull
	case KindString:
		return TypeString
	case KindList:
		return TypeList
	case KindMap:
		return TypeMap
	case KindFunction, KindNativeFunction, KindBoundMethod:
		return TypeFunction
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// TypeOf returns the language-level type tag of v.
func TypeOf(v Value) string {
	if v == nil {
		return TypeNull
	}
	return v.Kind().String()
}

// Assignable reports whether a value may be stored in a binding declared with
// typeName. `auto` accepts anything and null fits every type.
func Assignable(typeName string, v Value) bool {
	if typeName == TypeAuto || typeName == "" {
		return true
	}
	if _, ok := v.(NullValue); ok || v == nil {
		return true
	}
	return TypeOf(v) == typeName
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntValue struct {
	Val int64
}

func (v IntValue) Kind() Kind { return KindInt }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// Null is the single null value.
var Null Value = NullValue{}

//-----------------------------------------------------------------------------
// Containers
//-----------------------------------------------------------------------------

// ListValue is an ordered, mutable sequence shared by reference.
type ListValue struct {
	Elements []Value
}

func (v *ListValue) Kind() Kind { return KindList }

func NewList(elements []Value) *ListValue {
	return &ListValue{Elements: elements}
}

// Size returns the number of elements.
func (v *ListValue) Size() int { return len(v.Elements) }

// Push appends item and returns the new size.
func (v *ListValue) Push(item Value) int {
	v.Elements = append(v.Elements, item)
	return len(v.Elements)
}

// MapValue is an insertion-ordered string-keyed map shared by reference.
type MapValue struct {
	entries *linkedhashmap.Map
}

func (v *MapValue) Kind() Kind { return KindMap }

func NewMap() *MapValue {
	return &MapValue{entries: linkedhashmap.New()}
}

// Get returns the entry stored under key.
func (v *MapValue) Get(key string) (Value, bool) {
	raw, ok := v.entries.Get(key)
	if !ok {
		return nil, false
	}
	return raw.(Value), true
}

// Set inserts or replaces an entry. Replacing keeps the original position.
func (v *MapValue) Set(key string, value Value) {
	v.entries.Put(key, value)
}

func (v *MapValue) Size() int { return v.entries.Size() }

// Keys returns the keys in insertion order.
func (v *MapValue) Keys() []string {
	raw := v.entries.Keys()
	keys := make([]string, len(raw))
	for i, k := range raw {
		keys[i] = k.(string)
	}
	return keys
}

// Each visits entries in insertion order.
func (v *MapValue) Each(fn func(key string, value Value)) {
	v.entries.Each(func(k, val interface{}) {
		fn(k.(string), val.(Value))
	})
}

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

// Param describes one formal parameter of a callable.
type Param struct {
	Name    string
	Type    string
	IsConst bool
}

// Signature is the declared shape shared by user and native functions.
type Signature struct {
	Name       string
	ReturnType string
	Params     []Param
}

// Callable is implemented by every value that can appear as a callee.
type Callable interface {
	Value
	Signature() Signature
}

// FunctionValue is a user-defined function closed over its defining scope.
type FunctionValue struct {
	Declaration *ast.FunctionDefinition
	Closure     *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Signature() Signature {
	decl := v.Declaration
	sig := Signature{Params: make([]Param, 0, len(decl.Params))}
	if decl.ID != nil {
		sig.Name = decl.ID.Name
	}
	if decl.ReturnType != nil {
		sig.ReturnType = decl.ReturnType.Name
	}
	for _, p := range decl.Params {
		param := Param{IsConst: p.IsConst}
		if p.Name != nil {
			param.Name = p.Name.Name
		}
		if p.Type != nil {
			param.Type = p.Type.Name
		}
		sig.Params = append(sig.Params, param)
	}
	return sig
}

// NativeCallContext provides hooks for native functions.
type NativeCallContext struct {
	Env  *Environment
	Span ast.Span
}

type NativeFunc func(ctx *NativeCallContext, args []Value) (Value, error)

// NativeFunctionValue is a host-provided function following the same call
// contract as user functions.
type NativeFunctionValue struct {
	Name       string
	ReturnType string
	Params     []Param
	Impl       NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v *NativeFunctionValue) Signature() Signature {
	return Signature{Name: v.Name, ReturnType: v.ReturnType, Params: v.Params}
}

// BoundMethodValue is a native method captured together with its receiver,
// produced by member access such as `list.push`.
type BoundMethodValue struct {
	Receiver Value
	Method   *NativeFunctionValue
}

func (v *BoundMethodValue) Kind() Kind { return KindBoundMethod }

func (v *BoundMethodValue) Signature() Signature { return v.Method.Signature() }
