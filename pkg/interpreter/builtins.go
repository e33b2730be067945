package interpreter

import (
	"fmt"

	"basic/interpreter-go/pkg/runtime"
)

// registerBuiltins seeds the global scope with print and typeof.
func (i *Interpreter) registerBuiltins() {
	i.defineNative(&runtime.NativeFunctionValue{
		Name:       "print",
		ReturnType: runtime.TypeNull,
		Params:     []runtime.Param{{Name: "input", Type: runtime.TypeAuto}},
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			if _, err := fmt.Fprintln(i.stdout, runtime.Display(args[0])); err != nil {
				return nil, fmt.Errorf("print: %w", err)
			}
			return runtime.Null, nil
		},
	})
	i.defineNative(&runtime.NativeFunctionValue{
		Name:       "typeof",
		ReturnType: runtime.TypeString,
		Params:     []runtime.Param{{Name: "data", Type: runtime.TypeAuto}},
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			return runtime.StringValue{Val: runtime.TypeOf(args[0])}, nil
		},
	})
}

func (i *Interpreter) defineNative(fn *runtime.NativeFunctionValue) {
	i.global.Define(fn.Name, &runtime.Binding{IsConst: true, Type: runtime.TypeFunction, Value: fn})
}
