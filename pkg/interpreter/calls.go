package interpreter

import (
	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
	"basic/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall, env *runtime.Environment, ctx evalContext) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, env, ctx)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		val, err := i.evaluateExpression(arg, env, ctx)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return i.callFunction(callee, args, call, env, ctx)
}

// callFunction applies the call contract shared by user, native and bound
// functions: arity, parameter types, depth limit, then the return type.
func (i *Interpreter) callFunction(callee runtime.Value, args []runtime.Value, call *ast.FunctionCall, env *runtime.Environment, ctx evalContext) (runtime.Value, error) {
	span := call.Span()
	fn, ok := callee.(runtime.Callable)
	if !ok {
		return nil, diag.Type(call.Callee.Span(), "%s is not a function", runtime.Inspect(callee))
	}
	sig := fn.Signature()
	if err := checkArguments(sig, args, span); err != nil {
		return nil, err
	}
	if i.maxCallDepth > 0 && ctx.depth >= i.maxCallDepth {
		return nil, diag.Runtime(span, "Maximum call depth of %d exceeded", i.maxCallDepth)
	}

	var (
		result runtime.Value
		err    error
	)
	switch f := fn.(type) {
	case *runtime.FunctionValue:
		result, err = i.invokeFunction(f, sig, args, ctx.call())
	case *runtime.NativeFunctionValue:
		result, err = f.Impl(&runtime.NativeCallContext{Env: env, Span: span}, args)
		err = diag.WithSpan(err, span)
	case *runtime.BoundMethodValue:
		full := append([]runtime.Value{f.Receiver}, args...)
		result, err = f.Method.Impl(&runtime.NativeCallContext{Env: env, Span: span}, full)
		err = diag.WithSpan(err, span)
	default:
		return nil, diag.Type(call.Callee.Span(), "%s is not a function", runtime.Inspect(callee))
	}
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = runtime.Null
	}
	if !runtime.Assignable(sig.ReturnType, result) {
		return nil, diag.Type(span, "Wrong return type: There is no conversion from \"%s\" to \"%s\"", runtime.TypeOf(result), sig.ReturnType)
	}
	return result, nil
}

func checkArguments(sig runtime.Signature, args []runtime.Value, span ast.Span) error {
	switch {
	case len(args) < len(sig.Params):
		return diag.New(diag.KindArity, span, "Too few parameters in the function call")
	case len(args) > len(sig.Params):
		return diag.New(diag.KindArity, span, "Too many parameters in the function call")
	}
	for idx, param := range sig.Params {
		if !runtime.Assignable(param.Type, args[idx]) {
			return diag.Type(span, "Parameter type error: '%s' expects \"%s\", got \"%s\"", param.Name, param.Type, runtime.TypeOf(args[idx]))
		}
	}
	return nil
}

// invokeFunction binds the arguments in a fresh scope under the closure and
// runs the body. A block body that finishes without ret yields null.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, sig runtime.Signature, args []runtime.Value, ctx evalContext) (runtime.Value, error) {
	scope := fn.Closure.Extend()
	for idx, param := range sig.Params {
		scope.Define(param.Name, &runtime.Binding{IsConst: param.IsConst, Type: param.Type, Value: args[idx]})
	}
	switch body := fn.Declaration.Body.(type) {
	case *ast.BlockStatement:
		res, err := i.evaluateBlock(body, scope, ctx)
		if err != nil {
			return nil, err
		}
		if res.kind == completionReturn {
			return res.value, nil
		}
		return runtime.Null, nil
	case ast.Expression:
		return i.evaluateExpression(body, scope, ctx)
	default:
		return nil, diag.Runtime(fn.Declaration.Span(), "function '%s' has no body", sig.Name)
	}
}
