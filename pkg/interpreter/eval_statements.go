package interpreter

import (
	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
	"basic/interpreter-go/pkg/runtime"
)

// Names accepted in declared-type position. `void` only admits null.
var knownTypes = map[string]bool{
	runtime.TypeInt:      true,
	runtime.TypeFloat:    true,
	runtime.TypeBool:     true,
	runtime.TypeNull:     true,
	runtime.TypeString:   true,
	runtime.TypeList:     true,
	runtime.TypeMap:      true,
	runtime.TypeFunction: true,
	runtime.TypeAuto:     true,
	"void":               true,
}

func checkTypeName(id *ast.Identifier) error {
	if id == nil || knownTypes[id.Name] {
		return nil
	}
	return diag.Type(id.Span(), "Unknown type '%s'", id.Name)
}

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment, ctx evalContext) (completion, error) {
	switch n := node.(type) {
	case ast.Expression:
		val, err := i.evaluateExpression(n, env, ctx)
		if err != nil {
			return completion{}, err
		}
		return normal(val), nil
	case *ast.VariableDeclaration:
		return i.evaluateVariableDeclaration(n, env, ctx)
	case *ast.FunctionDefinition:
		return i.evaluateFunctionDefinition(n, env)
	case *ast.BlockStatement:
		return i.evaluateBlock(n, env.Extend(), ctx)
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, env, ctx)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, env, ctx)
	case *ast.ForLoop:
		return i.evaluateForLoop(n, env, ctx)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, env, ctx)
	case *ast.BreakStatement:
		if !ctx.inLoop {
			return completion{}, diag.New(diag.KindControlFlow, n.Span(), "Illegal break statement")
		}
		return completion{kind: completionBreak, value: runtime.Null}, nil
	case *ast.ContinueStatement:
		if !ctx.inLoop {
			return completion{}, diag.New(diag.KindControlFlow, n.Span(), "Illegal continue statement")
		}
		return completion{kind: completionContinue, value: runtime.Null}, nil
	default:
		return completion{}, diag.Runtime(node.Span(), "unsupported statement type: %s", node.NodeType())
	}
}

// evaluateBlock runs statements in scope, stopping at the first abrupt
// completion and handing it to the caller.
func (i *Interpreter) evaluateBlock(block *ast.BlockStatement, scope *runtime.Environment, ctx evalContext) (completion, error) {
	result := normal(runtime.Null)
	for _, stmt := range block.Body {
		res, err := i.evaluateStatement(stmt, scope, ctx)
		if err != nil {
			return completion{}, err
		}
		if res.abrupt() {
			return res, nil
		}
		result = res
	}
	return result, nil
}

// evaluateBody runs the body of if/while/for. Bodies always get their own
// scope, block or not.
func (i *Interpreter) evaluateBody(body ast.Statement, env *runtime.Environment, ctx evalContext) (completion, error) {
	if block, ok := body.(*ast.BlockStatement); ok {
		return i.evaluateBlock(block, env.Extend(), ctx)
	}
	return i.evaluateStatement(body, env.Extend(), ctx)
}

func (i *Interpreter) evaluateVariableDeclaration(decl *ast.VariableDeclaration, env *runtime.Environment, ctx evalContext) (completion, error) {
	if err := checkTypeName(decl.DeclaredType); err != nil {
		return completion{}, err
	}
	typeName := decl.DeclaredType.Name
	var last runtime.Value = runtime.Null
	for _, item := range decl.Items {
		name := item.Name.Name
		if !env.CanDeclare(name) {
			return completion{}, diag.New(diag.KindRedeclaration, item.Name.Span(), "Identifier '%s' has already been declared", name)
		}
		var value runtime.Value = runtime.Null
		if item.Initializer != nil {
			val, err := i.evaluateExpression(item.Initializer, env, ctx)
			if err != nil {
				return completion{}, err
			}
			value = val
		}
		if !runtime.Assignable(typeName, value) {
			return completion{}, diag.Type(item.Span(), "There is no conversion from \"%s\" to \"%s\"", runtime.TypeOf(value), typeName)
		}
		env.Define(name, &runtime.Binding{IsConst: decl.IsConst, Type: typeName, Value: value})
		last = value
	}
	return normal(last), nil
}

func (i *Interpreter) evaluateFunctionDefinition(def *ast.FunctionDefinition, env *runtime.Environment) (completion, error) {
	if err := checkTypeName(def.ReturnType); err != nil {
		return completion{}, err
	}
	seen := make(map[string]bool, len(def.Params))
	for _, param := range def.Params {
		if err := checkTypeName(param.Type); err != nil {
			return completion{}, err
		}
		if seen[param.Name.Name] {
			return completion{}, diag.New(diag.KindRedeclaration, param.Name.Span(), "Duplicate parameter '%s'", param.Name.Name)
		}
		seen[param.Name.Name] = true
	}
	name := def.ID.Name
	if !env.CanDeclare(name) {
		return completion{}, diag.New(diag.KindRedeclaration, def.ID.Span(), "Identifier '%s' has already been declared", name)
	}
	fn := &runtime.FunctionValue{Declaration: def, Closure: env}
	env.Define(name, &runtime.Binding{Type: runtime.TypeFunction, Value: fn})
	return normal(fn), nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, env *runtime.Environment, ctx evalContext) (completion, error) {
	for _, clause := range stmt.Clauses {
		cond, err := i.evaluateExpression(clause.Condition, env, ctx)
		if err != nil {
			return completion{}, err
		}
		if runtime.Truthy(cond) {
			return i.evaluateBody(clause.Body, env, ctx)
		}
	}
	if stmt.Else != nil {
		return i.evaluateBody(stmt.Else, env, ctx)
	}
	return normal(runtime.Null), nil
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, env *runtime.Environment, ctx evalContext) (completion, error) {
	var result runtime.Value = runtime.Null
	bodyCtx := ctx.loop()
	for {
		cond, err := i.evaluateExpression(loop.Condition, env, ctx)
		if err != nil {
			return completion{}, err
		}
		if !runtime.Truthy(cond) {
			return normal(result), nil
		}
		res, err := i.evaluateBody(loop.Body, env, bodyCtx)
		if err != nil {
			return completion{}, err
		}
		switch res.kind {
		case completionBreak:
			return normal(result), nil
		case completionReturn:
			return res, nil
		case completionNormal:
			result = res.value
		}
	}
}

// evaluateForLoop runs the header in a scope of its own so a declared
// counter is visible to every iteration but not after the loop.
func (i *Interpreter) evaluateForLoop(loop *ast.ForLoop, env *runtime.Environment, ctx evalContext) (completion, error) {
	loopEnv := env.Extend()
	if loop.Init != nil {
		if _, err := i.evaluateStatement(loop.Init, loopEnv, ctx); err != nil {
			return completion{}, err
		}
	}
	var result runtime.Value = runtime.Null
	bodyCtx := ctx.loop()
	for {
		if loop.Condition != nil {
			cond, err := i.evaluateExpression(loop.Condition, loopEnv, ctx)
			if err != nil {
				return completion{}, err
			}
			if !runtime.Truthy(cond) {
				return normal(result), nil
			}
		}
		res, err := i.evaluateBody(loop.Body, loopEnv, bodyCtx)
		if err != nil {
			return completion{}, err
		}
		switch res.kind {
		case completionBreak:
			return normal(result), nil
		case completionReturn:
			return res, nil
		case completionNormal:
			result = res.value
		}
		if loop.Step != nil {
			if _, err := i.evaluateExpression(loop.Step, loopEnv, ctx); err != nil {
				return completion{}, err
			}
		}
	}
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, env *runtime.Environment, ctx evalContext) (completion, error) {
	if !ctx.inFunction {
		return completion{}, diag.New(diag.KindControlFlow, stmt.Span(), "Illegal return statement")
	}
	var result runtime.Value = runtime.Null
	if stmt.Argument != nil {
		val, err := i.evaluateExpression(stmt.Argument, env, ctx)
		if err != nil {
			return completion{}, err
		}
		result = val
	}
	return completion{kind: completionReturn, value: result}, nil
}
