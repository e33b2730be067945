package interpreter

import (
	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
	"basic/interpreter-go/pkg/runtime"
)

// reference is an assignable location: a variable, a list or map element,
// or a map member. The container and key are evaluated once, when the
// reference is resolved.
type reference interface {
	get() (runtime.Value, error)
	set(runtime.Value) error
}

func (i *Interpreter) resolveReference(target ast.AssignmentTarget, env *runtime.Environment, ctx evalContext) (reference, error) {
	switch t := target.(type) {
	case *ast.Identifier:
		return &variableRef{env: env, id: t}, nil
	case *ast.IndexExpression:
		obj, err := i.evaluateExpression(t.Object, env, ctx)
		if err != nil {
			return nil, err
		}
		idx, err := i.evaluateExpression(t.Index, env, ctx)
		if err != nil {
			return nil, err
		}
		return &indexRef{obj: obj, index: idx, span: t.Span()}, nil
	case *ast.MemberAccessExpression:
		if t.Optional {
			return nil, diag.Syntax(t.Span(), "Invalid left-hand side in assignment")
		}
		obj, err := i.evaluateExpression(t.Object, env, ctx)
		if err != nil {
			return nil, err
		}
		return &memberRef{obj: obj, name: t.Member.Name, span: t.Span()}, nil
	}
	return nil, diag.Syntax(target.Span(), "Invalid left-hand side in assignment")
}

type variableRef struct {
	env *runtime.Environment
	id  *ast.Identifier
}

func (r *variableRef) get() (runtime.Value, error) {
	binding, ok := r.env.Get(r.id.Name)
	if !ok {
		return nil, diag.Reference(r.id.Span(), "'%s' is not defined", r.id.Name)
	}
	return binding.Value, nil
}

// set enforces the binding rules: the name must exist, must not be const,
// and the value must fit the declared type.
func (r *variableRef) set(value runtime.Value) error {
	binding, ok := r.env.Get(r.id.Name)
	if !ok {
		return diag.Reference(r.id.Span(), "'%s' is not defined", r.id.Name)
	}
	if binding.IsConst {
		return diag.New(diag.KindRedeclaration, r.id.Span(), "Assignment to constant variable '%s'", r.id.Name)
	}
	if !runtime.Assignable(binding.Type, value) {
		return diag.Type(r.id.Span(), "There is no conversion from \"%s\" to \"%s\"", runtime.TypeOf(value), binding.Type)
	}
	r.env.Set(r.id.Name, value)
	return nil
}

type indexRef struct {
	obj, index runtime.Value
	span       ast.Span
}

func (r *indexRef) get() (runtime.Value, error) {
	out, err := runtime.Index(r.obj, r.index)
	return out, diag.WithSpan(err, r.span)
}

func (r *indexRef) set(value runtime.Value) error {
	return diag.WithSpan(runtime.SetIndex(r.obj, r.index, value), r.span)
}

type memberRef struct {
	obj  runtime.Value
	name string
	span ast.Span
}

func (r *memberRef) get() (runtime.Value, error) {
	out, err := runtime.Member(r.obj, r.name)
	return out, diag.WithSpan(err, r.span)
}

func (r *memberRef) set(value runtime.Value) error {
	return diag.WithSpan(runtime.SetMember(r.obj, r.name, value), r.span)
}
