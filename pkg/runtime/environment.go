package runtime

import (
	"sort"
)

// Binding is a named slot in a scope.
type Binding struct {
	IsConst bool
	Type    string
	Value   Value
}

// Environment provides lexical scoping for runtime values.
type Environment struct {
	values map[string]*Binding
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]*Binding),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// CanDeclare reports whether name is free in this scope. Outer scopes are
// not consulted; shadowing is allowed.
func (e *Environment) CanDeclare(name string) bool {
	_, exists := e.values[name]
	return !exists
}

// Define inserts or replaces a binding in the current scope. Callers check
// CanDeclare first.
func (e *Environment) Define(name string, binding *Binding) {
	e.values[name] = binding
}

// Get returns the binding from the nearest scope that has it.
func (e *Environment) Get(name string) (*Binding, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.values[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Has reports whether name is bound anywhere in the chain.
func (e *Environment) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Set overwrites the value of the nearest binding for name. It reports false
// when no scope binds the name. Const and type rules are enforced by callers.
func (e *Environment) Set(name string, value Value) bool {
	b, ok := e.Get(name)
	if !ok {
		return false
	}
	b.Value = value
	return true
}

// Keys returns the bindings of this scope in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extend creates a child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}
