package interpreter

import "basic/interpreter-go/pkg/runtime"

type completionKind int

const (
	completionNormal completionKind = iota
	completionReturn
	completionBreak
	completionContinue
)

// completion is the outcome of evaluating a statement. Anything other than
// completionNormal unwinds enclosing statements until a loop or call
// absorbs it.
type completion struct {
	kind  completionKind
	value runtime.Value
}

func normal(v runtime.Value) completion {
	return completion{kind: completionNormal, value: v}
}

func (c completion) abrupt() bool { return c.kind != completionNormal }

// evalContext records what the code being evaluated is nested in.
type evalContext struct {
	inFunction bool
	inLoop     bool
	depth      int
}

func (c evalContext) loop() evalContext {
	c.inLoop = true
	return c
}

// call is the context of a function body: return becomes legal and the
// enclosing loop no longer applies.
func (c evalContext) call() evalContext {
	return evalContext{inFunction: true, depth: c.depth + 1}
}
