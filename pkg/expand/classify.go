// Package expand implements the compile-time rewriting engine: it lowers
// SX UI-construction forms into calls against the reactive runtime,
// deciding per sub-expression whether it is a static literal or must be
// deferred behind a zero-argument thunk.
package expand

import (
	"github.com/scalpel-ui/scalpel/pkg/syntax"
)

// Classification is the compile-time category of one sub-expression.
type Classification uint8

const (
	// Literal is a compile-time constant: string, number, boolean, nil
	// or keyword. It can never change at run time and is never wrapped.
	Literal Classification = iota
	// FunctionLiteral is an already-deferred callback, written as a
	// (fn ...) form. It passes through unwrapped.
	FunctionLiteral
	// Other is everything else. It must be deferred so the runtime can
	// re-evaluate it inside a tracked scope.
	Other
)

func (c Classification) String() string {
	switch c {
	case Literal:
		return "literal"
	case FunctionLiteral:
		return "function-literal"
	}
	return "other"
}

// Classify categorizes an expression by its syntactic shape alone. An
// expression that happens to be constant at run time but is not written
// as a literal still classifies as Other: over-wrapping is safe,
// under-wrapping breaks reactivity. Malformed or unrecognized syntax
// falls through to Other.
func Classify(e *syntax.Expr) Classification {
	if e == nil || e.IsLiteral() {
		return Literal
	}
	if e.IsCall("fn") {
		return FunctionLiteral
	}
	return Other
}
