// Package eval turns expanded SX forms into a live call tree: thunk forms
// become closures over an environment, and the runtime call forms the
// expander emits dispatch to the reactive and view packages.
package eval

import (
	"fmt"
)

// Env is a lexical environment: a frame of bindings with a parent chain.
type Env struct {
	parent *Env
	vars   map[string]any
}

// NewEnv creates a root environment preloaded with the builtin functions.
func NewEnv() *Env {
	env := &Env{vars: make(map[string]any)}
	installBuiltins(env)
	return env
}

// Child creates a nested scope.
func (e *Env) Child() *Env {
	return &Env{parent: e, vars: make(map[string]any)}
}

// Define binds name in this frame, shadowing outer frames.
func (e *Env) Define(name string, v any) {
	e.vars[name] = v
}

// Lookup resolves name through the parent chain.
func (e *Env) Lookup(name string) (any, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if v, ok := scope.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (e *Env) resolve(name string) any {
	v, ok := e.Lookup(name)
	if !ok {
		panic(fmt.Errorf("undefined symbol %s", name))
	}
	return v
}
