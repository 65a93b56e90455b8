package eval

import (
	"fmt"

	"github.com/scalpel-ui/scalpel/pkg/reactive"
	"github.com/scalpel-ui/scalpel/pkg/syntax"
	"github.com/scalpel-ui/scalpel/pkg/view"
)

// Keyword is the runtime value of a keyword literal.
type Keyword string

// KeywordName implements view.Keywordish.
func (k Keyword) KeywordName() string { return string(k) }

func (k Keyword) String() string { return ":" + string(k) }

// HostFunc is a function provided by the host program or the builtin set.
type HostFunc = func(args ...any) any

// Fn is a closure created by a (fn [params] body...) form.
type Fn struct {
	params []string
	body   []*syntax.Expr
	env    *Env
}

// Component is a defined UI component: a named constructor whose render
// function receives the lazy property accessor.
type Component struct {
	Name   string
	render *Fn
}

// Apply invokes a callable runtime value: a closure, a host function or a
// component constructor.
func Apply(fn any, args ...any) any {
	switch f := fn.(type) {
	case *Fn:
		env := f.env.Child()
		for i, name := range f.params {
			if name == "_" {
				continue
			}
			if i < len(args) {
				env.Define(name, args[i])
			} else {
				env.Define(name, nil)
			}
		}
		var out any
		for _, form := range f.body {
			out = eval(form, env)
		}
		return out
	case HostFunc:
		return f(args...)
	case *Component:
		var props *view.Props
		if len(args) > 0 {
			props, _ = args[0].(*view.Props)
		}
		if props == nil {
			props = view.NewProps(nil)
		}
		return Apply(f.render, props)
	default:
		panic(fmt.Errorf("value %v is not callable", fn))
	}
}

// thunkOf adapts a closure to the runtime Thunk shape.
func thunkOf(fn any) view.Thunk {
	if fn == nil {
		return nil
	}
	if t, ok := fn.(view.Thunk); ok {
		return t
	}
	return func() any { return Apply(fn) }
}

// Deref reads a reactive value: cells, derived values, list handles and
// property getters. Plain values pass through so over-dereffing is cheap.
func Deref(v any) any {
	switch t := v.(type) {
	case *reactive.Cell:
		return t.Get()
	case *reactive.Derived:
		return t.Get()
	case *view.Handle:
		return t.Get()
	case *view.Getter:
		return t.Value()
	default:
		return t
	}
}
