package eval

import (
	"fmt"

	"github.com/scalpel-ui/scalpel/pkg/expand"
	"github.com/scalpel-ui/scalpel/pkg/reactive"
	"github.com/scalpel-ui/scalpel/pkg/syntax"
	"github.com/scalpel-ui/scalpel/pkg/view"
)

// viewForms dispatches the runtime call forms emitted by the expander.
// Populated in init because the handlers recurse into eval.
var viewForms map[string]func(*syntax.Expr, *Env) any

func init() {
	viewForms = map[string]func(*syntax.Expr, *Env) any{
		expand.SymElement:         evalElement,
		expand.SymFragment:        evalFragment,
		expand.SymComponent:       evalComponent,
		expand.SymGetter:          evalGetter,
		expand.SymClassList:       evalClassList,
		expand.SymStyle:           evalStyle,
		expand.SymCondView:        evalCondView,
		expand.SymSwitchView:      evalSwitchView,
		expand.SymCaseView:        evalCaseView,
		expand.SymListView:        evalListView,
		expand.SymErrorBoundary:   evalErrorBoundary,
		expand.SymBatch:           evalBatch,
		expand.SymDefineComponent: evalDefineComponent,
	}
}

func evalElement(e *syntax.Expr, env *Env) any {
	tag := e.Items[1].Str
	attrMap := e.Items[2]

	attrs := make([]view.Attr, 0, len(attrMap.Pairs))
	for _, p := range attrMap.Pairs {
		attrs = append(attrs, view.Attr{Name: p.Key.Str, Value: evalAttrValue(p.Key.Str, p.Val, env)})
	}

	children := evalChildren(e.Items[3:], env)
	return view.Element(tag, attrs, children...)
}

func evalAttrValue(name string, val *syntax.Expr, env *Env) any {
	v := eval(val, env)
	switch {
	case name == "ref":
		fn := v
		return view.RefFunc(func(n *view.Node) { Apply(fn, n) })
	case len(name) > 2 && name[0] == 'o' && name[1] == 'n' && name[2] >= 'A' && name[2] <= 'Z':
		// Event handlers stay callable values; the host invokes them.
		return v
	default:
		if fn, ok := v.(*Fn); ok {
			return thunkOf(fn)
		}
		return v
	}
}

func evalChildren(forms []*syntax.Expr, env *Env) []any {
	out := make([]any, 0, len(forms))
	for _, form := range forms {
		v := eval(form, env)
		if fn, ok := v.(*Fn); ok {
			out = append(out, thunkOf(fn))
			continue
		}
		out = append(out, v)
	}
	return out
}

func evalFragment(e *syntax.Expr, env *Env) any {
	return view.Fragment(evalChildren(e.Items[1:], env)...)
}

func evalGetter(e *syntax.Expr, env *Env) any {
	return view.NewGetter(evalThunk(e.Items[1], env))
}

func evalClassList(e *syntax.Expr, env *Env) any {
	cl := &view.ClassList{}
	rest := e.Items[1:]
	for i := 0; i+1 < len(rest); i += 2 {
		cl.Entries = append(cl.Entries, view.ClassEntry{
			Name: rest[i].Str,
			Test: evalThunk(rest[i+1], env),
		})
	}
	return cl
}

func evalStyle(e *syntax.Expr, env *Env) any {
	sm := &view.StyleMap{}
	rest := e.Items[1:]
	for i := 0; i+1 < len(rest); i += 2 {
		v := eval(rest[i+1], env)
		if fn, ok := v.(*Fn); ok {
			sm.Entries = append(sm.Entries, view.StyleEntry{Prop: rest[i].Str, Value: thunkOf(fn)})
			continue
		}
		sm.Entries = append(sm.Entries, view.StyleEntry{Prop: rest[i].Str, Value: v})
	}
	return sm
}

func evalCondView(e *syntax.Expr, env *Env) any {
	mode := view.CondTruthy
	if e.Items[1].IsKeyword("some") {
		mode = view.CondSome
	}
	test := evalThunk(e.Items[2], env)
	thenFn := eval(e.Items[3], env)
	then := func(v any) *view.Node { return toNode(Apply(thenFn, v)) }

	var els func() *view.Node
	if e.Items[4].Kind != syntax.KindNil {
		elseFn := eval(e.Items[4], env)
		els = func() *view.Node { return toNode(Apply(elseFn)) }
	}
	return view.ConditionalView(mode, test, then, els)
}

func evalSwitchView(e *syntax.Expr, env *Env) any {
	pairs := e.Items[1].Items
	branches := make([]view.SwitchBranch, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		render := eval(pairs[i+1], env)
		branches = append(branches, view.SwitchBranch{
			Test:   evalThunk(pairs[i], env),
			Render: func() *view.Node { return toNode(Apply(render)) },
		})
	}
	fallback := renderFn(e.Items[2], env)
	return view.SwitchView(branches, fallback)
}

func evalCaseView(e *syntax.Expr, env *Env) any {
	scrut := evalThunk(e.Items[1], env)
	pairs := e.Items[2].Items
	branches := make([]view.CaseBranch, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		render := eval(pairs[i+1], env)
		branches = append(branches, view.CaseBranch{
			Value:  eval(pairs[i], env),
			Render: func() *view.Node { return toNode(Apply(render)) },
		})
	}
	fallback := renderFn(e.Items[3], env)
	return view.CaseView(scrut, branches, fallback)
}

func evalListView(e *syntax.Expr, env *Env) any {
	keying := view.KeyByIdentity
	if e.Items[1].IsKeyword("position") {
		keying = view.KeyByPosition
	}
	items := evalThunk(e.Items[2], env)
	render := eval(e.Items[3], env)
	return view.ListView(keying, items, func(item, index any) *view.Node {
		return toNode(Apply(render, item, index))
	})
}

func evalErrorBoundary(e *syntax.Expr, env *Env) any {
	body := eval(e.Items[1], env)
	handler := eval(e.Items[2], env)
	return view.ErrorBoundaryView(
		func() *view.Node { return toNode(Apply(body)) },
		func(err any) *view.Node { return toNode(Apply(handler, err)) },
	)
}

func evalBatch(e *syntax.Expr, env *Env) any {
	body := eval(e.Items[1], env)
	var out any
	reactive.Batch(func() {
		out = Apply(body)
	})
	return out
}

func evalComponent(e *syntax.Expr, env *Env) any {
	target := eval(e.Items[1], env)
	propsMap := e.Items[2]

	rec := view.NewRecord()
	for _, p := range propsMap.Pairs {
		rec.Set(p.Key.Str, eval(p.Val, env))
	}
	if len(e.Items) > 3 {
		children := eval(e.Items[3], env)
		rec.Set("children", thunkOf(children))
	}
	return toNode(Apply(target, view.NewProps(rec)))
}

func evalDefineComponent(e *syntax.Expr, env *Env) any {
	name := e.Items[1].Str
	render, ok := eval(e.Items[2], env).(*Fn)
	if !ok {
		panic(fmt.Errorf("component %s render must be a fn form", name))
	}
	comp := &Component{Name: name, render: render}
	env.Define(name, comp)
	return comp
}

// renderFn adapts a compiled fallback thunk, which may be nil.
func renderFn(e *syntax.Expr, env *Env) func() *view.Node {
	if e == nil || e.Kind == syntax.KindNil {
		return nil
	}
	fn := eval(e, env)
	return func() *view.Node { return toNode(Apply(fn)) }
}

// toNode coerces a rendered value to a live node: nodes pass through,
// slices become fragments, everything else renders as text.
func toNode(v any) *view.Node {
	switch t := v.(type) {
	case nil:
		return nil
	case *view.Node:
		return t
	case []any:
		return view.Fragment(t...)
	default:
		return view.NewText(view.DisplayString(v))
	}
}
